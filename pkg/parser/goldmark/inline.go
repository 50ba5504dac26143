package goldmark

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/ustree/pkg/mdast"
)

// phrasing collects the phrasing children of one parent, merging adjacent
// text into a single node.
type phrasing struct {
	m      *mapper
	nodes  []mdast.Node
	extent byteRange

	text    strings.Builder
	textAt  byteRange
	pending bool
}

func (p *phrasing) addText(value string, r byteRange) {
	if value == "" {
		return
	}
	p.text.WriteString(value)
	p.textAt = p.textAt.union(r)
	p.extent = p.extent.union(r)
	p.pending = true
}

func (p *phrasing) add(node mdast.Node, r byteRange) error {
	if err := p.flush(); err != nil {
		return err
	}
	p.nodes = append(p.nodes, node)
	p.extent = p.extent.union(r)
	return nil
}

func (p *phrasing) flush() error {
	if !p.pending {
		return nil
	}
	node, err := mdast.NewText(p.text.String(), p.m.options(p.textAt)...)
	if err != nil {
		return fmt.Errorf("text: %w", err)
	}
	p.nodes = append(p.nodes, node)
	p.text.Reset()
	p.textAt = noRange
	p.pending = false
	return nil
}

// inlines maps the inline children of parent.
func (m *mapper) inlines(parent ast.Node) ([]mdast.Node, byteRange, error) {
	p := &phrasing{m: m, extent: noRange, textAt: noRange}
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if err := m.mapInline(child, p); err != nil {
			return nil, noRange, err
		}
	}
	m.trimLead = false
	if err := p.flush(); err != nil {
		return nil, noRange, err
	}
	return p.nodes, p.extent, nil
}

//nolint:cyclop,funlen // One case per goldmark inline kind.
func (m *mapper) mapInline(n ast.Node, p *phrasing) error {
	switch v := n.(type) {
	case *ast.Text:
		return m.mapText(v, p)

	case *ast.String:
		p.addText(string(v.Value), noRange)

	case *ast.Emphasis:
		children, r, err := m.inlines(v)
		if err != nil {
			return err
		}
		if r.known() {
			r.start = m.runBefore(r.start, v.Level, "*_")
			r.end = m.runAfter(r.end, v.Level, "*_")
		}

		var node mdast.Node
		if v.Level >= 2 {
			node, err = mdast.NewStrong(children, m.options(r)...)
		} else {
			node, err = mdast.NewEmphasis(children, m.options(r)...)
		}
		if err != nil {
			return fmt.Errorf("emphasis: %w", err)
		}
		return p.add(node, r)

	case *ast.CodeSpan:
		r := m.codeSpanRange(extent(v))
		node, err := mdast.NewInlineCode(plainText(v, m.src), m.options(r)...)
		if err != nil {
			return fmt.Errorf("inline code: %w", err)
		}
		return p.add(node, r)

	case *ast.Link:
		children, r, err := m.inlines(v)
		if err != nil {
			return err
		}
		if r.known() {
			r.start = m.runBefore(r.start, 1, "[")
			r.end = m.linkEnd(r.end)
		}
		node, err := mdast.NewLink(string(v.Destination), optional(v.Title), children, m.options(r)...)
		if err != nil {
			return fmt.Errorf("link: %w", err)
		}
		return p.add(node, r)

	case *ast.Image:
		r := extent(v)
		if r.known() {
			r.start = m.runBefore(r.start, 2, "![")
			r.end = m.linkEnd(r.end)
		}
		alt := plainText(v, m.src)
		node, err := mdast.NewImage(string(v.Destination), optional(v.Title), &alt, m.options(r)...)
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		return p.add(node, r)

	case *ast.AutoLink:
		label, err := mdast.NewText(string(v.Label(m.src)), m.options(noRange)...)
		if err != nil {
			return fmt.Errorf("autolink: %w", err)
		}
		node, err := mdast.NewLink(string(v.URL(m.src)), nil, mdast.Nodes(label), m.options(noRange)...)
		if err != nil {
			return fmt.Errorf("autolink: %w", err)
		}
		return p.add(node, noRange)

	case *ast.RawHTML:
		m.drop(DroppedHTML, extent(v))

	case *east.Strikethrough:
		for child := v.FirstChild(); child != nil; child = child.NextSibling() {
			if err := m.mapInline(child, p); err != nil {
				return err
			}
		}

	case *east.TaskCheckBox:
		m.trimLead = true

	default:
		if !n.HasChildren() {
			m.drop(n.Kind().String(), extent(n))
			return nil
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if err := m.mapInline(child, p); err != nil {
				return err
			}
		}
	}

	return nil
}

// mapText adds a text segment and the line break that may follow it.
func (m *mapper) mapText(t *ast.Text, p *phrasing) error {
	value := string(t.Segment.Value(m.src))
	r := segmentRange(t.Segment)

	if m.trimLead {
		trimmed := strings.TrimLeft(value, " \t")
		r.start += len(value) - len(trimmed)
		value = trimmed
		m.trimLead = false
	}
	p.addText(value, r)

	lineBreak := byteRange{start: r.end, end: min(m.lineEnd(r.end)+1, len(m.src))}

	switch {
	case t.HardLineBreak():
		node, err := mdast.NewBreak(m.options(lineBreak)...)
		if err != nil {
			return fmt.Errorf("break: %w", err)
		}
		return p.add(node, lineBreak)
	case t.SoftLineBreak():
		p.addText("\n", lineBreak)
	}

	return nil
}

// codeSpanRange widens the content range of a code span to its backtick
// fences and the single padding blank stripped inside each.
func (m *mapper) codeSpanRange(r byteRange) byteRange {
	if !r.known() {
		return r
	}
	if r.start > 1 && m.src[r.start-1] == ' ' && m.src[r.start-2] == '`' {
		r.start--
	}
	r.start = m.runBefore(r.start, len(m.src), "`")

	if r.end+1 < len(m.src) && m.src[r.end] == ' ' && m.src[r.end+1] == '`' {
		r.end++
	}
	r.end = m.runAfter(r.end, len(m.src), "`")
	return r
}

// plainText concatenates the text beneath n, as used for image alt text
// and code span content.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder

	//nolint:errcheck // The walker never returns an error.
	ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return sb.String()
}

func optional(b []byte) *string {
	if len(b) == 0 {
		return nil
	}
	s := string(b)
	return &s
}
