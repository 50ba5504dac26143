package goldmark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/ustree/pkg/langdetect"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// Dropped construct kinds.
const (
	DroppedHTML  = "html"
	DroppedTable = "table"
)

// mapper converts a goldmark AST into an mdast tree.
type mapper struct {
	src     []byte
	lines   *unist.LineIndex
	opts    Options
	dropped []Dropped

	// cursor is the end of the last block with a known range. Blocks that
	// goldmark gives no segments for are searched from here.
	cursor int

	// trimLead is set after a task checkbox; the text that follows starts
	// with the blank separating it from the box.
	trimLead bool
}

func newMapper(src []byte, opts Options) *mapper {
	return &mapper{
		src:   src,
		lines: unist.NewLineIndex(src),
		opts:  opts,
	}
}

// options builds the position and data options for a node covering r.
func (m *mapper) options(r byteRange) []unist.Option {
	var opts []unist.Option
	if m.opts.Positions && r.known() {
		r = m.trimEnd(r)
		opts = append(opts, unist.WithPosition(m.lines.Span(r.start, r.end)))
	}
	if m.opts.NodeIDs {
		opts = append(opts, unist.WithData(unist.Data{"id": uuid.NewString()}))
	}
	return opts
}

func (m *mapper) advance(r byteRange) {
	if r.known() && r.end > m.cursor {
		m.cursor = r.end
	}
}

func (m *mapper) drop(kind string, r byteRange) {
	if !r.known() {
		r = byteRange{start: m.cursor, end: m.cursor}
	}
	r = m.trimEnd(r)
	m.advance(r)
	m.dropped = append(m.dropped, Dropped{Kind: kind, Position: m.lines.Span(r.start, r.end)})
}

// mapDocument converts a goldmark document node to a root.
func (m *mapper) mapDocument(doc ast.Node) (*mdast.Root, error) {
	children, _, err := m.blocks(doc)
	if err != nil {
		return nil, err
	}

	var opts []unist.Option
	if m.opts.Positions {
		opts = append(opts, unist.WithPosition(m.lines.Span(0, len(m.src))))
	}
	if m.opts.NodeIDs {
		opts = append(opts, unist.WithData(unist.Data{"id": uuid.NewString()}))
	}

	return mdast.NewRoot(children, opts...)
}

// blocks maps the block children of parent.
func (m *mapper) blocks(parent ast.Node) ([]mdast.Node, byteRange, error) {
	var nodes []mdast.Node
	extentOf := noRange

	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		node, r, err := m.mapBlock(child)
		if err != nil {
			return nil, noRange, err
		}
		if node == nil {
			continue
		}
		nodes = append(nodes, node)
		extentOf = extentOf.union(r)
	}

	return nodes, extentOf, nil
}

// mapBlock converts one block node. A nil node means it was dropped.
func (m *mapper) mapBlock(n ast.Node) (mdast.Node, byteRange, error) {
	switch v := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(n)
	case *ast.Heading:
		return m.mapHeading(v)
	case *ast.ThematicBreak:
		return m.mapThematicBreak()
	case *ast.Blockquote:
		return m.mapBlockquote(v)
	case *ast.List:
		return m.mapList(v)
	case *ast.FencedCodeBlock:
		return m.mapFencedCode(v)
	case *ast.CodeBlock:
		return m.mapIndentedCode(v)
	case *ast.HTMLBlock:
		m.drop(DroppedHTML, extent(v))
	case *east.Table:
		m.drop(DroppedTable, extent(v))
	default:
		m.drop(n.Kind().String(), extent(n))
	}
	return nil, noRange, nil
}

func (m *mapper) mapParagraph(n ast.Node) (mdast.Node, byteRange, error) {
	children, r, err := m.inlines(n)
	if err != nil {
		return nil, noRange, err
	}
	r = m.trimEnd(r.union(linesRange(n)))
	m.advance(r)

	node, err := mdast.NewParagraph(children, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("paragraph: %w", err)
	}
	return node, r, nil
}

func (m *mapper) mapHeading(h *ast.Heading) (mdast.Node, byteRange, error) {
	children, r, err := m.inlines(h)
	if err != nil {
		return nil, noRange, err
	}
	r = m.trimEnd(r.union(linesRange(h)))

	if r.known() {
		r.start = m.extendBack(r.start, "# \t")
		if r.start < len(m.src) && m.src[r.start] == '#' {
			r.end = m.runAfter(r.end, len(m.src), " \t#")
		} else if end, ok := m.setextUnderline(r.end); ok {
			r.end = end
		}
		r = m.trimEnd(r)
	}
	m.advance(r)

	node, err := mdast.NewHeading(h.Level, children, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("heading: %w", err)
	}
	return node, r, nil
}

// setextUnderline returns the end of the "===" or "---" line following the
// line holding off.
func (m *mapper) setextUnderline(off int) (int, bool) {
	next := m.lineEnd(off) + 1
	if next >= len(m.src) {
		return 0, false
	}
	end := m.lineEnd(next)
	line := bytes.TrimRight(bytes.TrimLeft(m.src[next:end], " \t>"), " \t\r")
	if len(line) == 0 {
		return 0, false
	}
	if strings.Trim(string(line), "=") != "" && strings.Trim(string(line), "-") != "" {
		return 0, false
	}
	return end, true
}

func (m *mapper) mapThematicBreak() (mdast.Node, byteRange, error) {
	r := m.findThematicBreak()
	m.advance(r)

	node, err := mdast.NewThematicBreak(m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("thematic break: %w", err)
	}
	return node, r, nil
}

// findThematicBreak scans forward from the cursor for the next "***",
// "---" or "___" line.
func (m *mapper) findThematicBreak() byteRange {
	for off := m.cursor; off < len(m.src); {
		end := m.lineEnd(off)
		line := m.src[off:end]
		body := bytes.TrimLeft(line, " \t>")
		if isThematicBreak(body) {
			start := off + len(line) - len(body)
			return m.trimEnd(byteRange{start: start, end: end})
		}
		off = end + 1
	}
	return noRange
}

func isThematicBreak(line []byte) bool {
	var marker byte
	count := 0
	for _, c := range bytes.TrimRight(line, " \t\r") {
		switch {
		case c == ' ' || c == '\t':
			continue
		case marker == 0 && (c == '-' || c == '*' || c == '_'):
			marker = c
		case c != marker:
			return false
		}
		count++
	}
	return count >= 3
}

func (m *mapper) mapBlockquote(bq *ast.Blockquote) (mdast.Node, byteRange, error) {
	children, r, err := m.blocks(bq)
	if err != nil {
		return nil, noRange, err
	}
	if r.known() {
		r.start = m.extendBack(r.start, " \t>")
	}

	node, err := mdast.NewBlockquote(children, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("blockquote: %w", err)
	}
	return node, r, nil
}

func (m *mapper) mapList(list *ast.List) (mdast.Node, byteRange, error) {
	var items []mdast.Node
	r := noRange

	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		li, ok := child.(*ast.ListItem)
		if !ok {
			m.drop(child.Kind().String(), extent(child))
			continue
		}
		item, itemRange, err := m.mapListItem(li, !list.IsTight)
		if err != nil {
			return nil, noRange, err
		}
		items = append(items, item)
		r = r.union(itemRange)
	}

	props := mdast.ListProps{Ordered: list.IsOrdered(), Spread: !list.IsTight}
	if list.IsOrdered() {
		start := list.Start
		props.Start = &start
	}

	node, err := mdast.NewList(props, items, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("list: %w", err)
	}
	return node, r, nil
}

func (m *mapper) mapListItem(li *ast.ListItem, spread bool) (mdast.Node, byteRange, error) {
	checked := taskState(li)

	children, r, err := m.blocks(li)
	if err != nil {
		return nil, noRange, err
	}
	if r.known() {
		markers := " \t-*+.)0123456789"
		if checked != nil {
			markers += "[]xX"
		}
		r.start = m.extendBack(r.start, markers)
	}

	node, err := mdast.NewListItem(mdast.ListItemProps{Checked: checked, Spread: spread}, children, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("list item: %w", err)
	}
	return node, r, nil
}

// taskState returns the GFM task checkbox state of an item, or nil.
func taskState(li *ast.ListItem) *bool {
	first := li.FirstChild()
	if first == nil {
		return nil
	}
	if box, ok := first.FirstChild().(*east.TaskCheckBox); ok {
		checked := box.IsChecked
		return &checked
	}
	return nil
}

func (m *mapper) mapFencedCode(code *ast.FencedCodeBlock) (mdast.Node, byteRange, error) {
	value := m.codeValue(code)

	var info mdast.CodeInfo
	if code.Info != nil {
		info = SplitInfo(string(code.Info.Segment.Value(m.src)))
	}
	info = m.inferLang(info, value)

	r := m.fenceRange(code)
	m.advance(r)

	node, err := mdast.NewCode(value, info, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("code: %w", err)
	}
	return node, r, nil
}

// fenceRange covers a fenced code block from its opening fence to its
// closing fence, or to its last line when unclosed.
func (m *mapper) fenceRange(code *ast.FencedCodeBlock) byteRange {
	lines := code.Lines()

	var openLine int
	switch {
	case lines.Len() > 0:
		first := m.lineStart(lines.At(0).Start)
		if first == 0 {
			return noRange
		}
		openLine = m.lineStart(first - 1)
	case code.Info != nil:
		openLine = m.lineStart(code.Info.Segment.Start)
	default:
		return noRange
	}

	start := openLine
	for start < len(m.src) && (m.src[start] == ' ' || m.src[start] == '\t' || m.src[start] == '>') {
		start++
	}
	if start >= len(m.src) || (m.src[start] != '`' && m.src[start] != '~') {
		return noRange
	}
	fence := m.src[start]

	closeLine := m.lineEnd(openLine) + 1
	if lines.Len() > 0 {
		closeLine = lines.At(lines.Len() - 1).Stop
	}

	end := m.lineEnd(openLine)
	if lines.Len() > 0 {
		end = lines.At(lines.Len() - 1).Stop
	}
	if closeLine < len(m.src) {
		if _, lineEnd, ok := m.fenceLine(closeLine, fence); ok {
			end = lineEnd
		}
	}

	return m.trimEnd(byteRange{start: start, end: end})
}

func (m *mapper) mapIndentedCode(code *ast.CodeBlock) (mdast.Node, byteRange, error) {
	value := m.codeValue(code)
	info := m.inferLang(mdast.CodeInfo{}, value)

	r := m.trimEnd(linesRange(code))
	m.advance(r)

	node, err := mdast.NewCode(value, info, m.options(r)...)
	if err != nil {
		return nil, noRange, fmt.Errorf("code: %w", err)
	}
	return node, r, nil
}

// codeValue joins the content lines of a code block without the final
// line ending.
func (m *mapper) codeValue(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := range lines.Len() {
		buf.Write(lines.At(i).Value(m.src))
	}
	return strings.TrimSuffix(strings.TrimSuffix(buf.String(), "\n"), "\r")
}

func (m *mapper) inferLang(info mdast.CodeInfo, value string) mdast.CodeInfo {
	if info.Lang != nil || !m.opts.DetectLang {
		return info
	}
	if tag, ok := langdetect.Infer([]byte(value)); ok {
		info.Lang = &tag
	}
	return info
}

// SplitInfo splits a fence info string into lang and meta. The lang is the
// first word and meta the rest with surrounding blanks removed. Empty parts
// are absent.
func SplitInfo(info string) mdast.CodeInfo {
	info = strings.TrimSpace(info)
	if info == "" {
		return mdast.CodeInfo{}
	}

	idx := strings.IndexAny(info, " \t")
	if idx < 0 {
		return mdast.CodeInfo{Lang: &info}
	}

	lang := info[:idx]
	out := mdast.CodeInfo{Lang: &lang}
	if meta := strings.TrimSpace(info[idx+1:]); meta != "" {
		out.Meta = &meta
	}
	return out
}
