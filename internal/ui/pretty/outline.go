package pretty

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/ustree/pkg/hast"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// maxValueWidth bounds literal values shown in an outline.
const maxValueWidth = 40

// OutlineOptions controls outline rendering.
type OutlineOptions struct {
	// Positions appends the source span of each node that has one.
	Positions bool
}

// FormatOutline renders a tree as an indented outline, one node per line.
func (s *Styles) FormatOutline(root unist.Node, opts OutlineOptions) string {
	if root == nil {
		return ""
	}
	return s.outlineTree(root, opts).String() + "\n"
}

func (s *Styles) outlineTree(n unist.Node, opts OutlineOptions) *tree.Tree {
	t := tree.Root(s.label(n, opts)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.Branch)

	parent, ok := n.(unist.Parent)
	if !ok {
		return t
	}
	for _, child := range parent.Children() {
		if unist.IsParent(child) && unist.ChildCount(child) > 0 {
			t.Child(s.outlineTree(child, opts))
			continue
		}
		t.Child(s.label(child, opts))
	}
	return t
}

// label describes one node: its type, its fields and its span.
func (s *Styles) label(n unist.Node, opts OutlineOptions) string {
	parts := []string{s.NodeType.Render(n.Type())}

	switch node := n.(type) {
	case mdast.Node:
		parts = append(parts, s.mdastFields(node)...)
	case *hast.Element:
		parts = append(parts, s.Value.Render("<"+node.TagName()+">"))
		for _, name := range node.PropertyNames() {
			value, _ := node.Property(name)
			parts = append(parts, s.field(name, strconv.Quote(value.Text())))
		}
	case *hast.Doctype:
		parts = append(parts, s.field("name", node.Name()))
		if public, ok := node.Public(); ok {
			parts = append(parts, s.field("public", strconv.Quote(public)))
		}
		if system, ok := node.System(); ok {
			parts = append(parts, s.field("system", strconv.Quote(system)))
		}
	}

	if lit, ok := n.(unist.Literal); ok {
		parts = append(parts, s.Value.Render(quoteValue(lit.Value())))
	}

	if opts.Positions {
		if pos, ok := n.Position(); ok {
			parts = append(parts, s.Location.Render(pos.String()))
		}
	}

	return strings.Join(parts, " ")
}

func (s *Styles) mdastFields(n mdast.Node) []string {
	f := mdast.FieldsOf(n)

	var parts []string
	addInt := func(name string, v *int) {
		if v != nil {
			parts = append(parts, s.field(name, strconv.Itoa(*v)))
		}
	}
	addBool := func(name string, v *bool) {
		if v != nil {
			parts = append(parts, s.field(name, strconv.FormatBool(*v)))
		}
	}
	addString := func(name string, v *string) {
		if v != nil {
			parts = append(parts, s.field(name, strconv.Quote(*v)))
		}
	}

	addInt("depth", f.Depth)
	addBool("ordered", f.Ordered)
	addInt("start", f.Start)
	addBool("spread", f.Spread)
	addBool("checked", f.Checked)
	addString("lang", f.Lang)
	addString("meta", f.Meta)
	addString("url", f.URL)
	addString("title", f.Title)
	addString("alt", f.Alt)

	return parts
}

func (s *Styles) field(name, value string) string {
	return s.Field.Render(name+"=") + value
}

// quoteValue quotes a literal value, truncated to maxValueWidth runes.
func quoteValue(value string) string {
	runes := []rune(value)
	if len(runes) > maxValueWidth {
		return strconv.Quote(string(runes[:maxValueWidth-3]) + "...")
	}
	return strconv.Quote(value)
}
