// Package tohast turns Markdown trees into HTML trees.
//
// The mapping follows the usual rendering of CommonMark: paragraphs become
// p, headings h1 to h6, lists ul or ol with li items, code pre>code with a
// language-* class, and so on. Source positions carry across to the
// element built for each Markdown node. Newline text nodes separate block
// elements the way rendered HTML does.
package tohast

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/yaklabco/ustree/pkg/hast"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// ErrNotMarkdown is returned when the input tree is not a Markdown tree.
var ErrNotMarkdown = errors.New("tree is not a markdown tree")

// Transformer converts Markdown trees to HTML trees. It implements
// unist.Transformer; the result is always a *hast.Root.
type Transformer struct{}

var _ unist.Transformer = Transformer{}

// New returns a Transformer.
func New() Transformer {
	return Transformer{}
}

// Transform converts tree, which must be an mdast node. A root maps to a
// root; any other node maps to a root holding its conversion.
//
//nolint:ireturn // unist.Transformer returns the generic node interface.
func (Transformer) Transform(ctx context.Context, tree unist.Node) (unist.Node, error) {
	n, ok := tree.(mdast.Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("%w: got %T", ErrNotMarkdown, tree)
	}
	return Convert(ctx, n)
}

// Convert converts a Markdown node into an HTML root.
func Convert(ctx context.Context, n mdast.Node) (*hast.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	c := &converter{ctx: ctx}

	if root, ok := n.(*mdast.Root); ok {
		children, err := c.blocks(root.Children(), false)
		if err != nil {
			return nil, err
		}
		return hast.NewRoot(children, positionOf(root))
	}

	children, err := c.node(n)
	if err != nil {
		return nil, err
	}
	return hast.NewRoot(children)
}

type converter struct {
	ctx context.Context
}

func positionOf(n unist.Node) unist.Option {
	if pos, ok := n.Position(); ok {
		return unist.WithPosition(pos)
	}
	return unist.WithOptionalPosition(nil)
}

func newline() hast.Node {
	text, _ := hast.NewText("\n")
	return text
}

// blocks converts block children, separating them with newlines. With
// loose set the result also starts and ends with one.
func (c *converter) blocks(children []unist.Node, loose bool) ([]hast.Node, error) {
	if err := c.ctx.Err(); err != nil {
		return nil, fmt.Errorf("convert cancelled: %w", err)
	}

	var out []hast.Node
	for i, child := range children {
		converted, err := c.node(child.(mdast.Node))
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		if len(converted) == 0 {
			continue
		}
		if loose || len(out) > 0 {
			out = append(out, newline())
		}
		out = append(out, converted...)
	}
	if loose && len(out) > 0 {
		out = append(out, newline())
	}
	return out, nil
}

func (c *converter) phrasing(children []unist.Node) ([]hast.Node, error) {
	var out []hast.Node
	for i, child := range children {
		converted, err := c.node(child.(mdast.Node))
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		out = append(out, converted...)
	}
	return out, nil
}

// element builds an element for the Markdown node src.
func element(src mdast.Node, tag string, props map[string]any, children []hast.Node) ([]hast.Node, error) {
	el, err := hast.NewElement(tag, props, children, positionOf(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Type(), err)
	}
	return []hast.Node{el}, nil
}

// node converts one Markdown node into zero or more HTML nodes.
//
//nolint:cyclop,funlen // One case per Markdown kind.
func (c *converter) node(n mdast.Node) ([]hast.Node, error) {
	switch v := n.(type) {
	case *mdast.Root:
		return c.blocks(v.Children(), false)

	case *mdast.Paragraph:
		children, err := c.phrasing(v.Children())
		if err != nil {
			return nil, err
		}
		return element(v, "p", nil, children)

	case *mdast.Heading:
		children, err := c.phrasing(v.Children())
		if err != nil {
			return nil, err
		}
		return element(v, "h"+strconv.Itoa(v.Depth()), nil, children)

	case *mdast.ThematicBreak:
		return element(v, "hr", nil, nil)

	case *mdast.Blockquote:
		children, err := c.blocks(v.Children(), true)
		if err != nil {
			return nil, err
		}
		return element(v, "blockquote", nil, children)

	case *mdast.List:
		return c.list(v)

	case *mdast.ListItem:
		return c.listItem(v, v.Spread())

	case *mdast.Code:
		return code(v)

	case *mdast.Text:
		text, err := hast.NewText(v.Value(), positionOf(v))
		if err != nil {
			return nil, err
		}
		return []hast.Node{text}, nil

	case *mdast.Emphasis:
		children, err := c.phrasing(v.Children())
		if err != nil {
			return nil, err
		}
		return element(v, "em", nil, children)

	case *mdast.Strong:
		children, err := c.phrasing(v.Children())
		if err != nil {
			return nil, err
		}
		return element(v, "strong", nil, children)

	case *mdast.InlineCode:
		text, err := hast.NewText(v.Value())
		if err != nil {
			return nil, err
		}
		return element(v, "code", nil, []hast.Node{text})

	case *mdast.Break:
		br, err := element(v, "br", nil, nil)
		if err != nil {
			return nil, err
		}
		return append(br, newline()), nil

	case *mdast.Link:
		children, err := c.phrasing(v.Children())
		if err != nil {
			return nil, err
		}
		props := map[string]any{"href": v.URL()}
		if title, ok := v.Title(); ok {
			props["title"] = title
		}
		return element(v, "a", props, children)

	case *mdast.Image:
		props := map[string]any{"src": v.URL()}
		if alt, ok := v.Alt(); ok {
			props["alt"] = alt
		}
		if title, ok := v.Title(); ok {
			props["title"] = title
		}
		return element(v, "img", props, nil)

	default:
		return nil, fmt.Errorf("%w: unsupported node %s", ErrNotMarkdown, n.Type())
	}
}

func code(v *mdast.Code) ([]hast.Node, error) {
	value := v.Value()
	if value != "" {
		value += "\n"
	}
	text, err := hast.NewText(value)
	if err != nil {
		return nil, err
	}

	var props map[string]any
	if lang, ok := v.Lang(); ok {
		props = map[string]any{"className": []string{"language-" + lang}}
	}

	var opts []unist.Option
	if meta, ok := v.Meta(); ok {
		opts = append(opts, unist.WithData(unist.Data{"meta": meta}))
	}

	inner, err := hast.NewElement("code", props, []hast.Node{text}, opts...)
	if err != nil {
		return nil, fmt.Errorf("code: %w", err)
	}
	return element(v, "pre", nil, []hast.Node{inner})
}

func (c *converter) list(v *mdast.List) ([]hast.Node, error) {
	items := v.Items()

	var children []hast.Node
	hasTask := false
	for i, item := range items {
		if _, isTask := item.Checked(); isTask {
			hasTask = true
		}
		converted, err := c.listItem(item, v.Spread())
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		children = append(children, newline())
		children = append(children, converted...)
	}
	if len(children) > 0 {
		children = append(children, newline())
	}

	props := map[string]any{}
	tag := "ul"
	if v.Ordered() {
		tag = "ol"
		if start, ok := v.Start(); ok && start != 1 {
			props["start"] = start
		}
	}
	if hasTask {
		props["className"] = []string{"contains-task-list"}
	}
	if len(props) == 0 {
		props = nil
	}

	return element(v, tag, props, children)
}

// listItem converts an item. In a tight list the paragraphs of an item
// are unwrapped into the li.
func (c *converter) listItem(v *mdast.ListItem, listSpread bool) ([]hast.Node, error) {
	loose := listSpread || v.Spread()
	checked, isTask := v.Checked()

	var children []hast.Node
	for i, child := range v.Content() {
		var converted []hast.Node
		var err error
		if para, ok := child.(*mdast.Paragraph); ok && !loose {
			converted, err = c.phrasing(para.Children())
		} else {
			converted, err = c.node(child)
		}
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}

		if isTask && i == 0 {
			converted, err = withCheckbox(converted, checked, !loose || !isParagraph(child))
			if err != nil {
				return nil, err
			}
		}

		if loose || i > 0 {
			children = append(children, newline())
		}
		children = append(children, converted...)
	}
	if loose && len(children) > 0 {
		children = append(children, newline())
	}

	if isTask && len(children) == 0 {
		box, err := checkbox(checked)
		if err != nil {
			return nil, err
		}
		children = []hast.Node{box}
	}

	var props map[string]any
	if isTask {
		props = map[string]any{"className": []string{"task-list-item"}}
	}
	return element(v, "li", props, children)
}

func isParagraph(n mdast.Node) bool {
	return n.Kind() == mdast.KindParagraph
}

func checkbox(checked bool) (*hast.Element, error) {
	return hast.NewElement("input", map[string]any{
		"type":     "checkbox",
		"checked":  checked,
		"disabled": true,
	}, nil)
}

// withCheckbox puts a checkbox in front of the first converted child. When
// inline is false the child is a p element and the box goes inside it.
func withCheckbox(converted []hast.Node, checked, inline bool) ([]hast.Node, error) {
	box, err := checkbox(checked)
	if err != nil {
		return nil, err
	}
	space, err := hast.NewText(" ")
	if err != nil {
		return nil, err
	}

	if inline {
		return append([]hast.Node{box, space}, converted...), nil
	}

	if len(converted) == 1 {
		if p, ok := converted[0].(*hast.Element); ok && p.TagName() == "p" {
			rebuilt, err := hast.NewElement("p", nil, append([]hast.Node{box, space}, p.Content()...), positionOf(p))
			if err != nil {
				return nil, err
			}
			return []hast.Node{rebuilt}, nil
		}
	}

	return append([]hast.Node{box, space}, converted...), nil
}
