// Package html builds validated HTML trees from golang.org/x/net/html.
package html

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/hast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// Options control how HTML is mapped to the tree.
type Options struct {
	// Selector keeps only the elements matching a CSS selector. The root
	// then holds one subtree per match in document order.
	Selector string

	// NodeIDs stamps every node with a random data.id.
	NodeIDs bool
}

// Parse reads an HTML document and returns it as a hast tree. The input is
// parsed the way a browser would, so missing html, head and body elements
// are supplied.
func Parse(ctx context.Context, r io.Reader, opts Options) (*hast.Root, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	var matcher cascadia.Selector
	if opts.Selector != "" {
		sel, err := cascadia.Compile(opts.Selector)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", opts.Selector, err)
		}
		matcher = sel
	}

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := &mapper{opts: opts}

	if matcher == nil {
		children, err := m.children(doc)
		if err != nil {
			return nil, err
		}
		return hast.NewRoot(children, m.options()...)
	}

	matches := goquery.NewDocumentFromNode(doc).FindMatcher(matcher)
	logging.FromContext(ctx).Debug("selected elements",
		logging.FieldSelector, opts.Selector,
		logging.FieldNodes, matches.Length())

	children := make([]hast.Node, 0, matches.Length())
	for _, n := range matches.Nodes {
		node, err := m.node(n)
		if err != nil {
			return nil, err
		}
		if node != nil {
			children = append(children, node)
		}
	}
	return hast.NewRoot(children, m.options()...)
}

// ParseString is Parse over a string.
func ParseString(ctx context.Context, src string, opts Options) (*hast.Root, error) {
	return Parse(ctx, strings.NewReader(src), opts)
}

type mapper struct {
	opts Options
}

func (m *mapper) options() []unist.Option {
	if !m.opts.NodeIDs {
		return nil
	}
	return []unist.Option{unist.WithData(unist.Data{"id": uuid.NewString()})}
}

func (m *mapper) children(parent *html.Node) ([]hast.Node, error) {
	var out []hast.Node
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		node, err := m.node(child)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}

// node converts one x/net/html node. Nodes with no hast kind map to nil.
//
//nolint:ireturn // hast.Node is a closed sum type.
func (m *mapper) node(n *html.Node) (hast.Node, error) {
	switch n.Type {
	case html.ElementNode:
		children, err := m.children(n)
		if err != nil {
			return nil, err
		}
		el, err := hast.NewElement(n.Data, Properties(n.Attr), children, m.options()...)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", n.Data, err)
		}
		return el, nil

	case html.TextNode:
		text, err := hast.NewText(n.Data, m.options()...)
		if err != nil {
			return nil, err
		}
		return text, nil

	case html.CommentNode:
		comment, err := hast.NewComment(n.Data, m.options()...)
		if err != nil {
			return nil, err
		}
		return comment, nil

	case html.DoctypeNode:
		var ids hast.DoctypeIDs
		for _, attr := range n.Attr {
			value := attr.Val
			switch attr.Key {
			case "public":
				ids.Public = &value
			case "system":
				ids.System = &value
			}
		}
		doctype, err := hast.NewDoctype(n.Data, ids, m.options()...)
		if err != nil {
			return nil, err
		}
		return doctype, nil

	default:
		return nil, nil
	}
}
