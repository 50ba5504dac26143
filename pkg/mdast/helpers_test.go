package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

func ptr[T any](v T) *T { return &v }

func text(t *testing.T, value string) *mdast.Text {
	t.Helper()
	node, err := mdast.NewText(value)
	require.NoError(t, err)
	return node
}

func paragraph(t *testing.T, children ...mdast.Node) *mdast.Paragraph {
	t.Helper()
	node, err := mdast.NewParagraph(children)
	require.NoError(t, err)
	return node
}

func heading(t *testing.T, depth int, children ...mdast.Node) *mdast.Heading {
	t.Helper()
	node, err := mdast.NewHeading(depth, children)
	require.NoError(t, err)
	return node
}

func item(t *testing.T, checked *bool, children ...mdast.Node) *mdast.ListItem {
	t.Helper()
	node, err := mdast.NewListItem(mdast.ListItemProps{Checked: checked}, children)
	require.NoError(t, err)
	return node
}

func image(t *testing.T, url string) *mdast.Image {
	t.Helper()
	node, err := mdast.NewImage(url, nil, ptr("alt text"))
	require.NoError(t, err)
	return node
}

// sample returns one node of every kind. Each call builds fresh nodes.
func sample(t *testing.T, kind mdast.Kind) mdast.Node {
	t.Helper()

	var (
		node mdast.Node
		err  error
	)

	switch kind {
	case mdast.KindRoot:
		node, err = mdast.NewRoot(nil)
	case mdast.KindParagraph:
		node, err = mdast.NewParagraph(nil)
	case mdast.KindHeading:
		node, err = mdast.NewHeading(1, nil)
	case mdast.KindThematicBreak:
		node, err = mdast.NewThematicBreak()
	case mdast.KindBlockquote:
		node, err = mdast.NewBlockquote(nil)
	case mdast.KindList:
		node, err = mdast.NewList(mdast.ListProps{}, nil)
	case mdast.KindListItem:
		node, err = mdast.NewListItem(mdast.ListItemProps{}, nil)
	case mdast.KindCode:
		node, err = mdast.NewCode("x", mdast.CodeInfo{})
	case mdast.KindText:
		node, err = mdast.NewText("x")
	case mdast.KindEmphasis:
		node, err = mdast.NewEmphasis(nil)
	case mdast.KindStrong:
		node, err = mdast.NewStrong(nil)
	case mdast.KindInlineCode:
		node, err = mdast.NewInlineCode("x")
	case mdast.KindBreak:
		node, err = mdast.NewBreak()
	case mdast.KindLink:
		node, err = mdast.NewLink("", nil, nil)
	case mdast.KindImage:
		node, err = mdast.NewImage("", nil, nil)
	default:
		t.Fatalf("no sample for kind %s", kind)
	}

	require.NoError(t, err)
	return node
}

// buildWith constructs a parent of kind with the given children.
func buildWith(kind mdast.Kind, children []mdast.Node) (mdast.Node, error) {
	fields := mdast.Fields{}
	switch kind {
	case mdast.KindHeading:
		fields.Depth = ptr(2)
	case mdast.KindLink:
		fields.URL = ptr("https://example.com")
	case mdast.KindCode, mdast.KindText, mdast.KindInlineCode:
		fields.Value = ptr("x")
	case mdast.KindImage:
		fields.URL = ptr("")
	}
	return mdast.New(kind, fields, children)
}

func span(startLine, startCol, endLine, endCol int) unist.Option {
	return unist.WithPosition(unist.Position{
		Start: unist.NewPoint(startLine, startCol),
		End:   unist.NewPoint(endLine, endCol),
	})
}
