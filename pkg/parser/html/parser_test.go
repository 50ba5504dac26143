package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/yaklabco/ustree/pkg/hast"
	htmlparser "github.com/yaklabco/ustree/pkg/parser/html"
	"github.com/yaklabco/ustree/pkg/unist"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head><title>Doc</title></head>
<body>
<!-- intro -->
<p class="lead note" id="first">Hello <a href="/x" data-track-id="7">there</a></p>
<input type="checkbox" checked disabled tabindex="2">
<p>Second</p>
</body>
</html>`

func parse(t *testing.T, src string, opts htmlparser.Options) *hast.Root {
	t.Helper()

	root, err := htmlparser.ParseString(context.Background(), src, opts)
	require.NoError(t, err)
	require.NoError(t, hast.Check(root))
	return root
}

func findElements(root hast.Node, tag string) []*hast.Element {
	var out []*hast.Element
	for _, n := range unist.FindByType(root, "element") {
		if el := n.(*hast.Element); el.TagName() == tag {
			out = append(out, el)
		}
	}
	return out
}

func TestParse_Document(t *testing.T) {
	t.Parallel()

	root := parse(t, page, htmlparser.Options{})

	content := root.Content()
	require.GreaterOrEqual(t, len(content), 2)
	doctype, ok := content[0].(*hast.Doctype)
	require.True(t, ok)
	assert.Equal(t, "html", doctype.Name())

	htmlEl := content[1].(*hast.Element)
	assert.Equal(t, "html", htmlEl.TagName())
	lang, ok := htmlEl.Property("lang")
	require.True(t, ok)
	assert.Equal(t, "en", lang.Text())

	comments := unist.FindByType(root, "comment")
	require.Len(t, comments, 1)
	assert.Equal(t, " intro ", comments[0].(*hast.Comment).Value())

	assert.Len(t, findElements(root, "p"), 2)
	assert.Len(t, findElements(root, "title"), 1)
}

func TestParse_Properties(t *testing.T) {
	t.Parallel()

	root := parse(t, page, htmlparser.Options{})

	lead := findElements(root, "p")[0]
	className, ok := lead.Property("className")
	require.True(t, ok)
	assert.Equal(t, []any{"lead", "note"}, className.Interface())

	link := findElements(root, "a")[0]
	track, ok := link.Property("dataTrackId")
	require.True(t, ok)
	assert.Equal(t, "7", track.Text())

	input := findElements(root, "input")[0]
	checked, _ := input.Property("checked")
	b, isBool := checked.AsBool()
	assert.True(t, isBool)
	assert.True(t, b)

	tabIndex, _ := input.Property("tabIndex")
	n, isNumber := tabIndex.AsNumber()
	assert.True(t, isNumber)
	assert.InDelta(t, 2.0, n, 0)
}

func TestParse_DoctypeIDs(t *testing.T) {
	t.Parallel()

	root := parse(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><p>x`,
		htmlparser.Options{})

	doctype := root.Content()[0].(*hast.Doctype)
	public, ok := doctype.Public()
	require.True(t, ok)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", public)
	system, ok := doctype.System()
	require.True(t, ok)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", system)
}

func TestParse_Selector(t *testing.T) {
	t.Parallel()

	root := parse(t, page, htmlparser.Options{Selector: "body > p"})

	content := root.Content()
	require.Len(t, content, 2)
	assert.Equal(t, "Hello there", textOf(content[0]))
	assert.Equal(t, "Second", textOf(content[1]))

	none := parse(t, page, htmlparser.Options{Selector: "table"})
	assert.Empty(t, none.Content())
}

func TestParse_InvalidSelector(t *testing.T) {
	t.Parallel()

	_, err := htmlparser.ParseString(context.Background(), page, htmlparser.Options{Selector: "p[["})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid selector")
}

func TestParse_NodeIDs(t *testing.T) {
	t.Parallel()

	root := parse(t, "<p>a<b>b</b></p>", htmlparser.Options{NodeIDs: true})
	missing := unist.FindAll(root, func(n unist.Node) bool {
		_, ok := n.Data()["id"]
		return !ok
	})
	assert.Empty(t, missing)
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := htmlparser.Parse(ctx, strings.NewReader(page), htmlparser.Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPropertyName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"class":          "className",
		"for":            "htmlFor",
		"id":             "id",
		"HREF":           "href",
		"data-foo-bar":   "dataFooBar",
		"aria-label":     "ariaLabel",
		"tabindex":       "tabIndex",
		"http-equiv":     "httpEquiv",
		"data--x":        "dataX",
		"accept-charset": "acceptCharset",
	}

	for attr, want := range tests {
		assert.Equal(t, want, htmlparser.PropertyName(attr), attr)
	}
}

func TestProperties(t *testing.T) {
	t.Parallel()

	props := htmlparser.Properties([]html.Attribute{
		{Key: "rel", Val: "noopener  noreferrer"},
		{Key: "colspan", Val: "wide"},
		{Key: "rowspan", Val: "3"},
		{Namespace: "xlink", Key: "href", Val: "#a"},
		{Key: "hidden", Val: ""},
	})

	assert.Equal(t, map[string]any{
		"rel":        []string{"noopener", "noreferrer"},
		"colSpan":    "wide",
		"rowSpan":    3,
		"xlink:href": "#a",
		"hidden":     true,
	}, props)

	assert.Nil(t, htmlparser.Properties(nil))
}

func textOf(n hast.Node) string {
	var sb strings.Builder
	for _, t := range unist.FindByType(n, "text") {
		sb.WriteString(t.(*hast.Text).Value())
	}
	return sb.String()
}
