package goldmark_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/parser/goldmark"
	"github.com/yaklabco/ustree/pkg/unist"
)

func parse(t *testing.T, opts goldmark.Options, src string) *goldmark.Result {
	t.Helper()

	result, err := goldmark.New(opts).Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, result.Root)
	require.NoError(t, mdast.Check(result.Root))
	return result
}

func kinds[T mdast.Node](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Type()
	}
	return out
}

func position(t *testing.T, n unist.Node) string {
	t.Helper()
	pos, ok := n.Position()
	require.True(t, ok, "%s has no position", n.Type())
	return pos.String()
}

func TestNew_Flavor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		flavor string
		want   string
	}{
		{"commonmark", goldmark.FlavorCommonMark, goldmark.FlavorCommonMark},
		{"gfm", goldmark.FlavorGFM, goldmark.FlavorGFM},
		{"invalid defaults to commonmark", "invalid", goldmark.FlavorCommonMark},
		{"empty defaults to commonmark", "", goldmark.FlavorCommonMark},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, goldmark.New(goldmark.Options{Flavor: testCase.flavor}).Flavor())
		})
	}
}

func TestParse_Basic(t *testing.T) {
	t.Parallel()

	result := parse(t, goldmark.Options{}, "# Hello\n\nWorld")
	root := result.Root

	require.Equal(t, []string{"heading", "paragraph"}, kinds(root.Content()))
	heading := root.Content()[0].(*mdast.Heading)
	assert.Equal(t, 1, heading.Depth())
	assert.Equal(t, "Hello", mdast.ToString(heading))
	assert.Equal(t, "World", mdast.ToString(root.Content()[1]))
	assert.Empty(t, result.Dropped)

	// Positions are off by default.
	assert.Empty(t, unist.FindAll(root, unist.HasPosition))
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	result := parse(t, goldmark.Options{Positions: true}, "")
	assert.Empty(t, result.Root.Content())
	assert.Equal(t, "1:1-1:1", position(t, result.Root))
}

func TestParse_Positions(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "# Hello\n\nWorld").Root

	assert.Equal(t, "1:1-3:6", position(t, root))
	assert.Equal(t, "1:1-1:8", position(t, root.Content()[0]))
	assert.Equal(t, "3:1-3:6", position(t, root.Content()[1]))

	text := root.Content()[1].(*mdast.Paragraph).Content()[0]
	pos, ok := text.Position()
	require.True(t, ok)
	require.NotNil(t, pos.Start.Offset)
	assert.Equal(t, 9, *pos.Start.Offset)
	assert.Equal(t, 14, *pos.End.Offset)
}

func TestParse_SetextHeading(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "Title\n=====\n").Root

	require.Len(t, root.Content(), 1)
	heading := root.Content()[0].(*mdast.Heading)
	assert.Equal(t, 1, heading.Depth())
	assert.Equal(t, "1:1-2:6", position(t, heading))
}

func TestParse_ThematicBreak(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "a\n\n---\n\nb\n").Root

	require.Equal(t, []string{"paragraph", "thematicBreak", "paragraph"}, kinds(root.Content()))
	assert.Equal(t, "3:1-3:4", position(t, root.Content()[1]))
}

func TestParse_Lists(t *testing.T) {
	t.Parallel()

	t.Run("ordered", func(t *testing.T) {
		t.Parallel()

		root := parse(t, goldmark.Options{}, "3. one\n4. two\n").Root
		list := root.Content()[0].(*mdast.List)

		assert.True(t, list.Ordered())
		start, ok := list.Start()
		assert.True(t, ok)
		assert.Equal(t, 3, start)
		assert.False(t, list.Spread())
		require.Len(t, list.Items(), 2)
		assert.Equal(t, "two", mdast.ToString(list.Items()[1]))
		assert.Equal(t, []string{"paragraph"}, kinds(list.Items()[0].Content()))
	})

	t.Run("unordered", func(t *testing.T) {
		t.Parallel()

		root := parse(t, goldmark.Options{}, "- a\n- b\n").Root
		list := root.Content()[0].(*mdast.List)

		assert.False(t, list.Ordered())
		_, ok := list.Start()
		assert.False(t, ok)
		for _, item := range list.Items() {
			_, isTask := item.Checked()
			assert.False(t, isTask)
		}
	})

	t.Run("loose", func(t *testing.T) {
		t.Parallel()

		root := parse(t, goldmark.Options{}, "- a\n\n- b\n").Root
		list := root.Content()[0].(*mdast.List)
		assert.True(t, list.Spread())
	})
}

func TestParse_TaskList(t *testing.T) {
	t.Parallel()

	src := "- [x] done\n- [ ] todo\n- plain\n"

	t.Run("gfm", func(t *testing.T) {
		t.Parallel()

		root := parse(t, goldmark.Options{Flavor: goldmark.FlavorGFM}, src).Root
		items := root.Content()[0].(*mdast.List).Items()
		require.Len(t, items, 3)

		checked, isTask := items[0].Checked()
		assert.True(t, isTask)
		assert.True(t, checked)
		assert.Equal(t, "done", mdast.ToString(items[0]))

		checked, isTask = items[1].Checked()
		assert.True(t, isTask)
		assert.False(t, checked)

		_, isTask = items[2].Checked()
		assert.False(t, isTask)
	})

	t.Run("commonmark keeps the brackets", func(t *testing.T) {
		t.Parallel()

		root := parse(t, goldmark.Options{}, src).Root
		items := root.Content()[0].(*mdast.List).Items()
		_, isTask := items[0].Checked()
		assert.False(t, isTask)
		assert.Equal(t, "[x] done", mdast.ToString(items[0]))
	})
}

func TestParse_FencedCode(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "```go title=main.go\nfmt.Println()\n```\n").Root

	code := root.Content()[0].(*mdast.Code)
	assert.Equal(t, "fmt.Println()", code.Value())
	lang, ok := code.Lang()
	assert.True(t, ok)
	assert.Equal(t, "go", lang)
	meta, ok := code.Meta()
	assert.True(t, ok)
	assert.Equal(t, "title=main.go", meta)
	assert.Equal(t, "1:1-3:4", position(t, code))
}

func TestParse_DetectLang(t *testing.T) {
	t.Parallel()

	src := "```\npackage main\n```\n\n```text\npackage main\n```\n"

	root := parse(t, goldmark.Options{DetectLang: true}, src).Root
	require.Len(t, root.Content(), 2)

	lang, ok := root.Content()[0].(*mdast.Code).Lang()
	assert.True(t, ok)
	assert.Equal(t, "go", lang)

	// An explicit language is never replaced.
	lang, _ = root.Content()[1].(*mdast.Code).Lang()
	assert.Equal(t, "text", lang)

	plain := parse(t, goldmark.Options{}, src).Root
	_, ok = plain.Content()[0].(*mdast.Code).Lang()
	assert.False(t, ok)
}

func TestParse_IndentedCode(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{}, "    x := 1\n    y := 2\n").Root

	code := root.Content()[0].(*mdast.Code)
	assert.Equal(t, "x := 1\ny := 2", code.Value())
	_, ok := code.Lang()
	assert.False(t, ok)
}

func TestParse_Phrasing(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{}, "*a* **b** `c` [d](http://x \"T\") ![e](f.png)\n").Root
	para := root.Content()[0].(*mdast.Paragraph)

	assert.Equal(t,
		[]string{"emphasis", "text", "strong", "text", "inlineCode", "text", "link", "text", "image"},
		kinds(para.Content()))

	link := para.Content()[6].(*mdast.Link)
	assert.Equal(t, "http://x", link.URL())
	title, ok := link.Title()
	assert.True(t, ok)
	assert.Equal(t, "T", title)
	assert.Equal(t, "d", mdast.ToString(link))

	image := para.Content()[8].(*mdast.Image)
	assert.Equal(t, "f.png", image.URL())
	alt, ok := image.Alt()
	assert.True(t, ok)
	assert.Equal(t, "e", alt)
	_, ok = image.Title()
	assert.False(t, ok)

	assert.Equal(t, "c", para.Content()[4].(*mdast.InlineCode).Value())
}

func TestParse_PhrasingPositions(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "x *a* y\n").Root
	para := root.Content()[0].(*mdast.Paragraph)

	require.Equal(t, []string{"text", "emphasis", "text"}, kinds(para.Content()))
	assert.Equal(t, "1:3-1:6", position(t, para.Content()[1]))
	assert.Equal(t, "1:1-1:3", position(t, para.Content()[0]))
}

func TestParse_Breaks(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{}, "a  \nb\nc\n").Root
	para := root.Content()[0].(*mdast.Paragraph)

	require.Equal(t, []string{"text", "break", "text"}, kinds(para.Content()))
	assert.Equal(t, "a", para.Content()[0].(*mdast.Text).Value())
	assert.Equal(t, "b\nc", para.Content()[2].(*mdast.Text).Value())
}

func TestParse_Blockquote(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Positions: true}, "> quoted\n").Root

	quote := root.Content()[0].(*mdast.Blockquote)
	assert.Equal(t, []string{"paragraph"}, kinds(quote.Content()))
	assert.Equal(t, "1:1-1:9", position(t, quote))
}

func TestParse_AutoLink(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{}, "<https://example.com>\n").Root
	para := root.Content()[0].(*mdast.Paragraph)

	link := para.Content()[0].(*mdast.Link)
	assert.Equal(t, "https://example.com", link.URL())
	assert.Equal(t, "https://example.com", mdast.ToString(link))
}

func TestParse_Strikethrough(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{Flavor: goldmark.FlavorGFM}, "~~gone~~ here\n").Root
	para := root.Content()[0].(*mdast.Paragraph)

	require.Len(t, para.Content(), 1)
	assert.Equal(t, "gone here", para.Content()[0].(*mdast.Text).Value())
}

func TestParse_Dropped(t *testing.T) {
	t.Parallel()

	t.Run("html block", func(t *testing.T) {
		t.Parallel()

		result := parse(t, goldmark.Options{}, "<div>x</div>\n\npara\n")
		assert.Equal(t, []string{"paragraph"}, kinds(result.Root.Content()))
		require.Len(t, result.Dropped, 1)
		assert.Equal(t, goldmark.DroppedHTML, result.Dropped[0].Kind)
		assert.Equal(t, 1, result.Dropped[0].Position.Start.Line)
	})

	t.Run("inline html", func(t *testing.T) {
		t.Parallel()

		result := parse(t, goldmark.Options{}, "a <b>x</b> c\n")
		assert.Len(t, result.Dropped, 2)
		para := result.Root.Content()[0].(*mdast.Paragraph)
		assert.Equal(t, "a x c", mdast.ToString(para))
	})

	t.Run("gfm table", func(t *testing.T) {
		t.Parallel()

		result := parse(t, goldmark.Options{Flavor: goldmark.FlavorGFM}, "| a |\n|---|\n| 1 |\n")
		assert.Empty(t, result.Root.Content())
		require.Len(t, result.Dropped, 1)
		assert.Equal(t, goldmark.DroppedTable, result.Dropped[0].Kind)
		assert.Equal(t, 1, result.Dropped[0].Position.Start.Line)
	})
}

func TestParse_NodeIDs(t *testing.T) {
	t.Parallel()

	root := parse(t, goldmark.Options{NodeIDs: true}, "# a\n\n- b *c*\n").Root

	seen := map[string]bool{}
	err := unist.Walk(root, func(n unist.Node, _ []unist.Parent) error {
		id, ok := n.Data()["id"].(string)
		require.True(t, ok, "%s has no id", n.Type())
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id")
		seen[id] = true
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, unist.Count(root), len(seen))
}

func TestParse_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := goldmark.New(goldmark.Options{}).Parse(ctx, []byte("# x"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestParse_LogsDropped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&buf, "debug"))

	_, err := goldmark.New(goldmark.Options{}).Parse(ctx, []byte("<div></div>\n"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "dropped construct")
	assert.Contains(t, buf.String(), "kind=html")
}

func TestParse_DoesNotRetainInput(t *testing.T) {
	t.Parallel()

	src := []byte("hello\n")
	result, err := goldmark.New(goldmark.Options{}).Parse(context.Background(), src)
	require.NoError(t, err)

	copy(src, "HELLO\n")
	assert.Equal(t, "hello", mdast.ToString(result.Root))
}

func TestSplitInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info string
		lang string
		meta string
	}{
		{"", "", ""},
		{"go", "go", ""},
		{"  go  ", "go", ""},
		{"go title=x", "go", "title=x"},
		{"js\t{1,3}  ", "js", "{1,3}"},
		{"sh  a b", "sh", "a b"},
	}

	for _, testCase := range tests {
		info := goldmark.SplitInfo(testCase.info)
		if testCase.lang == "" {
			assert.Nil(t, info.Lang, testCase.info)
		} else {
			require.NotNil(t, info.Lang, testCase.info)
			assert.Equal(t, testCase.lang, *info.Lang)
		}
		if testCase.meta == "" {
			assert.Nil(t, info.Meta, testCase.info)
		} else {
			require.NotNil(t, info.Meta, testCase.info)
			assert.Equal(t, testCase.meta, *info.Meta)
		}
	}
}
