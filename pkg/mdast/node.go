// Package mdast defines the Markdown syntax tree: a closed set of node kinds
// split into block content and phrasing content, built on the unist
// contracts.
//
// Which kinds may nest inside which is decided by Kind alone (see
// ChildClass), so tools walking a tree never need more than the kind.
// Nodes are created through validating constructors and are immutable
// afterwards.
package mdast

import (
	"slices"

	"github.com/yaklabco/ustree/pkg/unist"
)

// Node is any Markdown tree node.
type Node interface {
	unist.Node

	// Kind returns the node's variant.
	Kind() Kind

	mdastNode()
}

// BlockContent is structural content: paragraph, heading, thematicBreak,
// blockquote, list or code.
type BlockContent interface {
	Node
	blockContent()
}

// PhrasingContent is inline content: text, emphasis, strong, inlineCode,
// break, link or image.
type PhrasingContent interface {
	Node
	phrasingContent()
}

// Root is the top of a Markdown document.
type Root struct {
	unist.Base
	children []BlockContent
}

// Paragraph is a run of phrasing content.
type Paragraph struct {
	unist.Base
	children []PhrasingContent
}

// Heading is a section heading of depth 1 to 6.
type Heading struct {
	unist.Base
	depth    int
	children []PhrasingContent
}

// ThematicBreak separates sections.
type ThematicBreak struct {
	unist.Base
}

// Blockquote is quoted block content.
type Blockquote struct {
	unist.Base
	children []BlockContent
}

// List is an ordered or unordered list of items.
type List struct {
	unist.Base
	ordered  bool
	start    *int
	spread   bool
	children []*ListItem
}

// ListItem is one item of a list.
type ListItem struct {
	unist.Base
	checked  *bool
	spread   bool
	children []BlockContent
}

// Code is a block of preformatted text.
type Code struct {
	unist.Base
	value string
	lang  *string
	meta  *string
}

// Text is plain inline text.
type Text struct {
	unist.Base
	value string
}

// Emphasis is stressed phrasing content.
type Emphasis struct {
	unist.Base
	children []PhrasingContent
}

// Strong is strongly stressed phrasing content.
type Strong struct {
	unist.Base
	children []PhrasingContent
}

// InlineCode is a code fragment within text.
type InlineCode struct {
	unist.Base
	value string
}

// Break is a hard line break.
type Break struct {
	unist.Base
}

// Link is a hyperlink around phrasing content.
type Link struct {
	unist.Base
	url      string
	title    *string
	children []PhrasingContent
}

// Image is an embedded image. Unlike Link it has no children; its text
// equivalent is the alt field.
type Image struct {
	unist.Base
	url   string
	title *string
	alt   *string
}

var (
	_ unist.Parent  = (*Root)(nil)
	_ unist.Parent  = (*Paragraph)(nil)
	_ unist.Parent  = (*Heading)(nil)
	_ unist.Parent  = (*Blockquote)(nil)
	_ unist.Parent  = (*List)(nil)
	_ unist.Parent  = (*ListItem)(nil)
	_ unist.Parent  = (*Emphasis)(nil)
	_ unist.Parent  = (*Strong)(nil)
	_ unist.Parent  = (*Link)(nil)
	_ unist.Literal = (*Code)(nil)
	_ unist.Literal = (*Text)(nil)
	_ unist.Literal = (*InlineCode)(nil)

	_ BlockContent    = (*ThematicBreak)(nil)
	_ PhrasingContent = (*Break)(nil)
	_ PhrasingContent = (*Image)(nil)
)

func (*Root) Type() string          { return "root" }
func (*Paragraph) Type() string     { return "paragraph" }
func (*Heading) Type() string       { return "heading" }
func (*ThematicBreak) Type() string { return "thematicBreak" }
func (*Blockquote) Type() string    { return "blockquote" }
func (*List) Type() string          { return "list" }
func (*ListItem) Type() string      { return "listItem" }
func (*Code) Type() string          { return "code" }
func (*Text) Type() string          { return "text" }
func (*Emphasis) Type() string      { return "emphasis" }
func (*Strong) Type() string        { return "strong" }
func (*InlineCode) Type() string    { return "inlineCode" }
func (*Break) Type() string         { return "break" }
func (*Link) Type() string          { return "link" }
func (*Image) Type() string         { return "image" }

func (*Root) Kind() Kind          { return KindRoot }
func (*Paragraph) Kind() Kind     { return KindParagraph }
func (*Heading) Kind() Kind       { return KindHeading }
func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*Blockquote) Kind() Kind    { return KindBlockquote }
func (*List) Kind() Kind          { return KindList }
func (*ListItem) Kind() Kind      { return KindListItem }
func (*Code) Kind() Kind          { return KindCode }
func (*Text) Kind() Kind          { return KindText }
func (*Emphasis) Kind() Kind      { return KindEmphasis }
func (*Strong) Kind() Kind        { return KindStrong }
func (*InlineCode) Kind() Kind    { return KindInlineCode }
func (*Break) Kind() Kind         { return KindBreak }
func (*Link) Kind() Kind          { return KindLink }
func (*Image) Kind() Kind         { return KindImage }

func (*Root) mdastNode()          {}
func (*Paragraph) mdastNode()     {}
func (*Heading) mdastNode()       {}
func (*ThematicBreak) mdastNode() {}
func (*Blockquote) mdastNode()    {}
func (*List) mdastNode()          {}
func (*ListItem) mdastNode()      {}
func (*Code) mdastNode()          {}
func (*Text) mdastNode()          {}
func (*Emphasis) mdastNode()      {}
func (*Strong) mdastNode()        {}
func (*InlineCode) mdastNode()    {}
func (*Break) mdastNode()         {}
func (*Link) mdastNode()          {}
func (*Image) mdastNode()         {}

func (*Paragraph) blockContent()     {}
func (*Heading) blockContent()       {}
func (*ThematicBreak) blockContent() {}
func (*Blockquote) blockContent()    {}
func (*List) blockContent()          {}
func (*Code) blockContent()          {}

func (*Text) phrasingContent()       {}
func (*Emphasis) phrasingContent()   {}
func (*Strong) phrasingContent()     {}
func (*InlineCode) phrasingContent() {}
func (*Break) phrasingContent()      {}
func (*Link) phrasingContent()       {}
func (*Image) phrasingContent()      {}

// Children returns the root's children.
func (r *Root) Children() []unist.Node { return toUnist(r.children) }

// Content returns the root's block content.
func (r *Root) Content() []BlockContent { return slices.Clone(r.children) }

// Children returns the paragraph's children.
func (p *Paragraph) Children() []unist.Node { return toUnist(p.children) }

// Content returns the paragraph's phrasing content.
func (p *Paragraph) Content() []PhrasingContent { return slices.Clone(p.children) }

// Depth returns the heading depth, 1 to 6.
func (h *Heading) Depth() int { return h.depth }

// Children returns the heading's children.
func (h *Heading) Children() []unist.Node { return toUnist(h.children) }

// Content returns the heading's phrasing content.
func (h *Heading) Content() []PhrasingContent { return slices.Clone(h.children) }

// Children returns the blockquote's children.
func (b *Blockquote) Children() []unist.Node { return toUnist(b.children) }

// Content returns the blockquote's block content.
func (b *Blockquote) Content() []BlockContent { return slices.Clone(b.children) }

// Ordered returns true for ordered lists.
func (l *List) Ordered() bool { return l.ordered }

// Start returns the start number and whether one is set. It only has
// meaning for ordered lists.
func (l *List) Start() (int, bool) {
	if l.start == nil {
		return 0, false
	}
	return *l.start, true
}

// Spread returns true if items are separated by blank lines.
func (l *List) Spread() bool { return l.spread }

// Children returns the list's children.
func (l *List) Children() []unist.Node { return toUnist(l.children) }

// Items returns the list items.
func (l *List) Items() []*ListItem { return slices.Clone(l.children) }

// Checked returns the task state and whether the item is a task at all.
func (li *ListItem) Checked() (bool, bool) {
	if li.checked == nil {
		return false, false
	}
	return *li.checked, true
}

// Spread returns true if the item's children are separated by blank lines.
func (li *ListItem) Spread() bool { return li.spread }

// Children returns the item's children.
func (li *ListItem) Children() []unist.Node { return toUnist(li.children) }

// Content returns the item's block content.
func (li *ListItem) Content() []BlockContent { return slices.Clone(li.children) }

// Value returns the code.
func (c *Code) Value() string { return c.value }

// Lang returns the language tag and whether one is set.
func (c *Code) Lang() (string, bool) { return deref(c.lang) }

// Meta returns the meta string and whether one is set.
func (c *Code) Meta() (string, bool) { return deref(c.meta) }

// Value returns the text.
func (t *Text) Value() string { return t.value }

// Children returns the emphasis's children.
func (e *Emphasis) Children() []unist.Node { return toUnist(e.children) }

// Content returns the emphasis's phrasing content.
func (e *Emphasis) Content() []PhrasingContent { return slices.Clone(e.children) }

// Children returns the strong node's children.
func (s *Strong) Children() []unist.Node { return toUnist(s.children) }

// Content returns the strong node's phrasing content.
func (s *Strong) Content() []PhrasingContent { return slices.Clone(s.children) }

// Value returns the code.
func (c *InlineCode) Value() string { return c.value }

// URL returns the link destination. It may be empty.
func (l *Link) URL() string { return l.url }

// Title returns the link title and whether one is set.
func (l *Link) Title() (string, bool) { return deref(l.title) }

// Children returns the link's children.
func (l *Link) Children() []unist.Node { return toUnist(l.children) }

// Content returns the link's phrasing content.
func (l *Link) Content() []PhrasingContent { return slices.Clone(l.children) }

// URL returns the image source. It may be empty.
func (i *Image) URL() string { return i.url }

// Title returns the image title and whether one is set.
func (i *Image) Title() (string, bool) { return deref(i.title) }

// Alt returns the alternative text and whether one is set.
func (i *Image) Alt() (string, bool) { return deref(i.alt) }

func toUnist[T Node](children []T) []unist.Node {
	out := make([]unist.Node, len(children))
	for i, child := range children {
		out[i] = child
	}
	return out
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
