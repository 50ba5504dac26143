package mdast

import (
	"github.com/yaklabco/ustree/pkg/unist"
)

// MaxHeadingDepth is the deepest heading level.
const MaxHeadingDepth = 6

// NewRoot creates a document root holding block content.
func NewRoot(children []Node, opts ...unist.Option) (*Root, error) {
	base, err := unist.NewBase("root", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[BlockContent](KindRoot, children)
	if err != nil {
		return nil, err
	}
	return &Root{Base: base, children: content}, nil
}

// NewParagraph creates a paragraph holding phrasing content.
func NewParagraph(children []Node, opts ...unist.Option) (*Paragraph, error) {
	base, err := unist.NewBase("paragraph", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[PhrasingContent](KindParagraph, children)
	if err != nil {
		return nil, err
	}
	return &Paragraph{Base: base, children: content}, nil
}

// NewHeading creates a heading. depth must be 1 to 6.
func NewHeading(depth int, children []Node, opts ...unist.Option) (*Heading, error) {
	base, err := unist.NewBase("heading", opts...)
	if err != nil {
		return nil, err
	}
	if depth < 1 || depth > MaxHeadingDepth {
		return nil, unist.FieldError("heading", "depth", "depth %d is outside 1..%d", depth, MaxHeadingDepth)
	}
	content, err := convertChildren[PhrasingContent](KindHeading, children)
	if err != nil {
		return nil, err
	}
	return &Heading{Base: base, depth: depth, children: content}, nil
}

// NewThematicBreak creates a thematic break.
func NewThematicBreak(opts ...unist.Option) (*ThematicBreak, error) {
	base, err := unist.NewBase("thematicBreak", opts...)
	if err != nil {
		return nil, err
	}
	return &ThematicBreak{Base: base}, nil
}

// NewBlockquote creates a blockquote holding block content.
func NewBlockquote(children []Node, opts ...unist.Option) (*Blockquote, error) {
	base, err := unist.NewBase("blockquote", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[BlockContent](KindBlockquote, children)
	if err != nil {
		return nil, err
	}
	return &Blockquote{Base: base, children: content}, nil
}

// ListProps holds the fields of a list.
type ListProps struct {
	Ordered bool

	// Start is the number of the first item. A negative start on an
	// ordered list is rejected; on an unordered list it is kept but inert.
	Start *int

	Spread bool
}

// NewList creates a list. Children must be list items.
func NewList(props ListProps, children []Node, opts ...unist.Option) (*List, error) {
	base, err := unist.NewBase("list", opts...)
	if err != nil {
		return nil, err
	}
	if props.Ordered && props.Start != nil && *props.Start < 0 {
		return nil, unist.FieldError("list", "start", "ordered list cannot start at %d", *props.Start)
	}
	items, err := convertChildren[*ListItem](KindList, children)
	if err != nil {
		return nil, err
	}
	return &List{
		Base:     base,
		ordered:  props.Ordered,
		start:    clonePtr(props.Start),
		spread:   props.Spread,
		children: items,
	}, nil
}

// ListItemProps holds the fields of a list item.
type ListItemProps struct {
	// Checked is nil for a plain item, or the state of a task item.
	Checked *bool

	Spread bool
}

// NewListItem creates a list item holding block content.
func NewListItem(props ListItemProps, children []Node, opts ...unist.Option) (*ListItem, error) {
	base, err := unist.NewBase("listItem", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[BlockContent](KindListItem, children)
	if err != nil {
		return nil, err
	}
	return &ListItem{
		Base:     base,
		checked:  clonePtr(props.Checked),
		spread:   props.Spread,
		children: content,
	}, nil
}

// CodeInfo holds the optional fields of a code block.
type CodeInfo struct {
	Lang *string

	// Meta may only be set together with Lang.
	Meta *string
}

// NewCode creates a code block.
func NewCode(value string, info CodeInfo, opts ...unist.Option) (*Code, error) {
	base, err := unist.NewBase("code", opts...)
	if err != nil {
		return nil, err
	}
	if info.Meta != nil && info.Lang == nil {
		return nil, unist.FieldError("code", "meta", "meta requires lang")
	}
	return &Code{
		Base:  base,
		value: value,
		lang:  clonePtr(info.Lang),
		meta:  clonePtr(info.Meta),
	}, nil
}

// NewText creates a text node.
func NewText(value string, opts ...unist.Option) (*Text, error) {
	base, err := unist.NewBase("text", opts...)
	if err != nil {
		return nil, err
	}
	return &Text{Base: base, value: value}, nil
}

// NewEmphasis creates an emphasis node holding phrasing content.
func NewEmphasis(children []Node, opts ...unist.Option) (*Emphasis, error) {
	base, err := unist.NewBase("emphasis", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[PhrasingContent](KindEmphasis, children)
	if err != nil {
		return nil, err
	}
	return &Emphasis{Base: base, children: content}, nil
}

// NewStrong creates a strong node holding phrasing content.
func NewStrong(children []Node, opts ...unist.Option) (*Strong, error) {
	base, err := unist.NewBase("strong", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[PhrasingContent](KindStrong, children)
	if err != nil {
		return nil, err
	}
	return &Strong{Base: base, children: content}, nil
}

// NewInlineCode creates an inline code node.
func NewInlineCode(value string, opts ...unist.Option) (*InlineCode, error) {
	base, err := unist.NewBase("inlineCode", opts...)
	if err != nil {
		return nil, err
	}
	return &InlineCode{Base: base, value: value}, nil
}

// NewBreak creates a hard line break.
func NewBreak(opts ...unist.Option) (*Break, error) {
	base, err := unist.NewBase("break", opts...)
	if err != nil {
		return nil, err
	}
	return &Break{Base: base}, nil
}

// NewLink creates a link. url may be empty; title is optional.
func NewLink(url string, title *string, children []Node, opts ...unist.Option) (*Link, error) {
	base, err := unist.NewBase("link", opts...)
	if err != nil {
		return nil, err
	}
	content, err := convertChildren[PhrasingContent](KindLink, children)
	if err != nil {
		return nil, err
	}
	return &Link{Base: base, url: url, title: clonePtr(title), children: content}, nil
}

// NewImage creates an image. url may be empty; title and alt are optional.
func NewImage(url string, title, alt *string, opts ...unist.Option) (*Image, error) {
	base, err := unist.NewBase("image", opts...)
	if err != nil {
		return nil, err
	}
	return &Image{Base: base, url: url, title: clonePtr(title), alt: clonePtr(alt)}, nil
}

// Nodes converts a typed child list to the []Node the constructors take.
func Nodes[T Node](children ...T) []Node {
	out := make([]Node, len(children))
	for i, child := range children {
		out[i] = child
	}
	return out
}

// convertChildren checks every child against the containment rules of
// parent and returns them as the parent's typed child list.
func convertChildren[T Node](parent Kind, children []Node) ([]T, error) {
	if len(children) == 0 {
		return nil, nil
	}

	out := make([]T, len(children))
	for i, child := range children {
		if child == nil {
			return nil, unist.ShapeError(parent.String(), i, "child is nil")
		}
		typed, ok := child.(T)
		if !ok || !CanContain(parent, child.Kind()) {
			return nil, unist.ShapeError(parent.String(), i, "%s cannot contain %s (%s content)",
				parent, child.Kind(), child.Kind().Class())
		}
		out[i] = typed
	}

	if i := unist.DuplicateChild(children); i >= 0 {
		return nil, unist.ShapeError(parent.String(), i, "child appears more than once")
	}

	return out, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
