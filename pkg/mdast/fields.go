package mdast

import "github.com/yaklabco/ustree/pkg/unist"

// Fields carries the kind-specific fields for New. A nil pointer means the
// field is absent. Setting a field the kind does not have is an error, as is
// leaving out a required one (value, depth, url).
type Fields struct {
	Value   *string
	Depth   *int
	Ordered *bool
	Start   *int
	Spread  *bool
	Checked *bool
	Lang    *string
	Meta    *string
	URL     *string
	Title   *string
	Alt     *string
}

// fieldNames lists Fields in a fixed order for error reporting.
//
//nolint:gochecknoglobals // Read-only lookup table.
var fieldNames = []string{"value", "depth", "ordered", "start", "spread", "checked", "lang", "meta", "url", "title", "alt"}

//nolint:gochecknoglobals // Read-only lookup table.
var kindFields = map[Kind][]string{
	KindHeading:    {"depth"},
	KindList:       {"ordered", "start", "spread"},
	KindListItem:   {"checked", "spread"},
	KindCode:       {"value", "lang", "meta"},
	KindText:       {"value"},
	KindInlineCode: {"value"},
	KindLink:       {"url", "title"},
	KindImage:      {"url", "title", "alt"},
}

func (f Fields) present() map[string]bool {
	return map[string]bool{
		"value":   f.Value != nil,
		"depth":   f.Depth != nil,
		"ordered": f.Ordered != nil,
		"start":   f.Start != nil,
		"spread":  f.Spread != nil,
		"checked": f.Checked != nil,
		"lang":    f.Lang != nil,
		"meta":    f.Meta != nil,
		"url":     f.URL != nil,
		"title":   f.Title != nil,
		"alt":     f.Alt != nil,
	}
}

// New creates a node of any kind from dynamic input, e.g. a decoder.
// Children given to a kind that cannot have them are a ShapeViolation.
func New(kind Kind, fields Fields, children []Node, opts ...unist.Option) (Node, error) {
	if _, ok := ChildClass(kind); !ok && children != nil {
		return nil, unist.ShapeError(kind.String(), unist.NoIndex, "%s cannot have children", kind)
	}

	present := fields.present()
	allowed := map[string]bool{}
	for _, name := range kindFields[kind] {
		allowed[name] = true
	}
	for _, name := range fieldNames {
		if present[name] && !allowed[name] {
			return nil, unist.FieldError(kind.String(), name, "%s has no field %q", kind, name)
		}
	}

	switch kind {
	case KindRoot:
		return NewRoot(children, opts...)
	case KindParagraph:
		return NewParagraph(children, opts...)
	case KindHeading:
		if fields.Depth == nil {
			return nil, unist.FieldError("heading", "depth", "required")
		}
		return NewHeading(*fields.Depth, children, opts...)
	case KindThematicBreak:
		return NewThematicBreak(opts...)
	case KindBlockquote:
		return NewBlockquote(children, opts...)
	case KindList:
		return NewList(ListProps{
			Ordered: valueOr(fields.Ordered),
			Start:   fields.Start,
			Spread:  valueOr(fields.Spread),
		}, children, opts...)
	case KindListItem:
		return NewListItem(ListItemProps{
			Checked: fields.Checked,
			Spread:  valueOr(fields.Spread),
		}, children, opts...)
	case KindCode:
		if fields.Value == nil {
			return nil, unist.FieldError("code", "value", "required")
		}
		return NewCode(*fields.Value, CodeInfo{Lang: fields.Lang, Meta: fields.Meta}, opts...)
	case KindText:
		if fields.Value == nil {
			return nil, unist.FieldError("text", "value", "required")
		}
		return NewText(*fields.Value, opts...)
	case KindEmphasis:
		return NewEmphasis(children, opts...)
	case KindStrong:
		return NewStrong(children, opts...)
	case KindInlineCode:
		if fields.Value == nil {
			return nil, unist.FieldError("inlineCode", "value", "required")
		}
		return NewInlineCode(*fields.Value, opts...)
	case KindBreak:
		return NewBreak(opts...)
	case KindLink:
		if fields.URL == nil {
			return nil, unist.FieldError("link", "url", "required")
		}
		return NewLink(*fields.URL, fields.Title, children, opts...)
	case KindImage:
		if fields.URL == nil {
			return nil, unist.FieldError("image", "url", "required")
		}
		return NewImage(*fields.URL, fields.Title, fields.Alt, opts...)
	default:
		return nil, unist.FieldError("", "type", "unknown kind %d", kind)
	}
}

// FieldsOf reads the kind-specific fields back out of a node, so that
// New(n.Kind(), FieldsOf(n), children, ...) rebuilds an equal node.
func FieldsOf(n Node) Fields {
	var f Fields
	switch node := n.(type) {
	case *Heading:
		f.Depth = &node.depth
	case *List:
		f.Ordered = &node.ordered
		f.Start = node.start
		f.Spread = &node.spread
	case *ListItem:
		f.Checked = node.checked
		f.Spread = &node.spread
	case *Code:
		f.Value = &node.value
		f.Lang = node.lang
		f.Meta = node.meta
	case *Text:
		f.Value = &node.value
	case *InlineCode:
		f.Value = &node.value
	case *Link:
		f.URL = &node.url
		f.Title = node.title
	case *Image:
		f.URL = &node.url
		f.Title = node.title
		f.Alt = node.alt
	}
	return cloneFields(f)
}

func cloneFields(f Fields) Fields {
	return Fields{
		Value:   clonePtr(f.Value),
		Depth:   clonePtr(f.Depth),
		Ordered: clonePtr(f.Ordered),
		Start:   clonePtr(f.Start),
		Spread:  clonePtr(f.Spread),
		Checked: clonePtr(f.Checked),
		Lang:    clonePtr(f.Lang),
		Meta:    clonePtr(f.Meta),
		URL:     clonePtr(f.URL),
		Title:   clonePtr(f.Title),
		Alt:     clonePtr(f.Alt),
	}
}

func valueOr(p *bool) bool {
	return p != nil && *p
}
