package hast

import (
	"slices"

	"github.com/yaklabco/ustree/pkg/unist"
)

// NewRoot creates a root. Children may be elements, text, comments or
// doctypes, kept in the given order.
func NewRoot(children []Node, opts ...unist.Option) (*Root, error) {
	base, err := unist.NewBase("root", opts...)
	if err != nil {
		return nil, err
	}
	if err := checkChildren(KindRoot, children); err != nil {
		return nil, err
	}
	return &Root{Base: base, children: cloneNodes(children)}, nil
}

// NewElement creates an element. tagName must be non-empty. Property values
// go through PropertyValueOf; an unsupported value type is an error.
// Children may be elements, text or comments.
func NewElement(tagName string, properties map[string]any, children []Node, opts ...unist.Option) (*Element, error) {
	base, err := unist.NewBase("element", opts...)
	if err != nil {
		return nil, err
	}
	if tagName == "" {
		return nil, unist.FieldError("element", "tagName", "tag name must not be empty")
	}

	props := make(map[string]PropertyValue, len(properties))
	for name, raw := range properties {
		if name == "" {
			return nil, unist.FieldError("element", "properties", "property name must not be empty")
		}
		value, err := PropertyValueOf(raw)
		if err != nil {
			return nil, unist.FieldError("element", "properties."+name, "%v", err)
		}
		props[name] = value
	}

	if err := checkChildren(KindElement, children); err != nil {
		return nil, err
	}

	return &Element{
		Base:       base,
		tagName:    tagName,
		properties: props,
		children:   cloneNodes(children),
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

// NewComment creates a comment node.
func NewComment(value string, opts ...unist.Option) (*Comment, error) {
	base, err := unist.NewBase("comment", opts...)
	if err != nil {
		return nil, err
	}
	return &Comment{Base: base, value: value}, nil
}

// DoctypeIDs holds the optional identifiers of a doctype.
type DoctypeIDs struct {
	Public *string
	System *string
}

// NewDoctype creates a doctype node.
func NewDoctype(name string, ids DoctypeIDs, opts ...unist.Option) (*Doctype, error) {
	base, err := unist.NewBase("doctype", opts...)
	if err != nil {
		return nil, err
	}
	return &Doctype{
		Base:   base,
		name:   name,
		public: cloneString(ids.Public),
		system: cloneString(ids.System),
	}, nil
}

// checkChildren enforces the containment rules for kind.
func checkChildren(kind Kind, children []Node) error {
	for i, child := range children {
		if child == nil {
			return unist.ShapeError(kind.String(), i, "child is nil")
		}
		if !CanContain(kind, child.Kind()) {
			return unist.ShapeError(kind.String(), i, "%s cannot contain %s", kind, child.Kind())
		}
	}
	if i := unist.DuplicateChild(children); i >= 0 {
		return unist.ShapeError(kind.String(), i, "child appears more than once")
	}
	return nil
}

// cloneNodes copies a child list. Empty lists are stored as nil so that
// trees compare equal however they were built.
func cloneNodes(children []Node) []Node {
	if len(children) == 0 {
		return nil
	}
	return slices.Clone(children)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
