package hast

import "github.com/yaklabco/ustree/pkg/unist"

// Fields carries the kind-specific fields for New. A nil pointer means the
// field is absent. Setting a field the kind does not have is an error.
type Fields struct {
	TagName    *string
	Properties map[string]any
	Value      *string
	Name       *string
	Public     *string
	System     *string
}

// New creates a node of any kind from dynamic input, e.g. a decoder.
// Children given to a kind that cannot have them are a ShapeViolation.
func New(kind Kind, fields Fields, children []Node, opts ...unist.Option) (Node, error) {
	if kind.Shape() != unist.ShapeParent && children != nil {
		return nil, unist.ShapeError(kind.String(), unist.NoIndex, "%s cannot have children", kind)
	}
	if err := checkFields(kind, fields); err != nil {
		return nil, err
	}

	switch kind {
	case KindRoot:
		return NewRoot(children, opts...)
	case KindElement:
		if fields.TagName == nil {
			return nil, unist.FieldError("element", "tagName", "required")
		}
		return NewElement(*fields.TagName, fields.Properties, children, opts...)
	case KindText:
		if fields.Value == nil {
			return nil, unist.FieldError("text", "value", "required")
		}
		return NewText(*fields.Value, opts...)
	case KindComment:
		if fields.Value == nil {
			return nil, unist.FieldError("comment", "value", "required")
		}
		return NewComment(*fields.Value, opts...)
	case KindDoctype:
		if fields.Name == nil {
			return nil, unist.FieldError("doctype", "name", "required")
		}
		return NewDoctype(*fields.Name, DoctypeIDs{Public: fields.Public, System: fields.System}, opts...)
	default:
		return nil, unist.FieldError("", "type", "unknown kind %d", kind)
	}
}

// checkFields rejects fields that do not belong to kind.
func checkFields(kind Kind, fields Fields) error {
	present := map[string]bool{
		"tagName":    fields.TagName != nil,
		"properties": fields.Properties != nil,
		"value":      fields.Value != nil,
		"name":       fields.Name != nil,
		"public":     fields.Public != nil,
		"system":     fields.System != nil,
	}

	allowed := map[string]bool{}
	switch kind {
	case KindElement:
		allowed["tagName"] = true
		allowed["properties"] = true
	case KindText, KindComment:
		allowed["value"] = true
	case KindDoctype:
		allowed["name"] = true
		allowed["public"] = true
		allowed["system"] = true
	case KindRoot:
	}

	for _, field := range []string{"tagName", "properties", "value", "name", "public", "system"} {
		if present[field] && !allowed[field] {
			return unist.FieldError(kind.String(), field, "%s has no field %q", kind, field)
		}
	}
	return nil
}
