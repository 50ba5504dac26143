package hast

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/ustree/pkg/unist"
)

// wireNode is the unist JSON form of an HTML tree node.
type wireNode struct {
	Type     string         `json:"type"`
	TagName  *string        `json:"tagName,omitempty"`
	RawProps map[string]any `json:"properties,omitempty"`
	Name     *string        `json:"name,omitempty"`
	Public   *string        `json:"public,omitempty"`
	System   *string        `json:"system,omitempty"`
	Value    *string        `json:"value,omitempty"`
	Children *[]*wireNode   `json:"children,omitempty"`

	unist.WireBase
}

// Marshal encodes a tree as unist JSON.
func Marshal(n Node) ([]byte, error) {
	data, err := json.Marshal(toWire(n))
	if err != nil {
		return nil, fmt.Errorf("encode hast: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes a tree as indented unist JSON.
func MarshalIndent(n Node, indent string) ([]byte, error) {
	data, err := json.MarshalIndent(toWire(n), "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode hast: %w", err)
	}
	return data, nil
}

// Unmarshal decodes unist JSON into a tree, validating every node through
// the constructors. Errors carry the path to the offending node.
func Unmarshal(data []byte) (Node, error) {
	var wire wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode hast: %w", err)
	}
	return fromWire(&wire)
}

func toWire(n Node) *wireNode {
	wire := &wireNode{Type: n.Type(), WireBase: unist.WireBaseOf(n)}

	switch node := n.(type) {
	case *Root:
		wire.Children = childrenToWire(node.children)
	case *Element:
		tag := node.tagName
		wire.TagName = &tag
		wire.RawProps = make(map[string]any, len(node.properties))
		for name, v := range node.properties {
			wire.RawProps[name] = v
		}
		wire.Children = childrenToWire(node.children)
	case *Text:
		wire.Value = &node.value
	case *Comment:
		wire.Value = &node.value
	case *Doctype:
		wire.Name = &node.name
		wire.Public = node.public
		wire.System = node.system
	}

	return wire
}

func childrenToWire(children []Node) *[]*wireNode {
	out := make([]*wireNode, len(children))
	for i, child := range children {
		out[i] = toWire(child)
	}
	return &out
}

func fromWire(wire *wireNode) (Node, error) {
	kind, ok := ParseKind(wire.Type)
	if !ok {
		return nil, unist.FieldError(wire.Type, "type", "unknown hast node type %q", wire.Type)
	}

	var children []Node
	if wire.Children != nil {
		children = make([]Node, 0, len(*wire.Children))
		for i, childWire := range *wire.Children {
			if childWire == nil {
				return nil, unist.ShapeError(kind.String(), i, "child is null")
			}
			child, err := fromWire(childWire)
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			children = append(children, child)
		}
	}

	fields := Fields{
		TagName:    wire.TagName,
		Properties: wire.RawProps,
		Value:      wire.Value,
		Name:       wire.Name,
		Public:     wire.Public,
		System:     wire.System,
	}
	return New(kind, fields, children, wire.Options()...)
}
