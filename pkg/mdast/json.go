package mdast

import (
	"encoding/json"
	"fmt"

	"github.com/yaklabco/ustree/pkg/unist"
)

// wireNode is the unist JSON form of a Markdown tree node.
type wireNode struct {
	Type     string       `json:"type"`
	Value    *string      `json:"value,omitempty"`
	Depth    *int         `json:"depth,omitempty"`
	Ordered  *bool        `json:"ordered,omitempty"`
	Start    *int         `json:"start,omitempty"`
	Spread   *bool        `json:"spread,omitempty"`
	Checked  *bool        `json:"checked,omitempty"`
	Lang     *string      `json:"lang,omitempty"`
	Meta     *string      `json:"meta,omitempty"`
	URL      *string      `json:"url,omitempty"`
	Title    *string      `json:"title,omitempty"`
	Alt      *string      `json:"alt,omitempty"`
	Children *[]*wireNode `json:"children,omitempty"`

	unist.WireBase
}

// Marshal encodes a tree as unist JSON.
func Marshal(n Node) ([]byte, error) {
	data, err := json.Marshal(toWire(n))
	if err != nil {
		return nil, fmt.Errorf("encode mdast: %w", err)
	}
	return data, nil
}

// MarshalIndent encodes a tree as indented unist JSON.
func MarshalIndent(n Node, indent string) ([]byte, error) {
	data, err := json.MarshalIndent(toWire(n), "", indent)
	if err != nil {
		return nil, fmt.Errorf("encode mdast: %w", err)
	}
	return data, nil
}

// Unmarshal decodes unist JSON into a tree, validating every node through
// the constructors. Errors carry the path to the offending node.
func Unmarshal(data []byte) (Node, error) {
	var wire wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode mdast: %w", err)
	}
	return fromWire(&wire)
}

func toWire(n Node) *wireNode {
	f := FieldsOf(n)
	wire := &wireNode{
		Type:     n.Type(),
		Value:    f.Value,
		Depth:    f.Depth,
		Ordered:  f.Ordered,
		Start:    f.Start,
		Spread:   f.Spread,
		Checked:  f.Checked,
		Lang:     f.Lang,
		Meta:     f.Meta,
		URL:      f.URL,
		Title:    f.Title,
		Alt:      f.Alt,
		WireBase: unist.WireBaseOf(n),
	}

	if parent, ok := n.(unist.Parent); ok {
		children := parent.Children()
		out := make([]*wireNode, len(children))
		for i, child := range children {
			out[i] = toWire(child.(Node))
		}
		wire.Children = &out
	}

	return wire
}

func fromWire(wire *wireNode) (Node, error) {
	kind, ok := ParseKind(wire.Type)
	if !ok {
		return nil, unist.FieldError(wire.Type, "type", "unknown mdast node type %q", wire.Type)
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
		Value:   wire.Value,
		Depth:   wire.Depth,
		Ordered: wire.Ordered,
		Start:   wire.Start,
		Spread:  wire.Spread,
		Checked: wire.Checked,
		Lang:    wire.Lang,
		Meta:    wire.Meta,
		URL:     wire.URL,
		Title:   wire.Title,
		Alt:     wire.Alt,
	}

	return New(kind, fields, children, wire.Options()...)
}
