// Package unist defines the generic syntax tree contracts shared by the
// concrete tree models (hast, mdast):
//   - Node: anything with a type, an optional position and optional data
//   - Parent: a node with ordered children
//   - Literal: a node with a string value
//
// It also provides positions, the validation error taxonomy and read-only
// traversal. There are no concrete node kinds here.
package unist

import "maps"

// Node is the capability every tree node satisfies.
type Node interface {
	// Type returns the discriminant, e.g. "paragraph" or "element".
	Type() string

	// Position returns the source position and whether one is set.
	Position() (Position, bool)

	// Data returns a copy of the node's opaque metadata, or nil.
	Data() Data
}

// Parent is a node with an ordered list of children.
type Parent interface {
	Node

	// Children returns a copy of the child list in order.
	Children() []Node
}

// Literal is a node holding a single string payload.
type Literal interface {
	Node

	// Value returns the payload.
	Value() string
}

// Data is opaque per-node metadata. The tree model never interprets it.
type Data map[string]any

// Clone returns a shallow copy, or nil for a nil map.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Base carries the fields common to every node. Concrete node types embed it.
// The zero value has neither a position nor data.
type Base struct {
	position *Position
	data     Data
}

// Option configures a Base.
type Option func(*baseOptions)

type baseOptions struct {
	position *Position
	data     Data
}

// WithPosition sets the node's position.
func WithPosition(pos Position) Option {
	return func(o *baseOptions) {
		cloned := clonePosition(pos)
		o.position = &cloned
	}
}

// WithOptionalPosition sets the node's position when pos is non-nil.
func WithOptionalPosition(pos *Position) Option {
	return func(o *baseOptions) {
		if pos == nil {
			o.position = nil
			return
		}
		cloned := clonePosition(*pos)
		o.position = &cloned
	}
}

// WithData sets the node's metadata. A nil map leaves the node without data.
func WithData(data Data) Option {
	return func(o *baseOptions) {
		o.data = data.Clone()
	}
}

// NewBase applies options and validates the position.
// nodeType is used only in error messages.
func NewBase(nodeType string, opts ...Option) (Base, error) {
	var o baseOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.position != nil {
		if err := o.position.Validate(); err != nil {
			return Base{}, withNodeType(err, nodeType)
		}
	}

	return Base{position: o.position, data: o.data}, nil
}

// Position returns the node's position and whether one is set.
func (b Base) Position() (Position, bool) {
	if b.position == nil {
		return Position{}, false
	}
	return clonePosition(*b.position), true
}

// Data returns a copy of the node's metadata, or nil.
func (b Base) Data() Data {
	return b.data.Clone()
}

// Options returns options that reproduce this Base on another node.
func (b Base) Options() []Option {
	var opts []Option
	if b.position != nil {
		opts = append(opts, WithPosition(*b.position))
	}
	if b.data != nil {
		opts = append(opts, WithData(b.data))
	}
	return opts
}

// Shape is the structural category of a node.
type Shape uint8

const (
	// ShapeNode is a bare node with neither children nor value.
	ShapeNode Shape = iota

	// ShapeParent is a node with children.
	ShapeParent

	// ShapeLiteral is a node with a string value.
	ShapeLiteral
)

func (s Shape) String() string {
	switch s {
	case ShapeNode:
		return "node"
	case ShapeParent:
		return "parent"
	case ShapeLiteral:
		return "literal"
	default:
		return "unknown"
	}
}

// ShapeOf returns the shape a node satisfies.
func ShapeOf(n Node) Shape {
	switch n.(type) {
	case Parent:
		return ShapeParent
	case Literal:
		return ShapeLiteral
	default:
		return ShapeNode
	}
}

// IsParent returns true if n has children capability.
func IsParent(n Node) bool {
	_, ok := n.(Parent)
	return ok
}

// IsLiteral returns true if n has a value.
func IsLiteral(n Node) bool {
	_, ok := n.(Literal)
	return ok
}

// HasPosition returns true if n carries a position.
func HasPosition(n Node) bool {
	if n == nil {
		return false
	}
	_, ok := n.Position()
	return ok
}

// HasData returns true if n carries metadata.
func HasData(n Node) bool {
	if n == nil {
		return false
	}
	return n.Data() != nil
}

// ChildCount returns the number of children of n, or 0 for non-parents.
func ChildCount(n Node) int {
	if p, ok := n.(Parent); ok {
		return len(p.Children())
	}
	return 0
}
