// Package hast defines the HTML syntax tree: a closed set of node kinds
// (root, element, text, comment, doctype) built on the unist contracts.
//
// Nodes are created through validating constructors and are immutable
// afterwards. Getters return copies.
package hast

import (
	"maps"
	"slices"
	"sort"

	"github.com/yaklabco/ustree/pkg/unist"
)

// Node is any HTML tree node.
type Node interface {
	unist.Node

	// Kind returns the node's variant.
	Kind() Kind

	hastNode()
}

// Root is the top of an HTML document or fragment.
type Root struct {
	unist.Base
	children []Node
}

// Element is an HTML element with a tag name, properties and children.
type Element struct {
	unist.Base
	tagName    string
	properties map[string]PropertyValue
	children   []Node
}

// Text is character data.
type Text struct {
	unist.Base
	value string
}

// Comment is an HTML comment.
type Comment struct {
	unist.Base
	value string
}

// Doctype is a document type declaration.
type Doctype struct {
	unist.Base
	name   string
	public *string
	system *string
}

var (
	_ unist.Parent  = (*Root)(nil)
	_ unist.Parent  = (*Element)(nil)
	_ unist.Literal = (*Text)(nil)
	_ unist.Literal = (*Comment)(nil)
	_ Node          = (*Doctype)(nil)
)

func (*Root) Type() string    { return "root" }
func (*Element) Type() string { return "element" }
func (*Text) Type() string    { return "text" }
func (*Comment) Type() string { return "comment" }
func (*Doctype) Type() string { return "doctype" }

func (*Root) Kind() Kind    { return KindRoot }
func (*Element) Kind() Kind { return KindElement }
func (*Text) Kind() Kind    { return KindText }
func (*Comment) Kind() Kind { return KindComment }
func (*Doctype) Kind() Kind { return KindDoctype }

func (*Root) hastNode()    {}
func (*Element) hastNode() {}
func (*Text) hastNode()    {}
func (*Comment) hastNode() {}
func (*Doctype) hastNode() {}

// Children returns the root's children.
func (r *Root) Children() []unist.Node {
	return toUnist(r.children)
}

// Content returns the root's children as HTML nodes.
func (r *Root) Content() []Node {
	return slices.Clone(r.children)
}

// TagName returns the element's tag name.
func (e *Element) TagName() string {
	return e.tagName
}

// Children returns the element's children.
func (e *Element) Children() []unist.Node {
	return toUnist(e.children)
}

// Content returns the element's children as HTML nodes.
func (e *Element) Content() []Node {
	return slices.Clone(e.children)
}

// Property returns a property value and whether it is set.
func (e *Element) Property(name string) (PropertyValue, bool) {
	v, ok := e.properties[name]
	if !ok {
		return PropertyValue{}, false
	}
	return v.clone(), true
}

// Properties returns a copy of all properties. Never nil.
func (e *Element) Properties() map[string]PropertyValue {
	out := make(map[string]PropertyValue, len(e.properties))
	for name, v := range e.properties {
		out[name] = v.clone()
	}
	return out
}

// PropertyNames returns the property names in sorted order.
func (e *Element) PropertyNames() []string {
	names := slices.Collect(maps.Keys(e.properties))
	sort.Strings(names)
	return names
}

// Value returns the text.
func (t *Text) Value() string { return t.value }

// Value returns the comment body.
func (c *Comment) Value() string { return c.value }

// Name returns the doctype name, e.g. "html".
func (d *Doctype) Name() string { return d.name }

// Public returns the public identifier and whether one is set.
func (d *Doctype) Public() (string, bool) {
	if d.public == nil {
		return "", false
	}
	return *d.public, true
}

// System returns the system identifier and whether one is set.
func (d *Doctype) System() (string, bool) {
	if d.system == nil {
		return "", false
	}
	return *d.system, true
}

func toUnist(children []Node) []unist.Node {
	out := make([]unist.Node, len(children))
	for i, child := range children {
		out[i] = child
	}
	return out
}
