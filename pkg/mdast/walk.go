package mdast

import (
	"strings"

	"github.com/yaklabco/ustree/pkg/unist"
)

// WalkFunc is the callback for the mdast walkers.
type WalkFunc func(n Node) error

// Walk performs a pre-order traversal of a Markdown tree.
// The unist control values SkipChildren and Stop apply.
func Walk(root Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	return unist.Walk(root, func(n unist.Node, _ []unist.Parent) error {
		return fn(n.(Node))
	})
}

// WalkBlocks walks only block content nodes.
func WalkBlocks(root Node, fn WalkFunc) error {
	return Walk(root, func(n Node) error {
		if n.Kind().IsBlock() {
			return fn(n)
		}
		return nil
	})
}

// WalkPhrasing walks only phrasing content nodes.
func WalkPhrasing(root Node, fn WalkFunc) error {
	return Walk(root, func(n Node) error {
		if n.Kind().IsPhrasing() {
			return fn(n)
		}
		return nil
	})
}

// FindByKind returns all nodes of the given kind in pre-order.
func FindByKind(root Node, kind Kind) []Node {
	var found []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n Node) error {
		if n.Kind() == kind {
			found = append(found, n)
		}
		return nil
	})

	return found
}

// Headings returns all headings in document order.
func Headings(root Node) []*Heading {
	nodes := FindByKind(root, KindHeading)
	headings := make([]*Heading, len(nodes))
	for i, n := range nodes {
		headings[i] = n.(*Heading)
	}
	return headings
}

// HeadingDepths returns the depth of each heading in document order.
func HeadingDepths(root Node) []int {
	headings := Headings(root)
	depths := make([]int, len(headings))
	for i, h := range headings {
		depths[i] = h.Depth()
	}
	return depths
}

// ToString returns the plain text content of a node: the values of text,
// inline code and code nodes and the alt of images, concatenated in order.
func ToString(n Node) string {
	var sb strings.Builder

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(n, func(node Node) error {
		switch v := node.(type) {
		case unist.Literal:
			sb.WriteString(v.Value())
		case *Image:
			alt, _ := v.Alt()
			sb.WriteString(alt)
		}
		return nil
	})

	return sb.String()
}
