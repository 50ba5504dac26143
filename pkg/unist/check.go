package unist

import "fmt"

// CheckUnique reports a ShapeViolation if any node is reachable twice from
// root, i.e. the same node was placed under two parents of one tree.
func CheckUnique(root Node) error {
	seen := make(map[Node]struct{})

	return Walk(root, func(n Node, parents []Parent) error {
		if _, dup := seen[n]; dup {
			nodeType := ""
			if len(parents) > 0 {
				nodeType = parents[len(parents)-1].Type()
			}
			return &ValidationError{
				Code:     ErrShapeViolation,
				NodeType: nodeType,
				Index:    NoIndex,
				Message:  fmt.Sprintf("%s node appears more than once in the tree", n.Type()),
			}
		}
		seen[n] = struct{}{}
		return nil
	})
}

// DuplicateChild returns the index of the first child that repeats an
// earlier child in the same list, or -1.
func DuplicateChild[T comparable](children []T) int {
	seen := make(map[T]struct{}, len(children))
	for i, child := range children {
		if _, dup := seen[child]; dup {
			return i
		}
		seen[child] = struct{}{}
	}
	return -1
}
