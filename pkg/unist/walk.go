package unist

import "errors"

// Walk control values. Return them from a WalkFunc to steer the traversal.
var (
	// SkipChildren skips the children of the current node.
	SkipChildren = errors.New("skip children")

	// Stop ends the walk. Walk returns nil when stopped this way.
	Stop = errors.New("stop walk")
)

// WalkFunc is the callback for Walk. parents holds the ancestors of n,
// nearest last; it must not be retained.
type WalkFunc func(n Node, parents []Parent) error

// Walk performs a pre-order traversal starting at root.
// Any error other than SkipChildren or Stop ends the walk and is returned.
func Walk(root Node, fn WalkFunc) error {
	err := walk(root, nil, fn)
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

func walk(n Node, parents []Parent, fn WalkFunc) error {
	if n == nil {
		return nil
	}

	if err := fn(n, parents); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	parent, ok := n.(Parent)
	if !ok {
		return nil
	}

	parents = append(parents, parent)
	for _, child := range parent.Children() {
		if err := walk(child, parents, fn); err != nil {
			return err
		}
	}

	return nil
}

// VisitFunc is the callback for WalkWithContext.
type VisitFunc func(n Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave after. Either may be nil.
// Returning SkipChildren from enter skips the children but still calls leave.
func WalkWithContext(root Node, enter, leave VisitFunc) error {
	err := walkWithContext(root, enter, leave)
	if errors.Is(err, Stop) {
		return nil
	}
	return err
}

func walkWithContext(n Node, enter, leave VisitFunc) error {
	if n == nil {
		return nil
	}

	skip := false
	if enter != nil {
		if err := enter(n); err != nil {
			if !errors.Is(err, SkipChildren) {
				return err
			}
			skip = true
		}
	}

	if parent, ok := n.(Parent); ok && !skip {
		for _, child := range parent.Children() {
			if err := walkWithContext(child, enter, leave); err != nil {
				return err
			}
		}
	}

	if leave != nil {
		return leave(n)
	}

	return nil
}

// FindAll returns all nodes matching the predicate in pre-order.
func FindAll(root Node, predicate func(n Node) bool) []Node {
	var result []Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(n Node, _ []Parent) error {
		if predicate(n) {
			result = append(result, n)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root Node, predicate func(n Node) bool) Node {
	var found Node

	//nolint:errcheck,revive // Stop is swallowed by Walk
	Walk(root, func(n Node, _ []Parent) error {
		if predicate(n) {
			found = n
			return Stop
		}
		return nil
	})

	return found
}

// FindByType returns all nodes whose Type equals nodeType.
func FindByType(root Node, nodeType string) []Node {
	return FindAll(root, func(n Node) bool {
		return n.Type() == nodeType
	})
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Node) int {
	count := 0

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(Node, []Parent) error {
		count++
		return nil
	})

	return count
}
