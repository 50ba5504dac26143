package hast

import (
	"fmt"

	"github.com/yaklabco/ustree/pkg/unist"
)

// Check verifies a whole tree: every child is allowed under its parent and
// no node occurs twice. Trees built through the constructors always pass;
// Check exists for trees assembled elsewhere and for tests.
func Check(root Node) error {
	if root == nil {
		return nil
	}
	if err := checkNode(root); err != nil {
		return err
	}
	return unist.CheckUnique(root)
}

func checkNode(n Node) error {
	var children []Node
	switch node := n.(type) {
	case *Root:
		children = node.children
	case *Element:
		children = node.children
	default:
		return nil
	}

	for i, child := range children {
		if child == nil || !CanContain(n.Kind(), child.Kind()) {
			return unist.ShapeError(n.Type(), i, "%s cannot contain %v", n.Kind(), kindOf(child))
		}
		if err := checkNode(child); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}

func kindOf(n Node) string {
	if n == nil {
		return "nil"
	}
	return n.Kind().String()
}
