package mdast

import (
	"fmt"

	"github.com/yaklabco/ustree/pkg/unist"
)

// Check verifies a whole tree: every child's kind is allowed under its
// parent's kind and no node occurs twice. Trees built through the
// constructors always pass.
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
	parent, ok := n.(unist.Parent)
	if !ok {
		return nil
	}

	for i, child := range parent.Children() {
		mdChild, ok := child.(Node)
		if !ok || !CanContain(n.Kind(), mdChild.Kind()) {
			return unist.ShapeError(n.Type(), i, "%s cannot contain %s", n.Kind(), typeOf(child))
		}
		if err := checkNode(mdChild); err != nil {
			return fmt.Errorf("children[%d]: %w", i, err)
		}
	}
	return nil
}

func typeOf(n unist.Node) string {
	if n == nil {
		return "nil"
	}
	return n.Type()
}
