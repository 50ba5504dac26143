package hast

import "github.com/yaklabco/ustree/pkg/unist"

// Kind identifies the variant of an HTML tree node.
type Kind uint8

// The closed set of HTML tree kinds.
const (
	KindRoot Kind = iota
	KindElement
	KindText
	KindComment
	KindDoctype
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindRoot:    "root",
	KindElement: "element",
	KindText:    "text",
	KindComment: "comment",
	KindDoctype: "doctype",
}

// String returns the unist type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the kind for a unist type name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindRoot, KindElement, KindText, KindComment, KindDoctype}
}

// Shape returns the structural shape of nodes of this kind.
func (k Kind) Shape() unist.Shape {
	switch k {
	case KindRoot, KindElement:
		return unist.ShapeParent
	case KindText, KindComment:
		return unist.ShapeLiteral
	default:
		return unist.ShapeNode
	}
}

// AllowedChildren returns the kinds a node of kind k may contain directly.
// It is nil for kinds that cannot have children.
func AllowedChildren(k Kind) []Kind {
	switch k {
	case KindRoot:
		return []Kind{KindElement, KindText, KindComment, KindDoctype}
	case KindElement:
		return []Kind{KindElement, KindText, KindComment}
	default:
		return nil
	}
}

// CanContain reports whether a parent of kind parent may hold a child of
// kind child.
func CanContain(parent, child Kind) bool {
	for _, allowed := range AllowedChildren(parent) {
		if allowed == child {
			return true
		}
	}
	return false
}
