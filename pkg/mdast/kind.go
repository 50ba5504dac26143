package mdast

import "github.com/yaklabco/ustree/pkg/unist"

// Kind identifies the variant of a Markdown tree node.
type Kind uint8

// The closed set of Markdown tree kinds.
const (
	KindRoot Kind = iota

	// Block content.
	KindParagraph
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindList
	KindCode

	// List content.
	KindListItem

	// Phrasing content.
	KindText
	KindEmphasis
	KindStrong
	KindInlineCode
	KindBreak
	KindLink
	KindImage
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindRoot:          "root",
	KindParagraph:     "paragraph",
	KindHeading:       "heading",
	KindThematicBreak: "thematicBreak",
	KindBlockquote:    "blockquote",
	KindList:          "list",
	KindCode:          "code",
	KindListItem:      "listItem",
	KindText:          "text",
	KindEmphasis:      "emphasis",
	KindStrong:        "strong",
	KindInlineCode:    "inlineCode",
	KindBreak:         "break",
	KindLink:          "link",
	KindImage:         "image",
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
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Class is the content class a kind belongs to.
type Class uint8

const (
	// ClassRoot is the document root only.
	ClassRoot Class = iota

	// ClassBlock is structural document content.
	ClassBlock

	// ClassList is the content of a list: list items.
	ClassList

	// ClassPhrasing is inline content.
	ClassPhrasing
)

func (c Class) String() string {
	switch c {
	case ClassRoot:
		return "root"
	case ClassBlock:
		return "block"
	case ClassList:
		return "list"
	case ClassPhrasing:
		return "phrasing"
	default:
		return "unknown"
	}
}

// Class returns the content class of the kind.
func (k Kind) Class() Class {
	switch k {
	case KindParagraph, KindHeading, KindThematicBreak, KindBlockquote, KindList, KindCode:
		return ClassBlock
	case KindListItem:
		return ClassList
	case KindText, KindEmphasis, KindStrong, KindInlineCode, KindBreak, KindLink, KindImage:
		return ClassPhrasing
	default:
		return ClassRoot
	}
}

// IsBlock returns true for block content kinds.
func (k Kind) IsBlock() bool {
	return k.Class() == ClassBlock
}

// IsPhrasing returns true for phrasing content kinds.
func (k Kind) IsPhrasing() bool {
	return k.Class() == ClassPhrasing
}

// Shape returns the structural shape of nodes of this kind.
func (k Kind) Shape() unist.Shape {
	switch k {
	case KindThematicBreak, KindBreak, KindImage:
		return unist.ShapeNode
	case KindCode, KindText, KindInlineCode:
		return unist.ShapeLiteral
	default:
		return unist.ShapeParent
	}
}

// ChildClass returns the content class allowed directly inside kind k, and
// false if k cannot have children.
func ChildClass(k Kind) (Class, bool) {
	switch k {
	case KindRoot, KindBlockquote, KindListItem:
		return ClassBlock, true
	case KindList:
		return ClassList, true
	case KindParagraph, KindHeading, KindEmphasis, KindStrong, KindLink:
		return ClassPhrasing, true
	default:
		return 0, false
	}
}

// AllowedChildren returns the kinds a node of kind k may contain directly.
func AllowedChildren(k Kind) []Kind {
	class, ok := ChildClass(k)
	if !ok {
		return nil
	}

	var kinds []Kind
	for _, candidate := range Kinds() {
		if candidate.Class() == class {
			kinds = append(kinds, candidate)
		}
	}
	return kinds
}

// CanContain reports whether a parent of kind parent may hold a child of
// kind child. It looks only at the kinds.
func CanContain(parent, child Kind) bool {
	class, ok := ChildClass(parent)
	return ok && child.Class() == class && child != KindRoot
}
