package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

func TestKind_ParseRoundTrip(t *testing.T) {
	t.Parallel()

	assert.Len(t, mdast.Kinds(), 15)
	for _, kind := range mdast.Kinds() {
		parsed, ok := mdast.ParseKind(kind.String())
		require.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)
	}

	_, ok := mdast.ParseKind("element")
	assert.False(t, ok)
}

func TestKind_Class(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind  mdast.Kind
		class mdast.Class
	}{
		{mdast.KindRoot, mdast.ClassRoot},
		{mdast.KindParagraph, mdast.ClassBlock},
		{mdast.KindHeading, mdast.ClassBlock},
		{mdast.KindThematicBreak, mdast.ClassBlock},
		{mdast.KindBlockquote, mdast.ClassBlock},
		{mdast.KindList, mdast.ClassBlock},
		{mdast.KindCode, mdast.ClassBlock},
		{mdast.KindListItem, mdast.ClassList},
		{mdast.KindText, mdast.ClassPhrasing},
		{mdast.KindEmphasis, mdast.ClassPhrasing},
		{mdast.KindStrong, mdast.ClassPhrasing},
		{mdast.KindInlineCode, mdast.ClassPhrasing},
		{mdast.KindBreak, mdast.ClassPhrasing},
		{mdast.KindLink, mdast.ClassPhrasing},
		{mdast.KindImage, mdast.ClassPhrasing},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.class, testCase.kind.Class(), testCase.kind.String())
	}
}

func TestKind_Shape(t *testing.T) {
	t.Parallel()

	literal := []mdast.Kind{mdast.KindCode, mdast.KindText, mdast.KindInlineCode}
	bare := []mdast.Kind{mdast.KindThematicBreak, mdast.KindBreak, mdast.KindImage}

	for _, kind := range mdast.Kinds() {
		_, hasChildren := mdast.ChildClass(kind)
		switch {
		case containsKind(literal, kind):
			assert.Equal(t, unist.ShapeLiteral, kind.Shape(), kind.String())
			assert.False(t, hasChildren)
		case containsKind(bare, kind):
			assert.Equal(t, unist.ShapeNode, kind.Shape(), kind.String())
			assert.False(t, hasChildren)
		default:
			assert.Equal(t, unist.ShapeParent, kind.Shape(), kind.String())
			assert.True(t, hasChildren)
		}
	}
}

func TestAllowedChildren(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []mdast.Kind{mdast.KindListItem}, mdast.AllowedChildren(mdast.KindList))
	assert.Equal(t, mdast.AllowedChildren(mdast.KindRoot), mdast.AllowedChildren(mdast.KindBlockquote))
	assert.Equal(t, mdast.AllowedChildren(mdast.KindParagraph), mdast.AllowedChildren(mdast.KindLink))
	assert.Contains(t, mdast.AllowedChildren(mdast.KindLink), mdast.KindImage)
	assert.NotContains(t, mdast.AllowedChildren(mdast.KindListItem), mdast.KindListItem)
	assert.Nil(t, mdast.AllowedChildren(mdast.KindImage))

	for _, parent := range mdast.Kinds() {
		assert.False(t, mdast.CanContain(parent, mdast.KindRoot), parent.String())
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	require.NoError(t, mdast.Check(buildDocument(t)))
	require.NoError(t, mdast.Check(nil))

	shared := text(t, "shared")
	root, err := mdast.NewRoot(mdast.Nodes(paragraph(t, shared), paragraph(t, shared)))
	require.NoError(t, err)
	assert.ErrorIs(t, mdast.Check(root), unist.ErrShapeViolation)
}

func containsKind(kinds []mdast.Kind, kind mdast.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
