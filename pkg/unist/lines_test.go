package unist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/ustree/pkg/unist"
)

func TestLineIndex_PointAt(t *testing.T) {
	t.Parallel()

	content := []byte("ab\ncd\r\n\nef")
	index := unist.NewLineIndex(content)

	assert.Equal(t, 4, index.LineCount())

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{2, 1, 3},  // the '\n' itself
		{3, 2, 1},  // 'c'
		{5, 2, 3},  // '\r'
		{7, 3, 1},  // empty line
		{8, 4, 1},  // 'e'
		{10, 4, 3}, // end of content
		{99, 4, 3}, // clamped
		{-4, 1, 1}, // clamped
	}

	for _, testCase := range tests {
		point := index.PointAt(testCase.offset)
		assert.Equal(t, testCase.line, point.Line, "line at offset %d", testCase.offset)
		assert.Equal(t, testCase.column, point.Column, "column at offset %d", testCase.offset)
		if assert.NotNil(t, point.Offset) {
			assert.GreaterOrEqual(t, *point.Offset, 0)
		}
	}
}

func TestLineIndex_Offset(t *testing.T) {
	t.Parallel()

	index := unist.NewLineIndex([]byte("ab\ncd\nef"))

	offset, ok := index.Offset(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 3, offset)

	offset, ok = index.Offset(3, 3)
	assert.True(t, ok)
	assert.Equal(t, 8, offset)

	_, ok = index.Offset(0, 1)
	assert.False(t, ok)

	_, ok = index.Offset(4, 1)
	assert.False(t, ok)

	_, ok = index.Offset(1, 9)
	assert.False(t, ok)
}

func TestLineIndex_Span(t *testing.T) {
	t.Parallel()

	index := unist.NewLineIndex([]byte("# Title\n\nBody text\n"))

	pos := index.Span(9, 18)
	assert.NoError(t, pos.Validate())
	assert.Equal(t, "3:1-3:10", pos.String())

	collapsed := index.Span(5, 2)
	assert.NoError(t, collapsed.Validate())
	assert.Equal(t, collapsed.Start, collapsed.End)
}

func TestLineIndex_Empty(t *testing.T) {
	t.Parallel()

	index := unist.NewLineIndex(nil)
	assert.Equal(t, 1, index.LineCount())

	point := index.PointAt(0)
	assert.Equal(t, 1, point.Line)
	assert.Equal(t, 1, point.Column)
}
