package unist

import "sort"

// LineIndex maps byte offsets in a source to points.
type LineIndex struct {
	// starts holds the byte offset at which each line begins.
	starts []int
	size   int
}

// NewLineIndex builds a line index for content.
// Both LF and CRLF endings work since a line always ends after '\n'.
func NewLineIndex(content []byte) *LineIndex {
	starts := []int{0}
	for idx, char := range content {
		if char == '\n' {
			starts = append(starts, idx+1)
		}
	}
	return &LineIndex{starts: starts, size: len(content)}
}

// LineCount returns the number of lines.
func (l *LineIndex) LineCount() int {
	return len(l.starts)
}

// PointAt converts a byte offset to a point with 1-based line and column.
// Offsets past the end clamp to the end of the content.
func (l *LineIndex) PointAt(offset int) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > l.size {
		offset = l.size
	}

	// Last line whose start is <= offset.
	lineIdx := sort.Search(len(l.starts), func(i int) bool {
		return l.starts[i] > offset
	}) - 1

	return NewPointWithOffset(lineIdx+1, offset-l.starts[lineIdx]+1, offset)
}

// Offset converts a 1-based line and column to a byte offset.
// Returns (0, false) if out of range.
func (l *LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(l.starts) || col < 1 {
		return 0, false
	}

	end := l.size
	if line < len(l.starts) {
		end = l.starts[line]
	}

	offset := l.starts[line-1] + col - 1
	if offset > end {
		return 0, false
	}

	return offset, true
}

// Span returns the position covering [start, end).
// A reversed range collapses to start.
func (l *LineIndex) Span(start, end int) Position {
	if end < start {
		end = start
	}
	return Position{Start: l.PointAt(start), End: l.PointAt(end)}
}
