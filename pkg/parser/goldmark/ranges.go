package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// byteRange is a half-open byte range [start, end) into the source.
// A negative start marks an unknown range.
type byteRange struct {
	start, end int
}

//nolint:gochecknoglobals // Sentinel value.
var noRange = byteRange{start: -1, end: -1}

func (r byteRange) known() bool {
	return r.start >= 0 && r.end >= r.start
}

// union returns the smallest range covering r and other.
func (r byteRange) union(other byteRange) byteRange {
	if !other.known() {
		return r
	}
	if !r.known() {
		return other
	}
	return byteRange{start: min(r.start, other.start), end: max(r.end, other.end)}
}

func segmentRange(seg text.Segment) byteRange {
	return byteRange{start: seg.Start, end: seg.Stop}
}

// linesRange covers the line segments of a block node.
func linesRange(n ast.Node) byteRange {
	if n.Type() != ast.TypeBlock {
		return noRange
	}
	lines := n.Lines()
	if lines.Len() == 0 {
		return noRange
	}
	return byteRange{start: lines.At(0).Start, end: lines.At(lines.Len() - 1).Stop}
}

// extent computes the range of any goldmark node from the text segments
// and lines beneath it.
func extent(n ast.Node) byteRange {
	r := linesRange(n)

	switch v := n.(type) {
	case *ast.Text:
		r = r.union(segmentRange(v.Segment))
	case *ast.RawHTML:
		for i := range v.Segments.Len() {
			r = r.union(segmentRange(v.Segments.At(i)))
		}
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		r = r.union(extent(child))
	}

	return r
}

// lineStart returns the offset of the first byte of the line holding off.
func (m *mapper) lineStart(off int) int {
	for off > 0 && m.src[off-1] != '\n' {
		off--
	}
	return off
}

// lineEnd returns the offset of the newline ending the line holding off,
// or the end of the source.
func (m *mapper) lineEnd(off int) int {
	if idx := bytes.IndexByte(m.src[off:], '\n'); idx >= 0 {
		return off + idx
	}
	return len(m.src)
}

// trimEnd drops trailing line endings from r.
func (m *mapper) trimEnd(r byteRange) byteRange {
	for r.end > r.start && (m.src[r.end-1] == '\n' || m.src[r.end-1] == '\r') {
		r.end--
	}
	return r
}

// extendBack moves start left over bytes in set without leaving the line,
// then forward past leading blanks. It recovers block markers such as
// "#", ">" and list bullets that goldmark keeps out of its segments.
func (m *mapper) extendBack(start int, set string) int {
	pos := start
	for pos > 0 && m.src[pos-1] != '\n' && bytes.IndexByte([]byte(set), m.src[pos-1]) >= 0 {
		pos--
	}
	for pos < start && (m.src[pos] == ' ' || m.src[pos] == '\t') {
		pos++
	}
	return pos
}

// runBefore extends start left over up to n copies of any byte in set.
func (m *mapper) runBefore(start, n int, set string) int {
	for n > 0 && start > 0 && bytes.IndexByte([]byte(set), m.src[start-1]) >= 0 {
		start--
		n--
	}
	return start
}

// runAfter extends end right over up to n copies of any byte in set.
func (m *mapper) runAfter(end, n int, set string) int {
	for n > 0 && end < len(m.src) && bytes.IndexByte([]byte(set), m.src[end]) >= 0 {
		end++
		n--
	}
	return end
}

// linkEnd finds the end of a link or image whose label text ends at off:
// the closing bracket plus an inline destination "(...)" or a reference
// label "[...]" when present.
func (m *mapper) linkEnd(off int) int {
	pos := off
	for pos < len(m.src) && m.src[pos] != ']' {
		pos++
	}
	if pos >= len(m.src) {
		return off
	}
	pos++

	if pos >= len(m.src) {
		return pos
	}

	switch m.src[pos] {
	case '(':
		depth := 0
		for idx := pos; idx < len(m.src); idx++ {
			switch m.src[idx] {
			case '\\':
				idx++
			case '(':
				depth++
			case ')':
				depth--
				if depth == 0 {
					return idx + 1
				}
			}
		}
	case '[':
		if idx := bytes.IndexByte(m.src[pos:], ']'); idx >= 0 {
			return pos + idx + 1
		}
	}

	return pos
}

// fenceLine reports whether the line holding off is a code fence made of
// ch, ignoring leading blanks and blockquote markers.
func (m *mapper) fenceLine(off int, ch byte) (int, int, bool) {
	start := m.lineStart(off)
	end := m.lineEnd(off)
	pos := start
	for pos < end && (m.src[pos] == ' ' || m.src[pos] == '\t' || m.src[pos] == '>') {
		pos++
	}
	run := 0
	for pos+run < end && m.src[pos+run] == ch {
		run++
	}
	return pos, end, run >= 3
}
