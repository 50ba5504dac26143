package unist

import "fmt"

// Point is a place in a source file.
type Point struct {
	// Line is 1-based.
	Line int `json:"line"`

	// Column is 1-based and counts bytes.
	Column int `json:"column"`

	// Offset is the optional 0-based byte index into the source.
	Offset *int `json:"offset,omitempty"`
}

// NewPoint creates a point without an offset.
func NewPoint(line, column int) Point {
	return Point{Line: line, Column: column}
}

// NewPointWithOffset creates a point with an offset.
func NewPointWithOffset(line, column, offset int) Point {
	return Point{Line: line, Column: column, Offset: &offset}
}

// IsValid returns true if line and column are positive and the offset,
// when set, is not negative.
func (p Point) IsValid() bool {
	if p.Line < 1 || p.Column < 1 {
		return false
	}
	return p.Offset == nil || *p.Offset >= 0
}

// Before reports whether p comes strictly before other in (line, column) order.
func (p Point) Before(other Point) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Equal compares line, column and offset.
func (p Point) Equal(other Point) bool {
	if p.Line != other.Line || p.Column != other.Column {
		return false
	}
	if p.Offset == nil || other.Offset == nil {
		return p.Offset == nil && other.Offset == nil
	}
	return *p.Offset == *other.Offset
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Position is the half-open range a node spans in its source.
type Position struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewPosition creates a position and validates it.
func NewPosition(start, end Point) (Position, error) {
	pos := Position{Start: start, End: end}
	if err := pos.Validate(); err != nil {
		return Position{}, err
	}
	return pos, nil
}

// Validate checks both points and their order.
// Start must not be after end by (line, column), and when both points carry
// an offset, the start offset must not exceed the end offset.
func (p Position) Validate() error {
	if !p.Start.IsValid() {
		return &ValidationError{
			Code:    ErrFieldConstraint,
			Field:   "position.start",
			Index:   NoIndex,
			Message: fmt.Sprintf("invalid point %s", p.Start),
		}
	}
	if !p.End.IsValid() {
		return &ValidationError{
			Code:    ErrFieldConstraint,
			Field:   "position.end",
			Index:   NoIndex,
			Message: fmt.Sprintf("invalid point %s", p.End),
		}
	}
	if p.End.Before(p.Start) {
		return &ValidationError{
			Code:    ErrPositionOrder,
			Field:   "position",
			Index:   NoIndex,
			Message: fmt.Sprintf("end %s precedes start %s", p.End, p.Start),
		}
	}
	if p.Start.Offset != nil && p.End.Offset != nil && *p.End.Offset < *p.Start.Offset {
		return &ValidationError{
			Code:    ErrPositionOrder,
			Field:   "position",
			Index:   NoIndex,
			Message: fmt.Sprintf("end offset %d precedes start offset %d", *p.End.Offset, *p.Start.Offset),
		}
	}
	return nil
}

// IsSingleLine returns true if start and end are on the same line.
func (p Position) IsSingleLine() bool {
	return p.Start.Line == p.End.Line
}

// Contains reports whether the point lies in [Start, End).
func (p Position) Contains(point Point) bool {
	return !point.Before(p.Start) && point.Before(p.End)
}

// Equal compares both points.
func (p Position) Equal(other Position) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

func (p Position) String() string {
	return p.Start.String() + "-" + p.End.String()
}

// clonePoint copies the offset so callers cannot reach stored state.
func clonePoint(p Point) Point {
	if p.Offset != nil {
		offset := *p.Offset
		p.Offset = &offset
	}
	return p
}

func clonePosition(p Position) Position {
	return Position{Start: clonePoint(p.Start), End: clonePoint(p.End)}
}
