package unist

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error categories. Every *ValidationError unwraps to one of these.
var (
	// ErrShapeViolation means a child is not allowed under its parent kind,
	// or a node that cannot have children was given some.
	ErrShapeViolation = errors.New("shape violation")

	// ErrFieldConstraint means a required field is missing or a bounded
	// field is out of range.
	ErrFieldConstraint = errors.New("field constraint violation")

	// ErrPositionOrder means a position ends before it starts.
	ErrPositionOrder = errors.New("position order violation")
)

// NoIndex marks a ValidationError that is not about a specific child.
const NoIndex = -1

// ValidationError describes why a node could not be constructed.
type ValidationError struct {
	// Code is one of ErrShapeViolation, ErrFieldConstraint or ErrPositionOrder.
	Code error

	// NodeType is the type of the node being constructed, if known.
	NodeType string

	// Field names the offending field ("depth", "url", "position.start").
	Field string

	// Index is the offending child index, or NoIndex.
	Index int

	// Message is a human-readable description.
	Message string
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Code.Error())
	if e.NodeType != "" {
		sb.WriteString(" in ")
		sb.WriteString(e.NodeType)
	}
	switch {
	case e.Field != "":
		sb.WriteString(" (")
		sb.WriteString(e.Field)
		sb.WriteString(")")
	case e.Index >= 0:
		fmt.Fprintf(&sb, " (child %d)", e.Index)
	}
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// Unwrap returns the error category.
func (e *ValidationError) Unwrap() error {
	return e.Code
}

// ShapeError builds a ShapeViolation for the child at index.
func ShapeError(nodeType string, index int, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     ErrShapeViolation,
		NodeType: nodeType,
		Index:    index,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FieldError builds a FieldConstraintViolation for a named field.
func FieldError(nodeType, field string, format string, args ...any) *ValidationError {
	return &ValidationError{
		Code:     ErrFieldConstraint,
		NodeType: nodeType,
		Field:    field,
		Index:    NoIndex,
		Message:  fmt.Sprintf(format, args...),
	}
}

// withNodeType fills in the node type on a validation error produced before
// the node type was known.
func withNodeType(err error, nodeType string) error {
	var verr *ValidationError
	if errors.As(err, &verr) && verr.NodeType == "" {
		copied := *verr
		copied.NodeType = nodeType
		return &copied
	}
	return err
}
