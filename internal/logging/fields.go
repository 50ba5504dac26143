// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldConfig = "config"

	// Parse fields.
	FieldFlavor   = "flavor"
	FieldModel    = "model"
	FieldSelector = "selector"
	FieldBytes    = "bytes"
	FieldNodes    = "nodes"
	FieldDropped  = "dropped"
	FieldKind     = "kind"
	FieldLine     = "line"
	FieldLang     = "lang"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
