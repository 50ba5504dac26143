package configloader

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"

	"github.com/yaklabco/ustree/pkg/config"
)

// maxIndent bounds the JSON indentation width.
const maxIndent = 8

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "flavor").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatJSON:    true,
	config.FormatOutline: true,
}

// knownModels lists valid model values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownModels = map[config.Model]bool{
	config.ModelMdast: true,
	config.ModelHast:  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: json, outline", cfg.Format),
		})
	}

	if cfg.Model != "" && !knownModels[cfg.Model] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "model",
			Value:   cfg.Model,
			Message: fmt.Sprintf("invalid model %q; must be one of: mdast, hast", cfg.Model),
		})
	}

	if cfg.Indent != nil && (*cfg.Indent < 0 || *cfg.Indent > maxIndent) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "indent",
			Value:   *cfg.Indent,
			Message: fmt.Sprintf("indent must be between 0 and %d", maxIndent),
		})
	}

	if cfg.Selector != "" {
		if _, err := cascadia.Compile(cfg.Selector); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "selector",
				Value:   cfg.Selector,
				Message: fmt.Sprintf("invalid CSS selector: %v", err),
			})
		}
	}

	if cfg.NodeIDsEnabled() && cfg.Format == config.FormatOutline {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "node_ids",
			Value:   true,
			Message: "node IDs are not shown in outline output",
		})
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
