package config

import "strings"

// ParseFormat converts a format name to an OutputFormat.
// Matching ignores case and surrounding space.
func ParseFormat(name string) (OutputFormat, bool) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatOutline:
		return f, true
	default:
		return "", false
	}
}

// ParseModel converts a model name to a Model.
func ParseModel(name string) (Model, bool) {
	switch m := Model(strings.ToLower(strings.TrimSpace(name))); m {
	case ModelMdast, ModelHast:
		return m, true
	default:
		return "", false
	}
}
