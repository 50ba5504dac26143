package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// templateEntry documents one persisted setting.
type templateEntry struct {
	key     string
	comment string
	value   string
}

// templateEntries lists the settings in the order they are written.
//
//nolint:gochecknoglobals // Read-only lookup table.
var templateEntries = []templateEntry{
	{"flavor", "Markdown flavor: commonmark or gfm.", "commonmark"},
	{"positions", "Attach source positions to Markdown nodes.", "true"},
	{"detect_lang", "Guess a language for code blocks that have none.", "false"},
	{"node_ids", "Stamp every node with a random data.id.", "false"},
	{"format", "Output format: json or outline.", "json"},
	{"indent", "JSON indentation width; 0 writes compact JSON.", "2"},
}

// GenerateTemplate creates a configuration file holding the defaults.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml":
		return generateYAMLTemplate(), nil
	case "json":
		return generateJSONTemplate()
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func generateYAMLTemplate() []byte {
	var buf bytes.Buffer
	buf.WriteString("# ustree configuration\n")
	buf.WriteString("# Environment variables (USTREE_*) and flags override these values.\n")
	for _, e := range templateEntries {
		buf.WriteString("\n# " + e.comment + "\n")
		buf.WriteString(e.key + ": " + e.value + "\n")
	}
	return buf.Bytes()
}

func generateJSONTemplate() ([]byte, error) {
	cfg := NewConfig()
	out := map[string]any{
		"flavor":      cfg.Flavor,
		"positions":   cfg.PositionsEnabled(),
		"detect_lang": cfg.DetectLangEnabled(),
		"node_ids":    cfg.NodeIDsEnabled(),
		"format":      cfg.Format,
		"indent":      cfg.IndentWidth(),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal template: %w", err)
	}
	return append(data, '\n'), nil
}
