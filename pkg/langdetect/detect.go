// Package langdetect infers a fence language tag for code blocks that carry
// none. It wraps go-enry with a few cheap source heuristics.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags produced by Infer.
const (
	TagGo         = "go"
	TagPython     = "python"
	TagJavaScript = "javascript"
	TagJSON       = "json"
	TagYAML       = "yaml"
	TagHTML       = "html"
	TagSQL        = "sql"
	TagRust       = "rust"
	TagDockerfile = "dockerfile"
	TagBash       = "bash"
)

// classifierCandidates bounds the enry classifier to languages that show up
// in documentation code blocks.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// tagAliases maps enry language names whose lowercase form is not the usual
// fence tag.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tagAliases = map[string]string{
	"Shell":      TagBash,
	"C++":        "cpp",
	"C#":         "csharp",
	"Emacs Lisp": "elisp",
	"Vim Script": "vim",
}

// Infer guesses the fence tag for code. ok is false when no guess is
// confident; callers then leave the language absent.
func Infer(code []byte) (string, bool) {
	if len(bytes.TrimSpace(code)) == 0 {
		return "", false
	}

	if lang, safe := enry.GetLanguageByShebang(code); safe {
		return Tag(lang), true
	}

	for _, h := range heuristics {
		if h.match(code) {
			return h.tag, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(code, classifierCandidates); safe && lang != "" {
		return Tag(lang), true
	}

	return "", false
}

// FromFilename returns the fence tag for a file name such as the one in a
// "title=main.go" code meta string.
func FromFilename(name string) (string, bool) {
	base := filepath.Base(name)
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" {
		return Tag(lang), true
	}
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" {
		return Tag(lang), true
	}
	return "", false
}

// Tag converts a go-enry language name to a fence tag.
func Tag(language string) string {
	if alias, ok := tagAliases[language]; ok {
		return alias
	}
	return strings.ReplaceAll(strings.ToLower(language), " ", "-")
}

type heuristic struct {
	tag   string
	match func(code []byte) bool
}

// heuristics run in order; the first match wins.
//
//nolint:gochecknoglobals // Read-only lookup table.
var heuristics = []heuristic{
	{TagGo, func(code []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(code), []byte("package "))
	}},
	{TagPython, looksLikePython},
	{TagHTML, func(code []byte) bool {
		lower := bytes.ToLower(bytes.TrimSpace(code))
		return containsAny(string(lower), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{TagJSON, func(code []byte) bool {
		trimmed := bytes.TrimSpace(code)
		return (trimmed[0] == '{' || trimmed[0] == '[') && bytes.ContainsRune(trimmed, '"')
	}},
	{TagDockerfile, func(code []byte) bool {
		src := string(code)
		return strings.HasPrefix(strings.TrimSpace(src), "FROM ") ||
			(strings.Contains(src, "\nFROM ") && strings.Contains(src, "\nRUN ")) ||
			(strings.Contains(src, "WORKDIR ") && strings.Contains(src, "COPY "))
	}},
	{TagSQL, func(code []byte) bool {
		upper := strings.ToUpper(strings.TrimSpace(string(code)))
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, verb) {
				return true
			}
		}
		return false
	}},
	{TagRust, func(code []byte) bool {
		return containsAny(string(code), "fn main()", "println!", "let mut ")
	}},
	{TagJavaScript, func(code []byte) bool {
		return containsAny(string(code), "=>", "const ", "let ", "console.log")
	}},
	{TagYAML, looksLikeYAML},
}

func looksLikePython(code []byte) bool {
	src := string(code)
	if strings.Contains(src, "def ") && strings.Contains(src, "):") {
		return true
	}
	if strings.Contains(src, "__name__") || strings.Contains(src, "__main__") {
		return true
	}
	// Go uses "import (" for grouped imports.
	if strings.Contains(src, "import ") && !strings.Contains(src, "import (") {
		return strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ")
	}
	return false
}

// looksLikeYAML wants at least two mapping keys or sequence entries.
func looksLikeYAML(code []byte) bool {
	entries := 0
	for _, line := range bytes.Split(code, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			entries++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			entries++
		}
	}
	return entries >= 2
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
