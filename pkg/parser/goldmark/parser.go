// Package goldmark builds validated Markdown trees from goldmark's AST.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Options control how Markdown is mapped to the tree.
type Options struct {
	// Flavor is "commonmark" or "gfm". Anything else means commonmark.
	Flavor string

	// Positions attaches source positions to nodes.
	Positions bool

	// DetectLang infers lang for fenced and indented code that has none.
	DetectLang bool

	// NodeIDs stamps every node with a random data.id.
	NodeIDs bool
}

// Dropped records a construct that has no node kind in the Markdown tree
// and was left out of the result.
type Dropped struct {
	Kind     string
	Position unist.Position
}

// Result is the output of Parse.
type Result struct {
	Root    *mdast.Root
	Dropped []Dropped
}

// Parser converts Markdown source into an mdast tree using goldmark.
// A Parser is safe for concurrent use.
type Parser struct {
	opts Options
	md   goldmark.Markdown
}

// New creates a new goldmark-based parser.
func New(opts Options) *Parser {
	opts.Flavor = flavorOrDefault(opts.Flavor)
	return &Parser{
		opts: opts,
		md:   newGoldmarkInstance(opts.Flavor),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.opts.Flavor
}

// Parse converts raw Markdown bytes into a validated tree.
// Returns nil and an error if mapping fails or ctx is cancelled.
func (p *Parser) Parse(ctx context.Context, content []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	src := copyContent(content)
	reader := text.NewReader(src)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(src, p.opts)
	root, err := m.mapDocument(gmDoc)
	if err != nil {
		return nil, fmt.Errorf("map markdown: %w", err)
	}

	logger := logging.FromContext(ctx)
	for _, d := range m.dropped {
		logger.Debug("dropped construct",
			logging.FieldKind, d.Kind,
			logging.FieldLine, d.Position.Start.Line)
	}

	return &Result{Root: root, Dropped: m.dropped}, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent copies content so the caller may reuse its buffer.
func copyContent(content []byte) []byte {
	if content == nil {
		return []byte{}
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
