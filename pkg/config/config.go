// Package config defines the configuration types for ustree.
// These types are plain data with no dependency on the loader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies how trees are written.
type OutputFormat string

const (
	// FormatJSON writes unist JSON.
	FormatJSON OutputFormat = "json"

	// FormatOutline writes an indented, styled tree outline.
	FormatOutline OutputFormat = "outline"
)

// Model names a tree model.
type Model string

const (
	ModelMdast Model = "mdast"
	ModelHast  Model = "hast"
)

// DefaultIndent is the JSON indentation used when none is configured.
const DefaultIndent = 2

// Config is the root configuration structure for ustree.
//
// The boolean switches are pointers so that a config file or the
// environment can turn a default off; nil means "not set here".
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor,omitempty"`

	// Positions attaches source positions to Markdown nodes.
	Positions *bool `mapstructure:"positions" yaml:"positions,omitempty"`

	// DetectLang infers a language for code blocks that have none.
	DetectLang *bool `mapstructure:"detect_lang" yaml:"detect_lang,omitempty"`

	// NodeIDs stamps every node with a random data.id.
	NodeIDs *bool `mapstructure:"node_ids" yaml:"node_ids,omitempty"`

	// Format is the output format for trees.
	Format OutputFormat `mapstructure:"format" yaml:"format,omitempty"`

	// Indent is the JSON indentation width. Zero writes compact JSON.
	Indent *int `mapstructure:"indent" yaml:"indent,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output is the file trees are written to. Empty means stdout.
	Output string `mapstructure:"-" yaml:"-"`

	// Selector restricts HTML parsing to the matching elements.
	Selector string `mapstructure:"-" yaml:"-"`

	// Model is the tree model a JSON document is checked against.
	Model Model `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:     FlavorCommonMark,
		Positions:  Bool(true),
		DetectLang: Bool(false),
		NodeIDs:    Bool(false),
		Format:     FormatJSON,
		Indent:     Int(DefaultIndent),
		Model:      ModelMdast,
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// PositionsEnabled reports whether positions are on. Unset means on.
func (c *Config) PositionsEnabled() bool {
	return c.Positions == nil || *c.Positions
}

// DetectLangEnabled reports whether language detection is on.
func (c *Config) DetectLangEnabled() bool {
	return c.DetectLang != nil && *c.DetectLang
}

// NodeIDsEnabled reports whether node IDs are stamped.
func (c *Config) NodeIDsEnabled() bool {
	return c.NodeIDs != nil && *c.NodeIDs
}

// IndentWidth returns the JSON indentation width.
func (c *Config) IndentWidth() int {
	if c.Indent == nil {
		return DefaultIndent
	}
	return *c.Indent
}
