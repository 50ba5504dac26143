package cli

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/internal/ui/pretty"
	"github.com/yaklabco/ustree/pkg/config"
	goldmarkparser "github.com/yaklabco/ustree/pkg/parser/goldmark"
)

const parseLongDescription = `Parse a Markdown file into an mdast tree.

The tree is printed as unist JSON by default. Constructs the Markdown tree
has no node for, such as raw HTML and tables, are left out and reported on
stderr. Use "-" to read from stdin.

Examples:
  ustree parse README.md                  # mdast JSON on stdout
  ustree parse README.md --format outline # tree outline
  ustree parse README.md --flavor gfm     # task lists, autolinks
  ustree parse - --positions=false < a.md
  ustree parse doc.md -o doc.json --backup`

func newParseCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file.md|->",
		Short: "Parse Markdown into an mdast tree",
		Long:  parseLongDescription,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	addTreeFlags(cmd, flags, true)

	return cmd
}

func runParse(cmd *cobra.Command, path string, flags *treeFlags) error {
	started := time.Now()
	ctx := cmd.Context()

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	snapshot, err := prepareOutput(ctx, cfg)
	if err != nil {
		return err
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	result, err := parseMarkdown(ctx, cfg, content)
	if err != nil {
		return err
	}

	reportDropped(cmd, inputName(path), content, result.Dropped)

	if err := emitTree(cmd, cfg, result.Root, snapshot, flags); err != nil {
		return err
	}

	if flags.summary {
		st := collectStats(inputName(path), string(config.ModelMdast), len(content), result.Root)
		st.Dropped = len(result.Dropped)
		printSummary(cmd, st, started)
	}
	return nil
}

// parseMarkdown runs the goldmark frontend with the configured options.
func parseMarkdown(ctx context.Context, cfg *config.Config, content []byte) (*goldmarkparser.Result, error) {
	parser := goldmarkparser.New(goldmarkparser.Options{
		Flavor:     string(cfg.Flavor),
		Positions:  cfg.PositionsEnabled(),
		DetectLang: cfg.DetectLangEnabled(),
		NodeIDs:    cfg.NodeIDsEnabled(),
	})

	result, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("parse markdown: %w", err)
	}

	logging.FromContext(ctx).Debug("parsed markdown",
		logging.FieldFlavor, parser.Flavor(),
		logging.FieldDropped, len(result.Dropped))
	return result, nil
}

// reportDropped prints a warning for every construct left out of the tree.
func reportDropped(cmd *cobra.Command, name string, content []byte, dropped []goldmarkparser.Dropped) {
	if len(dropped) == 0 {
		return
	}

	styles := errStyles(cmd)
	lines := bytes.Split(content, []byte("\n"))

	var buf bytes.Buffer
	buf.WriteString(styles.FormatFileHeader(name, len(dropped)))
	for _, d := range dropped {
		line := d.Position.Start.Line
		source := ""
		if line >= 1 && line <= len(lines) {
			source = string(bytes.TrimRight(lines[line-1], "\r"))
		}
		buf.WriteString(styles.FormatNotice(pretty.Notice{
			FilePath: name,
			Line:     line,
			Column:   d.Position.Start.Column,
			Severity: pretty.SeverityWarning,
			Message:  d.Kind + " dropped: no Markdown tree node for it",
		}, source))
	}
	cmd.PrintErr(buf.String())
}
