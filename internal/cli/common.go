package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/configloader"
	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/internal/ui/pretty"
	"github.com/yaklabco/ustree/pkg/config"
	"github.com/yaklabco/ustree/pkg/fsutil"
	"github.com/yaklabco/ustree/pkg/hast"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

// maxInputBytes caps a single input document.
const maxInputBytes = 64 << 20

// treeFlags are the output flags shared by the tree-producing commands.
type treeFlags struct {
	format    string
	flavor    string
	positions bool
	detect    bool
	nodeIDs   bool
	indent    int
	output    string
	backup    bool
	dryRun    bool
	summary   bool
}

func addTreeFlags(cmd *cobra.Command, flags *treeFlags, markdown bool) {
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatJSON), "output format: json, outline")
	cmd.Flags().BoolVar(&flags.positions, "positions", true, "attach source positions to nodes")
	cmd.Flags().BoolVar(&flags.nodeIDs, "node-ids", false, "stamp every node with a random data.id")
	cmd.Flags().IntVar(&flags.indent, "indent", config.DefaultIndent, "JSON indent width (0 = compact)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the tree to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up an existing output file before replacing it")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the diff against the --output file instead of writing it")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print node statistics to stderr")
	if markdown {
		cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
		cmd.Flags().BoolVar(&flags.detect, "detect-lang", false, "infer a language for unlabelled code blocks")
	}
}

// cliConfig builds a config holding only the flags the user set, so
// file and environment values survive for everything else.
func (f *treeFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{Output: f.output}
	changed := cmd.Flags().Changed

	if changed("format") {
		format, ok := config.ParseFormat(f.format)
		if !ok {
			return nil, usageError(fmt.Errorf("invalid format %q: must be json or outline", f.format))
		}
		cfg.Format = format
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(strings.ToLower(strings.TrimSpace(f.flavor)))
		if !configloader.IsValidFlavor(cfg.Flavor) {
			return nil, usageError(fmt.Errorf("invalid flavor %q: must be commonmark or gfm", f.flavor))
		}
	}
	if changed("positions") {
		cfg.Positions = config.Bool(f.positions)
	}
	if changed("detect-lang") {
		cfg.DetectLang = config.Bool(f.detect)
	}
	if changed("node-ids") {
		cfg.NodeIDs = config.Bool(f.nodeIDs)
	}
	if changed("indent") {
		cfg.Indent = config.Int(f.indent)
	}
	return cfg, nil
}

// loadConfig resolves the final configuration for cmd.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	// Bad flag values are usage errors, not configuration errors.
	if v := configloader.Validate(cliCfg); !v.Valid() {
		return nil, usageError(&v.Errors[0])
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}

	cfg := result.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		"positions", cfg.PositionsEnabled(),
		"format", cfg.Format,
	)
	return cfg, nil
}

// readInput reads the named input, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	content, _, err := fsutil.ReadInput(cmd.Context(), path, cmd.InOrStdin(), maxInputBytes)
	if err != nil {
		return nil, err
	}
	logging.FromContext(cmd.Context()).Debug("read input",
		logging.FieldInput, path,
		logging.FieldBytes, len(content))
	return content, nil
}

// prepareOutput snapshots the output file so a concurrent edit is not
// clobbered when the tree is written.
func prepareOutput(ctx context.Context, cfg *config.Config) (*fsutil.FileInfo, error) {
	if cfg.Output == "" || cfg.Output == fsutil.StdioPath {
		return nil, nil
	}
	return fsutil.Snapshot(ctx, cfg.Output)
}

// renderTree encodes root in the configured format.
func renderTree(cmd *cobra.Command, cfg *config.Config, root unist.Node) ([]byte, error) {
	if cfg.Format == config.FormatOutline {
		styles := pretty.NewStyles(colorEnabled(cmd, cfg))
		out := styles.FormatOutline(root, pretty.OutlineOptions{Positions: cfg.PositionsEnabled()})
		return []byte(out), nil
	}

	indent := strings.Repeat(" ", cfg.IndentWidth())

	var (
		data []byte
		err  error
	)
	switch n := root.(type) {
	case mdast.Node:
		if indent == "" {
			data, err = mdast.Marshal(n)
		} else {
			data, err = mdast.MarshalIndent(n, indent)
		}
	case hast.Node:
		if indent == "" {
			data, err = hast.Marshal(n)
		} else {
			data, err = hast.MarshalIndent(n, indent)
		}
	default:
		return nil, fmt.Errorf("unsupported tree type %T", root)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// colorEnabled reports whether outline output should be colored. Files
// never get escape codes.
func colorEnabled(cmd *cobra.Command, cfg *config.Config) bool {
	if cfg.Output != "" && cfg.Output != fsutil.StdioPath {
		return false
	}
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.IsColorEnabled(mode, cmd.OutOrStdout())
}

// errStyles returns styles for stderr diagnostics.
func errStyles(cmd *cobra.Command) *pretty.Styles {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.ErrOrStderr()))
}

// emitTree renders root and writes it to the configured output.
func emitTree(cmd *cobra.Command, cfg *config.Config, root unist.Node, snapshot *fsutil.FileInfo, flags *treeFlags) error {
	content, err := renderTree(cmd, cfg, root)
	if err != nil {
		return err
	}

	result, err := fsutil.WriteOutput(cmd.Context(), cfg.Output, cmd.OutOrStdout(), content, fsutil.OutputOptions{
		Backup:   flags.backup,
		Snapshot: snapshot,
		DryRun:   flags.dryRun,
	})
	if err != nil {
		return err
	}

	if flags.dryRun && result.Diff != "" {
		fmt.Fprint(cmd.OutOrStdout(), result.Diff)
	}

	if cfg.Output != "" && cfg.Output != fsutil.StdioPath {
		logging.FromContext(cmd.Context()).Debug("wrote tree",
			logging.FieldOutput, cfg.Output,
			"written", result.Written,
			"dry_run", flags.dryRun,
			"backed_up", result.BackedUp)
	}
	return nil
}

// collectStats counts the nodes of root by type and measures its depth.
func collectStats(input, model string, size int, root unist.Node) pretty.Stats {
	st := pretty.Stats{
		Input:  input,
		Model:  model,
		Bytes:  size,
		ByType: make(map[string]int),
	}

	//nolint:errcheck // the callback never fails
	_ = unist.Walk(root, func(n unist.Node, parents []unist.Parent) error {
		st.Nodes++
		st.ByType[n.Type()]++
		st.Depth = max(st.Depth, len(parents))
		return nil
	})

	return st
}

// printSummary writes stats for the produced tree to stderr.
func printSummary(cmd *cobra.Command, st pretty.Stats, started time.Time) {
	st.Duration = time.Since(started)
	styles := errStyles(cmd)

	var buf bytes.Buffer
	buf.WriteString(styles.FormatSummaryOneLine(st))
	buf.WriteString(pretty.NewTableFormatter(styles, pretty.TerminalWidth(cmd.ErrOrStderr())).FormatTypeTable(st))
	cmd.PrintErr(buf.String())
}

// inputName is the display name for an input path.
func inputName(path string) string {
	if path == fsutil.StdioPath {
		return "<stdin>"
	}
	return path
}
