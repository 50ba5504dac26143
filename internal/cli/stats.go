package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/internal/ui/pretty"
	"github.com/yaklabco/ustree/pkg/config"
	"github.com/yaklabco/ustree/pkg/fsutil"
	htmlparser "github.com/yaklabco/ustree/pkg/parser/html"
	"github.com/yaklabco/ustree/pkg/runner"
)

type statsFlags struct {
	flavor         string
	jobs           int
	ignore         []string
	followSymlinks bool
}

func newStatsCommand() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Count tree nodes across many files",
		Long: `Build the tree of every Markdown and HTML file under the given paths
and report node counts per file and by node type.

Directories are searched recursively; hidden files and directories are
skipped. Files are processed concurrently.

Examples:
  ustree stats                       # everything under the current directory
  ustree stats docs/ site/index.html
  ustree stats --ignore "vendor/**" --jobs 4`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorCommonMark), "Markdown flavor: commonmark, gfm")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, flags *statsFlags) error {
	started := time.Now()
	ctx := cmd.Context()

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(strings.ToLower(strings.TrimSpace(flags.flavor)))
	}
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	r := runner.New(documentProcessor(cfg))
	result, err := r.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   flags.ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
	})
	if err != nil {
		return fmt.Errorf("stats run: %w", err)
	}

	printStats(cmd, cfg, workDir, result, time.Since(started))

	if result.HasErrors() {
		return fmt.Errorf("%d of %d files failed: %w",
			result.Stats.FilesErrored, result.Stats.FilesDiscovered, errors.Join(result.Errors()...))
	}
	return nil
}

// documentProcessor builds an HTML tree for .html and .htm files and a
// Markdown tree for everything else.
func documentProcessor(cfg *config.Config) runner.ProcessorFunc {
	return func(ctx context.Context, path string) (*runner.Document, error) {
		content, _, err := fsutil.ReadInput(ctx, path, nil, maxInputBytes)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm":
			root, err := htmlparser.Parse(ctx, bytes.NewReader(content), htmlparser.Options{})
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return &runner.Document{Tree: root, Model: string(config.ModelHast), Bytes: len(content)}, nil
		default:
			result, err := parseMarkdown(ctx, cfg, content)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			return &runner.Document{
				Tree:    result.Root,
				Model:   string(config.ModelMdast),
				Bytes:   len(content),
				Dropped: len(result.Dropped),
			}, nil
		}
	}
}

func printStats(cmd *cobra.Command, cfg *config.Config, workDir string, result *runner.Result, elapsed time.Duration) {
	styles := pretty.NewStyles(colorEnabled(cmd, cfg))
	out := cmd.OutOrStdout()

	for _, f := range result.Files {
		name := relativePath(workDir, f.Path)
		if f.Error != nil {
			fmt.Fprint(out, styles.FormatNotice(pretty.Notice{
				FilePath: name,
				Severity: pretty.SeverityError,
				Message:  f.Error.Error(),
			}, ""))
			continue
		}
		fileStats := collectStats(name, f.Document.Model, f.Document.Bytes, f.Document.Tree)
		fileStats.Dropped = f.Document.Dropped
		fmt.Fprint(out, styles.FormatSummaryOneLine(fileStats))
	}

	st := result.Stats
	total := pretty.Stats{
		Input:    fmt.Sprintf("%s files", humanize.Comma(int64(st.FilesProcessed))),
		Bytes:    st.Bytes,
		Nodes:    st.Nodes,
		Depth:    st.MaxDepth,
		ByType:   st.NodesByType,
		Dropped:  st.Dropped,
		Duration: elapsed,
	}

	fmt.Fprint(out, styles.FormatSummary(total))
	if st.Nodes > 0 {
		fmt.Fprint(out, pretty.NewTableFormatter(styles, pretty.TerminalWidth(out)).FormatTypeTable(total))
	}

	logging.FromContext(cmd.Context()).Debug("stats complete",
		"files", st.FilesDiscovered,
		logging.FieldNodes, st.Nodes,
		"errored", st.FilesErrored)
}

func relativePath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
