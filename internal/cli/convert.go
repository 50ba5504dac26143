package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/config"
	"github.com/yaklabco/ustree/pkg/tohast"
)

func newConvertCommand() *cobra.Command {
	flags := &treeFlags{}

	cmd := &cobra.Command{
		Use:   "convert <file.md|->",
		Short: "Convert Markdown into a hast tree",
		Long: `Parse a Markdown file and convert the mdast tree into a hast tree.

Each Markdown node becomes the HTML element it usually renders as, and
source positions carry across to those elements.

Examples:
  ustree convert README.md
  ustree convert README.md --flavor gfm --format outline`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	addTreeFlags(cmd, flags, true)

	return cmd
}

func runConvert(cmd *cobra.Command, path string, flags *treeFlags) error {
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

	tree, err := tohast.New().Transform(ctx, result.Root)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inputName(path), err)
	}
	logging.FromContext(ctx).Debug("converted tree",
		logging.FieldInput, inputName(path),
		logging.FieldModel, config.ModelHast)

	if err := emitTree(cmd, cfg, tree, snapshot, flags); err != nil {
		return err
	}

	if flags.summary {
		st := collectStats(inputName(path), string(config.ModelHast), len(content), tree)
		st.Dropped = len(result.Dropped)
		printSummary(cmd, st, started)
	}
	return nil
}
