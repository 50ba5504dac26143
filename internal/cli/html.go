package cli

import (
	"bytes"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/config"
	htmlparser "github.com/yaklabco/ustree/pkg/parser/html"
)

func newHTMLCommand() *cobra.Command {
	flags := &treeFlags{}
	var selector string

	cmd := &cobra.Command{
		Use:   "html <file.html|->",
		Short: "Parse HTML into a hast tree",
		Long: `Parse an HTML document into a hast tree.

The document is parsed the way a browser would, so missing html, head and
body elements are supplied. With --select only the elements matching a CSS
selector are kept, one subtree per match in document order.

Examples:
  ustree html index.html
  ustree html index.html --select "main article" --format outline`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHTML(cmd, args[0], flags, selector)
		},
	}

	addTreeFlags(cmd, flags, false)
	cmd.Flags().StringVar(&selector, "select", "", "keep only elements matching a CSS selector")

	return cmd
}

func runHTML(cmd *cobra.Command, path string, flags *treeFlags, selector string) error {
	started := time.Now()
	ctx := cmd.Context()

	cliCfg, err := flags.cliConfig(cmd)
	if err != nil {
		return err
	}
	cliCfg.Selector = selector

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

	root, err := htmlparser.Parse(ctx, bytes.NewReader(content), htmlparser.Options{
		Selector: cfg.Selector,
		NodeIDs:  cfg.NodeIDsEnabled(),
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputName(path), err)
	}
	logging.FromContext(ctx).Debug("parsed html",
		logging.FieldInput, inputName(path),
		logging.FieldNodes, len(root.Children()))

	if err := emitTree(cmd, cfg, root, snapshot, flags); err != nil {
		return err
	}

	if flags.summary {
		printSummary(cmd, collectStats(inputName(path), string(config.ModelHast), len(content), root), started)
	}
	return nil
}
