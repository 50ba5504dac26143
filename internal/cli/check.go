package cli

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/internal/ui/pretty"
	"github.com/yaklabco/ustree/pkg/config"
	"github.com/yaklabco/ustree/pkg/hast"
	"github.com/yaklabco/ustree/pkg/mdast"
	"github.com/yaklabco/ustree/pkg/unist"
)

func newCheckCommand() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "check <tree.json|->",
		Short: "Check a unist JSON tree",
		Long: `Decode a unist JSON tree and check every node.

Each node is rebuilt through the same validated constructors the parsers
use, so a tree produced by another tool is held to the same rules. The
command exits with status 1 and reports the first offending node when the
tree is invalid.

Examples:
  ustree check tree.json
  ustree check page.json --model hast
  ustree parse README.md | ustree check -`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], model)
		},
	}

	cmd.Flags().StringVar(&model, "model", string(config.ModelMdast), "tree model: mdast, hast")

	return cmd
}

func runCheck(cmd *cobra.Command, path, modelName string) error {
	ctx := cmd.Context()

	model, ok := config.ParseModel(modelName)
	if !ok {
		return usageError(fmt.Errorf("invalid model %q: must be mdast or hast", modelName))
	}

	cfg, err := loadConfig(cmd, &config.Config{Model: model})
	if err != nil {
		return err
	}

	content, err := readInput(cmd, path)
	if err != nil {
		return err
	}

	root, err := decodeTree(cfg.Model, content)
	if err != nil {
		cmd.PrintErr(errStyles(cmd).FormatValidationError(inputName(path), err))
		return errors.Join(ErrInvalidTree, err)
	}

	st := collectStats(inputName(path), string(cfg.Model), len(content), root)
	logging.FromContext(ctx).Debug("checked tree",
		logging.FieldInput, inputName(path),
		logging.FieldModel, cfg.Model,
		logging.FieldNodes, st.Nodes)

	styles := pretty.NewStyles(colorEnabled(cmd, cfg))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s tree, %s nodes\n",
		styles.FilePath.Render(inputName(path)),
		styles.Success.Render("valid"),
		cfg.Model,
		humanize.Comma(int64(st.Nodes)),
	)
	return nil
}

// decodeTree decodes and checks a tree of the given model.
//
//nolint:ireturn // the model decides the concrete tree type.
func decodeTree(model config.Model, content []byte) (unist.Node, error) {
	switch model {
	case config.ModelHast:
		root, err := hast.Unmarshal(content)
		if err != nil {
			return nil, err
		}
		return root, hast.Check(root)
	default:
		root, err := mdast.Unmarshal(content)
		if err != nil {
			return nil, err
		}
		return root, mdast.Check(root)
	}
}
