package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "ustree", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"parse", "html", "convert", "check", "stats", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, subCmd.Name())
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestTreeCommandFlags(t *testing.T) {
	t.Parallel()

	shared := []string{"format", "positions", "node-ids", "indent", "output", "backup", "dry-run", "summary"}

	tests := []struct {
		command string
		extra   []string
		absent  []string
	}{
		{command: "parse", extra: []string{"flavor", "detect-lang"}, absent: []string{"select"}},
		{command: "convert", extra: []string{"flavor", "detect-lang"}, absent: []string{"select"}},
		{command: "html", extra: []string{"select"}, absent: []string{"flavor", "detect-lang"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()

			cmd := cli.NewRootCommand(testInfo())
			sub, _, err := cmd.Find([]string{tt.command})
			require.NoError(t, err)

			for _, name := range append(shared, tt.extra...) {
				assert.NotNil(t, sub.Flags().Lookup(name), "expected --%s", name)
			}
			for _, name := range tt.absent {
				assert.Nil(t, sub.Flags().Lookup(name), "unexpected --%s", name)
			}
		})
	}
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	sub, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	model := sub.Flags().Lookup("model")
	require.NotNil(t, model)
	assert.Equal(t, "mdast", model.DefValue)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "test-version")
	assert.Contains(t, out.String(), "test-commit")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help", "--color", "never"})

	require.NoError(t, cmd.Execute())
	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "Commands:")
	assert.Contains(t, help, "parse")
	assert.Contains(t, help, "--config")
}
