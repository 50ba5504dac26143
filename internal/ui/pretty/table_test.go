package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/internal/ui/pretty"
)

func TestFormatTypeTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 60)

	stats := pretty.Stats{
		Nodes:  10,
		ByType: map[string]int{"text": 6, "paragraph": 3, "root": 1},
	}

	out := formatter.FormatTypeTable(stats)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "TYPE")
	assert.Contains(t, lines[0], "COUNT")
	assert.Contains(t, lines[0], "SHARE")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
	assert.Contains(t, lines[2], "text")
	assert.Contains(t, lines[2], "60.0%")
	assert.Contains(t, lines[3], "paragraph")
	assert.Contains(t, lines[4], "10.0%")
	assert.True(t, strings.HasPrefix(lines[5], "---"))
	assert.Contains(t, lines[6], "total")
	assert.Contains(t, lines[6], "10")

	for _, line := range lines {
		assert.LessOrEqual(t, len(line), 60, line)
	}
}

func TestFormatTypeTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	assert.Empty(t, formatter.FormatTypeTable(pretty.Stats{}))
}
