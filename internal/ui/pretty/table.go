package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Table formatting constants.
const (
	tablePadding    = 2
	minTypeWidth    = 12
	countWidth      = 8
	shareWidth      = 7
	barPadding      = 4
	heavySeparator  = "="
	lightSeparator  = "-"
	barSymbol       = "#"
	percentOfWhole  = 100
	minBarWidth     = 10
	tableColumnGaps = 3
)

// TableFormatter formats node counts as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

// FormatTypeTable formats per-type node counts with a share bar.
func (t *TableFormatter) FormatTypeTable(st Stats) string {
	counts := st.SortedTypes()
	if len(counts) == 0 || st.Nodes == 0 {
		return ""
	}

	typeWidth := minTypeWidth
	for _, c := range counts {
		typeWidth = max(typeWidth, len(c.Type))
	}
	barWidth := max(minBarWidth,
		t.termWidth-typeWidth-countWidth-shareWidth-tablePadding*tableColumnGaps-barPadding)
	totalWidth := typeWidth + countWidth + shareWidth + barWidth + tablePadding*tableColumnGaps + 1

	var builder strings.Builder

	header := fmt.Sprintf(" %-*s  %*s  %*s  %s", typeWidth, "TYPE", countWidth, "COUNT", shareWidth, "SHARE", "")
	builder.WriteString(t.styles.TableHeader.Render(header))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, totalWidth)))
	builder.WriteString("\n")

	for _, c := range counts {
		share := float64(c.Count) / float64(st.Nodes)
		bar := strings.Repeat(barSymbol, max(1, int(share*float64(barWidth))))
		builder.WriteString(fmt.Sprintf(" %-*s  %*s  %*s  %s\n",
			typeWidth, truncateString(c.Type, typeWidth),
			countWidth, humanize.Comma(int64(c.Count)),
			shareWidth, fmt.Sprintf("%.1f%%", share*percentOfWhole),
			t.styles.Value.Render(bar),
		))
	}

	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(lightSeparator, totalWidth)))
	builder.WriteString("\n")
	builder.WriteString(fmt.Sprintf(" %-*s  %*s\n", typeWidth, "total", countWidth, humanize.Comma(int64(st.Nodes))))

	return builder.String()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
