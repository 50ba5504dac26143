package pretty

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const summaryDividerWidth = 40

// Stats describes one tree produced or checked by the CLI.
type Stats struct {
	// Input is the file the tree came from.
	Input string

	// Model is "mdast" or "hast".
	Model string

	// Bytes is the size of the input.
	Bytes int

	// Nodes is the number of nodes in the tree, root included.
	Nodes int

	// Depth is the length of the longest root-to-leaf path.
	Depth int

	// ByType counts nodes per type.
	ByType map[string]int

	// Dropped counts constructs left out of the tree.
	Dropped int

	// Duration is how long parsing took.
	Duration time.Duration
}

// TypeCount is one entry of Stats.ByType.
type TypeCount struct {
	Type  string
	Count int
}

// SortedTypes returns the per-type counts, most frequent first.
func (st Stats) SortedTypes() []TypeCount {
	counts := make([]TypeCount, 0, len(st.ByType))
	for typ, n := range st.ByType {
		counts = append(counts, TypeCount{Type: typ, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Type < counts[j].Type
	})
	return counts
}

// FormatSummaryOneLine formats stats as a single line.
// Example: "README.md: 1,204 nodes from 12 kB (mdast), 2 dropped".
func (s *Styles) FormatSummaryOneLine(st Stats) string {
	nodeWord := "nodes"
	if st.Nodes == 1 {
		nodeWord = "node"
	}

	line := fmt.Sprintf("%s: %s %s from %s",
		s.FilePath.Render(st.Input),
		s.SummaryValue.Render(humanize.Comma(int64(st.Nodes))),
		nodeWord,
		humanize.Bytes(uint64(max(st.Bytes, 0))),
	)
	if st.Model != "" {
		line += s.Dim.Render(" (" + st.Model + ")")
	}

	if st.Dropped > 0 {
		line += ", " + s.Warning.Render(fmt.Sprintf("%d dropped", st.Dropped))
	} else {
		line += ", " + s.Success.Render("nothing dropped")
	}

	return line + "\n"
}

// FormatSummary formats stats as a summary block.
func (s *Styles) FormatSummary(st Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Input:        " + s.SummaryValue.Render(st.Input) + "\n")
	builder.WriteString("  Size:         " + s.SummaryValue.Render(humanize.Bytes(uint64(max(st.Bytes, 0)))) + "\n")
	builder.WriteString("  Nodes:        " + s.SummaryValue.Render(humanize.Comma(int64(st.Nodes))) + "\n")
	builder.WriteString("  Depth:        " + s.SummaryValue.Render(humanize.Comma(int64(st.Depth))) + "\n")

	if st.Dropped > 0 {
		builder.WriteString("  Dropped:      " + s.Warning.Render(humanize.Comma(int64(st.Dropped))) + "\n")
	}
	if st.Duration > 0 {
		builder.WriteString("  Parse time:   " + s.Dim.Render(st.Duration.Round(time.Microsecond).String()) + "\n")
	}

	builder.WriteString("\n")
	if st.Dropped > 0 {
		builder.WriteString(s.Warning.Render("Tree built; some constructs were dropped"))
	} else {
		builder.WriteString(s.Success.Render("Tree built"))
	}
	builder.WriteString("\n")

	return builder.String()
}
