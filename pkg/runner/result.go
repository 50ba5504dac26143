package runner

import "github.com/yaklabco/ustree/pkg/unist"

// FileOutcome is the result for one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Document is the built tree, nil when Error is set.
	Document *Document

	// Error is set if the tree could not be built.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// Bytes is the total source size of processed files.
	Bytes int

	// Nodes is the total node count across all trees.
	Nodes int

	// MaxDepth is the deepest nesting seen in any tree.
	MaxDepth int

	// Dropped is the total count of constructs left out of trees.
	Dropped int

	// NodesByType maps node types to counts.
	NodesByType map[string]int

	// FilesByModel maps "mdast" and "hast" to file counts.
	FilesByModel map[string]int
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	// Stats aggregates the outcomes.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in file order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func newStats() Stats {
	return Stats{
		NodesByType:  make(map[string]int),
		FilesByModel: make(map[string]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	doc := outcome.Document
	if doc == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Bytes += doc.Bytes
	r.Stats.Dropped += doc.Dropped
	if doc.Model != "" {
		r.Stats.FilesByModel[doc.Model]++
	}

	//nolint:errcheck // the callback never fails
	_ = unist.Walk(doc.Tree, func(n unist.Node, parents []unist.Parent) error {
		r.Stats.Nodes++
		r.Stats.NodesByType[n.Type()]++
		r.Stats.MaxDepth = max(r.Stats.MaxDepth, len(parents))
		return nil
	})
}
