package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/ustree/internal/logging"
	"github.com/yaklabco/ustree/pkg/unist"
)

// Document is the tree built for one file.
type Document struct {
	// Tree is the root of the built tree.
	Tree unist.Node

	// Model is "mdast" or "hast".
	Model string

	// Bytes is the size of the source.
	Bytes int

	// Dropped counts source constructs left out of the tree.
	Dropped int
}

// Processor builds the tree for one file.
type Processor interface {
	Process(ctx context.Context, path string) (*Document, error)
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx context.Context, path string) (*Document, error)

// Process calls f.
func (f ProcessorFunc) Process(ctx context.Context, path string) (*Document, error) {
	return f(ctx, path)
}

// Runner discovers files and hands them to a Processor on a worker pool.
type Runner struct {
	Processor Processor
}

// New creates a Runner around p.
func New(p Processor) *Runner {
	return &Runner{Processor: p}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in discovery order whatever order the workers
// finish in. A failing file is recorded in its outcome and does not stop
// the run; only discovery errors and cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug("discovered files", "count", len(files))

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: path}
		outcome.Document, outcome.Error = r.Processor.Process(ctx, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
