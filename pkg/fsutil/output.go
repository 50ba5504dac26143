package fsutil

import (
	"context"
	"fmt"
	"io"
	"os"
)

// OutputOptions controls WriteOutput.
type OutputOptions struct {
	// Backup keeps the previous content in a sidecar file.
	Backup bool

	// Snapshot, when set, is the state of the output taken before the run.
	// The write is refused if the file no longer matches it.
	Snapshot *FileInfo

	// Mode is the file mode for new files.
	Mode os.FileMode

	// DryRun computes the diff against the current file and writes nothing.
	DryRun bool
}

// OutputResult reports what WriteOutput did.
type OutputResult struct {
	Written  bool
	BackedUp bool

	// Diff is the unified diff from the current file to content. It is
	// only set for dry runs and is empty when nothing would change.
	Diff string
}

// WriteOutput writes content to path, or to stdout when path is StdioPath.
// Unchanged files are not rewritten.
func WriteOutput(ctx context.Context, path string, stdout io.Writer, content []byte, opts OutputOptions) (OutputResult, error) {
	var result OutputResult

	if path == StdioPath || path == "" {
		if _, err := stdout.Write(content); err != nil {
			return result, fmt.Errorf("write stdout: %w", err)
		}
		result.Written = true
		return result, nil
	}

	if opts.Snapshot != nil {
		modified, err := CheckModified(ctx, opts.Snapshot)
		if err != nil {
			return result, err
		}
		if modified {
			return result, fmt.Errorf("%w: %s", ErrModified, path)
		}
	}

	if opts.DryRun {
		diff, err := Diff(ctx, path, content)
		if err != nil {
			return result, err
		}
		result.Diff = diff
		return result, nil
	}

	if opts.Backup {
		backedUp, err := CreateBackup(ctx, path)
		if err != nil {
			return result, err
		}
		result.BackedUp = backedUp
	}

	written, err := WriteAtomicIfChanged(ctx, path, content, opts.Mode)
	if err != nil {
		return result, err
	}
	result.Written = written
	return result, nil
}
