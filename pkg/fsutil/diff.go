package fsutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContext is the number of unchanged lines around each hunk.
const diffContext = 3

// Diff returns the unified diff from the current content of path to
// content. A missing file diffs as empty. The result is empty when the
// two are equal.
func Diff(ctx context.Context, path string, content []byte) (string, error) {
	current, _, err := ReadInput(ctx, path, nil, 0)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(content)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}
