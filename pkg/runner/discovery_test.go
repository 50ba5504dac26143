package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/runner"
)

// makeTree creates each file under dir with placeholder content.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# x\n"), 0o644))
	}
}

func abs(dir string, files ...string) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = filepath.Join(dir, f)
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "readme.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{filepath.Join(dir, "readme.md")},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "readme.md"), files)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"readme.md",
		"docs/guide.md",
		"docs/api.markdown",
		"site/index.html",
		"site/old.HTM",
		"src/main.go",
		"notes.txt",
	)

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir,
		"docs/api.markdown",
		"docs/guide.md",
		"readme.md",
		"site/index.html",
		"site/old.HTM",
	), files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md", "b.html", "c.mdx")

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".mdx", ".md"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.md", "c.mdx"), files)
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"readme.md",
		"CHANGELOG.md",
		"vendor/lib/readme.md",
		"docs/draft.md",
		"docs/deep/draft.md",
		"docs/guide.md",
	)

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{
			name:     "base name",
			patterns: []string{"CHANGELOG.md"},
			want:     []string{"docs/deep/draft.md", "docs/draft.md", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "directory subtree",
			patterns: []string{"vendor/**"},
			want:     []string{"CHANGELOG.md", "docs/deep/draft.md", "docs/draft.md", "docs/guide.md", "readme.md"},
		},
		{
			name:     "single star stays in one directory",
			patterns: []string{"docs/*.md"},
			want:     []string{"CHANGELOG.md", "docs/deep/draft.md", "readme.md", "vendor/lib/readme.md"},
		},
		{
			name:     "double star crosses directories",
			patterns: []string{"docs/**/draft.md", "draft.md"},
			want:     []string{"CHANGELOG.md", "docs/guide.md", "readme.md", "vendor/lib/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.patterns,
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob")
}

func TestDiscover_HiddenFilesAndDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "visible.md", ".hidden.md", ".git/readme.md", "docs/.cache/page.html")

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "visible.md"), files)
}

func TestDiscover_Deduplication(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "docs/a.md")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"docs", "docs/a.md", "."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "docs/a.md"), files)
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.md")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	makeTree(t, dir, "a.md")
	makeTree(t, outside, "linked.md")
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "a.md"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, filepath.Join(dir, "a.md"))
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown", ".html", ".htm"}, runner.DefaultExtensions())
}
