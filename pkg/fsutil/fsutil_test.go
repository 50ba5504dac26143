package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/fsutil"
)

func TestReadInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# hi\n"), 0o600))

	t.Run("file", func(t *testing.T) {
		t.Parallel()
		content, info, err := fsutil.ReadInput(ctx, path, nil, 0)
		require.NoError(t, err)
		assert.Equal(t, "# hi\n", string(content))
		require.NotNil(t, info)
		assert.Equal(t, int64(5), info.Size)
		assert.Equal(t, os.FileMode(0o600), info.Mode.Perm())
	})

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		content, info, err := fsutil.ReadInput(ctx, fsutil.StdioPath, strings.NewReader("abc"), 0)
		require.NoError(t, err)
		assert.Equal(t, "abc", string(content))
		assert.Nil(t, info)
	})

	t.Run("stdin over limit", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadInput(ctx, fsutil.StdioPath, strings.NewReader("abcdef"), 3)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("file over limit", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadInput(ctx, path, nil, 2)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadInput(ctx, filepath.Join(dir, "nope.md"), nil, 0)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadInput(ctx, dir, nil, 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, _, err := fsutil.ReadInput(cctx, path, nil, 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSnapshotAndCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	missing, err := fsutil.Snapshot(ctx, path)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	info, err := fsutil.Snapshot(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, info)

	modified, err := fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.False(t, modified)

	// Same size, same mod time, different content: only the hash notices.
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))
	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)

	require.NoError(t, os.Remove(path))
	modified, err = fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)

	_, err = fsutil.CheckModified(ctx, nil)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestCheckModified_SizeChange(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	info, err := fsutil.Snapshot(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("{\"a\":1}"), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

	modified, err := fsutil.CheckModified(ctx, info)
	require.NoError(t, err)
	assert.True(t, modified)
}
