package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ustree/pkg/fsutil"
)

func TestWriteOutput_Stdout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	result, err := fsutil.WriteOutput(context.Background(), fsutil.StdioPath, &buf, []byte("tree"), fsutil.OutputOptions{})
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.Equal(t, "tree", buf.String())

	buf.Reset()
	_, err = fsutil.WriteOutput(context.Background(), "", &buf, []byte("again"), fsutil.OutputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "again", buf.String())
}

func TestWriteOutput_File(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.json")

	result, err := fsutil.WriteOutput(ctx, path, nil, []byte("v1"), fsutil.OutputOptions{Backup: true})
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.False(t, result.BackedUp, "nothing to back up yet")
	assert.False(t, fsutil.BackupExists(path))

	result, err = fsutil.WriteOutput(ctx, path, nil, []byte("v2"), fsutil.OutputOptions{Backup: true})
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.True(t, result.BackedUp)

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, "v1", string(backup))

	result, err = fsutil.WriteOutput(ctx, path, nil, []byte("v2"), fsutil.OutputOptions{})
	require.NoError(t, err)
	assert.False(t, result.Written)
}

func TestWriteOutput_RefusesModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0o644))

	snapshot, err := fsutil.Snapshot(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("someone else"), 0o644))

	_, err = fsutil.WriteOutput(ctx, path, nil, []byte("ours"), fsutil.OutputOptions{Snapshot: snapshot})
	require.ErrorIs(t, err, fsutil.ErrModified)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "someone else", string(got))
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/out/tree.json.ustree.bak", fsutil.BackupPath("/out/tree.json"))

	created, err := fsutil.CreateBackup(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.False(t, created)
}

func TestWriteOutput_DryRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o644))

	result, err := fsutil.WriteOutput(ctx, path, nil, []byte("a\nB\nc\n"), fsutil.OutputOptions{DryRun: true, Backup: true})
	require.NoError(t, err)
	assert.False(t, result.Written)
	assert.False(t, result.BackedUp)
	assert.Contains(t, result.Diff, "-b\n")
	assert.Contains(t, result.Diff, "+B\n")
	assert.Contains(t, result.Diff, "@@ -1,3 +1,3 @@")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\n", string(content))
	assert.False(t, fsutil.BackupExists(path))
}

func TestDiff(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	missing := filepath.Join(dir, "new.json")
	diff, err := fsutil.Diff(ctx, missing, []byte("x\n"))
	require.NoError(t, err)
	assert.Contains(t, diff, "+x\n")

	same := filepath.Join(dir, "same.json")
	require.NoError(t, os.WriteFile(same, []byte("x\n"), 0o644))
	diff, err = fsutil.Diff(ctx, same, []byte("x\n"))
	require.NoError(t, err)
	assert.Empty(t, diff)
}
