package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

func mkfile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func names(entries []types.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestListSortOrder(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, "b.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o755))

	entries, err := List(dir, Options{})
	require.NoError(t, err)

	// Directories come before files regardless of name.
	assert.Equal(t, []string{"a", "c", "b.txt"}, names(entries))
}

func TestListSymlinksBetweenDirsAndFiles(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, "aaa.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zzz"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(dir, "aaa.txt"), filepath.Join(dir, "mmm")))

	entries, err := List(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"zzz", "mmm", "aaa.txt"}, names(entries))
}

func TestListIdempotent(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, "one", "1")
	mkfile(t, dir, "two", "2")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	first, err := List(dir, Options{})
	require.NoError(t, err)
	second, err := List(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListHiddenFilter(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, "visible", "x")
	mkfile(t, dir, ".hidden", "x")

	entries, err := List(dir, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible"}, names(entries))

	entries, err = List(dir, Options{ShowHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", "visible"}, names(entries))
}

func TestListPattern(t *testing.T) {
	dir := t.TempDir()
	mkfile(t, dir, "report.txt", "x")
	mkfile(t, dir, "report.md", "x")
	mkfile(t, dir, "notes.txt", "x")

	entries, err := List(dir, Options{Pattern: "report"})
	require.NoError(t, err)
	assert.Equal(t, []string{"report.md", "report.txt"}, names(entries))

	entries, err = List(dir, Options{Pattern: "*.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes.txt", "report.txt"}, names(entries))
}

func TestListRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mkfile(t, dir, "top.txt", "x")
	mkfile(t, sub, "deep.txt", "x")

	entries, err := List(dir, Options{Recursive: true})
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	byName := map[string]types.Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	assert.Equal(t, 0, byName["top.txt"].Depth)
	assert.Equal(t, 1, byName["deep.txt"].Depth)
}

func TestListRecursiveMaxDepth(t *testing.T) {
	dir := t.TempDir()
	lvl1 := filepath.Join(dir, "l1")
	lvl2 := filepath.Join(lvl1, "l2")
	require.NoError(t, os.MkdirAll(lvl2, 0o755))
	mkfile(t, lvl2, "deep.txt", "x")

	entries, err := List(dir, Options{Recursive: true, MaxDepth: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"l1", "l2"}, names(entries))
}

func TestListDoesNotDescendSymlinkedDirs(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	require.NoError(t, os.Mkdir(real, 0o755))
	mkfile(t, real, "inner.txt", "x")
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "alias")))

	entries, err := List(dir, Options{Recursive: true, FollowSymlinks: true})
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, filepath.Join(dir, "alias", "inner.txt"), e.Path)
	}
}

func TestListNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := mkfile(t, dir, "plain", "x")

	_, err := List(file, Options{})
	require.Error(t, err)
	assert.Equal(t, fserr.NotADirectory, fserr.KindOf(err))
}

func TestListMissing(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "missing"), Options{})
	require.Error(t, err)
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))
}

func TestListEmptyDirectory(t *testing.T) {
	entries, err := List(t.TempDir(), Options{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMatchName(t *testing.T) {
	assert.True(t, MatchName("anything", ""))
	assert.True(t, MatchName("report.txt", "port"))
	assert.False(t, MatchName("report.txt", "xyz"))
	assert.True(t, MatchName("report.txt", "*.txt"))
	assert.False(t, MatchName("report.md", "*.txt"))
	assert.True(t, MatchName("a1", "a?"))
}

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mkfile(t, dir, "a.txt", "12345")
	mkfile(t, sub, "b.txt", "12")

	entries, err := Walk(context.Background(), dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Path)
	assert.Equal(t, "sub", entries[1].Path)
	assert.Equal(t, filepath.Join("sub", "b.txt"), entries[2].Path)
}

func TestWalkMaxDepth(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mkfile(t, sub, "deep.txt", "x")

	entries, err := Walk(context.Background(), dir, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sub", entries[0].Path)
}

func TestTotalSize(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mkfile(t, dir, "a", "12345")
	mkfile(t, sub, "b", "1234567890")

	bytes, files, err := TotalSize(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, int64(15), bytes)
	assert.Equal(t, 2, files)
}
