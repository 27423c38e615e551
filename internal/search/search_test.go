package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navfs/navigator/internal/fserr"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	deep := filepath.Join(root, "docs", "archive")
	require.NoError(t, os.MkdirAll(deep, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "report.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "report.md"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(deep, "report.old"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".report.hidden"), []byte("x"), 0o644))
	return root
}

func TestRunRecursive(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: "report"})
	require.NoError(t, err)
	assert.Len(t, matches, 4)

	// Breadth-first: shallow matches come before deep ones.
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i].Depth, matches[i-1].Depth)
	}
}

func TestRunDepthLimited(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: "report", MaxDepth: 1})
	require.NoError(t, err)
	assert.Len(t, matches, 2) // report.txt and .report.hidden only
}

func TestRunHiddenIncluded(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: ".report.hidden"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRunGlob(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: "*.md"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "report.md", matches[0].Name)
}

func TestRunLimit(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: "report", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestRunNoMatches(t *testing.T) {
	root := buildTree(t)

	matches, err := Run(context.Background(), root, Options{Pattern: "nonexistent"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRunEmptyPattern(t *testing.T) {
	_, err := Run(context.Background(), t.TempDir(), Options{})
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
}

func TestRunNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Run(context.Background(), file, Options{Pattern: "x"})
	assert.Equal(t, fserr.NotADirectory, fserr.KindOf(err))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, buildTree(t), Options{Pattern: "report"})
	require.Error(t, err)
}
