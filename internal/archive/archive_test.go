package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navfs/navigator/internal/fserr"
)

func buildSource(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	sub := filepath.Join(src, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), []byte("beta"), 0o644))
	return src
}

func TestZipRoundtrip(t *testing.T) {
	src := buildSource(t)
	out := filepath.Join(t.TempDir(), "out.zip")

	sum, err := CreateZip(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
	assert.Equal(t, int64(9), sum.TotalSize)

	dest := filepath.Join(t.TempDir(), "restored")
	sum, err = ExtractZip(context.Background(), out, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)

	data, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))

	data, err = os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))
}

func TestTarGzRoundtrip(t *testing.T) {
	src := buildSource(t)
	out := filepath.Join(t.TempDir(), "out.tar.gz")

	sum, err := CreateTarGz(context.Background(), src, out)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)

	dest := filepath.Join(t.TempDir(), "restored")
	sum, err = ExtractTarGz(context.Background(), out, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)

	data, err := os.ReadFile(filepath.Join(dest, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "beta", string(data))
}

func TestCreateZipRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := CreateZip(context.Background(), file, filepath.Join(dir, "out.zip"))
	assert.Equal(t, fserr.NotADirectory, fserr.KindOf(err))
}

func TestExtractZipSkipsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	evil := filepath.Join(dir, "evil.zip")

	f, err := os.Create(evil)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../escape.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("bad"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dest := filepath.Join(dir, "dest")
	sum, err := ExtractZip(context.Background(), evil, dest)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Files)

	_, statErr := os.Lstat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractByExtension(t *testing.T) {
	src := buildSource(t)
	out := filepath.Join(t.TempDir(), "auto.zip")
	_, err := CreateZip(context.Background(), src, out)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "dest")
	sum, err := Extract(context.Background(), out, dest)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Files)
}

func TestExtractUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blob.rar")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := Extract(context.Background(), file, filepath.Join(dir, "dest"))
	assert.Equal(t, fserr.InvalidArgument, fserr.KindOf(err))
}
