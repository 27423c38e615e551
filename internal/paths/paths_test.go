package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navfs/navigator/internal/fserr"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		input string
		want  string
	}{
		{"empty input returns base", "/home/user", "", "/home/user"},
		{"absolute input wins", "/home/user", "/etc", "/etc"},
		{"relative joins base", "/home/user", "docs", "/home/user/docs"},
		{"dot resolves to base", "/home/user", ".", "/home/user"},
		{"dotdot resolves to parent", "/home/user", "..", "/home"},
		{"dotdot at root stays at root", "/", "..", "/"},
		{"nested dotdot", "/home/user", "../other/./x", "/home/other/x"},
		{"trailing slash cleaned", "/home/user", "docs/", "/home/user/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.base, tt.input))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	dir := t.TempDir()
	real, err := Canonicalize(dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(real))

	sub := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(sub, 0o755))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(sub, link))

	got, err := Canonicalize(link)
	require.NoError(t, err)
	want, err := Canonicalize(sub)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCanonicalizeMissing(t *testing.T) {
	_, err := Canonicalize(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, fserr.NotFound, fserr.KindOf(err))
}

func TestParent(t *testing.T) {
	assert.Equal(t, "/home", Parent("/home/user"))
	assert.Equal(t, "/", Parent("/home"))
	assert.Equal(t, "/", Parent("/"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "txt", Extension("notes.txt"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
	assert.Equal(t, "", Extension("Makefile"))
	assert.Equal(t, "", Extension(".bashrc"))
	assert.Equal(t, "txt", Extension("/a/b/c.txt"))
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".bashrc"))
	assert.True(t, IsHidden("/home/user/.config"))
	assert.False(t, IsHidden("visible"))
	assert.False(t, IsHidden("."))
	assert.False(t, IsHidden(".."))
}
