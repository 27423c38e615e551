// Package paths provides pure path algebra: joining, normalizing and
// resolving inputs against a base directory. Nothing here touches the
// filesystem except Canonicalize.
package paths

import (
	"path/filepath"
	"strings"

	"github.com/navfs/navigator/internal/fserr"
)

// Resolve turns input into an absolute path relative to base. Empty input
// returns base; absolute input is cleaned and returned as-is; "." and ".."
// resolve against base. ".." at the filesystem root resolves to the root.
func Resolve(base, input string) string {
	if input == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Clean(filepath.Join(base, input))
}

// Canonicalize resolves path to an absolute, symlink-free form. It fails
// with a NotFound error when any component does not exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fserr.Wrap(fserr.InvalidArgument, "cannot absolutize "+path, err)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fserr.FromOS("cannot canonicalize "+path, err)
	}
	return real, nil
}

// Normalize cleans a path and converts separators to the platform form.
func Normalize(path string) string {
	return filepath.Clean(filepath.FromSlash(path))
}

// Parent returns the parent directory of path. The root is its own parent.
func Parent(path string) string {
	return filepath.Dir(filepath.Clean(path))
}

// Extension returns the file extension without the leading dot, or "".
// A leading dot alone (dotfile) is not an extension.
func Extension(name string) string {
	base := filepath.Base(name)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 {
		return ""
	}
	return base[idx+1:]
}

// IsHidden reports whether the leaf component starts with a dot. This is
// the one hidden-file rule used on every platform.
func IsHidden(name string) bool {
	base := filepath.Base(name)
	return len(base) > 0 && base[0] == '.' && base != "." && base != ".."
}
