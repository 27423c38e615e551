// Package mutate implements the state-changing filesystem operations:
// creation, deletion, copy, move, rename, links and permission changes.
package mutate

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/navfs/navigator/internal/fserr"
)

// copyBufSize bounds per-file copy memory.
const copyBufSize = 128 * 1024

// CopyOptions controls Copy behavior.
type CopyOptions struct {
	Overwrite     bool
	Recursive     bool
	PreserveTimes bool
	PreservePerms bool
	PreserveOwner bool
}

// CreateDirectory creates a directory at path. With recursive set, missing
// parents are created as well; an existing leaf is still an error.
func CreateDirectory(path string, recursive bool) error {
	if recursive {
		if _, err := os.Lstat(path); err == nil {
			return fserr.Newf(fserr.AlreadyExists, "%s already exists", path)
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fserr.FromOS("mkdir "+path, err)
		}
		return nil
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		return fserr.FromOS("mkdir "+path, err)
	}
	return nil
}

// CreateFile creates a regular file at path with the given content,
// creating missing parent directories. An existing file is truncated
// and rewritten.
func CreateFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fserr.FromOS("create "+path, err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fserr.FromOS("create "+path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fserr.Wrap(fserr.IOFailure, "write "+path, err)
	}
	if err := f.Close(); err != nil {
		return fserr.Wrap(fserr.IOFailure, "close "+path, err)
	}
	return nil
}

// Delete removes the entry at path. Directories require recursive; a
// non-recursive delete of a non-empty directory fails with NotEmpty.
func Delete(path string, recursive bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return fserr.FromOS("delete "+path, err)
	}

	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return fserr.FromOS("delete "+path, err)
		}
		return nil
	}

	if !recursive {
		if err := os.Remove(path); err != nil {
			if isNotEmpty(err) {
				return fserr.Newf(fserr.NotEmpty, "%s is not empty", path)
			}
			return fserr.FromOS("delete "+path, err)
		}
		return nil
	}
	return deleteTree(path)
}

// deleteTree removes a directory and its contents, children before parent.
func deleteTree(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fserr.FromOS("read "+dir, err)
	}
	for _, entry := range entries {
		child := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := deleteTree(child); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(child); err != nil {
			return fserr.FromOS("delete "+child, err)
		}
	}
	if err := os.Remove(dir); err != nil {
		return fserr.FromOS("delete "+dir, err)
	}
	return nil
}

// Copy copies src to dst. Symlinks are recreated as symlinks pointing at
// the original target. Directories require opts.Recursive. On a failed
// file data copy the partial destination is removed.
func Copy(ctx context.Context, src, dst string, opts CopyOptions) error {
	select {
	case <-ctx.Done():
		return fserr.Wrap(fserr.IOFailure, "copy canceled", ctx.Err())
	default:
	}

	info, err := os.Lstat(src)
	if err != nil {
		return fserr.FromOS("copy "+src, err)
	}

	if _, err := os.Lstat(dst); err == nil && !opts.Overwrite {
		return fserr.Newf(fserr.AlreadyExists, "%s already exists", dst)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst)
	case info.IsDir():
		if !opts.Recursive {
			return fserr.Newf(fserr.InvalidArgument, "%s is a directory (recursive copy not requested)", src)
		}
		return copyDir(ctx, src, dst, info, opts)
	default:
		return copyFile(src, dst, info, opts)
	}
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return fserr.FromOS("readlink "+src, err)
	}
	os.Remove(dst)
	if err := os.Symlink(target, dst); err != nil {
		return fserr.FromOS("symlink "+dst, err)
	}
	return nil
}

func copyFile(src, dst string, info os.FileInfo, opts CopyOptions) error {
	in, err := os.Open(src)
	if err != nil {
		return fserr.FromOS("open "+src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fserr.FromOS("create "+dst, err)
	}

	buf := make([]byte, copyBufSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		os.Remove(dst)
		return fserr.Wrap(fserr.IOFailure, "copy "+src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return fserr.Wrap(fserr.IOFailure, "close "+dst, err)
	}
	applyAttributes(dst, info, opts)
	return nil
}

func copyDir(ctx context.Context, src, dst string, info os.FileInfo, opts CopyOptions) error {
	if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
		return fserr.FromOS("mkdir "+dst, err)
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return fserr.FromOS("read "+src, err)
	}
	for _, entry := range entries {
		childOpts := opts
		childOpts.Overwrite = true
		if err := Copy(ctx, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()), childOpts); err != nil {
			return err
		}
	}
	applyAttributes(dst, info, opts)
	return nil
}

// applyAttributes carries over times, mode and ownership where requested.
// Failures are non-fatal: the data copy already succeeded.
func applyAttributes(dst string, info os.FileInfo, opts CopyOptions) {
	if opts.PreserveTimes {
		os.Chtimes(dst, info.ModTime(), info.ModTime())
	}
	if opts.PreservePerms {
		os.Chmod(dst, info.Mode().Perm())
	}
	if opts.PreserveOwner {
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			os.Chown(dst, int(st.Uid), int(st.Gid))
		}
	}
}

// Move moves src to dst. Cross-device moves fall back to copy plus delete.
func Move(ctx context.Context, src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return fserr.FromOS("move "+src, err)
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return fserr.FromOS("move "+src, err)
	}

	opts := CopyOptions{Overwrite: true, Recursive: true, PreserveTimes: true, PreservePerms: true}
	if err := Copy(ctx, src, dst, opts); err != nil {
		return err
	}
	return Delete(src, true)
}

// Rename changes the name of the entry at path. A bare name resolves
// within the entry's directory; an absolute newName is used as-is. An
// existing destination is replaced, matching rename(2). It returns the
// resulting path.
func Rename(path, newName string) (string, error) {
	newPath := newName
	if !filepath.IsAbs(newName) {
		newPath = filepath.Join(filepath.Dir(path), newName)
	}
	if err := os.Rename(path, newPath); err != nil {
		return "", fserr.FromOS("rename "+path, err)
	}
	return newPath, nil
}

// Chmod sets the permission bits of path. mode is octal text, e.g. "755".
func Chmod(path, mode string) (os.FileMode, error) {
	bits, err := strconv.ParseUint(mode, 8, 32)
	if err != nil || bits > 0o7777 {
		return 0, fserr.Newf(fserr.InvalidArgument, "invalid mode %q", mode)
	}
	fm := os.FileMode(bits)
	if err := os.Chmod(path, fm); err != nil {
		return 0, fserr.FromOS("chmod "+path, err)
	}
	return fm, nil
}

// Symlink creates a symbolic link at link pointing to target. The target
// is not required to exist.
func Symlink(target, link string) error {
	if err := os.Symlink(target, link); err != nil {
		return fserr.FromOS("symlink "+link, err)
	}
	return nil
}

// Readlink returns the target of the symlink at path.
func Readlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fserr.FromOS("readlink "+path, err)
	}
	return target, nil
}

func isNotEmpty(err error) bool {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ENOTEMPTY || errno == syscall.EEXIST
	}
	return false
}

func isCrossDevice(err error) bool {
	var errno syscall.Errno
	return errors.As(err, &errno) && errno == syscall.EXDEV
}
