// Package metadata extracts structured Entry records from filesystem nodes.
// Extraction defaults to lstat so broken symlinks are still reportable.
package metadata

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/gabriel-vasile/mimetype"
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/paths"
	"github.com/navfs/navigator/internal/types"
)

// Stat produces an Entry for path. With followLinks false (the default
// query form) symlinks are reported as symlinks with their target attached;
// with followLinks true the link is dereferenced first.
func Stat(path string, followLinks bool) (*types.Entry, error) {
	var info os.FileInfo
	var err error
	if followLinks {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}
	if err != nil {
		return nil, fserr.FromOS("cannot stat "+path, err)
	}
	return fromInfo(path, info), nil
}

// fromInfo builds the Entry from an already-obtained FileInfo.
func fromInfo(path string, info os.FileInfo) *types.Entry {
	name := filepath.Base(path)
	mode := info.Mode()

	e := &types.Entry{
		Name:        name,
		Path:        filepath.Clean(path),
		Modified:    info.ModTime(),
		IsHidden:    paths.IsHidden(name),
		IsReadOnly:  mode.Perm()&0o200 == 0,
		Mode:        uint32(mode.Perm()),
		Permissions: PermString(mode),
	}

	switch {
	case mode&os.ModeSymlink != 0:
		e.Type = types.TypeSymlink
		// Directories and symlinks always report size 0.
		if target, err := os.Readlink(path); err == nil {
			e.SymlinkTarget = target
		}
	case mode.IsDir():
		e.Type = types.TypeDirectory
	default:
		e.Type = types.TypeFile
		e.Size = info.Size()
		e.Extension = paths.Extension(name)
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		e.Owner = ownerName(st.Uid)
		e.Group = groupName(st.Gid)
		e.Created = changeTime(st)
	}

	return e
}

// PermString renders the 10-character symbolic permission string:
// type marker plus rwx triplets with setuid/setgid/sticky overlaid.
func PermString(mode os.FileMode) string {
	buf := []byte("----------")

	switch {
	case mode.IsDir():
		buf[0] = 'd'
	case mode&os.ModeSymlink != 0:
		buf[0] = 'l'
	case mode&os.ModeNamedPipe != 0:
		buf[0] = 'p'
	case mode&os.ModeSocket != 0:
		buf[0] = 's'
	case mode&os.ModeCharDevice != 0:
		buf[0] = 'c'
	case mode&os.ModeDevice != 0:
		buf[0] = 'b'
	}

	perm := mode.Perm()
	rwx := "rwxrwxrwx"
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			buf[i+1] = rwx[i]
		}
	}

	if mode&os.ModeSetuid != 0 {
		buf[3] = overlay(buf[3], 's', 'S')
	}
	if mode&os.ModeSetgid != 0 {
		buf[6] = overlay(buf[6], 's', 'S')
	}
	if mode&os.ModeSticky != 0 {
		buf[9] = overlay(buf[9], 't', 'T')
	}

	return string(buf)
}

func overlay(cur byte, exec, noexec byte) byte {
	if cur == 'x' {
		return exec
	}
	return noexec
}

// ownerName resolves a uid to a name, falling back to the numeric ID when
// the lookup fails (unknown IDs must not fail the whole stat).
func ownerName(uid uint32) string {
	if u, err := user.LookupId(strconv.FormatUint(uint64(uid), 10)); err == nil {
		return u.Username
	}
	return strconv.FormatUint(uint64(uid), 10)
}

func groupName(gid uint32) string {
	if g, err := user.LookupGroupId(strconv.FormatUint(uint64(gid), 10)); err == nil {
		return g.Name
	}
	return strconv.FormatUint(uint64(gid), 10)
}

// DetectMIME detects the MIME type of a file by content.
func DetectMIME(path string) (mime string, extension string, err error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", "", fserr.FromOS("cannot detect type of "+path, err)
	}
	return mtype.String(), mtype.Extension(), nil
}

// FormatBytes renders a byte count in human-readable form.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
