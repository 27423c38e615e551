// Package enumerate lists directory contents with metadata. Listing is
// best-effort: entries that fail to stat are skipped, never surfaced as
// partial errors.
package enumerate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/metadata"
	"github.com/navfs/navigator/internal/types"
)

// Options controls a List call.
type Options struct {
	Recursive      bool
	ShowHidden     bool
	Pattern        string // substring match, or glob when it contains meta characters
	MaxDepth       int    // 0 = unlimited
	FollowSymlinks bool
}

// List enumerates the children of dir. The returned slice is sorted
// directories first, then symlinks, then files, lexicographic within each
// group. Symlinked directories are never descended into.
func List(dir string, opts Options) ([]types.Entry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fserr.FromOS("cannot list "+dir, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "not a directory: %s", dir)
	}

	entries := []types.Entry{}
	collect(dir, 0, opts, &entries)

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Type != entries[j].Type {
			return typeRank(entries[i].Type) < typeRank(entries[j].Type)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

func collect(dir string, depth int, opts Options, out *[]types.Entry) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		// Inaccessible subdirectories do not blank out the listing.
		return
	}

	for _, d := range dirents {
		name := d.Name()
		if name == "." || name == ".." {
			continue
		}
		// Hidden filter applies before the pattern filter.
		hidden := strings.HasPrefix(name, ".")
		if hidden && !opts.ShowHidden {
			continue
		}
		if !MatchName(name, opts.Pattern) {
			continue
		}

		full := filepath.Join(dir, name)
		entry, err := metadata.Stat(full, opts.FollowSymlinks)
		if err != nil {
			continue // permission denied or race-deleted
		}
		entry.Depth = depth
		*out = append(*out, *entry)

		// Symlinks are never descended into, even when followed for stat,
		// to avoid cycles.
		if opts.Recursive && entry.Type == types.TypeDirectory && d.Type()&os.ModeSymlink == 0 {
			if opts.MaxDepth > 0 && depth+1 > opts.MaxDepth {
				continue
			}
			collect(full, depth+1, opts, out)
		}
	}
}

func typeRank(t string) int {
	switch t {
	case types.TypeDirectory:
		return 0
	case types.TypeSymlink:
		return 1
	default:
		return 2
	}
}

// MatchName matches a pattern against an entry name. An empty pattern
// matches everything; a pattern containing glob metacharacters is matched
// as a glob, anything else as a substring.
func MatchName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if strings.ContainsAny(pattern, "*?[{") {
		ok, err := doublestar.Match(pattern, name)
		return err == nil && ok
	}
	return strings.Contains(name, pattern)
}
