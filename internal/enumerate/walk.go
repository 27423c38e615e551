package enumerate

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/navfs/navigator/internal/fserr"
)

// WalkEntry is the lightweight record returned by Walk.
type WalkEntry struct {
	Path     string `json:"path"` // relative to the walk root
	IsDir    bool   `json:"isDir"`
	Size     int64  `json:"size"`
	Modified int64  `json:"modified"`
}

// Walk traverses root recursively and returns a flat listing. maxDepth 0
// means unlimited. Unreadable entries are skipped.
func Walk(ctx context.Context, root string, maxDepth int) ([]WalkEntry, error) {
	entries := []WalkEntry{}
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || path == root {
			return nil
		}

		rel, _ := filepath.Rel(root, path)
		depth := len(strings.Split(rel, string(os.PathSeparator)))
		if maxDepth > 0 && depth > maxDepth {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		entries = append(entries, WalkEntry{
			Path:     rel,
			IsDir:    d.IsDir(),
			Size:     info.Size(),
			Modified: info.ModTime().Unix(),
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fserr.Wrap(fserr.IOFailure, "walk failed for "+root, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// TotalSize sums the sizes of all regular files under root.
func TotalSize(ctx context.Context, root string) (bytes int64, files int, err error) {
	var mu sync.Mutex
	conf := fastwalk.Config{Follow: false}

	werr := fastwalk.Walk(&conf, root, func(path string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err != nil || d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		mu.Lock()
		bytes += info.Size()
		files++
		mu.Unlock()
		return nil
	})
	if werr != nil {
		return 0, 0, fserr.Wrap(fserr.IOFailure, "size calculation failed for "+root, werr)
	}
	return bytes, files, nil
}
