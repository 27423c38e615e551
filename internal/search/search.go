// Package search finds entries by name pattern, breadth-first from a root
// directory so that shallow matches surface before deep ones.
package search

import (
	"context"
	"os"

	"github.com/navfs/navigator/internal/enumerate"
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

// DefaultLimit caps result counts when the caller does not set one.
const DefaultLimit = 1000

// Options controls a search.
type Options struct {
	Pattern  string
	MaxDepth int // 0 means unlimited
	Limit    int // 0 means DefaultLimit
}

// Run walks the tree under root breadth-first and returns entries whose
// names match the pattern. Hidden entries are always considered.
// Unreadable directories are skipped.
func Run(ctx context.Context, root string, opts Options) ([]types.Entry, error) {
	if opts.Pattern == "" {
		return nil, fserr.New(fserr.InvalidArgument, "search pattern required")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fserr.FromOS("search "+root, err)
	}
	if !info.IsDir() {
		return nil, fserr.Newf(fserr.NotADirectory, "%s is not a directory", root)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	type level struct {
		dir   string
		depth int
	}
	queue := []level{{dir: root, depth: 1}}
	matches := []types.Entry{}

	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			return nil, fserr.Wrap(fserr.IOFailure, "search canceled", ctx.Err())
		default:
		}

		cur := queue[0]
		queue = queue[1:]

		entries, err := enumerate.List(cur.dir, enumerate.Options{ShowHidden: true})
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if enumerate.MatchName(entry.Name, opts.Pattern) {
				entry.Depth = cur.depth
				matches = append(matches, entry)
				if len(matches) >= limit {
					return matches, nil
				}
			}
			if entry.Type == types.TypeDirectory && (opts.MaxDepth == 0 || cur.depth < opts.MaxDepth) {
				queue = append(queue, level{dir: entry.Path, depth: cur.depth + 1})
			}
		}
	}
	return matches, nil
}
