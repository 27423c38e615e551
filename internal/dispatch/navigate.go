package dispatch

import (
	"context"
	"os"

	"github.com/navfs/navigator/internal/diskstats"
	"github.com/navfs/navigator/internal/enumerate"
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/metadata"
	"github.com/navfs/navigator/internal/paths"
	"github.com/navfs/navigator/internal/search"
	"github.com/navfs/navigator/internal/types"
)

// cmdList enumerates a directory. Flags: -r recursive, -a show hidden.
func (s *Session) cmdList(args []string) *types.Result {
	positional, flags := splitArgs(args)

	dir := s.current
	if len(positional) > 0 {
		dir = s.resolve(positional[0])
	}
	pattern := ""
	if len(positional) > 1 {
		pattern = positional[1]
	}

	entries, err := enumerate.List(dir, enumerate.Options{
		Recursive:  flags["r"],
		ShowHidden: flags["a"],
		Pattern:    pattern,
	})
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"path":    dir,
		"entries": entries,
		"count":   len(entries),
	})
}

// cmdCd changes the current directory. The session state moves only after
// the target is confirmed to be an existing directory.
func (s *Session) cmdCd(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "cd: path required"))
	}

	target, err := paths.Canonicalize(s.resolve(positional[0]))
	if err != nil {
		return fail(err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fail(fserr.FromOS("cd "+target, err))
	}
	if !info.IsDir() {
		return fail(fserr.Newf(fserr.NotADirectory, "%s is not a directory", target))
	}

	s.visit(target)
	return types.Success(map[string]interface{}{"path": target})
}

func (s *Session) cmdPwd() *types.Result {
	return types.Success(map[string]interface{}{"path": s.current})
}

func (s *Session) cmdBack() *types.Result {
	if !s.back() {
		return fail(fserr.New(fserr.InvalidArgument, "no earlier directory in history"))
	}
	return types.Success(map[string]interface{}{"path": s.current})
}

func (s *Session) cmdForward() *types.Result {
	if !s.forward() {
		return fail(fserr.New(fserr.InvalidArgument, "no later directory in history"))
	}
	return types.Success(map[string]interface{}{"path": s.current})
}

// cmdUp moves to the parent directory.
func (s *Session) cmdUp() *types.Result {
	parent := paths.Parent(s.current)
	if parent == s.current {
		return types.Success(map[string]interface{}{"path": s.current})
	}
	if _, err := os.Stat(parent); err != nil {
		return fail(fserr.FromOS("up "+parent, err))
	}
	s.visit(parent)
	return types.Success(map[string]interface{}{"path": parent})
}

func (s *Session) cmdHistory() *types.Result {
	visited := make([]string, len(s.history))
	copy(visited, s.history)
	return types.Success(map[string]interface{}{
		"history":  visited,
		"position": s.histIdx,
	})
}

// cmdInfo returns metadata for one entry, or a summary of the current
// directory when called without arguments.
func (s *Session) cmdInfo(args []string) *types.Result {
	positional, flags := splitArgs(args)

	if len(positional) == 0 {
		entries, err := enumerate.List(s.current, enumerate.Options{ShowHidden: true})
		if err != nil {
			return fail(err)
		}
		data := map[string]interface{}{
			"path":      s.current,
			"itemCount": len(entries),
		}
		if stats, err := diskstats.Query(s.current); err == nil {
			data["disk"] = stats
		}
		return types.Success(data)
	}

	target := s.resolve(positional[0])
	entry, err := metadata.Stat(target, flags["L"])
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{"entry": entry})
}

// cmdSearch finds entries by name. Flags: -r recursive. Optional trailing
// path overrides the start directory.
func (s *Session) cmdSearch(ctx context.Context, args []string) *types.Result {
	positional, flags := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "search: pattern required"))
	}
	pattern := positional[0]

	start := s.current
	if len(positional) > 1 {
		start = s.resolve(positional[1])
	}

	opts := search.Options{Pattern: pattern}
	if !flags["r"] {
		opts.MaxDepth = 1
	}
	matches, err := search.Run(ctx, start, opts)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"pattern": pattern,
		"start":   start,
		"matches": matches,
		"count":   len(matches),
	})
}

func (s *Session) cmdDiskinfo(args []string) *types.Result {
	positional, _ := splitArgs(args)
	path := s.current
	if len(positional) > 0 {
		path = s.resolve(positional[0])
	}
	stats, err := diskstats.Query(path)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{"disk": stats})
}

// cmdDu sums regular file sizes under a directory.
func (s *Session) cmdDu(ctx context.Context, args []string) *types.Result {
	positional, _ := splitArgs(args)
	path := s.current
	if len(positional) > 0 {
		path = s.resolve(positional[0])
	}
	bytes, files, err := enumerate.TotalSize(ctx, path)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"path":       path,
		"totalBytes": bytes,
		"totalHuman": metadata.FormatBytes(bytes),
		"files":      files,
	})
}

func (s *Session) cmdMime(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "mime: path required"))
	}
	path := s.resolve(positional[0])
	mime, ext, err := metadata.DetectMIME(path)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"path":      path,
		"mimeType":  mime,
		"extension": ext,
	})
}
