package dispatch

import (
	"context"
	"strings"

	"github.com/navfs/navigator/internal/archive"
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/mutate"
	"github.com/navfs/navigator/internal/types"
)

// cmdMkdir creates a directory. Flag: -p create missing parents.
func (s *Session) cmdMkdir(args []string) *types.Result {
	positional, flags := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "mkdir: path required"))
	}
	path := s.resolve(positional[0])
	if err := mutate.CreateDirectory(path, flags["p"]); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{"created": true, "path": path})
}

// cmdMkfile creates a regular file, with any trailing arguments joined as
// its content.
func (s *Session) cmdMkfile(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "mkfile: path required"))
	}
	path := s.resolve(positional[0])
	content := strings.Join(positional[1:], " ")
	if err := mutate.CreateFile(path, []byte(content)); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"created": true,
		"path":    path,
		"size":    len(content),
	})
}

// cmdDelete removes an entry. Flag: -r recursive.
func (s *Session) cmdDelete(args []string) *types.Result {
	positional, flags := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "delete: path required"))
	}
	path := s.resolve(positional[0])
	if err := mutate.Delete(path, flags["r"]); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{"deleted": true, "path": path})
}

// copyOptions builds CopyOptions from command flags.
func copyOptions(flags map[string]bool) mutate.CopyOptions {
	return mutate.CopyOptions{
		Overwrite:     flags["overwrite"] || flags["f"],
		Recursive:     flags["r"],
		PreserveTimes: flags["p"],
		PreservePerms: flags["p"],
		PreserveOwner: flags["o"],
	}
}

// cmdCopy copies src to dst. Flags: -r recursive, -f overwrite,
// -p preserve times+perms, -o preserve ownership.
func (s *Session) cmdCopy(ctx context.Context, args []string) *types.Result {
	positional, flags := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "copy: source and destination required"))
	}
	src := s.resolve(positional[0])
	dst := s.resolve(positional[1])
	if err := mutate.Copy(ctx, src, dst, copyOptions(flags)); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"copied":      true,
		"source":      src,
		"destination": dst,
	})
}

func (s *Session) cmdMove(ctx context.Context, args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "move: source and destination required"))
	}
	src := s.resolve(positional[0])
	dst := s.resolve(positional[1])
	if err := mutate.Move(ctx, src, dst); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"moved":       true,
		"source":      src,
		"destination": dst,
	})
}

// cmdRename changes an entry's name; a bare name stays within the
// entry's directory.
func (s *Session) cmdRename(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "rename: path and new name required"))
	}
	path := s.resolve(positional[0])
	newPath, err := mutate.Rename(path, positional[1])
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"renamed": true,
		"oldPath": path,
		"newPath": newPath,
	})
}

func (s *Session) cmdChmod(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "chmod: mode and path required"))
	}
	path := s.resolve(positional[1])
	mode, err := mutate.Chmod(path, positional[0])
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"changed": true,
		"path":    path,
		"mode":    uint32(mode),
	})
}

func (s *Session) cmdSymlink(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "symlink: target and link required"))
	}
	target := positional[0]
	link := s.resolve(positional[1])
	if err := mutate.Symlink(target, link); err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"created": true,
		"target":  target,
		"link":    link,
	})
}

func (s *Session) cmdReadlink(args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 1 {
		return fail(fserr.New(fserr.InvalidArgument, "readlink: path required"))
	}
	path := s.resolve(positional[0])
	target, err := mutate.Readlink(path)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{"path": path, "target": target})
}

// cmdZip archives a directory. "zip <src> <dst>" picks zip or tar.gz from
// the destination extension.
func (s *Session) cmdZip(ctx context.Context, args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "zip: source and output required"))
	}
	src := s.resolve(positional[0])
	out := s.resolve(positional[1])

	var sum *archive.Summary
	var err error
	if strings.HasSuffix(out, ".tar.gz") || strings.HasSuffix(out, ".tgz") || strings.HasSuffix(out, ".tar") {
		sum, err = archive.CreateTarGz(ctx, src, out)
	} else {
		sum, err = archive.CreateZip(ctx, src, out)
	}
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"created":   true,
		"archive":   sum.Archive,
		"files":     sum.Files,
		"totalSize": sum.TotalSize,
	})
}

func (s *Session) cmdUnzip(ctx context.Context, args []string) *types.Result {
	positional, _ := splitArgs(args)
	if len(positional) < 2 {
		return fail(fserr.New(fserr.InvalidArgument, "unzip: archive and destination required"))
	}
	src := s.resolve(positional[0])
	dst := s.resolve(positional[1])
	sum, err := archive.Extract(ctx, src, dst)
	if err != nil {
		return fail(err)
	}
	return types.Success(map[string]interface{}{
		"extracted":   true,
		"destination": dst,
		"files":       sum.Files,
		"totalSize":   sum.TotalSize,
	})
}

// cmdBatchCopy copies source/destination pairs independently. Flags:
// -overwrite, -failfast.
func (s *Session) cmdBatchCopy(ctx context.Context, args []string) *types.Result {
	positional, flags := splitArgs(args)
	if len(positional) == 0 || len(positional)%2 != 0 {
		return fail(fserr.New(fserr.InvalidArgument, "batchcopy: source/destination pairs required"))
	}

	pairs := make([]mutate.BatchPair, 0, len(positional)/2)
	for i := 0; i < len(positional); i += 2 {
		pairs = append(pairs, mutate.BatchPair{
			Source:      s.resolve(positional[i]),
			Destination: s.resolve(positional[i+1]),
		})
	}

	opts := mutate.CopyOptions{
		Overwrite: flags["overwrite"],
		Recursive: true,
	}
	report := mutate.BatchCopy(ctx, pairs, opts, flags["failfast"])
	return types.Success(map[string]interface{}{"report": report})
}
