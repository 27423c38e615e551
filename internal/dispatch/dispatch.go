package dispatch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/monitoring"
	"github.com/navfs/navigator/internal/types"
)

// Dispatch executes one command against the session and returns the
// result envelope. Engine failures are reported inside the envelope;
// only the envelope itself is always non-nil.
func (s *Session) Dispatch(ctx context.Context, command string, args []string) *types.Result {
	start := time.Now()
	command = strings.ToLower(strings.TrimSpace(command))

	s.mu.Lock()
	result := s.route(ctx, command, args)
	s.mu.Unlock()

	monitoring.ObserveCommand(command, result.Success, time.Since(start))
	if !result.Success && result.Error != nil {
		s.logger.Debug("command failed",
			zap.String("command", command),
			zap.String("error", *result.Error))
	}
	return result
}

func (s *Session) route(ctx context.Context, command string, args []string) *types.Result {
	switch command {
	case "list":
		return s.cmdList(args)
	case "cd":
		return s.cmdCd(args)
	case "pwd":
		return s.cmdPwd()
	case "back":
		return s.cmdBack()
	case "forward":
		return s.cmdForward()
	case "up":
		return s.cmdUp()
	case "history":
		return s.cmdHistory()
	case "info":
		return s.cmdInfo(args)
	case "search":
		return s.cmdSearch(ctx, args)
	case "diskinfo":
		return s.cmdDiskinfo(args)
	case "du":
		return s.cmdDu(ctx, args)
	case "mime":
		return s.cmdMime(args)
	case "mkdir":
		return s.cmdMkdir(args)
	case "mkfile":
		return s.cmdMkfile(args)
	case "delete":
		return s.cmdDelete(args)
	case "copy":
		return s.cmdCopy(ctx, args)
	case "move":
		return s.cmdMove(ctx, args)
	case "rename":
		return s.cmdRename(args)
	case "chmod":
		return s.cmdChmod(args)
	case "symlink":
		return s.cmdSymlink(args)
	case "readlink":
		return s.cmdReadlink(args)
	case "zip":
		return s.cmdZip(ctx, args)
	case "unzip":
		return s.cmdUnzip(ctx, args)
	case "batchcopy":
		return s.cmdBatchCopy(ctx, args)
	default:
		return fail(fserr.Newf(fserr.UnknownCommand, "unknown command: %s", command))
	}
}

// splitArgs separates "-x" style flags from positional arguments.
func splitArgs(args []string) (positional []string, flags map[string]bool) {
	flags = map[string]bool{}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			flags[strings.TrimLeft(arg, "-")] = true
			continue
		}
		positional = append(positional, arg)
	}
	return positional, flags
}

// fail converts an engine error into a failure envelope.
func fail(err error) *types.Result {
	return types.Failure(err.Error())
}
