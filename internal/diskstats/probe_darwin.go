//go:build darwin

package diskstats

import (
	"golang.org/x/sys/unix"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

func probe(path string) (*types.DiskStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fserr.Wrap(fserr.Unavailable, "statfs "+path, err)
	}

	bsize := uint64(st.Bsize)
	total := uint64(st.Blocks) * bsize
	free := uint64(st.Bfree) * bsize
	avail := uint64(st.Bavail) * bsize
	used := total - free

	name := unix.ByteSliceToString(st.Fstypename[:])

	return &types.DiskStats{
		Path:           path,
		TotalBytes:     total,
		FreeBytes:      free,
		AvailableBytes: avail,
		UsedBytes:      used,
		UsagePercent:   usagePercent(used, total),
		FilesystemType: name,
	}, nil
}
