//go:build linux

package diskstats

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

// fsTypeNames maps statfs magic numbers to human-readable names.
var fsTypeNames = map[int64]string{
	0xEF53:     "ext4",
	0x58465342: "xfs",
	0x9123683E: "btrfs",
	0x01021994: "tmpfs",
	0x6969:     "nfs",
	0x65735546: "fuse",
	0x2FC12FC1: "zfs",
	0x794C7630: "overlayfs",
	0x4D44:     "vfat",
	0x5346544E: "ntfs",
	0x73717368: "squashfs",
	0x9FA0:     "proc",
	0x62656572: "sysfs",
}

func probe(path string) (*types.DiskStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, fserr.Wrap(fserr.Unavailable, "statfs "+path, err)
	}

	bsize := uint64(st.Bsize)
	total := st.Blocks * bsize
	free := st.Bfree * bsize
	avail := st.Bavail * bsize
	used := total - free

	name, ok := fsTypeNames[int64(st.Type)]
	if !ok {
		name = fmt.Sprintf("0x%x", st.Type)
	}

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
