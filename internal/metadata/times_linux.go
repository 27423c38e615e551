//go:build linux

package metadata

import (
	"syscall"
	"time"
)

// changeTime returns the inode change time, the closest thing to a creation
// timestamp the original data model exposes on this platform.
func changeTime(st *syscall.Stat_t) time.Time {
	return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
}
