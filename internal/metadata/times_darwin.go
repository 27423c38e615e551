//go:build darwin

package metadata

import (
	"syscall"
	"time"
)

// changeTime prefers the true birth time where the platform records one.
func changeTime(st *syscall.Stat_t) time.Time {
	if st.Birthtimespec.Sec != 0 {
		return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	}
	return time.Unix(st.Ctimespec.Sec, st.Ctimespec.Nsec)
}
