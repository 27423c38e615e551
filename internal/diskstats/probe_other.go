//go:build !linux && !darwin

package diskstats

import (
	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

func probe(path string) (*types.DiskStats, error) {
	return nil, fserr.New(fserr.Unavailable, "disk statistics not supported on this platform")
}
