// Package diskstats reports capacity and usage of the filesystem holding
// a given path.
package diskstats

import (
	"math"
	"os"

	"github.com/navfs/navigator/internal/fserr"
	"github.com/navfs/navigator/internal/types"
)

// Query returns disk statistics for the filesystem containing path.
func Query(path string) (*types.DiskStats, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fserr.FromOS("diskinfo "+path, err)
	}
	return probe(path)
}

// usagePercent computes used/total as a percentage with one decimal.
func usagePercent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	pct := float64(used) / float64(total) * 100
	return math.Round(pct*10) / 10
}
