//go:build linux || darwin

package sysmetrics

import (
	"errors"
	"syscall"
)

type hostSource struct{}

// DiskUsedPercent mirrors df: used / (used + available), so reserved
// blocks do not count against the caller.
func (hostSource) DiskUsedPercent(path string) (float64, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return 0, err
	}
	used := stat.Blocks - stat.Bfree
	total := used + stat.Bavail
	if total == 0 {
		return 0, errors.New("filesystem reports zero blocks")
	}
	return float64(used) / float64(total) * 100, nil
}
