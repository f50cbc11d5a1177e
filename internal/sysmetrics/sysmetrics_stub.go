//go:build !linux && !darwin

package sysmetrics

import "errors"

type hostSource struct{}

func (hostSource) DiskUsedPercent(path string) (float64, error) {
	return 0, errors.New("disk usage not supported on this platform")
}

func (hostSource) MemUsedPercent() (float64, error) {
	return 0, errors.New("memory usage not supported on this platform")
}
