// Package sysmetrics reads host resource usage as percentages. Each
// operating-system family has its own accounting; callers get a single
// Source and never branch on GOOS themselves.
package sysmetrics

// Source reads resource usage from the host. An error means the metric
// could not be taken on this platform or at this moment; callers decide
// how to grade that.
type Source interface {
	// DiskUsedPercent returns used disk space at path as 0-100.
	DiskUsedPercent(path string) (float64, error)

	// MemUsedPercent returns used physical memory as 0-100.
	MemUsedPercent() (float64, error)
}

// New returns the Source for the running platform.
func New() Source {
	return hostSource{}
}
