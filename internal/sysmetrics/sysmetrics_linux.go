//go:build linux

package sysmetrics

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MemUsedPercent uses MemAvailable from /proc/meminfo, the kernel's own
// estimate of reclaimable memory, rather than MemFree which undercounts
// on hosts with large page caches.
func (hostSource) MemUsedPercent() (float64, error) {
	return memUsedFromMeminfo("/proc/meminfo")
}

func memUsedFromMeminfo(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var totalKB, availKB uint64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			totalKB, err = parseMeminfoKB(line)
		case strings.HasPrefix(line, "MemAvailable:"):
			availKB, err = parseMeminfoKB(line)
		}
		if err != nil {
			return 0, err
		}
		if totalKB > 0 && availKB > 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	if totalKB == 0 {
		return 0, errors.New("meminfo: MemTotal missing or zero")
	}
	if availKB == 0 {
		return 0, errors.New("meminfo: MemAvailable missing")
	}
	return float64(totalKB-availKB) / float64(totalKB) * 100, nil
}

func parseMeminfoKB(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("meminfo: malformed line %q", line)
	}
	return strconv.ParseUint(fields[1], 10, 64)
}
