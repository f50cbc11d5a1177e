//go:build darwin

package sysmetrics

import (
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"unsafe"
)

// MemUsedPercent combines total memory from sysctl hw.memsize with free
// and speculative page counts from vm_stat. macOS has no MemAvailable
// equivalent, so this is the closest honest accounting.
func (hostSource) MemUsedPercent() (float64, error) {
	total, err := totalMemory()
	if err != nil {
		return 0, err
	}
	free, err := freeMemoryVMStat()
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, errors.New("hw.memsize reports zero")
	}
	if free > total {
		free = total
	}
	return float64(total-free) / float64(total) * 100, nil
}

func totalMemory() (uint64, error) {
	mib := []int32{6, 24} // CTL_HW, HW_MEMSIZE
	var size uint64
	length := unsafe.Sizeof(size)

	_, _, errno := syscall.Syscall6(
		syscall.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])),
		uintptr(2),
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&length)),
		0,
		0,
	)
	if errno != 0 {
		return 0, errno
	}
	return size, nil
}

func freeMemoryVMStat() (uint64, error) {
	out, err := exec.Command("vm_stat").Output()
	if err != nil {
		return 0, fmt.Errorf("vm_stat: %w", err)
	}
	var pageSize, freePages, specPages uint64
	for _, line := range strings.Split(string(out), "\n") {
		switch {
		case strings.HasPrefix(line, "Mach Virtual Memory Statistics:"):
			pageSize = parseVMStatPageSize(line)
		case strings.HasPrefix(line, "Pages free:"):
			freePages = parseVMStatPages(line)
		case strings.HasPrefix(line, "Pages speculative:"):
			specPages = parseVMStatPages(line)
		}
	}
	if pageSize == 0 {
		pageSize = 4096
	}
	if freePages == 0 {
		return 0, errors.New("vm_stat: no free page count")
	}
	return (freePages + specPages) * pageSize, nil
}

func parseVMStatPageSize(line string) uint64 {
	// "Mach Virtual Memory Statistics: (page size of 16384 bytes)"
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "of" && i+1 < len(fields) {
			if n, err := strconv.ParseUint(fields[i+1], 10, 64); err == nil {
				return n
			}
		}
	}
	return 0
}

func parseVMStatPages(line string) uint64 {
	i := strings.LastIndexByte(line, ' ')
	if i < 0 {
		return 0
	}
	n, _ := strconv.ParseUint(strings.TrimSuffix(strings.TrimSpace(line[i+1:]), "."), 10, 64)
	return n
}
