// Package auditlog writes the line-oriented audit trail of a health
// pass: one "[YYYY-MM-DD HH:MM:SS] LEVEL: message" line per event,
// appended to a file and echoed to standard output. The file is rotated
// by renaming to a .old suffix once it exceeds a size limit.
//
// This is deliberately separate from the zap process log: the audit
// file has a mandated plain-text format that operators tail and archive.
package auditlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

const timeLayout = "2006-01-02 15:04:05"

type Logger struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	f        *os.File
	size     int64
	dropped  int64

	stdout io.Writer        // os.Stdout unless overridden in tests
	now    func() time.Time // time.Now unless overridden in tests
}

// Open creates dir if absent and opens the audit file for appending.
// maxBytes <= 0 disables rotation.
func Open(dir, name string, maxBytes int64) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("auditlog: %w", err)
	}
	return &Logger{
		path:     path,
		maxBytes: maxBytes,
		f:        f,
		size:     st.Size(),
		stdout:   os.Stdout,
		now:      time.Now,
	}, nil
}

// Record appends one line to the audit file and to standard output.
// File write failures are swallowed so logging can never abort the
// health pass itself; they are counted and visible via Dropped.
func (l *Logger) Record(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(timeLayout), level, message)
	fmt.Fprint(l.stdout, line)

	if l.maxBytes > 0 && l.size > l.maxBytes {
		if err := l.rotate(); err != nil {
			l.dropped++
			return
		}
	}
	if l.f == nil {
		l.dropped++
		return
	}
	n, err := l.f.WriteString(line)
	l.size += int64(n)
	if err != nil {
		l.dropped++
	}
}

// rotate renames the current file to <path>.old, replacing any prior
// .old file, and reopens a fresh one. Callers hold l.mu.
func (l *Logger) rotate() error {
	if err := l.f.Close(); err != nil {
		l.f = nil
		return err
	}
	l.f = nil
	if err := os.Rename(l.path, l.path+".old"); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l.f = f
	l.size = 0
	return nil
}

// Dropped reports how many lines failed to reach the file.
func (l *Logger) Dropped() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dropped
}

func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
