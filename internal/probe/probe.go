package probe

import (
	"context"
	"time"
)

// Status is the tri-state result of one check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// Outcome holds the result of a single probe execution.
//
// Name and CheckedAt are stamped by the aggregator; probes only fill
// Status, Message and LatencyMS. Message must be non-empty whenever
// Status is not OK.
type Outcome struct {
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	LatencyMS float64   `json:"latency_ms,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker is implemented by every probe (HTTP liveness, readiness
// command, resource threshold, ...). One call produces exactly one
// Outcome; retries are the caller's decision, never the probe's.
type Checker interface {
	Check(ctx context.Context) Outcome
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(ctx context.Context) Outcome

func (f CheckerFunc) Check(ctx context.Context) Outcome { return f(ctx) }

// OK builds a passing outcome.
func OK(message string) Outcome {
	return Outcome{Status: StatusOK, Message: message}
}

// Warn builds a warning outcome.
func Warn(message string) Outcome {
	return Outcome{Status: StatusWarn, Message: message}
}

// Fail builds a failing outcome.
func Fail(message string) Outcome {
	return Outcome{Status: StatusFail, Message: message}
}
