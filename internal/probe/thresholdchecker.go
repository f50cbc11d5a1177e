package probe

import (
	"context"
	"fmt"
)

// Metric reads one numeric percentage from the host (disk usage,
// memory usage, ...).
type Metric func() (float64, error)

// ThresholdChecker compares a metric reading against a warn and a crit
// percentage. Below warn is OK, [warn, crit) is WARN, >= crit is FAIL.
//
// A reading that cannot be taken is WARN ("unable to measure" is not
// proof of failure) unless Strict is set, in which case it is FAIL.
type ThresholdChecker struct {
	Label  string // e.g. "disk usage"
	Warn   float64
	Crit   float64
	Strict bool
	Read   Metric
}

func (t *ThresholdChecker) Check(ctx context.Context) Outcome {
	v, err := t.Read()
	if err != nil {
		msg := fmt.Sprintf("unable to measure %s: %v", t.Label, err)
		if t.Strict {
			return Fail(msg)
		}
		return Warn(msg)
	}

	switch {
	case v >= t.Crit:
		return Fail(fmt.Sprintf("%s %.0f%% (threshold %.0f%%)", t.Label, v, t.Crit))
	case v >= t.Warn:
		return Warn(fmt.Sprintf("%s %.0f%% (threshold %.0f%%)", t.Label, v, t.Warn))
	default:
		return OK(fmt.Sprintf("%s %.0f%%", t.Label, v))
	}
}
