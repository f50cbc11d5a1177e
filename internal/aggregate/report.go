package aggregate

import (
	"time"

	"github.com/hamed0406/healthagg/internal/probe"
)

// Report is the aggregate of one pass: every registered check's
// outcome, in registration order. It is built fresh each pass and never
// persisted; the only cross-run state in the whole program is the log
// files.
type Report struct {
	Host       string          `json:"host,omitempty"`
	Outcomes   []probe.Outcome `json:"outcomes"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// Failures returns the outcomes with status FAIL, preserving order.
func (r *Report) Failures() []probe.Outcome {
	return r.withStatus(probe.StatusFail)
}

// Warnings returns the outcomes with status WARN, preserving order.
func (r *Report) Warnings() []probe.Outcome {
	return r.withStatus(probe.StatusWarn)
}

// Overall is FAIL if any check failed, else WARN if any warned, else OK.
func (r *Report) Overall() probe.Status {
	overall := probe.StatusOK
	for _, o := range r.Outcomes {
		switch o.Status {
		case probe.StatusFail:
			return probe.StatusFail
		case probe.StatusWarn:
			overall = probe.StatusWarn
		}
	}
	return overall
}

func (r *Report) withStatus(s probe.Status) []probe.Outcome {
	var out []probe.Outcome
	for _, o := range r.Outcomes {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}
