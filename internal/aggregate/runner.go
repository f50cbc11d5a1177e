// Package aggregate orchestrates one health pass: every registered
// check runs exactly once, misbehaving probes become FAIL outcomes, and
// the report keeps registration order no matter how probes interleave.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/healthagg/internal/auditlog"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/registry"
)

type Runner struct {
	Logger       *zap.Logger
	Audit        *auditlog.Logger
	Host         string
	ProbeTimeout time.Duration
	PassTimeout  time.Duration
	Concurrency  int
}

func NewRunner(logger *zap.Logger, audit *auditlog.Logger, host string, probeTimeout, passTimeout time.Duration, concurrency int) *Runner {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	if passTimeout <= 0 {
		passTimeout = 60 * time.Second
	}
	return &Runner{
		Logger:       logger,
		Audit:        audit,
		Host:         host,
		ProbeTimeout: probeTimeout,
		PassTimeout:  passTimeout,
		Concurrency:  concurrency,
	}
}

// RunAll runs every registered check and collects one outcome per
// check. It never short-circuits: later checks run regardless of
// earlier failures, so one unhealthy dependency cannot mask the status
// of the others.
func (r *Runner) RunAll(ctx context.Context, reg *registry.Registry) *Report {
	defs := reg.All()
	rep := &Report{
		Host:      r.Host,
		Outcomes:  make([]probe.Outcome, len(defs)),
		StartedAt: time.Now().UTC(),
	}

	passCtx, cancel := context.WithTimeout(ctx, r.PassTimeout)
	defer cancel()

	limit := r.Concurrency
	if limit < 1 {
		limit = len(defs)
	}
	if limit < 1 {
		limit = 1
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i, d := range defs {
		i, d := i, d
		g.Go(func() error {
			rep.Outcomes[i] = r.runOne(passCtx, d)
			return nil
		})
	}
	_ = g.Wait()

	rep.FinishedAt = time.Now().UTC()
	r.record(rep)
	return rep
}

// runOne invokes a single probe with its own deadline. A panicking
// probe or one that outlives the deadline is abandoned and recorded as
// FAIL; nothing a probe does can propagate past here.
func (r *Runner) runOne(ctx context.Context, d registry.Definition) probe.Outcome {
	cctx, cancel := context.WithTimeout(ctx, r.ProbeTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan probe.Outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- probe.Fail(fmt.Sprintf("probe panicked: %v", p))
			}
		}()
		done <- d.Checker.Check(cctx)
	}()

	var out probe.Outcome
	select {
	case out = <-done:
	case <-cctx.Done():
		out = probe.Fail(fmt.Sprintf("timed out after %s", r.ProbeTimeout))
	}

	out.Name = d.Name
	if out.CheckedAt.IsZero() {
		out.CheckedAt = time.Now().UTC()
	}
	if out.LatencyMS == 0 {
		out.LatencyMS = time.Since(start).Seconds() * 1000
	}
	return out
}

func (r *Runner) record(rep *Report) {
	for _, o := range rep.Outcomes {
		level := auditlog.LevelInfo
		switch o.Status {
		case probe.StatusWarn:
			level = auditlog.LevelWarn
		case probe.StatusFail:
			level = auditlog.LevelError
		}
		if r.Audit != nil {
			r.Audit.Record(level, fmt.Sprintf("%s %s: %s", o.Name, o.Status, o.Message))
		}
		if r.Logger != nil {
			r.Logger.Info("check_outcome",
				zap.String("name", o.Name),
				zap.String("status", string(o.Status)),
				zap.String("message", o.Message),
				zap.Float64("latency_ms", o.LatencyMS),
			)
		}
	}
}
