package main

import (
	"github.com/hamed0406/healthagg/internal/config"
	"github.com/hamed0406/healthagg/internal/notify"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/registry"
	"github.com/hamed0406/healthagg/internal/sysmetrics"
)

// buildRegistry maps configuration onto concrete checks. Liveness
// targets come first, then readiness, then resource thresholds, so the
// report reads in dependency-priority order.
func buildRegistry(cfg config.Config) (*registry.Registry, error) {
	reg := registry.New()

	for _, t := range cfg.LivenessTargets {
		def := registry.Definition{
			Name:    t.Name,
			Kind:    registry.KindLiveness,
			Checker: probe.NewHTTPChecker(t.URL, cfg.ProbeTimeout, cfg.AcceptStatus),
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	if len(cfg.ReadyCmd) > 0 {
		def := registry.Definition{
			Name:    "ready-cmd",
			Kind:    registry.KindReadiness,
			Checker: probe.NewCommandChecker(cfg.ReadyCmd[0], cfg.ReadyCmd[1:]...),
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	if cfg.DatabaseURL != "" {
		def := registry.Definition{
			Name:    "postgres",
			Kind:    registry.KindReadiness,
			Checker: probe.NewPostgresChecker(cfg.DatabaseURL),
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	metrics := sysmetrics.New()
	resource := []registry.Definition{
		{
			Name: "disk",
			Kind: registry.KindResource,
			Checker: &probe.ThresholdChecker{
				Label:  "disk usage",
				Warn:   cfg.DiskWarnPct,
				Crit:   cfg.DiskCritPct,
				Strict: cfg.ResourceStrict,
				Read:   func() (float64, error) { return metrics.DiskUsedPercent(cfg.DiskPath) },
			},
		},
		{
			Name: "memory",
			Kind: registry.KindResource,
			Checker: &probe.ThresholdChecker{
				Label:  "memory usage",
				Warn:   cfg.MemWarnPct,
				Crit:   cfg.MemCritPct,
				Strict: cfg.ResourceStrict,
				Read:   metrics.MemUsedPercent,
			},
		},
	}
	for _, def := range resource {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func buildSinks(cfg config.Config) notify.Multi {
	var sinks notify.Multi
	if wa := notify.NewWhatsApp(cfg.WAHAURL, cfg.WAHAAPIKey, cfg.WAHASession, cfg.WAHAChatID); wa != nil {
		sinks = append(sinks, wa)
	}
	if sl := notify.NewSlack(cfg.SlackWebhook); sl != nil {
		sinks = append(sinks, sl)
	}
	return sinks
}
