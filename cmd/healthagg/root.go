package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/aggregate"
	"github.com/hamed0406/healthagg/internal/auditlog"
	"github.com/hamed0406/healthagg/internal/config"
	"github.com/hamed0406/healthagg/internal/httpapi"
	"github.com/hamed0406/healthagg/internal/logging"
	"github.com/hamed0406/healthagg/internal/notify"
	"github.com/hamed0406/healthagg/internal/probe"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "healthagg",
		Short:         "Probes configured services and alerts on failures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newServeCmd(), newPreflightCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one health pass and exit (cron-friendly)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runPass(cmd, cfg)
		},
	}
}

func runPass(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logger.Sync()

	audit, err := auditlog.Open(cfg.LogDir, "health.log", cfg.AuditMaxBytes)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer audit.Close()

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	if reg.Len() == 0 {
		return fmt.Errorf("%w: no checks configured", config.ErrInvalid)
	}

	runner := aggregate.NewRunner(logger, audit, cfg.Hostname,
		cfg.ProbeTimeout, cfg.PassTimeout, cfg.MaxChecks)
	rep := runner.RunAll(ctx, reg)

	failures, warnings := rep.Failures(), rep.Warnings()
	switch rep.Overall() {
	case probe.StatusOK:
		audit.Record(auditlog.LevelInfo,
			fmt.Sprintf("all %d checks passed", len(rep.Outcomes)))
	default:
		title, text := notify.Format(rep)
		sinks := buildSinks(cfg)
		if len(sinks) == 0 {
			audit.Record(auditlog.LevelWarn, "no alert sink configured; alert not sent")
		} else if err := sinks.Send(ctx, title, text); err != nil {
			// Best-effort channel; the exit code below is the durable signal.
			logger.Warn("alert_delivery_failed", zap.Error(err))
			audit.Record(auditlog.LevelWarn, "alert delivery failed: "+err.Error())
		}
	}

	logger.Info("pass_finished",
		zap.String("overall", string(rep.Overall())),
		zap.Int("checks", len(rep.Outcomes)),
		zap.Int("failures", len(failures)),
		zap.Int("warnings", len(warnings)),
	)

	if rep.Overall() == probe.StatusFail {
		return fmt.Errorf("health pass failed: %d of %d checks failing",
			len(failures), len(rep.Outcomes))
	}
	return nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Expose /healthz; each request runs a fresh pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.LogDir)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			defer logger.Sync()

			audit, err := auditlog.Open(cfg.LogDir, "health.log", cfg.AuditMaxBytes)
			if err != nil {
				return fmt.Errorf("open audit log: %w", err)
			}
			defer audit.Close()

			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			runner := aggregate.NewRunner(logger, audit, cfg.Hostname,
				cfg.ProbeTimeout, cfg.PassTimeout, cfg.MaxChecks)
			srv := httpapi.NewServer(logger, runner, reg, cfg.AllowedOrigins)

			logger.Info("api_listen", zap.String("addr", cfg.Addr))
			server := &http.Server{Addr: cfg.Addr, Handler: srv.Router()}
			go func() {
				<-cmd.Context().Done()
				_ = server.Close()
			}()
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
