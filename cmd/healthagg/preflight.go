package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hamed0406/healthagg/internal/config"
)

// newPreflightCmd sanity-checks the environment without probing
// anything: fit for a deploy step before enabling the cron entry.
func newPreflightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Validate configuration without running any checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ok := func(msg string) { fmt.Fprintln(out, "✔", msg) }
			warn := func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), "⚠", msg) }

			cfg, err := config.Load()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "✖", err)
				return err
			}

			if len(cfg.LivenessTargets) == 0 {
				warn("LIVENESS_TARGETS is empty — only readiness and resource checks will run.")
			} else {
				for _, t := range cfg.LivenessTargets {
					ok(fmt.Sprintf("liveness %s = %s", t.Name, t.URL))
				}
			}

			if len(cfg.ReadyCmd) == 0 && cfg.DatabaseURL == "" {
				warn("no readiness check configured (READY_CMD and DATABASE_URL both empty).")
			}
			if cfg.DatabaseURL != "" {
				ok("DATABASE_URL present")
			}
			if len(cfg.ReadyCmd) > 0 {
				if _, err := os.Stat(cfg.ReadyCmd[0]); err == nil {
					ok("READY_CMD = " + cfg.ReadyCmd[0])
				} else {
					ok("READY_CMD = " + cfg.ReadyCmd[0] + " (resolved via PATH at run time)")
				}
			}

			if cfg.WAHAURL == "" && cfg.SlackWebhook == "" {
				warn("no alert sink configured — failures will only reach the log and exit code.")
			}
			if cfg.WAHAURL != "" && cfg.WAHAChatID == "" {
				warn("WAHA_URL set but WAHA_CHAT_ID empty — WhatsApp alerts disabled.")
			}

			ok(fmt.Sprintf("thresholds disk %.0f/%.0f mem %.0f/%.0f",
				cfg.DiskWarnPct, cfg.DiskCritPct, cfg.MemWarnPct, cfg.MemCritPct))
			ok("preflight passed")
			return nil
		},
	}
}
