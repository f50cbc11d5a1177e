package config

import (
	"errors"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LOG_DIR", "AUDIT_MAX_BYTES", "HOSTNAME", "LIVENESS_TARGETS", "ACCEPT_STATUS",
		"READY_CMD", "DATABASE_URL", "DISK_PATH", "DISK_WARN_PCT", "DISK_CRIT_PCT",
		"MEM_WARN_PCT", "MEM_CRIT_PCT", "RESOURCE_STRICT", "PROBE_TIMEOUT_MS",
		"PASS_TIMEOUT_MS", "MAX_CONCURRENT_CHECKS", "WAHA_URL", "WAHA_API_KEY",
		"WAHA_SESSION", "WAHA_CHAT_ID", "SLACK_WEBHOOK", "ADDR", "ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIVENESS_TARGETS", "n8n=http://localhost:5678/healthz, waha=http://localhost:3000/ping")
	t.Setenv("ACCEPT_STATUS", "200,204")
	t.Setenv("READY_CMD", "pg_isready -h localhost -p 5432")
	t.Setenv("DISK_WARN_PCT", "70")
	t.Setenv("DISK_CRIT_PCT", "85")
	t.Setenv("PROBE_TIMEOUT_MS", "2500")
	t.Setenv("WAHA_URL", "http://localhost:3000")
	t.Setenv("WAHA_CHAT_ID", "49170@c.us")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if len(cfg.LivenessTargets) != 2 || cfg.LivenessTargets[0].Name != "n8n" ||
		cfg.LivenessTargets[1].URL != "http://localhost:3000/ping" {
		t.Fatalf("targets wrong: %+v", cfg.LivenessTargets)
	}
	if len(cfg.AcceptStatus) != 2 || cfg.AcceptStatus[1] != 204 {
		t.Fatalf("accept codes wrong: %+v", cfg.AcceptStatus)
	}
	if len(cfg.ReadyCmd) != 5 || cfg.ReadyCmd[0] != "pg_isready" {
		t.Fatalf("ready cmd wrong: %+v", cfg.ReadyCmd)
	}
	if cfg.DiskWarnPct != 70 || cfg.DiskCritPct != 85 {
		t.Fatalf("disk thresholds wrong: %+v", cfg)
	}
	if cfg.MemWarnPct != 80 || cfg.MemCritPct != 95 {
		t.Fatalf("mem defaults wrong: %+v", cfg)
	}
	if cfg.ProbeTimeout != 2500*time.Millisecond {
		t.Fatalf("probe timeout wrong: %v", cfg.ProbeTimeout)
	}
	if cfg.WAHASession != "default" {
		t.Fatalf("waha session default wrong: %q", cfg.WAHASession)
	}
	if cfg.LogDir != "logs" {
		t.Fatalf("log dir default wrong: %q", cfg.LogDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestFromEnv_BareURLGetsHostName(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIVENESS_TARGETS", "https://example.com/healthz")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if len(cfg.LivenessTargets) != 1 || cfg.LivenessTargets[0].Name != "example.com" {
		t.Fatalf("targets = %+v", cfg.LivenessTargets)
	}
}

func TestFromEnv_NonNumericThresholdIsError(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISK_WARN_PCT", "eighty")
	if _, err := FromEnv(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestValidate_InvertedThresholds(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEM_WARN_PCT", "95")
	t.Setenv("MEM_CRIT_PCT", "80")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid for inverted thresholds, got %v", err)
	}
}

func TestValidate_EqualThresholdsRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISK_WARN_PCT", "90")
	t.Setenv("DISK_CRIT_PCT", "90")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestValidate_SchemelessTargetRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIVENESS_TARGETS", "n8n=localhost:5678")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestFromEnv_BadAcceptStatus(t *testing.T) {
	clearEnv(t)
	t.Setenv("ACCEPT_STATUS", "200,teapot")
	if _, err := FromEnv(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}
