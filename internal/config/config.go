package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid wraps every configuration validation failure. Config
// problems are the one class of error that aborts the process before
// any probe runs: without valid thresholds and targets no check can be
// evaluated correctly.
var ErrInvalid = errors.New("config: invalid")

// Target is one named liveness endpoint.
type Target struct {
	Name string
	URL  string
}

type Config struct {
	LogDir        string // structured + audit logs directory
	AuditMaxBytes int64  // audit file rotation threshold
	Hostname      string // host identity stamped into alerts

	LivenessTargets []Target // name=url pairs
	AcceptStatus    []int    // accepted HTTP codes; empty means 200 only

	ReadyCmd    []string // readiness command and args; empty disables
	DatabaseURL string   // postgres readiness probe; empty disables

	DiskPath       string
	DiskWarnPct    float64
	DiskCritPct    float64
	MemWarnPct     float64
	MemCritPct     float64
	ResourceStrict bool // unreadable metric is FAIL instead of WARN

	ProbeTimeout time.Duration
	PassTimeout  time.Duration
	MaxChecks    int // max concurrent probes; 0 means one per check

	WAHAURL     string
	WAHAAPIKey  string
	WAHASession string
	WAHAChatID  string

	SlackWebhook string

	Addr           string // serve mode bind address
	AllowedOrigins []string
}

// Load reads .env files if present, then the process environment, then
// validates. Any validation failure is fatal to the caller.
func Load() (Config, error) {
	loadEnvFiles()
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadEnvFiles overlays .env files onto the process environment; absent
// files are fine, cron deployments usually rely on plain env.
func loadEnvFiles() {
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		_ = godotenv.Overload(file)
	}
}

// FromEnv parses the environment. Malformed numeric values are errors,
// not silently replaced defaults: a mistyped threshold must be noticed
// at startup, not discovered during an outage.
func FromEnv() (Config, error) {
	cfg := Config{
		LogDir:        envOr("LOG_DIR", "logs"),
		AuditMaxBytes: 1 << 20, // 1 MiB
		Hostname:      envOr("HOSTNAME", ""),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DiskPath:      envOr("DISK_PATH", "/"),
		DiskWarnPct:   80,
		DiskCritPct:   90,
		MemWarnPct:    80,
		MemCritPct:    95,
		ProbeTimeout:  5 * time.Second,
		PassTimeout:   60 * time.Second,
		Addr:          envOr("ADDR", "127.0.0.1:8080"),
	}

	if cfg.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			cfg.Hostname = h
		}
	}

	var err error
	if cfg.AuditMaxBytes, err = envInt64("AUDIT_MAX_BYTES", cfg.AuditMaxBytes); err != nil {
		return Config{}, err
	}
	if cfg.DiskWarnPct, err = envFloat("DISK_WARN_PCT", cfg.DiskWarnPct); err != nil {
		return Config{}, err
	}
	if cfg.DiskCritPct, err = envFloat("DISK_CRIT_PCT", cfg.DiskCritPct); err != nil {
		return Config{}, err
	}
	if cfg.MemWarnPct, err = envFloat("MEM_WARN_PCT", cfg.MemWarnPct); err != nil {
		return Config{}, err
	}
	if cfg.MemCritPct, err = envFloat("MEM_CRIT_PCT", cfg.MemCritPct); err != nil {
		return Config{}, err
	}
	if cfg.ProbeTimeout, err = envDurationMS("PROBE_TIMEOUT_MS", cfg.ProbeTimeout); err != nil {
		return Config{}, err
	}
	if cfg.PassTimeout, err = envDurationMS("PASS_TIMEOUT_MS", cfg.PassTimeout); err != nil {
		return Config{}, err
	}
	if cfg.MaxChecks, err = envIntVal("MAX_CONCURRENT_CHECKS", 0); err != nil {
		return Config{}, err
	}

	cfg.LivenessTargets, err = parseTargets(os.Getenv("LIVENESS_TARGETS"))
	if err != nil {
		return Config{}, err
	}
	cfg.AcceptStatus, err = parseCodes(os.Getenv("ACCEPT_STATUS"))
	if err != nil {
		return Config{}, err
	}

	if v := os.Getenv("READY_CMD"); v != "" {
		cfg.ReadyCmd = strings.Fields(v)
	}
	if v := os.Getenv("RESOURCE_STRICT"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			return Config{}, fmt.Errorf("%w: RESOURCE_STRICT=%q is not a boolean", ErrInvalid, v)
		}
		cfg.ResourceStrict = b
	}

	cfg.WAHAURL = os.Getenv("WAHA_URL")
	cfg.WAHAAPIKey = os.Getenv("WAHA_API_KEY")
	cfg.WAHASession = envOr("WAHA_SESSION", "default")
	cfg.WAHAChatID = os.Getenv("WAHA_CHAT_ID")
	cfg.SlackWebhook = os.Getenv("SLACK_WEBHOOK")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// Validate enforces the invariants the probes rely on; warn thresholds
// must sit strictly below their critical counterparts.
func (c Config) Validate() error {
	if c.DiskWarnPct >= c.DiskCritPct {
		return fmt.Errorf("%w: DISK_WARN_PCT (%.0f) must be below DISK_CRIT_PCT (%.0f)",
			ErrInvalid, c.DiskWarnPct, c.DiskCritPct)
	}
	if c.MemWarnPct >= c.MemCritPct {
		return fmt.Errorf("%w: MEM_WARN_PCT (%.0f) must be below MEM_CRIT_PCT (%.0f)",
			ErrInvalid, c.MemWarnPct, c.MemCritPct)
	}
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"DISK_WARN_PCT", c.DiskWarnPct}, {"DISK_CRIT_PCT", c.DiskCritPct},
		{"MEM_WARN_PCT", c.MemWarnPct}, {"MEM_CRIT_PCT", c.MemCritPct},
	} {
		if p.v < 0 || p.v > 100 {
			return fmt.Errorf("%w: %s=%.0f is not a percentage", ErrInvalid, p.name, p.v)
		}
	}
	for _, t := range c.LivenessTargets {
		if !strings.Contains(t.URL, "://") {
			return fmt.Errorf("%w: liveness target %q: URL %q has no scheme", ErrInvalid, t.Name, t.URL)
		}
	}
	return nil
}

// parseTargets reads "name=url,name=url". A bare URL gets its host as
// the check name.
func parseTargets(raw string) ([]Target, error) {
	if raw == "" {
		return nil, nil
	}
	var out []Target
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, url, found := strings.Cut(part, "=")
		if !found {
			url = part
			name = hostOf(part)
		}
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if name == "" || url == "" {
			return nil, fmt.Errorf("%w: LIVENESS_TARGETS entry %q", ErrInvalid, part)
		}
		out = append(out, Target{Name: name, URL: url})
	}
	return out, nil
}

func hostOf(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, ":/"); i >= 0 {
		s = s[:i]
	}
	return s
}

func parseCodes(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 100 || n > 599 {
			return nil, fmt.Errorf("%w: ACCEPT_STATUS entry %q is not an HTTP status", ErrInvalid, part)
		}
		out = append(out, n)
	}
	return out, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not numeric", ErrInvalid, key, v)
	}
	return f, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a byte count", ErrInvalid, key, v)
	}
	return n, nil
}

func envIntVal(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a count", ErrInvalid, key, v)
	}
	return n, nil
}

func envDurationMS(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a millisecond count", ErrInvalid, key, v)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
