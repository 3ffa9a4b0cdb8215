package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Sweep engine settings; every probe in a run uses the same values.
	Workers int           // concurrent workers pulling from the queue
	Timeout time.Duration // per-attempt HTTP timeout
	Retries int           // additional attempts after the first
	Backoff time.Duration // fixed wait between failed attempts

	Output string // JSON report path; empty disables the file report
	LogDir string // rotated log directory

	// serve-mode settings
	Addr         string   // API bind address
	DatabaseURL  string   // empty means in-memory store
	AdminAPIKeys []string // keys allowed to trigger sweeps; empty allows all (dev)
	SweepRPM     int      // rate limit for sweep triggers, requests per minute
	SweepBurst   int

	SlackWebhook string // post-sweep summary destination; empty disables
}

// FromEnv builds a Config from environment variables, falling back to
// defaults that match the CLI's documented behavior.
func FromEnv() Config {
	cfg := Config{
		Workers: 4,
		Timeout: 5 * time.Second,
		Retries: 0,
		Backoff: 100 * time.Millisecond,
		Output:  "status.json",
		LogDir:  "logs",
		Addr:    "127.0.0.1:8080",

		SweepRPM:   30,
		SweepBurst: 10,
	}

	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Retries = n
		}
	}
	if v := os.Getenv("RETRY_BACKOFF_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.Backoff = time.Duration(ms) * time.Millisecond
		}
	}

	if v := os.Getenv("OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.AdminAPIKeys = splitKeys(os.Getenv("ADMIN_API_KEYS"))
	if v := os.Getenv("SWEEP_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.SweepRPM = n
		}
	}
	if v := os.Getenv("SWEEP_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SweepBurst = n
		}
	}
	cfg.SlackWebhook = os.Getenv("SLACK_WEBHOOK_URL")

	return cfg
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.TrimSpace(p); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// Duration is a time.Duration that unmarshals from YAML strings such as
// "5s" or "100ms".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// fileConfig is the YAML shape. Omitted fields keep their prior value,
// so a file only needs to name what it changes.
type fileConfig struct {
	Workers *int     `yaml:"workers"`
	Timeout Duration `yaml:"timeout"`
	Retries *int     `yaml:"retries"`
	Backoff Duration `yaml:"backoff"`
	Output  *string  `yaml:"output"`
	LogDir  *string  `yaml:"log_dir"`
	Addr    *string  `yaml:"addr"`
}

// ApplyFile overlays a YAML config file onto c.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Workers != nil {
		c.Workers = *fc.Workers
	}
	if fc.Timeout != 0 {
		c.Timeout = time.Duration(fc.Timeout)
	}
	if fc.Retries != nil {
		c.Retries = *fc.Retries
	}
	if fc.Backoff != 0 {
		c.Backoff = time.Duration(fc.Backoff)
	}
	if fc.Output != nil {
		c.Output = *fc.Output
	}
	if fc.LogDir != nil {
		c.LogDir = *fc.LogDir
	}
	if fc.Addr != nil {
		c.Addr = *fc.Addr
	}
	return nil
}

// Validate rejects settings the sweep engine cannot run with. It runs
// before any worker is spawned; a failure here is fatal to the run.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	if c.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", c.Retries)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("backoff must be >= 0, got %s", c.Backoff)
	}
	return nil
}
