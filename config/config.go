/*
Package config loads the server configuration.

PURPOSE:
  Reads a YAML or JSON file into Config, fills defaults, and validates it.
  YAML is converted to JSON first so both formats go through the same strict
  decoder (unknown fields and trailing data are rejected).

EXAMPLE (YAML):
  server:
    addr: ":8080"
    read_timeout: 15s
    cors_origins: ["http://localhost:5173"]
    rate_limit:
      requests_per_second: 20
      burst: 40
  logging:
    level: info
    format: console
  holidays:
    warm_years_ahead: 2
    schedule: "@daily"
  bands:
    Core:
      - {min_employees: 0, max_employees: 29, business_days_offset: 17}

SEE ALSO:
  - manager.go: hot reload with fsnotify
  - factory/bands.go: band table schema
*/
package config

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	yaml "go.yaml.in/yaml/v3"

	"github.com/warp/paperwork-calendar/factory"
	"github.com/warp/paperwork-calendar/payroll"
)

// =============================================================================
// TYPES
// =============================================================================

type Config struct {
	Server   ServerConfig           `json:"server"`
	Logging  LoggingConfig          `json:"logging"`
	Holidays HolidaysConfig         `json:"holidays"`
	Bands    factory.BandTablesJSON `json:"bands,omitempty"`
}

type ServerConfig struct {
	Addr            string          `json:"addr"`
	ReadTimeout     string          `json:"read_timeout,omitempty"`
	WriteTimeout    string          `json:"write_timeout,omitempty"`
	IdleTimeout     string          `json:"idle_timeout,omitempty"`
	ShutdownTimeout string          `json:"shutdown_timeout,omitempty"`
	CORSOrigins     []string        `json:"cors_origins,omitempty"`
	RateLimit       RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig bounds the API request rate. Zero requests_per_second
// disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// HolidaysConfig controls the background holiday cache warmer.
type HolidaysConfig struct {
	WarmYearsAhead int    `json:"warm_years_ahead"`
	Schedule       string `json:"schedule"`
}

// Timeouts are the parsed server durations.
type Timeouts struct {
	Read     time.Duration
	Write    time.Duration
	Idle     time.Duration
	Shutdown time.Duration
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultWarmYearsAhead  = 2
	DefaultWarmSchedule    = "@daily"
)

// Default returns a config that runs without a file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = DefaultAddr
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:8080"}
	}
	if c.Server.RateLimit.RequestsPerSecond > 0 && c.Server.RateLimit.Burst <= 0 {
		c.Server.RateLimit.Burst = int(c.Server.RateLimit.RequestsPerSecond) + 1
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Holidays.WarmYearsAhead <= 0 {
		c.Holidays.WarmYearsAhead = DefaultWarmYearsAhead
	}
	if strings.TrimSpace(c.Holidays.Schedule) == "" {
		c.Holidays.Schedule = DefaultWarmSchedule
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks durations, the rate limit and the band tables.
func (c *Config) Validate() error {
	if _, err := c.Timeouts(); err != nil {
		return err
	}
	if c.Server.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("server.rate_limit.requests_per_second: must be >= 0")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	if _, err := c.BandTables(); err != nil {
		return fmt.Errorf("bands: %w", err)
	}
	return nil
}

// Timeouts parses the server durations, falling back to defaults.
func (c *Config) Timeouts() (Timeouts, error) {
	var (
		t   Timeouts
		err error
	)
	if t.Read, err = ParseDurationOrDefault("server.read_timeout", c.Server.ReadTimeout, DefaultReadTimeout); err != nil {
		return t, err
	}
	if t.Write, err = ParseDurationOrDefault("server.write_timeout", c.Server.WriteTimeout, DefaultWriteTimeout); err != nil {
		return t, err
	}
	if t.Idle, err = ParseDurationOrDefault("server.idle_timeout", c.Server.IdleTimeout, DefaultIdleTimeout); err != nil {
		return t, err
	}
	if t.Shutdown, err = ParseDurationOrDefault("server.shutdown_timeout", c.Server.ShutdownTimeout, DefaultShutdownTimeout); err != nil {
		return t, err
	}
	return t, nil
}

// BandTables returns the validated band tables; models absent from the
// bands section keep their defaults.
func (c *Config) BandTables() (payroll.BandTables, error) {
	return factory.NewBandFactory().FromJSON(c.Bands)
}

// ParseDurationField parses an optional, non-negative duration.
func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", path)
	}
	return d, nil
}

func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	d, err := ParseDurationField(path, raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}

// =============================================================================
// DECODING
// =============================================================================

// Decode parses config bytes; the format is picked from the path extension
// (.yaml / .yml, anything else is JSON). Defaults are applied and the result
// validated.
func Decode(path string, data []byte) (*Config, error) {
	jb, err := coerceToJSONBytes(path, data)
	if err != nil {
		return nil, err
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(jb))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	// reject trailing tokens (e.g. concatenated JSON)
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("invalid config: trailing data")
		}
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func coerceToJSONBytes(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if v == nil {
		return []byte("{}"), nil
	}
	j, err := json.Marshal(factory.NormalizeYAML(v))
	if err != nil {
		return nil, fmt.Errorf("yaml->json marshal: %w", err)
	}
	return j, nil
}
