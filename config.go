package trawl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// Config holds configuration for a crawl manager.
type Config struct {
	// Spider is the default spider scheduled when a parameter set does
	// not name one.
	Spider string `yaml:"spider"`

	// SpiderArgs are default spider arguments merged under each job's
	// own arguments before submission.
	SpiderArgs map[string]any `yaml:"spider_args"`

	// JobSettings are default platform job settings merged under each
	// job's own settings override.
	JobSettings map[string]string `yaml:"job_settings"`

	// Units is the default resource unit count per job. Zero means
	// platform default.
	Units int `yaml:"units"`

	// ProjectID is the platform project jobs are submitted to.
	ProjectID string `yaml:"project_id"`

	// MaxRunningJobs caps how many jobs may be in flight at once.
	MaxRunningJobs int `yaml:"max_running_jobs"`

	// MaxTotalJobs bounds the total number of jobs scheduled over the
	// manager's lifetime. It also sizes the dedup membership filter.
	MaxTotalJobs int `yaml:"max_total_jobs"`

	// FilterErrorRate is the membership filter's target false-positive
	// rate. False positives skip a legitimately new job; false negatives
	// cannot occur.
	FilterErrorRate float64 `yaml:"filter_error_rate"`

	// LoopSchedule is the control-loop cadence: a standard 5-field cron
	// expression or a descriptor like "@every 90s".
	LoopSchedule string `yaml:"loop_schedule"`

	// FailedOutcomes overrides the outcomes treated as failures.
	// Empty means DefaultFailedOutcomes.
	FailedOutcomes []Outcome `yaml:"failed_outcomes"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxRunningJobs:  1,
		MaxTotalJobs:    1_000_000,
		FilterErrorRate: 0.001,
		LoopSchedule:    "@every 2m",
	}
}

// LoadConfig reads a YAML (or JSON; YAML is a superset) config file.
// Unknown fields are rejected so typos fail fast at startup.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("trawl: read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := UnmarshalConfig(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("trawl: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UnmarshalConfig decodes YAML config bytes into cfg with strict
// unknown-field checking, then validates.
func UnmarshalConfig(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Validate checks the config for values the manager cannot run with.
func (c Config) Validate() error {
	if c.MaxRunningJobs < 1 {
		return fmt.Errorf("%w: max_running_jobs must be >= 1, got %d", ErrInvalidConfig, c.MaxRunningJobs)
	}
	if c.MaxTotalJobs < 1 {
		return fmt.Errorf("%w: max_total_jobs must be >= 1, got %d", ErrInvalidConfig, c.MaxTotalJobs)
	}
	if c.FilterErrorRate <= 0 || c.FilterErrorRate >= 1 {
		return fmt.Errorf("%w: filter_error_rate must be in (0, 1), got %g", ErrInvalidConfig, c.FilterErrorRate)
	}
	if c.Units < 0 {
		return fmt.Errorf("%w: units must be >= 0, got %d", ErrInvalidConfig, c.Units)
	}
	return nil
}

// FailedOutcomeSet returns the effective failed-outcome set.
func (c Config) FailedOutcomeSet() OutcomeSet {
	if len(c.FailedOutcomes) == 0 {
		return DefaultFailedOutcomes()
	}
	return NewOutcomeSet(c.FailedOutcomes...)
}
