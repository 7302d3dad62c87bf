package trawl_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xraph/trawl"
)

func TestDefaultConfig(t *testing.T) {
	cfg := trawl.DefaultConfig()

	if cfg.MaxRunningJobs != 1 {
		t.Errorf("MaxRunningJobs = %d, want 1", cfg.MaxRunningJobs)
	}
	if cfg.MaxTotalJobs != 1_000_000 {
		t.Errorf("MaxTotalJobs = %d, want 1000000", cfg.MaxTotalJobs)
	}
	if cfg.FilterErrorRate != 0.001 {
		t.Errorf("FilterErrorRate = %g, want 0.001", cfg.FilterErrorRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trawl.yaml")
	doc := `
spider: products
spider_args:
  region: eu
  depth: 2
job_settings:
  DOWNLOAD_DELAY: "1"
units: 4
max_running_jobs: 8
loop_schedule: "@every 30s"
failed_outcomes: [failed, cancelled]
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := trawl.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Spider != "products" {
		t.Errorf("Spider = %q", cfg.Spider)
	}
	if cfg.SpiderArgs["region"] != "eu" {
		t.Errorf("SpiderArgs = %v", cfg.SpiderArgs)
	}
	if cfg.MaxRunningJobs != 8 {
		t.Errorf("MaxRunningJobs = %d, want 8", cfg.MaxRunningJobs)
	}
	// Unset fields keep their defaults.
	if cfg.MaxTotalJobs != 1_000_000 {
		t.Errorf("MaxTotalJobs = %d, want default", cfg.MaxTotalJobs)
	}
	set := cfg.FailedOutcomeSet()
	if !set.Contains(trawl.OutcomeCancelled) || set.Contains(trawl.OutcomeKilledByOOM) {
		t.Errorf("failed outcome override not applied: %v", cfg.FailedOutcomes)
	}
}

func TestUnmarshalConfigRejectsUnknownFields(t *testing.T) {
	cfg := trawl.DefaultConfig()
	err := trawl.UnmarshalConfig([]byte("spidre: products\n"), &cfg)
	if err == nil {
		t.Fatal("misspelled field accepted")
	}
}

func TestUnmarshalConfigEmptyDocumentKeepsDefaults(t *testing.T) {
	cfg := trawl.DefaultConfig()
	if err := trawl.UnmarshalConfig(nil, &cfg); err != nil {
		t.Fatalf("UnmarshalConfig error: %v", err)
	}
	if cfg.MaxRunningJobs != 1 {
		t.Errorf("MaxRunningJobs = %d, defaults must survive", cfg.MaxRunningJobs)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*trawl.Config)
	}{
		{"zero max_running_jobs", func(c *trawl.Config) { c.MaxRunningJobs = 0 }},
		{"zero max_total_jobs", func(c *trawl.Config) { c.MaxTotalJobs = 0 }},
		{"zero filter_error_rate", func(c *trawl.Config) { c.FilterErrorRate = 0 }},
		{"filter_error_rate of one", func(c *trawl.Config) { c.FilterErrorRate = 1 }},
		{"negative units", func(c *trawl.Config) { c.Units = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := trawl.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, trawl.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultFailedOutcomes(t *testing.T) {
	set := trawl.DefaultFailedOutcomes()
	for _, o := range []trawl.Outcome{
		trawl.OutcomeFailed,
		trawl.OutcomeKilledByOOM,
		trawl.OutcomeCancelled,
		trawl.OutcomeMemusageExceeded,
	} {
		if !set.Contains(o) {
			t.Errorf("%q missing from default failed set", o)
		}
	}
	if set.Contains(trawl.OutcomeFinished) {
		t.Error("finished counted as failure")
	}
}
