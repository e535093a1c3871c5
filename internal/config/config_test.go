package config

import (
	"os"
	"testing"
)

func TestDefaultProfilerConfigIsValid(t *testing.T) {
	cfg := DefaultProfilerConfig()
	if err := validate(cfg); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
}

func TestLoadAppliesEnvOverride(t *testing.T) {
	os.Setenv("PROFILER_K_FREQ", "2500")
	os.Setenv("PROFILER_SEED", "7")
	defer os.Unsetenv("PROFILER_K_FREQ")
	defer os.Unsetenv("PROFILER_SEED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FrequencyCap != 2500 {
		t.Errorf("expected FrequencyCap 2500, got %d", cfg.FrequencyCap)
	}
	if cfg.RandomSeed != 7 {
		t.Errorf("expected RandomSeed 7, got %d", cfg.RandomSeed)
	}
}

func TestValidateRejectsGovernorOrdering(t *testing.T) {
	cfg := DefaultProfilerConfig()
	cfg.GovernorWarnPercent = 90
	cfg.GovernorCritPercent = 80
	if err := validate(cfg); err == nil {
		t.Error("expected error when critical threshold does not exceed warn threshold")
	}
}
