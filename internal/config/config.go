// Package config loads the profiler's tunables from the environment,
// exactly as the teacher's own config package does: an optional .env file
// via godotenv, env vars with sane defaults, and a validation pass.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"dataprofiler/internal/apperr"
)

// ProfilerConfig holds every tunable the spec calls out as configuration
// rather than a hardcoded constant (spec section 9's open questions).
type ProfilerConfig struct {
	// Reservoir/accumulator capacities (spec section 4.3, section 5).
	FrequencyCap   int // K_FREQ
	NumericCap     int // K_NUM
	LengthCap      int // K_LEN
	SampleValueCap int // N_SAMPLE

	// Sampling cadence (spec section 4.3).
	TypeSampleInterval int // classify a subsample every Nth chunk after the first
	TypeSampleMaxBatch int // max values classified per sampled chunk
	FrequencySampleCap int // SAMPLE_FREQ, per-chunk sample size once the map is full
	PatternSampleCap   int // values inspected for structural pattern, first chunk only

	// Memory Governor (spec section 4.2).
	GovernorProbeInterval int     // M, probe every M chunks
	GovernorWarnPercent   float64 // default 75
	GovernorCritPercent   float64 // default 85

	// Correlation Engine (spec section 4.8).
	MaxCorrelationColumns int
	CorrelationMinAbsR    float64 // emission threshold, default 0.5
	ComputeSpearman       bool
	ComputeKendall        bool

	// Context Discovery (spec section 4.9).
	VarianceExplainedThreshold float64 // default 0.20
	MinSegmentRows             int     // default 10
	SuspicionThreshold         float64 // default 0.5

	// Taxonomy scoring thresholds (spec section 4.7). The semantic tagger
	// does not read these; it uses its own package constants of the same
	// values.
	FinanceTaxonomyThreshold   float64
	SchemaOrgTaxonomyThreshold float64
	WikidataTaxonomyThreshold  float64

	// Determinism (spec section 5).
	RandomSeed int64
}

// DefaultProfilerConfig returns the spec's stated defaults.
func DefaultProfilerConfig() ProfilerConfig {
	return ProfilerConfig{
		FrequencyCap:   10000,
		NumericCap:     5000,
		LengthCap:      5000,
		SampleValueCap: 100,

		TypeSampleInterval: 10,
		TypeSampleMaxBatch: 1000,
		FrequencySampleCap: 10000,
		PatternSampleCap:   100,

		GovernorProbeInterval: 10,
		GovernorWarnPercent:   75.0,
		GovernorCritPercent:   85.0,

		MaxCorrelationColumns: 20,
		CorrelationMinAbsR:    0.5,
		ComputeSpearman:       true,
		ComputeKendall:        false,

		VarianceExplainedThreshold: 0.20,
		MinSegmentRows:             10,
		SuspicionThreshold:         0.5,

		FinanceTaxonomyThreshold:   0.50,
		SchemaOrgTaxonomyThreshold: 0.50,
		WikidataTaxonomyThreshold:  0.55,

		RandomSeed: 42,
	}
}

// Load reads a ProfilerConfig from the environment, loading an optional
// .env file first (ignored if absent) the same way the teacher's main.go
// does before internal/config.Load.
func Load() (ProfilerConfig, error) {
	_ = godotenv.Load()

	cfg := DefaultProfilerConfig()

	cfg.FrequencyCap = getEnvIntOrDefault("PROFILER_K_FREQ", cfg.FrequencyCap)
	cfg.NumericCap = getEnvIntOrDefault("PROFILER_K_NUM", cfg.NumericCap)
	cfg.LengthCap = getEnvIntOrDefault("PROFILER_K_LEN", cfg.LengthCap)
	cfg.SampleValueCap = getEnvIntOrDefault("PROFILER_N_SAMPLE", cfg.SampleValueCap)

	cfg.TypeSampleInterval = getEnvIntOrDefault("PROFILER_TYPE_SAMPLE_INTERVAL", cfg.TypeSampleInterval)
	cfg.TypeSampleMaxBatch = getEnvIntOrDefault("PROFILER_TYPE_SAMPLE_MAX_BATCH", cfg.TypeSampleMaxBatch)
	cfg.FrequencySampleCap = getEnvIntOrDefault("PROFILER_FREQ_SAMPLE_CAP", cfg.FrequencySampleCap)
	cfg.PatternSampleCap = getEnvIntOrDefault("PROFILER_PATTERN_SAMPLE_CAP", cfg.PatternSampleCap)

	cfg.GovernorProbeInterval = getEnvIntOrDefault("PROFILER_GOVERNOR_PROBE_INTERVAL", cfg.GovernorProbeInterval)
	cfg.GovernorWarnPercent = getEnvFloatOrDefault("PROFILER_GOVERNOR_WARN_PCT", cfg.GovernorWarnPercent)
	cfg.GovernorCritPercent = getEnvFloatOrDefault("PROFILER_GOVERNOR_CRIT_PCT", cfg.GovernorCritPercent)

	cfg.MaxCorrelationColumns = getEnvIntOrDefault("PROFILER_MAX_CORRELATION_COLUMNS", cfg.MaxCorrelationColumns)
	cfg.CorrelationMinAbsR = getEnvFloatOrDefault("PROFILER_CORRELATION_MIN_ABS_R", cfg.CorrelationMinAbsR)
	cfg.ComputeSpearman = getEnvBoolOrDefault("PROFILER_COMPUTE_SPEARMAN", cfg.ComputeSpearman)
	cfg.ComputeKendall = getEnvBoolOrDefault("PROFILER_COMPUTE_KENDALL", cfg.ComputeKendall)

	cfg.VarianceExplainedThreshold = getEnvFloatOrDefault("PROFILER_VARIANCE_EXPLAINED_THRESHOLD", cfg.VarianceExplainedThreshold)
	cfg.MinSegmentRows = getEnvIntOrDefault("PROFILER_MIN_SEGMENT_ROWS", cfg.MinSegmentRows)
	cfg.SuspicionThreshold = getEnvFloatOrDefault("PROFILER_SUSPICION_THRESHOLD", cfg.SuspicionThreshold)

	cfg.FinanceTaxonomyThreshold = getEnvFloatOrDefault("PROFILER_FINANCE_THRESHOLD", cfg.FinanceTaxonomyThreshold)
	cfg.SchemaOrgTaxonomyThreshold = getEnvFloatOrDefault("PROFILER_SCHEMAORG_THRESHOLD", cfg.SchemaOrgTaxonomyThreshold)
	cfg.WikidataTaxonomyThreshold = getEnvFloatOrDefault("PROFILER_WIKIDATA_THRESHOLD", cfg.WikidataTaxonomyThreshold)

	seed := getEnvIntOrDefault("PROFILER_SEED", int(cfg.RandomSeed))
	cfg.RandomSeed = int64(seed)

	if err := validate(cfg); err != nil {
		return ProfilerConfig{}, apperr.Wrap(err, "configuration validation failed")
	}

	return cfg, nil
}

func validate(cfg ProfilerConfig) error {
	if cfg.FrequencyCap <= 0 || cfg.NumericCap <= 0 || cfg.LengthCap <= 0 || cfg.SampleValueCap <= 0 {
		return apperr.New(apperr.CodeInternal, "reservoir capacities must be positive")
	}
	if cfg.GovernorWarnPercent <= 0 || cfg.GovernorCritPercent <= cfg.GovernorWarnPercent {
		return apperr.New(apperr.CodeInternal, "governor critical threshold must exceed warn threshold")
	}
	if cfg.MaxCorrelationColumns <= 0 {
		return apperr.New(apperr.CodeInternal, "max correlation columns must be positive")
	}
	return nil
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

