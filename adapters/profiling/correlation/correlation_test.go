package correlation

import (
	"testing"

	"dataprofiler/internal/config"
)

func TestComputeDetectsStrongPositiveCorrelation(t *testing.T) {
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) * 2
	}
	cols := []NumericColumn{{Name: "a", Values: x}, {Name: "b", Values: y}}

	results := Compute(cols, config.DefaultProfilerConfig())
	if len(results) != 1 {
		t.Fatalf("expected 1 correlation result, got %d", len(results))
	}
	r := results[0]
	if r.Column1 != "a" || r.Column2 != "b" {
		t.Errorf("expected canonical order a,b got %s,%s", r.Column1, r.Column2)
	}
	if r.Coefficient < 0.99 {
		t.Errorf("expected near-perfect correlation, got %f", r.Coefficient)
	}
	if r.Strength != "very_strong" {
		t.Errorf("expected very_strong, got %s", r.Strength)
	}
}

func TestComputeNoSpuriousPairForUncorrelatedData(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{5, 1, 8, 2, 7, 3, 6, 4}
	cols := []NumericColumn{{Name: "a", Values: x}, {Name: "b", Values: y}}

	results := Compute(cols, config.DefaultProfilerConfig())
	for _, r := range results {
		if r.Coefficient > 0.5 || r.Coefficient < -0.5 {
			t.Errorf("did not expect a strong correlation to be emitted for shuffled data, got %+v", r)
		}
	}
}

func TestComputeKendallTauForMonotonicData(t *testing.T) {
	x := make([]float64, 30)
	y := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
		y[i] = float64(i) * 3
	}
	cols := []NumericColumn{{Name: "a", Values: x}, {Name: "b", Values: y}}

	cfg := config.DefaultProfilerConfig()
	cfg.ComputeKendall = true
	cfg.ComputeSpearman = false

	results := Compute(cols, cfg)
	if len(results) != 1 {
		t.Fatalf("expected 1 correlation result, got %d", len(results))
	}
	if results[0].Method != "kendall" {
		t.Errorf("expected kendall to win the dedup since it is the only enabled method, got %s", results[0].Method)
	}
	if results[0].Coefficient < 0.99 {
		t.Errorf("expected near-perfect tau for a strictly monotonic pair, got %f", results[0].Coefficient)
	}
}

func TestCanonicalOrderDeduplication(t *testing.T) {
	c1, c2 := canonicalOrder("zebra", "apple")
	if c1 != "apple" || c2 != "zebra" {
		t.Errorf("expected lexicographic order apple < zebra, got %s,%s", c1, c2)
	}
}
