package context

import "testing"

func TestDiscoverSubgroupsFindsExplainedVariance(t *testing.T) {
	var cats []string
	var vals []float64
	for i := 0; i < 20; i++ {
		cats = append(cats, "A")
		vals = append(vals, 100+float64(i%3))
	}
	for i := 0; i < 20; i++ {
		cats = append(cats, "B")
		vals = append(vals, 10+float64(i%3))
	}

	patterns := DiscoverSubgroups(
		[]CategoricalColumn{{Name: "segment", Values: cats}},
		[]NumericColumn{{Name: "amount", Values: vals}},
		0.20, 10,
	)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 subgroup pattern, got %d", len(patterns))
	}
	if patterns[0].VarianceExplained < 0.9 {
		t.Errorf("expected near-total variance explained by segment, got %f", patterns[0].VarianceExplained)
	}
	if len(patterns[0].Segments) != 2 {
		t.Errorf("expected 2 segments, got %d", len(patterns[0].Segments))
	}
}

func TestDiscoverSubgroupsSkipsSmallSegments(t *testing.T) {
	cats := []string{"A", "A", "A", "B", "B", "B", "B", "B", "B", "B", "B", "B", "B", "B"}
	vals := []float64{1, 2, 3, 10, 11, 12, 13, 10, 11, 12, 13, 10, 11, 12}

	patterns := DiscoverSubgroups(
		[]CategoricalColumn{{Name: "segment", Values: cats}},
		[]NumericColumn{{Name: "amount", Values: vals}},
		0.20, 10,
	)
	if len(patterns) != 0 {
		t.Errorf("expected segment A (3 rows) to be excluded, leaving only 1 eligible segment and no pattern, got %d", len(patterns))
	}
}

func TestDiscoverCorrelationPatternsFitsLine(t *testing.T) {
	x := make([]float64, 30)
	y := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
		y[i] = 3*float64(i) + 5
	}
	patterns := DiscoverCorrelationPatterns([]NumericColumn{{Name: "x", Values: x}, {Name: "y", Values: y}}, 0.5)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 correlation pattern, got %d", len(patterns))
	}
	p := patterns[0]
	if p.Slope < 2.9 || p.Slope > 3.1 {
		t.Errorf("expected slope near 3, got %f", p.Slope)
	}
	if p.Intercept < 4.9 || p.Intercept > 5.1 {
		t.Errorf("expected intercept near 5, got %f", p.Intercept)
	}
	if p.ResidualStd > 0.01 {
		t.Errorf("expected near-zero residual std for a perfect line, got %f", p.ResidualStd)
	}
}
