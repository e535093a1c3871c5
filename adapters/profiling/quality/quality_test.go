package quality

import (
	"testing"

	"dataprofiler/domain/profiling"
)

func TestScoreOverallWithinBounds(t *testing.T) {
	stats := profiling.ColumnStatistics{
		NullPct:     2,
		Cardinality: 1.0,
		Count:       1000,
		UniqueCount: 1000,
	}
	inferred := profiling.TypeInference{InferredType: profiling.TypeInteger, Confidence: 1.0}

	qm := Score(stats, inferred)
	if qm.OverallScore < 0 || qm.OverallScore > 100 {
		t.Fatalf("expected overall score in [0,100], got %f", qm.OverallScore)
	}

	expected := 0.3*(100-stats.NullPct) + 0.3*100 + 0.2*100 + 0.2*100
	if diff := qm.OverallScore - expected; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("expected overall score %f, got %f", expected, qm.OverallScore)
	}
}

func TestScoreLowCardinalityObservation(t *testing.T) {
	stats := profiling.ColumnStatistics{
		NullPct:     0,
		Cardinality: 0.0003,
		Count:       10000,
		UniqueCount: 3,
	}
	inferred := profiling.TypeInference{InferredType: profiling.TypeString, Confidence: 1.0}

	qm := Score(stats, inferred)
	found := false
	for _, obs := range qm.Observations {
		if obs == "Low cardinality (likely categorical)" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected low cardinality observation, got %+v", qm.Observations)
	}
	for _, issue := range qm.Issues {
		if issue == "Low cardinality (likely categorical)" {
			t.Error("low cardinality must be an observation, not an issue")
		}
	}
}

func TestScoreCompletenessIssueThresholds(t *testing.T) {
	low := Score(profiling.ColumnStatistics{NullPct: 60}, profiling.TypeInference{InferredType: profiling.TypeString})
	if len(low.Issues) == 0 || low.Issues[0] != "Low completeness" {
		t.Errorf("expected Low completeness issue, got %+v", low.Issues)
	}

	moderate := Score(profiling.ColumnStatistics{NullPct: 20}, profiling.TypeInference{InferredType: profiling.TypeString})
	if len(moderate.Issues) == 0 || moderate.Issues[0] != "Moderate completeness" {
		t.Errorf("expected Moderate completeness issue, got %+v", moderate.Issues)
	}
}
