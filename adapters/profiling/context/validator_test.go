package context

import (
	"testing"

	"dataprofiler/domain/profiling"
)

func TestReviewOutlierCandidatesDowngradesWithinSegment(t *testing.T) {
	subgroups := []profiling.SubgroupPattern{{
		SegmentColumn:     "region",
		ValueColumn:       "price",
		VarianceExplained: 0.5,
		Segments: []profiling.SegmentStat{
			{Segment: "west", Mean: 1000, Std: 50},
		},
	}}
	correlated := []profiling.CorrelationPattern{{
		Column1: "price", Column2: "cost", Slope: 1.0, Intercept: 0, ResidualStd: 10,
	}}

	candidates := []OutlierCandidate{
		{Column: "price", Value: 1040, Segment: "west", Suspicion: 0.9},
	}

	results := ReviewOutlierCandidates(candidates, subgroups, correlated, 0.20, 0.5)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].MatchedPatterns < 1 {
		t.Errorf("expected at least 1 matched pattern, got %d", results[0].MatchedPatterns)
	}
	if results[0].SuspicionAfter >= candidates[0].Suspicion {
		t.Errorf("expected suspicion to be downgraded, got %f from %f", results[0].SuspicionAfter, candidates[0].Suspicion)
	}
}

func TestReviewOutlierCandidatesLeavesUnexplainedAlone(t *testing.T) {
	candidates := []OutlierCandidate{{Column: "price", Value: 99999, Segment: "nowhere", Suspicion: 0.95}}
	results := ReviewOutlierCandidates(candidates, nil, nil, 0.20, 0.5)
	if results[0].Explained {
		t.Error("expected candidate with no matching pattern to remain unexplained")
	}
	if results[0].SuspicionAfter != candidates[0].Suspicion {
		t.Error("expected suspicion to be unchanged when no pattern matches")
	}
}
