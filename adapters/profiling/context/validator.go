package context

import (
	"math"

	"dataprofiler/domain/profiling"
)

// OutlierCandidate is a single flagged value awaiting contextual review,
// e.g. a value more than N standard deviations from the column mean.
type OutlierCandidate struct {
	Column    string
	Value     float64
	Segment   string // the categorical segment this row belongs to, if any
	Suspicion float64
}

// Explanation records the contextual validator's verdict on a candidate
// and, when explained, the suspicion score after the downgrade.
type Explanation struct {
	Candidate       OutlierCandidate
	SuspicionAfter  float64
	Explained       bool
	MatchedPatterns int
	Reasons         []string
}

const (
	strongSubgroupMultiplier = 0.2
	weakSubgroupMultiplier   = 0.5
	correlationMultiplier    = 0.5
	outlierSegmentStdFactor  = 2.5
	correlationErrorFactor   = 2.0
)

// ReviewOutlierCandidates implements the two-phase contextual validator
// (spec section 4.9). Phase one checks each candidate against every
// subgroup pattern and correlation pattern that references its column;
// each match multiplies the candidate's suspicion down (0.2 for a
// subgroup pattern with variance explained >= threshold, 0.5 otherwise,
// and 0.5 for a correlation-predicted match), so multiple matches
// compound. Phase two downgrades a candidate from outlier when the
// compounded suspicion drops below varianceThreshold's paired
// suspicionThreshold, or when two or more patterns matched regardless of
// the resulting suspicion value.
func ReviewOutlierCandidates(
	candidates []OutlierCandidate,
	subgroups []profiling.SubgroupPattern,
	correlated []profiling.CorrelationPattern,
	varianceThreshold float64,
	suspicionThreshold float64,
) []Explanation {
	out := make([]Explanation, 0, len(candidates))
	for _, c := range candidates {
		matches := 0
		var reasons []string
		suspicion := 1.0
		if c.Suspicion > 0 {
			suspicion = c.Suspicion
		}

		for _, sg := range subgroups {
			if sg.ValueColumn != c.Column {
				continue
			}
			for _, seg := range sg.Segments {
				if seg.Segment != c.Segment {
					continue
				}
				if math.Abs(c.Value-seg.Mean) <= outlierSegmentStdFactor*seg.Std {
					matches++
					reasons = append(reasons, "within_segment_range:"+sg.SegmentColumn)
					if sg.VarianceExplained >= varianceThreshold {
						suspicion *= strongSubgroupMultiplier
					} else {
						suspicion *= weakSubgroupMultiplier
					}
				}
			}
		}

		for _, cp := range correlated {
			if cp.Column1 != c.Column && cp.Column2 != c.Column {
				continue
			}
			predicted := cp.Slope*c.Value + cp.Intercept
			if math.Abs(c.Value-predicted) <= correlationErrorFactor*cp.ResidualStd {
				matches++
				reasons = append(reasons, "predicted_by_correlation:"+cp.Column1+"/"+cp.Column2)
				suspicion *= correlationMultiplier
			}
		}

		explained := suspicion < suspicionThreshold || matches >= 2

		out = append(out, Explanation{
			Candidate:       c,
			SuspicionAfter:  suspicion,
			Explained:       explained,
			MatchedPatterns: matches,
			Reasons:         reasons,
		})
	}
	return out
}
