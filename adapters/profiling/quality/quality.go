// Package quality implements the four-axis Quality Scorer (spec section
// 4.6): completeness, validity, uniqueness, consistency, combined into a
// single weighted overall score plus narrative issues/observations.
package quality

import (
	"dataprofiler/domain/profiling"
)

const (
	weightCompleteness = 0.3
	weightValidity      = 0.3
	weightUniqueness    = 0.2
	weightConsistency   = 0.2
)

// Score derives QualityMetrics from a column's statistics and type
// inference.
func Score(stats profiling.ColumnStatistics, inferred profiling.TypeInference) profiling.QualityMetrics {
	completeness := 100 - stats.NullPct

	validity := inferred.Confidence * 100
	if inferred.InferredType == profiling.TypeInteger || inferred.InferredType == profiling.TypeFloat {
		validity = 100
	}

	uniqueness := stats.Cardinality * 100

	consistency := 100.0
	topPatternPct := 0.0
	if len(stats.DominantPatterns) > 0 {
		topPatternPct = stats.DominantPatterns[0].Percentage
		consistency = topPatternPct
	}

	overall := weightCompleteness*completeness + weightValidity*validity +
		weightUniqueness*uniqueness + weightConsistency*consistency
	overall = clamp(overall, 0, 100)

	qm := profiling.QualityMetrics{
		Completeness: completeness,
		Validity:     validity,
		Uniqueness:   uniqueness,
		Consistency:  consistency,
		OverallScore: overall,
	}

	switch {
	case completeness < 50:
		qm.Issues = append(qm.Issues, "Low completeness")
	case completeness < 90:
		qm.Issues = append(qm.Issues, "Moderate completeness")
	}

	if validity < 95 {
		qm.Issues = append(qm.Issues, "Type inconsistency")
	}

	if stats.Cardinality == 1.0 && stats.Count > 1 {
		qm.Observations = append(qm.Observations, "All values are unique (potential key field)")
	} else if stats.Cardinality < 0.01 && stats.UniqueCount < 100 && stats.Count > 100 {
		qm.Observations = append(qm.Observations, "Low cardinality (likely categorical)")
	}

	if len(stats.DominantPatterns) > 0 && topPatternPct < 50 {
		qm.Observations = append(qm.Observations, "Multiple patterns")
	}

	return qm
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
