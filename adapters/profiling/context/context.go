// Package context implements Context Discovery and the Contextual
// Validator (spec section 4.9): detecting categorical -> numeric
// subgroup patterns and linear correlation patterns, then using them to
// reclassify anomaly candidates that those patterns explain.
package context

import (
	"math"
	"sort"

	"dataprofiler/domain/profiling"
)

// CategoricalColumn is a column eligible to be a segmenting key: string
// dtype, or integer with unique count in [2, 20].
type CategoricalColumn struct {
	Name   string
	Values []string // per-row segment label, aligned with NumericColumn.Values by index
}

// NumericColumn is a column eligible to have its variance explained:
// float, or integer with unique count > 10.
type NumericColumn struct {
	Name   string
	Values []float64
}

const defaultMinSegmentRows = 10

// DiscoverSubgroups computes variance-explained (R²) for every
// (categorical, numeric) pair and emits a SubgroupPattern when it clears
// threshold.
func DiscoverSubgroups(categoricals []CategoricalColumn, numerics []NumericColumn, varianceThreshold float64, minSegmentRows int) []profiling.SubgroupPattern {
	if minSegmentRows <= 0 {
		minSegmentRows = defaultMinSegmentRows
	}

	var patterns []profiling.SubgroupPattern
	for _, cat := range categoricals {
		for _, num := range numerics {
			n := len(cat.Values)
			if len(num.Values) < n {
				n = len(num.Values)
			}

			segments := make(map[string][]float64)
			for i := 0; i < n; i++ {
				segments[cat.Values[i]] = append(segments[cat.Values[i]], num.Values[i])
			}

			r2, segmentStats := varianceExplained(segments, minSegmentRows)
			if math.IsNaN(r2) || r2 < varianceThreshold {
				continue
			}

			patterns = append(patterns, profiling.SubgroupPattern{
				SegmentColumn:     cat.Name,
				ValueColumn:       num.Name,
				VarianceExplained: r2,
				Segments:          segmentStats,
			})
		}
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].VarianceExplained > patterns[j].VarianceExplained
	})
	return patterns
}

// varianceExplained computes R² = 1 - SS_within/SS_total across
// segments with at least minSegmentRows rows, and returns the
// per-segment descriptive stats alongside it.
func varianceExplained(segments map[string][]float64, minSegmentRows int) (float64, []profiling.SegmentStat) {
	var all []float64
	eligible := make(map[string][]float64)
	for seg, vals := range segments {
		if len(vals) < minSegmentRows {
			continue
		}
		eligible[seg] = vals
		all = append(all, vals...)
	}
	if len(eligible) < 2 || len(all) == 0 {
		return math.NaN(), nil
	}

	grandMean := mean(all)
	ssTotal := 0.0
	for _, v := range all {
		d := v - grandMean
		ssTotal += d * d
	}
	if ssTotal == 0 {
		return math.NaN(), nil
	}

	ssWithin := 0.0
	names := make([]string, 0, len(eligible))
	for seg := range eligible {
		names = append(names, seg)
	}
	sort.Strings(names)

	stats := make([]profiling.SegmentStat, 0, len(names))
	for _, seg := range names {
		vals := eligible[seg]
		m := mean(vals)
		for _, v := range vals {
			d := v - m
			ssWithin += d * d
		}
		stats = append(stats, segmentStat(seg, vals))
	}

	r2 := 1 - ssWithin/ssTotal
	return r2, stats
}

func segmentStat(name string, vals []float64) profiling.SegmentStat {
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	m := mean(vals)
	return profiling.SegmentStat{
		Segment: name,
		Count:   len(vals),
		Mean:    m,
		Std:     stddev(vals, m),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Q1:      percentile(sorted, 25),
		Q3:      percentile(sorted, 75),
	}
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func stddev(vals []float64, m float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)))
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// DiscoverCorrelationPatterns fits a simple linear regression (slope,
// intercept, residual std) for numeric pairs whose Pearson |r| >= 0.5,
// for use by the contextual validator's correlation-based explanation
// path.
func DiscoverCorrelationPatterns(numerics []NumericColumn, minAbsR float64) []profiling.CorrelationPattern {
	var out []profiling.CorrelationPattern
	for i := 0; i < len(numerics); i++ {
		for j := i + 1; j < len(numerics); j++ {
			n := len(numerics[i].Values)
			if len(numerics[j].Values) < n {
				n = len(numerics[j].Values)
			}
			if n < 3 {
				continue
			}
			x := numerics[i].Values[:n]
			y := numerics[j].Values[:n]

			r := pearson(x, y)
			if math.Abs(r) < minAbsR {
				continue
			}

			slope, intercept, residualStd := linearFit(x, y)
			out = append(out, profiling.CorrelationPattern{
				Column1:     numerics[i].Name,
				Column2:     numerics[j].Name,
				Slope:       slope,
				Intercept:   intercept,
				ResidualStd: residualStd,
			})
		}
	}
	return out
}

func pearson(x, y []float64) float64 {
	mx, my := mean(x), mean(y)
	var num, dx, dy float64
	for i := range x {
		ddx := x[i] - mx
		ddy := y[i] - my
		num += ddx * ddy
		dx += ddx * ddx
		dy += ddy * ddy
	}
	if dx == 0 || dy == 0 {
		return 0
	}
	return num / math.Sqrt(dx*dy)
}

func linearFit(x, y []float64) (slope, intercept, residualStd float64) {
	mx, my := mean(x), mean(y)
	var num, den float64
	for i := range x {
		num += (x[i] - mx) * (y[i] - my)
		den += (x[i] - mx) * (x[i] - mx)
	}
	if den == 0 {
		return 0, my, 0
	}
	slope = num / den
	intercept = my - slope*mx

	residuals := make([]float64, len(x))
	for i := range x {
		pred := slope*x[i] + intercept
		residuals[i] = y[i] - pred
	}
	residualStd = stddev(residuals, mean(residuals))
	return slope, intercept, residualStd
}
