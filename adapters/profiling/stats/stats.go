// Package stats implements the Statistics Calculator: it finalizes a
// ColumnAccumulator plus its TypeInference into an immutable
// ColumnStatistics record (spec section 4.5).
package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"dataprofiler/adapters/profiling/accumulator"
	"dataprofiler/domain/profiling"
)

const numericSurvivalThreshold = 0.5

// Calculate derives ColumnStatistics from a finalized accumulator and its
// type inference verdict.
func Calculate(acc *accumulator.ColumnAccumulator, inferred profiling.TypeInference) profiling.ColumnStatistics {
	nonNull := acc.TotalProcessed - acc.NullCount

	cs := profiling.ColumnStatistics{
		Count:     acc.TotalProcessed,
		NullCount: acc.NullCount,
	}
	if acc.TotalProcessed > 0 {
		cs.NullPct = float64(acc.NullCount) / float64(acc.TotalProcessed) * 100
	}

	uniqueCount, strategy := cardinality(acc, nonNull)
	cs.UniqueCount = uniqueCount
	cs.SamplingStrategy = strategy
	if nonNull > 0 {
		cs.UniquePct = float64(uniqueCount) / float64(nonNull) * 100
		cs.Cardinality = float64(uniqueCount) / float64(nonNull)
	}

	if inferred.InferredType == profiling.TypeInteger || inferred.InferredType == profiling.TypeFloat {
		computeNumericStats(&cs, acc)
	}

	computeFrequencyStats(&cs, acc, nonNull)
	computeLengthStats(&cs, acc)
	computePatternStats(&cs, acc)

	return cs
}

func computeNumericStats(cs *profiling.ColumnStatistics, acc *accumulator.ColumnAccumulator) {
	raw := acc.NumericReservoir.Items()
	if len(raw) == 0 {
		return
	}

	filtered := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsInf(v, 0) && !math.IsNaN(v) && math.Abs(v) < 1e100 {
			filtered = append(filtered, v)
		}
	}

	survival := float64(len(filtered)) / float64(len(raw))
	if survival < numericSurvivalThreshold {
		return
	}

	mean, err := stats.Mean(filtered)
	if err != nil {
		return
	}
	median, err := stats.Median(filtered)
	if err != nil {
		return
	}
	std, err := stats.StandardDeviation(filtered)
	if err != nil {
		return
	}
	mn, err := stats.Min(filtered)
	if err != nil {
		return
	}
	mx, err := stats.Max(filtered)
	if err != nil {
		return
	}
	q1, err := stats.Percentile(filtered, 25)
	if err != nil {
		return
	}
	q3, err := stats.Percentile(filtered, 75)
	if err != nil {
		return
	}

	cs.Min = ptr(mn)
	cs.Max = ptr(mx)
	cs.Mean = ptr(mean)
	cs.Median = ptr(median)
	cs.Std = ptr(std)
	cs.Q1 = ptr(q1)
	cs.Q2 = ptr(median)
	cs.Q3 = ptr(q3)
}

func computeFrequencyStats(cs *profiling.ColumnStatistics, acc *accumulator.ColumnAccumulator, nonNull int64) {
	if len(acc.ValueFreq) == 0 || nonNull == 0 {
		return
	}

	type vc struct {
		value string
		count int64
	}
	entries := make([]vc, 0, len(acc.ValueFreq))
	for v, c := range acc.ValueFreq {
		entries = append(entries, vc{v, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].value < entries[j].value
	})

	cs.Mode = ptr(entries[0].value)
	cs.ModeFrequency = entries[0].count

	top := entries
	if len(top) > 10 {
		top = top[:10]
	}
	cs.TopValues = make([]profiling.ValueCount, 0, len(top))
	for _, e := range top {
		cs.TopValues = append(cs.TopValues, profiling.ValueCount{
			Value:      e.value,
			Count:      e.count,
			Percentage: float64(e.count) / float64(nonNull) * 100,
		})
	}
}

func computeLengthStats(cs *profiling.ColumnStatistics, acc *accumulator.ColumnAccumulator) {
	lengths := acc.LengthReservoir.Items()
	if len(lengths) == 0 {
		return
	}
	minL, maxL := lengths[0], lengths[0]
	sum := 0
	for _, l := range lengths {
		if l < minL {
			minL = l
		}
		if l > maxL {
			maxL = l
		}
		sum += l
	}
	avg := float64(sum) / float64(len(lengths))
	cs.MinLength = &minL
	cs.MaxLength = &maxL
	cs.AvgLength = &avg
}

func computePatternStats(cs *profiling.ColumnStatistics, acc *accumulator.ColumnAccumulator) {
	if len(acc.PatternTally) == 0 {
		return
	}
	sampleTotal := int64(0)
	for _, c := range acc.PatternTally {
		sampleTotal += c
	}
	if sampleTotal == 0 {
		return
	}

	type pc struct {
		pattern string
		count   int64
	}
	entries := make([]pc, 0, len(acc.PatternTally))
	for p, c := range acc.PatternTally {
		entries = append(entries, pc{p, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].pattern < entries[j].pattern
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}
	cs.DominantPatterns = make([]profiling.PatternCount, 0, len(entries))
	for _, e := range entries {
		cs.DominantPatterns = append(cs.DominantPatterns, profiling.PatternCount{
			Pattern:    e.pattern,
			Count:      e.count,
			Percentage: float64(e.count) / float64(sampleTotal) * 100,
		})
	}
}

// cardinality estimates the unique non-null value count and discloses
// the strategy used to reach it (spec section 4.5): the exact size of
// the frequency map while that map never saturated, otherwise the
// HyperLogLog estimate (available for every column).
func cardinality(acc *accumulator.ColumnAccumulator, nonNull int64) (int64, string) {
	if nonNull == 0 {
		return 0, "Analyzed all 0 rows"
	}

	est := acc.EstimateCardinality()
	if !acc.FreqCapHit {
		// The tracked frequency map never saturated, so it holds an
		// exact count of distinct values and is more trustworthy than
		// the probabilistic estimate for small cardinalities.
		if int64(len(acc.ValueFreq)) <= nonNull {
			return int64(len(acc.ValueFreq)), "Analyzed all rows (exact frequency map)"
		}
	}

	if est > 0 {
		return int64(est), "Estimated via HyperLogLog over all streamed values"
	}

	// Fall back to extrapolation from the saturated frequency map.
	sampleRate := float64(len(acc.ValueFreq)) / float64(nonNull)
	if sampleRate <= 0 {
		sampleRate = 1
	}
	extrapolated := int64(float64(len(acc.ValueFreq)) / sampleRate)
	return extrapolated, "Sampled frequency map extrapolated by 1/sample_rate"
}

func ptr[T any](v T) *T { return &v }
