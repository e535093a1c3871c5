// Package correlation implements the Correlation Engine (spec section
// 4.8): Pearson over aligned reservoir samples (required), optional
// Spearman/Kendall with p-values, deduplicated and strength-classified.
package correlation

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"dataprofiler/domain/profiling"
	"dataprofiler/internal/config"
)

// NumericColumn is one column's reservoir sample. Compute right-pads
// every column with NaN to a common length (AlignColumns) before
// pairwise computation.
type NumericColumn struct {
	Name   string
	Values []float64
}

// Compute builds the wide in-memory matrix (via right-padding, handled
// by AlignColumns) and emits deduplicated Pearson (and optionally
// Spearman/Kendall) results for every eligible pair.
func Compute(columns []NumericColumn, cfg config.ProfilerConfig) []profiling.CorrelationResult {
	if len(columns) > cfg.MaxCorrelationColumns {
		columns = columns[:cfg.MaxCorrelationColumns]
	}
	columns = AlignColumns(columns)

	byKey := make(map[string]profiling.CorrelationResult)

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			xs, ys, n := alignPair(columns[i].Values, columns[j].Values)
			if n < 3 {
				continue
			}

			c1, c2 := canonicalOrder(columns[i].Name, columns[j].Name)
			if c1 != columns[i].Name {
				xs, ys = ys, xs
			}

			r := stat.Correlation(xs, ys, nil)
			considerResult(byKey, c1, c2, r, profiling.MethodPearson, n, pearsonPValue(r, n))

			if cfg.ComputeSpearman {
				rho := spearmanRho(xs, ys)
				considerResult(byKey, c1, c2, rho, profiling.MethodSpearman, n, pearsonPValue(rho, n))
			}

			if cfg.ComputeKendall {
				tau := kendallTau(xs, ys)
				considerResult(byKey, c1, c2, tau, profiling.MethodKendall, n, kendallPValue(tau, n))
			}
		}
	}

	results := make([]profiling.CorrelationResult, 0, len(byKey))
	for _, v := range byKey {
		if math.Abs(v.Coefficient) > cfg.CorrelationMinAbsR && isFinitePValue(v.PValue) {
			results = append(results, v)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Column1 != results[j].Column1 {
			return results[i].Column1 < results[j].Column1
		}
		return results[i].Column2 < results[j].Column2
	})
	return results
}

// considerResult keeps, for each canonical (a,b) key, the entry with the
// largest absolute coefficient across methods (spec section 4.8,
// deduplication).
func considerResult(byKey map[string]profiling.CorrelationResult, c1, c2 string, r float64, method profiling.CorrelationMethod, n int, p *float64) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	key := c1 + "\x00" + c2
	candidate := profiling.CorrelationResult{
		Column1:     c1,
		Column2:     c2,
		Coefficient: r,
		Method:      method,
		Strength:    classifyStrength(r),
		PValue:      p,
		SampleSize:  n,
	}
	existing, ok := byKey[key]
	if !ok || math.Abs(r) > math.Abs(existing.Coefficient) {
		byKey[key] = candidate
	}
}

func classifyStrength(r float64) profiling.Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.9:
		return profiling.StrengthVeryStrong
	case abs >= 0.7:
		return profiling.StrengthStrong
	default:
		return profiling.StrengthModerate
	}
}

// canonicalOrder returns (a,b) lexicographically so every pair collapses
// to one key regardless of input order (spec section 3, invariants).
func canonicalOrder(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

// alignPair drops positions where either column is NaN (the right-pad
// marker for a shorter reservoir), returning only the jointly-observed
// values.
func alignPair(x, y []float64) (xs, ys []float64, n int) {
	limit := len(x)
	if len(y) < limit {
		limit = len(y)
	}
	xs = make([]float64, 0, limit)
	ys = make([]float64, 0, limit)
	for i := 0; i < limit; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys, len(xs)
}

// pearsonPValue computes a two-tailed p-value for a correlation
// coefficient via the standard t-transform and Student's t
// distribution, grounded on gonum/stat/distuv rather than a hand-rolled
// CDF approximation.
func pearsonPValue(r float64, n int) *float64 {
	if n <= 2 {
		return nil
	}
	denom := 1 - r*r
	if denom <= 0 {
		p := 0.0
		return &p
	}
	t := r * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	return &p
}

func isFinitePValue(p *float64) bool {
	if p == nil {
		return true
	}
	return !math.IsNaN(*p) && !math.IsInf(*p, 0)
}

// spearmanRho computes Spearman's rank correlation by ranking both
// series and delegating to gonum's Pearson correlation over the ranks.
func spearmanRho(x, y []float64) float64 {
	return stat.Correlation(rank(x), rank(y), nil)
}

func rank(values []float64) []float64 {
	type idxVal struct {
		idx int
		val float64
	}
	sorted := make([]idxVal, len(values))
	for i, v := range values {
		sorted[i] = idxVal{i, v}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].val < sorted[j].val })

	ranks := make([]float64, len(values))
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && sorted[j].val == sorted[i].val {
			j++
		}
		avgRank := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[sorted[k].idx] = avgRank
		}
		i = j
	}
	return ranks
}

// kendallTau computes Kendall's tau-b over every pair of observations:
// the concordant-minus-discordant fraction, adjusted for ties in either
// series. O(n^2) is acceptable here since n is bounded by the reservoir
// capacity, never by row count.
func kendallTau(x, y []float64) float64 {
	n := len(x)
	var concordant, discordant, tiesX, tiesY int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := x[i] - x[j]
			dy := y[i] - y[j]
			switch {
			case dx == 0 && dy == 0:
				tiesX++
				tiesY++
			case dx == 0:
				tiesX++
			case dy == 0:
				tiesY++
			case (dx > 0) == (dy > 0):
				concordant++
			default:
				discordant++
			}
		}
	}
	total := n * (n - 1) / 2
	denom := math.Sqrt(float64(total-tiesX)) * math.Sqrt(float64(total-tiesY))
	if denom == 0 {
		return 0
	}
	return float64(concordant-discordant) / denom
}

// kendallPValue uses the standard large-sample normal approximation for
// Kendall's tau-b (Kendall & Gibbons), the same approximation scipy's
// kendalltau falls back to when an exact p-value is infeasible.
func kendallPValue(tau float64, n int) *float64 {
	if n < 2 {
		return nil
	}
	z := 3 * tau * math.Sqrt(float64(n*(n-1))) / math.Sqrt(float64(2*(2*n+5)))
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	p := 2 * (1 - dist.CDF(math.Abs(z)))
	return &p
}

// AlignColumns right-pads every column's reservoir to the maximum
// length L = max(len(reservoir_i)) with NaN, per spec section 4.8.
func AlignColumns(columns []NumericColumn) []NumericColumn {
	maxLen := 0
	for _, c := range columns {
		if len(c.Values) > maxLen {
			maxLen = len(c.Values)
		}
	}
	out := make([]NumericColumn, len(columns))
	for i, c := range columns {
		padded := make([]float64, maxLen)
		copy(padded, c.Values)
		for j := len(c.Values); j < maxLen; j++ {
			padded[j] = math.NaN()
		}
		out[i] = NumericColumn{Name: c.Name, Values: padded}
	}
	return out
}
