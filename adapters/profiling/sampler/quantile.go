package sampler

import (
	"github.com/montanaflynn/stats"
)

// QuantileTracker computes approximate quantiles over a reservoir
// sample. It is "approximate" in the same sense the reservoir itself is:
// the quantiles are exact over the sample, approximate over the full
// stream once the reservoir is saturated.
type QuantileTracker struct {
	data []float64
}

// NewQuantileTracker wraps a reservoir's current contents for quantile
// queries. The caller must not mutate values after construction.
func NewQuantileTracker(values []float64) *QuantileTracker {
	return &QuantileTracker{data: values}
}

// Quantile returns the p-th percentile (0 < p < 100), or (0, false) if
// the underlying sample is empty or the percentile library rejects it.
func (q *QuantileTracker) Quantile(p float64) (float64, bool) {
	if len(q.data) == 0 {
		return 0, false
	}
	v, err := stats.Percentile(q.data, p)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Median returns the 50th percentile.
func (q *QuantileTracker) Median() (float64, bool) {
	if len(q.data) == 0 {
		return 0, false
	}
	v, err := stats.Median(q.data)
	if err != nil {
		return 0, false
	}
	return v, true
}
