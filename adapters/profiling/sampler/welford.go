package sampler

import "math"

// Welford computes a running mean and variance in one pass without
// storing any values, using Welford's online algorithm.
type Welford struct {
	count int64
	mean  float64
	m2    float64
	min   float64
	max   float64
}

// NewWelford builds an empty accumulator.
func NewWelford() *Welford {
	return &Welford{min: math.Inf(1), max: math.Inf(-1)}
}

// Add folds one more observation into the running statistics.
func (w *Welford) Add(x float64) {
	w.count++
	delta := x - w.mean
	w.mean += delta / float64(w.count)
	delta2 := x - w.mean
	w.m2 += delta * delta2
	if x < w.min {
		w.min = x
	}
	if x > w.max {
		w.max = x
	}
}

// Count returns the number of observations folded in.
func (w *Welford) Count() int64 { return w.count }

// Mean returns the running mean.
func (w *Welford) Mean() float64 { return w.mean }

// Variance returns the population variance (divide by n, not n-1),
// matching the statistics calculator's single-pass descriptive stats.
func (w *Welford) Variance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count)
}

// StdDev returns the population standard deviation.
func (w *Welford) StdDev() float64 {
	return math.Sqrt(w.Variance())
}

// Min returns the smallest observation added, or +Inf if none were added.
func (w *Welford) Min() float64 { return w.min }

// Max returns the largest observation added, or -Inf if none were added.
func (w *Welford) Max() float64 { return w.max }
