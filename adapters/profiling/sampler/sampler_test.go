package sampler

import (
	"math/rand"
	"testing"
)

func TestReservoirCapacityBound(t *testing.T) {
	r := NewReservoir[int](10, rand.New(rand.NewSource(42)))
	for i := 0; i < 10000; i++ {
		r.Add(i)
	}
	if r.Len() != 10 {
		t.Fatalf("expected reservoir length 10, got %d", r.Len())
	}
	if r.Seen() != 10000 {
		t.Fatalf("expected seen count 10000, got %d", r.Seen())
	}
}

func TestReservoirUnderCapacity(t *testing.T) {
	r := NewReservoir[int](100, rand.New(rand.NewSource(1)))
	for i := 0; i < 5; i++ {
		r.Add(i)
	}
	if r.Len() != 5 {
		t.Fatalf("expected reservoir length 5, got %d", r.Len())
	}
}

func TestReservoirDeterministicWithSeed(t *testing.T) {
	build := func() []int {
		r := NewReservoir[int](5, rand.New(rand.NewSource(99)))
		for i := 0; i < 1000; i++ {
			r.Add(i)
		}
		out := make([]int, len(r.Items()))
		copy(out, r.Items())
		return out
	}
	a := build()
	b := build()
	if len(a) != len(b) {
		t.Fatalf("length mismatch")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical reservoir contents with same seed, diverged at %d", i)
		}
	}
}

func TestWelfordMeanAndStdDev(t *testing.T) {
	w := NewWelford()
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		w.Add(v)
	}
	if math := w.Mean(); math < 4.999 || math > 5.001 {
		t.Errorf("expected mean ~5, got %f", math)
	}
	if w.StdDev() < 1.99 || w.StdDev() > 2.01 {
		t.Errorf("expected stddev ~2, got %f", w.StdDev())
	}
}

func TestQuantileTrackerMedian(t *testing.T) {
	qt := NewQuantileTracker([]float64{1, 2, 3, 4, 5})
	med, ok := qt.Median()
	if !ok || med != 3 {
		t.Errorf("expected median 3, got %f ok=%v", med, ok)
	}
}

func TestHyperLogLogEstimateWithinTolerance(t *testing.T) {
	hll := NewHyperLogLog(14)
	const n = 100000
	for i := 0; i < n; i++ {
		hll.Add(randomishKey(i))
	}
	est := hll.Estimate()
	lower := uint64(float64(n) * 0.9)
	upper := uint64(float64(n) * 1.1)
	if est < lower || est > upper {
		t.Errorf("expected estimate within 10%% of %d, got %d", n, est)
	}
}

func randomishKey(i int) string {
	return string(rune('a'+i%26)) + string(rune('A'+(i/26)%26)) + string(rune(i))
}
