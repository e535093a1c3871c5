package typeinfer

import (
	"sort"

	"dataprofiler/domain/profiling"
)

// Tally is the mutable per-column counter of classified values, owned by
// the accumulator and handed to Reconcile at finalize.
type Tally map[profiling.InferredType]int64

// Reconcile turns a type tally plus optional declared type into the
// finalized TypeInference (spec section 4.4).
func Reconcile(tally Tally, typeSampledCount int64, declared *profiling.InferredType, sampleValues []string) profiling.TypeInference {
	if len(tally) == 0 {
		confidence := 0.0
		if declared != nil {
			confidence = 1.0
		}
		return profiling.TypeInference{
			DeclaredType: declared,
			InferredType: profiling.TypeEmpty,
			Confidence:   confidence,
			IsKnown:      declared != nil,
			SampleValues: sampleValues,
		}
	}

	if declared != nil {
		return profiling.TypeInference{
			DeclaredType: declared,
			InferredType: *declared,
			Confidence:   1.0,
			IsKnown:      true,
			SampleValues: sampleValues,
		}
	}

	type pair struct {
		t profiling.InferredType
		n int64
	}
	pairs := make([]pair, 0, len(tally))
	for t, n := range tally {
		pairs = append(pairs, pair{t, n})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].n != pairs[j].n {
			return pairs[i].n > pairs[j].n
		}
		return pairs[i].t < pairs[j].t
	})

	primary := pairs[0]
	confidence := 0.0
	if typeSampledCount > 0 {
		confidence = float64(primary.n) / float64(typeSampledCount)
	}

	var conflicts []profiling.TypeConflict
	for _, p := range pairs[1:] {
		if len(conflicts) >= 3 {
			break
		}
		pct := 0.0
		if typeSampledCount > 0 {
			pct = float64(p.n) / float64(typeSampledCount) * 100
		}
		if pct < 1.0 {
			continue
		}
		conflicts = append(conflicts, profiling.TypeConflict{
			Type:       p.t,
			Count:      p.n,
			Percentage: pct,
		})
	}

	return profiling.TypeInference{
		InferredType: primary.t,
		Confidence:   confidence,
		IsKnown:      false,
		Conflicts:    conflicts,
		SampleValues: sampleValues,
	}
}
