package accumulator

import (
	"math/rand"
	"strconv"

	"dataprofiler/adapters/profiling/sampler"
	"dataprofiler/adapters/profiling/typeinfer"
	"dataprofiler/domain/chunk"
	"dataprofiler/domain/profiling"
	"dataprofiler/internal/apperr"
	"dataprofiler/internal/config"
)

// ColumnAccumulator holds the per-column online state the profiler
// mutates chunk by chunk, then consumes (moves) into derived results at
// finalize (spec section 3, "Ownership").
type ColumnAccumulator struct {
	Name         string
	DeclaredType *chunk.ValueType
	Advice       Advice

	TotalProcessed int64

	NullCount              int64
	WhitespaceNullCount    int64
	PlaceholderNullCounts  map[string]int64

	TypeTally        typeinfer.Tally
	TypeSampledCount int64

	ValueFreq  map[string]int64
	FreqCapHit bool

	NumericReservoir *sampler.Reservoir[float64]
	LengthReservoir  *sampler.Reservoir[int]

	PatternTally        map[string]int64
	patternSamplesTaken int

	SampleValues []string

	hll *sampler.HyperLogLog

	chunkIndex int64
	rng        *rand.Rand
	cfg        config.ProfilerConfig
}

// New builds an empty accumulator for one column. seed must be the same
// caller-supplied seed used for every other column so reservoir contents
// are reproducible run to run (spec section 5).
func New(name string, cfg config.ProfilerConfig, seed int64) *ColumnAccumulator {
	advice := Advise(name)

	numCap := advice.RecommendedSampleSize
	if numCap > cfg.NumericCap {
		numCap = cfg.NumericCap
	}
	lenCap := advice.RecommendedSampleSize
	if lenCap > cfg.LengthCap {
		lenCap = cfg.LengthCap
	}

	rng := rand.New(rand.NewSource(seed))
	return &ColumnAccumulator{
		Name:                  name,
		Advice:                advice,
		PlaceholderNullCounts: make(map[string]int64),
		TypeTally:             make(typeinfer.Tally),
		ValueFreq:             make(map[string]int64),
		NumericReservoir:      sampler.NewReservoir[float64](numCap, rng),
		LengthReservoir:       sampler.NewReservoir[int](lenCap, rng),
		PatternTally:          make(map[string]int64),
		hll:                   sampler.NewHyperLogLog(14),
		rng:                   rng,
		cfg:                   cfg,
	}
}

// Update folds one chunk's worth of values for this column into the
// accumulator, following the sequence in spec section 4.3.
func (a *ColumnAccumulator) Update(values []chunk.Value) error {
	a.chunkIndex++
	a.TotalProcessed += int64(len(values))

	interval := int64(a.cfg.TypeSampleInterval)
	if interval <= 0 {
		interval = 10
	}
	isFirstChunk := a.chunkIndex == 1
	sampleTypeThisChunk := isFirstChunk || a.chunkIndex%interval == 0

	var typeSampleIdx []int
	if sampleTypeThisChunk && !isFirstChunk {
		typeSampleIdx = a.chooseSubsampleIndices(len(values), a.cfg.TypeSampleMaxBatch)
	}

	freqSampleIdx := a.chooseSubsampleIndices(len(values), a.cfg.FrequencySampleCap)
	freqEligible := make(map[int]bool, len(freqSampleIdx))
	for _, i := range freqSampleIdx {
		freqEligible[i] = true
	}

	for i, v := range values {
		if v.Null {
			a.NullCount++
			continue
		}
		raw := v.AsString()
		switch ClassifyNull(raw) {
		case NullWhitespace:
			a.WhitespaceNullCount++
			a.NullCount++
			continue
		case NullPlaceholder:
			key := raw
			a.PlaceholderNullCounts[key]++
			a.NullCount++
			continue
		}

		// type tally
		shouldClassify := isFirstChunk
		if !shouldClassify && sampleTypeThisChunk {
			for _, idx := range typeSampleIdx {
				if idx == i {
					shouldClassify = true
					break
				}
			}
		}
		if shouldClassify {
			t := typeinfer.ClassifyValue(raw)
			a.TypeTally[t]++
			a.TypeSampledCount++

			if t == profiling.TypeInteger || t == profiling.TypeFloat {
				if f, err := strconv.ParseFloat(raw, 64); err == nil {
					a.NumericReservoir.Add(f)
				}
			}
		}

		// value frequency map (bounded; once full, only existing keys
		// accumulate from a per-chunk sample). Enforced on every chunk,
		// including the first, so a chunk larger than the cap can't blow
		// past it before the next chunk's gate kicks in.
		if len(a.ValueFreq) >= a.cfg.FrequencyCap {
			a.FreqCapHit = true
			if freqEligible[i] {
				if _, exists := a.ValueFreq[raw]; exists {
					a.ValueFreq[raw]++
				}
			}
		} else {
			a.ValueFreq[raw]++
			if len(a.ValueFreq) >= a.cfg.FrequencyCap {
				a.FreqCapHit = true
			}
		}

		a.LengthReservoir.Add(len(raw))
		a.hll.Add(raw)

		if isFirstChunk {
			if a.patternSamplesTaken < a.cfg.PatternSampleCap {
				pat := StructuralPattern(raw)
				a.PatternTally[pat]++
				a.patternSamplesTaken++
			}
			if len(a.SampleValues) < a.cfg.SampleValueCap {
				a.SampleValues = append(a.SampleValues, raw)
			}
		}
	}

	if a.TotalProcessed < 0 {
		return apperr.NewInternalInvariantViolation("accumulator total_processed went negative")
	}
	return nil
}

// EstimateCardinality returns the HyperLogLog estimate of distinct
// non-null values streamed through this column.
func (a *ColumnAccumulator) EstimateCardinality() uint64 {
	return a.hll.Estimate()
}

// DeclaredInferredType maps a source-declared ValueType hint, if any, to
// the profiling domain's InferredType vocabulary.
func (a *ColumnAccumulator) DeclaredInferredType() *profiling.InferredType {
	if a.DeclaredType == nil {
		return nil
	}
	var t profiling.InferredType
	switch *a.DeclaredType {
	case chunk.ValueTypeNumeric:
		t = profiling.TypeFloat
	case chunk.ValueTypeBoolean:
		t = profiling.TypeBoolean
	case chunk.ValueTypeDate:
		t = profiling.TypeDate
	case chunk.ValueTypeString:
		t = profiling.TypeString
	default:
		return nil
	}
	return &t
}

// chooseSubsampleIndices picks up to max distinct indices in [0, n)
// uniformly at random, used for the bounded per-chunk subsampling steps
// (type tally after the first chunk, frequency-map top-up once full).
func (a *ColumnAccumulator) chooseSubsampleIndices(n, max int) []int {
	if n <= max {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	perm := a.rng.Perm(n)
	return perm[:max]
}
