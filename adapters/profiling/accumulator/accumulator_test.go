package accumulator

import (
	"strconv"
	"testing"

	"dataprofiler/domain/chunk"
	"dataprofiler/internal/config"
)

func values(raws ...string) []chunk.Value {
	out := make([]chunk.Value, len(raws))
	for i, r := range raws {
		if r == "\x00null\x00" {
			out[i] = chunk.NullValue()
			continue
		}
		out[i] = chunk.StringValue(r)
	}
	return out
}

func TestUpdateNullClassification(t *testing.T) {
	cfg := config.DefaultProfilerConfig()
	acc := New("status", cfg, cfg.RandomSeed)

	if err := acc.Update(values("active", "  ", "n/a", "\x00null\x00", "closed")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.TotalProcessed != 5 {
		t.Errorf("expected total_processed 5, got %d", acc.TotalProcessed)
	}
	if acc.NullCount != 3 {
		t.Errorf("expected null_count 3, got %d", acc.NullCount)
	}
	if acc.WhitespaceNullCount != 1 {
		t.Errorf("expected whitespace_null_count 1, got %d", acc.WhitespaceNullCount)
	}
	if acc.PlaceholderNullCounts["n/a"] != 1 {
		t.Errorf("expected placeholder n/a count 1, got %d", acc.PlaceholderNullCounts["n/a"])
	}
}

func TestUpdateTypeTallyFirstChunk(t *testing.T) {
	cfg := config.DefaultProfilerConfig()
	acc := New("age", cfg, cfg.RandomSeed)

	if err := acc.Update(values("1", "2", "3")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.TypeSampledCount != 3 {
		t.Errorf("expected all 3 values classified on first chunk, got %d", acc.TypeSampledCount)
	}
	if acc.NumericReservoir.Len() != 3 {
		t.Errorf("expected 3 numeric reservoir entries, got %d", acc.NumericReservoir.Len())
	}
}

func TestReservoirBoundedAcrossManyChunks(t *testing.T) {
	cfg := config.DefaultProfilerConfig()
	cfg.NumericCap = 50
	acc := New("value", cfg, cfg.RandomSeed)
	acc.Advice.RecommendedSampleSize = 50

	for chunkN := 0; chunkN < 20; chunkN++ {
		raws := make([]string, 0, 100)
		for i := 0; i < 100; i++ {
			raws = append(raws, strconv.Itoa(chunkN*100+i))
		}
		if err := acc.Update(values(raws...)); err != nil {
			t.Fatalf("unexpected error on chunk %d: %v", chunkN, err)
		}
	}

	if acc.LengthReservoir.Len() > cfg.LengthCap {
		t.Errorf("expected length reservoir bounded by %d, got %d", cfg.LengthCap, acc.LengthReservoir.Len())
	}
	if len(acc.ValueFreq) > cfg.FrequencyCap {
		t.Errorf("expected value freq map bounded by %d, got %d", cfg.FrequencyCap, len(acc.ValueFreq))
	}
}

func TestPatternTallyFirstChunkOnly(t *testing.T) {
	cfg := config.DefaultProfilerConfig()
	acc := New("code", cfg, cfg.RandomSeed)

	_ = acc.Update(values("AB12", "CD34"))
	_ = acc.Update(values("EF56", "GH78"))

	total := int64(0)
	for _, c := range acc.PatternTally {
		total += c
	}
	if total != 2 {
		t.Errorf("expected pattern tally to only reflect first chunk (2 values), got %d", total)
	}
}
