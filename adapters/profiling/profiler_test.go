package profiling

import (
	"context"
	"fmt"
	"testing"

	"dataprofiler/domain/chunk"
	"dataprofiler/internal/config"
)

type fakeSource struct {
	batches []chunk.Batch
	idx     int
	closed  bool
}

func (f *fakeSource) Next(ctx context.Context) (chunk.Batch, bool, error) {
	if f.idx >= len(f.batches) {
		return chunk.Batch{}, false, nil
	}
	b := f.batches[f.idx]
	f.idx++
	return b, true, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return nil
}

func makeBatch(n, offset int) chunk.Batch {
	ids := make([]chunk.Value, n)
	amounts := make([]chunk.Value, n)
	regions := make([]chunk.Value, n)
	for i := 0; i < n; i++ {
		ids[i] = chunk.StringValue(fmt.Sprintf("%d", offset+i))
		amounts[i] = chunk.StringValue(fmt.Sprintf("%.2f", float64((offset+i)%50)+1.5))
		if (offset+i)%2 == 0 {
			regions[i] = chunk.StringValue("east")
		} else {
			regions[i] = chunk.StringValue("west")
		}
	}
	return chunk.NewBatch([]string{"id", "amount", "region"}, map[string][]chunk.Value{
		"id":      ids,
		"amount":  amounts,
		"region":  regions,
	})
}

func TestProfileEndToEndOverSyntheticBatches(t *testing.T) {
	src := &fakeSource{batches: []chunk.Batch{makeBatch(50, 0), makeBatch(50, 50)}}
	p := New(config.DefaultProfilerConfig(), nil)

	result, err := p.Profile(context.Background(), src, "test://synthetic", "csv", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RowCount != 100 {
		t.Errorf("expected 100 rows processed, got %d", result.RowCount)
	}
	if result.ColumnCount != 3 {
		t.Errorf("expected 3 columns, got %d", result.ColumnCount)
	}
	if !src.closed {
		t.Error("expected source to be closed after profiling completes")
	}
	if result.Fingerprint == "" {
		t.Error("expected a non-empty fingerprint")
	}
}

// makeSkewedBatch builds 200 rows where a 10-row "west" minority sits far
// enough from the 190-row "east" majority that its constant value (500)
// clears a global 3-sigma outlier threshold, while still being exactly
// explained by its own segment (region).
func makeSkewedBatch() chunk.Batch {
	const n = 200
	const westRows = 10
	amounts := make([]chunk.Value, n)
	regions := make([]chunk.Value, n)
	for i := 0; i < n; i++ {
		if i < westRows {
			regions[i] = chunk.StringValue("west")
			amounts[i] = chunk.StringValue("500.00")
		} else {
			regions[i] = chunk.StringValue("east")
			amounts[i] = chunk.StringValue("100.00")
		}
	}
	return chunk.NewBatch([]string{"region", "amount"}, map[string][]chunk.Value{
		"region": regions,
		"amount": amounts,
	})
}

func TestProfileSurfacesContextualValidation(t *testing.T) {
	cfg := config.DefaultProfilerConfig()
	cfg.NumericCap = 200 // keep every row in the joint row-sample reservoir for this test

	src := &fakeSource{batches: []chunk.Batch{makeSkewedBatch()}}
	p := New(cfg, nil)

	result, err := p.Profile(context.Background(), src, "test://skewed", "csv", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Subgroups) == 0 {
		t.Fatal("expected region to explain variance in amount")
	}
	if result.ContextualValidation.CandidatesReviewed == 0 {
		t.Fatal("expected the west segment's values to be reviewed as outlier candidates")
	}
	if result.ContextualValidation.ExplainedCount != result.ContextualValidation.CandidatesReviewed {
		t.Errorf("expected every reviewed candidate to be explained by the region subgroup, got %d/%d",
			result.ContextualValidation.ExplainedCount, result.ContextualValidation.CandidatesReviewed)
	}
}

func TestProfileDetectsBadChunkSchema(t *testing.T) {
	mismatched := chunk.NewBatch([]string{"id", "other"}, map[string][]chunk.Value{
		"id":    {chunk.StringValue("1")},
		"other": {chunk.StringValue("x")},
	})
	src := &fakeSource{batches: []chunk.Batch{makeBatch(5, 0), mismatched}}
	p := New(config.DefaultProfilerConfig(), nil)

	_, err := p.Profile(context.Background(), src, "test://bad-schema", "csv", nil)
	if err == nil {
		t.Fatal("expected a BadChunkSchema error")
	}
}

func TestProfileHonorsCancellation(t *testing.T) {
	src := &fakeSource{batches: []chunk.Batch{makeBatch(5, 0), makeBatch(5, 5)}}
	p := New(config.DefaultProfilerConfig(), nil)
	calls := 0
	cancelled := func() bool {
		calls++
		return calls > 1
	}

	_, err := p.Profile(context.Background(), src, "test://cancel", "csv", cancelled)
	if err == nil {
		t.Fatal("expected a Cancelled error")
	}
}
