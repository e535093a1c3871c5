package csvsource

import (
	"context"
	"os"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "*.csv")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return f.Name()
}

func TestSourceYieldsChunkedBatches(t *testing.T) {
	path := writeTempCSV(t, "id,name\n1,alice\n2,bob\n3,carol\n4,dan\n")
	src, err := Open(Config{Path: path, HasHeader: true, ChunkSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	var totalRows int
	batchCount := 0
	for {
		batch, ok, err := src.Next(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		batchCount++
		totalRows += batch.Rows()
	}
	if totalRows != 4 {
		t.Errorf("expected 4 rows, got %d", totalRows)
	}
	if batchCount != 2 {
		t.Errorf("expected 2 batches of size 2, got %d", batchCount)
	}
}

func TestSourceAppliesHeaderAsColumnNames(t *testing.T) {
	path := writeTempCSV(t, "a,b\n1,2\n")
	src, err := Open(Config{Path: path, HasHeader: true, ChunkSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, err=%v ok=%v", err, ok)
	}
	if len(batch.ColumnNames) != 2 || batch.ColumnNames[0] != "a" || batch.ColumnNames[1] != "b" {
		t.Errorf("unexpected column names: %v", batch.ColumnNames)
	}
}
