package excelsource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"id", "name"},
		{1, "alice"},
		{2, "bob"},
		{3, "carol"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSourceReadsHeaderAndRows(t *testing.T) {
	path := writeTempWorkbook(t)
	src, err := Open(Config{Path: path, HasHeader: true, ChunkSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()

	batch, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a batch, err=%v ok=%v", err, ok)
	}
	if batch.ColumnNames[0] != "id" || batch.ColumnNames[1] != "name" {
		t.Errorf("unexpected headers: %v", batch.ColumnNames)
	}
	if batch.Rows() != 2 {
		t.Errorf("expected chunk size of 2 rows, got %d", batch.Rows())
	}

	second, ok, err := src.Next(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a second batch, err=%v ok=%v", err, ok)
	}
	if second.Rows() != 1 {
		t.Errorf("expected final batch to have the remaining 1 row, got %d", second.Rows())
	}

	_, ok, err = src.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected source to be exhausted")
	}
}
