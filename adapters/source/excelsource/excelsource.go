// Package excelsource implements domain/chunk.Source over an Excel
// workbook, grounded on the teacher's adapters/excel reader.go (it opens
// with excelize and reads a named sheet's rows, header row first). Since
// excelize loads a sheet's rows in one call, chunking here slices that
// in-memory result rather than streaming from disk, still bounding
// downstream accumulator memory to one chunk at a time.
package excelsource

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"dataprofiler/domain/chunk"
)

// Config holds the loader options for one worksheet.
type Config struct {
	Path      string
	Sheet     string // defaults to the workbook's first sheet
	HasHeader bool   // when false, columns are named col_1, col_2, ...
	ChunkSize int    // rows per batch, defaults to 10000
}

// Source reads one worksheet's rows in fixed-size batches.
type Source struct {
	cfg     Config
	file    *excelize.File
	headers []string
	rows    [][]string
	cursor  int
}

// Open opens the workbook and reads the target sheet's rows.
func Open(cfg Config) (*Source, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}

	f, err := excelize.OpenFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}

	sheet := cfg.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	s := &Source{cfg: cfg, file: f, rows: rows}
	if cfg.HasHeader && len(rows) > 0 {
		s.headers = rows[0]
		s.rows = rows[1:]
	}
	return s, nil
}

// Next slices the next cfg.ChunkSize rows into a Batch.
func (s *Source) Next(ctx context.Context) (chunk.Batch, bool, error) {
	select {
	case <-ctx.Done():
		return chunk.Batch{}, false, ctx.Err()
	default:
	}

	if s.cursor >= len(s.rows) {
		return chunk.Batch{}, false, nil
	}

	end := s.cursor + s.cfg.ChunkSize
	if end > len(s.rows) {
		end = len(s.rows)
	}
	slice := s.rows[s.cursor:end]
	s.cursor = end

	headers := s.headers
	if headers == nil && len(slice) > 0 {
		headers = make([]string, len(slice[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i+1)
		}
	}

	columns := make(map[string][]chunk.Value, len(headers))
	for _, record := range slice {
		for i, name := range headers {
			var v chunk.Value
			if i < len(record) {
				v = chunk.StringValue(record[i])
			} else {
				v = chunk.NullValue()
			}
			columns[name] = append(columns[name], v)
		}
	}

	return chunk.NewBatch(headers, columns), true, nil
}

// Close releases the workbook handle.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
