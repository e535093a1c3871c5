// Package csvsource implements domain/chunk.Source over a CSV file,
// grounded on the teacher's reader.go (encoding/csv, header-row
// extraction), but reading row by row instead of loading the file in
// one shot so chunk size governs memory use (spec section 4.1).
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"dataprofiler/domain/chunk"
)

// Config holds the loader options the spec's external-interfaces
// section lists as opaque, format-specific loader configuration.
type Config struct {
	Path      string
	Delimiter rune // defaults to ','
	HasHeader bool // when false, columns are named A, B, C, ...
	ChunkSize int  // rows per batch, defaults to 10000
}

// Source reads a CSV file in fixed-size row batches.
type Source struct {
	cfg     Config
	file    *os.File
	reader  *csv.Reader
	headers []string
	done    bool
}

// Open opens the CSV file and reads its header row.
func Open(cfg Config) (*Source, error) {
	if cfg.Delimiter == 0 {
		cfg.Delimiter = ','
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}

	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.Comma = cfg.Delimiter
	r.FieldsPerRecord = -1 // tolerate ragged rows; downstream null classification handles gaps

	s := &Source{cfg: cfg, file: f, reader: r}

	if cfg.HasHeader {
		headers, err := r.Read()
		if err != nil {
			f.Close()
			return nil, err
		}
		s.headers = headers
	}

	return s, nil
}

// Next reads up to cfg.ChunkSize rows and returns them as one Batch.
func (s *Source) Next(ctx context.Context) (chunk.Batch, bool, error) {
	if s.done {
		return chunk.Batch{}, false, nil
	}

	columns := make(map[string][]chunk.Value)
	rowsRead := 0

	for rowsRead < s.cfg.ChunkSize {
		select {
		case <-ctx.Done():
			return chunk.Batch{}, false, ctx.Err()
		default:
		}

		record, err := s.reader.Read()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return chunk.Batch{}, false, err
		}

		if s.headers == nil {
			s.headers = make([]string, len(record))
			for i := range s.headers {
				s.headers[i] = columnLetter(i)
			}
		}

		for i, name := range s.headers {
			var v chunk.Value
			if i < len(record) {
				v = chunk.StringValue(record[i])
			} else {
				v = chunk.NullValue()
			}
			columns[name] = append(columns[name], v)
		}
		rowsRead++
	}

	if rowsRead == 0 {
		return chunk.Batch{}, false, nil
	}
	return chunk.NewBatch(s.headers, columns), true, nil
}

// Close releases the underlying file handle.
func (s *Source) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

func columnLetter(idx int) string {
	idx++
	result := ""
	for idx > 0 {
		idx--
		result = string(rune('A'+(idx%26))) + result
		idx /= 26
	}
	return result
}
