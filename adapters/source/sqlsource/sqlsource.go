// Package sqlsource implements domain/chunk.Source over a SQL query
// against a PostgreSQL database, grounded on the original loader's
// chunked read-from-database pattern (offset pagination by LIMIT/OFFSET
// instead of a driver-side cursor, since database/sql has no portable
// streaming cursor), using jmoiron/sqlx for column-name-aware scanning
// and lib/pq as the driver.
package sqlsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dataprofiler/domain/chunk"
)

// Config holds the loader options for a single SELECT query or table
// (spec section 6's "opaque, format-specific" loader configuration).
type Config struct {
	ConnectionString string
	Query            string // a full SELECT; mutually exclusive with Table
	Table            string // mutually exclusive with Query
	ChunkSize        int    // rows per batch, defaults to 10000
	MaxRows          int64  // 0 means unlimited
}

// Source pages through a query's result set chunk_size rows at a time
// using LIMIT/OFFSET, matching the original loader's chunked semantics
// without requiring a keep-alive server-side cursor.
type Source struct {
	db        *sqlx.DB
	baseQuery string
	chunkSize int
	maxRows   int64

	offset int64
	done   bool
}

// Open validates the config, opens the connection pool, and prepares
// the base query.
func Open(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Query == "" && cfg.Table == "" {
		return nil, fmt.Errorf("sqlsource: either Query or Table must be provided")
	}
	if cfg.Query != "" && cfg.Table != "" {
		return nil, fmt.Errorf("sqlsource: provide either Query or Table, not both")
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 10000
	}

	base := cfg.Query
	if base == "" {
		if err := validateIdentifier(cfg.Table); err != nil {
			return nil, err
		}
		base = fmt.Sprintf("SELECT * FROM %s", cfg.Table)
	} else if err := validateReadOnlyQuery(base); err != nil {
		return nil, err
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("sqlsource: connect failed: %w", err)
	}

	return &Source{db: db, baseQuery: base, chunkSize: cfg.ChunkSize, maxRows: cfg.MaxRows}, nil
}

// Next pages the next chunkSize rows via LIMIT/OFFSET, building a Batch
// column-major from sqlx's column-aware row scanning.
func (s *Source) Next(ctx context.Context) (chunk.Batch, bool, error) {
	if s.done {
		return chunk.Batch{}, false, nil
	}

	limit := int64(s.chunkSize)
	if s.maxRows > 0 {
		remaining := s.maxRows - s.offset
		if remaining <= 0 {
			s.done = true
			return chunk.Batch{}, false, nil
		}
		if remaining < limit {
			limit = remaining
		}
	}

	query := fmt.Sprintf("SELECT * FROM (%s) AS paged_subquery LIMIT %d OFFSET %d", s.baseQuery, limit, s.offset)
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return chunk.Batch{}, false, err
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return chunk.Batch{}, false, err
	}

	columns := make(map[string][]chunk.Value, len(columnNames))
	rowCount := 0
	for rows.Next() {
		record, err := rows.SliceScan()
		if err != nil {
			return chunk.Batch{}, false, err
		}
		for i, name := range columnNames {
			columns[name] = append(columns[name], valueFromSQL(record[i]))
		}
		rowCount++
	}
	if err := rows.Err(); err != nil {
		return chunk.Batch{}, false, err
	}

	s.offset += int64(rowCount)
	if rowCount < s.chunkSize {
		s.done = true
	}
	if rowCount == 0 {
		return chunk.Batch{}, false, nil
	}

	return chunk.NewBatch(columnNames, columns), true, nil
}

// Close releases the connection pool.
func (s *Source) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func valueFromSQL(raw interface{}) chunk.Value {
	if raw == nil {
		return chunk.NullValue()
	}
	if b, ok := raw.([]byte); ok {
		return chunk.StringValue(string(b))
	}
	return chunk.Value{Raw: raw}
}

// validateIdentifier rejects table names that are not simple
// identifiers, a defense-in-depth measure grounded on the original
// loader's SQL identifier validation.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("sqlsource: empty table name")
	}
	for _, r := range name {
		if !(r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return fmt.Errorf("sqlsource: invalid table identifier %q", name)
		}
	}
	return nil
}

// validateReadOnlyQuery rejects anything but a single SELECT statement,
// grounded on the original loader's query-safety checks.
func validateReadOnlyQuery(query string) error {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if !strings.HasPrefix(upper, "SELECT") {
		return fmt.Errorf("sqlsource: query must be a SELECT statement")
	}
	dangerous := []string{"DROP", "DELETE", "TRUNCATE", "INSERT", "UPDATE", "ALTER", "CREATE", "GRANT", "REVOKE", "EXEC", "EXECUTE", "--", "/*"}
	for _, kw := range dangerous {
		if strings.Contains(upper, kw) {
			return fmt.Errorf("sqlsource: query contains disallowed keyword %q", kw)
		}
	}
	if strings.Count(query, ";") > 1 {
		return fmt.Errorf("sqlsource: multiple statements are not allowed")
	}
	return nil
}
