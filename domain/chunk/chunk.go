// Package chunk defines the external chunk source contract the profiler
// consumes: a lazy, finite sequence of column-major row batches sharing a
// single schema. Source-format loaders (CSV, Excel, SQL, ...) implement
// Source; the profiler never assumes anything about how a batch was
// produced, only that every batch it receives agrees on column_names.
package chunk

import (
	"context"
	"fmt"
)

// ValueType is the raw, source-declared storage shape of a value, if the
// source knows one. It is advisory: the Type Inferencer classifies every
// value independently of it.
type ValueType string

const (
	ValueTypeString  ValueType = "string"
	ValueTypeNumeric ValueType = "numeric"
	ValueTypeBoolean ValueType = "boolean"
	ValueTypeDate    ValueType = "date"
	ValueTypeUnknown ValueType = "unknown"
)

// Value is a single raw cell as handed to the profiler by a chunk source.
// Unlike the profiler's internal TypeInference, a Value carries no
// inferred type of its own: Raw is the source's literal representation
// (a string for CSV/Excel cells, a native Go value from database/sql),
// and Null marks an absent cell distinctly from an empty string so the
// accumulator's null classification (spec section 3) can tell them apart.
type Value struct {
	Raw  interface{}
	Null bool
}

// StringValue builds a non-null Value from a string cell.
func StringValue(s string) Value { return Value{Raw: s} }

// NullValue builds an explicitly-null Value.
func NullValue() Value { return Value{Null: true} }

// AsString renders the raw value as a string the way the accumulator and
// type inferencer expect to receive cell text, regardless of the
// underlying Go type a driver handed back.
func (v Value) AsString() string {
	if v.Null || v.Raw == nil {
		return ""
	}
	if s, ok := v.Raw.(string); ok {
		return s
	}
	return stringifyRaw(v.Raw)
}

// Batch is a column-major view over a fixed-size slice of rows. All
// batches yielded by one Source instance must agree on ColumnNames.
type Batch struct {
	ColumnNames  []string
	DeclaredType map[string]ValueType // optional, source-reported hint
	columns      map[string][]Value
}

// NewBatch builds a Batch from already-collected per-column value slices.
// Every column slice must have the same length; Rows() reports that
// length.
func NewBatch(columnNames []string, columns map[string][]Value) Batch {
	return Batch{ColumnNames: columnNames, columns: columns}
}

// Rows reports the row count of this batch, derived from the first
// column's slice length (all columns in a batch are equal length by
// construction).
func (b Batch) Rows() int {
	if len(b.ColumnNames) == 0 {
		return 0
	}
	return len(b.columns[b.ColumnNames[0]])
}

// Column returns the per-row values for the named column, or nil if the
// batch does not carry that column.
func (b Batch) Column(name string) []Value {
	return b.columns[name]
}

// Source is the lazy sequence contract a chunk producer implements. Next
// returns false (and a zero Batch) once the sequence is exhausted; any
// error returned by Next or Close propagates as a fatal, profile-ending
// condition (spec section 4.1 and section 7).
type Source interface {
	// Next advances to the next batch. It returns ok=false when the
	// source is exhausted, with err nil on clean end-of-input.
	Next(ctx context.Context) (batch Batch, ok bool, err error)

	// Close releases any resources held by the source (file handles,
	// DB connections). Safe to call after Next returns ok=false.
	Close() error
}

func stringifyRaw(v interface{}) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
