// Package apperr defines the profiler's structured, fatal error taxonomy.
//
// A profiling run ends in exactly one of two ways: a ProfileResult, or one
// of the five AppError kinds below (spec section on error handling). Every
// kind is fatal — on any of them the caller gets the typed error and no
// partial ProfileResult.
package apperr

import (
	"errors"
	"fmt"
)

// AppError represents a structured application error.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an error with additional context, preserving its code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{Code: appErr.Code, Message: message, Cause: appErr}
	}
	return &AppError{Code: CodeInternal, Message: message, Cause: err}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Error codes, one per spec error kind.
const (
	CodeSourceFailure   = "SOURCE_FAILURE"
	CodeResourceExhaust = "RESOURCE_EXHAUSTED"
	CodeBadChunkSchema  = "BAD_CHUNK_SCHEMA"
	CodeCancelled       = "CANCELLED"
	CodeInvariantBroken = "INTERNAL_INVARIANT_VIOLATION"
	CodeInternal        = "INTERNAL_ERROR"
)

// SourceFailure wraps a fatal error raised by the chunk source.
type SourceFailure struct {
	*AppError
}

// NewSourceFailure wraps the underlying source error as fatal.
func NewSourceFailure(cause error) *SourceFailure {
	return &SourceFailure{&AppError{
		Code:    CodeSourceFailure,
		Message: "chunk source failed",
		Cause:   cause,
	}}
}

// ResourceExhausted is returned when the Memory Governor trips its critical
// threshold. It carries the row count and memory snapshot observed.
type ResourceExhausted struct {
	*AppError
	RowsProcessed int64
	RSSBytes      uint64
	AvailBytes    uint64
}

// NewResourceExhausted builds a ResourceExhausted error.
func NewResourceExhausted(rowsProcessed int64, rssBytes, availBytes uint64) *ResourceExhausted {
	return &ResourceExhausted{
		AppError: &AppError{
			Code: CodeResourceExhaust,
			Message: fmt.Sprintf(
				"memory governor tripped critical threshold at %d rows processed (rss=%d avail=%d)",
				rowsProcessed, rssBytes, availBytes,
			),
		},
		RowsProcessed: rowsProcessed,
		RSSBytes:      rssBytes,
		AvailBytes:    availBytes,
	}
}

// BadChunkSchema is returned when a chunk's column list disagrees with the
// first chunk's schema.
type BadChunkSchema struct {
	*AppError
	Expected []string
	Actual   []string
}

// NewBadChunkSchema builds a BadChunkSchema error.
func NewBadChunkSchema(expected, actual []string) *BadChunkSchema {
	return &BadChunkSchema{
		AppError: &AppError{
			Code:    CodeBadChunkSchema,
			Message: fmt.Sprintf("chunk schema mismatch: expected %v, got %v", expected, actual),
		},
		Expected: expected,
		Actual:   actual,
	}
}

// Cancelled is returned when the caller's cancellation flag fires between
// chunks.
type Cancelled struct {
	*AppError
	RowsProcessed int64
}

// NewCancelled builds a Cancelled error.
func NewCancelled(rowsProcessed int64) *Cancelled {
	return &Cancelled{
		AppError: &AppError{
			Code:    CodeCancelled,
			Message: fmt.Sprintf("profiling cancelled after %d rows", rowsProcessed),
		},
		RowsProcessed: rowsProcessed,
	}
}

// InternalInvariantViolation marks a defensive check failure (negative
// counts, reservoir overflow, etc.) that should be reported as a bug.
type InternalInvariantViolation struct {
	*AppError
}

// NewInternalInvariantViolation builds an InternalInvariantViolation error.
func NewInternalInvariantViolation(what string) *InternalInvariantViolation {
	return &InternalInvariantViolation{&AppError{
		Code:    CodeInvariantBroken,
		Message: fmt.Sprintf("internal invariant violated: %s", what),
	}}
}

// IsFatal reports whether err is one of the profiler's fatal error kinds.
func IsFatal(err error) bool {
	var (
		sf *SourceFailure
		re *ResourceExhausted
		bs *BadChunkSchema
		c  *Cancelled
		iv *InternalInvariantViolation
	)
	return errors.As(err, &sf) || errors.As(err, &re) || errors.As(err, &bs) ||
		errors.As(err, &c) || errors.As(err, &iv)
}
