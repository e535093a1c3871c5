package accumulator

import "strings"

// placeholderNulls is the case-insensitive set of string values treated
// as null besides outright absence and whitespace-only content (spec
// section 3's null predicate, section 9's note that the predicate is a
// union, never a sum).
var placeholderNulls = map[string]bool{
	"n/a": true, "na": true, "null": true, "none": true,
	"-": true, "unknown": true, "?": true, "": true,
}

// NullKind classifies why a value was counted as null, so each category
// can be tracked separately for observability while still folding into
// one union null_count.
type NullKind int

const (
	NotNull NullKind = iota
	NullAbsent
	NullWhitespace
	NullPlaceholder
)

// ClassifyNull applies the null predicate to one raw (non-absent) string
// value. Callers count absent cells (chunk.Value.Null) themselves and
// do not call this for them.
func ClassifyNull(raw string) NullKind {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if raw != "" {
			return NullWhitespace
		}
		return NullPlaceholder // empty string is itself in the placeholder set
	}
	if placeholderNulls[strings.ToLower(trimmed)] {
		return NullPlaceholder
	}
	return NotNull
}
