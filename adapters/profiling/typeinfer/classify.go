// Package typeinfer implements the per-value classifier cascade and the
// per-column reconciliation that together produce a TypeInference (spec
// sections 4.3's "type classifier" and 4.4).
package typeinfer

import (
	"regexp"
	"strconv"
	"strings"

	"dataprofiler/domain/profiling"
)

var dateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),          // YYYY-MM-DD
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),          // DD/MM/YYYY or MM/DD/YYYY
	regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`),          // YYYY/MM/DD
	regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`),          // DD-MM-YYYY
}

var booleanValues = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
}

// ClassifyValue runs the cascade boolean -> integer -> float -> date ->
// string over one non-null raw value, returning the first class that
// successfully parses it. Parse failures are not errors: they fall
// through to the next classifier (spec section 7, "value-level parse
// failures").
func ClassifyValue(raw string) profiling.InferredType {
	trimmed := strings.TrimSpace(raw)

	if booleanValues[strings.ToLower(trimmed)] {
		return profiling.TypeBoolean
	}

	if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return profiling.TypeInteger
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return profiling.TypeFloat
	}

	for _, re := range dateFormats {
		if re.MatchString(trimmed) {
			return profiling.TypeDate
		}
	}

	return profiling.TypeString
}
