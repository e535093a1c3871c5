// Package suggest implements the Validation Suggestor (spec section
// 4.10): it maps a finalized column profile plus row-count context to a
// ranked, typed list of validation rule candidates.
package suggest

import (
	"math"
	"sort"
	"strings"

	"dataprofiler/domain/profiling"
)

// ColumnInput bundles the derived facts the rule table reads for one
// column. Most fields mirror profiling.ColumnProfile but unpacked for
// direct access.
type ColumnInput struct {
	Name         string
	InferredType profiling.InferredType
	Completeness float64 // 0..1
	Cardinality  float64 // unique_count / non-null count, 0..1
	UniqueCount  int64
	RowCount     int64
	Min          *float64
	Max          *float64
	SemanticType string // e.g. "fibo:MonetaryAmount", "schema:identifier", "monetary_amount", "id", "key", "category"
	DateFormat   string // non-empty when a date format was inferred
	Pattern      profiling.PatternInfo
}

// Suggest runs the full rule table over every column plus the
// file-level rules, and returns the suggestions sorted by confidence
// descending (spec section 4.10).
func Suggest(rowCount int64, columns []ColumnInput) []profiling.ValidationSuggestion {
	var out []profiling.ValidationSuggestion

	if rowCount > 0 {
		out = append(out, profiling.ValidationSuggestion{
			Type:       profiling.ValidationEmptyFile,
			Severity:   profiling.SeverityError,
			Reason:     "file contains at least one row",
			Confidence: 1.00,
		})
		out = append(out, profiling.ValidationSuggestion{
			Type:     profiling.ValidationRowCountRange,
			Severity: profiling.SeverityWarning,
			Parameters: map[string]any{
				"min": int64(math.Round(0.5 * float64(rowCount))),
				"max": int64(math.Round(2.0 * float64(rowCount))),
			},
			Reason:     "observed row count anchors an expected future range",
			Confidence: 0.80,
		})
	}

	for _, c := range columns {
		out = append(out, columnRules(rowCount, c)...)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

func columnRules(rowCount int64, c ColumnInput) []profiling.ValidationSuggestion {
	var out []profiling.ValidationSuggestion

	if c.Completeness > 0.95 {
		out = append(out, profiling.ValidationSuggestion{
			Column:     c.Name,
			Type:       profiling.ValidationMandatoryField,
			Severity:   profiling.SeverityError,
			Reason:     "column is populated in over 95% of rows",
			Confidence: 0.95,
		})
	}

	isNumeric := c.InferredType == profiling.TypeInteger || c.InferredType == profiling.TypeFloat
	if isNumeric && c.Min != nil && c.Max != nil {
		if isMonetary(c.SemanticType) {
			out = append(out, profiling.ValidationSuggestion{
				Column:   c.Name,
				Type:     profiling.ValidationRange,
				Severity: profiling.SeverityError,
				Parameters: map[string]any{
					"min": 0,
					"max": nil,
				},
				Reason:     "monetary amount columns are expected to be non-negative",
				Confidence: 0.85,
			})
		} else if shouldSuggestRange(c, rowCount) {
			out = append(out, profiling.ValidationSuggestion{
				Column:   c.Name,
				Type:     profiling.ValidationRange,
				Severity: profiling.SeverityWarning,
				Parameters: map[string]any{
					"min": *c.Min,
					"max": *c.Max,
				},
				Reason:     "observed min/max bound the plausible range",
				Confidence: 0.90,
			})
		}
	}

	if c.Cardinality < 0.05 && c.UniqueCount < 20 {
		out = append(out, profiling.ValidationSuggestion{
			Column:     c.Name,
			Type:       profiling.ValidationValidValues,
			Severity:   profiling.SeverityError,
			Reason:     "low cardinality suggests a closed set of valid values",
			Confidence: 0.85,
		})
	}

	if c.Cardinality > 0.99 && rowCount > 100 {
		out = append(out, profiling.ValidationSuggestion{
			Column:     c.Name,
			Type:       profiling.ValidationUniqueKey,
			Severity:   profiling.SeverityError,
			Reason:     "near-total cardinality suggests a unique key",
			Confidence: 0.95,
		})
	}

	if (c.InferredType == profiling.TypeDate || c.InferredType == profiling.TypeDatetime) && c.DateFormat != "" {
		out = append(out, profiling.ValidationSuggestion{
			Column:     c.Name,
			Type:       profiling.ValidationDateFormat,
			Severity:   profiling.SeverityError,
			Parameters: map[string]any{"format": c.DateFormat},
			Reason:     "a consistent date format was inferred across sampled values",
			Confidence: 0.80,
		})
	}

	if c.Pattern.SemanticType != "" && c.Pattern.Confidence > 0 {
		severity := profiling.SeverityWarning
		if c.Pattern.Confidence >= 0.85 {
			severity = profiling.SeverityError
		}
		out = append(out, profiling.ValidationSuggestion{
			Column:     c.Name,
			Type:       profiling.ValidationRegex,
			Severity:   severity,
			Parameters: map[string]any{"pattern": c.Pattern.GeneratedRegex, "semantic_type": c.Pattern.SemanticType},
			Reason:     "a consistent value pattern was detected across sampled values",
			Confidence: c.Pattern.Confidence,
		})
	}

	return out
}

func isMonetary(semanticType string) bool {
	switch semanticType {
	case "monetary_amount", "price", "amount", "currency_amount", "fibo:MonetaryAmount":
		return true
	}
	return false
}

// shouldSuggestRange implements the `_should_suggest_range` exclusion
// rubric from spec section 4.10.
func shouldSuggestRange(c ColumnInput, rowCount int64) bool {
	switch c.SemanticType {
	case "id", "identifier", "key", "category", "schema:identifier":
		return false
	}
	if c.UniqueCount == 2 {
		return false
	}
	if c.Cardinality > 0.8 {
		return false
	}
	if c.Cardinality < 0.05 && c.UniqueCount < 20 {
		return false
	}
	if c.Min != nil && c.Max != nil && rowCount > 0 {
		valueRange := *c.Max - *c.Min
		if valueRange > 10*float64(rowCount) {
			return false
		}
	}
	if c.InferredType == profiling.TypeInteger && c.Min != nil && *c.Min > 1e9 {
		return false
	}
	if hintsID(c.Name) && c.Cardinality > 0.5 {
		return false
	}
	return true
}

func hintsID(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "id") || strings.HasSuffix(lower, "_key") || strings.Contains(lower, "uuid")
}
