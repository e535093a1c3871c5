// Package profiling is the data model every profiling component reads
// and writes: the entities of a ColumnAccumulator's derived results, the
// Quality/Semantic/Pattern/Correlation verdicts, and the ProfileResult
// that packages them for serialization.
package profiling

import (
	"dataprofiler/domain/core"
)

// InferredType is the type the Type Inferencer settles on for a column.
type InferredType string

const (
	TypeInteger  InferredType = "integer"
	TypeFloat    InferredType = "float"
	TypeBoolean  InferredType = "boolean"
	TypeDate     InferredType = "date"
	TypeDatetime InferredType = "datetime"
	TypeString   InferredType = "string"
	TypeEmpty    InferredType = "empty"
	TypeUnknown  InferredType = "unknown"
)

// TypeConflict is a runner-up type the tally almost chose.
type TypeConflict struct {
	Type       InferredType `json:"type"`
	Count      int64        `json:"count"`
	Percentage float64      `json:"percentage"`
}

// TypeInference is the finalized type verdict for one column.
type TypeInference struct {
	DeclaredType  *InferredType  `json:"declared_type,omitempty"`
	InferredType  InferredType   `json:"inferred_type"`
	Confidence    float64        `json:"confidence"`
	IsKnown       bool           `json:"is_known"`
	Conflicts     []TypeConflict `json:"conflicts,omitempty"`
	SampleValues  []string       `json:"sample_values,omitempty"`
}

// ValueCount pairs a value with its observed frequency.
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// PatternCount pairs a structural pattern with its observed frequency.
type PatternCount struct {
	Pattern    string  `json:"pattern"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ColumnStatistics is the finalized, immutable statistics record for one
// column (spec section 3). Numeric fields are populated only when the
// numeric reservoir survived the statistics calculator's filtering;
// string-length fields only when string values were observed.
type ColumnStatistics struct {
	Count      int64   `json:"count"`
	NullCount  int64   `json:"null_count"`
	NullPct    float64 `json:"null_pct"`
	UniqueCount int64  `json:"unique_count"`
	UniquePct   float64 `json:"unique_pct"`
	Cardinality float64 `json:"cardinality"`

	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Q1     *float64 `json:"q1,omitempty"`
	Q2     *float64 `json:"q2,omitempty"`
	Q3     *float64 `json:"q3,omitempty"`

	Mode          *string `json:"mode,omitempty"`
	ModeFrequency int64   `json:"mode_frequency,omitempty"`
	TopValues     []ValueCount `json:"top_values,omitempty"`

	MinLength *int `json:"min_length,omitempty"`
	MaxLength *int `json:"max_length,omitempty"`
	AvgLength *float64 `json:"avg_length,omitempty"`

	DominantPatterns []PatternCount `json:"dominant_patterns,omitempty"`

	SemanticType      string `json:"semantic_type,omitempty"`
	SamplingStrategy  string `json:"sampling_strategy"`
}

// QualityMetrics is the four-axis quality score for one column.
type QualityMetrics struct {
	Completeness float64  `json:"completeness"`
	Validity     float64  `json:"validity"`
	Uniqueness   float64  `json:"uniqueness"`
	Consistency  float64  `json:"consistency"`
	OverallScore float64  `json:"overall_score"`
	Issues       []string `json:"issues"`
	Observations []string `json:"observations"`
}

// SemanticInfo is the winning semantic tag plus evidence trail.
type SemanticInfo struct {
	Tags              []string `json:"tags"`
	PrimaryTag        string   `json:"primary_tag"`
	Confidence        float64  `json:"confidence"`
	Evidence          []string `json:"evidence"`
	TaxonomySource    string   `json:"taxonomy_source"`
}

// PatternInfo is the regex-detector verdict for one column.
type PatternInfo struct {
	SemanticType  string   `json:"semantic_type,omitempty"`
	Confidence    float64  `json:"confidence"`
	GeneratedRegex string  `json:"generated_regex,omitempty"`
	PIIDetected   bool     `json:"pii_detected"`
	PIITypes      []string `json:"pii_types,omitempty"`
}

// CorrelationMethod identifies which correlation coefficient was computed.
type CorrelationMethod string

const (
	MethodPearson  CorrelationMethod = "pearson"
	MethodSpearman CorrelationMethod = "spearman"
	MethodKendall  CorrelationMethod = "kendall"
)

// Strength classifies the magnitude of a correlation coefficient.
type Strength string

const (
	StrengthModerate    Strength = "moderate"
	StrengthStrong      Strength = "strong"
	StrengthVeryStrong  Strength = "very_strong"
)

// CorrelationResult is one emitted, deduplicated column pair.
type CorrelationResult struct {
	Column1     string            `json:"column1"`
	Column2     string            `json:"column2"`
	Coefficient float64           `json:"coefficient"`
	Method      CorrelationMethod `json:"method"`
	Strength    Strength          `json:"strength"`
	PValue      *float64          `json:"p_value,omitempty"`
	SampleSize  int               `json:"sample_size"`
}

// SegmentStat is the per-segment numeric summary inside a SubgroupPattern.
type SegmentStat struct {
	Segment string  `json:"segment"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Q1      float64 `json:"q1"`
	Q3      float64 `json:"q3"`
}

// SubgroupPattern records a categorical column explaining variance in a
// numeric column (spec section 4.9).
type SubgroupPattern struct {
	SegmentColumn     string        `json:"segment_column"`
	ValueColumn       string        `json:"value_column"`
	VarianceExplained float64       `json:"variance_explained"`
	Segments          []SegmentStat `json:"segments"`
}

// CorrelationPattern records a linear fit between two numeric columns,
// used by the contextual validator to explain outlier candidates.
type CorrelationPattern struct {
	Column1     string  `json:"column1"`
	Column2     string  `json:"column2"`
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	ResidualStd float64 `json:"residual_std"`
}

// ValidationType enumerates the closed set of suggestion kinds (spec
// section 9's call to replace dynamic-dispatch validation records with a
// closed sum type).
type ValidationType string

const (
	ValidationEmptyFile       ValidationType = "empty_file_check"
	ValidationRowCountRange   ValidationType = "row_count_range_check"
	ValidationMandatoryField  ValidationType = "mandatory_field_check"
	ValidationRange           ValidationType = "range_check"
	ValidationValidValues     ValidationType = "valid_values_check"
	ValidationUniqueKey       ValidationType = "unique_key_check"
	ValidationDateFormat      ValidationType = "date_format_check"
	ValidationRegex           ValidationType = "regex_check"
)

// Severity is the suggestion's severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// ValidationSuggestion is one ranked, typed validation-rule candidate.
type ValidationSuggestion struct {
	Column     string         `json:"column"`
	Type       ValidationType `json:"type"`
	Severity   Severity       `json:"severity"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence"`
}

// ColumnProfile bundles every derived artifact for one column.
type ColumnProfile struct {
	Name       string          `json:"name"`
	Type       TypeInference   `json:"type"`
	Statistics ColumnStatistics `json:"statistics"`
	Quality    QualityMetrics   `json:"quality"`
	Semantic   SemanticInfo     `json:"semantic"`
	Pattern    PatternInfo      `json:"pattern"`
}

// OutlierExplanation is a human-readable sample of the contextual
// validator's verdict on one flagged value (spec section 4.9).
type OutlierExplanation struct {
	Column    string   `json:"column"`
	Value     float64  `json:"value"`
	Segment   string   `json:"segment,omitempty"`
	Suspicion float64  `json:"suspicion"`
	Explained bool     `json:"explained"`
	Reasons   []string `json:"reasons,omitempty"`
}

// ContextualValidation summarizes the contextual validator's review of
// candidate outliers against the discovered subgroup and correlation
// patterns: how many candidates were reviewed, how many were downgraded
// from "outlier" by a matching pattern, and a small sample of the
// explanations themselves (spec section 4.9).
type ContextualValidation struct {
	CandidatesReviewed int                  `json:"candidates_reviewed"`
	ExplainedCount     int                  `json:"explained_count"`
	Samples            []OutlierExplanation `json:"samples,omitempty"`
}

// ProfileResult is the single, self-contained, serializable record the
// profiler emits on success (spec section 3, "Ownership").
type ProfileResult struct {
	ID              core.ProfileID        `json:"id"`
	SourceIdentity  string                `json:"source_identity"`
	Format          string                `json:"format"`
	RowCount        int64                 `json:"row_count"`
	ColumnCount     int                   `json:"column_count"`
	ProducedAt      core.Timestamp        `json:"produced_at"`
	ProcessingMs    int64                 `json:"processing_ms"`
	Columns         []ColumnProfile       `json:"columns"`
	Correlations    []CorrelationResult   `json:"correlations"`
	Subgroups       []SubgroupPattern     `json:"subgroups,omitempty"`
	CorrelationPatterns []CorrelationPattern `json:"correlation_patterns,omitempty"`
	ContextualValidation ContextualValidation `json:"contextual_validation"`
	Suggestions     []ValidationSuggestion `json:"suggestions"`
	OverallQuality  float64               `json:"overall_quality"`
	Fingerprint     string                `json:"fingerprint"`
}
