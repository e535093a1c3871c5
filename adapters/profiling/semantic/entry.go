// Package semantic implements the Pattern/Semantic Tagger (spec section
// 4.7): three taxonomy matchers run in parallel plus one regex pattern
// detector, reconciled by a weighted scoring rubric and a precedence
// chain into a single primary semantic tag with an evidence trail.
package semantic

import (
	"regexp"

	"dataprofiler/domain/profiling"
)

// Entry is one taxonomy definition: a semantic tag plus the signals that
// count as evidence for it.
type Entry struct {
	Tag              string
	NamePatterns     []*regexp.Regexp
	ExpectedTypes    []profiling.InferredType
	ValuePattern     *regexp.Regexp
	CardinalityMin   *float64
	CardinalityMax   *float64
	ValueMin         *float64
	ValueMax         *float64
	LengthMin        *int
	LengthMax        *int
	ReferenceValues  map[string]bool
}

// ColumnEvidence is the subset of a column's derived facts the tagger
// consults, gathered before the taxonomy matchers run.
type ColumnEvidence struct {
	Name         string
	Inferred     profiling.InferredType
	Cardinality  float64
	Min          *float64
	Max          *float64
	AvgLength    *float64
	SampleValues []string
}

// Match is one taxonomy entry's scored candidacy against a column.
type Match struct {
	Tag        string
	Score      float64
	Evidence   []string
	Taxonomy   string
}

// score evaluates one entry against the column evidence per the
// weighted rubric in spec section 4.7, returning the clamped [0,1] score
// and the evidence trail of signals that fired.
func score(e Entry, col ColumnEvidence) (float64, []string) {
	var s float64
	var evidence []string

	nameHit := false
	for _, re := range e.NamePatterns {
		if re.MatchString(col.Name) {
			nameHit = true
			break
		}
	}
	if nameHit {
		s += 0.5
		evidence = append(evidence, "name_pattern:"+e.Tag)
	}

	if len(e.ExpectedTypes) > 0 {
		typeOK := false
		for _, t := range e.ExpectedTypes {
			if t == col.Inferred {
				typeOK = true
				break
			}
		}
		if typeOK {
			s += 0.2
			evidence = append(evidence, "dtype:"+string(col.Inferred))
		} else {
			s -= 0.3
		}
	}

	if e.CardinalityMin != nil || e.CardinalityMax != nil {
		hit := true
		if e.CardinalityMin != nil && col.Cardinality < *e.CardinalityMin {
			hit = false
		}
		if e.CardinalityMax != nil && col.Cardinality > *e.CardinalityMax {
			hit = false
		}
		if hit {
			s += 0.15
			evidence = append(evidence, "cardinality_bound")
		} else {
			s -= 0.1
		}
	}

	if e.ValueMin != nil || e.ValueMax != nil {
		if col.Min != nil && col.Max != nil {
			hit := true
			if e.ValueMin != nil && *col.Min < *e.ValueMin {
				hit = false
			}
			if e.ValueMax != nil && *col.Max > *e.ValueMax {
				hit = false
			}
			if hit {
				s += 0.1
				evidence = append(evidence, "value_range")
				if e.ValueMin != nil && *e.ValueMin >= 0 {
					evidence = append(evidence, "non_negative")
				}
			} else {
				s -= 0.2
			}
		}
	}

	if e.LengthMin != nil || e.LengthMax != nil {
		if col.AvgLength != nil {
			hit := true
			if e.LengthMin != nil && *col.AvgLength < float64(*e.LengthMin) {
				hit = false
			}
			if e.LengthMax != nil && *col.AvgLength > float64(*e.LengthMax) {
				hit = false
			}
			if hit {
				s += 0.15
				evidence = append(evidence, "length_bound")
			} else {
				s -= 0.1
			}
		}
	}

	if e.ValuePattern != nil && len(col.SampleValues) > 0 {
		hits := 0
		for _, v := range col.SampleValues {
			if e.ValuePattern.MatchString(v) {
				hits++
			}
		}
		rate := float64(hits) / float64(len(col.SampleValues))
		if rate > 0.5 {
			s += 0.3
			evidence = append(evidence, "value_regex:"+e.Tag)
		}
	}

	if len(e.ReferenceValues) > 0 && len(col.SampleValues) > 0 {
		hits := 0
		for _, v := range col.SampleValues {
			if e.ReferenceValues[v] {
				hits++
			}
		}
		rate := float64(hits) / float64(len(col.SampleValues))
		if rate > 0.7 {
			s += 0.2
			evidence = append(evidence, "reference_overlap")
		} else if rate < 0.3 {
			s -= 0.15
		}
	}

	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	return s, evidence
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
