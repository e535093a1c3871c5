package semantic

import (
	"regexp"

	"dataprofiler/domain/profiling"
)

// schemaOrgEntries is the generic web-vocabulary taxonomy: broadly
// applicable concepts (contact points, identity, dates) that finance
// entries override only within the confidence-gap tolerance, and that
// in turn override the bare "text" fallback (spec section 4.7).
var schemaOrgEntries = []Entry{
	{
		Tag:           "schema:email",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)e-?mail`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString},
		ValuePattern:  regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
	},
	{
		Tag:           "schema:telephone",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)phone|mobile|cell|fax`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString, profiling.TypeInteger},
	},
	{
		Tag:           "schema:PostalAddress",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)address|street|city|state|zip|postal`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString},
	},
	{
		Tag:           "schema:Person",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)^name$|full_?name|first_?name|last_?name|customer_?name`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString},
	},
	{
		Tag:           "schema:DateTime",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)date|time|timestamp|_at$|_on$`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeDate, profiling.TypeDatetime},
	},
	{
		Tag:           "schema:identifier",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)^id$|_id$|identifier|^uuid$`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeInteger, profiling.TypeString},
		CardinalityMin: floatPtr(0.9),
	},
	{
		Tag:          "schema:Boolean",
		NamePatterns: []*regexp.Regexp{regexp.MustCompile(`(?i)^is_|^has_|flag|active|enabled`)},
		CardinalityMax: floatPtr(0.05),
	},
	{
		Tag:            "schema:Text",
		NamePatterns:   []*regexp.Regexp{regexp.MustCompile(`(?i)description|comment|note|remarks|text|body|message`)},
		ExpectedTypes:  []profiling.InferredType{profiling.TypeString},
		CardinalityMin: floatPtr(0.3),
	},
}

const schemaOrgThreshold = 0.50
const schemaOrgTextFallbackMin = 0.60
