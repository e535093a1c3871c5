package semantic

import (
	"regexp"

	"dataprofiler/domain/profiling"
)

// wikidataEntries is the fallback general-knowledge taxonomy, consulted
// only when finance and schema.org both miss threshold (spec section
// 4.7). Its entries lean on reference-value overlap since wikidata
// concepts (countries, units, categories) are enumerable.
var wikidataEntries = []Entry{
	{
		Tag:             "wd:Q6256", // country
		NamePatterns:    []*regexp.Regexp{regexp.MustCompile(`(?i)country|nation`)},
		ExpectedTypes:   []profiling.InferredType{profiling.TypeString},
		ReferenceValues: countryReferenceValues,
		CardinalityMax:  floatPtr(0.1),
	},
	{
		Tag:            "wd:Q1860", // language
		NamePatterns:   []*regexp.Regexp{regexp.MustCompile(`(?i)language|lang_?code`)},
		ExpectedTypes:  []profiling.InferredType{profiling.TypeString},
		CardinalityMax: floatPtr(0.1),
	},
	{
		Tag:            "wd:Q7825", // gender
		NamePatterns:   []*regexp.Regexp{regexp.MustCompile(`(?i)gender|sex`)},
		ExpectedTypes:  []profiling.InferredType{profiling.TypeString},
		CardinalityMax: floatPtr(0.05),
	},
	{
		Tag:           "wd:Q11344", // chemical element / generic category code
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)category|segment|class|group`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString, profiling.TypeInteger},
		CardinalityMax: floatPtr(0.2),
	},
}

const wikidataThreshold = 0.55

var countryReferenceValues = map[string]bool{
	"US": true, "USA": true, "United States": true, "CA": true, "Canada": true,
	"GB": true, "UK": true, "United Kingdom": true, "DE": true, "Germany": true,
	"FR": true, "France": true, "JP": true, "Japan": true, "CN": true, "China": true,
	"IN": true, "India": true, "BR": true, "Brazil": true, "AU": true, "Australia": true,
}
