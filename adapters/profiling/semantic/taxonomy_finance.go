package semantic

import (
	"regexp"

	"dataprofiler/domain/profiling"
)

// financeEntries is the FIBO-style specialized taxonomy: monetary and
// transactional concepts that should win over schema.org's generic
// numeric/text tags when they clear threshold (spec section 4.7,
// precedence rules).
var financeEntries = []Entry{
	{
		Tag:           "fibo:MonetaryAmount",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)amount|price|cost|fee|salary|revenue|balance|total|payment`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeFloat, profiling.TypeInteger},
		ValueMin:      floatPtr(0),
	},
	{
		Tag:           "fibo:CurrencyCode",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)currency|ccy`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString},
		ValuePattern:  regexp.MustCompile(`^[A-Z]{3}$`),
		LengthMin:     intPtr(3),
		LengthMax:     intPtr(3),
	},
	{
		Tag:           "fibo:AccountIdentifier",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)account|iban|acct`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeString, profiling.TypeInteger},
		CardinalityMin: floatPtr(0.5),
	},
	{
		Tag:           "fibo:InterestRate",
		NamePatterns:  []*regexp.Regexp{regexp.MustCompile(`(?i)rate|apr|yield`)},
		ExpectedTypes: []profiling.InferredType{profiling.TypeFloat},
		ValueMin:      floatPtr(-1),
		ValueMax:      floatPtr(1),
	},
}

const financeThreshold = 0.50
