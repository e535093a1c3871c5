package accumulator

import "regexp"

// Advice is the Column Intelligence advisor's recommendation for one
// column name: a guessed semantic family and the reservoir size that
// family warrants. It is purely advisory — the Type Inferencer, not the
// advisor, decides the column's actual type (spec section 4.3).
type Advice struct {
	SemanticFamily        string
	RecommendedSampleSize int
	Reasoning              string
}

type nameFamily struct {
	family     string
	pattern    *regexp.Regexp
	sampleSize int
}

// Ordered so the first matching family wins, per the spec's ordered
// regex-family list: email, phone, id/key, date/time, amount/price,
// category/flag, text, code.
var nameFamilies = []nameFamily{
	{"email", regexp.MustCompile(`(?i)e-?mail`), 1000},
	{"phone", regexp.MustCompile(`(?i)phone|mobile|cell|fax`), 1000},
	{"id_key", regexp.MustCompile(`(?i)(^id$|_id$|^key$|_key$|identifier|^uuid$|_uuid$)`), 1000},
	{"date_time", regexp.MustCompile(`(?i)date|time|timestamp|_at$|_on$`), 5000},
	{"amount_price", regexp.MustCompile(`(?i)amount|price|cost|total|fee|balance|salary|revenue|amt`), 5000},
	{"category_flag", regexp.MustCompile(`(?i)categor|type|status|flag|^is_|^has_|active|enabled`), 2000},
	{"text", regexp.MustCompile(`(?i)description|comment|note|remarks|text|body|message`), 2000},
	{"code", regexp.MustCompile(`(?i)code|sku|symbol|ticker`), 2000},
}

// Advise inspects a column name and returns a recommendation. Unmatched
// names fall back to the "unknown" family with the widest sample size,
// since the advisor would rather over-sample an unrecognized column than
// under-sample it.
func Advise(columnName string) Advice {
	for _, f := range nameFamilies {
		if f.pattern.MatchString(columnName) {
			return Advice{
				SemanticFamily:        f.family,
				RecommendedSampleSize: f.sampleSize,
				Reasoning:             "column name matched the " + f.family + " family",
			}
		}
	}
	return Advice{
		SemanticFamily:        "unknown",
		RecommendedSampleSize: 10000,
		Reasoning:             "no name family matched, defaulting to widest sample",
	}
}
