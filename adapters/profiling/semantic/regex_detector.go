package semantic

import "regexp"

type regexPattern struct {
	name    string
	pattern *regexp.Regexp
}

// detectorPatterns are the pre-compiled, anchored patterns the regex
// pattern detector runs independently of the taxonomy matchers (spec
// section 4.7).
var detectorPatterns = []regexPattern{
	{"email", regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)},
	{"ssn", regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)},
	{"credit_card", regexp.MustCompile(`^(?:\d{4}[ -]?){3}\d{4}$`)},
	{"uuid", regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)},
	{"phone_us", regexp.MustCompile(`^\(?\d{3}\)?[ -]?\d{3}[ -]?\d{4}$`)},
	{"zipcode_us", regexp.MustCompile(`^\d{5}(-\d{4})?$`)},
	{"url", regexp.MustCompile(`^https?://[^\s]+$`)},
	{"ipv4", regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)},
	{"currency", regexp.MustCompile(`^[$€£¥]\s?\d[\d,]*(\.\d+)?$`)},
	{"phone_intl", regexp.MustCompile(`^\+\d{1,3}[ -]?\d{4,14}$`)},
}

// piiTypes is the subset of detector patterns that count toward the PII
// flag.
var piiTypes = map[string]bool{
	"email": true, "phone_us": true, "phone_intl": true, "ssn": true, "credit_card": true,
}

// unlikelyPIINames blocks a column name from being flagged PII even when
// its values happen to match a PII-shaped regex (e.g. a numeric "id"
// column whose values coincidentally look like US phone numbers).
var unlikelyPIINames = map[string]bool{
	"id": true, "amount": true, "count": true, "total": true, "quantity": true,
	"price": true, "date": true, "time": true, "year": true, "month": true,
	"day": true, "score": true, "rating": true, "value": true,
}

const detectorMatchRateThreshold = 0.30

// detectPattern runs the regex pattern detector over a column's sample
// values and returns the best match, if any cleared the 30% match-rate
// threshold.
func detectPattern(columnName string, samples []string) (name string, matchRate float64, pii bool, ok bool) {
	if len(samples) == 0 {
		return "", 0, false, false
	}

	bestName := ""
	bestRate := 0.0
	for _, p := range detectorPatterns {
		hits := 0
		for _, v := range samples {
			if p.pattern.MatchString(v) {
				hits++
			}
		}
		rate := float64(hits) / float64(len(samples))
		if rate > bestRate {
			bestRate = rate
			bestName = p.name
		}
	}

	if bestRate < detectorMatchRateThreshold {
		return "", 0, false, false
	}

	isPII := piiTypes[bestName] && !unlikelyPIINames[normalizeColumnName(columnName)]
	return bestName, bestRate, isPII, true
}

func normalizeColumnName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}
