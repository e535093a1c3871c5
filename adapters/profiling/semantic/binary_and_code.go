package semantic

import (
	"regexp"
	"strings"
)

var booleanPairs = [][2]string{
	{"0", "1"}, {"y", "n"}, {"yes", "no"}, {"true", "false"},
	{"t", "f"}, {"on", "off"}, {"active", "inactive"}, {"enabled", "disabled"},
}

// detectBinaryFlag short-circuits all other matching when a column has
// exactly two unique values that match a known boolean pair (spec
// section 4.7).
func detectBinaryFlag(uniqueValues []string) (tag string, confidence float64, ok bool) {
	if len(uniqueValues) != 2 {
		return "", 0, false
	}
	a := strings.ToLower(strings.TrimSpace(uniqueValues[0]))
	b := strings.ToLower(strings.TrimSpace(uniqueValues[1]))
	for _, pair := range booleanPairs {
		if (a == pair[0] && b == pair[1]) || (a == pair[1] && b == pair[0]) {
			return "schema:Boolean", 0.85, true
		}
	}
	return "", 0, false
}

var (
	ticketIDPattern  = regexp.MustCompile(`^[A-Za-z]+[-_]?\d+$`)
	cabinSeatPattern = regexp.MustCompile(`^[A-Za-z]\d{1,3}$`)
	shortCodePattern = regexp.MustCompile(`^[A-Z]{1,4}$`)
	genericIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// codeLikeResult is the enhanced code-like detector's verdict.
type codeLikeResult struct {
	tag        string
	confidence float64
}

// detectCodeLike runs before taxonomy matching for string-typed columns,
// looking for ticket identifiers, cabin/seat codes, short category
// codes, and generic identifiers (spec section 4.7). It overrides
// schema:Text when confident enough.
func detectCodeLike(cardinality float64, avgLength float64, samples []string) (codeLikeResult, bool) {
	if len(samples) == 0 {
		return codeLikeResult{}, false
	}

	matchRate := func(re *regexp.Regexp) float64 {
		hits := 0
		for _, v := range samples {
			if re.MatchString(v) {
				hits++
			}
		}
		return float64(hits) / float64(len(samples))
	}

	if cardinality > 0.9 {
		if rate := matchRate(ticketIDPattern); rate > 0.7 {
			confidence := 0.65 + 0.2*rate
			if confidence > 0.85 {
				confidence = 0.85
			}
			return codeLikeResult{"code:ticket_identifier", confidence}, true
		}
		if rate := matchRate(genericIDPattern); rate > 0.8 && avgLength <= 20 {
			return codeLikeResult{"code:generic_identifier", 0.6}, true
		}
	}

	if cardinality > 0.05 && cardinality < 0.6 && avgLength <= 4 {
		if rate := matchRate(cabinSeatPattern); rate > 0.5 {
			return codeLikeResult{"code:cabin_seat", 0.65}, true
		}
	}

	if cardinality < 0.1 && avgLength <= 4 {
		if rate := matchRate(shortCodePattern); rate > 0.6 {
			return codeLikeResult{"code:short_category", 0.62}, true
		}
	}

	return codeLikeResult{}, false
}
