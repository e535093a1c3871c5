package semantic

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"dataprofiler/domain/profiling"
)

// bestInTaxonomy scores every entry in a taxonomy and returns the
// highest-scoring one that clears threshold.
func bestInTaxonomy(taxonomy string, entries []Entry, threshold float64, col ColumnEvidence) *Match {
	var best *Match
	for _, e := range entries {
		s, ev := score(e, col)
		if s < threshold {
			continue
		}
		if best == nil || s > best.Score {
			best = &Match{Tag: e.Tag, Score: s, Evidence: ev, Taxonomy: taxonomy}
		}
	}
	return best
}

// Tag is the Pattern/Semantic Tagger's entry point: it consults the
// binary-flag short-circuit, the enhanced code-like detector, the three
// taxonomies (in parallel, via errgroup), and the regex pattern
// detector, then reconciles them per the precedence rules in spec
// section 4.7.
func Tag(ctx context.Context, col ColumnEvidence, uniqueValues []string) (profiling.SemanticInfo, profiling.PatternInfo) {
	if tag, conf, ok := detectBinaryFlag(uniqueValues); ok {
		return profiling.SemanticInfo{
				Tags:           []string{tag},
				PrimaryTag:     tag,
				Confidence:     conf,
				Evidence:       []string{"binary_flag"},
				TaxonomySource: "schema.org",
			}, profiling.PatternInfo{}
	}

	var financeMatch, schemaOrgMatch, wikidataMatch *Match
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		financeMatch = bestInTaxonomy("finance", financeEntries, financeThreshold, col)
		return nil
	})
	g.Go(func() error {
		schemaOrgMatch = bestInTaxonomy("schema.org", schemaOrgEntries, schemaOrgThreshold, col)
		return nil
	})
	g.Go(func() error {
		wikidataMatch = bestInTaxonomy("wikidata", wikidataEntries, wikidataThreshold, col)
		return nil
	})
	_ = g.Wait() // taxonomy scoring never returns an error

	detectorName, detectorRate, detectorPII, detectorOK := detectPattern(col.Name, col.SampleValues)

	var codeResult codeLikeResult
	codeOK := false
	if col.Inferred == profiling.TypeString {
		codeResult, codeOK = detectCodeLike(col.Cardinality, avgLen(col.AvgLength), col.SampleValues)
	}

	winner := reconcile(financeMatch, schemaOrgMatch, wikidataMatch, codeResult, codeOK)

	info := profiling.SemanticInfo{}
	if winner != nil {
		info.Tags = []string{winner.Tag}
		info.PrimaryTag = winner.Tag
		info.Confidence = winner.Score
		info.Evidence = winner.Evidence
		info.TaxonomySource = winner.Taxonomy
	}

	pattern := profiling.PatternInfo{}
	if detectorOK {
		pattern.SemanticType = detectorName
		pattern.Confidence = detectorRate
		pattern.PIIDetected = detectorPII
		if detectorPII {
			pattern.PIITypes = []string{detectorName}
		}
	}

	return info, pattern
}

// reconcile applies the spec's precedence chain: finance overrides
// schema.org within a 0.10 confidence gap (or when finance scores
// higher); schema.org overrides the bare text fallback at >= 0.60;
// code-like detection overrides schema:Text when confident enough;
// wikidata is used only when finance and schema.org both miss
// threshold.
func reconcile(finance, schemaOrg, wikidata *Match, code codeLikeResult, codeOK bool) *Match {
	var winner *Match

	switch {
	case finance != nil && schemaOrg != nil:
		if finance.Score+0.10 >= schemaOrg.Score {
			winner = finance
		} else {
			winner = schemaOrg
		}
	case finance != nil:
		winner = finance
	case schemaOrg != nil:
		winner = schemaOrg
	case wikidata != nil:
		winner = wikidata
	}

	if winner != nil && winner.Tag == "schema:Text" && winner.Score < schemaOrgTextFallbackMin {
		winner = nil
		if wikidata != nil {
			winner = wikidata
		}
	}

	if codeOK {
		override := winner == nil || winner.Tag == "schema:Text"
		if winner != nil && (code.confidence >= 0.60 || code.confidence > winner.Score+0.10) {
			override = true
		}
		if override {
			winner = &Match{Tag: code.tag, Score: code.confidence, Taxonomy: "code_detector", Evidence: []string{"code_like_pattern"}}
		}
	}

	return winner
}

func avgLen(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// UniqueSortedValues is a small helper callers can use to build the
// uniqueValues argument to Tag from a column's sample values.
func UniqueSortedValues(samples []string) []string {
	seen := make(map[string]bool, len(samples))
	var out []string
	for _, s := range samples {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
