// Package profiling wires the chunk source, column accumulators, memory
// governor, and every downstream analytical component into the single
// Profile operation the rest of the module exposes (spec section 2's
// data-flow diagram).
package profiling

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"time"

	"dataprofiler/adapters/profiling/accumulator"
	profcontext "dataprofiler/adapters/profiling/context"
	"dataprofiler/adapters/profiling/correlation"
	"dataprofiler/adapters/profiling/governor"
	"dataprofiler/adapters/profiling/quality"
	"dataprofiler/adapters/profiling/sampler"
	"dataprofiler/adapters/profiling/semantic"
	"dataprofiler/adapters/profiling/stats"
	"dataprofiler/adapters/profiling/suggest"
	"dataprofiler/adapters/profiling/typeinfer"
	"dataprofiler/domain/chunk"
	"dataprofiler/domain/core"
	"dataprofiler/domain/profiling"
	"dataprofiler/internal/apperr"
	"dataprofiler/internal/config"
	"dataprofiler/internal/obslog"
)

// outlierZThreshold is how many standard deviations from a column's mean
// a row-sample value must sit before the contextual validator is asked
// to review it (spec section 4.9).
const outlierZThreshold = 3.0

// maxExplanationSamples bounds how many contextual-validator verdicts
// are carried into the emitted ProfileResult.
const maxExplanationSamples = 20

// rowSample is one row's worth of raw values, keyed by column name. The
// profiler keeps a bounded reservoir of these so Context Discovery and
// the Contextual Validator can reason about rows jointly across columns
// instead of each column's independently-sampled reservoir.
type rowSample map[string]chunk.Value

// CancellationFlag is polled between chunks; when it returns true the
// profiler returns apperr.Cancelled with the row count reached so far
// (spec section 5).
type CancellationFlag func() bool

// Profiler drives one profiling run end to end.
type Profiler struct {
	cfg    config.ProfilerConfig
	logger *obslog.Logger
}

// New builds a Profiler bound to the given config and logger.
func New(cfg config.ProfilerConfig, logger *obslog.Logger) *Profiler {
	if logger == nil {
		logger = obslog.DefaultLogger
	}
	return &Profiler{cfg: cfg, logger: logger}
}

// Profile runs the full pipeline over src and returns a ProfileResult,
// or one of the five fatal apperr kinds (spec section 7). sourceIdentity
// and format are opaque labels copied into the result; they are not
// interpreted by the profiler.
func (p *Profiler) Profile(ctx context.Context, src chunk.Source, sourceIdentity, format string, cancelled CancellationFlag) (profiling.ProfileResult, error) {
	start := time.Now()

	gov := governor.New(p.cfg.GovernorProbeInterval, p.cfg.GovernorWarnPercent, p.cfg.GovernorCritPercent, p.logger)

	var columnOrder []string
	accs := make(map[string]*accumulator.ColumnAccumulator)
	var rowsProcessed int64

	rowRng := rand.New(rand.NewSource(p.cfg.RandomSeed))
	rowReservoir := sampler.NewReservoir[rowSample](p.cfg.NumericCap, rowRng)

	for {
		if cancelled != nil && cancelled() {
			return profiling.ProfileResult{}, apperr.NewCancelled(rowsProcessed)
		}

		batch, ok, err := src.Next(ctx)
		if err != nil {
			return profiling.ProfileResult{}, apperr.NewSourceFailure(err)
		}
		if !ok {
			break
		}

		if columnOrder == nil {
			columnOrder = append(columnOrder, batch.ColumnNames...)
			for _, name := range columnOrder {
				acc := accumulator.New(name, p.cfg, p.cfg.RandomSeed)
				if batch.DeclaredType != nil {
					if dt, ok := batch.DeclaredType[name]; ok {
						dtCopy := dt
						acc.DeclaredType = &dtCopy
					}
				}
				accs[name] = acc
			}
		} else if !sameColumns(columnOrder, batch.ColumnNames) {
			return profiling.ProfileResult{}, apperr.NewBadChunkSchema(columnOrder, batch.ColumnNames)
		}

		for _, name := range columnOrder {
			if err := accs[name].Update(batch.Column(name)); err != nil {
				return profiling.ProfileResult{}, err
			}
		}

		for i := 0; i < batch.Rows(); i++ {
			row := make(rowSample, len(columnOrder))
			for _, name := range columnOrder {
				row[name] = batch.Column(name)[i]
			}
			rowReservoir.Add(row)
		}

		rowsProcessed += int64(batch.Rows())

		if err := gov.Tick(rowsProcessed); err != nil {
			return profiling.ProfileResult{}, err
		}
	}
	if err := src.Close(); err != nil {
		return profiling.ProfileResult{}, apperr.NewSourceFailure(err)
	}

	columns := make([]profiling.ColumnProfile, 0, len(columnOrder))
	columnStats := make(map[string]profiling.ColumnStatistics, len(columnOrder))
	numericEligible := make(map[string]bool, len(columnOrder))
	contextNumericEligible := make(map[string]bool, len(columnOrder))
	contextCategoricalEligible := make(map[string]bool, len(columnOrder))
	suggestInputs := make([]suggest.ColumnInput, 0, len(columnOrder))

	for _, name := range columnOrder {
		acc := accs[name]
		inferred := typeinfer.Reconcile(acc.TypeTally, acc.TypeSampledCount, acc.DeclaredInferredType(), acc.SampleValues)
		st := stats.Calculate(acc, inferred)

		ev := semantic.ColumnEvidence{
			Name:         name,
			Inferred:     inferred.InferredType,
			Cardinality:  st.Cardinality,
			Min:          st.Min,
			Max:          st.Max,
			AvgLength:    st.AvgLength,
			SampleValues: acc.SampleValues,
		}
		semInfo, patInfo := semantic.Tag(ctx, ev, semantic.UniqueSortedValues(acc.SampleValues))
		st.SemanticType = semInfo.PrimaryTag

		qm := quality.Score(st, inferred)

		columns = append(columns, profiling.ColumnProfile{
			Name:       name,
			Type:       inferred,
			Statistics: st,
			Quality:    qm,
			Semantic:   semInfo,
			Pattern:    patInfo,
		})
		columnStats[name] = st

		suggestInputs = append(suggestInputs, suggest.ColumnInput{
			Name:         name,
			InferredType: inferred.InferredType,
			Completeness: 1 - st.NullPct/100,
			Cardinality:  st.Cardinality,
			UniqueCount:  st.UniqueCount,
			RowCount:     rowsProcessed,
			Min:          st.Min,
			Max:          st.Max,
			SemanticType: semInfo.PrimaryTag,
			Pattern:      patInfo,
		})

		if inferred.InferredType == profiling.TypeInteger || inferred.InferredType == profiling.TypeFloat {
			numericEligible[name] = true
			if inferred.InferredType == profiling.TypeFloat || st.UniqueCount > 10 {
				contextNumericEligible[name] = true
			}
		}
		if st.UniqueCount >= 2 && st.UniqueCount <= 20 {
			contextCategoricalEligible[name] = true
		}
	}

	// Re-derive numeric and categorical column series from the joint
	// row-sample reservoir rather than each column's own independently
	// sampled reservoir, so every series lines up row for row: the
	// Correlation Engine, Context Discovery, and the outlier candidates
	// below all need a value at index i in one column to refer to the
	// same source row as index i in another.
	rowNumeric := make(map[string][]float64, len(numericEligible))
	rowCategorical := make(map[string][]string, len(contextCategoricalEligible))
	for _, row := range rowReservoir.Items() {
		for name := range numericEligible {
			f := math.NaN()
			if v, ok := row[name]; ok && !v.Null {
				if parsed, err := strconv.ParseFloat(v.AsString(), 64); err == nil {
					f = parsed
				}
			}
			rowNumeric[name] = append(rowNumeric[name], f)
		}
		for name := range contextCategoricalEligible {
			s := ""
			if v, ok := row[name]; ok && !v.Null {
				s = v.AsString()
			}
			rowCategorical[name] = append(rowCategorical[name], s)
		}
	}

	var numericCols []correlation.NumericColumn
	var contextNumeric []profcontext.NumericColumn
	for _, name := range columnOrder {
		if !numericEligible[name] {
			continue
		}
		numericCols = append(numericCols, correlation.NumericColumn{Name: name, Values: rowNumeric[name]})
		if contextNumericEligible[name] {
			contextNumeric = append(contextNumeric, profcontext.NumericColumn{Name: name, Values: rowNumeric[name]})
		}
	}
	var contextCategorical []profcontext.CategoricalColumn
	for _, name := range columnOrder {
		if contextCategoricalEligible[name] {
			contextCategorical = append(contextCategorical, profcontext.CategoricalColumn{Name: name, Values: rowCategorical[name]})
		}
	}

	correlations := correlation.Compute(numericCols, p.cfg)
	subgroups := profcontext.DiscoverSubgroups(contextCategorical, contextNumeric, p.cfg.VarianceExplainedThreshold, p.cfg.MinSegmentRows)
	correlationPatterns := profcontext.DiscoverCorrelationPatterns(contextNumeric, p.cfg.CorrelationMinAbsR)

	candidates := findOutlierCandidates(rowNumeric, rowCategorical, columnStats, subgroups)
	explanations := profcontext.ReviewOutlierCandidates(candidates, subgroups, correlationPatterns, p.cfg.VarianceExplainedThreshold, p.cfg.SuspicionThreshold)
	contextualValidation := summarizeExplanations(explanations)

	suggestions := suggest.Suggest(rowsProcessed, suggestInputs)

	overallQuality := averageQuality(columns)

	result := profiling.ProfileResult{
		ID:                   core.NewProfileID(),
		SourceIdentity:       sourceIdentity,
		Format:               format,
		RowCount:             rowsProcessed,
		ColumnCount:          len(columnOrder),
		ProducedAt:           core.Now(),
		ProcessingMs:         time.Since(start).Milliseconds(),
		Columns:              columns,
		Correlations:         correlations,
		Subgroups:            subgroups,
		CorrelationPatterns:  correlationPatterns,
		ContextualValidation: contextualValidation,
		Suggestions:          suggestions,
		OverallQuality:       overallQuality,
		Fingerprint:          core.ComputeFingerprint(sourceIdentity, p.cfg.RandomSeed, columnOrder).String(),
	}
	if p.logger != nil {
		p.logger.InfoFields("profile complete",
			obslog.F("rows_processed", rowsProcessed),
			obslog.F("columns", len(columnOrder)),
			obslog.F("processing_ms", result.ProcessingMs))
	}
	return result, nil
}

// findOutlierCandidates flags row-sample values more than
// outlierZThreshold standard deviations from their column's mean, for
// the contextual validator to review against subgroup and correlation
// patterns. A candidate's segment is taken from whichever categorical
// column the strongest subgroup pattern for its numeric column names,
// if any.
func findOutlierCandidates(
	rowNumeric map[string][]float64,
	rowCategorical map[string][]string,
	columnStats map[string]profiling.ColumnStatistics,
	subgroups []profiling.SubgroupPattern,
) []profcontext.OutlierCandidate {
	segmentColumnFor := make(map[string]string, len(subgroups))
	for _, sg := range subgroups {
		if _, exists := segmentColumnFor[sg.ValueColumn]; !exists {
			segmentColumnFor[sg.ValueColumn] = sg.SegmentColumn // subgroups is sorted by variance explained descending
		}
	}

	var candidates []profcontext.OutlierCandidate
	for name, values := range rowNumeric {
		st, ok := columnStats[name]
		if !ok || st.Mean == nil || st.Std == nil || *st.Std == 0 {
			continue
		}
		segCol, hasSegCol := segmentColumnFor[name]
		var segValues []string
		if hasSegCol {
			segValues = rowCategorical[segCol]
		}

		for i, v := range values {
			if math.IsNaN(v) {
				continue
			}
			z := math.Abs(v-*st.Mean) / *st.Std
			if z < outlierZThreshold {
				continue
			}
			segment := ""
			if i < len(segValues) {
				segment = segValues[i]
			}
			candidates = append(candidates, profcontext.OutlierCandidate{
				Column:    name,
				Value:     v,
				Segment:   segment,
				Suspicion: math.Min(1.0, z/outlierZThreshold),
			})
		}
	}
	return candidates
}

// summarizeExplanations turns the contextual validator's per-candidate
// verdicts into the counts and small reason-bearing sample the emitted
// ProfileResult carries.
func summarizeExplanations(explanations []profcontext.Explanation) profiling.ContextualValidation {
	summary := profiling.ContextualValidation{CandidatesReviewed: len(explanations)}
	for _, e := range explanations {
		if e.Explained {
			summary.ExplainedCount++
		}
		if len(summary.Samples) < maxExplanationSamples {
			summary.Samples = append(summary.Samples, profiling.OutlierExplanation{
				Column:    e.Candidate.Column,
				Value:     e.Candidate.Value,
				Segment:   e.Candidate.Segment,
				Suspicion: e.SuspicionAfter,
				Explained: e.Explained,
				Reasons:   e.Reasons,
			})
		}
	}
	return summary
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func averageQuality(columns []profiling.ColumnProfile) float64 {
	if len(columns) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range columns {
		sum += c.Quality.OverallScore
	}
	return sum / float64(len(columns))
}
