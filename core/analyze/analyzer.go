// Package analyze computes corpus-level statistics over processed documents:
// aggregate counts with per-page averages, and a four-part content quality
// score. Both operations are pure functions of their input; an empty corpus
// is a defined valid case, not an error.
package analyze

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// sentencePattern splits content into sentence runs on terminal punctuation.
// A crude heuristic: splitting yields separator count + 1 pieces, including
// the empty tail after a trailing terminator.
var sentencePattern = regexp.MustCompile(`[.!?]+`)

// lastModifiedLayouts are tried in order when parsing document dates.
// Unparseable dates are excluded from the range, not errors.
var lastModifiedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// formattingIndicators is the fixed set of markup tags checked as literal
// substrings of document content. The normalizer has already stripped these
// tags from well-formed input, so the score sits near zero by construction;
// the behavior is kept as documented rather than corrected.
var formattingIndicators = []string{"<h1>", "<h2>", "<p>", "<table>", "<code>"}

// Analyzer computes summaries and quality reports for a processed corpus.
type Analyzer struct {
	logger zerolog.Logger
	clock  core.Clock
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithClock overrides the clock used for generation timestamps.
func WithClock(clock core.Clock) Option {
	return func(a *Analyzer) {
		if clock != nil {
			a.clock = clock
		}
	}
}

// New creates an Analyzer.
func New(logger zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{logger: logger, clock: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Summarize computes aggregate counts, per-page averages, and the
// last-modified date range for a corpus. An empty corpus yields all-zero
// counts and no date range.
func (a *Analyzer) Summarize(docs []core.ProcessedDocument) (summary *core.CorpusSummary, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Int("corpus_size", len(docs)).Msgf("failed to generate summary: %v", r)
			summary = nil
			err = &AnalysisError{Operation: "summary", CorpusSize: len(docs), Message: fmt.Sprint(r)}
		}
	}()

	generatedAt := a.clock().UTC().Format(time.RFC3339)
	if len(docs) == 0 {
		return &core.CorpusSummary{GeneratedAt: generatedAt}, nil
	}

	var words, tables, codeBlocks, comments int
	var dates []time.Time
	for _, doc := range docs {
		words += len(strings.Fields(doc.Content))
		tables += len(doc.Tables)
		codeBlocks += len(doc.CodeBlocks)
		comments += len(doc.Comments)

		if doc.Metadata.LastModified != "" {
			if t, ok := parseLastModified(doc.Metadata.LastModified); ok {
				dates = append(dates, t)
			}
		}
	}

	pages := float64(len(docs))
	summary = &core.CorpusSummary{
		TotalPages:      len(docs),
		TotalWords:      words,
		TotalTables:     tables,
		TotalCodeBlocks: codeBlocks,
		TotalComments:   comments,
		Averages: core.Averages{
			WordsPerPage:      round2(float64(words) / pages),
			TablesPerPage:     round2(float64(tables) / pages),
			CodeBlocksPerPage: round2(float64(codeBlocks) / pages),
			CommentsPerPage:   round2(float64(comments) / pages),
		},
		GeneratedAt: generatedAt,
	}

	if len(dates) > 0 {
		oldest, newest := dates[0], dates[0]
		for _, t := range dates[1:] {
			if t.Before(oldest) {
				oldest = t
			}
			if t.After(newest) {
				newest = t
			}
		}
		summary.DateRange = &core.DateRange{
			OldestPage: oldest.Format(time.RFC3339),
			NewestPage: newest.Format(time.RFC3339),
		}
	}

	return summary, nil
}

// AnalyzeQuality scores each document on readability, content completeness,
// metadata completeness, and formatting quality, then aggregates averages,
// min/max ranges, and one overall score (the mean of the four means).
// An empty corpus yields an all-zero report.
func (a *Analyzer) AnalyzeQuality(docs []core.ProcessedDocument) (report *core.QualityReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().Int("corpus_size", len(docs)).Msgf("failed to analyze content quality: %v", r)
			report = nil
			err = &AnalysisError{Operation: "quality", CorpusSize: len(docs), Message: fmt.Sprint(r)}
		}
	}()

	report = &core.QualityReport{
		ReadabilityScores:    []float64{},
		ContentCompleteness:  []float64{},
		MetadataCompleteness: []float64{},
		FormattingQuality:    []float64{},
	}
	if len(docs) == 0 {
		return report, nil
	}

	for _, doc := range docs {
		report.ReadabilityScores = append(report.ReadabilityScores, readability(doc.Content))
		report.ContentCompleteness = append(report.ContentCompleteness, contentCompleteness(doc))
		report.MetadataCompleteness = append(report.MetadataCompleteness, metadataCompleteness(doc.Metadata))
		report.FormattingQuality = append(report.FormattingQuality, formattingQuality(doc.Content))
	}

	report.Averages = core.QualityAverages{
		Readability:          mean(report.ReadabilityScores),
		ContentCompleteness:  mean(report.ContentCompleteness),
		MetadataCompleteness: mean(report.MetadataCompleteness),
		FormattingQuality:    mean(report.FormattingQuality),
	}
	report.Ranges = core.QualityRanges{
		Readability:          minMax(report.ReadabilityScores),
		ContentCompleteness:  minMax(report.ContentCompleteness),
		MetadataCompleteness: minMax(report.MetadataCompleteness),
		FormattingQuality:    minMax(report.FormattingQuality),
	}
	report.QualityScore = mean([]float64{
		report.Averages.Readability,
		report.Averages.ContentCompleteness,
		report.Averages.MetadataCompleteness,
		report.Averages.FormattingQuality,
	})

	return report, nil
}

// readability is a simplified Flesch reading ease:
// clamp(0, 100, 206.835 - 1.015 * words/sentences).
func readability(content string) float64 {
	words := float64(len(strings.Fields(content)))
	sentences := float64(len(sentencePattern.Split(content, -1)))
	if sentences < 1 {
		sentences = 1
	}
	score := 206.835 - 1.015*(words/sentences)
	return math.Max(0, math.Min(100, score))
}

// contentCompleteness is the fraction of populated top-level fields, x100.
func contentCompleteness(doc core.ProcessedDocument) float64 {
	present := 0
	if doc.Content != "" {
		present++
	}
	if doc.Metadata != (core.Metadata{}) {
		present++
	}
	if len(doc.Tables) > 0 {
		present++
	}
	if len(doc.CodeBlocks) > 0 {
		present++
	}
	if len(doc.Comments) > 0 {
		present++
	}
	return float64(present) / 5 * 100
}

// metadataCompleteness is the fraction of populated identity fields, x100.
func metadataCompleteness(meta core.Metadata) float64 {
	present := 0
	if meta.ID != "" {
		present++
	}
	if meta.Title != "" {
		present++
	}
	if meta.URL != "" {
		present++
	}
	if meta.Version != 0 {
		present++
	}
	if meta.LastModified != "" {
		present++
	}
	return float64(present) / 5 * 100
}

// formattingQuality is the fraction of formatting indicators found in the
// content, x100.
func formattingQuality(content string) float64 {
	found := 0
	for _, indicator := range formattingIndicators {
		if strings.Contains(content, indicator) {
			found++
		}
	}
	return float64(found) / float64(len(formattingIndicators)) * 100
}

func parseLastModified(value string) (time.Time, bool) {
	for _, layout := range lastModifiedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minMax(values []float64) [2]float64 {
	if len(values) == 0 {
		return [2]float64{0, 0}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]float64{lo, hi}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
