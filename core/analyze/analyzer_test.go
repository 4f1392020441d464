package analyze

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikipipe/core"
)

func fixedClock() core.Clock {
	fixed := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func docWithWords(n int) core.ProcessedDocument {
	words := make([]string, n)
	for i := range words {
		words[i] = "word"
	}
	return core.ProcessedDocument{Content: strings.Join(words, " ")}
}

func TestSummarizeEmptyCorpus(t *testing.T) {
	a := New(zerolog.Nop(), WithClock(fixedClock()))

	summary, err := a.Summarize(nil)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalPages)
	assert.Zero(t, summary.TotalWords)
	assert.Zero(t, summary.Averages.WordsPerPage)
	assert.Nil(t, summary.DateRange)
	assert.Equal(t, "2026-08-26T12:00:00Z", summary.GeneratedAt)
}

func TestSummarizeTotalsAndAverages(t *testing.T) {
	a := New(zerolog.Nop())

	docs := []core.ProcessedDocument{docWithWords(10), docWithWords(20)}
	docs[0].Tables = []core.Table{{}}
	docs[0].CodeBlocks = []core.CodeBlock{{}, {}}
	docs[1].Comments = []core.Comment{{}, {}, {}}

	summary, err := a.Summarize(docs)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalPages)
	assert.Equal(t, 30, summary.TotalWords)
	assert.Equal(t, 1, summary.TotalTables)
	assert.Equal(t, 2, summary.TotalCodeBlocks)
	assert.Equal(t, 3, summary.TotalComments)
	assert.Equal(t, 15.0, summary.Averages.WordsPerPage)
	assert.Equal(t, 0.5, summary.Averages.TablesPerPage)
	assert.Equal(t, 1.0, summary.Averages.CodeBlocksPerPage)
	assert.Equal(t, 1.5, summary.Averages.CommentsPerPage)
}

func TestSummarizeAveragesRounded(t *testing.T) {
	a := New(zerolog.Nop())

	docs := []core.ProcessedDocument{docWithWords(1), docWithWords(1), docWithWords(0)}
	summary, err := a.Summarize(docs)
	require.NoError(t, err)

	// 2/3 rounds to two decimals.
	assert.Equal(t, 0.67, summary.Averages.WordsPerPage)
}

func TestSummarizeDateRange(t *testing.T) {
	a := New(zerolog.Nop())

	docs := []core.ProcessedDocument{
		{Metadata: core.Metadata{LastModified: "2025-03-01T10:00:00Z"}},
		{Metadata: core.Metadata{LastModified: "2026-01-15"}},
		{Metadata: core.Metadata{LastModified: "not a date"}},
		{Metadata: core.Metadata{}},
	}

	summary, err := a.Summarize(docs)
	require.NoError(t, err)

	require.NotNil(t, summary.DateRange)
	assert.Equal(t, "2025-03-01T10:00:00Z", summary.DateRange.OldestPage)
	assert.Equal(t, "2026-01-15T00:00:00Z", summary.DateRange.NewestPage)
}

func TestSummarizeNoParseableDates(t *testing.T) {
	a := New(zerolog.Nop())

	docs := []core.ProcessedDocument{
		{Metadata: core.Metadata{LastModified: "yesterday"}},
	}

	summary, err := a.Summarize(docs)
	require.NoError(t, err)
	assert.Nil(t, summary.DateRange)
}

func TestAnalyzeQualityEmptyCorpus(t *testing.T) {
	a := New(zerolog.Nop())

	report, err := a.AnalyzeQuality(nil)
	require.NoError(t, err)

	assert.Empty(t, report.ReadabilityScores)
	assert.NotNil(t, report.ReadabilityScores)
	assert.Zero(t, report.Averages.Readability)
	assert.Equal(t, [2]float64{0, 0}, report.Ranges.Readability)
	assert.Zero(t, report.QualityScore)
}

func TestReadabilityClampedToRange(t *testing.T) {
	// 1000 words and no sentence terminators: the raw score is far below
	// zero and must clamp to 0.
	low := readability(strings.Repeat("word ", 1000))
	assert.Equal(t, 0.0, low)

	// Empty content: 0 words over 1 sentence piece clamps to 100.
	high := readability("")
	assert.Equal(t, 100.0, high)

	// Short sentences land strictly inside the range.
	mid := readability("One two three. Four five six.")
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 100.0)
}

func TestReadabilitySentenceSplitCountsPieces(t *testing.T) {
	// "a. b. c." splits into 4 pieces (including the empty tail), so
	// 3 words / 4 sentences.
	got := readability("a. b. c.")
	want := 206.835 - 1.015*(3.0/4.0)
	assert.InDelta(t, want, got, 1e-9)
}

func TestContentCompletenessCountsFields(t *testing.T) {
	full := core.ProcessedDocument{
		Content:    "prose",
		Metadata:   core.Metadata{ID: "1"},
		Tables:     []core.Table{{}},
		CodeBlocks: []core.CodeBlock{{}},
		Comments:   []core.Comment{{}},
	}
	assert.Equal(t, 100.0, contentCompleteness(full))

	empty := core.ProcessedDocument{}
	assert.Equal(t, 0.0, contentCompleteness(empty))

	partial := core.ProcessedDocument{Content: "prose", Metadata: core.Metadata{ID: "1"}}
	assert.Equal(t, 40.0, contentCompleteness(partial))
}

func TestMetadataCompletenessCountsFields(t *testing.T) {
	full := core.Metadata{
		ID: "1", Title: "t", URL: "u", Version: 2, LastModified: "2026-01-01",
	}
	assert.Equal(t, 100.0, metadataCompleteness(full))

	assert.Equal(t, 0.0, metadataCompleteness(core.Metadata{}))

	// Version zero counts as absent.
	noVersion := full
	noVersion.Version = 0
	assert.Equal(t, 80.0, metadataCompleteness(noVersion))
}

func TestFormattingQualityNearZeroOnNormalizedContent(t *testing.T) {
	// Normalized content has no markup left, so the indicator scan finds
	// nothing. The score is zero for typical processed documents.
	assert.Equal(t, 0.0, formattingQuality("Overview Service layout. func main() {}"))

	// Content that somehow retains literal tags still counts them.
	assert.Equal(t, 40.0, formattingQuality("<h1>x</h1> and <p>y</p>"))
}

func TestAnalyzeQualityAggregates(t *testing.T) {
	a := New(zerolog.Nop())

	docs := []core.ProcessedDocument{
		{
			Content:  "Short and sweet.",
			Metadata: core.Metadata{ID: "1", Title: "t", URL: "u", Version: 1, LastModified: "2026-01-01"},
			Tables:   []core.Table{{}},
		},
		{},
	}

	report, err := a.AnalyzeQuality(docs)
	require.NoError(t, err)

	require.Len(t, report.ReadabilityScores, 2)
	require.Len(t, report.ContentCompleteness, 2)

	assert.Equal(t, 60.0, report.ContentCompleteness[0])
	assert.Equal(t, 0.0, report.ContentCompleteness[1])
	assert.Equal(t, 30.0, report.Averages.ContentCompleteness)
	assert.Equal(t, [2]float64{0, 60}, report.Ranges.ContentCompleteness)

	assert.Equal(t, 100.0, report.MetadataCompleteness[0])
	assert.Equal(t, [2]float64{0, 100}, report.Ranges.MetadataCompleteness)

	wantScore := (report.Averages.Readability +
		report.Averages.ContentCompleteness +
		report.Averages.MetadataCompleteness +
		report.Averages.FormattingQuality) / 4
	assert.InDelta(t, wantScore, report.QualityScore, 1e-9)
}
