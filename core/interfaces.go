// Package core defines the document schema and stage interfaces for WikiPipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// RawPage is a page record as delivered by the Confluence client.
// It is immutable input to processing.
type RawPage struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"` // storage-format markup
	URL          string       `json:"url"`
	Version      int          `json:"version"`
	LastModified string       `json:"last_modified"`
	Attachments  []RawRecord  `json:"attachments,omitempty"`
	Comments     []RawComment `json:"comments,omitempty"`
}

// RawRecord is an attachment record before normalization. Field names follow
// the Confluence API payload.
type RawRecord struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	MediaType string `json:"mediaType"`
}

// RawComment is a comment record before normalization. Content may itself
// contain storage-format markup.
type RawComment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Created string `json:"created"`
	Content string `json:"content"`
}

// Metadata is the canonical identity record of a processed page.
type Metadata struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Version      int    `json:"version"`
	LastModified string `json:"last_modified"`
	Source       string `json:"source"`
	ProcessedAt  string `json:"processed_at"` // RFC3339, stamped at processing time
}

// Table is a structured table extracted from page markup.
// Rows may be ragged when the source markup is malformed.
type Table struct {
	Headers []string   `json:"headers"`
	Data    [][]string `json:"data"`
	Shape   [2]int     `json:"shape"` // (rows, cols)
}

// CodeBlock is a labeled code fragment extracted from page markup.
type CodeBlock struct {
	Language string `json:"language"` // defaults to "text"
	Content  string `json:"content"`
}

// Attachment is a normalized attachment record.
type Attachment struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Size      int64  `json:"size"`
	MediaType string `json:"media_type"`
}

// Comment is a normalized comment record. Content has been passed through
// the text normalizer.
type Comment struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Created string `json:"created"`
	Content string `json:"content"`
}

// ProcessedDocument is the canonical flat document produced for one page.
// Every field is present with a type-correct default even when its extraction
// stage failed.
type ProcessedDocument struct {
	Content     string       `json:"content"`
	Metadata    Metadata     `json:"metadata"`
	Tables      []Table      `json:"tables"`
	CodeBlocks  []CodeBlock  `json:"code_blocks"`
	Attachments []Attachment `json:"attachments"`
	Comments    []Comment    `json:"comments"`
}

// Averages holds the per-page averages of a corpus summary.
type Averages struct {
	WordsPerPage      float64 `json:"words_per_page"`
	TablesPerPage     float64 `json:"tables_per_page"`
	CodeBlocksPerPage float64 `json:"code_blocks_per_page"`
	CommentsPerPage   float64 `json:"comments_per_page"`
}

// DateRange is the span of last-modified dates in a corpus. Nil when no
// document carried a parseable date.
type DateRange struct {
	OldestPage string `json:"oldest_page"`
	NewestPage string `json:"newest_page"`
}

// CorpusSummary holds aggregate statistics over a set of processed documents.
// It is computed on demand and never persisted by the core.
type CorpusSummary struct {
	TotalPages      int        `json:"total_pages"`
	TotalWords      int        `json:"total_words"`
	TotalTables     int        `json:"total_tables"`
	TotalCodeBlocks int        `json:"total_code_blocks"`
	TotalComments   int        `json:"total_comments"`
	Averages        Averages   `json:"averages"`
	DateRange       *DateRange `json:"date_range,omitempty"`
	GeneratedAt     string     `json:"generated_at"`
}

// QualityAverages holds the corpus-wide means of the four quality scores.
type QualityAverages struct {
	Readability          float64 `json:"readability"`
	ContentCompleteness  float64 `json:"content_completeness"`
	MetadataCompleteness float64 `json:"metadata_completeness"`
	FormattingQuality    float64 `json:"formatting_quality"`
}

// QualityRanges holds [min, max] pairs for the four quality scores.
type QualityRanges struct {
	Readability          [2]float64 `json:"readability"`
	ContentCompleteness  [2]float64 `json:"content_completeness"`
	MetadataCompleteness [2]float64 `json:"metadata_completeness"`
	FormattingQuality    [2]float64 `json:"formatting_quality"`
}

// QualityReport holds per-document quality scores and their corpus-wide
// aggregates. QualityScore is the mean of the four averages.
type QualityReport struct {
	ReadabilityScores    []float64       `json:"readability_scores"`
	ContentCompleteness  []float64       `json:"content_completeness"`
	MetadataCompleteness []float64       `json:"metadata_completeness"`
	FormattingQuality    []float64       `json:"formatting_quality"`
	Averages             QualityAverages `json:"averages"`
	Ranges               QualityRanges   `json:"ranges"`
	QualityScore         float64         `json:"quality_score"`
}

// PageSource supplies raw page records. Pagination and rate limiting are the
// implementation's concern; the core treats it as an opaque producer.
type PageSource interface {
	GetSpaceContent(ctx context.Context, spaceKey string) ([]RawPage, error)
	GetPage(ctx context.Context, pageID string) (RawPage, error)
}

// Processor turns one raw page into exactly one processed document.
type Processor interface {
	ProcessPage(ctx context.Context, page RawPage) (*ProcessedDocument, error)
}

// Analyzer computes corpus-level statistics over processed documents.
type Analyzer interface {
	Summarize(docs []ProcessedDocument) (*CorpusSummary, error)
	AnalyzeQuality(docs []ProcessedDocument) (*QualityReport, error)
}

// Renderer converts a processed document into a final output format.
type Renderer interface {
	Render(doc *ProcessedDocument) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}

// Clock abstracts wall-clock time so processing timestamps are testable.
type Clock func() time.Time
