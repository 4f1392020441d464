// Package process implements the page orchestrator.
// It fans one raw page out to the extraction stages concurrently, isolates
// per-stage failures behind typed empty defaults, and assembles exactly one
// processed document per page.
package process

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/wikipipe/core"
	"github.com/gaurav-prasanna/wikipipe/core/extract"
	"github.com/gaurav-prasanna/wikipipe/core/metrics"
)

// DefaultStageTimeout bounds a single extraction stage. A stage that exceeds
// it takes the same empty-default path as a failed one, so a hang in one
// extractor cannot hang the page.
const DefaultStageTimeout = 30 * time.Second

// Stage names used in failure logs.
const (
	stageText        = "text"
	stageTables      = "tables"
	stageCode        = "code"
	stageMetadata    = "metadata"
	stageAttachments = "attachments"
	stageComments    = "comments"
)

// Processor runs the extraction stages over raw pages. It holds no mutable
// state between calls and is safe to invoke concurrently across pages.
type Processor struct {
	logger  zerolog.Logger
	metrics metrics.Recorder
	timeout time.Duration
	clock   core.Clock

	textFn        func(core.RawPage) (string, error)
	tablesFn      func(core.RawPage) ([]core.Table, error)
	codeFn        func(core.RawPage) ([]core.CodeBlock, error)
	metadataFn    func(core.RawPage) (core.Metadata, error)
	attachmentsFn func(core.RawPage) ([]core.Attachment, error)
	commentsFn    func(core.RawPage) ([]core.Comment, error)
}

// Option configures a Processor.
type Option func(*Processor)

// WithMetrics sets the metrics recorder. Processing durations are recorded
// under the "page" operation.
func WithMetrics(r metrics.Recorder) Option {
	return func(p *Processor) {
		if r != nil {
			p.metrics = r
		}
	}
}

// WithStageTimeout overrides the per-stage timeout.
func WithStageTimeout(d time.Duration) Option {
	return func(p *Processor) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithClock overrides the clock used for processing timestamps.
func WithClock(clock core.Clock) Option {
	return func(p *Processor) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// New creates a Processor with the default extraction stages.
func New(logger zerolog.Logger, opts ...Option) *Processor {
	p := &Processor{
		logger:  logger,
		metrics: metrics.Nop{},
		timeout: DefaultStageTimeout,
		clock:   time.Now,
	}

	p.textFn = func(page core.RawPage) (string, error) {
		return extract.Text(page.Content)
	}
	p.tablesFn = func(page core.RawPage) ([]core.Table, error) {
		return extract.Tables(page.Content, page.ID, p.logger)
	}
	p.codeFn = func(page core.RawPage) ([]core.CodeBlock, error) {
		return extract.Code(page.Content)
	}
	p.metadataFn = func(page core.RawPage) (core.Metadata, error) {
		return extract.Metadata(page, p.clock)
	}
	p.attachmentsFn = extract.Attachments
	p.commentsFn = extract.Comments

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessPage produces exactly one processed document for the given page.
// The stages run concurrently over the same input and join before assembly.
// A single failing, panicking, or timed-out stage is logged and replaced by
// its typed empty default; only a whole-call failure (the context ending
// before assembly) surfaces, as a ProcessingError carrying the page id.
func (p *Processor) ProcessPage(ctx context.Context, page core.RawPage) (*core.ProcessedDocument, error) {
	start := time.Now()

	var (
		text        string
		tables      []core.Table
		codeBlocks  []core.CodeBlock
		meta        core.Metadata
		attachments []core.Attachment
		comments    []core.Comment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text = runStage(ctx, p, page, stageText, "", p.textFn)
		return nil
	})
	g.Go(func() error {
		tables = runStage(ctx, p, page, stageTables, []core.Table{}, p.tablesFn)
		return nil
	})
	g.Go(func() error {
		codeBlocks = runStage(ctx, p, page, stageCode, []core.CodeBlock{}, p.codeFn)
		return nil
	})
	g.Go(func() error {
		meta = runStage(ctx, p, page, stageMetadata, core.Metadata{}, p.metadataFn)
		return nil
	})
	g.Go(func() error {
		attachments = runStage(ctx, p, page, stageAttachments, []core.Attachment{}, p.attachmentsFn)
		return nil
	})
	g.Go(func() error {
		comments = runStage(ctx, p, page, stageComments, []core.Comment{}, p.commentsFn)
		return nil
	})

	// Join barrier: stage errors never propagate, so Wait only observes nil.
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		p.logger.Error().
			Str("page_id", page.ID).
			Err(err).
			Msg("failed to process page")
		return nil, &ProcessingError{PageID: page.ID, Message: "processing interrupted", Cause: err}
	}

	doc := &core.ProcessedDocument{
		Content:     text,
		Metadata:    meta,
		Tables:      tables,
		CodeBlocks:  codeBlocks,
		Attachments: attachments,
		Comments:    comments,
	}
	ensureDefaults(doc)

	p.metrics.RecordDuration("page", time.Since(start))
	return doc, nil
}

// ensureDefaults keeps the document invariant: every list field present and
// non-nil even when its stage returned nothing.
func ensureDefaults(doc *core.ProcessedDocument) {
	if doc.Tables == nil {
		doc.Tables = []core.Table{}
	}
	if doc.CodeBlocks == nil {
		doc.CodeBlocks = []core.CodeBlock{}
	}
	if doc.Attachments == nil {
		doc.Attachments = []core.Attachment{}
	}
	if doc.Comments == nil {
		doc.Comments = []core.Comment{}
	}
}

// runStage executes one extraction stage with failure isolation. Errors,
// panics, and timeouts all resolve to the stage's typed empty default after
// a warning log with the page id and stage name.
func runStage[T any](ctx context.Context, p *Processor, page core.RawPage, stage string, fallback T, fn func(core.RawPage) (T, error)) T {
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("stage panicked: %v", r)}
			}
		}()
		value, err := fn(page)
		done <- result{value: value, err: err}
	}()

	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case res := <-done:
		if res.err != nil {
			p.logger.Warn().
				Str("page_id", page.ID).
				Str("stage", stage).
				Err(res.err).
				Msg("failed to process content")
			return fallback
		}
		return res.value
	case <-timer.C:
		p.logger.Warn().
			Str("page_id", page.ID).
			Str("stage", stage).
			Dur("timeout", p.timeout).
			Msg("stage timed out")
		return fallback
	case <-ctx.Done():
		p.logger.Warn().
			Str("page_id", page.ID).
			Str("stage", stage).
			Err(ctx.Err()).
			Msg("stage canceled")
		return fallback
	}
}
