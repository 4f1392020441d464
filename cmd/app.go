package cmd

import (
	"fmt"

	"github.com/gaurav-prasanna/wikipipe/cache"
	"github.com/gaurav-prasanna/wikipipe/config"
	"github.com/gaurav-prasanna/wikipipe/confluence"
	"github.com/gaurav-prasanna/wikipipe/core/analyze"
	"github.com/gaurav-prasanna/wikipipe/core/metrics"
	"github.com/gaurav-prasanna/wikipipe/core/output"
	"github.com/gaurav-prasanna/wikipipe/core/process"
	"github.com/gaurav-prasanna/wikipipe/ratelimit"
)

// app wires the pipeline components from configuration.
type app struct {
	cfg       config.Config
	client    *confluence.Client
	processor *process.Processor
	analyzer  *analyze.Analyzer
	writer    *output.Writer
	metrics   metrics.Recorder
}

// newApp loads configuration and builds the pipeline. Commands that never
// touch the API (analyze) use newLocalApp instead.
func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var recorder metrics.Recorder = metrics.Nop{}
	if cfg.MetricsEnabled {
		recorder = metrics.NewRegistry()
	}

	clientOpts := []confluence.Option{confluence.WithMetrics(recorder)}
	if cfg.CacheDir != "" {
		clientOpts = append(clientOpts, confluence.WithCache(cache.New(cfg.CacheDir)))
	}
	if cfg.RateLimit > 0 {
		clientOpts = append(clientOpts, confluence.WithRateLimiter(ratelimit.New(cfg.RateLimit, cfg.RateWindow)))
	}

	writer, err := newWriter(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg: cfg,
		client: confluence.NewClient(
			cfg.ConfluenceURL, cfg.ConfluenceUsername, cfg.ConfluenceAPIToken,
			logger, clientOpts...),
		processor: process.New(logger,
			process.WithMetrics(recorder),
			process.WithStageTimeout(cfg.StageTimeout)),
		analyzer: analyze.New(logger),
		writer:   writer,
		metrics:  recorder,
	}, nil
}

// newLocalApp builds only the components that work on local files.
func newLocalApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	writer, err := newWriter(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		analyzer: analyze.New(logger),
		writer:   writer,
		metrics:  metrics.Nop{},
	}, nil
}

func newWriter(cfg config.Config) (*output.Writer, error) {
	dir := cfg.OutputDir
	if flagOutputDir != "" {
		dir = flagOutputDir
	}
	writer, err := output.New(dir)
	if err != nil {
		return nil, fmt.Errorf("initializing output writer: %w", err)
	}
	return writer, nil
}
