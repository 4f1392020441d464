// Package cmd implements the CLI commands for WikiPipe using Cobra.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Persistent flag variables.
var (
	flagConfig    string
	flagOutputDir string
	flagVerbose   bool
)

// logger is configured by the root command before any subcommand runs and
// passed into every component from there.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "wikipipe",
	Short: "Extract and process Confluence content for retrieval pipelines",
	Long: `WikiPipe extracts pages from a Confluence space, normalizes them into a flat
document schema (content, metadata, tables, code blocks, attachments,
comments), and computes corpus summary and content quality statistics.

Usage:
  wikipipe extract-space <space-key> [flags]
  wikipipe extract-page <page-id> [flags]
  wikipipe batch <input-file> [flags]
  wikipipe analyze <processed-file> [flags]
  wikipipe token [flags]`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.TimeFieldFormat = time.RFC3339
		level := zerolog.InfoLevel
		if flagVerbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).
			With().Timestamp().Logger()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: ./output)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
