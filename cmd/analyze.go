package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/wikipipe/core"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <processed-file>...",
	Short: "Compute corpus summary and quality statistics for processed documents",
	Long: `Analyze reads processed documents from one or more files (.json holding a
single document, .jsonl holding one document per line) and writes
corpus_summary.json and quality_report.json to the output directory.

Examples:
  wikipipe analyze output/ENG_processed.jsonl
  wikipipe analyze output/page_12345_processed.json output/page_67890_processed.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := newLocalApp()
	if err != nil {
		return err
	}

	var docs []core.ProcessedDocument
	for _, path := range args {
		loaded, err := loadDocuments(path)
		if err != nil {
			return err
		}
		docs = append(docs, loaded...)
	}
	fmt.Fprintf(os.Stdout, "Loaded %d documents\n", len(docs))

	summary, err := a.analyzer.Summarize(docs)
	if err != nil {
		return err
	}
	path, err := a.writer.WriteJSON("corpus_summary.json", summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  Written: %s\n", path)

	report, err := a.analyzer.AnalyzeQuality(docs)
	if err != nil {
		return err
	}
	path, err = a.writer.WriteJSON("quality_report.json", report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  Written: %s\n", path)

	fmt.Fprintf(os.Stdout, "Overall quality score: %.2f\n", report.QualityScore)
	return nil
}

// loadDocuments reads processed documents from a .json or .jsonl file.
func loadDocuments(path string) ([]core.ProcessedDocument, error) {
	switch ext := filepath.Ext(path); ext {
	case ".jsonl":
		return loadJSONL(path)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var doc core.ProcessedDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return []core.ProcessedDocument{doc}, nil
	default:
		return nil, fmt.Errorf("unsupported input %s: want .json or .jsonl", path)
	}
}

func loadJSONL(path string) ([]core.ProcessedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var docs []core.ProcessedDocument
	scanner := bufio.NewScanner(f)
	// Pages with large content bodies overflow the default token size.
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var doc core.ProcessedDocument
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return docs, nil
}
