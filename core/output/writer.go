// Package output handles file naming and writing for WikiPipe outputs.
// Single pages get page_{id}_* files; spaces get {key}_processed.jsonl,
// {key}_raw.csv and {key}_summary.json, mirroring the layout downstream
// ingestion jobs expect.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// Writer writes extraction results to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WritePageJSON writes one processed document as page_{id}_processed.json.
func (w *Writer) WritePageJSON(pageID string, doc *core.ProcessedDocument) (string, error) {
	return w.writeJSON(fmt.Sprintf("page_%s_processed.json", pageID), doc)
}

// WriteRawPage writes the raw page record as page_{id}_raw.json.
func (w *Writer) WriteRawPage(pageID string, page core.RawPage) (string, error) {
	return w.writeJSON(fmt.Sprintf("page_%s_raw.json", pageID), page)
}

// WriteSpaceJSONL writes processed documents as {key}_processed.jsonl,
// one document per line.
func (w *Writer) WriteSpaceJSONL(spaceKey string, docs []core.ProcessedDocument) (string, error) {
	path := filepath.Join(w.OutputDir, spaceKey+"_processed.jsonl")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i := range docs {
		if err := enc.Encode(&docs[i]); err != nil {
			return "", fmt.Errorf("encoding document %d: %w", i, err)
		}
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// WriteRawCSV writes raw pages as {key}_raw.csv with a header row.
func (w *Writer) WriteRawCSV(spaceKey string, pages []core.RawPage) (string, error) {
	path := filepath.Join(w.OutputDir, spaceKey+"_raw.csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"id", "title", "url", "version", "last_modified", "content"}); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, page := range pages {
		record := []string{page.ID, page.Title, page.URL, strconv.Itoa(page.Version), page.LastModified, page.Content}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("writing CSV record for page %s: %w", page.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	return path, nil
}

// WriteJSON writes any value as indented JSON under the given file name.
// Used for summaries, quality reports, and batch results.
func (w *Writer) WriteJSON(name string, v any) (string, error) {
	return w.writeJSON(name, v)
}

// WriteRendered writes renderer output as page_{id}{ext}.
func (w *Writer) WriteRendered(pageID string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, "page_"+pageID+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

func (w *Writer) writeJSON(name string, v any) (string, error) {
	path := filepath.Join(w.OutputDir, name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
