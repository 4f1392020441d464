package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/wikipipe/core"
)

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, w.OutputDir)
	assert.DirExists(t, dir)
}

func TestWritePageJSON(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	doc := &core.ProcessedDocument{
		Content:  "prose",
		Metadata: core.Metadata{ID: "12345", Title: "Guide"},
		Tables:   []core.Table{},
	}
	path, err := w.WritePageJSON("12345", doc)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "page_12345_processed.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got core.ProcessedDocument
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Guide", got.Metadata.Title)
}

func TestWriteRawPage(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteRawPage("7", core.RawPage{ID: "7", Content: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "page_7_raw.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<p>x</p>")
}

func TestWriteSpaceJSONL(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	docs := []core.ProcessedDocument{
		{Metadata: core.Metadata{ID: "1"}},
		{Metadata: core.Metadata{ID: "2"}},
	}
	path, err := w.WriteSpaceJSONL("ENG", docs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "ENG_processed.jsonl"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		var doc core.ProcessedDocument
		require.NoError(t, json.Unmarshal([]byte(line), &doc))
		assert.Equal(t, docs[i].Metadata.ID, doc.Metadata.ID)
	}
}

func TestWriteRawCSV(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	pages := []core.RawPage{
		{ID: "1", Title: "A", URL: "u1", Version: 2, LastModified: "2026-01-01", Content: "<p>a, b</p>"},
	}
	path, err := w.WriteRawCSV("ENG", pages)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "ENG_raw.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"id", "title", "url", "version", "last_modified", "content"}, records[0])
	assert.Equal(t, []string{"1", "A", "u1", "2", "2026-01-01", "<p>a, b</p>"}, records[1])
}

func TestWriteJSON(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteJSON("corpus_summary.json", map[string]int{"total_pages": 3})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "corpus_summary.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_pages": 3`)
}

func TestWriteRendered(t *testing.T) {
	w, err := New(t.TempDir())
	require.NoError(t, err)

	path, err := w.WriteRendered("9", []byte("%PDF data"), ".pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "page_9.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF data", string(data))
}
