package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gaurav-prasanna/wikipipe/core"
	"github.com/gaurav-prasanna/wikipipe/core/chunk"
)

const (
	defaultEmbedURL  = "http://localhost:11434/api/embeddings"
	embeddingTimeout = 60 * time.Second
)

// EmbeddingsRenderer chunks document content and embeds each piece via an
// Ollama-compatible API. Output is a human-readable .embeddings.txt file.
type EmbeddingsRenderer struct {
	Model     string
	ChunkSize int
	BaseURL   string
	client    *http.Client
}

// NewEmbeddingsRenderer creates an EmbeddingsRenderer.
func NewEmbeddingsRenderer(model string, chunkSize int) *EmbeddingsRenderer {
	return &EmbeddingsRenderer{
		Model:     model,
		ChunkSize: chunkSize,
		BaseURL:   defaultEmbedURL,
		client:    &http.Client{Timeout: embeddingTimeout},
	}
}

// embedRequest is the request body for the embeddings API.
type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// embedResponse is the response body from the embeddings API.
type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Render chunks the document content, embeds each piece, and produces the
// .embeddings.txt output with page provenance in the header.
func (r *EmbeddingsRenderer) Render(doc *core.ProcessedDocument) ([]byte, error) {
	pieces := chunk.New(r.ChunkSize).Split(doc.Content)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("no content to embed for page %s", doc.Metadata.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# page: %s\n", doc.Metadata.ID)
	fmt.Fprintf(&b, "# source: %s\n", doc.Metadata.URL)
	fmt.Fprintf(&b, "# model: %s\n", r.Model)
	fmt.Fprintf(&b, "# chunk_size: %d\n\n", r.ChunkSize)

	ctx := context.Background()
	for _, piece := range pieces {
		embedding, err := r.embed(ctx, piece.Text)
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", piece.Index+1, err)
		}

		fmt.Fprintf(&b, "--- chunk %d (%d words) ---\n", piece.Index+1, piece.Words)
		fmt.Fprintf(&b, "TEXT:\n%s\n\n", piece.Text)

		vec := make([]string, len(embedding))
		for i, v := range embedding {
			vec[i] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(&b, "VECTOR:\n[%s]\n\n", strings.Join(vec, ", "))
	}

	return []byte(b.String()), nil
}

// Extension returns the file extension for embeddings output.
func (r *EmbeddingsRenderer) Extension() string {
	return ".embeddings.txt"
}

// embed calls the embeddings API for a single text input.
func (r *EmbeddingsRenderer) embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embedRequest{Model: r.Model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API returned %d: %s", resp.StatusCode, string(msg))
	}

	var out embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding embeddings response: %w", err)
	}
	return out.Embedding, nil
}
