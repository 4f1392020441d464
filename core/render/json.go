// Package render provides output renderers for processed documents.
// Every renderer implements the core.Renderer interface and reports its file
// extension, so command code can select one and hand the bytes to the writer.
package render

import (
	"encoding/json"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// JSONRenderer produces indented JSON for a processed document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the document as indented JSON.
func (r *JSONRenderer) Render(doc *core.ProcessedDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
