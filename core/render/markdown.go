package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Markdown converts storage-format markup into Markdown. Used for raw-page
// exports, where the original markup structure (headings, lists, links) is
// worth keeping for retrieval pipelines that ingest Markdown.
func Markdown(markup string) (string, error) {
	md, err := htmltomarkdown.ConvertString(markup)
	if err != nil {
		return "", fmt.Errorf("converting markup to markdown: %w", err)
	}
	return md, nil
}
