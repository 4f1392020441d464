package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// htmlStyle is the embedded stylesheet for standalone HTML exports.
const htmlStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; margin: 2rem; }
.metadata { background: #f5f5f5; padding: 1rem; margin-bottom: 1rem; }
.content { margin-bottom: 2rem; }
.tables { margin-top: 2rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
.code-block { background: #f8f8f8; padding: 1rem; margin: 1rem 0; }
.comments { margin-top: 2rem; border-top: 1px solid #ddd; }
.comment { margin: 1rem 0; padding: 1rem; background: #f9f9f9; }`

// HTMLRenderer produces a standalone HTML page for a processed document:
// metadata block, content, then tables, code blocks, and comments when
// present.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render builds the HTML export.
func (r *HTMLRenderer) Render(doc *core.ProcessedDocument) ([]byte, error) {
	title := doc.Metadata.Title
	if title == "" {
		title = "Untitled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html>\n<head>\n<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n", title, htmlStyle)

	fmt.Fprintf(&b, "<div class=\"metadata\">\n<h1>%s</h1>\n", title)
	fmt.Fprintf(&b, "<p>Last modified: %s</p>\n", valueOr(doc.Metadata.LastModified, "Unknown"))
	fmt.Fprintf(&b, "<p>URL: <a href=\"%s\">%s</a></p>\n</div>\n", valueOr(doc.Metadata.URL, "#"), valueOr(doc.Metadata.URL, "Unknown"))

	fmt.Fprintf(&b, "<div class=\"content\">\n%s\n</div>\n", doc.Content)

	if len(doc.Tables) > 0 {
		b.WriteString("<div class=\"tables\"><h2>Tables</h2>")
		for _, table := range doc.Tables {
			b.WriteString("<table><thead><tr>")
			for _, header := range table.Headers {
				fmt.Fprintf(&b, "<th>%s</th>", header)
			}
			b.WriteString("</tr></thead><tbody>")
			for _, row := range table.Data {
				b.WriteString("<tr>")
				for _, cell := range row {
					fmt.Fprintf(&b, "<td>%s</td>", cell)
				}
				b.WriteString("</tr>")
			}
			b.WriteString("</tbody></table>")
		}
		b.WriteString("</div>\n")
	}

	if len(doc.CodeBlocks) > 0 {
		b.WriteString("<div class=\"code-blocks\"><h2>Code Blocks</h2>")
		for _, block := range doc.CodeBlocks {
			fmt.Fprintf(&b, "<div class=\"code-block\"><code class=\"language-%s\">%s</code></div>", block.Language, block.Content)
		}
		b.WriteString("</div>\n")
	}

	if len(doc.Comments) > 0 {
		b.WriteString("<div class=\"comments\"><h2>Comments</h2>")
		for _, comment := range doc.Comments {
			fmt.Fprintf(&b, "<div class=\"comment\"><p><strong>%s</strong> - %s</p><p>%s</p></div>",
				valueOr(comment.Author, "Unknown"), valueOr(comment.Created, "Unknown"), comment.Content)
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</body>\n</html>\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
