// Package extract implements the per-page extraction stages.
// Each stage takes the same immutable raw page and produces one field of the
// processed document:
//  1. Text: visible prose with markup stripped
//  2. Tables: structured header/row data
//  3. Code: labeled code fragments
//  4. Metadata: canonical identity record
//  5. Attachments / Comments: normalized nested collections
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// tagPattern catches any angle-bracket run that survived parsing.
// Second line of defense against malformed markup.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Text strips markup from storage-format content and returns clean prose.
// Script and style elements are removed entirely, text nodes are joined with
// single spaces, leftover tags are stripped, and whitespace runs collapse to
// single spaces. Empty input yields empty output; plain text passes through
// unchanged.
func Text(markup string) (string, error) {
	if markup == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	doc.Find("script, style").Remove()

	var parts []string
	for _, root := range doc.Nodes {
		collectText(root, &parts)
	}
	text := strings.Join(parts, " ")

	text = tagPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " "), nil
}

// collectText gathers trimmed text nodes in document order.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}
