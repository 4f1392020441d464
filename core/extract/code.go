package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// defaultLanguage is used when a code element carries no class attribute.
const defaultLanguage = "text"

// Code extracts <code> and <pre> elements in document order. The language is
// the first class token on the element when present, else "text". A <code>
// nested inside <pre> produces two entries, matching how the elements are
// found independently.
func Code(markup string) ([]core.CodeBlock, error) {
	blocks := []core.CodeBlock{}
	if markup == "" {
		return blocks, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	doc.Find("code, pre").Each(func(_ int, sel *goquery.Selection) {
		language := defaultLanguage
		if class, ok := sel.Attr("class"); ok {
			if tokens := strings.Fields(class); len(tokens) > 0 {
				language = tokens[0]
			}
		}
		blocks = append(blocks, core.CodeBlock{
			Language: language,
			Content:  strings.TrimSpace(sel.Text()),
		})
	})

	return blocks, nil
}
