package extract

import (
	"errors"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/wikipipe/core"
)

// Tables extracts every <table> element into structured header/row data.
// A single malformed table is logged with the page id and skipped; the
// remaining tables on the page still extract.
func Tables(markup string, pageID string, logger zerolog.Logger) ([]core.Table, error) {
	tables := []core.Table{}
	if markup == "" {
		return tables, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		table, err := parseTable(sel)
		if err != nil {
			logger.Warn().
				Str("page_id", pageID).
				Err(err).
				Msg("failed to process table")
			return
		}
		tables = append(tables, table)
	})

	return tables, nil
}

// parseTable converts one table element into headers + row-major cell matrix.
// Headers come from first-row <th> cells; a table without a header row gets
// positional column-index strings and keeps every row as data. Ragged rows
// are preserved as-is.
func parseTable(sel *goquery.Selection) (core.Table, error) {
	rows := sel.Find("tr")
	if rows.Length() == 0 {
		return core.Table{}, errors.New("table has no rows")
	}

	var headers []string
	dataStart := 0

	headerCells := rows.First().Find("th")
	if headerCells.Length() > 0 {
		headerCells.Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		dataStart = 1
	}

	data := [][]string{}
	rows.Each(func(i int, row *goquery.Selection) {
		if i < dataStart {
			return
		}
		cells := []string{}
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		data = append(data, cells)
	})

	if headers == nil {
		// No header row: positional column labels, like a dataframe would assign.
		width := 0
		for _, row := range data {
			if len(row) > width {
				width = len(row)
			}
		}
		headers = make([]string, width)
		for i := range headers {
			headers[i] = strconv.Itoa(i)
		}
	}

	return core.Table{
		Headers: headers,
		Data:    data,
		Shape:   [2]int{len(data), len(headers)},
	}, nil
}
