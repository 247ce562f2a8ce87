package house

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradewatch/disclosures/internal/extract"
	"github.com/tradewatch/disclosures/internal/model"
)

// maxDocumentPages bounds the walk through a filing document's pages.
const maxDocumentPages = 50

// FetchFilingTransactions pulls the transaction rows of one filing by
// walking its document page by page and adapting each page's table region.
// The index partial supplies the filing-level context.
func (c *Client) FetchFilingTransactions(ctx context.Context, filing model.PartialFiling) ([]model.PartialFiling, int, error) {
	ectx := extract.Context{
		Chamber:    model.ChamberHouse,
		BaseURL:    c.baseURL,
		Politician: filing.Politician,
		FilingDate: filing.FilingRaw,
		SourceURL:  filing.SourceURL,
	}

	var (
		partials []model.PartialFiling
		skipped  int
	)

	for page := 1; page <= maxDocumentPages; page++ {
		rows, err := c.fetchDocumentPage(ctx, filing.SourceURL, page)
		if err != nil {
			return partials, skipped, err
		}
		if len(rows) == 0 {
			break
		}

		ps, sk, err := extract.Adapt(extract.DocumentTable{Rows: rows}, ectx)
		if err != nil {
			return partials, skipped, err
		}
		partials = append(partials, ps...)
		skipped += sk
	}

	return partials, skipped, nil
}

// fetchDocumentPage retrieves one page of the document viewer and returns
// its table rows as cell matrices. A page without table rows ends the walk.
func (c *Client) fetchDocumentPage(ctx context.Context, docURL string, page int) ([][]string, error) {
	sep := "?"
	if strings.Contains(docURL, "?") {
		sep = "&"
	}

	pageCtx, cancel := context.WithTimeout(ctx, c.docTimeout)
	defer cancel()

	body, err := c.fetch(pageCtx, http.MethodGet, fmt.Sprintf("%s%spage=%d", docURL, sep, page), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch document page %d: %w", page, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse document page %d: %w", page, err)
	}

	var rows [][]string
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	return rows, nil
}

// indexRows parses the AJAX search fragment into index-row cell matrices.
// The first cell keeps its markup so the adapter can read the anchor target.
func indexRows(fragment string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse search fragment: %w", err)
	}

	var rows [][]string
	doc.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i == 0 {
				html, err := td.Html()
				if err != nil {
					html = td.Text()
				}
				cells = append(cells, strings.TrimSpace(html))
				return
			}
			cells = append(cells, strings.TrimSpace(td.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	return rows, nil
}
