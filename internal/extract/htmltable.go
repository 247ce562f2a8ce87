package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tradewatch/disclosures/internal/model"
)

// HTMLTable is a Senate filing detail page. Small result sets render a
// static transaction table; large ones ship the rows as a script-embedded
// data array and build the table client-side. Both shapes must be handled.
type HTMLTable struct {
	HTML string
}

func (HTMLTable) Format() model.SourceFormat { return model.FormatHTMLTableRow }

// Transaction table column layout on the detail page.
const htmlTableMinCells = 8

var scriptDataRe = regexp.MustCompile(`(?s)var\s+(?:transactions|tableData)\s*=\s*(\[.*?\])\s*;`)

func adaptHTMLTable(frag HTMLTable, ctx Context) ([]model.PartialFiling, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(frag.HTML))
	if err != nil {
		return nil, 0, &ShapeDriftError{Format: model.FormatHTMLTableRow, Detail: "unparseable html: " + err.Error()}
	}

	var rows [][]string

	// Primary: the statically rendered transaction table.
	table := doc.Find("table.transactions, table#transactions").First()
	if table.Length() > 0 {
		table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td").Each(func(_ int, td *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(td.Text()))
			})
			rows = append(rows, cells)
		})
	} else {
		// Fallback: the client-side table's embedded data array.
		rows, err = scriptDataRows(doc)
		if err != nil {
			return nil, 0, err
		}
	}

	var (
		partials []model.PartialFiling
		skipped  int
	)
	for _, cells := range rows {
		if len(cells) < htmlTableMinCells {
			skipped++
			continue
		}
		partials = append(partials, model.PartialFiling{
			Chamber:        ctx.Chamber,
			Politician:     ctx.Politician,
			TransactionRaw: cells[1],
			FilingRaw:      ctx.FilingDate,
			OwnerRaw:       cells[2],
			TickerRaw:      cells[3],
			AssetName:      cells[4],
			AssetTypeRaw:   cells[5],
			TxTypeRaw:      cells[6],
			AmountRaw:      cells[7],
			SourceURL:      ctx.SourceURL,
			SourceFormat:   model.FormatHTMLTableRow,
			Confidence:     confHTML,
		})
	}

	return partials, skipped, nil
}

// scriptDataRows scans inline scripts for the embedded row array.
func scriptDataRows(doc *goquery.Document) ([][]string, error) {
	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if m := scriptDataRe.FindStringSubmatch(s.Text()); m != nil {
			raw = m[1]
			return false
		}
		return true
	})

	if raw == "" {
		return nil, &ShapeDriftError{
			Format: model.FormatHTMLTableRow,
			Detail: "no transaction table and no embedded data array",
		}
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, &ShapeDriftError{
			Format: model.FormatHTMLTableRow,
			Detail: "embedded data array is not a string matrix: " + err.Error(),
		}
	}

	// Embedded cells may still carry markup.
	for i, cells := range rows {
		for j, c := range cells {
			rows[i][j] = stripTags(c)
		}
	}
	return rows, nil
}
