package extract

import (
	"regexp"
	"strings"

	"github.com/tradewatch/disclosures/internal/model"
)

// DocumentTable is the set of table-region rows extracted from one paginated
// House filing document. Column layout: owner, asset description,
// transaction type, transaction date, notification date, amount.
type DocumentTable struct {
	Rows [][]string
}

func (DocumentTable) Format() model.SourceFormat { return model.FormatDocumentTableRow }

const docTableMinCells = 5

// headerLabels mark repeated per-page header rows inside the document.
var headerLabels = map[string]bool{
	"id":    true,
	"owner": true,
	"asset": true,
}

// bracketTickerRe matches an embedded uppercase symbol in the asset cell,
// e.g. "Apple Inc. (AAPL)" or "Apple Inc. [AAPL]".
var bracketTickerRe = regexp.MustCompile(`[(\[]([A-Z]{1,5}(?:\.[A-Z]{1,2})?)[)\]]`)

func adaptDocumentTable(frag DocumentTable, ctx Context) ([]model.PartialFiling, int, error) {
	var (
		partials []model.PartialFiling
		skipped  int
	)

	for _, cells := range frag.Rows {
		if len(cells) < docTableMinCells {
			skipped++
			continue
		}
		first := strings.ToLower(strings.TrimSpace(cells[0]))
		if headerLabels[first] {
			// Repeated page header, not data.
			continue
		}

		asset := strings.TrimSpace(cells[1])
		var ticker string
		if m := bracketTickerRe.FindStringSubmatch(asset); m != nil {
			ticker = m[1]
		}

		p := model.PartialFiling{
			Chamber:        ctx.Chamber,
			Politician:     ctx.Politician,
			OwnerRaw:       strings.TrimSpace(cells[0]),
			AssetName:      asset,
			TickerRaw:      ticker,
			TxTypeRaw:      strings.TrimSpace(cells[2]),
			TransactionRaw: strings.TrimSpace(cells[3]),
			FilingRaw:      ctx.FilingDate,
			SourceURL:      ctx.SourceURL,
			SourceFormat:   model.FormatDocumentTableRow,
			Confidence:     confDocTable,
		}
		if len(cells) >= 6 {
			p.AmountRaw = strings.TrimSpace(cells[5])
		}

		partials = append(partials, p)
	}

	return partials, skipped, nil
}
