package extract

import (
	"github.com/tradewatch/disclosures/internal/model"
)

// TabularRow is one row of the Senate query API's JSON payload: a
// fixed-length array of cell strings. Cell 0 embeds the filer's display name
// inside an anchor whose target is the filing detail page.
type TabularRow struct {
	Cells []string
}

func (TabularRow) Format() model.SourceFormat { return model.FormatTabularRow }

// adaptTabularRow produces the filing-level partial for one index row. The
// transaction fields are filled in later from the detail page the row links
// to; the filing date is the row's last cell.
func adaptTabularRow(row TabularRow, ctx Context) (model.PartialFiling, error) {
	if len(row.Cells) < 2 {
		return model.PartialFiling{}, &AdaptationError{
			Format: model.FormatTabularRow,
			Reason: "row has fewer than 2 cells",
		}
	}

	m := anchorHrefRe.FindStringSubmatch(row.Cells[0])
	if m == nil {
		return model.PartialFiling{}, &AdaptationError{
			Format: model.FormatTabularRow,
			Reason: "first cell has no anchor target",
		}
	}

	name := displayName(stripTags(row.Cells[0]))
	if name == "" {
		return model.PartialFiling{}, &AdaptationError{
			Format: model.FormatTabularRow,
			Reason: "first cell has no display name",
		}
	}

	return model.PartialFiling{
		Chamber:      ctx.Chamber,
		Politician:   name,
		FilingRaw:    row.Cells[len(row.Cells)-1],
		SourceURL:    resolveURL(ctx.BaseURL, m[1]),
		SourceFormat: model.FormatTabularRow,
		Confidence:   confTabular,
	}, nil
}
