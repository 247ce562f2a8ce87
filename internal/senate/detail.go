package senate

import (
	"context"
	"net/http"
	"strings"

	"github.com/tradewatch/disclosures/internal/extract"
	"github.com/tradewatch/disclosures/internal/model"
)

// FetchFilingTransactions retrieves one filing's detail page under the
// session and adapts its transaction table. The index partial supplies the
// filing-level context the detail rows lack.
func (c *Client) FetchFilingTransactions(ctx context.Context, sess *Session, filing model.PartialFiling) ([]model.PartialFiling, int, error) {
	path := strings.TrimPrefix(filing.SourceURL, c.baseURL)

	body, err := c.fetch(ctx, sess, http.MethodGet, path, nil)
	if err != nil {
		return nil, 0, err
	}

	return extract.Adapt(extract.HTMLTable{HTML: string(body)}, extract.Context{
		Chamber:    model.ChamberSenate,
		BaseURL:    c.baseURL,
		Politician: filing.Politician,
		FilingDate: filing.FilingRaw,
		SourceURL:  filing.SourceURL,
	})
}
