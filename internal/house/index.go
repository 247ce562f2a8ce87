package house

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tradewatch/disclosures/internal/extract"
	"github.com/tradewatch/disclosures/internal/model"
)

// FilingIndex is the filing-level result of one year's index fetch, before
// transaction detail is pulled from the documents.
type FilingIndex struct {
	Partials []model.PartialFiling
	Skipped  int
}

// FetchYearIndex downloads the year's ZIP archive and extracts the PTR
// entries from its XML index. On archive-level failure (missing year, shape
// drift) it falls back to the AJAX search endpoint; only if both shapes fail
// does it return an error.
func (c *Client) FetchYearIndex(ctx context.Context, year int) (*FilingIndex, error) {
	archiveURL := c.baseURL + fmt.Sprintf(archivePathTemplate, year)

	data, err := c.fetch(ctx, http.MethodGet, archiveURL, nil)
	if err == nil {
		partials, skipped, aerr := extract.Adapt(
			extract.Archive{Data: data, Year: year},
			extract.Context{Chamber: model.ChamberHouse, BaseURL: c.baseURL, Year: year},
		)
		if aerr == nil {
			return &FilingIndex{Partials: partials, Skipped: skipped}, nil
		}

		var drift *extract.ShapeDriftError
		if !errors.As(aerr, &drift) {
			return nil, aerr
		}
		c.logger.Warn("archive shape drift, falling back to search", "year", year, "error", aerr)
	} else {
		c.logger.Warn("archive fetch failed, falling back to search", "year", year, "error", err)
	}

	return c.searchYear(ctx, year)
}

// searchYear queries the AJAX search endpoint for the year's PTR filings.
// The response is an HTML fragment of index rows, handled by the tabular
// adapter row by row.
func (c *Client) searchYear(ctx context.Context, year int) (*FilingIndex, error) {
	form := url.Values{
		"FilingYear": {strconv.Itoa(year)},
		"Report":     {"ptr"},
	}

	body, err := c.fetch(ctx, http.MethodPost, c.baseURL+searchPath, form)
	if err != nil {
		return nil, fmt.Errorf("search year %d: %w", year, err)
	}

	rows, err := indexRows(string(body))
	if err != nil {
		return nil, err
	}

	idx := &FilingIndex{}
	for _, cells := range rows {
		partials, skipped, err := extract.Adapt(
			extract.TabularRow{Cells: cells},
			extract.Context{Chamber: model.ChamberHouse, BaseURL: c.baseURL, Year: year},
		)
		idx.Skipped += skipped
		if err != nil {
			var ae *extract.AdaptationError
			if errors.As(err, &ae) {
				continue
			}
			return nil, err
		}
		idx.Partials = append(idx.Partials, partials...)
	}

	return idx, nil
}
