package senate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Filter selects the reports to query.
type Filter struct {
	StartDate  time.Time
	EndDate    time.Time
	ReportKind string // Portal report-type code, e.g. "11" for PTRs
}

// RawPage is one page of the portal's tabular query response.
type RawPage struct {
	Draw         int        `json:"draw"`
	RecordsTotal int        `json:"recordsTotal"`
	Rows         [][]string `json:"data"`
}

// queryColumns is the portal's expected column-descriptor set. The query API
// validates cardinality and order: omitting or reordering a descriptor
// yields an error response, not a partial result.
var queryColumns = []string{
	"first_name",
	"last_name",
	"filer_type",
	"report_type",
	"date_received",
}

// Query fetches one page at the given offset. The draw counter increments
// per request, mirroring the portal's client-side table widget.
func (c *Client) Query(ctx context.Context, sess *Session, filter Filter, offset, length int) (*RawPage, error) {
	sess.draw++

	form := url.Values{
		tokenField:             {sess.token},
		"draw":                 {strconv.Itoa(sess.draw)},
		"start":                {strconv.Itoa(offset)},
		"length":               {strconv.Itoa(length)},
		"report_types":         {"[" + filter.ReportKind + "]"},
		"filer_types":          {"[]"},
		"submitted_start_date": {filter.StartDate.Format("01/02/2006") + " 00:00:00"},
		"submitted_end_date":   {filter.EndDate.Format("01/02/2006") + " 23:59:59"},
		"order[0][column]":     {strconv.Itoa(len(queryColumns) - 1)},
		"order[0][dir]":        {"desc"},
	}
	for i, name := range queryColumns {
		prefix := "columns[" + strconv.Itoa(i) + "]"
		form.Set(prefix+"[data]", strconv.Itoa(i))
		form.Set(prefix+"[name]", name)
		form.Set(prefix+"[searchable]", "true")
		form.Set(prefix+"[orderable]", "true")
	}

	body, err := c.fetch(ctx, sess, "POST", dataPath, form)
	if err != nil {
		// Any failure surviving the bounded retry on an established
		// session, network or not, leaves the session assumed
		// compromised; the caller must renew it.
		return nil, &HandshakeError{Step: "query", Err: fmt.Errorf("page offset %d: %w", offset, err)}
	}

	var page RawPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode query page offset %d: %w", offset, err)
	}

	return &page, nil
}

// QueryAll walks every page of the filter window: offset 0, length,
// 2*length, ... until offset reaches the reported records_total. An empty
// page arriving before that point is recorded as a gap and the walk stops
// with whatever was already retrieved; the portal is known to be
// occasionally inconsistent and a gap is not fatal.
func (c *Client) QueryAll(ctx context.Context, sess *Session, filter Filter, length int) (rows [][]string, gaps int, err error) {
	offset := 0
	total := -1

	for {
		page, err := c.Query(ctx, sess, filter, offset, length)
		if err != nil {
			return rows, gaps, err
		}
		if total < 0 {
			total = page.RecordsTotal
		}

		if len(page.Rows) == 0 && offset < total {
			c.logger.Warn("empty page before records_total, recording gap",
				"offset", offset,
				"records_total", total,
			)
			gaps++
			return rows, gaps, nil
		}

		rows = append(rows, page.Rows...)

		offset += length
		if offset >= total {
			return rows, gaps, nil
		}
	}
}
