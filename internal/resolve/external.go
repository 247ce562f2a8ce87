package resolve

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Match is one candidate from the external symbol-search service.
type Match struct {
	Symbol string
	Name   string
}

// SymbolSearcher is the external lookup surface. Implementations must be
// safe for sequential use; the resolver paces calls itself.
type SymbolSearcher interface {
	// Search returns candidate symbols for a free-text query.
	Search(ctx context.Context, query string) ([]Match, error)
	// Listed reports whether the exact symbol is currently listed.
	Listed(ctx context.Context, symbol string) (bool, error)
}

// HTTPSearcher queries a symbol-search HTTP API.
type HTTPSearcher struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPSearcher creates a searcher against the given search endpoint.
func NewHTTPSearcher(baseURL, apiKey string, timeout time.Duration) *HTTPSearcher {
	return &HTTPSearcher{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// Search implements SymbolSearcher.
func (s *HTTPSearcher) Search(ctx context.Context, query string) ([]Match, error) {
	q := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("symbol search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("symbol search returned %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	var matches []Match
	for _, q := range sr.Quotes {
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		matches = append(matches, Match{Symbol: q.Symbol, Name: name})
	}
	return matches, nil
}

// Listed implements SymbolSearcher by searching for the exact symbol.
func (s *HTTPSearcher) Listed(ctx context.Context, symbol string) (bool, error) {
	matches, err := s.Search(ctx, symbol)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if strings.EqualFold(m.Symbol, symbol) {
			return true, nil
		}
	}
	return false, nil
}
