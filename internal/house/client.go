package house

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tradewatch/disclosures/internal/retry"
)

// Portal paths.
const (
	archivePathTemplate = "/public_disc/financial-pdfs/%dFD.zip"
	searchPath          = "/FinancialDisclosure/ViewMemberSearchResult"
)

// Client fetches House filings. Stateless; safe to share across runs.
type Client struct {
	baseURL    string
	logger     *slog.Logger
	policy     retry.Policy
	httpClient *http.Client
	docTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a House portal client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		logger:  slog.Default(),
		policy:  retry.Default(),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		docTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout sets the index/search request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithDocTimeout sets the per-document fetch timeout.
func WithDocTimeout(d time.Duration) Option {
	return func(c *Client) { c.docTimeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetryPolicy sets the bounded retry policy for network failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// httpError is a non-network failure from the portal.
type httpError struct {
	StatusCode int
	URL        string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("portal returned %d for %s", e.StatusCode, e.URL)
}

// fetch performs one GET or form POST with bounded network retries.
// Non-network HTTP failures are not retried.
func (c *Client) fetch(ctx context.Context, method, rawURL string, form url.Values) ([]byte, error) {
	var body []byte

	op := func(ctx context.Context) error {
		var reader io.Reader
		if form != nil {
			reader = strings.NewReader(form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &httpError{StatusCode: resp.StatusCode, URL: rawURL}
		}

		body = data
		return nil
	}

	if err := c.policy.Do(ctx, op, isNetworkError); err != nil {
		return nil, err
	}
	return body, nil
}

func isNetworkError(err error) bool {
	var he *httpError
	if errors.As(err, &he) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
