package senate

import (
	"log/slog"
	"time"

	"github.com/tradewatch/disclosures/internal/retry"
)

// Portal paths. The handshake order is fixed by the portal; see Establish.
const (
	landingPath = "/search/home/"
	searchPath  = "/search/"
	dataPath    = "/search/report/data/"
)

// Client issues handshakes and queries against the Senate portal. The Client
// itself is stateless; all per-run mutable state (token, cookies, draw
// counter) lives in the Session it creates.
type Client struct {
	baseURL  string
	logger   *slog.Logger
	timeout  time.Duration
	policy   retry.Policy
	profiles []IdentityProfile
}

// BaseURL reports the portal base the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// Option configures a Client.
type Option func(*Client)

// NewClient creates a portal client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		logger:   slog.Default(),
		timeout:  20 * time.Second,
		policy:   retry.Default(),
		profiles: DefaultProfiles(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRetryPolicy sets the bounded retry policy for network failures.
func WithRetryPolicy(p retry.Policy) Option {
	return func(c *Client) { c.policy = p }
}

// WithProfiles replaces the identity-profile rotation.
func WithProfiles(profiles []IdentityProfile) Option {
	return func(c *Client) { c.profiles = profiles }
}
