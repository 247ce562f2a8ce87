package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultSenateURL      = "https://efdsearch.senate.gov"
	DefaultHouseURL       = "https://disclosures-clerk.house.gov"
	DefaultPortalTimeout  = 20 * time.Second
	DefaultDocTimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBackoff   = 1 * time.Second
	DefaultPageLength     = 100
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 10
	DefaultMinConns       = 2
	DefaultSearchURL      = "https://query1.finance.yahoo.com/v1/finance/search"
	DefaultLookupTimeout  = 10 * time.Second
	DefaultLookupDelay    = 500 * time.Millisecond
)

func (c *Config) applyDefaults() {
	// Senate portal defaults
	if c.Senate.BaseURL == "" {
		c.Senate.BaseURL = DefaultSenateURL
	}
	if c.Senate.Timeout == 0 {
		c.Senate.Timeout = DefaultPortalTimeout
	}
	if c.Senate.MaxRetries == 0 {
		c.Senate.MaxRetries = DefaultMaxRetries
	}
	if c.Senate.RetryBackoff == 0 {
		c.Senate.RetryBackoff = DefaultRetryBackoff
	}
	if c.Senate.PageLength == 0 {
		c.Senate.PageLength = DefaultPageLength
	}

	// House portal defaults
	if c.House.BaseURL == "" {
		c.House.BaseURL = DefaultHouseURL
	}
	if c.House.Timeout == 0 {
		c.House.Timeout = DefaultPortalTimeout
	}
	if c.House.DocTimeout == 0 {
		c.House.DocTimeout = DefaultDocTimeout
	}
	if c.House.MaxRetries == 0 {
		c.House.MaxRetries = DefaultMaxRetries
	}
	if c.House.RetryBackoff == 0 {
		c.House.RetryBackoff = DefaultRetryBackoff
	}

	// Database defaults
	applyDBDefaults(&c.Database)

	// Resolver defaults
	if c.Resolver.SearchURL == "" {
		c.Resolver.SearchURL = DefaultSearchURL
	}
	if c.Resolver.Timeout == 0 {
		c.Resolver.Timeout = DefaultLookupTimeout
	}
	if c.Resolver.LookupDelay == 0 {
		c.Resolver.LookupDelay = DefaultLookupDelay
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
