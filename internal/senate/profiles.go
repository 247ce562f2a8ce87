package senate

// IdentityProfile is one set of transport-level fingerprinting parameters.
// Profiles are tried in order; a bot-detection rejection advances to the
// next one.
type IdentityProfile struct {
	Name           string
	UserAgent      string
	Accept         string
	AcceptLanguage string
}

// DefaultProfiles returns the ordered rotation used against the portal.
// Order matters: the first profile is the one observed to be most reliable.
func DefaultProfiles() []IdentityProfile {
	return []IdentityProfile{
		{
			Name:           "chrome-win",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			AcceptLanguage: "en-US,en;q=0.9",
		},
		{
			Name:           "firefox-win",
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			AcceptLanguage: "en-US,en;q=0.5",
		},
		{
			Name:           "safari-mac",
			UserAgent:      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
			Accept:         "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			AcceptLanguage: "en-US,en;q=0.9",
		},
	}
}
