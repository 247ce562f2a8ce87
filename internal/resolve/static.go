package resolve

import "strings"

// staticTable maps curated company/ETF name fragments to symbols. Ordered:
// longer, more specific fragments come before substrings they contain, and
// lookup order must be deterministic.
var staticTable = []struct {
	fragment string
	ticker   string
}{
	{"advanced micro devices", "AMD"},
	{"alphabet", "GOOGL"},
	{"amazon", "AMZN"},
	{"apple", "AAPL"},
	{"bank of america", "BAC"},
	{"berkshire hathaway", "BRK.B"},
	{"boeing", "BA"},
	{"exxon mobil", "XOM"},
	{"goldman sachs", "GS"},
	{"google", "GOOGL"},
	{"invesco qqq", "QQQ"},
	{"johnson & johnson", "JNJ"},
	{"jpmorgan chase", "JPM"},
	{"meta platforms", "META"},
	{"microsoft", "MSFT"},
	{"netflix", "NFLX"},
	{"nvidia", "NVDA"},
	{"pfizer", "PFE"},
	{"spdr s&p 500", "SPY"},
	{"tesla", "TSLA"},
	{"vanguard total stock market", "VTI"},
	{"walt disney", "DIS"},
	{"wells fargo", "WFC"},
}

// staticLookup returns the curated symbol whose name fragment occurs inside
// the asset name.
func staticLookup(assetName string) (string, bool) {
	lower := strings.ToLower(assetName)
	for _, e := range staticTable {
		if strings.Contains(lower, e.fragment) {
			return e.ticker, true
		}
	}
	return "", false
}
