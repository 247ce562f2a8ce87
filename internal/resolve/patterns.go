package resolve

import (
	"regexp"

	"github.com/tradewatch/disclosures/internal/model"
)

// tickerShapeRe is the strict symbol shape accepted by the pattern layer:
// 1-5 uppercase letters with an optional dot suffix (share classes).
var tickerShapeRe = regexp.MustCompile(`^[A-Z]{1,5}(\.[A-Z]{1,2})?$`)

// nonTickerablePatterns classify instruments that have no equity symbol by
// definition. Checked in order; the first hit wins and short-circuits all
// external lookups.
var nonTickerablePatterns = []struct {
	re        *regexp.Regexp
	assetType model.AssetType
}{
	{regexp.MustCompile(`(?i)\b(municipal|muni|general obligation|go bond|city of|county of|school district|water district)\b`), model.AssetMunicipalBond},
	{regexp.MustCompile(`(?i)(u\.?s\.?\s+treasur|treasury (bill|note|bond)|\bt-bill\b|\bt-note\b|\bt-bond\b)`), model.AssetTreasury},
	{regexp.MustCompile(`(?i)\b(ginnie mae|fannie mae|freddie mac|gnma|fnma|agency bond|government[- ](backed|bond|security))\b`), model.AssetGovernmentBond},
	{regexp.MustCompile(`(?i)(\bl\.?\s?p\.?\b|\bllc\b|private (equity|fund|placement)|hedge fund|venture (fund|capital)|family (trust|partnership))`), model.AssetPrivateFund},
	{regexp.MustCompile(`(?i)\b(usdc|usdt|tether|stablecoin|usd coin)\b`), model.AssetCryptocurrency},
}

// nonTickerable reports whether the asset name names a non-equity
// instrument, and the refined asset type when it does.
func nonTickerable(assetName string) (model.AssetType, bool) {
	for _, p := range nonTickerablePatterns {
		if p.re.MatchString(assetName) {
			return p.assetType, true
		}
	}
	return "", false
}
