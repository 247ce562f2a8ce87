// Package normalize converts adapter output into canonical Filings.
//
// Normalize is a pure function: identical PartialFilings always produce
// identical Filings (minus row ID and creation time), which is what makes
// content-hash deduplication correct across runs and source formats.
package normalize

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tradewatch/disclosures/internal/model"
)

// tickerSentinels are source placeholders meaning "no ticker".
var tickerSentinels = map[string]bool{
	"":    true,
	"-":   true,
	"--":  true,
	"n/a": true,
	"na":  true,
}

// dateLayouts are tried in order against source date text.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"01/02/2006 15:04:05",
}

// Normalize converts one PartialFiling into a canonical Filing.
func Normalize(p model.PartialFiling) model.Filing {
	txDate, txOK := parseDate(p.TransactionRaw)
	filingDate, filingOK := parseDate(p.FilingRaw)

	f := model.Filing{
		ID:              uuid.New(),
		Chamber:         p.Chamber,
		PoliticianName:  cleanName(p.Politician),
		TransactionDate: txDate,
		FilingDate:      filingDate,
		DateUnparsed:    !txOK || !filingOK,
		Ticker:          NormalizeTicker(p.TickerRaw),
		AssetName:       strings.TrimSpace(p.AssetName),
		AssetType:       assetType(p.AssetTypeRaw),
		TransactionType: transactionType(p.TxTypeRaw),
		AmountRange:     amountRange(p.AmountRaw),
		Owner:           owner(p.OwnerRaw),
		SourceURL:       p.SourceURL,
		SourceFormat:    p.SourceFormat,
		Confidence:      p.Confidence,
		CreatedAt:       time.Now().UTC(),
	}

	f.ContentHash = model.ContentHash(
		f.PoliticianName,
		f.Ticker,
		f.TransactionDate,
		f.AmountRange,
		f.TransactionType,
	)

	return f
}

// NormalizeTicker maps sentinel placeholders to the empty ticker and
// uppercases real symbols.
func NormalizeTicker(raw string) string {
	s := strings.TrimSpace(raw)
	if tickerSentinels[strings.ToLower(s)] {
		return ""
	}
	return strings.ToUpper(s)
}

// parseDate renders source text as "YYYY-MM-DD". On failure it returns the
// trimmed source text unchanged with ok=false, so nothing is lost.
func parseDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return s, false
}

func cleanName(raw string) string {
	s := strings.TrimSpace(raw)
	// Honorific prefixes appear inconsistently across sources.
	for _, prefix := range []string{"Hon. ", "Mr. ", "Mrs. ", "Ms. ", "Dr. "} {
		s = strings.TrimPrefix(s, prefix)
	}
	return strings.Join(strings.Fields(s), " ")
}

func assetType(raw string) model.AssetType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "stock", "common stock", "stock option":
		return model.AssetStock
	case "bond", "corporate bond":
		return model.AssetBond
	case "treasury", "us treasury":
		return model.AssetTreasury
	case "municipal security", "municipal bond":
		return model.AssetMunicipalBond
	case "government security", "government bond":
		return model.AssetGovernmentBond
	case "private fund", "hedge fund", "venture capital":
		return model.AssetPrivateFund
	case "cryptocurrency", "crypto":
		return model.AssetCryptocurrency
	default:
		return model.AssetOther
	}
}

func transactionType(raw string) model.TransactionType {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "p" || strings.HasPrefix(s, "purchase") || s == "buy":
		return model.TxBuy
	case s == "s" || strings.HasPrefix(s, "sale") || strings.HasPrefix(s, "sold") || s == "s (partial)" || s == "s (full)":
		return model.TxSale
	case s == "e" || strings.HasPrefix(s, "exchange"):
		return model.TxExchange
	default:
		return model.TxUnknown
	}
}

// amountBrackets maps the lower bound printed by the portals to the bracket.
var amountBrackets = map[string]model.AmountRange{
	"$1,001":       model.Amount1KTo15K,
	"$15,001":      model.Amount15KTo50K,
	"$50,001":      model.Amount50KTo100K,
	"$100,001":     model.Amount100KTo250K,
	"$250,001":     model.Amount250KTo500K,
	"$500,001":     model.Amount500KTo1M,
	"$1,000,001":   model.Amount1MTo5M,
	"$5,000,001":   model.Amount5MTo25M,
	"$25,000,001":  model.Amount25MTo50M,
	"$50,000,000+": model.AmountOver50M,
}

func amountRange(raw string) model.AmountRange {
	s := strings.TrimSpace(raw)
	if s == "" {
		return model.AmountUnknown
	}
	if strings.HasPrefix(strings.ToLower(s), "over") {
		return model.AmountOver50M
	}
	lower, _, _ := strings.Cut(s, " ")
	lower = strings.TrimSuffix(lower, ",")
	if r, ok := amountBrackets[lower]; ok {
		return r
	}
	return model.AmountUnknown
}

func owner(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "self", "c":
		return "Self"
	case "spouse", "sp":
		return "Spouse"
	case "joint", "jt":
		return "Joint"
	default:
		return "Unknown"
	}
}
