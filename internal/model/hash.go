package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ContentHash computes the semantic identity key for a filing. Two
// extractions of the same underlying disclosure must hash identically
// regardless of extraction run or source format, so only the five identity
// fields participate and the politician name is case-folded.
func ContentHash(politician, ticker, transactionDate string, amount AmountRange, tx TransactionType) string {
	h := sha256.New()
	fields := []string{
		strings.ToLower(strings.TrimSpace(politician)),
		ticker,
		transactionDate,
		string(amount),
		string(tx),
	}
	h.Write([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(h.Sum(nil))
}
