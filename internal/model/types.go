package model

import (
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Enumerations
// -----------------------------------------------------------------------------

// Chamber identifies which portal a filing was ingested from.
type Chamber string

const (
	ChamberSenate Chamber = "senate"
	ChamberHouse  Chamber = "house"
)

// AssetType classifies the disclosed instrument.
type AssetType string

const (
	AssetStock          AssetType = "stock"
	AssetBond           AssetType = "bond"
	AssetTreasury       AssetType = "treasury"
	AssetMunicipalBond  AssetType = "municipal_bond"
	AssetGovernmentBond AssetType = "government_bond"
	AssetPrivateFund    AssetType = "private_fund"
	AssetCryptocurrency AssetType = "cryptocurrency"
	AssetOther          AssetType = "other"
)

// TransactionType is the disclosed trade direction.
type TransactionType string

const (
	TxBuy      TransactionType = "buy"
	TxSale     TransactionType = "sale"
	TxExchange TransactionType = "exchange"
	TxUnknown  TransactionType = "unknown"
)

// AmountRange is one of the fixed disclosure brackets. Filers report a
// bracket, never an exact amount.
type AmountRange string

const (
	Amount1KTo15K    AmountRange = "$1,001 - $15,000"
	Amount15KTo50K   AmountRange = "$15,001 - $50,000"
	Amount50KTo100K  AmountRange = "$50,001 - $100,000"
	Amount100KTo250K AmountRange = "$100,001 - $250,000"
	Amount250KTo500K AmountRange = "$250,001 - $500,000"
	Amount500KTo1M   AmountRange = "$500,001 - $1,000,000"
	Amount1MTo5M     AmountRange = "$1,000,001 - $5,000,000"
	Amount5MTo25M    AmountRange = "$5,000,001 - $25,000,000"
	Amount25MTo50M   AmountRange = "$25,000,001 - $50,000,000"
	AmountOver50M    AmountRange = "Over $50,000,000"
	AmountUnknown    AmountRange = "unknown"
)

// SourceFormat names the raw shape a filing fragment was extracted from.
type SourceFormat string

const (
	FormatTabularRow       SourceFormat = "tabular_row"
	FormatHTMLTableRow     SourceFormat = "html_table_row"
	FormatArchiveMember    SourceFormat = "archive_member"
	FormatDocumentTableRow SourceFormat = "document_table_row"
)

// ResolutionMethod is the terminal state of one ticker-resolution pass.
type ResolutionMethod string

const (
	ResolvedStatic   ResolutionMethod = "static"
	ResolvedPattern  ResolutionMethod = "pattern"
	ResolvedExternal ResolutionMethod = "external_lookup"
	NonTickerable    ResolutionMethod = "non_tickerable"
	Unresolved       ResolutionMethod = "unresolved"
)

// -----------------------------------------------------------------------------
// Canonical Records
// -----------------------------------------------------------------------------

// PartialFiling is one fragment as extracted by a format adapter, before
// normalization. String fields carry source text verbatim.
type PartialFiling struct {
	Chamber        Chamber
	Politician     string // Reordered to "First Last" by the adapter
	TransactionRaw string // Transaction date source text
	FilingRaw      string // Filing date source text
	TickerRaw      string // May be a sentinel ("--", "", "N/A")
	AssetName      string
	AssetTypeRaw   string
	TxTypeRaw      string
	AmountRaw      string
	OwnerRaw       string
	SourceURL      string // Filing detail / document URL
	SourceFormat   SourceFormat
	Confidence     float64 // Extraction confidence assigned by the adapter
}

// Filing is the canonical, deduplicated disclosure record. Immutable once
// persisted except for ticker/asset-type backfill by the resolver.
type Filing struct {
	ID             uuid.UUID
	Chamber        Chamber
	PoliticianName string // Normalized "First Last"

	TransactionDate string // "YYYY-MM-DD", or source text if DateUnparsed
	FilingDate      string // "YYYY-MM-DD", or source text if DateUnparsed
	DateUnparsed    bool   // True when either date failed to parse

	Ticker    string // Empty when unresolved or non-tickerable
	AssetName string
	AssetType AssetType

	TransactionType TransactionType
	AmountRange     AmountRange
	Owner           string // Self / Spouse / Joint / Unknown

	SourceURL    string
	SourceFormat SourceFormat

	Confidence  float64 // Extraction confidence in [0,1]
	ContentHash string  // Semantic identity key, see ContentHash()
	CreatedAt   time.Time
}

// TickerResolution is the audit record for one resolution outcome. Written
// for every attempt, including unresolved ones.
type TickerResolution struct {
	ID             uuid.UUID
	AssetName      string
	ResolvedTicker string // Empty unless a layer resolved a symbol
	Method         ResolutionMethod
	AssetType      AssetType // Refined type, empty string when unchanged
	ResolvedAt     time.Time
}
