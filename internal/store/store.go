package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradewatch/disclosures/internal/model"
)

// UpsertResult reports the outcome of one upsert.
type UpsertResult int

const (
	// Inserted: the filing was new.
	Inserted UpsertResult = iota
	// AlreadyExists: a filing with the same content hash is already
	// stored. Not an error; the expected outcome of re-ingestion.
	AlreadyExists
)

// Store is the deduplicating filing store.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store on an existing pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

const upsertSQL = `
INSERT INTO filings (
	id, chamber, politician_name, transaction_date, filing_date,
	date_unparsed, ticker, asset_name, asset_type, transaction_type,
	amount_range, owner, source_url, source_format, confidence,
	content_hash, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
ON CONFLICT (content_hash) DO NOTHING`

// Upsert stores a filing unless its content hash is already present.
// First-writer-wins: on conflict nothing is overwritten, including the
// original confidence and timestamps.
func (s *Store) Upsert(ctx context.Context, f model.Filing) (UpsertResult, error) {
	tag, err := s.pool.Exec(ctx, upsertSQL,
		f.ID, f.Chamber, f.PoliticianName, f.TransactionDate, f.FilingDate,
		f.DateUnparsed, f.Ticker, f.AssetName, f.AssetType, f.TransactionType,
		f.AmountRange, f.Owner, f.SourceURL, f.SourceFormat, f.Confidence,
		f.ContentHash, f.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert filing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return AlreadyExists, nil
	}
	return Inserted, nil
}

const filingColumns = `
	id, chamber, politician_name, transaction_date, filing_date,
	date_unparsed, ticker, asset_name, asset_type, transaction_type,
	amount_range, owner, source_url, source_format, confidence,
	content_hash, created_at`

// FilingsByTicker returns filings for one symbol, newest first.
func (s *Store) FilingsByTicker(ctx context.Context, ticker string, limit, offset int) ([]model.Filing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+filingColumns+` FROM filings
		 WHERE ticker = $1
		 ORDER BY transaction_date DESC LIMIT $2 OFFSET $3`,
		ticker, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query by ticker: %w", err)
	}
	return scanFilings(rows)
}

// FilingsByPolitician returns filings whose filer name contains the
// substring, case-insensitively.
func (s *Store) FilingsByPolitician(ctx context.Context, name string, limit, offset int) ([]model.Filing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+filingColumns+` FROM filings
		 WHERE politician_name ILIKE '%' || $1 || '%'
		 ORDER BY transaction_date DESC LIMIT $2 OFFSET $3`,
		name, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query by politician: %w", err)
	}
	return scanFilings(rows)
}

// FilingsByDateRange returns filings with a transaction date inside
// [start, end], inclusive.
func (s *Store) FilingsByDateRange(ctx context.Context, start, end string, limit, offset int) ([]model.Filing, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+filingColumns+` FROM filings
		 WHERE NOT date_unparsed AND transaction_date >= $1 AND transaction_date <= $2
		 ORDER BY transaction_date DESC LIMIT $3 OFFSET $4`,
		start, end, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query by date range: %w", err)
	}
	return scanFilings(rows)
}

// UnresolvedAssetNames lists distinct asset names of filings still lacking a
// ticker. limit 0 means no limit.
func (s *Store) UnresolvedAssetNames(ctx context.Context, limit int) ([]string, error) {
	q := `SELECT DISTINCT asset_name FROM filings
	      WHERE ticker = '' AND asset_name <> '' ORDER BY asset_name`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query unresolved assets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan asset name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// ApplyResolution backfills ticker/asset_type on every filing sharing the
// resolved asset name and appends the audit record, atomically. It never
// creates or deletes filings.
func (s *Store) ApplyResolution(ctx context.Context, res model.TickerResolution) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin resolution tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if res.ResolvedTicker != "" || res.AssetType != "" {
		_, err = tx.Exec(ctx,
			`UPDATE filings SET
				ticker = CASE WHEN $1 <> '' THEN $1 ELSE ticker END,
				asset_type = CASE WHEN $2 <> '' THEN $2 ELSE asset_type END
			 WHERE asset_name = $3 AND ticker = ''`,
			res.ResolvedTicker, string(res.AssetType), res.AssetName)
		if err != nil {
			return fmt.Errorf("backfill filings: %w", err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO ticker_resolutions
			(id, asset_name, resolved_ticker, method, asset_type, resolved_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		res.ID, res.AssetName, res.ResolvedTicker, res.Method, string(res.AssetType), res.ResolvedAt)
	if err != nil {
		return fmt.Errorf("append resolution audit: %w", err)
	}

	return tx.Commit(ctx)
}

// Count returns the number of stored filings.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM filings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count filings: %w", err)
	}
	return n, nil
}

func scanFilings(rows pgx.Rows) ([]model.Filing, error) {
	defer rows.Close()

	var filings []model.Filing
	for rows.Next() {
		var f model.Filing
		var createdAt time.Time
		err := rows.Scan(
			&f.ID, &f.Chamber, &f.PoliticianName, &f.TransactionDate, &f.FilingDate,
			&f.DateUnparsed, &f.Ticker, &f.AssetName, &f.AssetType, &f.TransactionType,
			&f.AmountRange, &f.Owner, &f.SourceURL, &f.SourceFormat, &f.Confidence,
			&f.ContentHash, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan filing: %w", err)
		}
		f.CreatedAt = createdAt
		filings = append(filings, f)
	}
	return filings, rows.Err()
}
