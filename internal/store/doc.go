// Package store persists canonical Filings in PostgreSQL and enforces
// deduplication through the unique content_hash constraint.
//
// Upsert is first-writer-wins: a duplicate hash is a no-op that preserves
// the original row. That constraint is the only concurrency control the
// pipeline needs; concurrent runs may upsert freely.
package store
