// Package resolve backfills missing ticker symbols on persisted filings.
//
// Resolution is layered, first match wins:
//
//  1. non-tickerable pattern match (also refines the asset type; never
//     calls out)
//  2. strict ticker shape, confirmed by an external listing check
//  3. curated company/ETF name table
//  4. external symbol search with token-overlap acceptance
//
// Every outcome, including unresolved, is written to the audit trail. The
// resolver only mutates ticker/asset_type on existing filings; it never
// creates or deletes them.
package resolve
