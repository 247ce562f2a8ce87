// Package model defines shared data types used across the disclosure pipeline.
//
// All types mirror the database schema defined in migrations/001_schema.sql.
//
// Conventions:
//   - Dates: civil dates rendered "YYYY-MM-DD"; unparseable source text is
//     retained verbatim with DateUnparsed set
//   - IDs: uuid.UUID row identifiers, string ticker symbols
//   - ContentHash: SHA-256 hex over the five semantic identity fields
package model
