// Package pipeline orchestrates one ingestion run: handshake, query,
// adaptation, normalization, and deduplicated persistence per source.
// Independent sources run concurrently, each on its own session; partial
// success is the normal outcome and is reported, not raised.
package pipeline
