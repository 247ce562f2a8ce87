// Package house implements the client for the House clerk portal.
//
// The portal publishes a per-year ZIP archive holding an XML index of all
// filings (primary source). When the archive is unavailable or drifts, the
// client falls back to the portal's AJAX search endpoint. Transaction detail
// comes from each filing's paginated document, fetched page by page.
//
// Unlike the Senate portal there is no handshake; requests only need the
// bounded retry policy and explicit timeouts.
package house
