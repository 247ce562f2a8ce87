// Package senate implements the client for the token-protected Senate
// disclosure portal: the session handshake and the paginated query engine.
//
// The portal requires a fixed four-step handshake before its query API
// returns data (landing page, consent, token rotation, search-form prime).
// All session state lives in an explicit Session value; a Session is
// single-threaded and must never be shared across goroutines. Independent
// runs use independent Sessions.
package senate
