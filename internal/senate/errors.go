package senate

import (
	"errors"
	"fmt"
)

// Terminal handshake conditions. Both require operator remediation; neither
// is retried automatically.
var (
	// ErrTokenNotFound: the landing page carried no anti-forgery token.
	// The portal markup has likely changed, so rotating identity profiles
	// will not help.
	ErrTokenNotFound = errors.New("anti-forgery token not found in landing page")

	// ErrAllProfilesExhausted: every identity profile in the rotation was
	// rejected with a bot-detection signature.
	ErrAllProfilesExhausted = errors.New("all identity profiles exhausted")
)

// HandshakeError wraps a failure of one handshake step, or a query-level
// failure severe enough to require session renewal.
type HandshakeError struct {
	Step string
	Err  error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("handshake %s: %v", e.Step, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

// botDetectionError marks a response consistent with the portal's
// anti-automation defenses. The caller retries with the next identity
// profile.
type botDetectionError struct {
	StatusCode int
	Detail     string
}

func (e *botDetectionError) Error() string {
	return fmt.Sprintf("bot detection suspected (status %d): %s", e.StatusCode, e.Detail)
}
