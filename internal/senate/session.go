package senate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tokenField is the form field carrying the anti-forgery token.
const tokenField = "csrfmiddlewaretoken"

// Session is one authenticated, query-capable portal session. It carries
// single-threaded mutable state (current token, draw counter, cookies) and
// must only be used from one goroutine. Discard it at run end; renew via a
// fresh Establish on session-level failure.
type Session struct {
	profile IdentityProfile
	token   string
	draw    int
	http    *http.Client
	baseURL string
}

// Profile reports which identity profile the session was established under.
func (s *Session) Profile() IdentityProfile { return s.profile }

// Establish negotiates a session, rotating identity profiles on suspected
// bot detection. The protocol is a fixed four-step sequence:
//
//  1. fetch the landing page and extract the anti-forgery token
//  2. submit the consent acknowledgment bound to that token
//  3. re-fetch the search page; the portal rotates the token after consent
//  4. submit the visible search form, priming server-side session state
//
// A missing token is terminal without rotation: the markup has changed and
// no profile will find it. Exhausting the rotation is terminal and needs
// operator remediation.
func (c *Client) Establish(ctx context.Context) (*Session, error) {
	for _, profile := range c.profiles {
		sess, err := c.establishWithProfile(ctx, profile)
		if err == nil {
			c.logger.Info("session established", "profile", profile.Name)
			return sess, nil
		}

		if errors.Is(err, ErrTokenNotFound) {
			return nil, err
		}

		var bot *botDetectionError
		if errors.As(err, &bot) {
			c.logger.Warn("profile rejected, rotating",
				"profile", profile.Name,
				"status", bot.StatusCode,
			)
			continue
		}

		return nil, err
	}

	return nil, &HandshakeError{Step: "establish", Err: ErrAllProfilesExhausted}
}

func (c *Client) establishWithProfile(ctx context.Context, profile IdentityProfile) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	sess := &Session{
		profile: profile,
		baseURL: c.baseURL,
		http: &http.Client{
			Jar:     jar,
			Timeout: c.timeout,
		},
	}

	// Step 1: landing page and initial token.
	body, err := c.fetch(ctx, sess, http.MethodGet, landingPath, nil)
	if err != nil {
		return nil, &HandshakeError{Step: "landing", Err: err}
	}
	token, err := extractToken(body)
	if err != nil {
		return nil, &HandshakeError{Step: "landing", Err: err}
	}
	sess.token = token

	// Step 2: consent acknowledgment bound to the token.
	consent := url.Values{
		tokenField:              {sess.token},
		"prohibition_agreement": {"1"},
	}
	if _, err := c.fetch(ctx, sess, http.MethodPost, landingPath, consent); err != nil {
		return nil, &HandshakeError{Step: "consent", Err: err}
	}

	// Step 3: the consent invalidates the first token; pick up the
	// rotated one from the search page.
	body, err = c.fetch(ctx, sess, http.MethodGet, searchPath, nil)
	if err != nil {
		return nil, &HandshakeError{Step: "token rotation", Err: err}
	}
	token, err = extractToken(body)
	if err != nil {
		return nil, &HandshakeError{Step: "token rotation", Err: err}
	}
	sess.token = token

	// Step 4: submit the visible search form. The response is discarded,
	// but the portal's query API refuses sessions that skipped it.
	prime := url.Values{
		tokenField:     {sess.token},
		"report_types": {"[11]"},
		"filer_types":  {"[]"},
	}
	if _, err := c.fetch(ctx, sess, http.MethodPost, searchPath, prime); err != nil {
		return nil, &HandshakeError{Step: "search prime", Err: err}
	}

	return sess, nil
}

// fetch performs one portal request under the session's identity, retrying
// network-level failures per the client policy. Non-success statuses are
// reported as suspected bot detection.
func (c *Client) fetch(ctx context.Context, sess *Session, method, path string, form url.Values) ([]byte, error) {
	var body []byte

	op := func(ctx context.Context) error {
		var reader io.Reader
		if form != nil {
			reader = strings.NewReader(form.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, sess.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("User-Agent", sess.profile.UserAgent)
		req.Header.Set("Accept", sess.profile.Accept)
		req.Header.Set("Accept-Language", sess.profile.AcceptLanguage)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("Referer", sess.baseURL+path)
		}
		// Every post-landing request carries the current token in the
		// header as well as the body.
		if sess.token != "" {
			req.Header.Set("X-CSRFToken", sess.token)
		}

		resp, err := sess.http.Do(req)
		if err != nil {
			return fmt.Errorf("do request: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &botDetectionError{StatusCode: resp.StatusCode, Detail: method + " " + path}
		}

		body = data
		return nil
	}

	if err := c.policy.Do(ctx, op, isNetworkError); err != nil {
		return nil, err
	}
	return body, nil
}

// isNetworkError reports whether an error is a transport-level failure worth
// retrying. Bot detection and HTTP-level failures are not.
func isNetworkError(err error) bool {
	var bot *botDetectionError
	if errors.As(err, &bot) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// extractToken pulls the anti-forgery token from a form field in the page.
func extractToken(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(page)))
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	token, ok := doc.Find(`input[name="` + tokenField + `"]`).First().Attr("value")
	if !ok || token == "" {
		return "", ErrTokenNotFound
	}
	return token, nil
}
