package senate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// fakePortal mimics the portal's handshake surface: a landing page with a
// token, a consent endpoint, a search page with a rotated token, and the
// search-form prime.
type fakePortal struct {
	mux            *http.ServeMux
	landingHits    atomic.Int32
	consentHits    atomic.Int32
	primeHits      atomic.Int32
	rejectAgents   map[string]bool // user agents answered with 403
	omitToken      bool
	consentedToken string
}

func newFakePortal() *fakePortal {
	p := &fakePortal{
		mux:          http.NewServeMux(),
		rejectAgents: map[string]bool{},
	}

	p.mux.HandleFunc("GET /search/home/", func(w http.ResponseWriter, r *http.Request) {
		if p.reject(w, r) {
			return
		}
		p.landingHits.Add(1)
		if p.omitToken {
			fmt.Fprint(w, `<html><body><form></form></body></html>`)
			return
		}
		fmt.Fprint(w, `<html><body><form><input name="csrfmiddlewaretoken" value="token-one"></form></body></html>`)
	})

	p.mux.HandleFunc("POST /search/home/", func(w http.ResponseWriter, r *http.Request) {
		if p.reject(w, r) {
			return
		}
		p.consentHits.Add(1)
		p.consentedToken = r.FormValue("csrfmiddlewaretoken")
		if p.consentedToken != "token-one" || r.FormValue("prohibition_agreement") != "1" {
			http.Error(w, "bad consent", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	p.mux.HandleFunc("GET /search/", func(w http.ResponseWriter, r *http.Request) {
		if p.reject(w, r) {
			return
		}
		// Token rotated after consent.
		fmt.Fprint(w, `<html><body><form><input name="csrfmiddlewaretoken" value="token-two"></form></body></html>`)
	})

	p.mux.HandleFunc("POST /search/", func(w http.ResponseWriter, r *http.Request) {
		if p.reject(w, r) {
			return
		}
		p.primeHits.Add(1)
		if r.Header.Get("X-CSRFToken") != "token-two" || r.FormValue("csrfmiddlewaretoken") != "token-two" {
			http.Error(w, "stale token", http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return p
}

func (p *fakePortal) reject(w http.ResponseWriter, r *http.Request) bool {
	if p.rejectAgents[r.Header.Get("User-Agent")] {
		http.Error(w, "denied", http.StatusForbidden)
		return true
	}
	return false
}

func testProfiles() []IdentityProfile {
	return []IdentityProfile{
		{Name: "first", UserAgent: "agent-one"},
		{Name: "second", UserAgent: "agent-two"},
	}
}

func TestEstablishHappyPath(t *testing.T) {
	portal := newFakePortal()
	srv := httptest.NewServer(portal.mux)
	defer srv.Close()

	c := NewClient(srv.URL, WithProfiles(testProfiles()))
	sess, err := c.Establish(context.Background())
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	if sess.token != "token-two" {
		t.Errorf("session token = %q, want the rotated token-two", sess.token)
	}
	if portal.consentHits.Load() != 1 {
		t.Errorf("consent hits = %d, want 1", portal.consentHits.Load())
	}
	if portal.primeHits.Load() != 1 {
		t.Errorf("search prime hits = %d, want 1", portal.primeHits.Load())
	}
	if sess.Profile().Name != "first" {
		t.Errorf("profile = %q, want first", sess.Profile().Name)
	}
}

func TestEstablishTokenNotFoundIsTerminal(t *testing.T) {
	portal := newFakePortal()
	portal.omitToken = true
	srv := httptest.NewServer(portal.mux)
	defer srv.Close()

	c := NewClient(srv.URL, WithProfiles(testProfiles()))
	_, err := c.Establish(context.Background())
	if !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("err = %v, want ErrTokenNotFound", err)
	}
	// No rotation: a missing token means changed markup, not bot detection.
	if hits := portal.landingHits.Load(); hits != 1 {
		t.Errorf("landing hits = %d, want 1 (no profile rotation)", hits)
	}
}

func TestEstablishRotatesProfilesOnRejection(t *testing.T) {
	portal := newFakePortal()
	portal.rejectAgents["agent-one"] = true
	srv := httptest.NewServer(portal.mux)
	defer srv.Close()

	c := NewClient(srv.URL, WithProfiles(testProfiles()))
	sess, err := c.Establish(context.Background())
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}
	if sess.Profile().Name != "second" {
		t.Errorf("profile = %q, want second after rotating past the rejected one", sess.Profile().Name)
	}
}

func TestEstablishAllProfilesExhausted(t *testing.T) {
	portal := newFakePortal()
	portal.rejectAgents["agent-one"] = true
	portal.rejectAgents["agent-two"] = true
	srv := httptest.NewServer(portal.mux)
	defer srv.Close()

	c := NewClient(srv.URL, WithProfiles(testProfiles()))
	_, err := c.Establish(context.Background())
	if !errors.Is(err, ErrAllProfilesExhausted) {
		t.Fatalf("err = %v, want ErrAllProfilesExhausted", err)
	}
	var he *HandshakeError
	if !errors.As(err, &he) {
		t.Fatalf("err = %v, want a HandshakeError", err)
	}
}
