package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tradewatch/disclosures/internal/model"
)

// fakeSearcher records external calls and serves canned results.
type fakeSearcher struct {
	searchCalls int
	listedCalls int
	listed      map[string]bool
	results     map[string][]Match
	err         error
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]Match, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeSearcher) Listed(_ context.Context, symbol string) (bool, error) {
	f.listedCalls++
	if f.err != nil {
		return false, f.err
	}
	return f.listed[symbol], nil
}

func (f *fakeSearcher) externalCalls() int { return f.searchCalls + f.listedCalls }

// fakeStore is an in-memory FilingStore.
type fakeStore struct {
	unresolved []string
	audits     []model.TickerResolution
}

func (f *fakeStore) UnresolvedAssetNames(_ context.Context, limit int) ([]string, error) {
	if limit > 0 && limit < len(f.unresolved) {
		return f.unresolved[:limit], nil
	}
	return f.unresolved, nil
}

func (f *fakeStore) ApplyResolution(_ context.Context, res model.TickerResolution) error {
	f.audits = append(f.audits, res)
	return nil
}

func newTestResolver(searcher SymbolSearcher, store FilingStore) *Resolver {
	return New(Config{LookupDelay: time.Millisecond}, store, searcher, nil)
}

func TestResolveNonTickerableShortCircuits(t *testing.T) {
	tests := []struct {
		assetName string
		wantType  model.AssetType
	}{
		{"GO Bond Due 2032 3.5%", model.AssetMunicipalBond},
		{"City of Austin Municipal Bond", model.AssetMunicipalBond},
		{"US Treasury Note 2.5% 2030", model.AssetTreasury},
		{"Fannie Mae Agency Bond", model.AssetGovernmentBond},
		{"Sequoia Growth Fund L.P.", model.AssetPrivateFund},
		{"USDC (USD Coin)", model.AssetCryptocurrency},
	}

	for _, tt := range tests {
		t.Run(tt.assetName, func(t *testing.T) {
			searcher := &fakeSearcher{}
			r := newTestResolver(searcher, &fakeStore{})

			res := r.Resolve(context.Background(), tt.assetName)
			if res.Method != model.NonTickerable {
				t.Errorf("Method = %q, want non_tickerable", res.Method)
			}
			if res.Ticker != "" {
				t.Errorf("Ticker = %q, want empty", res.Ticker)
			}
			if res.AssetType != tt.wantType {
				t.Errorf("AssetType = %q, want %q", res.AssetType, tt.wantType)
			}
			if searcher.externalCalls() != 0 {
				t.Errorf("external calls = %d, want 0 (short-circuit)", searcher.externalCalls())
			}
		})
	}
}

func TestResolveStatic(t *testing.T) {
	searcher := &fakeSearcher{}
	r := newTestResolver(searcher, &fakeStore{})

	res := r.Resolve(context.Background(), "Apple Inc.")
	if res.Ticker != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", res.Ticker)
	}
	if res.Method != model.ResolvedStatic {
		t.Errorf("Method = %q, want static", res.Method)
	}
}

func TestResolvePatternRequiresListing(t *testing.T) {
	t.Run("listed symbol accepted", func(t *testing.T) {
		searcher := &fakeSearcher{listed: map[string]bool{"DDOG": true}}
		r := newTestResolver(searcher, &fakeStore{})

		res := r.Resolve(context.Background(), "DDOG")
		if res.Method != model.ResolvedPattern {
			t.Errorf("Method = %q, want pattern", res.Method)
		}
		if res.Ticker != "DDOG" {
			t.Errorf("Ticker = %q, want DDOG", res.Ticker)
		}
		if searcher.listedCalls != 1 {
			t.Errorf("listed calls = %d, want 1", searcher.listedCalls)
		}
	})

	t.Run("unlisted shape falls through", func(t *testing.T) {
		searcher := &fakeSearcher{}
		r := newTestResolver(searcher, &fakeStore{})

		res := r.Resolve(context.Background(), "ZZZZZ")
		if res.Method != model.Unresolved {
			t.Errorf("Method = %q, want unresolved", res.Method)
		}
		if searcher.listedCalls != 1 {
			t.Errorf("listed calls = %d, want 1", searcher.listedCalls)
		}
	})
}

func TestResolveExternalSearch(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]Match{
		"Datadog Class A Common": {
			{Symbol: "DDOG.X", Name: "Datadog Inc."},      // dot: filtered
			{Symbol: "TOOLONGX", Name: "Datadog Inc."},    // length: filtered
			{Symbol: "ZZT", Name: "Unrelated Widgets Co"}, // no token overlap
			{Symbol: "DDOG", Name: "Datadog Inc."},
		},
	}}
	r := newTestResolver(searcher, &fakeStore{})

	res := r.Resolve(context.Background(), "Datadog Class A Common")
	if res.Method != model.ResolvedExternal {
		t.Fatalf("Method = %q, want external_lookup", res.Method)
	}
	if res.Ticker != "DDOG" {
		t.Errorf("Ticker = %q, want DDOG", res.Ticker)
	}
}

func TestResolveExternalRejectsNoOverlap(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]Match{
		"Obscure Holdings": {{Symbol: "XYZ", Name: "Totally Different Name"}},
	}}
	r := newTestResolver(searcher, &fakeStore{})

	res := r.Resolve(context.Background(), "Obscure Holdings")
	if res.Method != model.Unresolved {
		t.Errorf("Method = %q, want unresolved when no candidate name overlaps", res.Method)
	}
}

func TestResolveCachesPerRun(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]Match{
		"Datadog Class A": {{Symbol: "DDOG", Name: "Datadog Inc."}},
	}}
	r := newTestResolver(searcher, &fakeStore{})

	for i := 0; i < 3; i++ {
		r.Resolve(context.Background(), "Datadog Class A")
	}
	if searcher.searchCalls != 1 {
		t.Errorf("search calls = %d, want 1 (cached within the run)", searcher.searchCalls)
	}
}

func TestRunAuditsEveryOutcome(t *testing.T) {
	store := &fakeStore{unresolved: []string{
		"GO Bond Due 2032 3.5%",
		"Apple Inc.",
		"Complete Mystery Asset",
	}}
	searcher := &fakeSearcher{}
	r := newTestResolver(searcher, store)

	rep, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if rep.NonTicker != 1 || rep.Resolved != 1 || rep.Unresolved != 1 {
		t.Errorf("report = %+v, want one of each outcome", rep)
	}
	if len(store.audits) != 3 {
		t.Fatalf("audits = %d, want 3 (every outcome audited, including unresolved)", len(store.audits))
	}

	byName := map[string]model.TickerResolution{}
	for _, a := range store.audits {
		byName[a.AssetName] = a
	}
	if got := byName["GO Bond Due 2032 3.5%"]; got.Method != model.NonTickerable || got.AssetType != model.AssetMunicipalBond {
		t.Errorf("bond audit = %+v, want non_tickerable municipal_bond", got)
	}
	if got := byName["Apple Inc."]; got.Method != model.ResolvedStatic || got.ResolvedTicker != "AAPL" {
		t.Errorf("apple audit = %+v, want static AAPL", got)
	}
	if got := byName["Complete Mystery Asset"]; got.Method != model.Unresolved {
		t.Errorf("mystery audit = %+v, want unresolved", got)
	}
}

func TestResolveSearcherErrorIsUnresolved(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("service down")}
	r := newTestResolver(searcher, &fakeStore{})

	res := r.Resolve(context.Background(), "Some Company Name")
	if res.Method != model.Unresolved {
		t.Errorf("Method = %q, want unresolved on external failure", res.Method)
	}
}
