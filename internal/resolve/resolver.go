package resolve

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tradewatch/disclosures/internal/model"
)

// FilingStore is the slice of the dedup store the resolver needs.
type FilingStore interface {
	UnresolvedAssetNames(ctx context.Context, limit int) ([]string, error)
	ApplyResolution(ctx context.Context, res model.TickerResolution) error
}

// Resolution is the outcome of resolving one asset name.
type Resolution struct {
	Ticker    string
	Method    model.ResolutionMethod
	AssetType model.AssetType // Refined type, empty when unchanged
}

// Config holds resolver settings.
type Config struct {
	LookupDelay time.Duration // Pause between consecutive external calls
	BatchLimit  int           // Max distinct asset names per run, 0 = all
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		LookupDelay: 500 * time.Millisecond,
		BatchLimit:  0,
	}
}

// Resolver runs the layered resolution state machine.
type Resolver struct {
	cfg      Config
	store    FilingStore
	searcher SymbolSearcher
	logger   *slog.Logger

	limiter *rate.Limiter
	cache   map[string]Resolution // Per-run, keyed by asset name
}

// New creates a Resolver.
func New(cfg Config, store FilingStore, searcher SymbolSearcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LookupDelay <= 0 {
		cfg.LookupDelay = DefaultConfig().LookupDelay
	}
	return &Resolver{
		cfg:      cfg,
		store:    store,
		searcher: searcher,
		logger:   logger,
		limiter:  rate.NewLimiter(rate.Every(cfg.LookupDelay), 1),
		cache:    map[string]Resolution{},
	}
}

// Report counts the outcomes of one batch run.
type Report struct {
	Resolved   int
	NonTicker  int
	Unresolved int
}

// Run resolves every unresolved asset name in the store, applying each
// outcome (with its audit record) as it completes. Per-name failures do not
// abort the batch.
func (r *Resolver) Run(ctx context.Context) (Report, error) {
	names, err := r.store.UnresolvedAssetNames(ctx, r.cfg.BatchLimit)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	for _, name := range names {
		if ctx.Err() != nil {
			return rep, ctx.Err()
		}

		res := r.Resolve(ctx, name)
		switch res.Method {
		case model.NonTickerable:
			rep.NonTicker++
		case model.Unresolved:
			rep.Unresolved++
		default:
			rep.Resolved++
		}

		audit := model.TickerResolution{
			ID:             uuid.New(),
			AssetName:      name,
			ResolvedTicker: res.Ticker,
			Method:         res.Method,
			AssetType:      res.AssetType,
			ResolvedAt:     time.Now().UTC(),
		}
		if err := r.store.ApplyResolution(ctx, audit); err != nil {
			r.logger.Error("apply resolution failed", "asset", name, "error", err)
		}
	}

	r.logger.Info("resolution batch complete",
		"names", len(names),
		"resolved", rep.Resolved,
		"non_tickerable", rep.NonTicker,
		"unresolved", rep.Unresolved,
	)
	return rep, nil
}

// Resolve walks the layers for one asset name. Results are cached for the
// run so a name never triggers duplicate external calls.
func (r *Resolver) Resolve(ctx context.Context, assetName string) Resolution {
	if res, ok := r.cache[assetName]; ok {
		return res
	}
	res := r.resolve(ctx, assetName)
	r.cache[assetName] = res
	return res
}

func (r *Resolver) resolve(ctx context.Context, assetName string) Resolution {
	name := strings.TrimSpace(assetName)

	// Layer 1: non-tickerable instruments. Never calls out.
	if assetType, ok := nonTickerable(name); ok {
		return Resolution{Method: model.NonTickerable, AssetType: assetType}
	}

	// Layer 2: the name itself looks like a symbol; accept only when the
	// external service confirms it is currently listed.
	if tickerShapeRe.MatchString(name) {
		listed, err := r.externalListed(ctx, name)
		if err != nil {
			r.logger.Warn("listing check failed", "symbol", name, "error", err)
		} else if listed {
			return Resolution{Ticker: name, Method: model.ResolvedPattern, AssetType: model.AssetStock}
		}
		// A symbol-shaped name that is not listed is weak evidence;
		// fall through to the remaining layers.
	}

	// Layer 3: curated name table.
	if ticker, ok := staticLookup(name); ok {
		return Resolution{Ticker: ticker, Method: model.ResolvedStatic, AssetType: model.AssetStock}
	}

	// Layer 4: external symbol search.
	if ticker, ok := r.externalSearch(ctx, name); ok {
		return Resolution{Ticker: ticker, Method: model.ResolvedExternal, AssetType: model.AssetStock}
	}

	return Resolution{Method: model.Unresolved}
}

func (r *Resolver) externalListed(ctx context.Context, symbol string) (bool, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return false, err
	}
	return r.searcher.Listed(ctx, symbol)
}

// externalSearch queries the symbol service and accepts a candidate only if
// it is a plausible equity symbol whose company name overlaps the query.
func (r *Resolver) externalSearch(ctx context.Context, assetName string) (string, bool) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", false
	}

	matches, err := r.searcher.Search(ctx, assetName)
	if err != nil {
		r.logger.Warn("symbol search failed", "asset", assetName, "error", err)
		return "", false
	}

	for _, m := range matches {
		if strings.Contains(m.Symbol, ".") {
			continue
		}
		if len(m.Symbol) < 1 || len(m.Symbol) > 5 {
			continue
		}
		if sharesToken(assetName, m.Name) {
			return strings.ToUpper(m.Symbol), true
		}
	}
	return "", false
}

// tokenStopwords are corporate boilerplate that would create false overlap.
var tokenStopwords = map[string]bool{
	"and": true, "class": true, "common": true, "company": true,
	"corp": true, "corporation": true, "fund": true, "group": true,
	"holdings": true, "inc": true, "ltd": true, "plc": true,
	"shares": true, "stock": true, "the": true, "trust": true,
}

// sharesToken reports whether the two names share at least one
// multi-character token.
func sharesToken(a, b string) bool {
	seen := map[string]bool{}
	for _, tok := range nameTokens(a) {
		seen[tok] = true
	}
	for _, tok := range nameTokens(b) {
		if seen[tok] {
			return true
		}
	}
	return false
}

func nameTokens(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	var toks []string
	for _, f := range fields {
		if len(f) >= 3 && !tokenStopwords[f] {
			toks = append(toks, f)
		}
	}
	return toks
}
