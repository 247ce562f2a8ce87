package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tradewatch/disclosures/internal/extract"
	"github.com/tradewatch/disclosures/internal/house"
	"github.com/tradewatch/disclosures/internal/model"
	"github.com/tradewatch/disclosures/internal/normalize"
	"github.com/tradewatch/disclosures/internal/senate"
	"github.com/tradewatch/disclosures/internal/store"
)

// ptrReportKind is the Senate portal's report-type code for periodic
// transaction reports.
const ptrReportKind = "11"

// Filings is the store surface the pipeline writes through.
type Filings interface {
	Upsert(ctx context.Context, f model.Filing) (store.UpsertResult, error)
}

// Job selects the sources and window of one run.
type Job struct {
	Senate     bool
	House      bool
	StartDate  time.Time // Senate submission window
	EndDate    time.Time
	Years      []int // House archive years
	PageLength int   // Senate query page size, 0 = default
}

// Report counts one run's outcomes across all sources.
type Report struct {
	Fetched    int // Index rows and archive entries retrieved
	Adapted    int // Transaction partials produced by the adapters
	Skipped    int // Rows and filings dropped by row-scoped failures
	Persisted  int // Filings newly stored
	Duplicates int // Filings already present under the same content hash
	Gaps       int // Pagination gaps recorded during query walks
}

func (r *Report) merge(o Report) {
	r.Fetched += o.Fetched
	r.Adapted += o.Adapted
	r.Skipped += o.Skipped
	r.Persisted += o.Persisted
	r.Duplicates += o.Duplicates
	r.Gaps += o.Gaps
}

// Runner drives ingestion runs against both portals.
type Runner struct {
	senate *senate.Client
	house  *house.Client
	store  Filings
	logger *slog.Logger
}

// New creates a Runner. Either client may be nil when its source is never
// selected.
func New(senateClient *senate.Client, houseClient *house.Client, filings Filings, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		senate: senateClient,
		house:  houseClient,
		store:  filings,
		logger: logger,
	}
}

// Run executes one ingestion job. Selected sources run concurrently, each on
// its own session. The returned Report covers everything that completed, even
// when one source failed part-way.
func (r *Runner) Run(ctx context.Context, job Job) (Report, error) {
	var (
		mu  sync.Mutex
		rep Report
	)

	g := new(errgroup.Group)

	if job.Senate {
		g.Go(func() error {
			sr, err := r.runSenate(ctx, job)
			mu.Lock()
			rep.merge(sr)
			mu.Unlock()
			if err != nil {
				return fmt.Errorf("senate: %w", err)
			}
			return nil
		})
	}

	if job.House {
		g.Go(func() error {
			hr, err := r.runHouse(ctx, job)
			mu.Lock()
			rep.merge(hr)
			mu.Unlock()
			if err != nil {
				return fmt.Errorf("house: %w", err)
			}
			return nil
		})
	}

	err := g.Wait()

	r.logger.Info("ingestion run complete",
		"fetched", rep.Fetched,
		"adapted", rep.Adapted,
		"skipped", rep.Skipped,
		"persisted", rep.Persisted,
		"duplicates", rep.Duplicates,
		"gaps", rep.Gaps,
	)
	return rep, err
}

func (r *Runner) runSenate(ctx context.Context, job Job) (Report, error) {
	var rep Report

	sess, err := r.senate.Establish(ctx)
	if err != nil {
		return rep, err
	}

	length := job.PageLength
	if length <= 0 {
		length = 100
	}

	filter := senate.Filter{
		StartDate:  job.StartDate,
		EndDate:    job.EndDate,
		ReportKind: ptrReportKind,
	}
	rows, gaps, err := r.senate.QueryAll(ctx, sess, filter, length)
	rep.Gaps = gaps
	rep.Fetched = len(rows)
	if err != nil {
		return rep, err
	}

	ectx := extract.Context{Chamber: model.ChamberSenate, BaseURL: r.senate.BaseURL()}
	for _, cells := range rows {
		index, skipped, err := extract.Adapt(extract.TabularRow{Cells: cells}, ectx)
		rep.Skipped += skipped
		if err != nil {
			var ae *extract.AdaptationError
			if errors.As(err, &ae) {
				continue
			}
			return rep, err
		}

		for _, filing := range index {
			txs, sk, err := r.senate.FetchFilingTransactions(ctx, sess, filing)
			rep.Skipped += sk
			if err != nil {
				var drift *extract.ShapeDriftError
				if errors.As(err, &drift) {
					r.logger.Warn("detail page shape drift, skipping filing",
						"url", filing.SourceURL,
						"error", err,
					)
					rep.Skipped++
					continue
				}
				return rep, err
			}

			rep.Adapted += len(txs)
			if err := r.persist(ctx, txs, &rep); err != nil {
				return rep, err
			}
		}
	}

	return rep, nil
}

func (r *Runner) runHouse(ctx context.Context, job Job) (Report, error) {
	var rep Report

	for _, year := range job.Years {
		idx, err := r.house.FetchYearIndex(ctx, year)
		if err != nil {
			return rep, fmt.Errorf("year %d index: %w", year, err)
		}
		rep.Fetched += len(idx.Partials)
		rep.Skipped += idx.Skipped

		for _, filing := range idx.Partials {
			txs, sk, err := r.house.FetchFilingTransactions(ctx, filing)
			rep.Skipped += sk
			if err != nil {
				var drift *extract.ShapeDriftError
				if errors.As(err, &drift) {
					r.logger.Warn("document shape drift, skipping filing",
						"url", filing.SourceURL,
						"error", err,
					)
					rep.Skipped++
					continue
				}
				return rep, err
			}

			rep.Adapted += len(txs)
			if err := r.persist(ctx, txs, &rep); err != nil {
				return rep, err
			}
		}
	}

	return rep, nil
}

// persist normalizes and upserts one filing's transaction partials.
func (r *Runner) persist(ctx context.Context, partials []model.PartialFiling, rep *Report) error {
	for _, p := range partials {
		f := normalize.Normalize(p)
		res, err := r.store.Upsert(ctx, f)
		if err != nil {
			return fmt.Errorf("persist filing: %w", err)
		}
		switch res {
		case store.Inserted:
			rep.Persisted++
		case store.AlreadyExists:
			rep.Duplicates++
		}
	}
	return nil
}
