package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/tradewatch/disclosures/internal/config"
	"github.com/tradewatch/disclosures/internal/house"
	"github.com/tradewatch/disclosures/internal/pipeline"
	"github.com/tradewatch/disclosures/internal/retry"
	"github.com/tradewatch/disclosures/internal/senate"
	"github.com/tradewatch/disclosures/internal/store"
	"github.com/tradewatch/disclosures/internal/version"
)

func main() {
	var (
		configPath = flag.String("config", "configs/ingest.local.yaml", "path to config file")
		startStr   = flag.String("start", "", "window start, YYYY-MM-DD (default: 30 days ago)")
		endStr     = flag.String("end", "", "window end, YYYY-MM-DD (default: today)")
		yearsStr   = flag.String("years", "", "comma-separated archive years (default: current year)")
		sources    = flag.String("sources", "senate,house", "sources to ingest: senate, house, or both")
	)
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingest",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	job, err := buildJob(*startStr, *endStr, *yearsStr, *sources, cfg)
	if err != nil {
		logger.Error("invalid arguments", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	filings := store.New(pool, logger)

	senateClient := senate.NewClient(
		cfg.Senate.BaseURL,
		senate.WithLogger(logger),
		senate.WithTimeout(cfg.Senate.Timeout),
		senate.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.Senate.MaxRetries,
			BaseDelay:   cfg.Senate.RetryBackoff,
			MaxDelay:    30 * time.Second,
		}),
	)
	houseClient := house.NewClient(
		cfg.House.BaseURL,
		house.WithLogger(logger),
		house.WithTimeout(cfg.House.Timeout),
		house.WithDocTimeout(cfg.House.DocTimeout),
		house.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.House.MaxRetries,
			BaseDelay:   cfg.House.RetryBackoff,
			MaxDelay:    30 * time.Second,
		}),
	)

	runner := pipeline.New(senateClient, houseClient, filings, logger)

	rep, err := runner.Run(ctx, job)
	if err != nil {
		logger.Error("ingestion finished with errors", "error", err)
	}

	fmt.Printf("fetched=%d adapted=%d skipped=%d persisted=%d duplicates=%d gaps=%d\n",
		rep.Fetched, rep.Adapted, rep.Skipped, rep.Persisted, rep.Duplicates, rep.Gaps)

	if err != nil {
		os.Exit(1)
	}
}

// buildJob turns the flag values into a pipeline job.
func buildJob(startStr, endStr, yearsStr, sources string, cfg *config.Config) (pipeline.Job, error) {
	now := time.Now().UTC()

	job := pipeline.Job{
		StartDate:  now.AddDate(0, 0, -30),
		EndDate:    now,
		Years:      []int{now.Year()},
		PageLength: cfg.Senate.PageLength,
	}

	for _, s := range strings.Split(sources, ",") {
		switch strings.TrimSpace(s) {
		case "senate":
			job.Senate = true
		case "house":
			job.House = true
		case "":
		default:
			return job, fmt.Errorf("unknown source %q", s)
		}
	}
	if !job.Senate && !job.House {
		return job, fmt.Errorf("no sources selected")
	}

	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return job, fmt.Errorf("parse start date: %w", err)
		}
		job.StartDate = t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return job, fmt.Errorf("parse end date: %w", err)
		}
		job.EndDate = t
	}
	if job.EndDate.Before(job.StartDate) {
		return job, fmt.Errorf("end date precedes start date")
	}

	if yearsStr != "" {
		job.Years = job.Years[:0]
		for _, y := range strings.Split(yearsStr, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(y))
			if err != nil {
				return job, fmt.Errorf("parse year %q: %w", y, err)
			}
			job.Years = append(job.Years, n)
		}
	}

	return job, nil
}
