package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tradewatch/disclosures/internal/config"
	"github.com/tradewatch/disclosures/internal/resolve"
	"github.com/tradewatch/disclosures/internal/store"
	"github.com/tradewatch/disclosures/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ingest.local.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting resolver",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	filings := store.New(pool, logger)
	searcher := resolve.NewHTTPSearcher(cfg.Resolver.SearchURL, cfg.Resolver.APIKey, cfg.Resolver.Timeout)

	resolver := resolve.New(resolve.Config{
		LookupDelay: cfg.Resolver.LookupDelay,
		BatchLimit:  cfg.Resolver.BatchLimit,
	}, filings, searcher, logger)

	rep, err := resolver.Run(ctx)
	if err != nil {
		logger.Error("resolution batch failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("resolved=%d non_tickerable=%d unresolved=%d\n",
		rep.Resolved, rep.NonTicker, rep.Unresolved)
}
