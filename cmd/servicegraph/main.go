// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package main is the demo host for the matching core.
//
// ServiceGraph is a library-first system; there is no HTTP surface here.
// This binary loads configuration, opens the selected store, seeds a small
// demo graph when the store is empty, and runs one full matching flow
// (connections, trust, group preferences, ranked matches), emitting the
// results as JSON on stdout.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): SERVICEGRAPH_* environment variables, an optional
// config.yaml, then built-in defaults. Relevant variables:
//   - SERVICEGRAPH_LOGGING_LEVEL: trace, debug, info, warn, error
//   - SERVICEGRAPH_LOGGING_FORMAT: json or console
//   - SERVICEGRAPH_STORE_BACKEND: memory (default) or badger
//   - SERVICEGRAPH_STORE_PATH: BadgerDB directory for the badger backend
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/servicegraph/internal/config"
	"github.com/tomtom215/servicegraph/internal/graph"
	"github.com/tomtom215/servicegraph/internal/logging"
	"github.com/tomtom215/servicegraph/internal/match"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/preferences"
	"github.com/tomtom215/servicegraph/internal/store"
	"github.com/tomtom215/servicegraph/internal/store/badgerstore"
	"github.com/tomtom215/servicegraph/internal/store/memory"
	"github.com/tomtom215/servicegraph/internal/trust"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("servicegraph demo failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	if err := seedIfEmpty(ctx, st); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	graphEngine := graph.NewEngine(st, st, st, st, logger)
	scorer := trust.NewScorer(graphEngine, st, logger,
		trust.WithBatchConcurrency(cfg.Matching.Concurrency),
		trust.WithScoreCache(4096, time.Minute))
	prefEngine := preferences.NewEngine(st, logger)
	matcher := match.NewEngine(st, scorer, prefEngine, logger,
		match.WithMaxCandidates(cfg.Matching.Candidates))

	return demo(ctx, graphEngine, scorer, prefEngine, matcher)
}

// openStore opens the configured backend and returns it with its cleanup.
func openStore(cfg *config.Config) (seedStore, func(), error) {
	switch cfg.Store.Backend {
	case "badger":
		st, err := badgerstore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store: %w", err)
		}
		return st, func() {
			if err := st.Close(); err != nil {
				logging.Err(err).Msg("close store")
			}
		}, nil
	default:
		return memory.New(), func() {}, nil
	}
}

// demo runs one end-to-end matching flow for the seeded requester and
// prints each stage as JSON.
func demo(ctx context.Context, graphEngine *graph.Engine, scorer *trust.Scorer, prefEngine *preferences.Engine, matcher *match.Engine) error {
	const requester = "usr_sarah_001"

	connections, err := graphEngine.Connections(ctx, requester, models.MaxDegree)
	if err != nil {
		return fmt.Errorf("connections: %w", err)
	}
	printJSON("network", connections)

	path, err := graphEngine.ConnectionPath(ctx, requester, "usr_pat_006")
	if err != nil {
		return fmt.Errorf("connection path: %w", err)
	}
	printJSON("path_to_driver", path)

	score, err := scorer.Score(ctx, requester, "prv_pat_driver")
	if err != nil {
		return fmt.Errorf("trust score: %w", err)
	}
	printJSON("trust_score", score)

	group := []string{requester, "usr_emma_002", "usr_lisa_003"}
	groupPrefs, err := prefEngine.AggregateGroup(ctx, group)
	if err != nil {
		return fmt.Errorf("group preferences: %w", err)
	}
	printJSON("group_preferences", groupPrefs)

	filters, err := prefEngine.GenerateGroupSearchFilters(ctx, group, "dining")
	if err != nil {
		return fmt.Errorf("group search filters: %w", err)
	}
	printJSON("group_search_filters", filters)

	matches, err := matcher.FindMatches(ctx, requester, "transportation",
		models.ServiceRequirements{
			PartySize:       3,
			DurationMinutes: 120,
			Budget:          &models.BudgetRange{Min: 0, Max: 100, Currency: "USD"},
		},
		models.MatchingPreferences{Prioritize: models.PriorityTrust},
	)
	if err != nil {
		return fmt.Errorf("find matches: %w", err)
	}
	printJSON("matches", matches)

	return nil
}

// printJSON writes one labeled result document to stdout.
func printJSON(label string, v any) {
	doc := map[string]any{label: v}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logging.Err(err).Str("label", label).Msg("marshal result")
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}

// seedIfEmpty loads the demo dataset unless the store already has it.
func seedIfEmpty(ctx context.Context, st seedStore) error {
	_, err := st.User(ctx, "usr_sarah_001")
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return seed(ctx, st)
}
