// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package metrics provides Prometheus instrumentation for the matching
// core: graph traversal depth, trust score computation, preference updates,
// and match request latency. Collectors are registered via promauto on
// import; serving the registry over HTTP is the embedding application's
// concern.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Graph Metrics
	GraphTraversals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_traversals_total",
			Help: "Total number of bounded graph traversals, by resolved degree",
		},
		[]string{"degree"}, // "0" through "3"
	)

	EndorsementsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "graph_endorsements_created_total",
			Help: "Total number of endorsements recorded",
		},
	)

	// Trust Metrics
	TrustScoresComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trust_scores_computed_total",
			Help: "Total number of trust scores computed",
		},
	)

	TrustScoreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trust_score_duration_seconds",
			Help:    "Duration of single trust score computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Preference Metrics
	PreferenceUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_updates_total",
			Help: "Total number of preference profile updates, by section",
		},
		[]string{"section"},
	)

	PreferenceConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_conflicts_detected_total",
			Help: "Total number of group preference conflicts detected",
		},
		[]string{"type"}, // "budget", "cuisine"
	)

	// Match Metrics
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of match requests, by service category",
		},
		[]string{"category"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_duration_seconds",
			Help:    "End-to-end match request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"category"},
	)

	MatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_candidates_considered",
			Help:    "Number of candidate offerings considered per match request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// Store Metrics
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_errors_total",
			Help: "Total number of store operation errors",
		},
		[]string{"operation"},
	)
)

// ObserveTraversal records a completed traversal at the given degree.
func ObserveTraversal(degree int) {
	GraphTraversals.WithLabelValues(strconv.Itoa(degree)).Inc()
}

// ObserveMatch records a completed match request.
func ObserveMatch(category string, candidates int, elapsed time.Duration) {
	MatchRequests.WithLabelValues(category).Inc()
	MatchDuration.WithLabelValues(category).Observe(elapsed.Seconds())
	MatchCandidates.Observe(float64(candidates))
}
