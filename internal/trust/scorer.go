// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package trust computes the 0-100 trust score a user has in a provider.
//
// The score is a weighted composite of four components, each normalized to
// 0-100 before weighting: connection proximity, network review quality,
// network endorsements, and the provider's global rating. Weights are fixed
// constants, not configuration: the score's meaning must be stable across
// deployments for "trust 85" to mean the same thing everywhere.
//
// Scores are derived on demand and never persisted. An optional short-TTL
// in-memory cache can absorb repeat lookups within a session; see
// WithScoreCache.
package trust

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/servicegraph/internal/cache"
	"github.com/tomtom215/servicegraph/internal/metrics"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

// Component weights. Must sum to 1.0.
const (
	weightConnection   = 0.40
	weightReviews      = 0.35
	weightEndorsements = 0.15
	weightGlobal       = 0.10
)

// pointsPerEndorsement is how much each network endorsement contributes to
// the endorsement component, capped at 100. Two vouches saturate it.
const pointsPerEndorsement = 50

// defaultBatchConcurrency bounds parallel provider scoring when the caller
// does not configure a limit.
const defaultBatchConcurrency = 8

// ErrProviderNotFound is returned by Score when the provider does not exist.
var ErrProviderNotFound = errors.New("provider not found")

// GraphReader is the subset of graph engine behavior the scorer needs.
type GraphReader interface {
	ConnectionDegree(ctx context.Context, userID, targetID string) (models.Degree, error)
	NetworkRating(ctx context.Context, userID, providerID string) (*models.NetworkRating, error)
	NetworkEndorsements(ctx context.Context, userID, providerID string) ([]models.Endorsement, error)
}

// Scorer computes trust scores. Safe for concurrent use.
type Scorer struct {
	graph       GraphReader
	catalog     store.CatalogStore
	concurrency int
	scores      *cache.LRU[*models.TrustScore]
	logger      zerolog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithBatchConcurrency bounds the number of providers scored in parallel by
// BatchScore. Values below one fall back to the default.
func WithBatchConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithScoreCache memoizes computed scores per user/provider pair in an LRU
// cache with the given capacity and TTL. Keep the TTL short: the score is a
// view over live graph and review data.
func WithScoreCache(capacity int, ttl time.Duration) Option {
	return func(s *Scorer) {
		s.scores = cache.NewLRU[*models.TrustScore](capacity, ttl)
	}
}

// NewScorer creates a trust scorer over the given graph and catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewScorer(graph GraphReader, catalog store.CatalogStore, logger zerolog.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		graph:       graph,
		catalog:     catalog,
		concurrency: defaultBatchConcurrency,
		logger:      logger.With().Str("component", "trust").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the trust score userID has in providerID. The user not
// existing is not an error: an unknown user simply has no network, and the
// score degrades to the global-rating component. A missing provider returns
// ErrProviderNotFound.
func (s *Scorer) Score(ctx context.Context, userID, providerID string) (*models.TrustScore, error) {
	start := time.Now()

	cacheKey := userID + "\x00" + providerID
	if s.scores != nil {
		if cached, ok := s.scores.Get(cacheKey); ok {
			return cached, nil
		}
	}

	provider, err := s.catalog.Provider(ctx, providerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, providerID)
		}
		return nil, fmt.Errorf("load provider %q: %w", providerID, err)
	}

	// Degree is resolved against the provider's linked user account; a
	// provider with no account can never be network-connected.
	degree := models.DegreeNone
	if provider.UserID != "" {
		degree, err = s.graph.ConnectionDegree(ctx, userID, provider.UserID)
		if err != nil {
			return nil, fmt.Errorf("connection degree: %w", err)
		}
	}

	rating, err := s.graph.NetworkRating(ctx, userID, providerID)
	if err != nil {
		return nil, fmt.Errorf("network rating: %w", err)
	}

	endorsements, err := s.graph.NetworkEndorsements(ctx, userID, providerID)
	if err != nil {
		return nil, fmt.Errorf("network endorsements: %w", err)
	}

	components := models.TrustComponents{
		ConnectionScore:  float64(degree.ConnectionScore()),
		ReviewScore:      reviewScore(rating),
		EndorsementScore: endorsementScore(len(endorsements)),
		GlobalScore:      provider.GlobalRating * 20,
	}

	score := &models.TrustScore{
		UserID:             userID,
		ProviderID:         providerID,
		Score:              compose(components),
		Degree:             degree,
		NetworkReviewCount: rating.ReviewCount,
		NetworkAvgRating:   rating.WeightedAverage,
		EndorsementCount:   len(endorsements),
		GlobalRating:       provider.GlobalRating,
		Components:         components,
		ComputedAt:         time.Now(),
	}

	if s.scores != nil {
		s.scores.Put(cacheKey, score)
	}

	metrics.TrustScoresComputed.Inc()
	metrics.TrustScoreDuration.Observe(time.Since(start).Seconds())

	s.logger.Debug().
		Str("user_id", userID).
		Str("provider_id", providerID).
		Int("score", score.Score).
		Str("degree", degree.String()).
		Msg("trust score computed")

	return score, nil
}

// BatchScore computes scores for many providers in parallel, bounded by the
// configured concurrency. Providers that do not exist are skipped rather
// than failing the batch; any other error aborts it. Results are keyed by
// provider id.
func (s *Scorer) BatchScore(ctx context.Context, userID string, providerIDs []string) (map[string]*models.TrustScore, error) {
	scores := make(map[string]*models.TrustScore, len(providerIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, providerID := range providerIDs {
		g.Go(func() error {
			score, err := s.Score(ctx, userID, providerID)
			if err != nil {
				if errors.Is(err, ErrProviderNotFound) {
					return nil
				}
				return err
			}

			mu.Lock()
			scores[providerID] = score
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// reviewScore maps the degree-weighted network rating (a 0-5 average) onto
// 0-100. No network reviews means no signal, which scores zero rather than
// neutral: absence of network evidence should not prop a score up.
func reviewScore(rating *models.NetworkRating) float64 {
	if rating.ReviewCount == 0 {
		return 0
	}
	return rating.WeightedAverage * 20
}

// endorsementScore awards fixed points per endorsement, saturating at 100.
func endorsementScore(count int) float64 {
	score := float64(count) * pointsPerEndorsement
	return math.Min(score, 100)
}

// compose blends the components into the final integer score. Inputs are
// all in [0,100] so the result needs no clamping.
func compose(c models.TrustComponents) int {
	blended := c.ConnectionScore*weightConnection +
		c.ReviewScore*weightReviews +
		c.EndorsementScore*weightEndorsements +
		c.GlobalScore*weightGlobal
	return int(math.Round(blended))
}
