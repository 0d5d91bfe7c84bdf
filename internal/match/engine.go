// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package match implements the matcher: it filters a category's active
// offerings through the requester's hard constraints, scores the survivors
// on trust, preference fit and global rating, and returns them ranked with
// a human-readable explanation.
//
// Results are derived per request and never persisted. Ranking is
// deterministic for a fixed store state: candidates are enumerated in the
// store's stable order and sorted with a stable sort, so equal scores keep
// enumeration order.
package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/servicegraph/internal/geo"
	"github.com/tomtom215/servicegraph/internal/metrics"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
	"github.com/tomtom215/servicegraph/internal/validation"
)

// blendWeights is one priority profile for composing the match score.
type blendWeights struct {
	trust      float64
	preference float64
	rating     float64
}

// weightsFor maps a priority to its blend profile. Availability has no live
// signal in this core, so it ranks like the trust default.
func weightsFor(priority models.MatchPriority) blendWeights {
	switch priority {
	case models.PriorityRating:
		return blendWeights{trust: 0.25, preference: 0.25, rating: 0.5}
	case models.PriorityPrice:
		return blendWeights{trust: 0.3, preference: 0.5, rating: 0.2}
	case models.PriorityTrust, models.PriorityAvailability:
		return blendWeights{trust: 0.6, preference: 0.25, rating: 0.15}
	default:
		return blendWeights{trust: 0.6, preference: 0.25, rating: 0.15}
	}
}

// Preference fit scoring constants. Fit starts neutral and moves with each
// signal, clamped to [0, 100].
const (
	prefBaseScore        = 50
	prefBudgetFitBonus   = 15
	prefBudgetPenalty    = 20
	prefCapacityBonus    = 10
	prefMinCapacityBonus = 5
	prefAreaBonus        = 10
	prefInstantBookBonus = 5

	// greatValueRatio marks an offering as notably below budget.
	greatValueRatio = 0.8
)

// TrustScorer is the subset of trust scoring the matcher needs.
type TrustScorer interface {
	BatchScore(ctx context.Context, userID string, providerIDs []string) (map[string]*models.TrustScore, error)
}

// PreferenceReader loads a requester's stored profile.
type PreferenceReader interface {
	Get(ctx context.Context, userID string) (*models.UserPreferences, error)
}

// Engine matches service requests against the offering catalog. Safe for
// concurrent use.
type Engine struct {
	catalog       store.CatalogStore
	trust         TrustScorer
	preferences   PreferenceReader
	maxCandidates int
	logger        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxCandidates caps how many offerings one request will consider.
// Zero means unlimited.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCandidates = n
		}
	}
}

// NewEngine creates a matcher over the given catalog and collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(catalog store.CatalogStore, trust TrustScorer, preferences PreferenceReader, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:     catalog,
		trust:       trust,
		preferences: preferences,
		logger:      logger.With().Str("component", "match").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindMatches returns the ranked matches for one request. An empty result
// is normal (nothing in the category, or everything filtered out), not an
// error. Ranks are 1-based and contiguous after the sort.
func (e *Engine) FindMatches(
	ctx context.Context,
	userID, category string,
	requirements models.ServiceRequirements,
	matching models.MatchingPreferences,
) ([]models.MatchResult, error) {
	start := time.Now()

	if verr := validation.ValidateStruct(&requirements); verr != nil {
		return nil, fmt.Errorf("invalid requirements: %w", verr)
	}
	if verr := validation.ValidateStruct(&matching); verr != nil {
		return nil, fmt.Errorf("invalid matching preferences: %w", verr)
	}

	offerings, err := e.activeOfferings(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(offerings) == 0 {
		metrics.ObserveMatch(category, 0, time.Since(start))
		return []models.MatchResult{}, nil
	}

	scores, err := e.trust.BatchScore(ctx, userID, providerIDs(offerings))
	if err != nil {
		return nil, fmt.Errorf("batch trust scores: %w", err)
	}

	prefs, err := e.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	weights := weightsFor(matching.Prioritize)
	matches := make([]models.MatchResult, 0, len(offerings))

	for i := range offerings {
		offering := &offerings[i]

		trustScore, ok := scores[offering.ProviderID]
		if !ok {
			continue // provider vanished between index and lookup
		}

		provider, err := e.catalog.Provider(ctx, offering.ProviderID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load provider %q: %w", offering.ProviderID, err)
		}

		if matching.MinTrustScore > 0 && trustScore.Score < matching.MinTrustScore {
			continue
		}
		if matching.NetworkOnly && !trustScore.Degree.Known() {
			continue
		}
		if matching.MinRating > 0 && provider.GlobalRating < matching.MinRating {
			continue
		}
		if tooFarToTravel(offering, prefs, requirements) {
			continue
		}

		prefScore, highlights := preferenceFit(offering, prefs, requirements)
		matchScore := blend(trustScore.Score, prefScore, provider.GlobalRating, weights)

		matches = append(matches, models.MatchResult{
			ProviderID:           offering.ProviderID,
			ProviderName:         provider.DisplayName,
			OfferingID:           offering.ID,
			OfferingName:         offering.Name,
			TrustScore:           trustScore.Score,
			ConnectionDegree:     trustScore.Degree,
			NetworkReviewCount:   trustScore.NetworkReviewCount,
			NetworkAvgRating:     trustScore.NetworkAvgRating,
			GlobalRating:         provider.GlobalRating,
			GlobalReviewCount:    provider.GlobalReviewCount,
			EstimatedPrice:       estimatePrice(offering, requirements),
			PriceRange:           negotiableRange(offering),
			Availability:         "available",
			PreferenceMatchScore: prefScore,
			PreferenceHighlights: highlights,
			MatchScore:           matchScore,
			MatchExplanation:     explanation(trustScore, prefScore, highlights),
			CanInstantBook:       offering.InstantBook,
			Negotiable:           offering.Negotiable,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	for i := range matches {
		matches[i].MatchRank = i + 1
	}

	metrics.ObserveMatch(category, len(offerings), time.Since(start))
	e.logger.Debug().
		Str("user_id", userID).
		Str("category", category).
		Int("candidates", len(offerings)).
		Int("matches", len(matches)).
		Msg("match request completed")

	return matches, nil
}

// FindMatch resolves a single offering to its ranked match result, scored
// against its whole category so rank and score match what FindMatches would
// return. Returns nil when the offering is unknown or filtered out.
func (e *Engine) FindMatch(ctx context.Context, userID, offeringID string) (*models.MatchResult, error) {
	offering, err := e.catalog.Offering(ctx, offeringID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load offering %q: %w", offeringID, err)
	}

	matches, err := e.FindMatches(ctx, userID, offering.Category, models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		return nil, err
	}

	for i := range matches {
		if matches[i].OfferingID == offeringID {
			return &matches[i], nil
		}
	}
	return nil, nil
}

// activeOfferings lists the category's active offerings, capped at the
// configured candidate limit.
func (e *Engine) activeOfferings(ctx context.Context, category string) ([]models.ServiceOffering, error) {
	all, err := e.catalog.OfferingsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("offerings for %q: %w", category, err)
	}

	active := make([]models.ServiceOffering, 0, len(all))
	for _, o := range all {
		if o.Status != models.OfferingActive {
			continue
		}
		active = append(active, o)
		if e.maxCandidates > 0 && len(active) == e.maxCandidates {
			break
		}
	}
	return active, nil
}

// loadPreferences returns the requester's profile, or nil when none is
// stored. Preference fit degrades to its neutral base without one.
func (e *Engine) loadPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	prefs, err := e.preferences.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load preferences for %q: %w", userID, err)
	}
	return prefs, nil
}

// providerIDs returns the distinct provider ids behind a set of offerings,
// preserving first-occurrence order.
func providerIDs(offerings []models.ServiceOffering) []string {
	seen := make(map[string]struct{}, len(offerings))
	ids := make([]string, 0, len(offerings))
	for _, o := range offerings {
		if _, ok := seen[o.ProviderID]; ok {
			continue
		}
		seen[o.ProviderID] = struct{}{}
		ids = append(ids, o.ProviderID)
	}
	return ids
}

// tooFarToTravel reports whether a fixed-location offering exceeds the
// requester's travel budget. Offerings without a fixed location come to the
// customer and are never distance-filtered.
func tooFarToTravel(offering *models.ServiceOffering, prefs *models.UserPreferences, req models.ServiceRequirements) bool {
	if prefs == nil || req.Location == nil || offering.Location == nil {
		return false
	}
	budget := prefs.Location.MaxTravelMinutes
	if budget <= 0 {
		return false
	}
	minutes := geo.EstimateDrivingMinutes(geo.Distance(*req.Location, *offering.Location))
	return minutes > budget
}

// preferenceFit scores how well an offering fits the requester, starting
// from a neutral base. Without a stored profile the base is returned as-is:
// nothing is known, so nothing is rewarded or penalized.
func preferenceFit(offering *models.ServiceOffering, prefs *models.UserPreferences, req models.ServiceRequirements) (int, []string) {
	score := prefBaseScore
	var highlights []string

	if prefs == nil {
		return score, highlights
	}

	if req.Budget != nil {
		if offering.BasePrice <= req.Budget.Max {
			score += prefBudgetFitBonus
			if offering.BasePrice <= req.Budget.Max*greatValueRatio {
				highlights = append(highlights, "Great value for your budget")
			}
		} else {
			score -= prefBudgetPenalty
		}
	}

	if req.PartySize > 0 {
		if offering.MaxCapacity > 0 && req.PartySize <= offering.MaxCapacity {
			score += prefCapacityBonus
		}
		if offering.MinCapacity > 0 && req.PartySize >= offering.MinCapacity {
			score += prefMinCapacityBonus
		}
	}

	// Area fit is attribute presence only; offerings carry no geocoded
	// location to test against preferred areas.
	if len(prefs.Location.PreferredAreas) > 0 && len(offering.Attributes) > 0 {
		score += prefAreaBonus
	}

	if req.Location != nil && offering.Location != nil && prefs.Transportation.MaxWalkMinutes > 0 {
		d := geo.Distance(*req.Location, *offering.Location)
		if geo.EstimateWalkingMinutes(d) <= prefs.Transportation.MaxWalkMinutes {
			highlights = append(highlights, fmt.Sprintf("Within walking distance (%s)", geo.FormatDistance(d)))
		}
	}

	if offering.InstantBook {
		highlights = append(highlights, "Instant booking available")
		score += prefInstantBookBonus
	}

	return clampScore(score), highlights
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// blend composes the final match score. The global rating is normalized
// from 0-5 onto the 0-100 scale of the other two signals.
func blend(trustScore, prefScore int, globalRating float64, w blendWeights) int {
	composed := float64(trustScore)*w.trust +
		float64(prefScore)*w.preference +
		globalRating*20*w.rating
	return int(math.Round(composed))
}

// estimatePrice applies the offering's pricing model to the requirements,
// rounded to cents. Models the requirements can't parameterize fall back to
// the base price.
func estimatePrice(offering *models.ServiceOffering, req models.ServiceRequirements) float64 {
	price := offering.BasePrice

	switch offering.PricingModel {
	case models.PricingPerPerson:
		if req.PartySize > 0 {
			price = offering.BasePrice * float64(req.PartySize)
		}
	case models.PricingHourly:
		if req.DurationMinutes > 0 {
			price = offering.BasePrice * float64(req.DurationMinutes) / 60
		}
	}

	return math.Round(price*100) / 100
}

// negotiableRange returns the ±10% band around the base price for
// negotiable offerings, nil otherwise.
func negotiableRange(offering *models.ServiceOffering) *models.PriceRange {
	if !offering.Negotiable {
		return nil
	}
	return &models.PriceRange{
		Low:  offering.BasePrice * 0.9,
		High: offering.BasePrice * 1.1,
	}
}

// explanation builds the deterministic human-readable summary: trust
// evidence first, then preference fit, then up to two highlights.
func explanation(trust *models.TrustScore, prefScore int, highlights []string) string {
	var parts []string

	switch trust.Degree {
	case models.DegreeFirst:
		parts = append(parts, "Direct connection in your network")
	case models.DegreeSecond:
		parts = append(parts, "Friend of a friend")
	case models.DegreeThird:
		parts = append(parts, "In your extended network")
	}

	if trust.NetworkReviewCount == 1 {
		parts = append(parts, "1 review from your network")
	} else if trust.NetworkReviewCount > 1 {
		parts = append(parts, fmt.Sprintf("%d reviews from your network", trust.NetworkReviewCount))
	}

	if trust.EndorsementCount > 0 {
		parts = append(parts, "Vouched for by someone you know")
	}

	if prefScore >= 80 {
		parts = append(parts, "Excellent match for your preferences")
	} else if prefScore >= 60 {
		parts = append(parts, "Good match for your preferences")
	}

	if len(highlights) > 2 {
		highlights = highlights[:2]
	}
	parts = append(parts, highlights...)

	if len(parts) == 0 {
		return "Based on global ratings"
	}
	return strings.Join(parts, ". ")
}
