// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "time"

// MatchPriority selects the weight profile used to blend the match score.
type MatchPriority string

const (
	// PriorityTrust favors social proximity (the default).
	PriorityTrust MatchPriority = "trust"
	// PriorityPrice favors preference fit; the price signal folds into the
	// preference score upstream.
	PriorityPrice MatchPriority = "price"
	// PriorityRating favors global reputation.
	PriorityRating MatchPriority = "rating"
	// PriorityAvailability behaves like PriorityTrust; no live
	// availability signal is modeled in this core.
	PriorityAvailability MatchPriority = "availability"
)

// ServiceRequirements describes what the requester needs from a match.
type ServiceRequirements struct {
	// DateTime is when the service is wanted.
	DateTime time.Time `json:"date_time,omitempty"`

	// DurationMinutes is the expected service duration.
	DurationMinutes int `json:"duration_minutes,omitempty" validate:"gte=0"`

	// PartySize is the number of attendees.
	PartySize int `json:"party_size,omitempty" validate:"gte=0"`

	// Location is where the service is wanted.
	Location *GeoPoint `json:"location,omitempty"`

	// Budget is the requester's envelope for this request.
	Budget *BudgetRange `json:"budget,omitempty"`

	// Notes carries freeform context. Not interpreted by the matcher.
	Notes string `json:"notes,omitempty"`
}

// MatchingPreferences tunes filtering and ranking for one request.
type MatchingPreferences struct {
	// NetworkOnly drops providers with no connection degree.
	NetworkOnly bool `json:"network_only"`

	// MinTrustScore drops providers scoring below it, when positive.
	MinTrustScore int `json:"min_trust_score,omitempty" validate:"gte=0,lte=100"`

	// MinRating drops providers with a lower global rating, when positive.
	MinRating float64 `json:"min_rating,omitempty" validate:"gte=0,lte=5"`

	// Prioritize selects the blend weight profile; empty means trust.
	Prioritize MatchPriority `json:"prioritize,omitempty"`
}

// PriceRange is an estimated low/high price band.
type PriceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// MatchResult is one ranked, explainable candidate returned for a request.
// Derived per request, never persisted.
type MatchResult struct {
	ProviderID   string `json:"provider_id"`
	ProviderName string `json:"provider_name"`
	OfferingID   string `json:"offering_id"`
	OfferingName string `json:"offering_name"`

	// TrustScore is the blended trust score in [0, 100].
	TrustScore int `json:"trust_score"`

	// ConnectionDegree is the requester's distance to the provider.
	ConnectionDegree Degree `json:"connection_degree"`

	NetworkReviewCount int     `json:"network_review_count"`
	NetworkAvgRating   float64 `json:"network_avg_rating"`
	GlobalRating       float64 `json:"global_rating"`
	GlobalReviewCount  int     `json:"global_review_count"`

	// EstimatedPrice applies the pricing model to the requirements.
	EstimatedPrice float64 `json:"estimated_price"`

	// PriceRange is the negotiable band, when the offering is negotiable.
	PriceRange *PriceRange `json:"price_range,omitempty"`

	// Availability is a placeholder; no live availability is modeled.
	Availability string `json:"availability"`

	// PreferenceMatchScore is the preference-fit score in [0, 100].
	PreferenceMatchScore int `json:"preference_match_score"`

	// PreferenceHighlights explains what fits well.
	PreferenceHighlights []string `json:"preference_highlights"`

	// MatchScore is the priority-weighted blend of trust, preference fit
	// and normalized global rating.
	MatchScore int `json:"match_score"`

	// MatchRank is the 1-based position after the global sort.
	MatchRank int `json:"match_rank"`

	// MatchExplanation is a deterministic human-readable summary.
	MatchExplanation string `json:"match_explanation"`

	CanInstantBook bool `json:"can_instant_book"`
	Negotiable     bool `json:"negotiable"`
}
