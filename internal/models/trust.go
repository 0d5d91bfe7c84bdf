// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "time"

// TrustScore is the derived, per-request trust view of a provider from one
// user's perspective. It is never persisted.
type TrustScore struct {
	// UserID is the requesting user whose network anchors this view.
	UserID string `json:"user_id"`

	// ProviderID is the scored provider.
	ProviderID string `json:"provider_id"`

	// Score is the blended trust score in [0, 100].
	Score int `json:"score"`

	// Degree is the closest connection degree to the provider's linked
	// user; DegreeNone when the provider is unreachable or unlinked.
	Degree Degree `json:"degree"`

	// NetworkReviewCount is the number of reviews from the requester's
	// bounded network.
	NetworkReviewCount int `json:"network_review_count"`

	// NetworkAvgRating is the degree-weighted average network rating;
	// zero when NetworkReviewCount is zero.
	NetworkAvgRating float64 `json:"network_avg_rating"`

	// EndorsementCount is the number of network endorsements.
	EndorsementCount int `json:"endorsement_count"`

	// GlobalRating is the provider's public rating in [0, 5].
	GlobalRating float64 `json:"global_rating"`

	// Components is the auditable per-component breakdown.
	Components TrustComponents `json:"components"`

	// ComputedAt is when this view was computed.
	ComputedAt time.Time `json:"computed_at"`
}

// TrustComponents breaks the trust score into its weighted inputs. Each
// component is normalized to [0, 100] before weighting.
type TrustComponents struct {
	// ConnectionScore reflects social proximity (40% weight).
	ConnectionScore float64 `json:"connection_score"`

	// ReviewScore reflects network review sentiment (35% weight).
	ReviewScore float64 `json:"review_score"`

	// EndorsementScore reflects explicit vouches (15% weight).
	EndorsementScore float64 `json:"endorsement_score"`

	// GlobalScore reflects public reputation (10% weight).
	GlobalScore float64 `json:"global_score"`
}

// NetworkReview is a review annotated with the reviewer's connection degree
// and the corresponding degree weight.
type NetworkReview struct {
	// ReviewID is the underlying review identifier.
	ReviewID string `json:"review_id"`

	// ReviewerID is the authoring user.
	ReviewerID string `json:"reviewer_id"`

	// ProviderID is the reviewed provider.
	ProviderID string `json:"provider_id"`

	// Rating is the star rating in [1, 5].
	Rating float64 `json:"rating"`

	// Text is the optional review body.
	Text string `json:"text,omitempty"`

	// ConnectionDegree is the reviewer's distance from the requester.
	ConnectionDegree Degree `json:"connection_degree"`

	// Weight is the degree weight applied to Rating when averaging.
	Weight float64 `json:"weight"`

	// CreatedAt is when the review was written.
	CreatedAt time.Time `json:"created_at"`
}

// DegreeCounts tallies network reviews per connection degree.
type DegreeCounts struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
}

// NetworkRating is the degree-weighted aggregate of a provider's network
// reviews. Callers must check ReviewCount before trusting WeightedAverage;
// zero reviews yields an average of exactly zero, never NaN.
type NetworkRating struct {
	// ProviderID is the rated provider.
	ProviderID string `json:"provider_id"`

	// WeightedAverage is sum(rating*weight)/sum(weight) over network
	// reviews, or zero when there are none.
	WeightedAverage float64 `json:"weighted_average"`

	// ReviewCount is the number of network reviews.
	ReviewCount int `json:"review_count"`

	// ReviewsByDegree tallies reviews per degree.
	ReviewsByDegree DegreeCounts `json:"reviews_by_degree"`
}
