// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "time"

// ProviderType distinguishes individuals from businesses.
type ProviderType string

const (
	// ProviderIndividual is a single person offering services.
	ProviderIndividual ProviderType = "individual"
	// ProviderBusiness is a registered business.
	ProviderBusiness ProviderType = "business"
)

// ProviderStatus is the lifecycle state of a provider.
type ProviderStatus string

const (
	// ProviderActive providers can receive matches.
	ProviderActive ProviderStatus = "active"
	// ProviderPaused providers are temporarily unavailable.
	ProviderPaused ProviderStatus = "paused"
	// ProviderSuspended providers were suspended by the platform.
	ProviderSuspended ProviderStatus = "suspended"
	// ProviderInactive providers have left the platform.
	ProviderInactive ProviderStatus = "inactive"
)

// PricingModel describes how an offering is priced.
type PricingModel string

const (
	// PricingFixed is a flat price per booking.
	PricingFixed PricingModel = "fixed"
	// PricingHourly is priced per hour.
	PricingHourly PricingModel = "hourly"
	// PricingPerPerson is priced per attendee.
	PricingPerPerson PricingModel = "per_person"
	// PricingQuote requires a custom quote.
	PricingQuote PricingModel = "quote"
)

// OfferingStatus is the lifecycle state of an offering.
type OfferingStatus string

const (
	// OfferingActive offerings are matchable.
	OfferingActive OfferingStatus = "active"
	// OfferingPaused offerings are temporarily hidden.
	OfferingPaused OfferingStatus = "paused"
	// OfferingInactive offerings are retired.
	OfferingInactive OfferingStatus = "inactive"
)

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Provider is an individual or business selling service offerings. A
// provider may be linked to a platform User via UserID; providers with no
// linked user can never have a connection degree to a requester.
type Provider struct {
	// ID is the unique provider identifier.
	ID string `json:"id"`

	// UserID links the provider to a platform user, when present.
	UserID string `json:"user_id,omitempty"`

	// Type distinguishes individuals from businesses.
	Type ProviderType `json:"type"`

	// DisplayName is the user-facing provider name.
	DisplayName string `json:"display_name"`

	// Description is an optional provider blurb.
	Description string `json:"description,omitempty"`

	// GlobalRating is the public average rating in [0, 5].
	GlobalRating float64 `json:"global_rating"`

	// GlobalReviewCount is the number of public reviews.
	GlobalReviewCount int `json:"global_review_count"`

	// TotalBookings is the lifetime booking count.
	TotalBookings int `json:"total_bookings"`

	// Status is the provider lifecycle state.
	Status ProviderStatus `json:"status"`

	// CreatedAt is when the provider joined.
	CreatedAt time.Time `json:"created_at"`
}

// ServiceOffering is a single sellable service belonging to exactly one
// provider. Offerings are immutable inputs to matching.
type ServiceOffering struct {
	// ID is the unique offering identifier.
	ID string `json:"id"`

	// ProviderID is the owning provider.
	ProviderID string `json:"provider_id"`

	// Category is the service category (dining, bar, rideshare, ...).
	Category string `json:"category"`

	// Subcategory is an optional refinement of Category.
	Subcategory string `json:"subcategory,omitempty"`

	// Name is the offering title.
	Name string `json:"name"`

	// Description explains what the offering includes.
	Description string `json:"description,omitempty"`

	// PricingModel describes how BasePrice is applied.
	PricingModel PricingModel `json:"pricing_model"`

	// BasePrice is the price in Currency units for the pricing model's
	// base unit (booking, hour, or person).
	BasePrice float64 `json:"base_price"`

	// Currency is the ISO currency code.
	Currency string `json:"currency"`

	// Negotiable indicates the price is open to negotiation.
	Negotiable bool `json:"negotiable"`

	// InstantBook indicates the offering can be booked without
	// provider confirmation.
	InstantBook bool `json:"instant_book"`

	// MinCapacity is the smallest supported party size; zero means no
	// lower bound.
	MinCapacity int `json:"min_capacity,omitempty"`

	// MaxCapacity is the largest supported party size; zero means no
	// upper bound.
	MaxCapacity int `json:"max_capacity,omitempty"`

	// Location is the offering's location, when fixed.
	Location *GeoPoint `json:"location,omitempty"`

	// Attributes carries category-specific metadata.
	Attributes map[string]string `json:"attributes,omitempty"`

	// Status is the offering lifecycle state.
	Status OfferingStatus `json:"status"`

	// CreatedAt is when the offering was listed.
	CreatedAt time.Time `json:"created_at"`
}

// Review is a rating tied to a (reviewer, provider) pair. The reviewer is a
// platform user but is not necessarily connected to any given requester.
type Review struct {
	// ID is the unique review identifier.
	ID string `json:"id"`

	// ReviewerID is the authoring user.
	ReviewerID string `json:"reviewer_id"`

	// ProviderID is the reviewed provider.
	ProviderID string `json:"provider_id"`

	// Rating is the star rating in [1, 5].
	Rating float64 `json:"rating"`

	// Text is the optional review body.
	Text string `json:"text,omitempty"`

	// CreatedAt is when the review was written.
	CreatedAt time.Time `json:"created_at"`
}
