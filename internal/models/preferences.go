// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "time"

// BudgetFlexibility describes how hard a user's budget ceiling is.
type BudgetFlexibility string

const (
	// FlexibilityStrict budgets must never be exceeded.
	FlexibilityStrict BudgetFlexibility = "strict"
	// FlexibilityFlexible budgets tolerate modest overruns.
	FlexibilityFlexible BudgetFlexibility = "flexible"
	// FlexibilitySplurgeOK budgets welcome the occasional splurge.
	FlexibilitySplurgeOK BudgetFlexibility = "splurge_ok"
)

// CuisineScore is a signed preference for one cuisine: -1 = avoid,
// 0 = neutral, 1 = love.
type CuisineScore struct {
	Cuisine string  `json:"cuisine" validate:"required"`
	Score   float64 `json:"score" validate:"gte=-1,lte=1"`
}

// BudgetRange is a per-person spending envelope.
type BudgetRange struct {
	Min      float64 `json:"min" validate:"gte=0"`
	Max      float64 `json:"max" validate:"gtefield=Min"`
	Currency string  `json:"currency"`
}

// TimeRange is a clock-time window in HH:MM form.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DietaryPreferences covers restrictions, allergies and cuisine taste.
type DietaryPreferences struct {
	// Restrictions are dietary regimes: vegetarian, vegan, kosher, halal.
	Restrictions []string `json:"restrictions"`

	// Allergies are allergens to exclude: gluten, peanuts, shellfish.
	Allergies []string `json:"allergies"`

	// CuisinePreferences are signed per-cuisine scores.
	CuisinePreferences []CuisineScore `json:"cuisine_preferences" validate:"dive"`

	// AvoidIngredients are disliked (non-allergen) ingredients.
	AvoidIngredients []string `json:"avoid_ingredients"`
}

// BudgetPreferences holds per-category spending envelopes.
type BudgetPreferences struct {
	Dining         BudgetRange       `json:"dining" validate:"required"`
	Transportation BudgetRange       `json:"transportation" validate:"required"`
	Services       BudgetRange       `json:"services" validate:"required"`
	Flexibility    BudgetFlexibility `json:"flexibility" validate:"oneof=strict flexible splurge_ok"`
}

// TransportationPreferences covers how the user likes to get around.
type TransportationPreferences struct {
	PreferredServices  []string `json:"preferred_services"`
	ShareRidesOK       bool     `json:"share_rides_ok"`
	MaxWalkMinutes     int      `json:"max_walk_minutes" validate:"gte=0"`
	AccessibilityNeeds []string `json:"accessibility_needs"`
}

// VenuePreferences covers ambiance and seating taste.
type VenuePreferences struct {
	AmbiancePreferences []string `json:"ambiance_preferences"`
	SeatingPreferences  []string `json:"seating_preferences"`
	AccessibilityNeeds  []string `json:"accessibility_needs"`
}

// SchedulingPreferences covers timing constraints.
type SchedulingPreferences struct {
	// PreferredMealTimes maps meal names (lunch, dinner) to windows.
	PreferredMealTimes map[string]TimeRange `json:"preferred_meal_times"`

	// AvoidDays are weekdays to avoid, 0 = Sunday.
	AvoidDays []int `json:"avoid_days" validate:"dive,gte=0,lte=6"`

	// Timezone is an IANA timezone name.
	Timezone string `json:"timezone"`
}

// LocationPreferences covers where the user goes out.
type LocationPreferences struct {
	Home             *GeoPoint `json:"home,omitempty"`
	Work             *GeoPoint `json:"work,omitempty"`
	PreferredAreas   []string  `json:"preferred_areas"`
	AvoidAreas       []string  `json:"avoid_areas"`
	MaxTravelMinutes int       `json:"max_travel_minutes" validate:"gte=0"`
}

// UserPreferences is a user's structured preference profile. It is owned by
// exactly one user, created lazily on first write with system defaults, and
// mutated only via per-section merge. CompletenessScore and LastUpdated are
// derived and never caller-settable.
type UserPreferences struct {
	UserID         string                    `json:"user_id"`
	Dietary        DietaryPreferences        `json:"dietary"`
	Budget         BudgetPreferences         `json:"budget"`
	Transportation TransportationPreferences `json:"transportation"`
	Venue          VenuePreferences          `json:"venue"`
	Scheduling     SchedulingPreferences     `json:"scheduling"`
	Location       LocationPreferences       `json:"location"`

	// CompletenessScore is the derived profile completeness in [0, 100].
	CompletenessScore int `json:"completeness_score"`

	// LastUpdated is when the profile last changed.
	LastUpdated time.Time `json:"last_updated"`
}

// PreferencesPatch is a partial preference update. Each non-nil section
// replaces the stored section wholesale; nil sections are left untouched.
// Sections are deliberately not deep-merged field-by-field, so a caller
// sending a section must send the whole section.
type PreferencesPatch struct {
	Dietary        *DietaryPreferences        `json:"dietary,omitempty" validate:"omitempty"`
	Budget         *BudgetPreferences         `json:"budget,omitempty" validate:"omitempty"`
	Transportation *TransportationPreferences `json:"transportation,omitempty" validate:"omitempty"`
	Venue          *VenuePreferences          `json:"venue,omitempty" validate:"omitempty"`
	Scheduling     *SchedulingPreferences     `json:"scheduling,omitempty" validate:"omitempty"`
	Location       *LocationPreferences       `json:"location,omitempty" validate:"omitempty"`
}

// GroupBudget is the most-restrictive shared budget envelope for a group.
// Max is capped by the most budget-constrained member; exceeding one
// member's stated max is a hard failure for them, so maxes are never
// averaged.
type GroupBudget struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	PerPerson float64 `json:"per_person"`
}

// GroupPreferences is the derived aggregation of several members' profiles
// for one outing. Recomputed per request, never persisted.
type GroupPreferences struct {
	// UserIDs are the requested group members, present or not.
	UserIDs []string `json:"user_ids"`

	// RequiredRestrictions is the union of members' dietary restrictions.
	RequiredRestrictions []string `json:"required_restrictions"`

	// RequiredAllergenFree is the union of members' allergies. Union, not
	// intersection: excluding one member's allergy must never happen.
	RequiredAllergenFree []string `json:"required_allergen_free"`

	// RequiredAccessibility is the union of members' accessibility needs
	// across transportation and venue sections.
	RequiredAccessibility []string `json:"required_accessibility"`

	// BudgetRange is the most-restrictive shared envelope.
	BudgetRange GroupBudget `json:"budget_range"`

	// CuisineScores averages each cuisine across members who expressed an
	// opinion on it; silent members don't pull the average toward neutral.
	CuisineScores map[string]float64 `json:"cuisine_scores"`

	// AmbianceScores is the fraction of members preferring each ambiance.
	AmbianceScores map[string]float64 `json:"ambiance_scores"`

	// Conflicts lists detected preference conflicts.
	Conflicts []PreferenceConflict `json:"conflicts"`

	// ComputedAt is when this aggregation was computed.
	ComputedAt time.Time `json:"computed_at"`
}

// ConflictType classifies a group preference conflict.
type ConflictType string

const (
	// ConflictBudget flags a wide budget spread with a strict member.
	ConflictBudget ConflictType = "budget"
	// ConflictDietary flags incompatible dietary constraints.
	ConflictDietary ConflictType = "dietary"
	// ConflictCuisine flags a cuisine loved by some and hated by others.
	ConflictCuisine ConflictType = "cuisine"
	// ConflictTime flags incompatible scheduling constraints.
	ConflictTime ConflictType = "time"
	// ConflictLocation flags incompatible location constraints.
	ConflictLocation ConflictType = "location"
)

// PreferenceConflict describes one detected conflict within a group.
type PreferenceConflict struct {
	Type          ConflictType `json:"type"`
	Description   string       `json:"description"`
	AffectedUsers []string     `json:"affected_users"`
	Suggestions   []string     `json:"suggestions"`
}

// SectionScores holds the per-section completeness scores.
type SectionScores struct {
	Dietary        int `json:"dietary"`
	Budget         int `json:"budget"`
	Transportation int `json:"transportation"`
	Venue          int `json:"venue"`
	Scheduling     int `json:"scheduling"`
	Location       int `json:"location"`
}

// PreferenceCompleteness reports how complete a profile is and what to ask
// next to improve it.
type PreferenceCompleteness struct {
	UserID             string        `json:"user_id"`
	OverallScore       int           `json:"overall_score"`
	Sections           SectionScores `json:"sections"`
	MissingFields      []string      `json:"missing_fields"`
	SuggestedQuestions []string      `json:"suggested_questions"`
}

// SearchFilters is a provider search pre-filter derived from preferences.
type SearchFilters struct {
	Category    string       `json:"category,omitempty"`
	Location    *GeoPoint    `json:"location,omitempty"`
	RadiusMiles float64      `json:"radius_miles,omitempty"`
	PriceRange  *BudgetRange `json:"price_range,omitempty"`
}
