// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package preferences implements the preference engine: per-user structured
// profiles, merge-style updates, completeness scoring, group aggregation
// with conflict detection, and preference-derived search filters.
//
// Profiles are created lazily: the first Update for a user starts from the
// system defaults. Group aggregations are derived per request and never
// persisted, since they are only valid for one set of members at one moment.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/servicegraph/internal/geo"
	"github.com/tomtom215/servicegraph/internal/metrics"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
	"github.com/tomtom215/servicegraph/internal/validation"
)

var (
	// ErrEmptyGroup is returned when a group operation receives no members.
	ErrEmptyGroup = errors.New("group has no members")

	// ErrNoPreferences is returned when none of a group's members has a
	// stored preference profile.
	ErrNoPreferences = errors.New("no preferences found for any group member")
)

// groupRadiusMiles is the search radius around a group's centroid. A fixed
// city-scale radius; per-member travel limits are not blended because a
// midpoint already splits the travel burden.
const groupRadiusMiles = 10

// budgetConflictSpread is the per-person budget spread (in currency units)
// beyond which a group with a strict-budget member is flagged.
const budgetConflictSpread = 30

// Cuisine conflict thresholds: a conflict needs at least one member clearly
// above and one clearly below neutral. Exactly ±0.5 does not qualify.
const (
	cuisineLoveThreshold = 0.5
	cuisineHateThreshold = -0.5
)

// Engine manages preference profiles. Safe for concurrent use.
type Engine struct {
	store  store.PreferenceStore
	logger zerolog.Logger
}

// NewEngine creates a preference engine over the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(prefStore store.PreferenceStore, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  prefStore,
		logger: logger.With().Str("component", "preferences").Logger(),
	}
}

// defaultPreferences is the starting profile for a user who has never
// expressed a preference. Defaults are deliberately mainstream so matching
// degrades gracefully rather than failing for new users.
func defaultPreferences(userID string) *models.UserPreferences {
	prefs := &models.UserPreferences{
		UserID: userID,
		Dietary: models.DietaryPreferences{
			Restrictions:       []string{},
			Allergies:          []string{},
			CuisinePreferences: []models.CuisineScore{},
			AvoidIngredients:   []string{},
		},
		Budget: models.BudgetPreferences{
			Dining:         models.BudgetRange{Min: 20, Max: 50, Currency: "USD"},
			Transportation: models.BudgetRange{Min: 0, Max: 30, Currency: "USD"},
			Services:       models.BudgetRange{Min: 0, Max: 100, Currency: "USD"},
			Flexibility:    models.FlexibilityFlexible,
		},
		Transportation: models.TransportationPreferences{
			PreferredServices:  []string{"uber", "lyft"},
			ShareRidesOK:       true,
			MaxWalkMinutes:     10,
			AccessibilityNeeds: []string{},
		},
		Venue: models.VenuePreferences{
			AmbiancePreferences: []string{},
			SeatingPreferences:  []string{},
			AccessibilityNeeds:  []string{},
		},
		Scheduling: models.SchedulingPreferences{
			PreferredMealTimes: map[string]models.TimeRange{},
			AvoidDays:          []int{},
			Timezone:           "America/Chicago",
		},
		Location: models.LocationPreferences{
			PreferredAreas:   []string{},
			AvoidAreas:       []string{},
			MaxTravelMinutes: 30,
		},
		LastUpdated: time.Now(),
	}
	prefs.CompletenessScore = completeness(prefs).OverallScore
	return prefs
}

// Get returns a user's stored profile. A user who has never updated their
// preferences has none; the error wraps store.ErrNotFound.
func (e *Engine) Get(ctx context.Context, userID string) (*models.UserPreferences, error) {
	return e.store.Preferences(ctx, userID)
}

// Update applies a partial update to a user's profile, creating it from
// defaults on first write. Each non-nil patch section replaces the stored
// section wholesale; completeness and the update timestamp are recomputed,
// never taken from the caller.
func (e *Engine) Update(ctx context.Context, userID string, patch models.PreferencesPatch) (*models.UserPreferences, error) {
	if verr := validation.ValidateStruct(&patch); verr != nil {
		return nil, fmt.Errorf("invalid preferences patch: %w", verr)
	}

	prefs, err := e.store.Preferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load preferences for %q: %w", userID, err)
		}
		prefs = defaultPreferences(userID)
	}

	for _, section := range applyPatch(prefs, patch) {
		metrics.PreferenceUpdates.WithLabelValues(section).Inc()
	}

	prefs.LastUpdated = time.Now()
	prefs.CompletenessScore = completeness(prefs).OverallScore

	if err := e.store.UpsertPreferences(ctx, prefs); err != nil {
		return nil, fmt.Errorf("save preferences for %q: %w", userID, err)
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("completeness", prefs.CompletenessScore).
		Msg("preferences updated")

	return prefs, nil
}

// applyPatch copies non-nil patch sections into prefs and returns the names
// of the sections that changed.
func applyPatch(prefs *models.UserPreferences, patch models.PreferencesPatch) []string {
	var touched []string
	if patch.Dietary != nil {
		prefs.Dietary = *patch.Dietary
		touched = append(touched, "dietary")
	}
	if patch.Budget != nil {
		prefs.Budget = *patch.Budget
		touched = append(touched, "budget")
	}
	if patch.Transportation != nil {
		prefs.Transportation = *patch.Transportation
		touched = append(touched, "transportation")
	}
	if patch.Venue != nil {
		prefs.Venue = *patch.Venue
		touched = append(touched, "venue")
	}
	if patch.Scheduling != nil {
		prefs.Scheduling = *patch.Scheduling
		touched = append(touched, "scheduling")
	}
	if patch.Location != nil {
		prefs.Location = *patch.Location
		touched = append(touched, "location")
	}
	return touched
}

// Completeness reports how complete a user's stored profile is, with
// suggested questions for the thinnest sections.
func (e *Engine) Completeness(ctx context.Context, userID string) (*models.PreferenceCompleteness, error) {
	prefs, err := e.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return completeness(prefs), nil
}

// completeness scores each section on a fixed rubric and derives follow-up
// hints. Hints exist only for the three sections that matter most to match
// quality (dietary, budget, location), in that fixed order.
func completeness(prefs *models.UserPreferences) *models.PreferenceCompleteness {
	sections := models.SectionScores{
		Dietary:        scoreDietary(prefs.Dietary),
		Budget:         scoreBudget(prefs.Budget),
		Transportation: scoreTransportation(prefs.Transportation),
		Venue:          scoreVenue(prefs.Venue),
		Scheduling:     scoreScheduling(prefs.Scheduling),
		Location:       scoreLocation(prefs.Location),
	}

	sum := sections.Dietary + sections.Budget + sections.Transportation +
		sections.Venue + sections.Scheduling + sections.Location

	result := &models.PreferenceCompleteness{
		UserID:       prefs.UserID,
		OverallScore: int(math.Round(float64(sum) / 6)),
		Sections:     sections,
	}

	if sections.Dietary < 50 {
		result.MissingFields = append(result.MissingFields, "dietary.cuisine_preferences")
		result.SuggestedQuestions = append(result.SuggestedQuestions, "What are your favorite types of cuisine?")
	}
	if sections.Budget < 50 {
		result.MissingFields = append(result.MissingFields, "budget.dining")
		result.SuggestedQuestions = append(result.SuggestedQuestions, "What's your typical dining budget per person?")
	}
	if sections.Location < 50 {
		result.MissingFields = append(result.MissingFields, "location.preferred_areas")
		result.SuggestedQuestions = append(result.SuggestedQuestions, "What neighborhoods do you like to go out in?")
	}

	return result
}

// Section rubrics. Base scores reflect how informative the defaults already
// are; deviations from defaults count as expressed preference.

func scoreDietary(d models.DietaryPreferences) int {
	score := 20
	if len(d.CuisinePreferences) > 0 {
		score += 40
	}
	if len(d.Restrictions) > 0 || len(d.Allergies) > 0 {
		score += 20
	}
	if len(d.AvoidIngredients) > 0 {
		score += 20
	}
	return capScore(score)
}

func scoreBudget(b models.BudgetPreferences) int {
	score := 30
	if b.Dining.Max != 50 {
		score += 30
	}
	if b.Flexibility != models.FlexibilityFlexible {
		score += 20
	}
	if b.Transportation.Max != 30 {
		score += 20
	}
	return capScore(score)
}

func scoreTransportation(t models.TransportationPreferences) int {
	score := 40
	if len(t.PreferredServices) > 0 {
		score += 30
	}
	if t.MaxWalkMinutes != 10 {
		score += 15
	}
	if len(t.AccessibilityNeeds) > 0 {
		score += 15
	}
	return capScore(score)
}

func scoreVenue(v models.VenuePreferences) int {
	score := 20
	if len(v.AmbiancePreferences) > 0 {
		score += 40
	}
	if len(v.SeatingPreferences) > 0 {
		score += 20
	}
	if len(v.AccessibilityNeeds) > 0 {
		score += 20
	}
	return capScore(score)
}

func scoreScheduling(s models.SchedulingPreferences) int {
	score := 30
	if len(s.PreferredMealTimes) > 0 {
		score += 40
	}
	if len(s.AvoidDays) > 0 {
		score += 30
	}
	return capScore(score)
}

func scoreLocation(l models.LocationPreferences) int {
	score := 20
	if l.Home != nil {
		score += 25
	}
	if l.Work != nil {
		score += 15
	}
	if len(l.PreferredAreas) > 0 {
		score += 40
	}
	return capScore(score)
}

func capScore(score int) int {
	if score > 100 {
		return 100
	}
	return score
}

// loadGroup resolves group members to their stored profiles, skipping
// members without one. Profiles come back in member order.
func (e *Engine) loadGroup(ctx context.Context, userIDs []string) ([]models.UserPreferences, error) {
	if len(userIDs) == 0 {
		return nil, ErrEmptyGroup
	}

	members := make([]models.UserPreferences, 0, len(userIDs))
	for _, id := range userIDs {
		prefs, err := e.store.Preferences(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load preferences for %q: %w", id, err)
		}
		members = append(members, *prefs)
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoPreferences, userIDs)
	}
	return members, nil
}

// AggregateGroup derives a single shared preference profile for a group
// outing. Hard constraints (restrictions, allergies, accessibility) are
// unions: one member's allergy binds the whole group. The shared budget is
// the most restrictive envelope. Taste dimensions are averaged.
func (e *Engine) AggregateGroup(ctx context.Context, userIDs []string) (*models.GroupPreferences, error) {
	members, err := e.loadGroup(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	group := &models.GroupPreferences{
		UserIDs:        userIDs,
		CuisineScores:  aggregateCuisineScores(members),
		AmbianceScores: aggregateAmbianceScores(members),
		Conflicts:      e.DetectConflicts(members),
		ComputedAt:     time.Now(),
	}

	var restrictions, allergies, accessibility []string
	for _, m := range members {
		restrictions = append(restrictions, m.Dietary.Restrictions...)
		allergies = append(allergies, m.Dietary.Allergies...)
		accessibility = append(accessibility, m.Transportation.AccessibilityNeeds...)
		accessibility = append(accessibility, m.Venue.AccessibilityNeeds...)
	}
	group.RequiredRestrictions = dedupe(restrictions)
	group.RequiredAllergenFree = dedupe(allergies)
	group.RequiredAccessibility = dedupe(accessibility)

	minBudget := members[0].Budget.Dining.Min
	maxBudget := members[0].Budget.Dining.Max
	for _, m := range members[1:] {
		minBudget = math.Min(minBudget, m.Budget.Dining.Min)
		maxBudget = math.Min(maxBudget, m.Budget.Dining.Max)
	}
	group.BudgetRange = models.GroupBudget{
		Min:       minBudget,
		Max:       maxBudget,
		PerPerson: maxBudget,
	}

	return group, nil
}

// dedupe removes duplicates preserving first-occurrence order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// aggregateCuisineScores averages each cuisine over the members who scored
// it. Members with no opinion on a cuisine are excluded from its average so
// silence doesn't drag strong shared preferences toward neutral.
func aggregateCuisineScores(members []models.UserPreferences) map[string]float64 {
	type tally struct {
		sum   float64
		count int
	}

	tallies := make(map[string]*tally)
	for _, m := range members {
		for _, c := range m.Dietary.CuisinePreferences {
			t, ok := tallies[c.Cuisine]
			if !ok {
				t = &tally{}
				tallies[c.Cuisine] = t
			}
			t.sum += c.Score
			t.count++
		}
	}

	scores := make(map[string]float64, len(tallies))
	for cuisine, t := range tallies {
		scores[cuisine] = t.sum / float64(t.count)
	}
	return scores
}

// aggregateAmbianceScores maps each ambiance to the fraction of the group
// preferring it.
func aggregateAmbianceScores(members []models.UserPreferences) map[string]float64 {
	counts := make(map[string]int)
	for _, m := range members {
		for _, ambiance := range m.Venue.AmbiancePreferences {
			counts[ambiance]++
		}
	}

	scores := make(map[string]float64, len(counts))
	for ambiance, count := range counts {
		scores[ambiance] = float64(count) / float64(len(members))
	}
	return scores
}

// DetectConflicts finds budget and cuisine conflicts among the given member
// profiles. A budget conflict needs both a wide spread and at least one
// strict-budget member; flexible groups absorb the spread. A cuisine
// conflict needs one member clearly loving and another clearly hating the
// same cuisine.
func (e *Engine) DetectConflicts(members []models.UserPreferences) []models.PreferenceConflict {
	var conflicts []models.PreferenceConflict

	if c := detectBudgetConflict(members); c != nil {
		conflicts = append(conflicts, *c)
	}
	conflicts = append(conflicts, detectCuisineConflicts(members)...)

	for _, c := range conflicts {
		metrics.PreferenceConflicts.WithLabelValues(string(c.Type)).Inc()
	}
	return conflicts
}

func detectBudgetConflict(members []models.UserPreferences) *models.PreferenceConflict {
	var strictUsers []string
	lowest := members[0].Budget.Dining.Max
	highest := members[0].Budget.Dining.Max

	for _, m := range members {
		lowest = math.Min(lowest, m.Budget.Dining.Max)
		highest = math.Max(highest, m.Budget.Dining.Max)
		if m.Budget.Flexibility == models.FlexibilityStrict {
			strictUsers = append(strictUsers, m.UserID)
		}
	}

	if highest-lowest <= budgetConflictSpread || len(strictUsers) == 0 {
		return nil
	}

	return &models.PreferenceConflict{
		Type:          models.ConflictBudget,
		Description:   fmt.Sprintf("Budget range varies significantly ($%.0f - $%.0f)", lowest, highest),
		AffectedUsers: strictUsers,
		Suggestions: []string{
			fmt.Sprintf("Consider venues in the $%.0f-%.0f range", lowest, lowest+15),
			"Some members may need to splurge a bit",
		},
	}
}

func detectCuisineConflicts(members []models.UserPreferences) []models.PreferenceConflict {
	scoresByCuisine := make(map[string]map[string]float64)
	for _, m := range members {
		for _, c := range m.Dietary.CuisinePreferences {
			if scoresByCuisine[c.Cuisine] == nil {
				scoresByCuisine[c.Cuisine] = make(map[string]float64)
			}
			scoresByCuisine[c.Cuisine][m.UserID] = c.Score
		}
	}

	cuisines := make([]string, 0, len(scoresByCuisine))
	for cuisine := range scoresByCuisine {
		cuisines = append(cuisines, cuisine)
	}
	sort.Strings(cuisines)

	var conflicts []models.PreferenceConflict
	for _, cuisine := range cuisines {
		var lovers, haters []string
		for _, m := range members {
			score, ok := scoresByCuisine[cuisine][m.UserID]
			if !ok {
				continue
			}
			if score > cuisineLoveThreshold {
				lovers = append(lovers, m.UserID)
			}
			if score < cuisineHateThreshold {
				haters = append(haters, m.UserID)
			}
		}

		if len(lovers) == 0 || len(haters) == 0 {
			continue
		}

		affected := make([]string, 0, len(lovers)+len(haters))
		affected = append(affected, lovers...)
		affected = append(affected, haters...)

		conflicts = append(conflicts, models.PreferenceConflict{
			Type:          models.ConflictCuisine,
			Description:   fmt.Sprintf("%s is loved by some and disliked by others", cuisine),
			AffectedUsers: affected,
			Suggestions: []string{
				fmt.Sprintf("Consider a %s fusion place with other options", cuisine),
				"Choose a different cuisine everyone enjoys",
			},
		})
	}
	return conflicts
}

// GenerateSearchFilters derives a provider search pre-filter from a user's
// profile. A user with no profile gets a category-only filter. The radius
// is a rough miles-from-minutes estimate: half the user's travel budget.
// The price range follows the category: dining and transportation draw from
// their own budget sections, everything else from the services budget.
func (e *Engine) GenerateSearchFilters(ctx context.Context, userID, category string) (*models.SearchFilters, error) {
	filters := &models.SearchFilters{Category: category}

	prefs, err := e.store.Preferences(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return filters, nil
		}
		return nil, fmt.Errorf("load preferences for %q: %w", userID, err)
	}

	if prefs.Location.Home != nil {
		home := *prefs.Location.Home
		filters.Location = &home
		filters.RadiusMiles = float64(prefs.Location.MaxTravelMinutes) / 2
	}

	var budget models.BudgetRange
	switch category {
	case "dining":
		budget = prefs.Budget.Dining
	case "transportation", "rideshare":
		budget = prefs.Budget.Transportation
	default:
		budget = prefs.Budget.Services
	}
	filters.PriceRange = &budget

	return filters, nil
}

// GenerateGroupSearchFilters derives a search pre-filter for a group: the
// aggregated most-restrictive budget, centered on the centroid of members'
// home locations when any are known.
func (e *Engine) GenerateGroupSearchFilters(ctx context.Context, userIDs []string, category string) (*models.SearchFilters, error) {
	group, err := e.AggregateGroup(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	filters := &models.SearchFilters{
		Category: category,
		PriceRange: &models.BudgetRange{
			Min:      group.BudgetRange.Min,
			Max:      group.BudgetRange.Max,
			Currency: "USD",
		},
	}

	var homes []models.GeoPoint
	for _, id := range userIDs {
		prefs, err := e.store.Preferences(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("load preferences for %q: %w", id, err)
		}
		if prefs.Location.Home != nil {
			homes = append(homes, *prefs.Location.Home)
		}
	}

	if len(homes) > 0 {
		centroid := geo.Centroid(homes)
		filters.Location = &centroid
		filters.RadiusMiles = groupRadiusMiles
	}

	return filters, nil
}
