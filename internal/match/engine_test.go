// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package match

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/servicegraph/internal/graph"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/preferences"
	"github.com/tomtom215/servicegraph/internal/store/memory"
	"github.com/tomtom215/servicegraph/internal/trust"
)

// newTestEngine wires a matcher over real collaborators and an in-memory
// store seeded with two transportation providers: pat, reachable from sarah
// at degree two with strong network signal, and a disconnected limo
// company with a high global rating.
func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()

	st := memory.New()
	logger := zerolog.New(io.Discard)

	conns := []models.Connection{
		{ID: "c1", FromUserID: "sarah", ToUserID: "mike", Degree: models.DegreeFirst, Source: models.SourceManual},
		{ID: "c2", FromUserID: "mike", ToUserID: "pat", Degree: models.DegreeFirst, Source: models.SourceManual},
	}
	for _, c := range conns {
		if err := st.PutConnection(c); err != nil {
			t.Fatalf("PutConnection: %v", err)
		}
	}

	providers := []models.Provider{
		{ID: "prv_pat", UserID: "pat", DisplayName: "Pat Driver", GlobalRating: 4.9, GlobalReviewCount: 47, Status: models.ProviderActive},
		{ID: "prv_limo", DisplayName: "Dallas Elite Limo", GlobalRating: 4.7, GlobalReviewCount: 312, Status: models.ProviderActive},
	}
	for _, p := range providers {
		if err := st.PutProvider(p); err != nil {
			t.Fatalf("PutProvider: %v", err)
		}
	}

	offerings := []models.ServiceOffering{
		{
			ID: "off_ride", ProviderID: "prv_pat", Category: "transportation",
			Name: "Personal Ride", PricingModel: models.PricingQuote, BasePrice: 15,
			Currency: "USD", InstantBook: true, MinCapacity: 1, MaxCapacity: 4,
			Status: models.OfferingActive,
		},
		{
			ID: "off_sedan", ProviderID: "prv_limo", Category: "transportation",
			Name: "Luxury Sedan", PricingModel: models.PricingHourly, BasePrice: 75,
			Currency: "USD", Negotiable: true, MinCapacity: 1, MaxCapacity: 3,
			Status: models.OfferingActive,
		},
		{
			ID: "off_retired", ProviderID: "prv_limo", Category: "transportation",
			Name: "Old Van", PricingModel: models.PricingFixed, BasePrice: 40,
			Currency: "USD", Status: models.OfferingInactive,
		},
	}
	for _, o := range offerings {
		if err := st.PutOffering(o); err != nil {
			t.Fatalf("PutOffering: %v", err)
		}
	}

	for _, r := range []models.Review{
		{ID: "r1", ReviewerID: "mike", ProviderID: "prv_pat", Rating: 5},
		{ID: "r2", ReviewerID: "mike", ProviderID: "prv_pat", Rating: 5},
	} {
		if err := st.PutReview(r); err != nil {
			t.Fatalf("PutReview: %v", err)
		}
	}
	if err := st.AppendEndorsement(context.Background(), models.Endorsement{
		ID: "e1", UserID: "mike", ProviderID: "prv_pat",
	}); err != nil {
		t.Fatalf("AppendEndorsement: %v", err)
	}

	graphEngine := graph.NewEngine(st, st, st, st, logger)
	scorer := trust.NewScorer(graphEngine, st, logger)
	prefEngine := preferences.NewEngine(st, logger)
	return NewEngine(st, scorer, prefEngine, logger), st
}

func TestFindMatchesRanking(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	matches, err := engine.FindMatches(context.Background(), "sarah", "transportation",
		models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (inactive offering excluded)", len(matches))
	}

	// Trust-weighted default: the network-connected driver outranks the
	// better-known but disconnected limo company.
	if matches[0].OfferingID != "off_ride" {
		t.Errorf("top match = %s, want off_ride", matches[0].OfferingID)
	}
	for i, m := range matches {
		if m.MatchRank != i+1 {
			t.Errorf("match %d rank = %d, want %d", i, m.MatchRank, i+1)
		}
	}
	if matches[0].MatchScore < matches[1].MatchScore {
		t.Error("matches not sorted by score descending")
	}
}

func TestFindMatchesEmptyCategory(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	matches, err := engine.FindMatches(context.Background(), "sarah", "dining",
		models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("got %d matches for empty category, want 0", len(matches))
	}
}

func TestFindMatchesFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		matching models.MatchingPreferences
		wantIDs  []string
	}{
		{
			name:     "network only drops disconnected providers",
			matching: models.MatchingPreferences{NetworkOnly: true},
			wantIDs:  []string{"off_ride"},
		},
		{
			name:     "min trust score",
			matching: models.MatchingPreferences{MinTrustScore: 50},
			wantIDs:  []string{"off_ride"},
		},
		{
			name:     "min rating keeps both",
			matching: models.MatchingPreferences{MinRating: 4.5},
			wantIDs:  []string{"off_ride", "off_sedan"},
		},
		{
			name:     "min rating drops lower rated",
			matching: models.MatchingPreferences{MinRating: 4.8},
			wantIDs:  []string{"off_ride"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, _ := newTestEngine(t)
			matches, err := engine.FindMatches(context.Background(), "sarah", "transportation",
				models.ServiceRequirements{}, tt.matching)
			if err != nil {
				t.Fatalf("FindMatches: %v", err)
			}

			got := make([]string, len(matches))
			for i, m := range matches {
				got[i] = m.OfferingID
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got offerings %v, want %v", got, tt.wantIDs)
			}
			for _, want := range tt.wantIDs {
				found := false
				for _, id := range got {
					if id == want {
						found = true
					}
				}
				if !found {
					t.Errorf("offering %s missing from %v", want, got)
				}
			}
		})
	}
}

func TestFindMatchesRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	_, err := engine.FindMatches(context.Background(), "sarah", "transportation",
		models.ServiceRequirements{PartySize: -1}, models.MatchingPreferences{})
	if err == nil {
		t.Error("FindMatches accepted a negative party size")
	}

	_, err = engine.FindMatches(context.Background(), "sarah", "transportation",
		models.ServiceRequirements{}, models.MatchingPreferences{MinTrustScore: 150})
	if err == nil {
		t.Error("FindMatches accepted a trust threshold above 100")
	}
}

func TestPreferenceFit(t *testing.T) {
	t.Parallel()

	prefs := &models.UserPreferences{
		Location: models.LocationPreferences{PreferredAreas: []string{"uptown"}},
	}

	tests := []struct {
		name           string
		offering       models.ServiceOffering
		prefs          *models.UserPreferences
		req            models.ServiceRequirements
		wantScore      int
		wantHighlights []string
	}{
		{
			name:      "no profile stays at base",
			offering:  models.ServiceOffering{InstantBook: true},
			prefs:     nil,
			wantScore: 50,
		},
		{
			name:     "within budget and capacity",
			offering: models.ServiceOffering{BasePrice: 60, MinCapacity: 1, MaxCapacity: 8},
			prefs:    prefs,
			req: models.ServiceRequirements{
				PartySize: 4,
				Budget:    &models.BudgetRange{Max: 100},
			},
			// 50 +15 budget +10 max capacity +5 min capacity
			wantScore:      80,
			wantHighlights: []string{"Great value for your budget"},
		},
		{
			name:     "over budget",
			offering: models.ServiceOffering{BasePrice: 150},
			prefs:    prefs,
			req: models.ServiceRequirements{
				Budget: &models.BudgetRange{Max: 100},
			},
			wantScore: 30,
		},
		{
			name: "instant book and area attributes",
			offering: models.ServiceOffering{
				InstantBook: true,
				Attributes:  map[string]string{"area": "uptown"},
			},
			prefs: prefs,
			// 50 +10 area +5 instant book
			wantScore:      65,
			wantHighlights: []string{"Instant booking available"},
		},
		{
			name:     "budget at great-value threshold",
			offering: models.ServiceOffering{BasePrice: 80},
			prefs:    prefs,
			req: models.ServiceRequirements{
				Budget: &models.BudgetRange{Max: 100},
			},
			wantScore:      65,
			wantHighlights: []string{"Great value for your budget"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			score, highlights := preferenceFit(&tt.offering, tt.prefs, tt.req)
			if score != tt.wantScore {
				t.Errorf("score = %d, want %d", score, tt.wantScore)
			}
			if len(highlights) != len(tt.wantHighlights) {
				t.Fatalf("highlights = %v, want %v", highlights, tt.wantHighlights)
			}
			for i := range highlights {
				if highlights[i] != tt.wantHighlights[i] {
					t.Errorf("highlight %d = %q, want %q", i, highlights[i], tt.wantHighlights[i])
				}
			}
		})
	}
}

func TestBlendWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		priority models.MatchPriority
		want     int
	}{
		// trust 80, pref 60, rating 4.0 (-> 80 normalized)
		{name: "trust default", priority: models.PriorityTrust, want: 75},   // 48 + 15 + 12
		{name: "empty is trust", priority: "", want: 75},                    //
		{name: "availability as trust", priority: models.PriorityAvailability, want: 75},
		{name: "rating", priority: models.PriorityRating, want: 75},         // 20 + 15 + 40
		{name: "price", priority: models.PriorityPrice, want: 70},           // 24 + 30 + 16
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := blend(80, 60, 4.0, weightsFor(tt.priority))
			if got != tt.want {
				t.Errorf("blend = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEstimatePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		offering models.ServiceOffering
		req      models.ServiceRequirements
		want     float64
	}{
		{
			name:     "per person",
			offering: models.ServiceOffering{PricingModel: models.PricingPerPerson, BasePrice: 85},
			req:      models.ServiceRequirements{PartySize: 4},
			want:     340,
		},
		{
			name:     "hourly",
			offering: models.ServiceOffering{PricingModel: models.PricingHourly, BasePrice: 75},
			req:      models.ServiceRequirements{DurationMinutes: 90},
			want:     112.5,
		},
		{
			name:     "fixed ignores party size",
			offering: models.ServiceOffering{PricingModel: models.PricingFixed, BasePrice: 40},
			req:      models.ServiceRequirements{PartySize: 6},
			want:     40,
		},
		{
			name:     "per person without party size falls back",
			offering: models.ServiceOffering{PricingModel: models.PricingPerPerson, BasePrice: 85},
			want:     85,
		},
		{
			name:     "rounds to cents",
			offering: models.ServiceOffering{PricingModel: models.PricingHourly, BasePrice: 10},
			req:      models.ServiceRequirements{DurationMinutes: 50},
			want:     8.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := estimatePrice(&tt.offering, tt.req); got != tt.want {
				t.Errorf("estimatePrice = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNegotiableRange(t *testing.T) {
	t.Parallel()

	fixed := models.ServiceOffering{BasePrice: 100}
	if negotiableRange(&fixed) != nil {
		t.Error("non-negotiable offering got a price range")
	}

	negotiable := models.ServiceOffering{BasePrice: 100, Negotiable: true}
	r := negotiableRange(&negotiable)
	if r == nil || r.Low != 90 || r.High != 110.00000000000001 && r.High != 110 {
		t.Errorf("range = %+v, want 90-110", r)
	}
}

func TestExplanation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		trust      models.TrustScore
		prefScore  int
		highlights []string
		want       string
	}{
		{
			name:  "first degree with reviews and endorsement",
			trust: models.TrustScore{Degree: models.DegreeFirst, NetworkReviewCount: 3, EndorsementCount: 1},
			want:  "Direct connection in your network. 3 reviews from your network. Vouched for by someone you know",
		},
		{
			name:  "single review singular",
			trust: models.TrustScore{Degree: models.DegreeSecond, NetworkReviewCount: 1},
			want:  "Friend of a friend. 1 review from your network",
		},
		{
			name:      "third degree with excellent preference fit",
			trust:     models.TrustScore{Degree: models.DegreeThird},
			prefScore: 85,
			want:      "In your extended network. Excellent match for your preferences",
		},
		{
			name:      "good preference fit",
			trust:     models.TrustScore{Degree: models.DegreeNone},
			prefScore: 65,
			want:      "Good match for your preferences",
		},
		{
			name:       "highlights capped at two",
			trust:      models.TrustScore{Degree: models.DegreeNone},
			highlights: []string{"one", "two", "three"},
			want:       "one. two",
		},
		{
			name:  "fallback",
			trust: models.TrustScore{Degree: models.DegreeNone},
			want:  "Based on global ratings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := explanation(&tt.trust, tt.prefScore, tt.highlights)
			if got != tt.want {
				t.Errorf("explanation = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindMatch(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	ctx := context.Background()

	match, err := engine.FindMatch(ctx, "sarah", "off_sedan")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match == nil {
		t.Fatal("got no match for known offering")
	}
	if match.OfferingID != "off_sedan" {
		t.Errorf("OfferingID = %s", match.OfferingID)
	}
	if match.MatchRank == 0 {
		t.Error("rank not assigned")
	}
	if match.PriceRange == nil {
		t.Error("negotiable offering missing price range")
	}
}

func TestFindMatchAbsent(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)
	ctx := context.Background()

	match, err := engine.FindMatch(ctx, "sarah", "off_nope")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match != nil {
		t.Errorf("got %+v for unknown offering, want nil", match)
	}

	// A known but inactive offering is filtered out, which also reads as
	// absence.
	match, err = engine.FindMatch(ctx, "sarah", "off_retired")
	if err != nil {
		t.Fatalf("FindMatch: %v", err)
	}
	if match != nil {
		t.Errorf("got %+v for inactive offering, want nil", match)
	}
}

func TestMaxCandidates(t *testing.T) {
	t.Parallel()

	engine, st := newTestEngine(t)
	_ = engine

	limited := NewEngine(st,
		trust.NewScorer(graph.NewEngine(st, st, st, st, zerolog.New(io.Discard)), st, zerolog.New(io.Discard)),
		preferences.NewEngine(st, zerolog.New(io.Discard)),
		zerolog.New(io.Discard),
		WithMaxCandidates(1),
	)

	matches, err := limited.FindMatches(context.Background(), "sarah", "transportation",
		models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("got %d matches with candidate cap 1, want 1", len(matches))
	}
}

func TestExplanationInResults(t *testing.T) {
	t.Parallel()

	engine, _ := newTestEngine(t)

	matches, err := engine.FindMatches(context.Background(), "sarah", "transportation",
		models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	for _, m := range matches {
		if m.MatchExplanation == "" {
			t.Errorf("offering %s has empty explanation", m.OfferingID)
		}
	}

	// The disconnected limo company should fall back to global ratings
	// wording unless preference fit kicks in.
	for _, m := range matches {
		if m.OfferingID == "off_sedan" && m.ConnectionDegree == models.DegreeNone {
			if !strings.Contains(m.MatchExplanation, "Based on global ratings") &&
				!strings.Contains(m.MatchExplanation, "preferences") {
				t.Errorf("unexpected explanation for disconnected provider: %q", m.MatchExplanation)
			}
		}
	}
}

func TestTravelTimeFilter(t *testing.T) {
	t.Parallel()

	engine, st := newTestEngine(t)
	ctx := context.Background()

	dallas := models.GeoPoint{Lat: 32.7767, Lng: -96.7970}
	fortWorth := models.GeoPoint{Lat: 32.7555, Lng: -97.3308}

	// A fixed-location offering roughly 31 miles (over an hour of urban
	// driving) from the requested location.
	if err := st.PutOffering(models.ServiceOffering{
		ID: "off_far", ProviderID: "prv_limo", Category: "transportation",
		Name: "Fort Worth Shuttle", PricingModel: models.PricingFixed, BasePrice: 30,
		Currency: "USD", Location: &fortWorth, Status: models.OfferingActive,
	}); err != nil {
		t.Fatalf("PutOffering: %v", err)
	}
	if err := st.UpsertPreferences(ctx, &models.UserPreferences{
		UserID:   "sarah",
		Location: models.LocationPreferences{MaxTravelMinutes: 30},
	}); err != nil {
		t.Fatalf("UpsertPreferences: %v", err)
	}

	matches, err := engine.FindMatches(ctx, "sarah", "transportation",
		models.ServiceRequirements{Location: &dallas}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	for _, m := range matches {
		if m.OfferingID == "off_far" {
			t.Error("offering beyond the travel budget survived filtering")
		}
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches, want 2 (mobile offerings unaffected)", len(matches))
	}

	// Without a requested location there is nothing to measure from.
	matches, err = engine.FindMatches(ctx, "sarah", "transportation",
		models.ServiceRequirements{}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("got %d matches without a location, want 3", len(matches))
	}
}

func TestWalkingDistanceHighlight(t *testing.T) {
	t.Parallel()

	engine, st := newTestEngine(t)
	ctx := context.Background()

	here := models.GeoPoint{Lat: 32.7767, Lng: -96.7970}

	if err := st.PutOffering(models.ServiceOffering{
		ID: "off_ride", ProviderID: "prv_pat", Category: "transportation",
		Name: "Personal Ride", PricingModel: models.PricingQuote, BasePrice: 15,
		Currency: "USD", InstantBook: true, MinCapacity: 1, MaxCapacity: 4,
		Location: &here, Status: models.OfferingActive,
	}); err != nil {
		t.Fatalf("PutOffering: %v", err)
	}
	if err := st.UpsertPreferences(ctx, &models.UserPreferences{
		UserID:         "sarah",
		Transportation: models.TransportationPreferences{MaxWalkMinutes: 10},
		Location:       models.LocationPreferences{MaxTravelMinutes: 30},
	}); err != nil {
		t.Fatalf("UpsertPreferences: %v", err)
	}

	matches, err := engine.FindMatches(ctx, "sarah", "transportation",
		models.ServiceRequirements{Location: &here}, models.MatchingPreferences{})
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}

	var ride *models.MatchResult
	for i := range matches {
		if matches[i].OfferingID == "off_ride" {
			ride = &matches[i]
		}
	}
	if ride == nil {
		t.Fatal("off_ride missing from matches")
	}

	found := false
	for _, h := range ride.PreferenceHighlights {
		if strings.HasPrefix(h, "Within walking distance") {
			found = true
		}
	}
	if !found {
		t.Errorf("highlights = %v, want a walking-distance highlight", ride.PreferenceHighlights)
	}
}
