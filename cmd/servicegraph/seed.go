// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

// seedStore is the demo's view of a store: the read interfaces the engines
// use plus the write methods both backends expose for loading records.
type seedStore interface {
	store.Store
	PutUser(u models.User) error
	PutConnection(c models.Connection) error
	PutProvider(p models.Provider) error
	PutOffering(o models.ServiceOffering) error
	PutReview(r models.Review) error
}

// seed loads a small demo dataset: six users in a directed friend graph,
// three providers (one network-connected driver, a limo company, a private
// chef), their offerings and reviews, and preference profiles for the three
// friends who go out together.
//
// Network shape, from Sarah's point of view:
//
//	Sarah → Emma → Lisa → Alex
//	Sarah → Mike → Pat (the driver)
func seed(ctx context.Context, st seedStore) error {
	now := time.Now()

	users := []models.User{
		{ID: "usr_sarah_001", DisplayName: "Sarah Chen", CreatedAt: now},
		{ID: "usr_emma_002", DisplayName: "Emma Rodriguez", CreatedAt: now},
		{ID: "usr_lisa_003", DisplayName: "Lisa Park", CreatedAt: now},
		{ID: "usr_alex_004", DisplayName: "Alex Kim", CreatedAt: now},
		{ID: "usr_mike_005", DisplayName: "Mike Johnson", CreatedAt: now},
		{ID: "usr_pat_006", DisplayName: "Pat Driver", CreatedAt: now},
	}
	for _, u := range users {
		if err := st.PutUser(u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	connections := []models.Connection{
		{ID: "con_001", FromUserID: "usr_sarah_001", ToUserID: "usr_emma_002", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.95, CreatedAt: now},
		{ID: "con_002", FromUserID: "usr_sarah_001", ToUserID: "usr_mike_005", Degree: models.DegreeFirst, Source: models.SourceManual, Strength: 0.6, CreatedAt: now},
		{ID: "con_003", FromUserID: "usr_emma_002", ToUserID: "usr_sarah_001", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.95, CreatedAt: now},
		{ID: "con_004", FromUserID: "usr_emma_002", ToUserID: "usr_lisa_003", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.8, CreatedAt: now},
		{ID: "con_005", FromUserID: "usr_lisa_003", ToUserID: "usr_emma_002", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.8, CreatedAt: now},
		{ID: "con_006", FromUserID: "usr_lisa_003", ToUserID: "usr_alex_004", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.7, CreatedAt: now},
		{ID: "con_007", FromUserID: "usr_mike_005", ToUserID: "usr_sarah_001", Degree: models.DegreeFirst, Source: models.SourceManual, Strength: 0.6, CreatedAt: now},
		{ID: "con_008", FromUserID: "usr_mike_005", ToUserID: "usr_pat_006", Degree: models.DegreeFirst, Source: models.SourceManual, Strength: 0.5, CreatedAt: now},
		{ID: "con_009", FromUserID: "usr_alex_004", ToUserID: "usr_lisa_003", Degree: models.DegreeFirst, Source: models.SourceContacts, Strength: 0.7, CreatedAt: now},
	}
	for _, c := range connections {
		if err := st.PutConnection(c); err != nil {
			return fmt.Errorf("seed connection %s: %w", c.ID, err)
		}
	}

	providers := []models.Provider{
		{
			ID: "prv_pat_driver", UserID: "usr_pat_006", Type: models.ProviderIndividual,
			DisplayName: "Pat Driver", Description: "Personal driver, Dallas metro",
			GlobalRating: 4.9, GlobalReviewCount: 47, TotalBookings: 203,
			Status: models.ProviderActive, CreatedAt: now,
		},
		{
			ID: "prv_dallas_limo", Type: models.ProviderBusiness,
			DisplayName: "Dallas Elite Limo", Description: "Luxury transportation for any occasion",
			GlobalRating: 4.7, GlobalReviewCount: 312, TotalBookings: 1840,
			Status: models.ProviderActive, CreatedAt: now,
		},
		{
			ID: "prv_chef_maria", Type: models.ProviderIndividual,
			DisplayName: "Chef Maria", Description: "Private chef, Tex-Mex and Mediterranean",
			GlobalRating: 4.95, GlobalReviewCount: 89, TotalBookings: 156,
			Status: models.ProviderActive, CreatedAt: now,
		},
	}
	for _, p := range providers {
		if err := st.PutProvider(p); err != nil {
			return fmt.Errorf("seed provider %s: %w", p.ID, err)
		}
	}

	offerings := []models.ServiceOffering{
		{
			ID: "off_pat_ride", ProviderID: "prv_pat_driver",
			Category: "transportation", Subcategory: "rideshare",
			Name: "Personal Ride Service", PricingModel: models.PricingQuote,
			BasePrice: 15, Currency: "USD", InstantBook: true,
			MinCapacity: 1, MaxCapacity: 4,
			Status: models.OfferingActive, CreatedAt: now,
		},
		{
			ID: "off_limo_sedan", ProviderID: "prv_dallas_limo",
			Category: "transportation", Subcategory: "limo",
			Name: "Luxury Sedan", PricingModel: models.PricingHourly,
			BasePrice: 75, Currency: "USD", Negotiable: true,
			MinCapacity: 1, MaxCapacity: 3,
			Status: models.OfferingActive, CreatedAt: now,
		},
		{
			ID: "off_limo_partybus", ProviderID: "prv_dallas_limo",
			Category: "transportation", Subcategory: "party_bus",
			Name: "Party Bus", PricingModel: models.PricingHourly,
			BasePrice: 200, Currency: "USD", Negotiable: true,
			MinCapacity: 8, MaxCapacity: 20,
			Status: models.OfferingActive, CreatedAt: now,
		},
		{
			ID: "off_chef_dinner", ProviderID: "prv_chef_maria",
			Category: "dining", Subcategory: "private_chef",
			Name: "Private Dinner Party", PricingModel: models.PricingPerPerson,
			BasePrice: 85, Currency: "USD", Negotiable: true,
			MinCapacity: 4, MaxCapacity: 12,
			Attributes: map[string]string{"area": "uptown"},
			Status:     models.OfferingActive, CreatedAt: now,
		},
	}
	for _, o := range offerings {
		if err := st.PutOffering(o); err != nil {
			return fmt.Errorf("seed offering %s: %w", o.ID, err)
		}
	}

	reviews := []models.Review{
		{ID: "rev_001", ReviewerID: "usr_mike_005", ProviderID: "prv_pat_driver", Rating: 5, Text: "Always on time", CreatedAt: now},
		{ID: "rev_002", ReviewerID: "usr_mike_005", ProviderID: "prv_pat_driver", Rating: 5, Text: "Great conversation, safe driver", CreatedAt: now},
		{ID: "rev_003", ReviewerID: "usr_mike_005", ProviderID: "prv_pat_driver", Rating: 5, CreatedAt: now},
		{ID: "rev_004", ReviewerID: "usr_lisa_003", ProviderID: "prv_chef_maria", Rating: 5, Text: "Best dinner party we ever hosted", CreatedAt: now},
	}
	for _, r := range reviews {
		if err := st.PutReview(r); err != nil {
			return fmt.Errorf("seed review %s: %w", r.ID, err)
		}
	}

	if err := st.AppendEndorsement(ctx, models.Endorsement{
		ID: "end_001", UserID: "usr_mike_005", ProviderID: "prv_pat_driver",
		Note: "Super reliable! Always on time and great conversation.", CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("seed endorsement: %w", err)
	}

	return seedPreferences(ctx, st)
}

// seedPreferences gives the three friends distinct profiles so group
// aggregation and conflict detection have something to chew on.
func seedPreferences(ctx context.Context, st seedStore) error {
	home := func(lat, lng float64) *models.GeoPoint {
		return &models.GeoPoint{Lat: lat, Lng: lng}
	}

	profiles := []models.UserPreferences{
		{
			UserID: "usr_sarah_001",
			Dietary: models.DietaryPreferences{
				CuisinePreferences: []models.CuisineScore{
					{Cuisine: "italian", Score: 0.9},
					{Cuisine: "sushi", Score: 0.7},
				},
			},
			Budget: models.BudgetPreferences{
				Dining:         models.BudgetRange{Min: 30, Max: 80, Currency: "USD"},
				Transportation: models.BudgetRange{Min: 0, Max: 50, Currency: "USD"},
				Services:       models.BudgetRange{Min: 0, Max: 150, Currency: "USD"},
				Flexibility:    models.FlexibilitySplurgeOK,
			},
			Transportation: models.TransportationPreferences{
				PreferredServices: []string{"uber"},
				ShareRidesOK:      true,
				MaxWalkMinutes:    10,
			},
			Venue: models.VenuePreferences{
				AmbiancePreferences: []string{"upscale", "quiet"},
			},
			Scheduling: models.SchedulingPreferences{Timezone: "America/Chicago"},
			Location: models.LocationPreferences{
				Home:             home(32.7767, -96.7970),
				PreferredAreas:   []string{"uptown", "deep_ellum"},
				MaxTravelMinutes: 30,
			},
			LastUpdated: time.Now(),
		},
		{
			UserID: "usr_emma_002",
			Dietary: models.DietaryPreferences{
				Restrictions: []string{"vegetarian"},
				CuisinePreferences: []models.CuisineScore{
					{Cuisine: "italian", Score: 0.8},
					{Cuisine: "sushi", Score: -0.8},
				},
			},
			Budget: models.BudgetPreferences{
				Dining:         models.BudgetRange{Min: 20, Max: 40, Currency: "USD"},
				Transportation: models.BudgetRange{Min: 0, Max: 30, Currency: "USD"},
				Services:       models.BudgetRange{Min: 0, Max: 100, Currency: "USD"},
				Flexibility:    models.FlexibilityStrict,
			},
			Transportation: models.TransportationPreferences{
				PreferredServices: []string{"lyft"},
				ShareRidesOK:      true,
				MaxWalkMinutes:    15,
			},
			Venue: models.VenuePreferences{
				AmbiancePreferences: []string{"casual"},
			},
			Scheduling: models.SchedulingPreferences{Timezone: "America/Chicago"},
			Location: models.LocationPreferences{
				Home:             home(32.7831, -96.8067),
				MaxTravelMinutes: 20,
			},
			LastUpdated: time.Now(),
		},
		{
			UserID: "usr_lisa_003",
			Dietary: models.DietaryPreferences{
				Allergies: []string{"shellfish"},
				CuisinePreferences: []models.CuisineScore{
					{Cuisine: "italian", Score: 0.5},
				},
			},
			Budget: models.BudgetPreferences{
				Dining:         models.BudgetRange{Min: 25, Max: 90, Currency: "USD"},
				Transportation: models.BudgetRange{Min: 0, Max: 40, Currency: "USD"},
				Services:       models.BudgetRange{Min: 0, Max: 120, Currency: "USD"},
				Flexibility:    models.FlexibilityFlexible,
			},
			Transportation: models.TransportationPreferences{
				ShareRidesOK:   true,
				MaxWalkMinutes: 10,
			},
			Venue: models.VenuePreferences{
				AmbiancePreferences: []string{"upscale"},
				AccessibilityNeeds:  []string{"step_free"},
			},
			Scheduling: models.SchedulingPreferences{Timezone: "America/Chicago"},
			Location: models.LocationPreferences{
				Home:             home(32.8121, -96.7485),
				MaxTravelMinutes: 25,
			},
			LastUpdated: time.Now(),
		},
	}

	for i := range profiles {
		if err := st.UpsertPreferences(ctx, &profiles[i]); err != nil {
			return fmt.Errorf("seed preferences for %s: %w", profiles[i].UserID, err)
		}
	}
	return nil
}
