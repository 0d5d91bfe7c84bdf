// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

func TestUserRoundTrip(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	if _, err := st.User(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}

	if err := st.PutUser(models.User{ID: "u1", DisplayName: "Sarah"}); err != nil {
		t.Fatalf("PutUser: %v", err)
	}
	u, err := st.User(ctx, "u1")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if u.DisplayName != "Sarah" {
		t.Errorf("DisplayName = %q", u.DisplayName)
	}
}

func TestConnectionsFrom(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	for _, c := range []models.Connection{
		{ID: "c1", FromUserID: "a", ToUserID: "b", Degree: models.DegreeFirst},
		{ID: "c2", FromUserID: "a", ToUserID: "c", Degree: models.DegreeFirst},
		{ID: "c3", FromUserID: "b", ToUserID: "c", Degree: models.DegreeFirst},
	} {
		if err := st.PutConnection(c); err != nil {
			t.Fatalf("PutConnection: %v", err)
		}
	}

	conns, err := st.ConnectionsFrom(ctx, "a")
	if err != nil {
		t.Fatalf("ConnectionsFrom: %v", err)
	}
	if len(conns) != 2 {
		t.Errorf("got %d edges from a, want 2", len(conns))
	}

	none, err := st.ConnectionsFrom(ctx, "z")
	if err != nil {
		t.Fatalf("ConnectionsFrom: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d edges from unknown user, want 0", len(none))
	}
}

func TestOfferingsByCategoryStableOrder(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	ids := []string{"o3", "o1", "o2"}
	for _, id := range ids {
		if err := st.PutOffering(models.ServiceOffering{
			ID: id, ProviderID: "p", Category: "dining", Status: models.OfferingActive,
		}); err != nil {
			t.Fatalf("PutOffering: %v", err)
		}
	}

	got, err := st.OfferingsByCategory(ctx, "dining")
	if err != nil {
		t.Fatalf("OfferingsByCategory: %v", err)
	}
	for i, o := range got {
		if o.ID != ids[i] {
			t.Errorf("position %d = %s, want insertion order %s", i, o.ID, ids[i])
		}
	}
}

func TestOfferingReplaceKeepsSingleIndexEntry(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	offering := models.ServiceOffering{ID: "o1", Category: "dining", BasePrice: 10}
	if err := st.PutOffering(offering); err != nil {
		t.Fatalf("PutOffering: %v", err)
	}
	offering.BasePrice = 20
	if err := st.PutOffering(offering); err != nil {
		t.Fatalf("PutOffering: %v", err)
	}

	got, err := st.OfferingsByCategory(ctx, "dining")
	if err != nil {
		t.Fatalf("OfferingsByCategory: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d offerings after replace, want 1", len(got))
	}
	if got[0].BasePrice != 20 {
		t.Errorf("BasePrice = %v, want replaced value 20", got[0].BasePrice)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	if _, err := st.Preferences(ctx, "u1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("missing prefs err = %v, want ErrNotFound", err)
	}

	prefs := &models.UserPreferences{
		UserID: "u1",
		Budget: models.BudgetPreferences{
			Dining: models.BudgetRange{Min: 20, Max: 50, Currency: "USD"},
		},
	}
	if err := st.UpsertPreferences(ctx, prefs); err != nil {
		t.Fatalf("UpsertPreferences: %v", err)
	}

	got, err := st.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if got.Budget.Dining.Max != 50 {
		t.Errorf("dining max = %v", got.Budget.Dining.Max)
	}

	// Returned value is a copy; mutating it must not change the store.
	got.Budget.Dining.Max = 999
	again, err := st.Preferences(ctx, "u1")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if again.Budget.Dining.Max != 50 {
		t.Error("store state leaked through returned pointer")
	}
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	st := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = st.PutUser(models.User{ID: "u", DisplayName: "x"})
		}()
		go func() {
			defer wg.Done()
			_, _ = st.User(ctx, "u")
		}()
	}
	wg.Wait()
}
