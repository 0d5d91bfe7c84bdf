// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package memory provides an in-memory store implementation. It is safe for
// concurrent use and backs tests and the demo binary.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu sync.RWMutex

	users        map[string]models.User
	connections  map[string][]models.Connection // keyed by FromUserID
	providers    map[string]models.Provider
	offerings    map[string]models.ServiceOffering
	byCategory   map[string][]string // category -> offering ids, insertion order
	reviews      map[string][]models.Review      // keyed by ProviderID
	endorsements map[string][]models.Endorsement // keyed by ProviderID
	preferences  map[string]models.UserPreferences
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		connections:  make(map[string][]models.Connection),
		providers:    make(map[string]models.Provider),
		offerings:    make(map[string]models.ServiceOffering),
		byCategory:   make(map[string][]string),
		reviews:      make(map[string][]models.Review),
		endorsements: make(map[string][]models.Endorsement),
		preferences:  make(map[string]models.UserPreferences),
	}
}

// PutUser inserts or replaces a user record.
func (s *Store) PutUser(u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

// PutConnection appends a stored first-degree edge.
func (s *Store) PutConnection(c models.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[c.FromUserID] = append(s.connections[c.FromUserID], c)
	return nil
}

// PutProvider inserts or replaces a provider record.
func (s *Store) PutProvider(p models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.ID] = p
	return nil
}

// PutOffering inserts or replaces an offering record.
func (s *Store) PutOffering(o models.ServiceOffering) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.offerings[o.ID]; !exists {
		s.byCategory[o.Category] = append(s.byCategory[o.Category], o.ID)
	}
	s.offerings[o.ID] = o
	return nil
}

// PutReview appends a review.
func (s *Store) PutReview(r models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[r.ProviderID] = append(s.reviews[r.ProviderID], r)
	return nil
}

// User implements store.UserStore.
func (s *Store) User(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", id, store.ErrNotFound)
	}
	return &u, nil
}

// ConnectionsFrom implements store.ConnectionStore.
func (s *Store) ConnectionsFrom(_ context.Context, userID string) ([]models.Connection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := s.connections[userID]
	out := make([]models.Connection, len(edges))
	copy(out, edges)
	return out, nil
}

// Provider implements store.CatalogStore.
func (s *Store) Provider(_ context.Context, id string) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.providers[id]
	if !ok {
		return nil, fmt.Errorf("provider %q: %w", id, store.ErrNotFound)
	}
	return &p, nil
}

// Offering implements store.CatalogStore.
func (s *Store) Offering(_ context.Context, id string) (*models.ServiceOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offerings[id]
	if !ok {
		return nil, fmt.Errorf("offering %q: %w", id, store.ErrNotFound)
	}
	return &o, nil
}

// OfferingsByCategory implements store.CatalogStore. Results preserve
// insertion order, which gives the matcher a stable enumeration order.
func (s *Store) OfferingsByCategory(_ context.Context, category string) ([]models.ServiceOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCategory[category]
	out := make([]models.ServiceOffering, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.offerings[id])
	}
	return out, nil
}

// ReviewsForProvider implements store.ReviewStore.
func (s *Store) ReviewsForProvider(_ context.Context, providerID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := s.reviews[providerID]
	out := make([]models.Review, len(reviews))
	copy(out, reviews)
	return out, nil
}

// EndorsementsForProvider implements store.EndorsementStore.
func (s *Store) EndorsementsForProvider(_ context.Context, providerID string) ([]models.Endorsement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ends := s.endorsements[providerID]
	out := make([]models.Endorsement, len(ends))
	copy(out, ends)
	return out, nil
}

// AppendEndorsement implements store.EndorsementStore.
func (s *Store) AppendEndorsement(_ context.Context, e models.Endorsement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.endorsements[e.ProviderID] = append(s.endorsements[e.ProviderID], e)
	return nil
}

// Preferences implements store.PreferenceStore.
func (s *Store) Preferences(_ context.Context, userID string) (*models.UserPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.preferences[userID]
	if !ok {
		return nil, fmt.Errorf("preferences for %q: %w", userID, store.ErrNotFound)
	}
	return &p, nil
}

// UpsertPreferences implements store.PreferenceStore.
func (s *Store) UpsertPreferences(_ context.Context, prefs *models.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.preferences[prefs.UserID] = *prefs
	return nil
}

// Ensure interface compliance.
var _ store.Store = (*Store)(nil)
