// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package store defines the collaborator interfaces the engines depend on.
// The core is storage-agnostic: the engines only ever see these interfaces,
// and implementations live in sub-packages (memory, badgerstore). All reads
// are treated as snapshots for the duration of one request; writes are
// single-record upserts with last-writer-wins semantics.
package store

import (
	"context"
	"errors"

	"github.com/tomtom215/servicegraph/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Graph
// traversal and batch operations swallow it and omit the record; direct
// single-entity lookups propagate it.
var ErrNotFound = errors.New("record not found")

// ConnectionStore supplies the stored first-degree social edges.
type ConnectionStore interface {
	// ConnectionsFrom returns the outgoing first-degree edges for a user.
	// An unknown user yields an empty slice, not an error: absence of a
	// node is not exceptional in a social graph.
	ConnectionsFrom(ctx context.Context, userID string) ([]models.Connection, error)
}

// UserStore supplies basic user records.
type UserStore interface {
	// User returns the user with the given id, or ErrNotFound.
	User(ctx context.Context, id string) (*models.User, error)
}

// CatalogStore supplies providers and their service offerings.
type CatalogStore interface {
	// Provider returns the provider with the given id, or ErrNotFound.
	Provider(ctx context.Context, id string) (*models.Provider, error)

	// Offering returns the offering with the given id, or ErrNotFound.
	Offering(ctx context.Context, id string) (*models.ServiceOffering, error)

	// OfferingsByCategory returns all offerings in a category, any
	// status. An unknown category yields an empty slice.
	OfferingsByCategory(ctx context.Context, category string) ([]models.ServiceOffering, error)
}

// ReviewStore supplies ratings tied to (reviewer, provider) pairs.
type ReviewStore interface {
	// ReviewsForProvider returns all reviews for a provider. An unknown
	// provider yields an empty slice.
	ReviewsForProvider(ctx context.Context, providerID string) ([]models.Review, error)
}

// EndorsementStore supplies and persists informal vouches.
type EndorsementStore interface {
	// EndorsementsForProvider returns all endorsements for a provider.
	EndorsementsForProvider(ctx context.Context, providerID string) ([]models.Endorsement, error)

	// AppendEndorsement persists a new endorsement. Uniqueness per
	// (user, provider) is deliberately not enforced.
	AppendEndorsement(ctx context.Context, e models.Endorsement) error
}

// PreferenceStore supplies and persists preference profiles.
type PreferenceStore interface {
	// Preferences returns the stored profile for a user, or ErrNotFound.
	Preferences(ctx context.Context, userID string) (*models.UserPreferences, error)

	// UpsertPreferences stores a full profile, replacing any existing one.
	UpsertPreferences(ctx context.Context, prefs *models.UserPreferences) error
}

// Store combines every collaborator interface. Implementations back the
// demo binary and integration-style tests; engines should keep depending on
// the narrow interfaces.
type Store interface {
	ConnectionStore
	UserStore
	CatalogStore
	ReviewStore
	EndorsementStore
	PreferenceStore
}
