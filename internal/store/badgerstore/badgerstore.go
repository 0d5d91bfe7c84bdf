// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package badgerstore provides an embedded persistent store implementation
// on BadgerDB. Records are stored as JSON values under typed key prefixes;
// one-to-many lookups (edges per user, reviews per provider) use prefix
// scans over composite keys.
package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

// Key prefixes. Composite keys are <prefix><owner id>:<record id>, so a
// prefix scan over <prefix><owner id>: yields all records for one owner.
const (
	prefixUser        = "user:"
	prefixConnection  = "conn:"
	prefixProvider    = "provider:"
	prefixOffering    = "offering:"
	prefixCategory    = "offcat:"
	prefixReview      = "review:"
	prefixEndorsement = "endorse:"
	prefixPreferences = "prefs:"
)

// Store is a BadgerDB-backed implementation of store.Store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's default logger is too chatty for a library

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// put marshals v and stores it under key.
func (s *Store) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get loads key into v, mapping badger's not-found onto store.ErrNotFound.
func (s *Store) get(key string, v any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(data []byte) error {
			return json.Unmarshal(data, v)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%s: %w", key, store.ErrNotFound)
	}
	return err
}

// scan invokes fn with the value of every key under prefix.
func (s *Store) scan(prefix string, fn func(data []byte) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}

// PutUser inserts or replaces a user record.
func (s *Store) PutUser(u models.User) error {
	return s.put(prefixUser+u.ID, u)
}

// PutConnection inserts or replaces a stored first-degree edge.
func (s *Store) PutConnection(c models.Connection) error {
	return s.put(prefixConnection+c.FromUserID+":"+c.ID, c)
}

// PutProvider inserts or replaces a provider record.
func (s *Store) PutProvider(p models.Provider) error {
	return s.put(prefixProvider+p.ID, p)
}

// PutOffering inserts or replaces an offering and its category index entry.
func (s *Store) PutOffering(o models.ServiceOffering) error {
	if err := s.put(prefixOffering+o.ID, o); err != nil {
		return err
	}
	return s.put(prefixCategory+o.Category+":"+o.ID, o.ID)
}

// PutReview inserts or replaces a review.
func (s *Store) PutReview(r models.Review) error {
	return s.put(prefixReview+r.ProviderID+":"+r.ID, r)
}

// User implements store.UserStore.
func (s *Store) User(_ context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.get(prefixUser+id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ConnectionsFrom implements store.ConnectionStore.
func (s *Store) ConnectionsFrom(_ context.Context, userID string) ([]models.Connection, error) {
	var out []models.Connection
	err := s.scan(prefixConnection+userID+":", func(data []byte) error {
		var c models.Connection
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan connections for %q: %w", userID, err)
	}
	return out, nil
}

// Provider implements store.CatalogStore.
func (s *Store) Provider(_ context.Context, id string) (*models.Provider, error) {
	var p models.Provider
	if err := s.get(prefixProvider+id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Offering implements store.CatalogStore.
func (s *Store) Offering(_ context.Context, id string) (*models.ServiceOffering, error) {
	var o models.ServiceOffering
	if err := s.get(prefixOffering+id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// OfferingsByCategory implements store.CatalogStore. Offerings come back in
// key order (lexicographic by id), which gives the matcher a stable
// enumeration order.
func (s *Store) OfferingsByCategory(ctx context.Context, category string) ([]models.ServiceOffering, error) {
	var ids []string
	err := s.scan(prefixCategory+category+":", func(data []byte) error {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan category %q: %w", category, err)
	}

	out := make([]models.ServiceOffering, 0, len(ids))
	for _, id := range ids {
		o, err := s.Offering(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue // stale index entry
			}
			return nil, err
		}
		out = append(out, *o)
	}
	return out, nil
}

// ReviewsForProvider implements store.ReviewStore.
func (s *Store) ReviewsForProvider(_ context.Context, providerID string) ([]models.Review, error) {
	var out []models.Review
	err := s.scan(prefixReview+providerID+":", func(data []byte) error {
		var r models.Review
		if err := json.Unmarshal(data, &r); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan reviews for %q: %w", providerID, err)
	}
	return out, nil
}

// EndorsementsForProvider implements store.EndorsementStore.
func (s *Store) EndorsementsForProvider(_ context.Context, providerID string) ([]models.Endorsement, error) {
	var out []models.Endorsement
	err := s.scan(prefixEndorsement+providerID+":", func(data []byte) error {
		var e models.Endorsement
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan endorsements for %q: %w", providerID, err)
	}
	return out, nil
}

// AppendEndorsement implements store.EndorsementStore.
func (s *Store) AppendEndorsement(_ context.Context, e models.Endorsement) error {
	return s.put(prefixEndorsement+e.ProviderID+":"+e.ID, e)
}

// Preferences implements store.PreferenceStore.
func (s *Store) Preferences(_ context.Context, userID string) (*models.UserPreferences, error) {
	var p models.UserPreferences
	if err := s.get(prefixPreferences+userID, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPreferences implements store.PreferenceStore.
func (s *Store) UpsertPreferences(_ context.Context, prefs *models.UserPreferences) error {
	return s.put(prefixPreferences+prefs.UserID, prefs)
}

// Ensure interface compliance.
var _ store.Store = (*Store)(nil)
