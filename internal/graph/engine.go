// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package graph

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/servicegraph/internal/metrics"
	"github.com/tomtom215/servicegraph/internal/models"
	"github.com/tomtom215/servicegraph/internal/store"
)

// Engine resolves connection degrees, shortest paths, and network-scoped
// reviews and endorsements. It is stateless apart from its injected stores
// and safe for concurrent use.
type Engine struct {
	connections  store.ConnectionStore
	users        store.UserStore
	reviews      store.ReviewStore
	endorsements store.EndorsementStore
	logger       zerolog.Logger
}

// NewEngine creates a social graph engine over the given stores.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(
	connections store.ConnectionStore,
	users store.UserStore,
	reviews store.ReviewStore,
	endorsements store.EndorsementStore,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		connections:  connections,
		users:        users,
		reviews:      reviews,
		endorsements: endorsements,
		logger:       logger.With().Str("component", "graph").Logger(),
	}
}

// firstDegree returns the stored outgoing edges for a user, normalized to
// degree one, self-loops dropped, sorted by target id for deterministic
// traversal order.
func (e *Engine) firstDegree(ctx context.Context, userID string) ([]models.Connection, error) {
	edges, err := e.connections.ConnectionsFrom(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("connections from %q: %w", userID, err)
	}

	out := make([]models.Connection, 0, len(edges))
	for _, edge := range edges {
		if edge.ToUserID == userID {
			continue
		}
		edge.Degree = models.DegreeFirst
		out = append(out, edge)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ToUserID < out[j].ToUserID
	})
	return out, nil
}

// Connections returns the user's network out to maxDegree. Degree one
// returns stored edges directly. Each further degree performs one hop
// beyond the previous frontier, excluding the requester and anyone already
// reached, deduplicated by target id. Derived edges are re-anchored to the
// requester: FromUserID is always userID, never the intermediate hop.
//
// An unknown userID yields an empty set, not an error.
func (e *Engine) Connections(ctx context.Context, userID string, maxDegree models.Degree) ([]models.Connection, error) {
	if maxDegree < models.DegreeFirst || maxDegree > models.MaxDegree {
		maxDegree = models.MaxDegree
	}

	first, err := e.firstDegree(ctx, userID)
	if err != nil {
		return nil, err
	}

	connections := first
	seen := make(map[string]struct{}, len(first)+1)
	seen[userID] = struct{}{}
	for _, c := range first {
		seen[c.ToUserID] = struct{}{}
	}

	frontier := first
	for degree := models.DegreeSecond; degree <= maxDegree; degree++ {
		next := make([]models.Connection, 0, len(frontier))

		for _, conn := range frontier {
			hops, err := e.firstDegree(ctx, conn.ToUserID)
			if err != nil {
				return nil, err
			}

			for _, hop := range hops {
				if _, ok := seen[hop.ToUserID]; ok {
					continue
				}
				seen[hop.ToUserID] = struct{}{}

				derived := hop
				derived.FromUserID = userID
				derived.Degree = degree
				next = append(next, derived)
			}
		}

		connections = append(connections, next...)
		frontier = next
	}

	return connections, nil
}

// ConnectionPath runs a breadth-first search over the directed graph and
// returns the first shortest path from userID to targetID, or nil when no
// path exists within the three-hop bound. Ties among equal-length paths
// resolve to the lexicographically smallest next hop, because frontiers
// expand edges in sorted target-id order.
func (e *Engine) ConnectionPath(ctx context.Context, userID, targetID string) (*models.ConnectionPath, error) {
	if userID == targetID {
		return nil, nil
	}

	type node struct {
		userID string
		path   []string
	}

	visited := map[string]struct{}{userID: {}}
	frontier := []node{{userID: userID, path: []string{userID}}}

	for hop := 1; hop <= models.MaxDegree; hop++ {
		var next []node

		for _, cur := range frontier {
			edges, err := e.firstDegree(ctx, cur.userID)
			if err != nil {
				return nil, err
			}

			for _, edge := range edges {
				if edge.ToUserID == targetID {
					path := append(append([]string{}, cur.path...), edge.ToUserID)
					return &models.ConnectionPath{
						FromUserID: userID,
						ToUserID:   targetID,
						Path:       path,
						Degree:     models.Degree(len(path) - 1),
					}, nil
				}

				if _, ok := visited[edge.ToUserID]; ok {
					continue
				}
				visited[edge.ToUserID] = struct{}{}

				path := append(append([]string{}, cur.path...), edge.ToUserID)
				next = append(next, node{userID: edge.ToUserID, path: path})
			}
		}

		frontier = next
		if len(frontier) == 0 {
			break
		}
	}

	return nil, nil
}

// ConnectionDegree returns the path length minus one, or DegreeNone when
// targetID is unreachable within the bound.
func (e *Engine) ConnectionDegree(ctx context.Context, userID, targetID string) (models.Degree, error) {
	path, err := e.ConnectionPath(ctx, userID, targetID)
	if err != nil {
		return models.DegreeNone, err
	}

	degree := models.DegreeNone
	if path != nil {
		degree = path.Degree
	}
	metrics.ObserveTraversal(int(degree))
	return degree, nil
}

// networkDegrees maps every user within three hops to their degree.
func (e *Engine) networkDegrees(ctx context.Context, userID string) (map[string]models.Degree, error) {
	connections, err := e.Connections(ctx, userID, models.MaxDegree)
	if err != nil {
		return nil, err
	}

	degrees := make(map[string]models.Degree, len(connections))
	for _, c := range connections {
		degrees[c.ToUserID] = c.Degree
	}
	return degrees, nil
}

// NetworkReviews returns the provider's reviews written by users within
// three hops of userID, each annotated with the reviewer's degree and the
// corresponding degree weight. Review lookup is independent of the
// provider's own connectivity: the reviewer only needs to be in the
// requester's network.
func (e *Engine) NetworkReviews(ctx context.Context, userID, providerID string) ([]models.NetworkReview, error) {
	degrees, err := e.networkDegrees(ctx, userID)
	if err != nil {
		return nil, err
	}

	reviews, err := e.reviews.ReviewsForProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("reviews for %q: %w", providerID, err)
	}

	network := make([]models.NetworkReview, 0, len(reviews))
	for _, r := range reviews {
		degree, ok := degrees[r.ReviewerID]
		if !ok {
			continue
		}
		network = append(network, models.NetworkReview{
			ReviewID:         r.ID,
			ReviewerID:       r.ReviewerID,
			ProviderID:       r.ProviderID,
			Rating:           r.Rating,
			Text:             r.Text,
			ConnectionDegree: degree,
			Weight:           degree.Weight(),
			CreatedAt:        r.CreatedAt,
		})
	}
	return network, nil
}

// NetworkRating returns the degree-weighted average rating over network
// reviews. Zero reviews yields a zero average with ReviewCount 0; callers
// must check the count before trusting the average.
func (e *Engine) NetworkRating(ctx context.Context, userID, providerID string) (*models.NetworkRating, error) {
	reviews, err := e.NetworkReviews(ctx, userID, providerID)
	if err != nil {
		return nil, err
	}

	rating := &models.NetworkRating{
		ProviderID:  providerID,
		ReviewCount: len(reviews),
	}
	if len(reviews) == 0 {
		return rating, nil
	}

	var weightedSum, totalWeight float64
	for _, r := range reviews {
		weightedSum += r.Rating * r.Weight
		totalWeight += r.Weight

		switch r.ConnectionDegree {
		case models.DegreeFirst:
			rating.ReviewsByDegree.First++
		case models.DegreeSecond:
			rating.ReviewsByDegree.Second++
		case models.DegreeThird:
			rating.ReviewsByDegree.Third++
		}
	}

	if totalWeight > 0 {
		rating.WeightedAverage = weightedSum / totalWeight
	}
	return rating, nil
}

// NetworkEndorsements returns the provider's endorsements made by users
// within three hops of userID.
func (e *Engine) NetworkEndorsements(ctx context.Context, userID, providerID string) ([]models.Endorsement, error) {
	degrees, err := e.networkDegrees(ctx, userID)
	if err != nil {
		return nil, err
	}

	endorsements, err := e.endorsements.EndorsementsForProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("endorsements for %q: %w", providerID, err)
	}

	network := make([]models.Endorsement, 0, len(endorsements))
	for _, end := range endorsements {
		if _, ok := degrees[end.UserID]; ok {
			network = append(network, end)
		}
	}
	return network, nil
}

// Endorse records a new vouch from userID for providerID. Multiple
// endorsements from the same user are allowed and each counts. Fails with
// store.ErrNotFound when the endorsing user does not exist.
func (e *Engine) Endorse(ctx context.Context, userID, providerID, note string) (*models.Endorsement, error) {
	if _, err := e.users.User(ctx, userID); err != nil {
		return nil, fmt.Errorf("endorsing user: %w", err)
	}

	endorsement := models.Endorsement{
		ID:         uuid.NewString(),
		UserID:     userID,
		ProviderID: providerID,
		Note:       note,
		CreatedAt:  time.Now(),
	}

	if err := e.endorsements.AppendEndorsement(ctx, endorsement); err != nil {
		return nil, fmt.Errorf("append endorsement: %w", err)
	}

	metrics.EndorsementsCreated.Inc()
	e.logger.Debug().
		Str("user_id", userID).
		Str("provider_id", providerID).
		Msg("endorsement recorded")

	return &endorsement, nil
}
