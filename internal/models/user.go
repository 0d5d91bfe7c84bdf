// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "time"

// User is an identity record. Immutable except LastActiveAt.
type User struct {
	// ID is the unique user identifier.
	ID string `json:"id"`

	// DisplayName is the user-facing name.
	DisplayName string `json:"display_name"`

	// ContactHandleHash is a hash of the user's contact handle,
	// used for privacy-preserving contact matching.
	ContactHandleHash string `json:"contact_handle_hash"`

	// CreatedAt is when the user record was created.
	CreatedAt time.Time `json:"created_at"`

	// LastActiveAt is the most recent activity timestamp.
	LastActiveAt time.Time `json:"last_active_at"`
}

// ConnectionSource describes how a connection edge was established.
type ConnectionSource string

const (
	// SourceContacts indicates the edge came from contact-book matching.
	SourceContacts ConnectionSource = "contacts"
	// SourceManual indicates the edge was added explicitly by the user.
	SourceManual ConnectionSource = "manual"
	// SourceMutual indicates the edge was inferred from a mutual connection.
	SourceMutual ConnectionSource = "mutual"
)

// Degree is the social distance between two users. Only first-degree edges
// are ever stored; second and third degree are derived by traversal. The
// zero value DegreeNone means "no connection within the traversal bound"
// and replaces the null-keyed lookup the scoring tables would otherwise
// need.
type Degree int

const (
	// DegreeNone means unreachable within the 3-hop bound.
	DegreeNone Degree = 0
	// DegreeFirst is a direct connection.
	DegreeFirst Degree = 1
	// DegreeSecond is a friend of a friend.
	DegreeSecond Degree = 2
	// DegreeThird is the extended network.
	DegreeThird Degree = 3
)

// MaxDegree is the traversal bound. Paths longer than this are treated as
// no connection, not as degree 4+.
const MaxDegree = 3

// Known reports whether the degree represents an actual connection.
func (d Degree) Known() bool {
	return d >= DegreeFirst && d <= DegreeThird
}

// String returns a human-readable degree name.
func (d Degree) String() string {
	switch d {
	case DegreeFirst:
		return "first"
	case DegreeSecond:
		return "second"
	case DegreeThird:
		return "third"
	case DegreeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Weight returns the review weight for this degree. Trust in a
// recommendation decays with social distance; the weights are fixed design
// constants, not learned.
func (d Degree) Weight() float64 {
	switch d {
	case DegreeFirst:
		return 1.0
	case DegreeSecond:
		return 0.6
	case DegreeThird:
		return 0.3
	default:
		return 0
	}
}

// ConnectionScore returns the 0-100 connection component used by the trust
// scorer. The switch is exhaustive over the closed degree set.
func (d Degree) ConnectionScore() float64 {
	switch d {
	case DegreeFirst:
		return 100
	case DegreeSecond:
		return 60
	case DegreeThird:
		return 30
	default:
		return 0
	}
}

// Connection is a directed edge in the social graph. Edges need not be
// symmetric: A→B existing does not imply B→A, and traversal must treat the
// graph as directed. Stored edges are always DegreeFirst; higher degrees
// only appear on derived connections re-anchored to the requesting user.
type Connection struct {
	// ID is the unique edge identifier.
	ID string `json:"id"`

	// FromUserID is the origin of the edge. For derived connections this
	// is always the requesting user, not the intermediate hop.
	FromUserID string `json:"from_user_id"`

	// ToUserID is the target of the edge.
	ToUserID string `json:"to_user_id"`

	// Degree is the social distance of this connection from FromUserID.
	Degree Degree `json:"degree"`

	// Source describes how the edge was established.
	Source ConnectionSource `json:"source"`

	// Strength is the interaction-frequency weight in [0, 1].
	Strength float64 `json:"strength"`

	// CreatedAt is when the edge was established.
	CreatedAt time.Time `json:"created_at"`
}

// ConnectionPath is the shortest directed path between two users found
// within the traversal bound.
type ConnectionPath struct {
	// FromUserID is the start of the path.
	FromUserID string `json:"from_user_id"`

	// ToUserID is the end of the path.
	ToUserID string `json:"to_user_id"`

	// Path is the ordered list of user IDs, inclusive of both endpoints.
	Path []string `json:"path"`

	// Degree is the path length minus one.
	Degree Degree `json:"degree"`
}

// Endorsement is an explicit, unscored vouch from a user for a provider.
// Uniqueness per (user, provider) is not enforced; every endorsement counts.
type Endorsement struct {
	// ID is the unique endorsement identifier.
	ID string `json:"id"`

	// UserID is the endorsing user.
	UserID string `json:"user_id"`

	// ProviderID is the endorsed provider.
	ProviderID string `json:"provider_id"`

	// Note is an optional free-text comment.
	Note string `json:"note,omitempty"`

	// CreatedAt is when the endorsement was made.
	CreatedAt time.Time `json:"created_at"`
}
