// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package graph implements the social graph engine: bounded-depth traversal
// over stored first-degree edges, shortest-path and degree resolution, and
// network-scoped review and endorsement queries.
//
// Only first-degree edges are ever stored. Second and third degree are
// derived by traversal on every call so they can never go stale as the
// graph changes. The graph is directed: A→B existing does not imply B→A,
// and traversal never follows edges backwards.
//
// Traversal is hard-capped at three hops. Anything further away is treated
// as unconnected, bounding worst-case work per request to O(branching^3).
package graph
