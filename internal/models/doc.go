// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package models defines the shared domain types for the service graph:
// users and their social connections, providers and the offerings they sell,
// reviews and endorsements, preference profiles, and the derived trust and
// match result types produced by the engines.
//
// Derived types (TrustScore, GroupPreferences, MatchResult) are views over
// current store state. They are recomputed on every request and must never
// be persisted; the social graph and review data change continuously and a
// stored score would be silently stale.
package models
