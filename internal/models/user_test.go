// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

package models

import "testing"

func TestDegreeKnown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		degree Degree
		want   bool
	}{
		{degree: DegreeNone, want: false},
		{degree: DegreeFirst, want: true},
		{degree: DegreeSecond, want: true},
		{degree: DegreeThird, want: true},
		{degree: Degree(4), want: false},
		{degree: Degree(-1), want: false},
	}
	for _, tt := range tests {
		if got := tt.degree.Known(); got != tt.want {
			t.Errorf("Degree(%d).Known() = %v, want %v", tt.degree, got, tt.want)
		}
	}
}

func TestDegreeWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		degree Degree
		want   float64
	}{
		{degree: DegreeFirst, want: 1.0},
		{degree: DegreeSecond, want: 0.6},
		{degree: DegreeThird, want: 0.3},
		{degree: DegreeNone, want: 0},
		{degree: Degree(9), want: 0},
	}
	for _, tt := range tests {
		if got := tt.degree.Weight(); got != tt.want {
			t.Errorf("Degree(%d).Weight() = %v, want %v", tt.degree, got, tt.want)
		}
	}
}

func TestDegreeConnectionScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		degree Degree
		want   float64
	}{
		{degree: DegreeFirst, want: 100},
		{degree: DegreeSecond, want: 60},
		{degree: DegreeThird, want: 30},
		{degree: DegreeNone, want: 0},
	}
	for _, tt := range tests {
		if got := tt.degree.ConnectionScore(); got != tt.want {
			t.Errorf("Degree(%d).ConnectionScore() = %v, want %v", tt.degree, got, tt.want)
		}
	}
}

func TestDegreeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		degree Degree
		want   string
	}{
		{degree: DegreeNone, want: "none"},
		{degree: DegreeFirst, want: "first"},
		{degree: DegreeSecond, want: "second"},
		{degree: DegreeThird, want: "third"},
		{degree: Degree(7), want: "unknown"},
	}
	for _, tt := range tests {
		if got := tt.degree.String(); got != tt.want {
			t.Errorf("Degree(%d).String() = %q, want %q", tt.degree, got, tt.want)
		}
	}
}
