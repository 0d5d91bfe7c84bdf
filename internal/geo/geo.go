// ServiceGraph - Trust-Weighted Service Provider Matching
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/servicegraph

// Package geo provides the distance math behind preference-derived search
// filters and match distance checks. City-scale approximations only:
// centroids are arithmetic means of lat/lng, not geodesically correct.
package geo

import (
	"fmt"
	"math"

	"github.com/tomtom215/servicegraph/internal/models"
)

// earthRadiusMiles is the Earth's mean radius in miles.
const earthRadiusMiles = 3959

// Average travel speeds for time estimates, in mph.
const (
	avgDrivingSpeedMph = 25 // urban driving
	avgWalkingSpeedMph = 3
)

// Distance returns the haversine distance between two points in miles.
func Distance(a, b models.GeoPoint) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// Centroid returns the arithmetic mean of the given points. Returns the
// zero point when the slice is empty.
func Centroid(points []models.GeoPoint) models.GeoPoint {
	if len(points) == 0 {
		return models.GeoPoint{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}
	n := float64(len(points))
	return models.GeoPoint{Lat: sumLat / n, Lng: sumLng / n}
}

// EstimateDrivingMinutes estimates urban driving time for a distance.
func EstimateDrivingMinutes(distanceMiles float64) int {
	return int(math.Round(distanceMiles / avgDrivingSpeedMph * 60))
}

// EstimateWalkingMinutes estimates walking time for a distance.
func EstimateWalkingMinutes(distanceMiles float64) int {
	return int(math.Round(distanceMiles / avgWalkingSpeedMph * 60))
}

// FormatDistance renders a distance for display.
func FormatDistance(miles float64) string {
	if miles < 0.1 {
		return fmt.Sprintf("%d ft", int(math.Round(miles*5280)))
	}
	if miles < 10 {
		return fmt.Sprintf("%.1f mi", miles)
	}
	return fmt.Sprintf("%d mi", int(math.Round(miles)))
}
