// Package search implements flight search and availability: IATA
// resolution with nearby-airport expansion, conjunctive filtering
// with pagination, round-trip and multi-city composition, and the
// overbooking-aware availability check.
package search

import (
	"math"

	"github.com/sunny-bhakta/airline-booking-system-sub000/internal/model"
)

// earthRadiusKm is the mean Earth radius used for great-circle
// distances.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between
// two coordinates, computed with the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// NearbyAirports returns the airports from candidates whose
// coordinates lie within radiusKm of the centre. Candidates without
// coordinates are skipped. The centre airport itself is included when
// present in candidates (its distance is zero).
func NearbyAirports(lat, lon float64, candidates []model.Airport, radiusKm float64) []model.Airport {
	out := make([]model.Airport, 0)
	for _, a := range candidates {
		if a.Latitude == nil || a.Longitude == nil {
			continue
		}
		if DistanceKm(lat, lon, *a.Latitude, *a.Longitude) <= radiusKm {
			out = append(out, a)
		}
	}
	return out
}
