// Package geo provides great-circle distance and road travel time estimation
// for the Nasu highland area.
package geo

import "math"

const (
	// earthRadiusKm is the spherical earth radius used by the haversine formula.
	earthRadiusKm = 6371

	// roadIndirectionFactor scales straight-line distance to an estimated road
	// distance. Mountain roads around Nasu run 1.3-1.5x the direct line.
	roadIndirectionFactor = 1.4

	// averageSpeedKmh is the assumed driving speed on Nasu mountain roads.
	averageSpeedKmh = 30

	// MinTravelMinutes is the floor applied to any leg estimate. It covers
	// boarding and parking overhead, so even a zero-length leg costs 5 minutes.
	MinTravelMinutes = 5
)

// Point represents a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate reports whether the point is within valid coordinate ranges.
func (p Point) Validate() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceKm returns the great-circle distance between two points in
// kilometers using the haversine formula. Symmetric and deterministic.
func DistanceKm(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// TravelTimeMinutes estimates driving time between two points in whole
// minutes. The great-circle distance is scaled by the road indirection factor
// and divided by the assumed average speed, never returning less than
// MinTravelMinutes. A point to itself still costs the floor: the overhead is
// modeled as part of every leg.
func TravelTimeMinutes(a, b Point) int {
	roadKm := DistanceKm(a, b) * roadIndirectionFactor
	minutes := int(math.Round(roadKm / averageSpeedKmh * 60))
	if minutes < MinTravelMinutes {
		return MinTravelMinutes
	}
	return minutes
}
