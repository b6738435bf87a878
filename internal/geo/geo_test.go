package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	yumoto    = Point{Lat: 37.099302214340526, Lon: 140.00039803676512}
	teddyBear = Point{Lat: 37.049198378882735, Lon: 140.03958193005198}
	center    = Point{Lat: 37.058, Lon: 140.005}
)

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := []struct {
		name string
		a, b Point
	}{
		{"yumoto to teddy bear", yumoto, teddyBear},
		{"center to yumoto", center, yumoto},
		{"antimeridian", Point{Lat: 10, Lon: 179.9}, Point{Lat: -10, Lon: -179.9}},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, DistanceKm(tt.a, tt.b), DistanceKm(tt.b, tt.a), 1e-9)
		})
	}
}

func TestDistanceKm_KnownDistance(t *testing.T) {
	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	d := DistanceKm(Point{Lat: 37, Lon: 140}, Point{Lat: 38, Lon: 140})
	assert.InDelta(t, 111.19, d, 0.1)
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(yumoto, yumoto), 1e-9)
}

func TestTravelTimeMinutes_Floor(t *testing.T) {
	// Two points a few hundred meters apart still cost the 5 minute floor.
	a := Point{Lat: 37.058, Lon: 140.005}
	b := Point{Lat: 37.059, Lon: 140.006}
	assert.Equal(t, MinTravelMinutes, TravelTimeMinutes(a, b))

	// Same point is defined as the floor, not zero.
	assert.Equal(t, MinTravelMinutes, TravelTimeMinutes(a, a))
}

func TestTravelTimeMinutes_ScalesWithDistance(t *testing.T) {
	a := Point{Lat: 37, Lon: 140}
	b := Point{Lat: 37.2, Lon: 140}

	d := DistanceKm(a, b)
	want := int(math.Round(d * 1.4 / 30 * 60))
	assert.Equal(t, want, TravelTimeMinutes(a, b))
	assert.GreaterOrEqual(t, TravelTimeMinutes(a, b), MinTravelMinutes)
}

func TestPoint_Validate(t *testing.T) {
	assert.True(t, Point{Lat: 37.058, Lon: 140.005}.Validate())
	assert.False(t, Point{Lat: 91, Lon: 0}.Validate())
	assert.False(t, Point{Lat: 0, Lon: -181}.Validate())
}
