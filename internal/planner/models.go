// Package planner selects and orders tourism spots under a time budget and
// recommends the best-matching predefined bus course.
package planner

import (
	"errors"
	"fmt"

	"github.com/kyubii/kyubii-api/internal/catalog"
)

// TripDuration is the coarse duration used by the quick planner.
type TripDuration string

const (
	// DurationHalfDay maps to a 4 hour budget.
	DurationHalfDay TripDuration = "half-day"
	// DurationFullDay maps to an 8 hour budget.
	DurationFullDay TripDuration = "full-day"
)

// ErrInvalidDuration is returned for an unknown coarse trip duration.
var ErrInvalidDuration = errors.New("invalid trip duration")

// Planning limits.
const (
	// MaxSpotsPerTrip caps how many spots a single itinerary may contain.
	MaxSpotsPerTrip = 10

	// DefaultDwellMinutes is used for a spot with no category tags. It should
	// not occur after eligibility filtering but keeps the math defined.
	DefaultDwellMinutes = 30
)

// TripPreferences holds the traveler's planning constraints.
type TripPreferences struct {
	// TotalTimeHours is the available time budget.
	TotalTimeHours float64 `json:"totalTimeHours"`

	// CategoryTimes maps every category to the expected dwell time in minutes.
	CategoryTimes map[catalog.Category]int `json:"categoryTimes"`

	// MaxDistanceKm is the exploration radius from the area center.
	MaxDistanceKm float64 `json:"maxDistanceKm"`

	// SelectedCategories are the traveler's interests.
	SelectedCategories []catalog.Category `json:"selectedCategories"`
}

// Validate checks that the preferences are structurally sound. A missing
// dwell-time entry is a programmer error and fails loudly; an empty category
// selection or non-positive budget is a valid request that simply yields an
// empty plan and is not reported here.
func (p *TripPreferences) Validate() error {
	for _, c := range catalog.Categories {
		if _, ok := p.CategoryTimes[c]; !ok {
			return fmt.Errorf("category times missing entry for %q", c)
		}
	}
	for _, c := range p.SelectedCategories {
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", c)
		}
	}
	return nil
}

// empty reports whether the preferences cannot produce any candidates.
func (p *TripPreferences) empty() bool {
	return len(p.SelectedCategories) == 0 || p.TotalTimeHours <= 0 || p.MaxDistanceKm <= 0
}

// DefaultPreferences returns the quick-planner preferences for the given
// coarse duration and interests.
func DefaultPreferences(categories []catalog.Category, duration TripDuration) (TripPreferences, error) {
	hours := 0.0
	switch duration {
	case DurationHalfDay:
		hours = 4
	case DurationFullDay:
		hours = 8
	default:
		return TripPreferences{}, fmt.Errorf("%w: %q", ErrInvalidDuration, duration)
	}

	return TripPreferences{
		TotalTimeHours: hours,
		CategoryTimes: map[catalog.Category]int{
			catalog.CategoryGourmet:   60,
			catalog.CategoryActivity:  90,
			catalog.CategoryTourism:   45,
			catalog.CategoryHotspring: 120,
		},
		MaxDistanceKm:      15,
		SelectedCategories: categories,
	}, nil
}

// ScoredSpot is a candidate spot with its preference score and expected dwell
// time in minutes.
type ScoredSpot struct {
	Spot         catalog.Spot
	Score        float64
	DwellMinutes float64
}

// TripPlan is the immutable result of one planning invocation. It is
// superseded wholesale by the next invocation.
type TripPlan struct {
	// Spots is the ordered itinerary.
	Spots []catalog.Spot `json:"spots"`

	// RecommendedCourse is the best-fitting bus course, if any overlaps.
	RecommendedCourse *catalog.Course `json:"recommendedCourse,omitempty"`

	// EstimatedDurationMin is travel plus activity time in minutes.
	EstimatedDurationMin int `json:"estimatedDurationMin"`

	// TravelMin is travel time only, in minutes.
	TravelMin int `json:"travelMin"`

	// ActivityMin is dwell time only, in minutes.
	ActivityMin int `json:"activityMin"`

	// DistanceKm is the straight-line distance covered, to one decimal.
	DistanceKm float64 `json:"distanceKm"`
}

// emptyPlan is the well-formed zero plan returned when no spot can be chosen.
func emptyPlan() *TripPlan {
	return &TripPlan{Spots: []catalog.Spot{}}
}
