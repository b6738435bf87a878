package planner

import (
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
)

// ScoreSpots filters the catalog against the preferences and scores every
// eligible spot. The returned slice preserves catalog order; sorting is the
// builder's concern. Callers must not pass preferences with an empty category
// selection (the service short-circuits that case).
func ScoreSpots(spots []catalog.Spot, prefs TripPreferences, center geo.Point) []ScoredSpot {
	scored := make([]ScoredSpot, 0, len(spots))

	for _, spot := range spots {
		if !eligible(&spot, prefs, center) {
			continue
		}

		matching := spot.MatchCount(prefs.SelectedCategories)
		score := float64(matching) / float64(len(prefs.SelectedCategories))
		if matching > 1 {
			// Flat bonus for spots serving more than one selected interest.
			score += 0.2
		}

		scored = append(scored, ScoredSpot{
			Spot:         spot,
			Score:        score,
			DwellMinutes: dwellMinutes(&spot, prefs.CategoryTimes),
		})
	}

	return scored
}

// eligible applies the candidate filter: destinations only, active only,
// at least one selected category, within the exploration radius.
func eligible(spot *catalog.Spot, prefs TripPreferences, center geo.Point) bool {
	if spot.IsBusStop {
		return false
	}
	if spot.Status != catalog.StatusActive {
		return false
	}
	if spot.MatchCount(prefs.SelectedCategories) == 0 {
		return false
	}
	return geo.DistanceKm(center, spot.Position) <= prefs.MaxDistanceKm
}

// dwellMinutes is the arithmetic mean of the preferred dwell times over the
// spot's categories.
func dwellMinutes(spot *catalog.Spot, times map[catalog.Category]int) float64 {
	if len(spot.Categories) == 0 {
		return DefaultDwellMinutes
	}

	total := 0
	for _, c := range spot.Categories {
		total += times[c]
	}
	return float64(total) / float64(len(spot.Categories))
}
