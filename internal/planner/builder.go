package planner

import (
	"math"
	"sort"

	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
)

// Itinerary is the builder's output: the accepted spots in visit order plus
// the accumulated totals.
type Itinerary struct {
	Spots       []catalog.Spot
	TravelMin   int
	ActivityMin int
	DistanceKm  float64
}

// itineraryState is the explicit accumulator for the greedy walk: consumed
// minutes and the position of the last accepted spot.
type itineraryState struct {
	travelMinutes   float64
	activityMinutes float64
	distanceKm      float64
	last            *catalog.Spot
}

// BuildItinerary greedily selects spots by descending score until the time
// budget or the spot cap is reached.
//
// Candidates are walked highest score first (stable sort, so equal scores
// keep catalog order). Each candidate is charged its dwell time plus the
// travel time from the last accepted spot; the very first accepted spot has
// no predecessor and is charged no travel. A candidate that does not fit is
// skipped without backtracking, so the result is budget-respecting but not
// guaranteed optimal.
func BuildItinerary(scored []ScoredSpot, prefs TripPreferences) Itinerary {
	candidates := make([]ScoredSpot, len(scored))
	copy(candidates, scored)
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	budgetMinutes := prefs.TotalTimeHours * 60

	var state itineraryState
	selected := make([]catalog.Spot, 0, MaxSpotsPerTrip)

	for i := range candidates {
		spot := candidates[i].Spot
		dwell := candidates[i].DwellMinutes

		travel := 0.0
		if state.last != nil {
			travel = float64(geo.TravelTimeMinutes(state.last.Position, spot.Position))
		}

		consumed := state.travelMinutes + state.activityMinutes
		if consumed+dwell+travel <= budgetMinutes {
			selected = append(selected, spot)
			state.travelMinutes += travel
			state.activityMinutes += dwell
			if state.last != nil {
				state.distanceKm += geo.DistanceKm(state.last.Position, spot.Position)
			}
			state.last = &candidates[i].Spot
		}

		if len(selected) >= MaxSpotsPerTrip {
			break
		}
	}

	return Itinerary{
		Spots:       selected,
		TravelMin:   int(math.Round(state.travelMinutes)),
		ActivityMin: int(math.Round(state.activityMinutes)),
		DistanceKm:  math.Round(state.distanceKm*10) / 10,
	}
}
