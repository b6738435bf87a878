package models

// PlanTripRequest is the body for POST /v1/trips/plan.
type PlanTripRequest struct {
	// TotalTimeHours is the overall trip budget in hours.
	TotalTimeHours float64 `json:"totalTimeHours" validate:"required,gt=0"`

	// CategoryTimes maps each selected category to its dwell time in minutes.
	CategoryTimes map[string]int `json:"categoryTimes" validate:"required"`

	// MaxDistanceKm limits candidate spots to this radius from the center.
	MaxDistanceKm float64 `json:"maxDistanceKm" validate:"required,gt=0"`

	// SelectedCategories is the list of categories the visitor cares about.
	SelectedCategories []string `json:"selectedCategories"`
}

// QuickPlanRequest is the body for POST /v1/trips/quick-plan.
type QuickPlanRequest struct {
	// Duration is "half-day" or "full-day".
	Duration string `json:"duration" validate:"required,oneof=half-day full-day"`

	// Categories is the list of categories the visitor cares about.
	Categories []string `json:"categories"`
}

// PlannedSpot is one stop in a planned trip, in visit order.
type PlannedSpot struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Position   Point    `json:"position"`
	Categories []string `json:"categories"`
}

// TripPlanResponse is the planned itinerary.
type TripPlanResponse struct {
	Spots                []PlannedSpot   `json:"spots"`
	RecommendedCourse    *CourseResponse `json:"recommendedCourse,omitempty"`
	EstimatedDurationMin int             `json:"estimatedDurationMin"`
	TravelMin            int             `json:"travelMin"`
	ActivityMin          int             `json:"activityMin"`
	DistanceKm           float64         `json:"distanceKm"`
}
