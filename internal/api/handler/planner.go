// Package handler provides HTTP handlers for the Kyubii API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/api/response"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/planner"
)

// PlannerHandler handles trip planning endpoints.
type PlannerHandler struct {
	planner *planner.Service
}

// NewPlannerHandler creates a new PlannerHandler.
func NewPlannerHandler(svc *planner.Service) *PlannerHandler {
	return &PlannerHandler{planner: svc}
}

// PlanTrip handles POST /v1/trips/plan - full preference planning.
func (h *PlannerHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var input models.PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	categories, fieldErrs := parseCategories(input.SelectedCategories, "selectedCategories")
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "unknown categories in selection", fieldErrs)
		return
	}

	categoryTimes := make(map[catalog.Category]int, len(input.CategoryTimes))
	for name, minutes := range input.CategoryTimes {
		categoryTimes[catalog.Category(name)] = minutes
	}

	prefs := planner.TripPreferences{
		TotalTimeHours:     input.TotalTimeHours,
		CategoryTimes:      categoryTimes,
		MaxDistanceKm:      input.MaxDistanceKm,
		SelectedCategories: categories,
	}

	if err := prefs.Validate(); err != nil {
		response.BadRequest(w, r, err.Error(), nil)
		return
	}

	plan, err := h.planner.PlanTripAdvanced(r.Context(), prefs)
	if err != nil {
		response.InternalError(w, r, "failed to plan trip")
		return
	}

	response.JSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

// QuickPlan handles POST /v1/trips/quick-plan - coarse duration planning.
func (h *PlannerHandler) QuickPlan(w http.ResponseWriter, r *http.Request) {
	var input models.QuickPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	categories, fieldErrs := parseCategories(input.Categories, "categories")
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "unknown categories in selection", fieldErrs)
		return
	}

	plan, err := h.planner.PlanTrip(r.Context(), categories, planner.TripDuration(input.Duration))
	if err != nil {
		if errors.Is(err, planner.ErrInvalidDuration) {
			response.BadRequest(w, r, "duration must be half-day or full-day", []models.FieldError{
				{Field: "duration", Message: "must be half-day or full-day"},
			})
			return
		}
		response.InternalError(w, r, "failed to plan trip")
		return
	}

	response.JSON(w, r, http.StatusOK, toTripPlanResponse(plan))
}

func parseCategories(names []string, field string) ([]catalog.Category, []models.FieldError) {
	categories := make([]catalog.Category, 0, len(names))
	var fieldErrs []models.FieldError
	for _, name := range names {
		c := catalog.Category(name)
		if !c.Valid() {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:   field,
				Message: "unknown category " + name,
			})
			continue
		}
		categories = append(categories, c)
	}
	return categories, fieldErrs
}

func toTripPlanResponse(plan *planner.TripPlan) models.TripPlanResponse {
	spots := make([]models.PlannedSpot, len(plan.Spots))
	for i, s := range plan.Spots {
		spots[i] = models.PlannedSpot{
			ID:         s.ID,
			Name:       s.Name,
			Position:   toPoint(s.Position),
			Categories: toCategoryStrings(s.Categories),
		}
	}

	resp := models.TripPlanResponse{
		Spots:                spots,
		EstimatedDurationMin: plan.EstimatedDurationMin,
		TravelMin:            plan.TravelMin,
		ActivityMin:          plan.ActivityMin,
		DistanceKm:           plan.DistanceKm,
	}
	if plan.RecommendedCourse != nil {
		course := toCourseResponse(*plan.RecommendedCourse)
		resp.RecommendedCourse = &course
	}
	return resp
}
