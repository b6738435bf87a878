package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
)

// ServiceConfig holds configuration for the planner service.
type ServiceConfig struct {
	// Catalog is the spot/course catalog.
	Catalog catalog.Repository

	// Center is the reference center for the exploration radius.
	// Defaults to the Nasu area center.
	Center geo.Point

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service plans same-day itineraries against the catalog.
type Service struct {
	catalog catalog.Repository
	center  geo.Point
	logger  zerolog.Logger
}

// NewService creates a new planner service.
func NewService(cfg ServiceConfig) *Service {
	center := cfg.Center
	if center == (geo.Point{}) {
		center = catalog.NasuCenter
	}

	return &Service{
		catalog: cfg.Catalog,
		center:  center,
		logger:  cfg.Logger,
	}
}

// PlanTripAdvanced plans an itinerary from full preferences. An empty
// category selection or a non-positive budget/radius yields an empty plan,
// not an error; only malformed preferences (missing dwell-time entries,
// unknown categories) are returned as errors.
func (s *Service) PlanTripAdvanced(ctx context.Context, prefs TripPreferences) (*TripPlan, error) {
	if err := prefs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trip preferences: %w", err)
	}

	if prefs.empty() {
		s.logger.Debug().
			Int("selected_categories", len(prefs.SelectedCategories)).
			Float64("total_time_hours", prefs.TotalTimeHours).
			Float64("max_distance_km", prefs.MaxDistanceKm).
			Msg("preferences cannot yield candidates, returning empty plan")
		return emptyPlan(), nil
	}

	spots, err := s.catalog.ListSpots(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing spots: %w", err)
	}
	courses, err := s.catalog.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	scored := ScoreSpots(spots, prefs, s.center)
	itinerary := BuildItinerary(scored, prefs)
	course := RecommendCourse(itinerary.Spots, courses)

	plan := &TripPlan{
		Spots:                itinerary.Spots,
		RecommendedCourse:    course,
		EstimatedDurationMin: itinerary.TravelMin + itinerary.ActivityMin,
		TravelMin:            itinerary.TravelMin,
		ActivityMin:          itinerary.ActivityMin,
		DistanceKm:           itinerary.DistanceKm,
	}

	event := s.logger.Info().
		Int("candidates", len(scored)).
		Int("selected", len(plan.Spots)).
		Int("travel_min", plan.TravelMin).
		Int("activity_min", plan.ActivityMin).
		Float64("distance_km", plan.DistanceKm)
	if course != nil {
		event = event.Str("recommended_course", course.ID)
	}
	event.Msg("trip planned")

	return plan, nil
}

// PlanTrip is the legacy convenience entry point: it maps a coarse duration
// to default preferences and delegates to PlanTripAdvanced.
func (s *Service) PlanTrip(ctx context.Context, categories []catalog.Category, duration TripDuration) (*TripPlan, error) {
	prefs, err := DefaultPreferences(categories, duration)
	if err != nil {
		return nil, err
	}
	return s.PlanTripAdvanced(ctx, prefs)
}

// Center returns the configured area center.
func (s *Service) Center() geo.Point {
	return s.center
}
