package catalog

import (
	"context"
	"errors"

	"github.com/kyubii/kyubii-api/internal/geo"
)

// Repository errors.
var (
	// ErrSpotNotFound is returned when a spot is not in the catalog.
	ErrSpotNotFound = errors.New("spot not found")
	// ErrCourseNotFound is returned when a course is not in the catalog.
	ErrCourseNotFound = errors.New("course not found")
)

// Repository defines read access to the spot and course catalog.
// The catalog is preloaded and immutable; implementations never mutate it.
type Repository interface {
	// ListSpots retrieves all spots in catalog order.
	ListSpots(ctx context.Context) ([]Spot, error)

	// GetSpot retrieves a single spot by ID.
	GetSpot(ctx context.Context, id int) (*Spot, error)

	// ListCourses retrieves all courses in catalog order.
	ListCourses(ctx context.Context) ([]Course, error)

	// GetCourse retrieves a single course by ID.
	GetCourse(ctx context.Context, id string) (*Course, error)
}

// VisibleSpots filters out suspended spots, keeping catalog order.
func VisibleSpots(spots []Spot) []Spot {
	visible := make([]Spot, 0, len(spots))
	for _, s := range spots {
		if s.Status == StatusActive {
			visible = append(visible, s)
		}
	}
	return visible
}

// FilterByCategories returns the visible spots carrying at least one of the
// given categories. An empty filter returns all visible spots.
func FilterByCategories(spots []Spot, categories []Category) []Spot {
	visible := VisibleSpots(spots)
	if len(categories) == 0 {
		return visible
	}

	filtered := make([]Spot, 0, len(visible))
	for _, s := range visible {
		if s.MatchCount(categories) > 0 {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// CourseWaypoints resolves a course's member spot IDs to an ordered waypoint
// sequence, skipping unknown and suspended spots.
func CourseWaypoints(course *Course, spots []Spot) []geo.Point {
	byID := make(map[int]*Spot, len(spots))
	for i := range spots {
		byID[spots[i].ID] = &spots[i]
	}

	waypoints := make([]geo.Point, 0, len(course.SpotIDs))
	for _, id := range course.SpotIDs {
		s, ok := byID[id]
		if !ok || s.Status != StatusActive {
			continue
		}
		waypoints = append(waypoints, s.Position)
	}
	return waypoints
}
