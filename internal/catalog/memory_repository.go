package catalog

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory implementation of Repository. It is the
// default backing store, seeded with the static Nasu catalog.
type MemoryRepository struct {
	mu      sync.RWMutex
	spots   []Spot
	courses []Course
}

// NewMemoryRepository creates a repository seeded with the Nasu catalog.
func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryWithData(NasuSpots(), NasuCourses())
}

// NewMemoryRepositoryWithData creates a repository with the given catalog.
// Used by tests to supply small fixture catalogs.
func NewMemoryRepositoryWithData(spots []Spot, courses []Course) *MemoryRepository {
	r := &MemoryRepository{
		spots:   make([]Spot, len(spots)),
		courses: make([]Course, len(courses)),
	}
	copy(r.spots, spots)
	copy(r.courses, courses)
	return r
}

// ListSpots retrieves all spots in catalog order.
func (r *MemoryRepository) ListSpots(_ context.Context) ([]Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spots := make([]Spot, len(r.spots))
	copy(spots, r.spots)
	return spots, nil
}

// GetSpot retrieves a single spot by ID.
func (r *MemoryRepository) GetSpot(_ context.Context, id int) (*Spot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.spots {
		if r.spots[i].ID == id {
			s := r.spots[i]
			return &s, nil
		}
	}
	return nil, ErrSpotNotFound
}

// ListCourses retrieves all courses in catalog order.
func (r *MemoryRepository) ListCourses(_ context.Context) ([]Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	courses := make([]Course, len(r.courses))
	copy(courses, r.courses)
	return courses, nil
}

// GetCourse retrieves a single course by ID.
func (r *MemoryRepository) GetCourse(_ context.Context, id string) (*Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.courses {
		if r.courses[i].ID == id {
			c := r.courses[i]
			return &c, nil
		}
	}
	return nil, ErrCourseNotFound
}

// Ensure MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
