package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNasuSpots_CategoriesDerivedFromTable(t *testing.T) {
	spots := NasuSpots()
	require.Len(t, spots, 33)

	byID := make(map[int]Spot, len(spots))
	for _, s := range spots {
		byID[s.ID] = s
	}

	// Spot 7 (Rindoko Family Ranch) appears in gourmet, activity and tourism.
	assert.Equal(t, []Category{CategoryGourmet, CategoryActivity, CategoryTourism}, byID[7].Categories)

	// Spot 12 (Nasu Yumoto Hot Springs) is tourism + hotspring.
	assert.Equal(t, []Category{CategoryTourism, CategoryHotspring}, byID[12].Categories)

	// Bus stops carry no categories.
	for _, id := range []int{5, 11, 14, 24, 33} {
		assert.True(t, byID[id].IsBusStop, "spot %d should be a bus stop", id)
		assert.Empty(t, byID[id].Categories)
	}

	// No destination is flagged as a bus stop; every flagged spot is named
	// "Bus Stop" in the catalog.
	for _, s := range spots {
		if s.IsBusStop {
			assert.Equal(t, "Bus Stop", s.Name, "spot %d", s.ID)
		} else {
			assert.NotEqual(t, "Bus Stop", s.Name, "spot %d", s.ID)
		}
	}

	// The suspended spot is present but not active.
	assert.Equal(t, StatusSuspended, byID[10].Status)
}

func TestVisibleSpots_ExcludesSuspended(t *testing.T) {
	visible := VisibleSpots(NasuSpots())
	assert.Len(t, visible, 32)
	for _, s := range visible {
		assert.NotEqual(t, 10, s.ID)
	}
}

func TestFilterByCategories(t *testing.T) {
	spots := NasuSpots()

	t.Run("empty filter returns all visible", func(t *testing.T) {
		assert.Len(t, FilterByCategories(spots, nil), 32)
	})

	t.Run("hotspring filter", func(t *testing.T) {
		filtered := FilterByCategories(spots, []Category{CategoryHotspring})
		ids := make([]int, 0, len(filtered))
		for _, s := range filtered {
			ids = append(ids, s.ID)
		}
		assert.Equal(t, []int{2, 3, 8, 12, 13, 15, 19, 21}, ids)
	})
}

func TestCourseWaypoints_SkipsSuspendedAndUnknown(t *testing.T) {
	spots := NasuSpots()
	course := &Course{ID: "X", SpotIDs: []int{1, 10, 999, 2}}

	waypoints := CourseWaypoints(course, spots)
	require.Len(t, waypoints, 2)
	assert.InDelta(t, 37.040872891296836, waypoints[0].Lat, 1e-12)
	assert.InDelta(t, 37.045356856265386, waypoints[1].Lat, 1e-12)
}

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	spots, err := repo.ListSpots(ctx)
	require.NoError(t, err)
	assert.Len(t, spots, 33)

	courses, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 5)
	assert.Equal(t, "A", courses[0].ID)
	assert.Equal(t, "#EF4444", courses[0].Color)

	spot, err := repo.GetSpot(ctx, 23)
	require.NoError(t, err)
	assert.Equal(t, "Nasu Safari Park", spot.Name)

	_, err = repo.GetSpot(ctx, 999)
	assert.ErrorIs(t, err, ErrSpotNotFound)

	course, err := repo.GetCourse(ctx, "F")
	require.NoError(t, err)
	assert.Len(t, course.SpotIDs, 8)

	_, err = repo.GetCourse(ctx, "Z")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCategoryInfoTable_CoversAllCategories(t *testing.T) {
	for _, c := range Categories {
		info, ok := CategoryInfoTable[c]
		require.True(t, ok, "missing info for %s", c)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.Icon)
	}
}
