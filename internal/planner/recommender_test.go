package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
)

func selection(ids ...int) []catalog.Spot {
	spots := make([]catalog.Spot, 0, len(ids))
	for _, id := range ids {
		spots = append(spots, testSpot(id, "", geo.Point{}, catalog.CategoryTourism))
	}
	return spots
}

func TestRecommendCourse_NoOverlapReturnsNil(t *testing.T) {
	courses := []catalog.Course{
		{ID: "A", SpotIDs: []int{1, 2, 3}},
	}
	assert.Nil(t, RecommendCourse(selection(8, 9), courses))
}

func TestRecommendCourse_EmptySelectionReturnsNil(t *testing.T) {
	courses := []catalog.Course{{ID: "A", SpotIDs: []int{1}}}
	assert.Nil(t, RecommendCourse(nil, courses))
}

func TestRecommendCourse_BalancesCoverageAndEfficiency(t *testing.T) {
	// Both courses cover both selected spots, but the short course is more
	// focused and must win on efficiency.
	courses := []catalog.Course{
		{ID: "long", SpotIDs: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{ID: "short", SpotIDs: []int{1, 2}},
	}

	got := RecommendCourse(selection(1, 2), courses)
	require.NotNil(t, got)
	assert.Equal(t, "short", got.ID)
}

func TestRecommendCourse_CoverageDominates(t *testing.T) {
	// The focused course covers only one of three selected spots; the wider
	// course covers all three and wins despite worse efficiency.
	courses := []catalog.Course{
		{ID: "focused", SpotIDs: []int{1}},
		{ID: "wide", SpotIDs: []int{1, 2, 3, 4, 5, 6}},
	}

	got := RecommendCourse(selection(1, 2, 3), courses)
	require.NotNil(t, got)
	assert.Equal(t, "wide", got.ID)
}

func TestRecommendCourse_TieKeepsFirstInCatalogOrder(t *testing.T) {
	// Identical membership yields identical scores; the first course wins.
	courses := []catalog.Course{
		{ID: "first", SpotIDs: []int{1, 2}},
		{ID: "second", SpotIDs: []int{1, 2}},
	}

	got := RecommendCourse(selection(1, 2), courses)
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestRecommendCourse_SkipsZeroOverlapCourses(t *testing.T) {
	courses := []catalog.Course{
		{ID: "unrelated", SpotIDs: []int{50, 51}},
		{ID: "match", SpotIDs: []int{1, 2, 3, 4}},
	}

	got := RecommendCourse(selection(2), courses)
	require.NotNil(t, got)
	assert.Equal(t, "match", got.ID)
}
