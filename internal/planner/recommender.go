package planner

import "github.com/kyubii/kyubii-api/internal/catalog"

// Course score weights. Coverage (how much of the itinerary the course
// serves) dominates; efficiency (how focused the course is on the itinerary)
// keeps the longest course from always winning.
const (
	coverageWeight   = 0.6
	efficiencyWeight = 0.4
)

// RecommendCourse returns the course that best fits the selected itinerary,
// or nil when no course shares a spot with it.
//
// Each course is scored 0.6*coverage + 0.4*efficiency where coverage is the
// fraction of selected spots on the course and efficiency is the fraction of
// the course's members that were selected. Only a strictly higher score
// replaces the current best, so ties keep the course encountered first in
// catalog order.
func RecommendCourse(selected []catalog.Spot, courses []catalog.Course) *catalog.Course {
	if len(selected) == 0 {
		return nil
	}

	var best *catalog.Course
	bestScore := 0.0

	for i := range courses {
		course := &courses[i]
		if len(course.SpotIDs) == 0 {
			continue
		}

		overlap := 0
		for _, spot := range selected {
			if course.Contains(spot.ID) {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}

		coverage := float64(overlap) / float64(len(selected))
		efficiency := float64(overlap) / float64(len(course.SpotIDs))
		score := coverageWeight*coverage + efficiencyWeight*efficiency

		if score > bestScore {
			bestScore = score
			best = course
		}
	}

	if best == nil {
		return nil
	}
	c := *best
	return &c
}
