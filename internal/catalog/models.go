// Package catalog provides the static tourism catalog for the Nasu area:
// spots, categories, and predefined bus courses.
package catalog

import "github.com/kyubii/kyubii-api/internal/geo"

// SpotStatus represents the lifecycle status of a spot.
type SpotStatus string

const (
	// StatusActive marks a spot open to visitors.
	StatusActive SpotStatus = "active"
	// StatusSuspended marks a spot that is temporarily closed. Suspended
	// spots may still be displayed but are excluded from planning and routing.
	StatusSuspended SpotStatus = "suspended"
)

// Category is one of the fixed interest tags used for filtering and
// dwell-time preferences.
type Category string

const (
	CategoryGourmet   Category = "gourmet"
	CategoryActivity  Category = "activity"
	CategoryTourism   Category = "tourism"
	CategoryHotspring Category = "hotspring"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGourmet,
	CategoryActivity,
	CategoryTourism,
	CategoryHotspring,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGourmet, CategoryActivity, CategoryTourism, CategoryHotspring:
		return true
	}
	return false
}

// CategoryInfo holds display metadata for a category.
type CategoryInfo struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryInfoTable maps each category to its display metadata. Behavior per
// category lives in this closed table rather than in per-category types so a
// switch over Category stays exhaustive.
var CategoryInfoTable = map[Category]CategoryInfo{
	CategoryGourmet:   {Label: "Gourmet", Icon: "utensils", Color: "#C2410C"},
	CategoryActivity:  {Label: "Activity", Icon: "mountain", Color: "#15803D"},
	CategoryTourism:   {Label: "Tourism", Icon: "camera", Color: "#1D4ED8"},
	CategoryHotspring: {Label: "Hot Spring", Icon: "droplets", Color: "#B91C1C"},
}

// Spot is a single point of interest. Categories and the bus stop flag are
// derived once from the static mapping at load time and never change.
type Spot struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Position   geo.Point  `json:"position"`
	Status     SpotStatus `json:"status"`
	Categories []Category `json:"categories"`
	IsBusStop  bool       `json:"isBusStop"`
}

// HasCategory reports whether the spot carries the given category tag.
func (s *Spot) HasCategory(c Category) bool {
	for _, sc := range s.Categories {
		if sc == c {
			return true
		}
	}
	return false
}

// MatchCount returns how many of the selected categories the spot carries.
func (s *Spot) MatchCount(selected []Category) int {
	n := 0
	for _, c := range selected {
		if s.HasCategory(c) {
			n++
		}
	}
	return n
}

// Course is a predefined, named bus route. SpotIDs reference catalog spots in
// course membership order, which is not necessarily geographic order.
type Course struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	SpotIDs []int  `json:"spotIds"`
}

// Contains reports whether the course includes the given spot.
func (c *Course) Contains(spotID int) bool {
	for _, id := range c.SpotIDs {
		if id == spotID {
			return true
		}
	}
	return false
}
