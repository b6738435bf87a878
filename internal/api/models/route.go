package models

// ResolveRouteRequest is the body for POST /v1/routes/resolve.
type ResolveRouteRequest struct {
	// Waypoints is the ordered point sequence to resolve, in visit order.
	Waypoints []Point `json:"waypoints" validate:"required,min=1"`
}

// ResolveRouteResponse is the resolved road path.
type ResolveRouteResponse struct {
	// Path follows real roads when the provider is reachable and falls back
	// to the straight waypoint sequence otherwise.
	Path []Point `json:"path"`

	// FromCache reports whether the path was served from the route cache.
	FromCache bool `json:"fromCache"`
}

// CourseRouteResponse is the payload for GET /v1/courses/{id}/route.
type CourseRouteResponse struct {
	CourseID  string  `json:"courseId"`
	Path      []Point `json:"path"`
	FromCache bool    `json:"fromCache"`
}

// TravelTimeResponse is the payload for GET /v1/travel-time.
type TravelTimeResponse struct {
	From    Point `json:"from"`
	To      Point `json:"to"`
	Minutes int   `json:"minutes"`
}
