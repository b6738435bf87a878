package models

// SpotResponse is one catalog spot.
type SpotResponse struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Position   Point    `json:"position"`
	Categories []string `json:"categories"`
	IsBusStop  bool     `json:"isBusStop"`
}

// SpotListResponse is the payload for GET /v1/spots.
type SpotListResponse struct {
	Spots []SpotResponse `json:"spots"`
	Count int            `json:"count"`
}

// CourseResponse is one curated model course.
type CourseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	SpotIDs []int  `json:"spotIds"`
}

// CourseListResponse is the payload for GET /v1/courses.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Count   int              `json:"count"`
}

// CategoryResponse describes one spot category.
type CategoryResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryListResponse is the payload for GET /v1/categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
