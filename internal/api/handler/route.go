package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/api/response"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
	"github.com/kyubii/kyubii-api/internal/routing"
)

// RouteHandler handles route resolution endpoints.
type RouteHandler struct {
	resolver *routing.Resolver
	catalog  catalog.Repository
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(resolver *routing.Resolver, repo catalog.Repository) *RouteHandler {
	return &RouteHandler{resolver: resolver, catalog: repo}
}

// ResolveRoute handles POST /v1/routes/resolve - resolve an ordered waypoint
// sequence into a road path. Resolution degrades to the straight waypoint
// sequence rather than failing.
func (h *RouteHandler) ResolveRoute(w http.ResponseWriter, r *http.Request) {
	var input models.ResolveRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	waypoints := fromPoints(input.Waypoints)
	for i, wp := range waypoints {
		if !wp.Validate() {
			response.BadRequest(w, r, "invalid waypoint", []models.FieldError{
				{Field: "waypoints[" + strconv.Itoa(i) + "]", Message: "coordinates out of range"},
			})
			return
		}
	}

	res := h.resolver.ResolveLatest(r.Context(), waypoints)
	response.JSON(w, r, http.StatusOK, models.ResolveRouteResponse{
		Path:      toPoints(res.Path),
		FromCache: res.FromCache,
	})
}

// CourseRoute handles GET /v1/courses/{courseId}/route - resolved road path
// for a predefined course.
func (h *RouteHandler) CourseRoute(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseId")

	course, err := h.catalog.GetCourse(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			response.NotFound(w, r, "course "+courseID+" not found")
			return
		}
		response.InternalError(w, r, "failed to load course")
		return
	}

	spots, err := h.catalog.ListSpots(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load spots")
		return
	}

	waypoints := catalog.CourseWaypoints(course, spots)
	res := h.resolver.ResolveLatest(r.Context(), waypoints)

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, models.CourseRouteResponse{
		CourseID:  course.ID,
		Path:      toPoints(res.Path),
		FromCache: res.FromCache,
	})
}

// TravelTime handles GET /v1/travel-time - estimated driving minutes between
// two points.
func (h *RouteHandler) TravelTime(w http.ResponseWriter, r *http.Request) {
	from, fieldErrs := parsePointParams(r, "fromLat", "fromLon")
	to, toErrs := parsePointParams(r, "toLat", "toLon")
	fieldErrs = append(fieldErrs, toErrs...)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid coordinates", fieldErrs)
		return
	}

	minutes := h.resolver.TravelTime(r.Context(), from, to)
	response.JSON(w, r, http.StatusOK, models.TravelTimeResponse{
		From:    toPoint(from),
		To:      toPoint(to),
		Minutes: minutes,
	})
}

func parsePointParams(r *http.Request, latParam, lonParam string) (geo.Point, []models.FieldError) {
	var fieldErrs []models.FieldError

	lat, err := strconv.ParseFloat(r.URL.Query().Get(latParam), 64)
	if err != nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: latParam, Message: "must be a number"})
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get(lonParam), 64)
	if err != nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: lonParam, Message: "must be a number"})
	}
	if len(fieldErrs) > 0 {
		return geo.Point{}, fieldErrs
	}

	p := geo.Point{Lat: lat, Lon: lon}
	if !p.Validate() {
		fieldErrs = append(fieldErrs, models.FieldError{Field: latParam, Message: "coordinates out of range"})
	}
	return p, fieldErrs
}
