package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/api/response"
	"github.com/kyubii/kyubii-api/internal/catalog"
)

// CatalogHandler handles spot, course, and category endpoints.
type CatalogHandler struct {
	catalog catalog.Repository
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(repo catalog.Repository) *CatalogHandler {
	return &CatalogHandler{catalog: repo}
}

// ListSpots handles GET /v1/spots - visible spots, optionally filtered by
// ?categories=gourmet,hotspring.
func (h *CatalogHandler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.catalog.ListSpots(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load spots")
		return
	}

	var filter []catalog.Category
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			c := catalog.Category(strings.TrimSpace(name))
			if !c.Valid() {
				response.BadRequest(w, r, "unknown category "+string(c), []models.FieldError{
					{Field: "categories", Message: "unknown category " + string(c)},
				})
				return
			}
			filter = append(filter, c)
		}
	}

	filtered := catalog.FilterByCategories(spots, filter)
	resp := models.SpotListResponse{
		Spots: make([]models.SpotResponse, len(filtered)),
		Count: len(filtered),
	}
	for i, s := range filtered {
		resp.Spots[i] = toSpotResponse(s)
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, resp)
}

// GetSpot handles GET /v1/spots/{spotId}. Suspended spots are not exposed.
func (h *CatalogHandler) GetSpot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "spotId"))
	if err != nil {
		response.BadRequest(w, r, "spot id must be an integer", []models.FieldError{
			{Field: "spotId", Message: "must be an integer"},
		})
		return
	}

	spot, err := h.catalog.GetSpot(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSpotNotFound) {
			response.NotFound(w, r, "spot "+strconv.Itoa(id)+" not found")
			return
		}
		response.InternalError(w, r, "failed to load spot")
		return
	}
	if spot.Status != catalog.StatusActive {
		response.NotFound(w, r, "spot "+strconv.Itoa(id)+" not found")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, toSpotResponse(*spot))
}

// ListCourses handles GET /v1/courses.
func (h *CatalogHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.catalog.ListCourses(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load courses")
		return
	}

	resp := models.CourseListResponse{
		Courses: make([]models.CourseResponse, len(courses)),
		Count:   len(courses),
	}
	for i, c := range courses {
		resp.Courses[i] = toCourseResponse(c)
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, resp)
}

// GetCourse handles GET /v1/courses/{courseId}.
func (h *CatalogHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, toCourseResponse(*course))
}

// ListCategories handles GET /v1/categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	resp := models.CategoryListResponse{
		Categories: make([]models.CategoryResponse, 0, len(catalog.Categories)),
	}
	for _, c := range catalog.Categories {
		info := catalog.CategoryInfoTable[c]
		resp.Categories = append(resp.Categories, models.CategoryResponse{
			ID:    string(c),
			Label: info.Label,
			Icon:  info.Icon,
			Color: info.Color,
		})
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, resp)
}
