package handler

import (
	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/geo"
)

func toPoint(p geo.Point) models.Point {
	return models.Point{Lat: p.Lat, Lon: p.Lon}
}

func toPoints(points []geo.Point) []models.Point {
	out := make([]models.Point, len(points))
	for i, p := range points {
		out[i] = toPoint(p)
	}
	return out
}

func fromPoints(points []models.Point) []geo.Point {
	out := make([]geo.Point, len(points))
	for i, p := range points {
		out[i] = geo.Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

func toCategoryStrings(categories []catalog.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

func toSpotResponse(s catalog.Spot) models.SpotResponse {
	return models.SpotResponse{
		ID:         s.ID,
		Name:       s.Name,
		Position:   toPoint(s.Position),
		Categories: toCategoryStrings(s.Categories),
		IsBusStop:  s.IsBusStop,
	}
}

func toCourseResponse(c catalog.Course) models.CourseResponse {
	return models.CourseResponse{
		ID:      c.ID,
		Name:    c.Name,
		Color:   c.Color,
		SpotIDs: c.SpotIDs,
	}
}
