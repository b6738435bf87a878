package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyubii/kyubii-api/internal/geo"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/pkg/polyline"
)

func newTestClient(serverURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:    serverURL,
		HTTPClient: http.DefaultClient,
		Logger:     zerolog.Nop(),
	})
}

func testWaypoints() []geo.Point {
	return []geo.Point{
		{Lat: 37.058, Lon: 140.005},
		{Lat: 37.07701, Lon: 139.98836},
	}
}

func TestGetRouteSuccess(t *testing.T) {
	encoded := polyline.Encode([]polyline.Coordinate{
		{Lat: 37.058, Lon: 140.005},
		{Lat: 37.065, Lon: 139.995},
		{Lat: 37.07701, Lon: 139.98836},
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/route/v1/driving/"), "unexpected path %s", r.URL.Path)
		// Coordinates are lon,lat in the URL.
		assert.Contains(t, r.URL.Path, "140.005,37.058;139.98836,37.07701")
		assert.Equal(t, "full", r.URL.Query().Get("overview"))
		assert.Equal(t, "polyline", r.URL.Query().Get("geometries"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"geometry":"` + encoded + `","distance":2860.4,"duration":412.7}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.GetRoute(context.Background(), routing.RouteRequest{Waypoints: testWaypoints()})
	require.NoError(t, err)

	require.Len(t, result.Geometry, 3)
	assert.InDelta(t, 37.058, result.Geometry[0].Lat, 1e-5)
	assert.InDelta(t, 140.005, result.Geometry[0].Lon, 1e-5)
	assert.InDelta(t, 2860.4, result.DistanceMeters, 1e-9)
	assert.InDelta(t, 412.7, result.DurationSeconds, 1e-9)
}

func TestGetRouteNoRoute(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points","routes":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRoute(context.Background(), routing.RouteRequest{Waypoints: testWaypoints()})
	assert.True(t, errors.Is(err, routing.ErrNoRouteFound))
}

func TestGetRouteRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRoute(context.Background(), routing.RouteRequest{Waypoints: testWaypoints()})
	assert.True(t, errors.Is(err, routing.ErrRateLimitExceeded))

	var routeErr *routing.Error
	require.True(t, errors.As(err, &routeErr))
	assert.True(t, routeErr.IsRetryable())
}

func TestGetRouteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRoute(context.Background(), routing.RouteRequest{Waypoints: testWaypoints()})
	assert.True(t, errors.Is(err, routing.ErrProviderUnavailable))
}

func TestGetRouteTooFewWaypoints(t *testing.T) {
	client := newTestClient("http://unused")
	_, err := client.GetRoute(context.Background(), routing.RouteRequest{
		Waypoints: []geo.Point{{Lat: 37.0, Lon: 140.0}},
	})
	assert.True(t, errors.Is(err, routing.ErrInvalidWaypoints))
}

func TestGetRouteInvalidWaypoint(t *testing.T) {
	client := newTestClient("http://unused")
	_, err := client.GetRoute(context.Background(), routing.RouteRequest{
		Waypoints: []geo.Point{{Lat: 91.0, Lon: 140.0}, {Lat: 37.0, Lon: 140.0}},
	})
	assert.True(t, errors.Is(err, routing.ErrInvalidWaypoints))
}
