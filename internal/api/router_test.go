package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyubii/kyubii-api/internal/api"
	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/auth"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/planner"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/internal/worker"
)

// echoProvider replies with the requested waypoints as the route geometry.
type echoProvider struct{}

func (echoProvider) GetRoute(_ context.Context, req routing.RouteRequest) (*routing.RouteResult, error) {
	return &routing.RouteResult{Geometry: req.Waypoints, DurationSeconds: 600}, nil
}

func (echoProvider) Name() string { return "echo" }

func testAuthService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		SigningKey: "test-secret-key-for-testing-only",
		Issuer:     "https://api.kyubii.test",
		Audience:   "kyubii-api",
	})
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	repo := catalog.NewMemoryRepository()
	resolver := routing.NewResolver(routing.ResolverConfig{
		Provider: echoProvider{},
		Store:    routing.NewMemoryStore(),
		Logger:   logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "2026-01-01T00:00:00Z",
		Logger:    logger,
		Catalog:   repo,
		Planner: planner.NewService(planner.ServiceConfig{
			Catalog: repo,
			Logger:  logger,
		}),
		Resolver: resolver,
		Prewarmer: worker.NewPrewarmer(worker.PrewarmerConfig{
			Catalog:  repo,
			Resolver: resolver,
			Logger:   logger,
		}),
		AuthService: testAuthService(),
	})
}

func opsToken(t *testing.T) string {
	t.Helper()
	token, _, err := testAuthService().GenerateOpsToken("ops@kyubii")
	require.NoError(t, err)
	return token
}

func TestRouterHealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestRouterListSpots(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SpotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 32, resp.Count, "suspended spots are hidden")
}

func TestRouterListSpotsFiltered(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots?categories=hotspring", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SpotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 8, resp.Count)
	for _, s := range resp.Spots {
		assert.Contains(t, s.Categories, "hotspring")
	}
}

func TestRouterListSpotsUnknownCategory(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots?categories=skiing", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouterGetSpot(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots/23", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SpotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Nasu Safari Park", resp.Name)
}

func TestRouterGetSpotSuspended(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots/10", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterGetSpotBadID(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/spots/abc", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterGetCourse(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/courses/F", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CourseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "F", resp.ID)
	assert.Len(t, resp.SpotIDs, 8)
}

func TestRouterListCourses(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/courses", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CourseListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Count)
}

func TestRouterQuickPlan(t *testing.T) {
	router := newTestRouter()

	body, err := json.Marshal(models.QuickPlanRequest{
		Duration:   "full-day",
		Categories: []string{"hotspring", "gourmet"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/trips/quick-plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TripPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Spots)
	assert.Equal(t, resp.TravelMin+resp.ActivityMin, resp.EstimatedDurationMin)
}

func TestRouterQuickPlanInvalidDuration(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"duration":"weekend","categories":["gourmet"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/quick-plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterPlanTripEmptySelection(t *testing.T) {
	router := newTestRouter()

	body, err := json.Marshal(models.PlanTripRequest{
		TotalTimeHours: 8,
		CategoryTimes: map[string]int{
			"gourmet": 60, "activity": 90, "tourism": 45, "hotspring": 120,
		},
		MaxDistanceKm:      15,
		SelectedCategories: nil,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/trips/plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TripPlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Spots)
	assert.Zero(t, resp.EstimatedDurationMin)
}

func TestRouterPlanTripMissingCategoryTime(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"totalTimeHours":8,"categoryTimes":{"gourmet":60},"maxDistanceKm":15,"selectedCategories":["gourmet"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterResolveRoute(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"waypoints":[{"lat":37.058,"lon":140.005},{"lat":37.077,"lon":139.988}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/routes/resolve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ResolveRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Path, 2)
	assert.False(t, resp.FromCache)

	// Second identical request is served from cache.
	req = httptest.NewRequest(http.MethodPost, "/v1/routes/resolve", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.FromCache)
}

func TestRouterCourseRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/courses/A/route", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CourseRouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.CourseID)
	assert.NotEmpty(t, resp.Path)
}

func TestRouterCourseRouteNotFound(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/courses/Z/route", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterTravelTime(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/travel-time?fromLat=37.058&fromLon=140.005&toLat=37.1&toLon=140.0", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TravelTimeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Minutes, "600s from the provider rounds to 10 minutes")
}

func TestRouterTravelTimeBadParams(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/travel-time?fromLat=abc", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", http.NoBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterAdminClearCache(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/routes/cache", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+opsToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ClearCacheResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cleared)
}

func TestRouterAdminPrewarm(t *testing.T) {
	router := newTestRouter()

	body := []byte(`{"courseIds":["A","C"]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/prewarm", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+opsToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.PrewarmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Requested)
	assert.Equal(t, 2, resp.Warmed)
	assert.Zero(t, resp.Failed)
}
