// Package api provides the HTTP API for the Kyubii Digital Map backend.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/api/handler"
	"github.com/kyubii/kyubii-api/internal/api/middleware"
	"github.com/kyubii/kyubii-api/internal/auth"
	"github.com/kyubii/kyubii-api/internal/catalog"
	"github.com/kyubii/kyubii-api/internal/planner"
	"github.com/kyubii/kyubii-api/internal/provider/resilience"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/internal/worker"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	Catalog     catalog.Repository
	Planner     *planner.Service
	Resolver    *routing.Resolver
	Prewarmer   *worker.Prewarmer
	AuthService *auth.Service
	Registry    *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(handler.OpsHandlerConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Registry:  cfg.Registry,
		Resolver:  cfg.Resolver,
		Prewarmer: cfg.Prewarmer,
	})
	plannerHandler := handler.NewPlannerHandler(cfg.Planner)
	catalogHandler := handler.NewCatalogHandler(cfg.Catalog)
	routeHandler := handler.NewRouteHandler(cfg.Resolver, cfg.Catalog)

	opsAuth := middleware.OpsAuth(cfg.AuthService)

	planRateLimit := middleware.RateLimitByIP(middleware.PlanRateLimit)       // 30 req/min
	resolveRateLimit := middleware.RateLimitByIP(middleware.ResolveRateLimit) // 20 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status detail requires an operator token
			r.With(opsAuth).Get("/status", opsHandler.SystemStatus)
		})

		// Catalog endpoints (public) - standard rate limiting
		r.Group(func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/spots", catalogHandler.ListSpots)
			r.Get("/spots/{spotId}", catalogHandler.GetSpot)
			r.Get("/courses", catalogHandler.ListCourses)
			r.Get("/courses/{courseId}", catalogHandler.GetCourse)
			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/travel-time", routeHandler.TravelTime)
		})

		// Planning endpoints - run the full scoring pipeline
		r.Group(func(r chi.Router) {
			r.Use(planRateLimit)
			r.Post("/trips/plan", plannerHandler.PlanTrip)
			r.Post("/trips/quick-plan", plannerHandler.QuickPlan)
		})

		// Route resolution - cache misses hit the external provider
		r.Group(func(r chi.Router) {
			r.Use(resolveRateLimit)
			r.Post("/routes/resolve", routeHandler.ResolveRoute)
			r.Get("/courses/{courseId}/route", routeHandler.CourseRoute)
		})

		// Admin endpoints (operator token required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(opsAuth)
			r.Use(standardRateLimit)
			r.Delete("/routes/cache", opsHandler.ClearRouteCache)
			r.Post("/prewarm", opsHandler.Prewarm)
		})
	})

	return r
}
