package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/kyubii/kyubii-api/internal/api/models"
	"github.com/kyubii/kyubii-api/internal/api/response"
	"github.com/kyubii/kyubii-api/internal/provider/resilience"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/internal/worker"
)

// OpsHandler handles operational and admin endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	resolver  *routing.Resolver
	prewarmer *worker.Prewarmer
}

// OpsHandlerConfig holds dependencies for the OpsHandler.
type OpsHandlerConfig struct {
	Version   string
	BuildTime string
	Registry  *resilience.Registry
	Resolver  *routing.Resolver
	Prewarmer *worker.Prewarmer
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsHandlerConfig) *OpsHandler {
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		registry:  cfg.Registry,
		resolver:  cfg.Resolver,
		prewarmer: cfg.Prewarmer,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness including provider
// circuit state.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatusOK
	if h.registry != nil {
		for _, p := range h.registry.AllHealth() {
			if !p.Healthy() {
				// The resolver degrades to straight-line paths, so an open
				// provider circuit is degraded, not failed.
				status = models.HealthStatusDegraded
			}
		}
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: status,
		Time:   models.Timestamp(time.Now()),
	})
}

// SystemStatus handles GET /v1/ops/status - provider status detail.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	status := models.SystemStatus{
		Status: models.HealthStatusOK,
		Time:   now,
	}

	if h.registry != nil {
		for _, p := range h.registry.AllHealth() {
			providerStatus := models.HealthStatusOK
			if !p.Healthy() {
				providerStatus = models.HealthStatusDegraded
				status.Status = models.HealthStatusDegraded
			}

			entry := models.ProviderStatus{
				Provider: p.Name,
				Status:   providerStatus,
			}
			if p.LastSuccessAt != nil {
				ts := models.Timestamp(*p.LastSuccessAt)
				entry.LastSuccessAt = &ts
			}
			if p.LastFailureAt != nil {
				ts := models.Timestamp(*p.LastFailureAt)
				entry.LastFailureAt = &ts
			}
			if p.LastError != "" {
				msg := p.LastError
				entry.Message = &msg
			}
			status.Providers = append(status.Providers, entry)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

// ClearRouteCache handles DELETE /v1/admin/routes/cache.
func (h *OpsHandler) ClearRouteCache(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.ClearCache(r.Context()); err != nil {
		response.InternalError(w, r, "failed to clear route cache")
		return
	}
	response.JSON(w, r, http.StatusOK, models.ClearCacheResponse{Cleared: true})
}

// Prewarm handles POST /v1/admin/prewarm - warm the route cache for courses.
func (h *OpsHandler) Prewarm(w http.ResponseWriter, r *http.Request) {
	var input models.PrewarmRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, err := h.prewarmer.Run(r.Context(), worker.PrewarmConfig{CourseIDs: input.CourseIDs})
	if err != nil {
		response.InternalError(w, r, "prewarm failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.PrewarmResponse{
		Requested: result.Requested,
		Warmed:    result.Warmed,
		Failed:    result.Failed,
	})
}
