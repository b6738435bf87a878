// Package routing resolves ordered waypoint sequences into real road paths
// via an external routing provider, with caching, request batching, and
// graceful degradation to straight-line paths.
package routing

import (
	"context"
	"errors"

	"github.com/kyubii/kyubii-api/internal/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates the provider found no road route between the given waypoints.
	ErrNoRouteFound = errors.New("no route found between the given waypoints")
	// ErrRateLimitExceeded indicates the provider quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidWaypoints indicates the waypoint sequence is malformed or out of range.
	ErrInvalidWaypoints = errors.New("invalid waypoints")
)

// Provider defines the interface for road-routing providers.
type Provider interface {
	// GetRoute retrieves the road path through the given ordered waypoints.
	GetRoute(ctx context.Context, req RouteRequest) (*RouteResult, error)
	// Name returns the provider identifier for logging and health tracking.
	Name() string
}

// RouteRequest is the request for resolving a waypoint sequence.
type RouteRequest struct {
	// Waypoints is the ordered sequence of points the route must pass
	// through, latitude before longitude. Providers that expect a different
	// coordinate order swap at their own boundary.
	Waypoints []geo.Point
}

// RouteResult is a resolved road path.
type RouteResult struct {
	// Geometry is the ordered road-following point sequence.
	Geometry []geo.Point `json:"geometry"`

	// DistanceMeters is the provider-reported total distance.
	DistanceMeters float64 `json:"distanceMeters"`

	// DurationSeconds is the provider-reported total driving duration.
	DurationSeconds float64 `json:"durationSeconds"`
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying sentinel error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
