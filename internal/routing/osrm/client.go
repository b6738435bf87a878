// Package osrm provides a client for the OSRM route service.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/geo"
	"github.com/kyubii/kyubii-api/internal/provider/resilience"
	"github.com/kyubii/kyubii-api/internal/routing"
	"github.com/kyubii/kyubii-api/pkg/polyline"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "osrm"

	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "https://router.project-osrm.org"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OSRM client.
type ClientConfig struct {
	// BaseURL is the OSRM server base URL (optional, defaults to the demo server).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional). If nil, a resilient
	// client with defaults is used.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OSRM route service client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	registry   *resilience.Registry
	logger     zerolog.Logger
}

// NewClient creates a new OSRM client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		resilient := resilience.NewClient(resilience.ClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
		})
		if cfg.Registry != nil {
			cfg.Registry.Register(ProviderName, resilient)
		}
		httpClient = resilient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		registry:   cfg.Registry,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// GetRoute retrieves the driving route through the given waypoints.
func (c *Client) GetRoute(ctx context.Context, req routing.RouteRequest) (*routing.RouteResult, error) {
	if len(req.Waypoints) < 2 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "TOO_FEW_WAYPOINTS",
			Message:  "at least two waypoints are required",
			Err:      routing.ErrInvalidWaypoints,
		}
	}
	for _, wp := range req.Waypoints {
		if !wp.Validate() {
			return nil, &routing.Error{
				Provider: ProviderName,
				Code:     "INVALID_WAYPOINT",
				Message:  "waypoint coordinates out of range",
				Err:      routing.ErrInvalidWaypoints,
			}
		}
	}

	url := c.routeURL(req.Waypoints)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Int("waypoints", len(req.Waypoints)).
		Msg("requesting route from OSRM")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recordFailure(err)
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		routeErr := c.handleErrorStatus(resp.StatusCode, body)
		c.recordFailure(routeErr)
		return nil, routeErr
	}

	var osrmResp osrmResponse
	if err := json.Unmarshal(body, &osrmResp); err != nil {
		c.recordFailure(err)
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if osrmResp.Code != osrmCodeOK || len(osrmResp.Routes) == 0 {
		routeErr := c.handleErrorCode(&osrmResp)
		c.recordFailure(routeErr)
		return nil, routeErr
	}

	result := toRouteResult(&osrmResp.Routes[0])
	c.recordSuccess()

	c.logger.Debug().
		Int("geometry_points", len(result.Geometry)).
		Float64("distance_m", result.DistanceMeters).
		Float64("duration_s", result.DurationSeconds).
		Msg("received route from OSRM")

	return result, nil
}

// routeURL builds the route service URL. OSRM expects lon,lat pairs.
func (c *Client) routeURL(waypoints []geo.Point) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/route/v1/driving/")
	for i, wp := range waypoints {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(wp.Lon, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(wp.Lat, 'f', -1, 64))
	}
	b.WriteString("?overview=full&geometries=polyline")
	return b.String()
}

func (c *Client) handleErrorStatus(statusCode int, body []byte) error {
	var osrmResp osrmResponse
	message := fmt.Sprintf("routing provider returned status %d", statusCode)
	if err := json.Unmarshal(body, &osrmResp); err == nil && osrmResp.Message != "" {
		message = osrmResp.Message
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "rate limit exceeded, try again later",
			Err:      routing.ErrRateLimitExceeded,
		}
	case statusCode == http.StatusBadRequest:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "BAD_REQUEST",
			Message:  message,
			Err:      routing.ErrInvalidWaypoints,
		}
	case statusCode >= 500:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("SERVER_%d", statusCode),
			Message:  "routing provider is temporarily unavailable",
			Err:      routing.ErrProviderUnavailable,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  message,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

func (c *Client) handleErrorCode(resp *osrmResponse) error {
	switch resp.Code {
	case osrmCodeNoRoute, osrmCodeNoSeg:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  "no route found between the given waypoints",
			Err:      routing.ErrNoRouteFound,
		}
	case osrmCodeOK:
		// Ok with zero routes still means no usable route.
		return &routing.Error{
			Provider: ProviderName,
			Code:     "EMPTY_RESPONSE",
			Message:  "routing provider returned no routes",
			Err:      routing.ErrNoRouteFound,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  resp.Message,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

func toRouteResult(route *osrmRoute) *routing.RouteResult {
	coords := polyline.Decode(route.Geometry)
	geometry := make([]geo.Point, len(coords))
	for i, c := range coords {
		geometry[i] = geo.Point{Lat: c.Lat, Lon: c.Lon}
	}
	return &routing.RouteResult{
		Geometry:        geometry,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}
}

func (c *Client) recordSuccess() {
	if c.registry != nil {
		c.registry.RecordSuccess(ProviderName)
	}
}

func (c *Client) recordFailure(err error) {
	if c.registry != nil {
		c.registry.RecordFailure(ProviderName, err)
	}
}
