package routing

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/kyubii/kyubii-api/internal/geo"
)

// MaxWaypointsPerRequest caps the number of waypoints sent to the provider in
// a single request. Longer sequences are split into overlapping batches that
// share one seam point, so consecutive segments connect without gaps.
const MaxWaypointsPerRequest = 25

// Token identifies one resolution round. Callers that issue overlapping
// resolutions can use it to discard results that a newer round has superseded.
type Token uint64

// Resolution is the outcome of resolving a waypoint sequence.
type Resolution struct {
	// Path is the road-following point sequence, or the input waypoints when
	// the provider could not serve a segment.
	Path []geo.Point

	// Token is the resolution round that produced this path.
	Token Token

	// Current reports whether no newer round began while this one ran.
	Current bool

	// FromCache reports whether the whole path was served from cache.
	FromCache bool

	// Degraded reports that at least one batch fell back to the straight
	// waypoint sequence. Degraded paths are not cached.
	Degraded bool
}

// ResolverConfig holds the dependencies for a Resolver.
type ResolverConfig struct {
	Provider Provider
	Store    Store
	Logger   zerolog.Logger
}

// Resolver turns ordered waypoint sequences into road paths. It caches by
// exact waypoint sequence, batches long sequences, and falls back to the
// straight-line sequence per batch when the provider fails, so resolution
// never surfaces an error to the caller.
type Resolver struct {
	provider   Provider
	store      Store
	logger     zerolog.Logger
	generation atomic.Uint64
}

// NewResolver creates a Resolver. A nil Store gets an in-memory cache.
func NewResolver(cfg ResolverConfig) *Resolver {
	store := cfg.Store
	if store == nil {
		store = NewMemoryStore()
	}
	return &Resolver{
		provider: cfg.Provider,
		store:    store,
		logger:   cfg.Logger.With().Str("component", "route_resolver").Logger(),
	}
}

// Begin starts a new resolution round and returns its token. Results from
// rounds started before the latest Begin report Current=false.
func (r *Resolver) Begin() Token {
	return Token(r.generation.Add(1))
}

// Resolve resolves the waypoints into a road path. Sequences shorter than two
// points are returned unchanged. Provider failures degrade to the straight
// waypoint sequence for the failing batch; Resolve never returns an error.
func (r *Resolver) Resolve(ctx context.Context, token Token, waypoints []geo.Point) Resolution {
	if len(waypoints) < 2 {
		return Resolution{Path: waypoints, Token: token, Current: r.isCurrent(token)}
	}

	key := CacheKey(waypoints)
	if cached, ok := r.store.Get(ctx, key); ok {
		return Resolution{
			Path:      cached.Geometry,
			Token:     token,
			Current:   r.isCurrent(token),
			FromCache: true,
		}
	}

	path, degraded := r.resolveBatched(ctx, waypoints)

	// Degraded paths are not cached so a later request can retry the provider.
	if !degraded {
		if err := r.store.Set(ctx, key, &RouteResult{Geometry: path}); err != nil {
			r.logger.Warn().Err(err).Msg("Failed to cache resolved route")
		}
	}

	return Resolution{Path: path, Token: token, Current: r.isCurrent(token), Degraded: degraded}
}

// ResolveLatest begins a fresh round and resolves in it.
func (r *Resolver) ResolveLatest(ctx context.Context, waypoints []geo.Point) Resolution {
	return r.Resolve(ctx, r.Begin(), waypoints)
}

func (r *Resolver) isCurrent(token Token) bool {
	return uint64(token) == r.generation.Load()
}

// resolveBatched splits the sequence into provider-sized batches that overlap
// by one point and concatenates the results, dropping the duplicated seam
// point at the start of every batch after the first.
func (r *Resolver) resolveBatched(ctx context.Context, waypoints []geo.Point) (path []geo.Point, degraded bool) {
	path = make([]geo.Point, 0, len(waypoints))

	first := true
	for i := 0; i < len(waypoints)-1; i += MaxWaypointsPerRequest - 1 {
		end := i + MaxWaypointsPerRequest
		if end > len(waypoints) {
			end = len(waypoints)
		}
		batch := waypoints[i:end]

		segment := batch
		result, err := r.provider.GetRoute(ctx, RouteRequest{Waypoints: batch})
		if err != nil {
			degraded = true
			r.logger.Warn().
				Err(err).
				Str("provider", r.provider.Name()).
				Int("batch_start", i).
				Int("batch_size", len(batch)).
				Msg("Route batch failed, falling back to straight path")
		} else {
			segment = result.Geometry
		}

		if first {
			path = append(path, segment...)
			first = false
			continue
		}
		if len(segment) > 0 {
			path = append(path, segment[1:]...)
		}
	}

	return path, degraded
}

// TravelTime estimates driving minutes between two points. It asks the
// provider and rounds the duration up to whole minutes, degrading to the
// distance-based estimate when the provider fails.
func (r *Resolver) TravelTime(ctx context.Context, from, to geo.Point) int {
	result, err := r.provider.GetRoute(ctx, RouteRequest{Waypoints: []geo.Point{from, to}})
	if err != nil {
		r.logger.Debug().
			Err(err).
			Str("provider", r.provider.Name()).
			Msg("Travel time lookup failed, using distance estimate")
		return geo.TravelTimeMinutes(from, to)
	}
	return int(math.Ceil(result.DurationSeconds / 60))
}

// ClearCache drops all cached routes.
func (r *Resolver) ClearCache(ctx context.Context) error {
	return r.store.Clear(ctx)
}
