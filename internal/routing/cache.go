package routing

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/kyubii/kyubii-api/internal/geo"
)

// Store caches resolved routes keyed by their exact waypoint sequence.
type Store interface {
	// Get returns the cached route for the key, or false when absent.
	Get(ctx context.Context, key string) (*RouteResult, bool)
	// Set stores a resolved route under the key.
	Set(ctx context.Context, key string, result *RouteResult) error
	// Clear removes all cached routes.
	Clear(ctx context.Context) error
}

// CacheKey derives the cache key for an ordered waypoint sequence. Two
// requests share a key only when their waypoints match exactly, in order.
func CacheKey(waypoints []geo.Point) string {
	var b strings.Builder
	for i, wp := range waypoints {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.FormatFloat(wp.Lat, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(wp.Lon, 'f', -1, 64))
	}
	return b.String()
}

// MemoryStore is an in-memory Store for development and testing.
type MemoryStore struct {
	mu     sync.RWMutex
	routes map[string]*RouteResult
}

// NewMemoryStore creates an empty in-memory route cache.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{routes: make(map[string]*RouteResult)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*RouteResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.routes[key]
	return result, ok
}

func (s *MemoryStore) Set(_ context.Context, key string, result *RouteResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[key] = result
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = make(map[string]*RouteResult)
	return nil
}

// Len reports the number of cached routes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.routes)
}

var _ Store = (*MemoryStore)(nil)
