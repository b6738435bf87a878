package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health describes the observed state of one external provider.
type Health struct {
	Name          string           `json:"name"`
	CircuitState  gobreaker.State  `json:"-"`
	State         string           `json:"state"`
	Counts        gobreaker.Counts `json:"counts"`
	LastSuccessAt *time.Time       `json:"lastSuccessAt,omitempty"`
	LastFailureAt *time.Time       `json:"lastFailureAt,omitempty"`
	LastError     string           `json:"lastError,omitempty"`
}

// Healthy reports whether the circuit is closed.
func (h *Health) Healthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// Registry tracks resilient clients and the outcome of their recent calls,
// for the readiness endpoint.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register adds a client under the given provider name.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &registryEntry{client: client}
}

// RecordSuccess notes a successful call for the provider.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		now := time.Now()
		e.lastSuccessAt = &now
	}
}

// RecordFailure notes a failed call for the provider.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		now := time.Now()
		e.lastFailureAt = &now
		if err != nil {
			e.lastError = err.Error()
		}
	}
}

// GetHealth returns the health of one provider, or nil when unknown.
func (r *Registry) GetHealth(name string) *Health {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil
	}
	return e.health(name)
}

// AllHealth returns the health of every registered provider.
func (r *Registry) AllHealth() []*Health {
	r.mu.RLock()
	defer r.mu.RUnlock()
	health := make([]*Health, 0, len(r.entries))
	for name, e := range r.entries {
		health = append(health, e.health(name))
	}
	return health
}

func (e *registryEntry) health(name string) *Health {
	state := e.client.BreakerState()
	return &Health{
		Name:          name,
		CircuitState:  state,
		State:         state.String(),
		Counts:        e.client.BreakerCounts(),
		LastSuccessAt: e.lastSuccessAt,
		LastFailureAt: e.lastFailureAt,
		LastError:     e.lastError,
	}
}
