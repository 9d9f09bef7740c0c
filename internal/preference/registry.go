package preference

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/p-n-ai/taleem/internal/concept"
)

type entry struct {
	store    *Store
	lastSeen time.Time
}

// Registry keeps one Store per client session. Sessions idle for longer than
// the idle timeout are evicted by Sweep unless they still have subscribers.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	initial  concept.Language
	idle     time.Duration
	now      func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates a registry whose new sessions start in initial.
func NewRegistry(initial concept.Language, idle time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		initial:  initial,
		idle:     idle,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the store of a session, creating it on first use.
func (r *Registry) Get(sessionID string) *Store {
	return r.GetOrCreate(sessionID, r.initial)
}

// GetOrCreate returns the store of a session. A new session starts in initial.
func (r *Registry) GetOrCreate(sessionID string, initial concept.Language) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		e = &entry{store: NewStore(initial)}
		r.sessions[sessionID] = e
	}
	e.lastSeen = r.now()
	return e.store
}

// Lookup returns an existing session store without creating one.
func (r *Registry) Lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts idle sessions and returns how many were removed.
func (r *Registry) Sweep() int {
	if r.idle <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) && e.store.Subscribers() == 0 {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				slog.Debug("evicted idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}
