package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry keeps live Clients keyed by client id and evicts idle ones.
// Eviction drops only in-memory state; persisted sessions are restored on the next request.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*entry
	factory Factory
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	client   *Client
	lastSeen time.Time
}

// NewRegistry creates an empty Registry.
// PRE: ttl > 0
func NewRegistry(f Factory, ttl time.Duration) *Registry {
	now := f.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		clients: make(map[string]*entry),
		factory: f,
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the Client for id, creating it on first use.
// PRE: id is non-empty
// POST: The client's idle timer is reset
func (r *Registry) Get(ctx context.Context, id string) (*Client, error) {
	if c, ok := r.touch(id); ok {
		return c, nil
	}

	c, err := r.factory.New(ctx, id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another request for the same client may have won the race.
	if e, ok := r.clients[id]; ok {
		e.lastSeen = r.now()
		return e.client, nil
	}
	r.clients[id] = &entry{client: c, lastSeen: r.now()}
	slog.Debug("client_event", "event", "client_created", "client_id", id)
	return c, nil
}

func (r *Registry) touch(id string) (*Client, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.clients[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.client, true
}

// Remove drops the Client for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Len returns the number of live Clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Sweep evicts Clients idle for longer than the ttl and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.clients {
		if e.lastSeen.Before(cutoff) {
			delete(r.clients, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("client_event", "event", "clients_evicted", "count", removed, "remaining", len(r.clients))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
// POST: Returns nil once ctx is cancelled
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
