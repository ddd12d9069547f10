package session

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	binding Binding
	expires time.Time
}

// MemRepo is the in-process store used when no redis address is
// configured, and in tests.
type MemRepo struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

func NewMemRepo() *MemRepo {
	return &MemRepo{entries: make(map[string]memEntry)}
}

func (r *MemRepo) Save(_ context.Context, b Binding, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[b.ID] = memEntry{binding: b, expires: time.Now().Add(ttl)}
	return nil
}

func (r *MemRepo) Get(_ context.Context, id string) (Binding, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return Binding{}, ErrSessionNotFound
	}
	if time.Now().After(e.expires) {
		r.mu.Lock()
		delete(r.entries, id)
		r.mu.Unlock()
		return Binding{}, ErrSessionNotFound
	}
	return e.binding, nil
}

func (r *MemRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
	return nil
}
