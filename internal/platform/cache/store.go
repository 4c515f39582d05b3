package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matchpulse/matchpulse/internal/platform/resilience"
)

type entry struct {
	payload   []byte
	fetchedAt time.Time
}

// Store holds fetched source payloads keyed by URL so repeated reads
// inside a run, and reruns within the freshness window, skip the network.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached payload when it is still inside the freshness
// window. Stale entries are evicted on read.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && now.Sub(e.fetchedAt) >= s.ttl {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.payload, true
}

func (s *Store) Set(_ context.Context, key string, payload []byte) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{
		payload:   payload,
		fetchedAt: s.now(),
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached payload or runs loader once, deduplicating
// concurrent loads for the same key.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if payload, ok := s.Get(ctx, key); ok {
		return payload, nil
	}

	value, err := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	payload, _ := value.([]byte)
	return payload, nil
}
