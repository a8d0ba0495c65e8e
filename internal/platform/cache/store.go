package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var errNilLoader = errors.New("cache: loader is required")

type item struct {
	value any
	until time.Time // zero means no expiry
}

func (it item) live(now time.Time) bool {
	return it.until.IsZero() || now.Before(it.until)
}

// Option tunes a Store.
type Option func(*Store)

// WithMaxEntries bounds the store. When full, expired items are dropped first
// and then the item closest to expiry.
func WithMaxEntries(n int) Option {
	return func(s *Store) { s.maxEntries = n }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is an in-process TTL cache. Concurrent misses for the same key share
// one loader call. A ttl of zero keeps items until they are deleted.
type Store struct {
	mu         sync.RWMutex
	items      map[string]item
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	group      singleflight.Group
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{items: make(map[string]item), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !it.live(s.now()) {
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.until.Equal(it.until) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

// Set stores value for the store ttl.
func (s *Store) Set(ctx context.Context, key string, value any) {
	var until time.Time
	if s.ttl > 0 {
		until = s.now().Add(s.ttl)
	}
	s.SetUntil(ctx, key, value, until)
}

// SetUntil stores value until the earlier of deadline and the store ttl. A
// deadline already in the past stores nothing.
func (s *Store) SetUntil(_ context.Context, key string, value any, deadline time.Time) {
	if key == "" {
		return
	}
	now := s.now()
	until := deadline
	if s.ttl > 0 {
		if byTTL := now.Add(s.ttl); until.IsZero() || byTTL.Before(until) {
			until = byTTL
		}
	}
	if !until.IsZero() && !now.Before(until) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists && s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		s.makeRoom(now)
	}
	s.items[key] = item{value: value, until: until}
}

// makeRoom must run with mu held.
func (s *Store) makeRoom(now time.Time) {
	victim, victimUntil := "", time.Time{}
	for key, it := range s.items {
		if !it.live(now) {
			delete(s.items, key)
			continue
		}
		if victim == "" || (!it.until.IsZero() && (victimUntil.IsZero() || it.until.Before(victimUntil))) {
			victim, victimUntil = key, it.until
		}
	}
	if len(s.items) >= s.maxEntries && victim != "" {
		delete(s.items, victim)
	}
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}
	s.mu.Lock()
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
		}
	}
	s.mu.Unlock()
}

// Len counts stored items, expired ones included until they are touched.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	return v, err
}

// Load is GetOrLoad with a typed loader. A cached value of another type is
// treated as a miss and reloaded.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		loaded, err := loader(ctx)
		return loaded, err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if typed, ok := v.(T); ok {
		return typed, nil
	}
	s.Delete(ctx, key)
	return loader(ctx)
}
