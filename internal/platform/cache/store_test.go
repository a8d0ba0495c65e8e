package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClockedStore(ttl time.Duration, opts ...Option) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	return NewStore(ttl, append(opts, WithClock(clock.Now))...), clock
}

func TestStore_GetOrLoadSharesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "kerala", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan any, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := store.GetOrLoad(context.Background(), "state:kl", loader)
			if err != nil {
				results <- err
				return
			}
			results <- v
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()
	close(results)

	for v := range results {
		if v != "kerala" {
			t.Fatalf("unexpected result: %v", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store, clock := newClockedStore(time.Minute)
	store.Set(context.Background(), "k", "v")

	clock.Advance(59 * time.Second)
	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatal("expected hit before ttl")
	}
	clock.Advance(time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatal("expected miss at ttl")
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired item to be dropped, len=%d", store.Len())
	}
}

func TestStore_SetUntil(t *testing.T) {
	t.Parallel()

	store, clock := newClockedStore(time.Hour)
	ctx := context.Background()

	store.SetUntil(ctx, "short", 1, clock.Now().Add(10*time.Second))
	store.SetUntil(ctx, "past", 2, clock.Now().Add(-time.Second))
	store.SetUntil(ctx, "capped", 3, clock.Now().Add(48*time.Hour))

	if _, ok := store.Get(ctx, "past"); ok {
		t.Fatal("expected past deadline to be skipped")
	}
	clock.Advance(11 * time.Second)
	if _, ok := store.Get(ctx, "short"); ok {
		t.Fatal("expected deadline to win over ttl")
	}
	clock.Advance(time.Hour)
	if _, ok := store.Get(ctx, "capped"); ok {
		t.Fatal("expected ttl to cap a later deadline")
	}
}

func TestStore_MaxEntriesEvictsSoonestExpiry(t *testing.T) {
	t.Parallel()

	store, clock := newClockedStore(time.Hour, WithMaxEntries(2))
	ctx := context.Background()

	store.SetUntil(ctx, "a", 1, clock.Now().Add(time.Minute))
	store.SetUntil(ctx, "b", 2, clock.Now().Add(30*time.Minute))
	store.Set(ctx, "c", 3)

	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatal("expected a to be evicted")
	}
	for _, key := range []string{"b", "c"} {
		if _, ok := store.Get(ctx, key); !ok {
			t.Fatalf("expected %s to survive", key)
		}
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "location:city:1", 1)
	store.Set(ctx, "location:city:2", 2)
	store.Set(ctx, "location:stats", 3)

	store.DeletePrefix(ctx, "location:city:")

	if store.Len() != 1 {
		t.Fatalf("expected one item left, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "location:stats"); !ok {
		t.Fatal("expected stats to survive")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("caches typed value", func(t *testing.T) {
		store := NewStore(time.Minute)
		var calls atomic.Int32
		loader := func(context.Context) ([]string, error) {
			calls.Add(1)
			return []string{"delhi", "kerala"}, nil
		}
		for i := 0; i < 2; i++ {
			got, err := Load(context.Background(), store, "states", loader)
			if err != nil || len(got) != 2 {
				t.Fatalf("unexpected result: %v %v", got, err)
			}
		}
		if calls.Load() != 1 {
			t.Fatalf("loader called %d times, want 1", calls.Load())
		}
	})

	t.Run("reloads on type mismatch", func(t *testing.T) {
		store := NewStore(time.Minute)
		store.Set(context.Background(), "key", 42)
		got, err := Load(context.Background(), store, "key", func(context.Context) (string, error) {
			return "fresh", nil
		})
		if err != nil || got != "fresh" {
			t.Fatalf("unexpected result: %q %v", got, err)
		}
	})

	t.Run("loader error is not cached", func(t *testing.T) {
		store := NewStore(time.Minute)
		boom := errors.New("db down")
		if _, err := Load(context.Background(), store, "k", func(context.Context) (int, error) {
			return 0, boom
		}); !errors.Is(err, boom) {
			t.Fatalf("expected loader error, got %v", err)
		}
		if store.Len() != 0 {
			t.Fatal("expected nothing cached")
		}
	})
}
