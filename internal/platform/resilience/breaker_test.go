package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errRelayDown = errors.New("relay down")

func failing(context.Context) error { return errRelayDown }

func succeeding(context.Context) error { return nil }

func TestBreaker_Transitions(t *testing.T) {
	var changes []State
	b := NewBreaker("smtp", BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1},
		OnStateChange(func(name string, _, to State) {
			if name != "smtp" {
				t.Errorf("unexpected breaker name %q", name)
			}
			changes = append(changes, to)
		}))
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after one failure, got %s", got)
	}
	_ = b.Execute(ctx, failing)
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected open after threshold, got %s", got)
	}

	called := false
	err := b.Execute(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, ErrOpen) || called {
		t.Fatalf("expected rejected call, got err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if got := b.State(); got != StateHalfOpen {
		t.Fatalf("expected half-open after timeout, got %s", got)
	}
	if err := b.Execute(ctx, succeeding); err != nil {
		t.Fatalf("expected probe to run: %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected closed after successful probe, got %s", got)
	}

	want := []State{StateOpen, StateHalfOpen, StateClosed}
	if len(changes) != len(want) {
		t.Fatalf("unexpected transitions: %v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", changes)
		}
	}
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b := NewBreaker("s3", BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second})
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	_ = b.Execute(context.Background(), failing)
	now = now.Add(2 * time.Second)
	_ = b.Execute(context.Background(), failing)
	if got := b.State(); got != StateOpen {
		t.Fatalf("expected failed probe to reopen, got %s", got)
	}
}

func TestBreaker_IgnoresCallerCancellation(t *testing.T) {
	b := NewBreaker("nats", BreakerConfig{Enabled: true, FailureThreshold: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected cancellation to leave breaker closed, got %s", got)
	}
}

func TestBreaker_DisabledAndNilPassThrough(t *testing.T) {
	var nilBreaker *Breaker
	if err := nilBreaker.Execute(context.Background(), failing); !errors.Is(err, errRelayDown) {
		t.Fatalf("expected passthrough error, got %v", err)
	}

	b := NewBreaker("smtp", BreakerConfig{FailureThreshold: 1})
	for range 3 {
		_ = b.Execute(context.Background(), failing)
	}
	if got := b.State(); got != StateClosed {
		t.Fatalf("expected disabled breaker to stay closed, got %s", got)
	}
}
