// Package resilience guards calls to flaky external dependencies.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrOpen is returned while a breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half_open"
)

type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	// HalfOpenProbes is how many trial calls must succeed before the
	// breaker closes again.
	HalfOpenProbes int
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = 5
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = 15 * time.Second
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = 2
	}
	return c
}

type Option func(*Breaker)

// OnStateChange registers a hook called after every transition, outside the
// breaker lock.
func OnStateChange(fn func(name string, from, to State)) Option {
	return func(b *Breaker) { b.onChange = fn }
}

// Breaker guards one named dependency such as "smtp". A nil or disabled
// breaker passes every call through.
type Breaker struct {
	name     string
	cfg      BreakerConfig
	onChange func(name string, from, to State)
	now      func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	inFlight int
	passed   int
}

func NewBreaker(name string, cfg BreakerConfig, opts ...Option) *Breaker {
	b := &Breaker{
		name:  name,
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: StateClosed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string {
	if b == nil {
		return ""
	}
	return b.name
}

// Execute runs fn if the breaker admits it and records the outcome. Errors
// caused by the caller's own cancellation are not counted.
func (b *Breaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil || !b.cfg.Enabled {
		return fn(ctx)
	}
	if err := b.admit(); err != nil {
		return fmt.Errorf("%s: %w", b.name, err)
	}

	err := fn(ctx)
	switch {
	case err == nil:
		b.settle(outcomeSuccess)
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		b.settle(outcomeIgnored)
	default:
		b.settle(outcomeFailure)
	}
	return err
}

// State reports the current state. An open breaker whose timeout has passed
// reports half-open.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeFailure
	outcomeIgnored
)

func (b *Breaker) admit() error {
	b.mu.Lock()
	from := b.state
	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrOpen
		}
		b.moveLocked(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.inFlight >= b.cfg.HalfOpenProbes {
			b.mu.Unlock()
			b.notify(from, StateHalfOpen)
			return ErrOpen
		}
		b.inFlight++
	}
	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
	return nil
}

func (b *Breaker) settle(o outcome) {
	b.mu.Lock()
	from := b.state
	if b.state == StateHalfOpen && b.inFlight > 0 {
		b.inFlight--
	}
	switch {
	case o == outcomeIgnored:
	case b.state == StateClosed && o == outcomeSuccess:
		b.failures = 0
	case b.state == StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveLocked(StateOpen)
		}
	case b.state == StateHalfOpen && o == outcomeSuccess:
		b.passed++
		if b.passed >= b.cfg.HalfOpenProbes && b.inFlight == 0 {
			b.moveLocked(StateClosed)
		}
	case b.state == StateHalfOpen:
		b.moveLocked(StateOpen)
	}
	to := b.state
	b.mu.Unlock()
	b.notify(from, to)
}

func (b *Breaker) moveLocked(to State) {
	b.state = to
	b.inFlight = 0
	b.passed = 0
	switch to {
	case StateOpen:
		b.openedAt = b.now()
	case StateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.onChange != nil {
		b.onChange(b.name, from, to)
	}
}
