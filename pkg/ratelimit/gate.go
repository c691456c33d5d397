package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Gate enforces a minimum interval between successive external API calls.
// It replaces scattered sleeps between requests with a single injectable
// policy: every caller invokes Wait before issuing its request.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewGate creates a gate with the given minimum inter-call interval.
// A zero or negative interval disables the gate.
func NewGate(interval time.Duration) *Gate {
	return &Gate{interval: interval}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous call was released. Returns early with the context error when the
// context is cancelled.
func (g *Gate) Wait(ctx context.Context) error {
	if g.interval <= 0 {
		return ctx.Err()
	}

	g.mu.Lock()
	now := time.Now()
	next := g.last.Add(g.interval)
	if next.Before(now) {
		next = now
	}
	g.last = next
	g.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Interval returns the configured minimum spacing
func (g *Gate) Interval() time.Duration {
	return g.interval
}
