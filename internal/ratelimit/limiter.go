package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the fixed window shared by all endpoints.
const DefaultWindow = 60 * time.Second

// sweepThreshold bounds the backing map under key churn (spoofed or
// rotating identifiers). The sweep piggybacks on request handling so no
// background timer is needed.
const sweepThreshold = 10000

// Result reports the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type entry struct {
	count   int
	resetAt time.Time
}

// Limiter is a fixed-window, per-key request counter. Counters live in
// process memory only: each instance keeps its own view and a restart
// clears everything. The limiter is advisory, not a security boundary.
type Limiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	entries map[string]*entry
	nowFunc func() time.Time
}

// New returns a limiter allowing max requests per key per window.
func New(max int, window time.Duration) *Limiter {
	return &Limiter{
		max:     max,
		window:  window,
		entries: map[string]*entry{},
		nowFunc: time.Now,
	}
}

// Check records a request for identifier and reports whether it is within
// the limit. Once a key has hit the maximum, further requests in the same
// window do not increment the counter.
func (l *Limiter) Check(identifier string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFunc()

	if len(l.entries) > sweepThreshold {
		l.sweep(now)
	}

	e, ok := l.entries[identifier]
	if !ok || now.After(e.resetAt) {
		resetAt := now.Add(l.window)
		l.entries[identifier] = &entry{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: l.max - 1, ResetAt: resetAt}
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetAt: e.resetAt}
	}

	e.count++
	return Result{Allowed: true, Remaining: l.max - e.count, ResetAt: e.resetAt}
}

// sweep drops every key whose window has already elapsed. Caller holds mu.
func (l *Limiter) sweep(now time.Time) {
	for k, e := range l.entries {
		if now.After(e.resetAt) {
			delete(l.entries, k)
		}
	}
}

// RetryAfter converts a denied Result into whole seconds for a Retry-After
// header, rounding up and never going below 1.
func RetryAfter(r Result, now time.Time) int {
	secs := int(r.ResetAt.Sub(now).Seconds() + 0.999)
	if secs < 1 {
		secs = 1
	}
	return secs
}
