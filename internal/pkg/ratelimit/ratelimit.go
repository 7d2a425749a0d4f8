// Package ratelimit implements a precise sliding-window rate limiter.
//
// Unlike fixed-bucket counters, the window trails the current instant, so a
// burst straddling a bucket boundary cannot exceed the configured rate.
// State is in-process only; keys are independent and there is no cross-key
// ordering guarantee.
package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rule is a rate-limit rule: at most Count admissions per trailing window.
type Rule struct {
	Count         int
	WindowSeconds int
}

// Window returns the rule's window as a duration.
func (r Rule) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// ParseRule parses an expression of the form "N/W" (N admissions per W
// seconds). Both numbers must be strictly positive integers. Malformed
// expressions are configuration errors and must fail at load time, never
// at request time.
func ParseRule(expr string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(expr), "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("invalid rate limit expression %q, expected \"N/W\"", expr)
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rate limit count in %q: %w", expr, err)
	}
	window, err := strconv.Atoi(parts[1])
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rate limit window in %q: %w", expr, err)
	}
	if count <= 0 || window <= 0 {
		return Rule{}, fmt.Errorf("rate limit %q must use strictly positive values", expr)
	}
	return Rule{Count: count, WindowSeconds: window}, nil
}

// Limiter admits or rejects events per key using a sliding window of event
// timestamps. Memory per key is bounded by the rule's Count; keys whose
// window has fully drained are reclaimed on next access.
type Limiter struct {
	mu     sync.Mutex
	events map[string][]time.Time
	now    func() time.Time
}

func NewLimiter() *Limiter {
	return &Limiter{
		events: make(map[string][]time.Time),
		now:    time.Now,
	}
}

// NewLimiterWithClock builds a limiter with an injectable clock for
// deterministic window-boundary tests.
func NewLimiterWithClock(now func() time.Time) *Limiter {
	l := NewLimiter()
	l.now = now
	return l
}

// Allow reports whether an event for key is admitted under rule, recording
// the event timestamp when it is.
func (l *Limiter) Allow(key string, rule Rule) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	q := l.prune(key, rule, now)

	if len(q) >= rule.Count {
		l.events[key] = q
		return false
	}

	l.events[key] = append(q, now)
	return true
}

// Remaining returns how many admissions are left for key in the current
// window. It does not record an event.
func (l *Limiter) Remaining(key string, rule Rule) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := l.prune(key, rule, l.now())
	if len(q) > 0 {
		l.events[key] = q
	}

	remaining := rule.Count - len(q)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// prune drops timestamps strictly older than the trailing window start; an
// event at exactly now-window still counts against the rule, so a caller
// probing the window edge gets no free admission. It deletes the key
// entirely once empty, so many distinct idle keys (e.g. many IPs) do not
// accumulate. Caller holds l.mu.
func (l *Limiter) prune(key string, rule Rule, now time.Time) []time.Time {
	windowStart := now.Add(-rule.Window())
	q := l.events[key]
	for len(q) > 0 && q[0].Before(windowStart) {
		q = q[1:]
	}
	if len(q) == 0 {
		delete(l.events, key)
		return nil
	}
	return q
}
