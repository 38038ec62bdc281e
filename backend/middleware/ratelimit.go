// ABOUTME: Fixed-window rate limiting exposed as an injectable Limiter capability
// ABOUTME: Middleware applies a limiter per client key and publishes the decision to handlers

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	Window     time.Duration
	RetryAfter time.Duration
}

// Limiter decides whether a caller identified by key may spend cost units.
type Limiter interface {
	Check(key string, cost int) Decision
}

// counter tracks usage within a fixed time window.
type counter struct {
	count     int
	expiresAt time.Time
}

// RateLimiter enforces a maximum usage per time window.
// Each unique key gets an independent counter.
type RateLimiter struct {
	mu           sync.Mutex
	windows      map[string]*counter
	limit        int
	window       time.Duration
	now          func() time.Time
	sweepCounter int // tracks new windows created; triggers sweep every 100
}

// NewRateLimiter creates a rate limiter that allows limit units per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*counter),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Check spends cost units for key if the window has room for them.
// A fresh window always admits the first request, even one costing more
// than the limit.
func (rl *RateLimiter) Check(key string, cost int) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	c, exists := rl.windows[key]

	// Use !now.Before (>=) so the boundary instant starts a new window
	// rather than returning retryAfter==0 while still denying the request.
	if !exists || !now.Before(c.expiresAt) {
		if exists {
			delete(rl.windows, key)
		}
		rl.windows[key] = &counter{
			count:     cost,
			expiresAt: now.Add(rl.window),
		}

		// Bounds memory to at most active keys + 100 stale entries.
		rl.sweepCounter++
		if rl.sweepCounter >= 100 {
			rl.sweep(now)
			rl.sweepCounter = 0
		}

		return Decision{Allowed: true, Limit: rl.limit, Remaining: max(0, rl.limit-cost), Window: rl.window}
	}

	if c.count+cost <= rl.limit {
		c.count += cost
		return Decision{Allowed: true, Limit: rl.limit, Remaining: rl.limit - c.count, Window: rl.window}
	}

	return Decision{
		Allowed:    false,
		Limit:      rl.limit,
		Remaining:  max(0, rl.limit-c.count),
		Window:     rl.window,
		RetryAfter: c.expiresAt.Sub(now),
	}
}

// sweep removes all expired entries from the windows map.
// Must be called while holding rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, c := range rl.windows {
		if !now.Before(c.expiresAt) {
			delete(rl.windows, k)
		}
	}
}

// ClientIP extracts the client IP from X-Forwarded-For (leftmost), X-Real-IP or RemoteAddr.
// This trusts the X-Forwarded-For header, which is safe when the application runs
// behind a trusted reverse proxy that sets the header. If exposed directly to the
// internet, attackers could spoof this header to bypass IP-based rate limits.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Validate with net.ParseIP to reject garbage values from spoofed headers.
		parts := strings.SplitN(xff, ",", 2)
		ip := strings.TrimSpace(parts[0])
		if ip != "" && net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" && net.ParseIP(ip) != nil {
		return "ip:" + ip
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

type decisionKey struct{}

// RateLimitDecision returns the decision recorded by RateLimit for this request.
func RateLimitDecision(r *http.Request) (Decision, bool) {
	d, ok := r.Context().Value(decisionKey{}).(Decision)
	return d, ok
}

// RateLimit returns middleware that charges cost units per request against limiter.
// If limiter is nil, the middleware is a no-op (disabled mode).
// If keyFunc returns an empty string, the request passes through (unidentifiable client).
// Allowed requests carry the decision in their context and X-RateLimit headers.
func RateLimit(limiter Limiter, keyFunc func(*http.Request) string, cost int) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			d := limiter.Check(key, cost)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if d.Allowed {
				next(w, r.WithContext(context.WithValue(r.Context(), decisionKey{}, d)))
				return
			}

			retrySeconds := int(math.Ceil(d.RetryAfter.Seconds()))
			retryMinutes := int(math.Ceil(d.RetryAfter.Minutes()))
			slog.Warn("Rate limit exceeded", "key", key, "path", sanitizePath(r.URL.Path), "retry_after", retrySeconds)

			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(d.RetryAfter).Unix(), 10))
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			msg := fmt.Sprintf("Rate limit exceeded. You can make %d searches per %s. Try again in %d minutes.",
				d.Limit, windowName(d.Window), retryMinutes)
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":       msg,
				"code":        http.StatusTooManyRequests,
				"retry_after": retrySeconds,
				"limit":       d.Limit,
				"remaining":   0,
			})
		}
	}
}

// windowName renders a quota window for messages: "hour" for 1h, "30m0s" otherwise.
func windowName(window time.Duration) string {
	switch window {
	case time.Minute:
		return "minute"
	case time.Hour:
		return "hour"
	case 24 * time.Hour:
		return "day"
	}
	return window.String()
}
