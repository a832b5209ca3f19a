package handler

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/stacksolutions/estimator/internal/metrics"
)

const (
	rateWindow       = time.Minute
	rateSweepEvery   = 5 * time.Minute
	unmatchedPattern = "unmatched"
)

// RateLimiter caps how many submissions (quotes, bookings, contact messages)
// a single client may make per minute. Read-only routes are not wrapped.
type RateLimiter struct {
	limit          int
	trustedProxies int
	now            func() time.Time

	mu   sync.Mutex
	hits map[string][]time.Time
}

// NewRateLimiter allows limit requests per client per minute. trustedProxies
// is the number of reverse proxies that append to X-Forwarded-For.
func NewRateLimiter(limit, trustedProxies int) *RateLimiter {
	return &RateLimiter{
		limit:          limit,
		trustedProxies: trustedProxies,
		now:            time.Now,
		hits:           make(map[string][]time.Time),
	}
}

// Run drops idle clients every few minutes until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(rateSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// Limit wraps a submission handler. Rejections answer 429 rate_limited with a
// Retry-After header and are counted per route.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wait, ok := rl.allow(rl.clientIP(r))
		if !ok {
			route := r.Pattern
			if route == "" {
				route = unmatchedPattern
			}
			metrics.IncreaseRateLimited(route)
			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			writeError(w, http.StatusTooManyRequests, "rate_limited", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LimitFunc is Limit for a handler method.
func (rl *RateLimiter) LimitFunc(next http.HandlerFunc) http.Handler {
	return rl.Limit(next)
}

// allow records a hit for client, or reports how long until the oldest hit
// in the window expires.
func (rl *RateLimiter) allow(client string) (time.Duration, bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := pruneBefore(rl.hits[client], now.Add(-rateWindow))
	if len(recent) >= rl.limit {
		rl.hits[client] = recent
		return recent[0].Add(rateWindow).Sub(now), false
	}
	rl.hits[client] = append(recent, now)
	return 0, true
}

func (rl *RateLimiter) sweep() {
	cutoff := rl.now().Add(-rateWindow)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for client, ts := range rl.hits {
		if recent := pruneBefore(ts, cutoff); len(recent) > 0 {
			rl.hits[client] = recent
		} else {
			delete(rl.hits, client)
		}
	}
}

func (rl *RateLimiter) clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.hits)
}

// pruneBefore filters ts in place, keeping hits after cutoff.
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(d.Seconds())+1, 1))
}

// clientIP takes the X-Forwarded-For entry written by the outermost trusted
// proxy. Entries to its left are client-controlled and ignored.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" && rl.trustedProxies > 0 {
		parts := strings.Split(xff, ",")
		if i := len(parts) - rl.trustedProxies; i >= 0 {
			return strings.TrimSpace(parts[i])
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
