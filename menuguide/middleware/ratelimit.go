package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter limits requests per client IP within a fixed window.
type RateLimiter struct {
	visits    map[string]int
	limit     int
	window    time.Duration
	lastReset time.Time
	now       func() time.Time
	mu        sync.Mutex
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visits:    make(map[string]int),
		limit:     limit,
		window:    window,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Allow counts a request from key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.now().Sub(rl.lastReset) > rl.window {
		rl.visits = make(map[string]int)
		rl.lastReset = rl.now()
	}
	rl.visits[key]++
	return rl.visits[key] <= rl.limit
}

// Middleware rejects clients over the limit with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			slog.Warn("[RATELIMIT] Rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", retryAfter(rl.window))
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
