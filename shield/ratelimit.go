package shield

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig is a fixed-window budget per client IP.
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// Enabled reports whether the config limits anything.
func (c RateLimitConfig) Enabled() bool { return c.MaxRequests > 0 && c.Window > 0 }

type bucket struct {
	count   int
	resetAt time.Time
}

// RateLimiter enforces a RateLimitConfig per client IP. Buckets live in
// memory; expired ones are collected on the fly.
type RateLimiter struct {
	cfg     RateLimitConfig
	exclude []string // path prefixes never limited
	now     func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
	lastGC  time.Time
}

// NewRateLimiter creates a limiter. Paths with any of excludePrefixes pass
// through.
func NewRateLimiter(cfg RateLimitConfig, excludePrefixes ...string) *RateLimiter {
	return &RateLimiter{
		cfg:     cfg,
		exclude: excludePrefixes,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	if !rl.cfg.Enabled() {
		return true
	}
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastGC) > rl.cfg.Window {
		for key, b := range rl.buckets {
			if now.After(b.resetAt) {
				delete(rl.buckets, key)
			}
		}
		rl.lastGC = now
	}

	b, ok := rl.buckets[ip]
	if !ok || now.After(b.resetAt) {
		rl.buckets[ip] = &bucket{count: 1, resetAt: now.Add(rl.cfg.Window)}
		return true
	}
	b.count++
	return b.count <= rl.cfg.MaxRequests
}

// Middleware answers 429 with a JSON error once a client exceeds its budget.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range rl.exclude {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		ip := ExtractIP(r)
		if rl.allow(ip) {
			next.ServeHTTP(w, r)
			return
		}

		slog.Warn("ratelimit: request blocked", "ip", ip, "path", r.URL.Path)
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.cfg.Window.Seconds())))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
	})
}

// ExtractIP returns the client IP from X-Forwarded-For or RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
