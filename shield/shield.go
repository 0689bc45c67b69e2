// CLAUDE:SUMMARY HTTP middleware for the conversion service: security headers, body limit, trace IDs, per-IP rate limiting, HEAD handling.
// Package shield provides the HTTP middleware in front of the conversion
// service.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultStack(1<<20, shield.RateLimitConfig{MaxRequests: 120, Window: time.Minute}) {
//	    r.Use(mw)
//	}
package shield

import (
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// DefaultStack returns the middleware stack of the HTTP server, outermost
// first: HeadToGet, SecurityHeaders, MaxBody, TraceID, then the rate limiter
// when limit is enabled. /health is never rate limited.
func DefaultStack(maxBody int64, limit RateLimitConfig) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{
		HeadToGet,
		SecurityHeaders(DefaultHeaders()),
		MaxBody(maxBody),
		TraceID,
	}
	if limit.Enabled() {
		stack = append(stack, NewRateLimiter(limit, "/health").Middleware)
	}
	return stack
}
