package ratelimit

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"dropofhope/internal/platform/config"
)

// Middleware applies a fixed-window limit keyed by client IP.
type Middleware struct {
	store    Store
	limit    int64
	window   time.Duration
	disabled bool
	logger   *slog.Logger
}

func NewMiddleware(store Store, cfg config.RateLimitConfig, logger *slog.Logger) *Middleware {
	return &Middleware{
		store:    store,
		limit:    int64(cfg.Limit),
		window:   cfg.Window,
		disabled: cfg.Disabled,
		logger:   logger,
	}
}

// Limit wraps next with the rate check. Limiter errors fail open: a broken
// Redis must not block matching.
func (m *Middleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		key := "rl:match:" + clientIP(r)
		count, remaining, err := m.store.Incr(r.Context(), key, m.window)
		if err != nil {
			m.logger.WarnContext(r.Context(), "rate limit check failed, allowing request",
				"error", err.Error(),
			)
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(m.limit, 10))
		left := m.limit - count
		if left < 0 {
			left = 0
		}
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(left, 10))

		if count > m.limit {
			w.Header().Set("Retry-After", strconv.Itoa(int(remaining.Seconds())+1))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error":   "rate_limited",
				"message": "too many match requests, slow down",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
