// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dropofhope/internal/platform/metrics"
	"dropofhope/internal/platform/middleware"
	"dropofhope/internal/ratelimit"
	"dropofhope/pkg/platform/httputil"
)

const requestTimeout = 15 * time.Second

// Deps carries the handlers and cross-cutting pieces the router assembles.
type Deps struct {
	Donors    *DonorHandler
	Donations *DonationHandler
	Requests  *RequestHandler
	Matches   *MatchHandler

	// Limiter guards the scan-heavy match routes. Nil disables limiting.
	Limiter *ratelimit.Middleware

	Logger  *slog.Logger
	Metrics *metrics.Metrics

	// Checks are named readiness probes (database, redis) reported by
	// /healthz. A failing check degrades the response to 503.
	Checks map[string]func(context.Context) error
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", handleHealthz(d.Checks))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Latency(d.Metrics, "core"))
		d.Donors.Register(r)
		d.Donations.Register(r)
		d.Requests.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Latency(d.Metrics, "matches"))
		if d.Limiter != nil {
			r.Use(d.Limiter.Limit)
		}
		d.Matches.Register(r)
	})

	return r
}

func handleHealthz(checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]string{"status": "ok"}
		status := http.StatusOK
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				body[name] = err.Error()
				body["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}
		httputil.WriteJSON(w, status, body)
	}
}
