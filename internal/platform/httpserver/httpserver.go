// Package httpserver serves the operational endpoints: liveness, readiness
// and Prometheus metrics.
package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kinlead/internal/platform/metrics"
	dErrors "kinlead/pkg/domain-errors"
	"kinlead/pkg/platform/httputil"
	"kinlead/pkg/platform/middleware/requesttime"
	"kinlead/pkg/requestcontext"
)

const readyTimeout = 2 * time.Second

// Check probes one dependency for /readyz.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Router mounts /healthz, /readyz and /metrics. m may be nil.
func Router(logger *slog.Logger, m *metrics.Metrics, checks ...Check) http.Handler {
	r := chi.NewRouter()
	r.Use(requesttime.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readyHandler(logger, m, checks))
	r.Handle("/metrics", metrics.Handler())
	return r
}

func readyHandler(logger *slog.Logger, m *metrics.Metrics, checks []Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := make(map[string]string, len(checks))
		var failed error
		for _, c := range checks {
			err := c.Ping(ctx)
			m.SetReady(c.Name, err == nil)
			if err != nil {
				logger.WarnContext(ctx, "readiness check failed", "dependency", c.Name, "error", err)
				if failed == nil {
					failed = dErrors.Wrap(err, dErrors.CodeUnavailable, c.Name+" is not ready")
				}
				continue
			}
			status[c.Name] = "ok"
		}
		if failed != nil {
			httputil.WriteError(w, failed)
			return
		}
		status["checked_at"] = requestcontext.Now(r.Context()).Format(time.RFC3339)
		httputil.WriteJSON(w, http.StatusOK, status)
	}
}
