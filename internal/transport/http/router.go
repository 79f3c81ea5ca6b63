package httptransport

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	personhandler "phonebook/internal/person/handler"
	"phonebook/internal/platform/metrics"
	"phonebook/internal/platform/middleware"
)

// NewRouter assembles the middleware chain and mounts the API routes, the
// metrics endpoint and, when the directory exists, the static UI build.
func NewRouter(persons *personhandler.Handler, logger *slog.Logger, m *metrics.Metrics, staticDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(m.Middleware)

	persons.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	return r
}
