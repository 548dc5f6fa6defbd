package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/fantasy-data-service/internal/http/handlers"
	"github.com/preston-bernstein/fantasy-data-service/internal/http/middleware"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
)

// SleeperBasePath prefixes every Sleeper aggregation route.
const SleeperBasePath = "/api/sleeper"

// NewRouter registers HTTP routes on a chi router wrapped with request logging and metrics.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(logger, recorder, next)
	})
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Mount(SleeperBasePath, handler.SleeperRoutes())
	return r
}
