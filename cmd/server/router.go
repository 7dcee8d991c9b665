package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/cake-api/internal/api"
	apiMiddleware "github.com/phrazzld/cake-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	httpMetrics := apiMiddleware.NewHTTPMetrics(app.registry)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)
	r.Use(apiMiddleware.NewRateLimitMiddleware(
		app.config.Server.RateLimitRPS,
		app.config.Server.RateLimitBurst,
	))

	cakeHandler := api.NewCakeHandler(app.cakeService, app.logger)
	cakeHandler.Routes(r)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// The default gatherer carries the runtime and cache collectors.
	gatherer := prometheus.Gatherers{app.registry, prometheus.DefaultGatherer}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
