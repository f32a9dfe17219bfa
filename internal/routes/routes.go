package routes

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"person-registry/internal/handler"
	"person-registry/internal/metrics"
	"person-registry/internal/middleware"
)

// Setup registriert globale Middleware, die Betriebsendpunkte und alle Personen-Endpunkte am Router.
// Das Rate-Limit gilt nur für /persons, damit Health-Checks und Scrapes nicht abgewiesen werden.
func Setup(r chi.Router, h *handler.PersonHandler, logger *zap.Logger, rps float64, m *metrics.Metrics, gatherer prometheus.Gatherer) {
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(m))

	r.Get("/healthz", h.Health)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/persons", func(r chi.Router) {
		r.Use(middleware.RateLimit(rps, logger, m))

		r.Get("/", h.GetAll)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Get("/color/{color}", h.GetByColor)
	})
}
