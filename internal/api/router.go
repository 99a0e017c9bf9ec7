package api

import (
	"cbrbot/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1/rates", func(r chi.Router) {
		r.Get("/", rateHandler.ListRates)
		r.Get("/convert", rateHandler.Convert)
		r.Post("/sync", rateHandler.TriggerSync)
	})
	return router
}
