package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stocklens/stocklens/core/engine"
	"github.com/stocklens/stocklens/core/infrastructure/logging"
	"github.com/stocklens/stocklens/core/warehouse"
)

// RegisterRoutes registers all HTTP routes
func RegisterRoutes(r *chi.Mux, eng *engine.Engine, mapper *warehouse.Mapper, history *warehouse.History) {
	log := logging.New("routes")
	log.Infof("Registering HTTP routes")

	routes := []string{
		"POST /query",
		"GET /schema",
		"GET /examples",
		"GET /history",
		"GET /mappings",
		"POST /mappings",
		"GET /mappings/{sku}",
		"DELETE /mappings/{sku}",
		"GET /heartbeat",
		"GET /metrics",
	}

	r.Post("/query", handleQuery(eng, history))
	r.Get("/schema", handleSchema(eng))
	r.Get("/examples", handleExamples(eng))
	r.Get("/history", handleHistory(history))

	r.Route("/mappings", func(r chi.Router) {
		r.Get("/", handleListMappings(mapper))
		r.Post("/", handleAddMapping(mapper))
		r.Get("/{sku}", handleResolveSKU(mapper))
		r.Delete("/{sku}", handleDeleteMapping(mapper))
	})

	r.Get("/heartbeat", handleHeartbeat)
	r.Handle("/metrics", promhttp.Handler())

	log.Infof("Routes registered: %d", len(routes))
	for _, route := range routes {
		log.Debugf("  %s", route)
	}
}
