package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewDebugRouter builds the operational listener: prometheus metrics,
// pprof profiles and a liveness probe, kept off the public API port.
func NewDebugRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", promhttp.Handler())
	router.Mount("/debug", middleware.Profiler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

// ServeDebug runs the operational listener until the process exits.
// Failures are logged, not fatal: losing metrics should never take down
// the evaluation API.
func ServeDebug(port string) {
	addr := ":" + port
	log.Printf("[Debug] Operational listener starting on %s", addr)
	if err := http.ListenAndServe(addr, NewDebugRouter()); err != nil {
		log.Printf("[Debug] Operational listener failed: %v", err)
	}
}
