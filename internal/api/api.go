// Package api implements the rafterplan HTTP API.
//
// The API exposes the planning pipeline over HTTP for server deployments:
// plans can be computed ad hoc, persisted, listed, fetched, deleted, and
// rendered as SVG. Routing is built on chi; responses are JSON except for
// rendered artifacts.
//
// # Endpoints
//
//	GET    /healthz                    liveness probe with build version
//	POST   /api/v1/plan                compute a plan without persisting it
//	POST   /api/v1/plans               compute a plan and save it
//	GET    /api/v1/plans               list saved plans, newest first
//	GET    /api/v1/plans/{planID}      fetch one saved plan with its document
//	DELETE /api/v1/plans/{planID}      delete a saved plan
//	GET    /api/v1/plans/{planID}/svg  render a saved plan as SVG
//
// Errors are returned as JSON envelopes carrying the application error
// code, e.g. {"error": {"code": "PLAN_NOT_FOUND", "message": "..."}}.
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/store"
)

// Server bundles the HTTP handlers with their dependencies.
type Server struct {
	store  store.Store
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server backed by the given store and runner.
func NewServer(st store.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, runner: runner, logger: logger}
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Route("/plans", func(r chi.Router) {
			r.Post("/", s.handleCreatePlan)
			r.Get("/", s.handleListPlans)
			r.Route("/{planID}", func(r chi.Router) {
				r.Get("/", s.handleGetPlan)
				r.Delete("/", s.handleDeletePlan)
				r.Get("/svg", s.handlePlanSVG)
			})
		})
	})

	return r
}
