// Package httpapi exposes the aggregator over HTTP for deployments that
// prefer pulling health state (load balancers, dashboards) to the
// cron-driven push. Every request runs a fresh pass; no state is kept
// between requests.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/healthagg/internal/aggregate"
	"github.com/hamed0406/healthagg/internal/probe"
	"github.com/hamed0406/healthagg/internal/registry"
)

type Server struct {
	Logger         *zap.Logger
	Runner         *aggregate.Runner
	Registry       *registry.Registry
	AllowedOrigins []string
}

func NewServer(l *zap.Logger, runner *aggregate.Runner, reg *registry.Registry, origins []string) *Server {
	return &Server{Logger: l, Runner: runner, Registry: reg, AllowedOrigins: origins}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet},
		}))
	} else {
		r.Use(cors.AllowAll().Handler)
	}

	r.Get("/healthz/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/healthz", s.handleHealth)

	return r
}

type healthResponse struct {
	Status string `json:"status"`
	*aggregate.Report
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	rep := s.Runner.RunAll(r.Context(), s.Registry)
	overall := rep.Overall()

	code := http.StatusOK
	if overall == probe.StatusFail {
		code = http.StatusServiceUnavailable
	}

	s.Logger.Info("healthz_pass",
		zap.String("overall", string(overall)),
		zap.Int("checks", len(rep.Outcomes)),
		zap.Int("failures", len(rep.Failures())),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: string(overall), Report: rep})
}
