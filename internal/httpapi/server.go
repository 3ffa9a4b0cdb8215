package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesweep/internal/domain"
	"github.com/hamed0406/sitesweep/internal/httpapi/middleware"
	"github.com/hamed0406/sitesweep/internal/repo"
	"github.com/hamed0406/sitesweep/internal/sweep"
)

// SweepFunc runs one batch of probes. Injected so tests can swap the
// real engine for a canned one.
type SweepFunc func(ctx context.Context, targets []string) (*domain.Run, error)

type Server struct {
	Logger    *zap.Logger
	Store     repo.SweepStore
	Sweep     SweepFunc
	AdminKeys []string
	RPM       int
	Burst     int
}

func NewServer(l *zap.Logger, store repo.SweepStore, sweepFn SweepFunc, adminKeys []string, rpm, burst int) *Server {
	return &Server{Logger: l, Store: store, Sweep: sweepFn, AdminKeys: adminKeys, RPM: rpm, Burst: burst}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/api/sweeps", s.handleListSweeps)
	r.Get("/api/sweeps/{id}", s.handleGetSweep)
	r.With(
		middleware.RateLimit(s.RPM, s.Burst),
		middleware.RequireKey(s.AdminKeys),
	).Post("/api/sweeps", s.handleTriggerSweep)

	return r
}

type triggerPayload struct {
	URLs []string `json:"urls"`
}

func (s *Server) handleTriggerSweep(w http.ResponseWriter, r *http.Request) {
	var p triggerPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || len(p.URLs) == 0 {
		http.Error(w, "bad payload: expected {\"urls\": [...]}", http.StatusBadRequest)
		return
	}

	run, err := s.Sweep(r.Context(), p.URLs)
	if err != nil {
		if errors.Is(err, sweep.ErrNoTargets) || errors.Is(err, sweep.ErrNoWorkers) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.Logger.Error("sweep_failed", zap.Int("targets", len(p.URLs)), zap.Error(err))
		http.Error(w, "sweep failed", http.StatusInternalServerError)
		return
	}

	if err := s.Store.SaveRun(r.Context(), run); err != nil {
		s.Logger.Error("save_run_failed", zap.String("run_id", string(run.ID)), zap.Error(err))
		http.Error(w, "could not store sweep", http.StatusInternalServerError)
		return
	}

	s.Logger.Info("sweep_completed",
		zap.String("run_id", string(run.ID)),
		zap.Int("targets", len(run.Outcomes)),
		zap.Int("up", run.UpCount()),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(run)
}

func (s *Server) handleListSweeps(w http.ResponseWriter, r *http.Request) {
	runs, err := s.Store.ListRuns(r.Context())
	if err != nil {
		s.Logger.Error("list_runs_failed", zap.Error(err))
		http.Error(w, "list error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(runs)
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	id := domain.RunID(chi.URLParam(r, "id"))
	run, err := s.Store.GetRun(r.Context(), id)
	if err != nil {
		s.Logger.Error("get_run_failed", zap.String("run_id", string(id)), zap.Error(err))
		http.Error(w, "get error", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(run)
}
