package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/usecase"
	"github.com/josoor-lab/sectorlens/pkg/utils/errutil"
	"github.com/josoor-lab/sectorlens/pkg/utils/logging"
	"github.com/josoor-lab/sectorlens/pkg/utils/safe"
)

// defaultMaxDatasetBytes caps the ingestion payload size
const defaultMaxDatasetBytes = 32 << 20

type Server struct {
	router          *chi.Mux
	uc              *usecase.UseCases
	maxDatasetBytes int64
}

type Options func(*Server)

// WithMaxDatasetBytes overrides the dataset payload size cap
func WithMaxDatasetBytes(n int64) Options {
	return func(s *Server) {
		s.maxDatasetBytes = n
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:          r,
		uc:              uc,
		maxDatasetBytes: defaultMaxDatasetBytes,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/snapshot", s.snapshotHandler)
			r.Get("/matrix", s.matrixHandler)
			r.Get("/health", s.healthHandler)
			r.Get("/flow", s.flowHandler)
			r.Get("/alerts", s.alertsHandler)
			r.Get("/risk/l1", s.riskL1Handler)
			r.Get("/policy/categories", s.policyCategoriesHandler)
		})

		r.Post("/dataset", s.datasetHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// yearFromRequest parses the mandatory `year` query parameter
func yearFromRequest(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, goerr.New("year query parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid year query parameter", goerr.V("year", raw))
	}
	return year, nil
}

func respondJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}

func (s *Server) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	snapshot, err := s.uc.Analytics.Snapshot(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, snapshot)
}

func (s *Server) matrixHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	matrix, err := s.uc.Analytics.Matrix(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, matrix)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	health, err := s.uc.Analytics.Health(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, health)
}

func (s *Server) flowHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	flow, err := s.uc.Analytics.Flow(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, flow)
}

func (s *Server) alertsHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	alerts, err := s.uc.Analytics.Alerts(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, struct {
		Alerts []*model.JeopardyAlert `json:"alerts"`
	}{Alerts: alerts})
}

func (s *Server) riskL1Handler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	aggs, err := s.uc.Analytics.RiskByL1(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, struct {
		RiskByL1 map[types.HierarchyID]*model.L1RiskAggregation `json:"risk_by_l1"`
	}{RiskByL1: aggs})
}

func (s *Server) policyCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	year, err := yearFromRequest(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	counts, risk, err := s.uc.Analytics.PolicyCategories(r.Context(), year)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}
	respondJSON(w, r, struct {
		Counts *model.PolicyToolCounts             `json:"counts"`
		Risk   map[types.PolicyCategory]types.Band `json:"risk"`
	}{Counts: counts, Risk: risk})
}

func (s *Server) datasetHandler(w http.ResponseWriter, r *http.Request) {
	var ds model.Dataset
	body := http.MaxBytesReader(w, r.Body, s.maxDatasetBytes)
	if err := json.NewDecoder(body).Decode(&ds); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode dataset payload"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Dataset.Ingest(r.Context(), &ds); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	respondJSON(w, r, struct {
		Performance  int `json:"performance"`
		Capabilities int `json:"capabilities"`
		PolicyTools  int `json:"policy_tools"`
		Objectives   int `json:"objectives"`
		Chains       int `json:"chains"`
		DirectLinks  int `json:"direct_links"`
	}{
		Performance:  len(ds.Performance),
		Capabilities: len(ds.Capabilities),
		PolicyTools:  len(ds.PolicyTools),
		Objectives:   len(ds.Objectives),
		Chains:       len(ds.Chains),
		DirectLinks:  len(ds.DirectLinks),
	})
}
