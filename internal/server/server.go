package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/sitelens/sitelens/internal/app"
	"github.com/sitelens/sitelens/internal/interfaces"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/store"
)

// Server is the HTTP + WebSocket API surface for SiteLens.
type Server struct {
	cfg      Config
	scanner  *app.Scanner
	jobs     *app.JobManager
	history  *app.History
	store    *store.SQLiteStore
	router   chi.Router
	upgrader websocket.Upgrader
	logger   interfaces.Logger
}

// NewServer creates a Server with its own Scanner, job manager and store.
func NewServer(cfg Config) (*Server, error) {
	if cfg.AppConfig == nil {
		cfg.AppConfig = app.DefaultConfig()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}

	storageRoot, err := expandPath(cfg.AppConfig.StorageRoot)
	if err != nil {
		return nil, fmt.Errorf("expanding storage root path: %w", err)
	}
	cfg.AppConfig.StorageRoot = storageRoot
	if err := os.MkdirAll(storageRoot, 0755); err != nil {
		logger.Warn("creating storage root directory",
			interfaces.Field{Key: "path", Value: storageRoot},
			interfaces.Field{Key: "error", Value: err.Error()})
	}

	st, err := store.Open(storageRoot, logger)
	if err != nil {
		return nil, fmt.Errorf("opening scan store: %w", err)
	}

	history := app.NewHistory(cfg.AppConfig.HistorySize)
	scanner, err := app.NewScanner(cfg.AppConfig, st, history, logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		scanner: scanner,
		jobs:    app.NewJobManager(scanner, logger),
		history: history,
		store:   st,
		router:  chi.NewRouter(),
		logger:  logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// TODO: tighten for production
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

// Scanner exposes the underlying scanner for in-process use (CLI, tests).
func (s *Server) Scanner() *app.Scanner {
	return s.scanner
}

func (s *Server) routes() {
	r := s.router

	r.Use(s.corsMiddleware)

	r.Options("/scans", s.optionsHandler("GET, POST"))
	r.Options("/scans/{scanID}", s.optionsHandler("GET"))
	r.Options("/scans/{scanID}/insight", s.optionsHandler("POST"))
	r.Options("/scans/{scanID}/diff/{otherID}", s.optionsHandler("GET"))
	r.Options("/history", s.optionsHandler("GET"))
	r.Options("/jobs", s.optionsHandler("GET, POST"))
	r.Options("/jobs/{jobID}", s.optionsHandler("GET, DELETE"))
	r.Options("/ws/jobs/{jobID}", s.optionsHandler("GET"))

	// Scans
	r.Post("/scans", s.handleStartScan)
	r.Get("/scans", s.handleListScans)
	r.Get("/scans/{scanID}", s.handleGetScan)
	r.Post("/scans/{scanID}/insight", s.handleGenerateInsight)
	r.Get("/scans/{scanID}/diff/{otherID}", s.handleDiffScans)

	// Recent activity
	r.Get("/history", s.handleHistory)

	// Background jobs
	r.Post("/jobs", s.handleStartJob)
	r.Get("/jobs", s.handleListJobs)
	r.Get("/jobs/{jobID}", s.handleGetJob)
	r.Delete("/jobs/{jobID}", s.handleCancelJob)

	// WebSocket job progress
	r.Get("/ws/jobs/{jobID}", s.handleJobWS)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) optionsHandler(methods string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", methods)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("http_request",
		interfaces.Field{Key: "method", Value: r.Method},
		interfaces.Field{Key: "path", Value: r.URL.Path},
	)
	s.router.ServeHTTP(w, r)
}

// Close shuts down the scanner and the store.
func (s *Server) Close() {
	if s.scanner != nil {
		s.scanner.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow streaming
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// --- HTTP handlers ---

// handleStartScan runs a scan synchronously and returns the stored result.
// Bad target URLs come back as 200 with an error-status record, matching
// what a later GET for the same scan would return.
func (s *Server) handleStartScan(w http.ResponseWriter, r *http.Request) {
	var body StartScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	if body.Async {
		job := s.jobs.StartScan(body.UserID, body.URL)
		writeJSON(w, http.StatusAccepted, job)
		return
	}

	res, err := s.scanner.RunScan(r.Context(), body.UserID, body.URL, nil)
	if err != nil {
		s.logger.Warn("running scan", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Info("scan finished",
		interfaces.Field{Key: "scan_id", Value: res.ID},
		interfaces.Field{Key: "status", Value: string(res.Status)})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	res, err := s.store.GetScan(r.Context(), scanID)
	if err != nil {
		if errors.Is(err, store.ErrScanNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		s.logger.Warn("getting scan", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		if v, err := strconv.Atoi(ls); err == nil && v > 0 {
			limit = v
		}
	}

	scans, err := s.store.ListScans(r.Context(), userID, limit)
	if err != nil {
		s.logger.Warn("listing scans", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scans)
}

func (s *Server) handleGenerateInsight(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	ins, err := s.scanner.GenerateInsight(r.Context(), scanID)
	if err != nil {
		if errors.Is(err, store.ErrScanNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		s.logger.Warn("generating insight", interfaces.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, InsightResponse{ScanID: scanID, Insight: ins})
}

func (s *Server) handleDiffScans(w http.ResponseWriter, r *http.Request) {
	baseID := chi.URLParam(r, "scanID")
	otherID := chi.URLParam(r, "otherID")

	diff, err := s.store.DiffSnapshots(r.Context(), baseID, otherID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrScanNotFound):
			writeError(w, http.StatusNotFound, "scan not found")
		case errors.Is(err, store.ErrDomainMismatch):
			writeError(w, http.StatusBadRequest, "scans cover different domains")
		default:
			s.logger.Warn("diffing snapshots", interfaces.Field{Key: "error", Value: err.Error()})
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.history.Recent())
}

// Jobs (REST)

func (s *Server) handleStartJob(w http.ResponseWriter, r *http.Request) {
	var body StartScanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if body.URL == "" {
		writeError(w, http.StatusBadRequest, "missing url")
		return
	}

	job := s.jobs.StartScan(body.UserID, body.URL)
	s.logger.Info("started scan job",
		interfaces.Field{Key: "job_id", Value: job.ID},
		interfaces.Field{Key: "url", Value: body.URL})
	writeJSON(w, http.StatusAccepted, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.Jobs())
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := s.jobs.Job(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if !s.jobs.Cancel(jobID) {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// WebSockets

// handleJobWS streams progress events for an existing job until it reaches a
// terminal state or the client disconnects.
func (s *Server) handleJobWS(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	job, ok := s.jobs.Job(jobID)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", interfaces.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	_ = conn.WriteJSON(job)

	events := s.jobs.Events(jobID)
	if events == nil {
		// Already terminal, the snapshot above is the whole story.
		return
	}
	for ev := range events {
		if err := conn.WriteJSON(ev); err != nil {
			// Assume client disconnected; job keeps going.
			return
		}
	}
}

func expandPath(p string) (string, error) {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, p[1:]), nil
	}
	return p, nil
}
