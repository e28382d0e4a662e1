// Package httpapi serves the protocol engine as a small JSON API.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/danielpatrickdp/hecatestia/go-controller/internal/engine"
)

const maxBody = 64 << 10

// #region server
// Server routes HTTP requests into an engine queue.
type Server struct {
	queue     *engine.Queue
	responder engine.Responder
	logger    *zap.Logger
}

// New returns a server. responder may be nil, which disables /api/converse.
func New(q *engine.Queue, responder engine.Responder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{queue: q, responder: responder, logger: logger}
}

// Router builds the chi router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Route("/api", func(api chi.Router) {
		api.Post("/execute", s.handleExecute)
		api.Get("/status", s.handleStatus)
		if s.responder != nil {
			api.Post("/converse", s.handleConverse)
		}
	})
	return r
}

// HTTPServer wraps Router in an http.Server with conservative timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
}
// #endregion server

// #region handlers
type executeRequest struct {
	Input string `json:"entrada"`
}

type converseRequest struct {
	Question string `json:"pregunta"`
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.queue.Submit(r.Context(), req.Input)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConverse(w http.ResponseWriter, r *http.Request) {
	var req converseRequest
	if err := decode(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	resp, err := s.queue.Converse(r.Context(), req.Question, s.responder)
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := s.queue.Snapshot(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err)
		return
	}
	respondJSON(w, http.StatusOK, st.Summary())
}
// #endregion handlers

// #region helpers
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func statusFor(err error) int {
	if errors.Is(err, engine.ErrQueueClosed) {
		return http.StatusServiceUnavailable
	}
	return http.StatusGatewayTimeout
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
// #endregion helpers
