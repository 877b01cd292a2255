package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/gatefold"
	"github.com/aretw0/gatefold/internal/compiler"
	"github.com/aretw0/gatefold/internal/validator"
	"github.com/aretw0/gatefold/pkg/domain"
	"github.com/aretw0/gatefold/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxSourceBytes bounds the body accepted by POST /lower.
const MaxSourceBytes = 1 << 20

// Engine is the engine surface the HTTP adapter needs.
type Engine interface {
	ports.Lowerer
	Watch(ctx context.Context) (<-chan string, error)
}

// Server serves the lowering API.
type Server struct {
	Engine Engine
}

// HandlerOption configures NewHandler.
type HandlerOption func(r chi.Router)

// WithMetrics exposes the gatherer's series on GET /metrics.
func WithMetrics(g prometheus.Gatherer) HandlerOption {
	return func(r chi.Router) {
		r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	}
}

// NewHandler creates a new HTTP handler for the engine.
//
//	POST /lower          lower the request body (text, or JSON {"source": ...})
//	GET  /models         list library model IDs
//	GET  /models/{id...} lower a library model (cached when the engine has a store)
//	GET  /events         server-sent events carrying IDs of changed models
//	GET  /health, /info
//
// Lowering endpoints answer JSON unless ?format=text is given.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	server := &Server{Engine: engine}

	r := chi.NewRouter()
	r.Post("/lower", server.Lower)
	r.Get("/models", server.ListModels)
	r.Get("/models/*", server.GetModel)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	for _, opt := range opts {
		opt(r)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LowerRequest is the JSON form of a POST /lower body.
type LowerRequest struct {
	Source string `json:"source"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Lower handles the POST /lower request.
func (s *Server) Lower(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxSourceBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		slog.Warn("Lower: request body rejected", "error", err)
		return
	}

	src := body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req LowerRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
			slog.Warn("Lower: invalid request body", "error", err)
			return
		}
		src = []byte(req.Source)
	}

	model, err := s.Engine.Lower(r.Context(), src)
	if err != nil {
		s.fail(w, "Lower", err)
		return
	}
	writeModel(w, r, model)
}

// ListModels handles the GET /models request.
func (s *Server) ListModels(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.List(r.Context())
	if err != nil {
		s.fail(w, "ListModels", err)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetModel handles the GET /models/{id} request.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "*")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing model id"))
		return
	}

	model, err := s.Engine.LowerByID(r.Context(), id)
	if err != nil {
		s.fail(w, "GetModel", err)
		return
	}
	writeModel(w, r, model)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "gatefold-http",
		"version": strings.TrimSpace(gatefold.Version),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Engine.Watch(r.Context())
	if err != nil {
		writeError(w, http.StatusNotImplemented, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE Client Disconnected")
			return
		case id, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: changed\ndata: %s\n\n", id)
			flusher.Flush()
		}
	}
}

// fail maps engine errors onto status codes.
func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	var (
		serr *compiler.SyntaxError
		verr *validator.ValidationError
	)
	switch {
	case errors.As(err, &serr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: serr.Msg, Line: serr.Line, Column: serr.Column})
	case errors.Is(err, domain.ErrUnsupportedCircularStructure), errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domain.ErrModelNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, gatefold.ErrNoLibrary):
		writeError(w, http.StatusNotImplemented, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
		slog.Error(op+" failed", "error", err)
	}
}

func writeModel(w http.ResponseWriter, r *http.Request, model *domain.Model) {
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, compiler.Format(model))
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
