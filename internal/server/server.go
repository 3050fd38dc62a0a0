// Package server exposes the question-answering core over HTTP.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Answerer is the core's single entry point; satisfied by answer.Orchestrator.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, []string, error)
}

type askRequest struct {
	Question string `json:"question"`
}

type sourceRef struct {
	Source string `json:"source"`
}

type askResponse struct {
	Answer  string      `json:"answer"`
	Sources []sourceRef `json:"sources"`
}

// Server handles /ask and /health.
type Server struct {
	answerer Answerer
}

// New returns a server around the given answerer.
func New(a Answerer) *Server {
	return &Server{answerer: a}
}

// Handler returns the routed HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /ask", s.handleAsk)
	return cors(mux)
}

// ListenAndServe blocks serving HTTP on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	start := time.Now()
	text, sources, err := s.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		// Internal detail stays in the log; the caller gets a generic failure.
		slog.Error("answer failed", "err", err)
		http.Error(w, "answer generation failed", http.StatusBadGateway)
		return
	}
	slog.Info("answered", "duration", time.Since(start), "citations", len(sources))

	resp := askResponse{Answer: text, Sources: make([]sourceRef, 0, len(sources))}
	for _, src := range sources {
		resp.Sources = append(resp.Sources, sourceRef{Source: src})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// cors allows any origin; the service fronts a public portfolio page.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
