// Package api exposes the planning service over HTTP.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"taskplanner/pkg/plan"
	"taskplanner/pkg/planner"
)

// Server is the HTTP API server.
type Server struct {
	planner *planner.Planner
	plans   plan.Store
	mux     *http.ServeMux
}

// New creates a new Server.
func New(p *planner.Planner, plans plan.Store) *Server {
	s := &Server{
		planner: p,
		plans:   plans,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Plans
	s.mux.HandleFunc("POST /api/plans", s.handlePlanCreate)
	s.mux.HandleFunc("GET /api/plans", s.handlePlanList)
	s.mux.HandleFunc("GET /api/plans/{id}", s.handlePlanGet)
	s.mux.HandleFunc("GET /api/plans/{id}/critical-path", s.handleCriticalPath)
	s.mux.HandleFunc("PATCH /api/plans/{id}/tasks/{index}", s.handleTaskStatusUpdate)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.plans.Count(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]any{"plans": count})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
