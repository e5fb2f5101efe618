package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"taskplanner/pkg/plan"
)

// goalRequest is the body of POST /api/plans.
type goalRequest struct {
	Goal              string `json:"goal"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

func (s *Server) handlePlanCreate(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	if req.Goal == "" {
		writeError(w, 400, "goal is required")
		return
	}

	goal := req.Goal
	if req.AdditionalContext != "" {
		goal += "\n\nAdditional context: " + req.AdditionalContext
	}

	p, err := s.planner.CreatePlan(r.Context(), goal)
	if err != nil {
		var fe *plan.FieldError
		if errors.As(err, &fe) {
			writeError(w, 422, err.Error())
			return
		}
		writeError(w, 500, "task planning service temporarily unavailable: "+err.Error())
		return
	}
	p.Goal = req.Goal

	stored, err := s.plans.CreatePlan(r.Context(), p)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 201, stored)
}

func (s *Server) handlePlanList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	summaries, err := s.plans.ListPlans(r.Context(), limit)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, summaries)
}

func (s *Server) handlePlanGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.plans.GetPlan(r.Context(), id)
	if err != nil {
		status := 500
		if errors.Is(err, plan.ErrNotFound) {
			status = 404
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, 200, p)
}

func (s *Server) handleCriticalPath(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p, err := s.plans.GetPlan(r.Context(), id)
	if err != nil {
		status := 500
		if errors.Is(err, plan.ErrNotFound) {
			status = 404
		}
		writeError(w, status, err.Error())
		return
	}

	path := plan.CriticalPath(p.Tasks)
	titles := make([]string, len(path))
	for i, idx := range path {
		titles[i] = p.Tasks[idx].Title
	}
	writeJSON(w, 200, map[string]any{
		"plan_id":       p.ID,
		"critical_path": path,
		"task_titles":   titles,
	})
}

// statusRequest is the body of PATCH /api/plans/{id}/tasks/{index}.
type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleTaskStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, 400, "invalid task index")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	switch req.Status {
	case "pending", "in_progress", "completed":
	default:
		writeError(w, 400, "invalid status")
		return
	}

	t, err := s.plans.UpdateTaskStatus(r.Context(), id, index, req.Status)
	if err != nil {
		status := 500
		if errors.Is(err, plan.ErrNotFound) {
			status = 404
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, 200, t)
}
