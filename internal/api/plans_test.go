package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"taskplanner/pkg/plan"
	"taskplanner/pkg/planner"
	"taskplanner/pkg/provider"
)

// canned returns a fixed raw plan or error from Generate.
type canned struct {
	raw plan.RawPlan
	err error
}

func (c canned) Generate(context.Context, string) (plan.RawPlan, error) {
	return c.raw, c.err
}

func newTestServer(gen provider.Generator) (*Server, *plan.MemStore) {
	store := plan.NewMemStore()
	return New(planner.New(gen), store), store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestPlanCreate verifies the full create flow against the mock provider:
// 201, persisted ID, sequenced tasks with the DAG invariant intact.
func TestPlanCreate(t *testing.T) {
	s, store := newTestServer(provider.Static{})

	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "Create a simple website"})
	require.Equal(t, 201, rec.Code)

	var p plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.NotEmpty(t, p.ID)
	require.Equal(t, "Create a simple website", p.Goal)
	require.NotEmpty(t, p.Tasks)
	for i, task := range p.Tasks {
		for _, d := range task.Dependencies {
			require.GreaterOrEqual(t, d, 0)
			require.Less(t, d, i)
		}
		require.GreaterOrEqual(t, task.EstimatedHours, 0.5)
		require.GreaterOrEqual(t, task.DeadlineDays, 1)
	}

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// TestPlanCreateRequiresGoal verifies 400 on a missing goal.
func TestPlanCreateRequiresGoal(t *testing.T) {
	s, _ := newTestServer(provider.Static{})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{})
	require.Equal(t, 400, rec.Code)
}

// TestPlanCreateProviderFailureFallsBack verifies a failing provider still
// produces a plan through the fixed fallback.
func TestPlanCreateProviderFailureFallsBack(t *testing.T) {
	s, _ := newTestServer(canned{err: errors.New("upstream down")})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "Launch a newsletter"})
	require.Equal(t, 201, rec.Code)

	var p plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Len(t, p.Tasks, 5)
}

// TestPlanCreateUncoercibleValue verifies 422 when provider output contains
// a value normalization cannot repair.
func TestPlanCreateUncoercibleValue(t *testing.T) {
	s, _ := newTestServer(canned{raw: plan.RawPlan{
		"tasks": []any{plan.RawTask{"estimated_hours": "several"}},
	}})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "goal"})
	require.Equal(t, 422, rec.Code)
	require.Contains(t, rec.Body.String(), "estimated_hours")
}

// TestPlanGetAndList verifies retrieval of a created plan and the listing
// summaries.
func TestPlanGetAndList(t *testing.T) {
	s, _ := newTestServer(provider.Static{})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "Write a book"})
	require.Equal(t, 201, rec.Code)

	var created plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, "GET", "/api/plans/"+created.ID, nil)
	require.Equal(t, 200, rec.Code)
	var got plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, created.ID, got.ID)
	require.Len(t, got.Tasks, len(created.Tasks))

	rec = doJSON(t, s, "GET", "/api/plans", nil)
	require.Equal(t, 200, rec.Code)
	var summaries []plan.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, "Write a book", summaries[0].Goal)

	rec = doJSON(t, s, "GET", "/api/plans/missing", nil)
	require.Equal(t, 404, rec.Code)
}

// TestCriticalPathEndpoint verifies the path response references real task
// indices in start-to-end order.
func TestCriticalPathEndpoint(t *testing.T) {
	s, _ := newTestServer(provider.Static{})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "Ship a feature"})
	require.Equal(t, 201, rec.Code)

	var created plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, "GET", "/api/plans/"+created.ID+"/critical-path", nil)
	require.Equal(t, 200, rec.Code)

	var resp struct {
		PlanID       string   `json:"plan_id"`
		CriticalPath []int    `json:"critical_path"`
		TaskTitles   []string `json:"task_titles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, created.ID, resp.PlanID)
	require.NotEmpty(t, resp.CriticalPath)
	require.Len(t, resp.TaskTitles, len(resp.CriticalPath))
	// The fallback plan is a linear chain, so the path covers every task.
	require.Len(t, resp.CriticalPath, len(created.Tasks))
}

// TestTaskStatusUpdate verifies status transitions and their validation.
func TestTaskStatusUpdate(t *testing.T) {
	s, _ := newTestServer(provider.Static{})
	rec := doJSON(t, s, "POST", "/api/plans", goalRequest{Goal: "Ship a feature"})
	require.Equal(t, 201, rec.Code)

	var created plan.Plan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, s, "PATCH", "/api/plans/"+created.ID+"/tasks/0", statusRequest{Status: "in_progress"})
	require.Equal(t, 200, rec.Code)
	var task plan.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.Equal(t, "in_progress", task.Status)

	rec = doJSON(t, s, "PATCH", "/api/plans/"+created.ID+"/tasks/0", statusRequest{Status: "paused"})
	require.Equal(t, 400, rec.Code)

	rec = doJSON(t, s, "PATCH", "/api/plans/"+created.ID+"/tasks/99", statusRequest{Status: "completed"})
	require.Equal(t, 404, rec.Code)

	req := httptest.NewRequest("PATCH", "/api/plans/"+created.ID+"/tasks/zero", strings.NewReader(`{"status":"completed"}`))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	require.Equal(t, 400, rr.Code)
}

// TestHealthAndStatus verifies the system endpoints.
func TestHealthAndStatus(t *testing.T) {
	s, _ := newTestServer(provider.Static{})

	rec := doJSON(t, s, "GET", "/health", nil)
	require.Equal(t, 200, rec.Code)

	rec = doJSON(t, s, "GET", "/api/status", nil)
	require.Equal(t, 200, rec.Code)
	require.JSONEq(t, `{"plans": 0}`, rec.Body.String())
}
