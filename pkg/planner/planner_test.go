package planner

import (
	"context"
	"errors"
	"testing"

	"taskplanner/pkg/plan"
)

// fakeGenerator returns a canned raw plan or error.
type fakeGenerator struct {
	raw plan.RawPlan
	err error
}

func (f fakeGenerator) Generate(context.Context, string) (plan.RawPlan, error) {
	return f.raw, f.err
}

// TestCreatePlanNormalizesAndSequences verifies the full flow: provider
// output is repaired, deadlines are propagated, and the goal is attached.
func TestCreatePlanNormalizesAndSequences(t *testing.T) {
	raw := plan.RawPlan{
		"title": "Website",
		"tasks": []any{
			plan.RawTask{"title": "Design", "estimated_hours": 8.0, "deadline_days_from_start": 2.0},
			plan.RawTask{
				"title":                    "Build",
				"estimated_hours":          16.0,
				"priority":                 "URGENT", // unknown, repairs to medium
				"dependencies":             []any{0.0, 7.0},
				"deadline_days_from_start": 1.0,
			},
		},
	}
	p := New(fakeGenerator{raw: raw})

	got, err := p.CreatePlan(context.Background(), "Create a simple website")
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}

	if got.Goal != "Create a simple website" {
		t.Errorf("Goal = %q", got.Goal)
	}
	if got.Title != "Website" {
		t.Errorf("Title = %q", got.Title)
	}

	build := got.Tasks[1]
	if build.Priority != plan.PriorityMedium {
		t.Errorf("Priority = %q, want medium", build.Priority)
	}
	if len(build.Dependencies) != 1 || build.Dependencies[0] != 0 {
		t.Errorf("Dependencies = %v, want [0]", build.Dependencies)
	}
	// Dependency deadline 2, so sequencing moves this to 2+1+max(1,16/8) = 5.
	if build.DeadlineDays != 5 {
		t.Errorf("DeadlineDays = %d, want 5", build.DeadlineDays)
	}
	if build.ComplexityScore == 0 {
		t.Error("ComplexityScore not computed")
	}
}

// TestCreatePlanFallsBackOnProviderFailure verifies the single fallback
// substitution: a failing provider still yields a usable plan.
func TestCreatePlanFallsBackOnProviderFailure(t *testing.T) {
	p := New(fakeGenerator{err: errors.New("rate limited")})

	got, err := p.CreatePlan(context.Background(), "Launch a newsletter")
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if len(got.Tasks) == 0 {
		t.Fatal("fallback plan has no tasks")
	}
	if got.Goal != "Launch a newsletter" {
		t.Errorf("Goal = %q", got.Goal)
	}
	for i, task := range got.Tasks {
		for _, d := range task.Dependencies {
			if d < 0 || d >= i {
				t.Errorf("task %d has invalid dependency %d", i, d)
			}
		}
	}
}

// TestCreatePlanPropagatesFieldError verifies that an uncoercible value in
// provider output surfaces as a *plan.FieldError to the caller.
func TestCreatePlanPropagatesFieldError(t *testing.T) {
	raw := plan.RawPlan{
		"tasks": []any{
			plan.RawTask{"estimated_hours": "several"},
		},
	}
	p := New(fakeGenerator{raw: raw})

	_, err := p.CreatePlan(context.Background(), "goal")
	if err == nil {
		t.Fatal("expected error")
	}
	var fe *plan.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *plan.FieldError", err)
	}
	if fe.Index != 0 || fe.Field != "estimated_hours" {
		t.Errorf("FieldError = %+v", fe)
	}
}
