// Package plan implements the plan normalization and scheduling engine:
// it turns an untrusted raw breakdown from a text-generation provider into
// a structurally valid, dependency-ordered plan with computed deadlines,
// complexity scores, and an approximate critical path.
package plan

import (
	"context"
	"time"
)

// Priority levels recognised on a task. Anything else normalizes to medium.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// priorityWeights drive the complexity score. Unknown priorities never reach
// sequencing: Normalize closes the set first.
var priorityWeights = map[string]float64{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// RawPlan is the untrusted structured output of a generation provider.
// Any key may be absent, wrongly typed, or out of range.
type RawPlan = map[string]any

// RawTask is a single untrusted task record inside a RawPlan.
type RawTask = map[string]any

// Task is a validated unit of work within a plan.
//
// Dependencies hold indices into the owning plan's task list and always
// satisfy 0 <= d < own index, so the list order is a topological order by
// construction.
type Task struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	EstimatedHours  float64  `json:"estimated_hours"`
	Priority        string   `json:"priority"`
	Dependencies    []int    `json:"dependencies"`
	DeadlineDays    int      `json:"deadline_days_from_start"`
	Status          string   `json:"status"` // pending, in_progress, completed
	Category        string   `json:"category,omitempty"`
	SkillsRequired  []string `json:"skills_required"`
	Deliverables    []string `json:"deliverables"`
	ComplexityScore float64  `json:"complexity_score"` // advisory, set by Sequence
}

// Plan is a titled collection of ordered, dependency-linked tasks with an
// overall duration estimate. ID, Goal and the timestamps are set by the
// store when the plan is persisted; the engine never touches them.
type Plan struct {
	ID                    string    `json:"id,omitempty"`
	Goal                  string    `json:"goal,omitempty"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	EstimatedDurationDays int       `json:"estimated_duration_days"`
	Tasks                 []Task    `json:"tasks"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}

// Summary is the listing view of a persisted plan.
type Summary struct {
	ID                    string    `json:"id"`
	Goal                  string    `json:"goal"`
	Title                 string    `json:"title"`
	EstimatedDurationDays int       `json:"estimated_duration_days"`
	TaskCount             int       `json:"task_count"`
	CreatedAt             time.Time `json:"created_at"`
}

// Store is the contract for plan persistence.
type Store interface {
	CreatePlan(ctx context.Context, p *Plan) (*Plan, error)
	GetPlan(ctx context.Context, id string) (*Plan, error)
	ListPlans(ctx context.Context, limit int) ([]Summary, error)
	UpdateTaskStatus(ctx context.Context, planID string, taskIndex int, status string) (*Task, error)
	Count(ctx context.Context) (int, error)
	EnsureTables(ctx context.Context) error
}
