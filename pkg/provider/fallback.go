package provider

import (
	"context"
	"fmt"

	"taskplanner/pkg/plan"
)

// Static is a Generator that always returns the fixed fallback plan. It is
// the configured backend when no provider credentials exist, and the
// substitute callers use when a real backend fails.
type Static struct{}

// Generate returns Fallback(goal). It never fails.
func (Static) Generate(_ context.Context, goal string) (plan.RawPlan, error) {
	return Fallback(goal), nil
}

// Fallback is the fixed five-task plan substituted when generation fails.
// It is deliberately well-formed so normalization can never reject it.
func Fallback(goal string) plan.RawPlan {
	short := goal
	if runes := []rune(goal); len(runes) > 50 {
		short = string(runes[:50]) + "..."
	}
	return plan.RawPlan{
		"title":                   fmt.Sprintf("Plan for: %s", short),
		"description":             fmt.Sprintf("A structured plan to achieve: %s", goal),
		"estimated_duration_days": 14,
		"tasks": []any{
			plan.RawTask{
				"title":                    "Research and Planning",
				"description":              "Conduct thorough research and create detailed project plan with clear objectives and scope",
				"estimated_hours":          8.0,
				"priority":                 "high",
				"dependencies":             []any{},
				"deadline_days_from_start": 2,
				"category":                 "research",
				"skills_required":          []any{"research", "planning", "analysis"},
				"deliverables":             []any{"project plan", "research report", "requirements document"},
			},
			plan.RawTask{
				"title":                    "Setup and Preparation",
				"description":              "Set up necessary tools, development environment, and gather resources",
				"estimated_hours":          4.0,
				"priority":                 "high",
				"dependencies":             []any{0},
				"deadline_days_from_start": 3,
				"category":                 "planning",
				"skills_required":          []any{"technical setup", "tool configuration"},
				"deliverables":             []any{"configured environment", "resource list", "setup documentation"},
			},
			plan.RawTask{
				"title":                    "Core Implementation",
				"description":              "Implement the main components, features, and core functionality",
				"estimated_hours":          24.0,
				"priority":                 "high",
				"dependencies":             []any{1},
				"deadline_days_from_start": 10,
				"category":                 "development",
				"skills_required":          []any{"programming", "system design", "problem solving"},
				"deliverables":             []any{"working prototype", "core features", "technical documentation"},
			},
			plan.RawTask{
				"title":                    "Testing and Quality Assurance",
				"description":              "Test all components thoroughly and ensure quality standards are met",
				"estimated_hours":          8.0,
				"priority":                 "medium",
				"dependencies":             []any{2},
				"deadline_days_from_start": 12,
				"category":                 "testing",
				"skills_required":          []any{"testing", "debugging", "quality assurance"},
				"deliverables":             []any{"test reports", "bug fixes", "quality documentation"},
			},
			plan.RawTask{
				"title":                    "Final Review and Deployment",
				"description":              "Final review, documentation, and deployment to production environment",
				"estimated_hours":          4.0,
				"priority":                 "medium",
				"dependencies":             []any{3},
				"deadline_days_from_start": 14,
				"category":                 "deployment",
				"skills_required":          []any{"deployment", "documentation", "project management"},
				"deliverables":             []any{"deployed solution", "user documentation", "maintenance guide"},
			},
		},
	}
}
