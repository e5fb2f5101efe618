// Package planner ties the generation provider to the plan engine: one
// call turns a free-text goal into a normalized, sequenced plan.
package planner

import (
	"context"
	"fmt"
	"log"

	"taskplanner/pkg/plan"
	"taskplanner/pkg/provider"
)

// Planner creates plans from goals.
type Planner struct {
	gen provider.Generator
}

// New creates a Planner on the given generator.
func New(gen provider.Generator) *Planner {
	return &Planner{gen: gen}
}

// CreatePlan asks the provider for a raw breakdown, substitutes the fixed
// fallback plan if the provider fails (one substitution, no retry), then
// normalizes and sequences the result.
//
// The returned error is a *plan.FieldError when the raw plan contained a
// value with no typed interpretation; since the fallback plan is always
// well-formed, that can only happen for provider output.
func (p *Planner) CreatePlan(ctx context.Context, goal string) (*plan.Plan, error) {
	raw, err := p.gen.Generate(ctx, goal)
	if err != nil {
		log.Printf("planner: provider failed, using fallback plan: %v", err)
		raw = provider.Fallback(goal)
	}

	validated, err := plan.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize plan: %w", err)
	}
	validated.Goal = goal
	return plan.Sequence(validated), nil
}
