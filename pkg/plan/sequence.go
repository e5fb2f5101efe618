package plan

import "math"

// Sequence computes complexity scores and propagates deadline constraints
// through the dependency graph, then derives the overall plan duration.
// It mutates p in place and returns it.
//
// Both passes run in list order. The DAG invariant enforced by Normalize
// (dependencies reference strictly earlier indices) means list order is a
// topological order, so every dependency's deadline is final before it is
// read and a single pass suffices.
//
// Sequence is idempotent: deadlines only move later, and a second pass
// finds every constraint already satisfied.
func Sequence(p *Plan) *Plan {
	for i := range p.Tasks {
		t := &p.Tasks[i]
		weight := priorityWeights[t.Priority]
		t.ComplexityScore = weight*2 + float64(len(t.Dependencies)) + math.Min(t.EstimatedHours/4, 5)
	}

	for i := range p.Tasks {
		t := &p.Tasks[i]
		if len(t.Dependencies) == 0 {
			continue
		}
		maxDepDeadline := 0
		for _, d := range t.Dependencies {
			if dl := p.Tasks[d].DeadlineDays; dl > maxDepDeadline {
				maxDepDeadline = dl
			}
		}
		minStart := maxDepDeadline + 1
		buffer := max(1, int(t.EstimatedHours/8))
		if deadline := minStart + buffer; deadline > t.DeadlineDays {
			t.DeadlineDays = deadline
		}
	}

	for _, t := range p.Tasks {
		if t.DeadlineDays > p.EstimatedDurationDays {
			p.EstimatedDurationDays = t.DeadlineDays
		}
	}
	return p
}
