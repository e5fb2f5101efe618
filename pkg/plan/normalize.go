package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Default values substituted for absent or unusable raw fields.
const (
	defaultPlanTitle       = "Task Plan"
	defaultPlanDescription = "Generated task plan"
	defaultTaskDescription = "Task description"
	defaultDurationDays    = 14
	defaultEstimatedHours  = 4.0
	minEstimatedHours      = 0.5
)

// Normalize validates and repairs a raw provider plan into a well-formed
// Plan. It never rejects malformed input where a repair policy exists:
// absent fields get defaults, out-of-range values are clamped, and
// dependency indices that would break the DAG invariant are dropped.
//
// The single hard failure is an estimated_hours value with no numeric
// interpretation, reported as a *FieldError naming the task and field.
//
// Normalize is pure: it reads raw once and never mutates it.
func Normalize(raw RawPlan) (*Plan, error) {
	p := &Plan{
		Title:                 stringOr(raw["title"], defaultPlanTitle),
		Description:           stringOr(raw["description"], defaultPlanDescription),
		EstimatedDurationDays: max(1, intOr(raw["estimated_duration_days"], defaultDurationDays)),
		Tasks:                 []Task{},
	}

	rawTasks, _ := raw["tasks"].([]any)
	for i, entry := range rawTasks {
		rt, _ := entry.(RawTask) // non-mapping entries normalize as fully absent
		t, err := normalizeTask(rt, i)
		if err != nil {
			return nil, err
		}
		p.Tasks = append(p.Tasks, t)
	}
	return p, nil
}

// normalizeTask applies the per-field repair rules for the task at index i.
func normalizeTask(rt RawTask, i int) (Task, error) {
	t := Task{
		Title:          stringOr(rt["title"], fmt.Sprintf("Task %d", i+1)),
		Description:    stringOr(rt["description"], defaultTaskDescription),
		Priority:       normalizePriority(rt["priority"]),
		Dependencies:   validDependencies(rt["dependencies"], i),
		DeadlineDays:   max(1, intOr(rt["deadline_days_from_start"], i+1)),
		Status:         normalizeStatus(rt["status"]),
		Category:       stringOr(rt["category"], ""),
		SkillsRequired: stringSlice(rt["skills_required"]),
		Deliverables:   stringSlice(rt["deliverables"]),
	}

	hours := defaultEstimatedHours
	if v, ok := rt["estimated_hours"]; ok && v != nil {
		f, ok := toFloat(v)
		if !ok {
			return Task{}, &FieldError{Index: i, Field: "estimated_hours", Value: v}
		}
		hours = f
	}
	t.EstimatedHours = math.Max(minEstimatedHours, hours)
	return t, nil
}

// normalizePriority lowercases and checks against the closed priority set.
func normalizePriority(v any) string {
	s, ok := v.(string)
	if !ok {
		return PriorityMedium
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := priorityWeights[s]; !ok {
		return PriorityMedium
	}
	return s
}

// validDependencies keeps only integer indices in [0, i): references to
// strictly earlier tasks. Self references, forward references, and
// non-integer entries are dropped without error; this is deliberate lossy
// repair, and what makes the list order a topological order.
func validDependencies(v any, i int) []int {
	deps := []int{}
	entries, _ := v.([]any)
	for _, e := range entries {
		d, ok := toIndex(e)
		if !ok {
			continue
		}
		if d >= 0 && d < i {
			deps = append(deps, d)
		}
	}
	return deps
}

// toIndex interprets v as a dependency index. Unlike toInt it never
// truncates: a fractional number does not name a task, and truncating it
// would fabricate a reference to a different task instead of dropping the
// entry. Strings are not indices either.
func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func normalizeStatus(v any) string {
	switch v {
	case "pending", "in_progress", "completed":
		return v.(string)
	default:
		return "pending"
	}
}

// stringOr returns v if it is a string with non-blank content, else def.
func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// intOr coerces v to an int, falling back to def when v is absent or has
// no integer interpretation.
func intOr(v any, def int) int {
	if v == nil {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

// stringSlice keeps the string elements of a raw list value.
func stringSlice(v any) []string {
	out := []string{}
	entries, _ := v.([]any)
	for _, e := range entries {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// toFloat interprets JSON-decoded scalars as a float64. Numeric strings
// count; booleans and everything else do not.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toInt interprets JSON-decoded scalars as an int, truncating fractional
// numbers the way a numeric cast would. Floats beyond the int32 range
// clamp to it: converting them directly would be undefined, and day
// counts never get near the bound.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n > math.MaxInt32 {
			return math.MaxInt32, true
		}
		if n < math.MinInt32 {
			return math.MinInt32, true
		}
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
