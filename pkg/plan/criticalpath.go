package plan

// CriticalPath returns one approximate longest chain of dependent tasks by
// finish time, as task indices in start-to-end order. Effort converts to
// days at eight hours per day.
//
// This is a heuristic, not full critical-path-method scheduling: no slack
// or float is computed, and ties break deterministically on the first
// maximal element found (earliest index for the end task, earliest entry
// in the dependency list during the walk back).
//
// An empty task list yields an empty path.
func CriticalPath(tasks []Task) []int {
	if len(tasks) == 0 {
		return []int{}
	}

	// Earliest finish per task; single pass is safe for the same reason
	// as Sequence: dependencies precede dependents in list order.
	finish := make([]float64, len(tasks))
	for i, t := range tasks {
		start := 0.0
		for _, d := range t.Dependencies {
			if finish[d] > start {
				start = finish[d]
			}
		}
		finish[i] = start + t.EstimatedHours/8
	}

	end := 0
	for i := 1; i < len(tasks); i++ {
		if finish[i] > finish[end] {
			end = i
		}
	}

	// Walk back through the latest-finishing dependency at each step.
	var path []int
	for cur := end; ; {
		path = append(path, cur)
		deps := tasks[cur].Dependencies
		if len(deps) == 0 {
			break
		}
		next := deps[0]
		for _, d := range deps[1:] {
			if finish[d] > finish[next] {
				next = d
			}
		}
		cur = next
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
