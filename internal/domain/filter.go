package domain

import "sort"

// FilterByStatus keeps tasks with the given status, preserving order.
func FilterByStatus(tasks []Task, s Status) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

// FilterByPriority keeps tasks with the given priority, preserving order.
func FilterByPriority(tasks []Task, p Priority) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// SortByPriority returns a copy of tasks ordered by priority rank, high first
// when desc is true. Equal ranks keep their relative order.
func SortByPriority(tasks []Task, desc bool) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return sorted[i].Priority.Rank() > sorted[j].Priority.Rank()
		}
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}
