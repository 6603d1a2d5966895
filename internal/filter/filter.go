// Package filter reduces a materialized task list by user-selected facets.
// It never touches storage: the list endpoint fetches once and filters the
// in-memory slice, which is cheap at single-user task-list scale.
package filter

import (
	"strconv"

	"github.com/mohammad-ariqat/taskManager/internal/models"
)

// All disables a facet; an empty string is treated the same way so that
// absent query parameters need no special casing.
const All = "all"

// Facets holds the three independent filter dimensions of the task list.
// Category carries the decimal category ID.
type Facets struct {
	Status   string
	Priority string
	Category string
}

// Active reports whether any facet constrains the list.
func (f Facets) Active() bool {
	return active(f.Status) || active(f.Priority) || active(f.Category)
}

// Match reports whether a single task satisfies every active facet.
// A task without a category never matches a concrete category facet.
func (f Facets) Match(task models.Task) bool {
	if active(f.Status) && string(task.Status) != f.Status {
		return false
	}
	if active(f.Priority) && string(task.Priority) != f.Priority {
		return false
	}
	if active(f.Category) {
		if task.CategoryID == nil {
			return false
		}
		if strconv.FormatUint(*task.CategoryID, 10) != f.Category {
			return false
		}
	}
	return true
}

// Apply returns the subsequence of tasks matching every active facet,
// preserving the input order. The input slice is never mutated; with no
// active facet the input is returned as-is.
func Apply(tasks []models.Task, facets Facets) []models.Task {
	if !facets.Active() {
		return tasks
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if facets.Match(task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

func active(value string) bool {
	return value != "" && value != All
}
