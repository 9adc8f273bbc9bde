// Package reports summarizes the task list: completion counts, priority
// breakdown, and what is overdue or coming due relative to a given day.
package reports

import (
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// Summary contains aggregated task data as of one day.
type Summary struct {
	AsOf           storage.Date    `json:"as_of"`
	Total          int             `json:"total"`
	CompletedCount int             `json:"completed_count"`
	PendingCount   int             `json:"pending_count"`
	NoDeadline     int             `json:"no_deadline"`
	ByPriority     []PriorityCount `json:"by_priority"`
	Overdue        []Entry         `json:"overdue"`
	DueSoon        []Entry         `json:"due_soon"`
	DueSoonDays    int             `json:"due_soon_days"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// PriorityCount represents task counts grouped by priority.
type PriorityCount struct {
	Priority  storage.Priority `json:"priority"`
	Total     int              `json:"total"`
	Completed int              `json:"completed"`
}

// Entry is a pending task with a deadline, with its list position at the
// time the report was made.
type Entry struct {
	Index    int          `json:"index"`
	Task     storage.Task `json:"task"`
	DaysLeft int          `json:"days_left"` // negative when overdue
}
