package reports

import (
	"sort"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// DefaultDueSoonDays is the look-ahead window for DueSoon.
const DefaultDueSoonDays = 7

// TaskSource is anything that can list tasks in order. *storage.TaskStore
// satisfies it.
type TaskSource interface {
	Tasks() []storage.Task
}

// Generator creates reports from a task source.
type Generator struct {
	src         TaskSource
	dueSoonDays int
	now         func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator(src TaskSource) *Generator {
	return &Generator{src: src, dueSoonDays: DefaultDueSoonDays, now: time.Now}
}

// SetDueSoonDays changes the look-ahead window. Values below zero are
// treated as zero.
func (g *Generator) SetDueSoonDays(days int) {
	g.dueSoonDays = max(days, 0)
}

// SetNowFunc overrides the clock used for GeneratedAt.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// Generate builds a summary as of the given day.
func (g *Generator) Generate(asOf storage.Date) *Summary {
	tasks := g.src.Tasks()
	s := &Summary{
		AsOf:        asOf,
		Total:       len(tasks),
		ByPriority:  []PriorityCount{},
		Overdue:     []Entry{},
		DueSoon:     []Entry{},
		DueSoonDays: g.dueSoonDays,
		GeneratedAt: g.now(),
	}

	counts := map[storage.Priority]*PriorityCount{}
	for i, task := range tasks {
		pc, ok := counts[task.Priority]
		if !ok {
			pc = &PriorityCount{Priority: task.Priority}
			counts[task.Priority] = pc
		}
		pc.Total++

		if task.Completed {
			s.CompletedCount++
			pc.Completed++
			continue
		}
		s.PendingCount++

		if task.Deadline == nil {
			s.NoDeadline++
			continue
		}
		days := asOf.DaysUntil(*task.Deadline)
		entry := Entry{Index: i, Task: task, DaysLeft: days}
		switch {
		case days < 0:
			s.Overdue = append(s.Overdue, entry)
		case days <= g.dueSoonDays:
			s.DueSoon = append(s.DueSoon, entry)
		}
	}

	for _, pc := range counts {
		s.ByPriority = append(s.ByPriority, *pc)
	}
	sort.Slice(s.ByPriority, func(i, j int) bool {
		a, b := s.ByPriority[i].Priority, s.ByPriority[j].Priority
		if ra, rb := priorityRank(a), priorityRank(b); ra != rb {
			return ra > rb
		}
		return a < b
	})

	byDays := func(entries []Entry) {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].DaysLeft < entries[j].DaysLeft })
	}
	byDays(s.Overdue)
	byDays(s.DueSoon)

	return s
}

// priorityRank orders high > medium > low > anything else.
func priorityRank(p storage.Priority) int {
	switch p {
	case storage.PriorityHigh:
		return 3
	case storage.PriorityMedium:
		return 2
	case storage.PriorityLow:
		return 1
	default:
		return 0
	}
}
