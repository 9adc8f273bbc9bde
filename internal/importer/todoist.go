package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// TodoistImporter handles importing from Todoist CSV template exports.
type TodoistImporter struct{}

// Name returns the importer name.
func (t *TodoistImporter) Name() string {
	return "todoist"
}

// Preview parses a Todoist CSV export. Only rows with TYPE "task" become
// candidates; notes and sections are skipped.
func (t *TodoistImporter) Preview(reader io.Reader) ([]Candidate, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // UTF-8 BOM, common in exports
		}
		cols[strings.ToUpper(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"TYPE", "CONTENT"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	var tasks []Candidate
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		if !strings.EqualFold(field("TYPE"), "task") {
			continue
		}
		title := field("CONTENT")
		if title == "" {
			continue
		}
		tasks = append(tasks, Candidate{
			Title:    title,
			Priority: mapTodoistPriority(field("PRIORITY")),
			Deadline: parseTodoistDate(field("DATE")),
		})
	}
	return tasks, nil
}

// mapTodoistPriority converts Todoist priority to ours.
// Todoist: 1 = urgent (highest), 2 = high, 3 = medium, 4 = normal (lowest).
// Anything else is left empty so the store default applies.
func mapTodoistPriority(priority string) storage.Priority {
	switch priority {
	case "1", "2":
		return storage.PriorityHigh
	case "3":
		return storage.PriorityMedium
	case "4":
		return storage.PriorityLow
	default:
		return ""
	}
}

var todoistDateLayouts = []string{
	"2006-01-02",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"01/02/2006",
	"02/01/2006",
}

// parseTodoistDate accepts the date spellings Todoist writes. Recurring
// phrases such as "every monday" have no fixed day and yield nil.
func parseTodoistDate(s string) *storage.Date {
	if s == "" {
		return nil
	}
	for _, layout := range todoistDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := storage.DateOf(t)
			return &d
		}
	}
	return nil
}
