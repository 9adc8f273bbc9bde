// Package importer brings tasks in from other to-do tools. Imported tasks go
// through the store's own Add and MarkDone, so they land at the end of the
// list and are saved exactly like tasks typed in by hand.
package importer

import (
	"fmt"
	"io"
	"sort"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// Result contains statistics about an import operation.
type Result struct {
	Imported int      // tasks appended to the store
	Errors   []string // per-task failures; the rest of the import continues
}

// Candidate is a task parsed from a foreign format, before import.
type Candidate struct {
	Title    string
	Priority storage.Priority // empty means the store default
	Deadline *storage.Date
	Done     bool
}

// Store is the part of *storage.TaskStore an import needs.
type Store interface {
	Add(title string, priority storage.Priority, deadline *storage.Date) error
	MarkDone(index int) error
	Len() int
}

// Importer parses one foreign format.
type Importer interface {
	// Preview parses tasks from r without touching any store.
	Preview(r io.Reader) ([]Candidate, error)

	// Name returns the importer name (e.g., "todoist", "taskwarrior").
	Name() string
}

var importers = map[string]Importer{
	"todoist":     &TodoistImporter{},
	"taskwarrior": &TaskwarriorImporter{},
}

// Get returns the importer for format, or nil if there is none.
func Get(format string) Importer {
	return importers[format]
}

// SupportedFormats returns the importer names, sorted.
func SupportedFormats() []string {
	names := make([]string, 0, len(importers))
	for name := range importers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Import parses r with imp and appends every candidate to store. A completed
// candidate is added and then marked done at its new index.
func Import(imp Importer, r io.Reader, store Store) (*Result, error) {
	candidates, err := imp.Preview(r)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, c := range candidates {
		if err := store.Add(c.Title, c.Priority, c.Deadline); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Title, err))
			continue
		}
		result.Imported++

		if c.Done {
			if err := store.MarkDone(store.Len() - 1); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to mark %s as done: %v", c.Title, err))
			}
		}
	}
	return result, nil
}
