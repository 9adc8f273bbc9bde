// Package storage implements the task store: an ordered list of tasks kept in
// memory and mirrored to a single JSON file.
//
// Tasks are addressed by their current 0-based position. Removing or sorting
// tasks shifts positions, so an index observed before such a call may point
// at a different task afterwards.
package storage

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/shikhar1146-netizen/Projects/internal/fsutil"

	"github.com/charmbracelet/log"
)

// DefaultFile is the task file name used when no path is configured.
const DefaultFile = "todo_data.json"

const dataFilePerm os.FileMode = 0600

// SaveContext describes a completed save for the OnSave hook.
type SaveContext struct {
	Path      string // file written
	Operation string // "add", "remove", "done" or "save"
	Title     string // title of the affected task, empty for a plain save
	Count     int    // number of tasks written
}

// TaskStore owns the ordered task list and its persisted file. It is not
// safe for concurrent use; one process drives one store sequentially.
type TaskStore struct {
	path   string
	tasks  []Task
	strict bool
	backup bool
	logger *log.Logger
	onSave func(SaveContext)
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithStrictValidation makes Add reject empty titles and priorities outside
// low/medium/high with a *ValidationError.
func WithStrictValidation(strict bool) Option {
	return func(s *TaskStore) { s.strict = strict }
}

// WithBackup keeps a copy of the previous file contents at <path>.bak on
// every save.
func WithBackup(enabled bool) Option {
	return func(s *TaskStore) { s.backup = enabled }
}

// WithLogger sets the logger used for load and save diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *TaskStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open creates a store for path and loads it. A missing file yields an empty
// store; an unreadable or malformed one yields a *PersistenceError.
func Open(path string, opts ...Option) (*TaskStore, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	s := &TaskStore{
		path:   path,
		tasks:  []Task{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetOnSave registers a callback run after each successful save.
func (s *TaskStore) SetOnSave(fn func(SaveContext)) {
	s.onSave = fn
}

// Path returns the persisted file path.
func (s *TaskStore) Path() string {
	return s.path
}

// Load replaces the in-memory tasks with the file contents. On error the
// current tasks are left as they were.
func (s *TaskStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("task file not found, starting empty", "path", s.path)
		s.tasks = []Task{}
		return nil
	}
	if err != nil {
		return &PersistenceError{Path: s.path, Op: "read", Err: err}
	}

	if !json.Valid(data) {
		return &PersistenceError{Path: s.path, Op: "parse", Err: errors.New("not valid JSON")}
	}
	if err := validateTaskFile(data); err != nil {
		return &PersistenceError{Path: s.path, Op: "validate", Err: err}
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return &PersistenceError{Path: s.path, Op: "parse", Err: err}
	}
	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		if tasks[i].Priority != "" {
			tasks[i].Priority = NormalizePriority(string(tasks[i].Priority))
		}
	}

	s.tasks = tasks
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Save overwrites the file with the current tasks, in order.
func (s *TaskStore) Save() error {
	return s.save("save", "")
}

func (s *TaskStore) save(op, title string) error {
	data, err := encodeTasks(s.tasks)
	if err != nil {
		return &PersistenceError{Path: s.path, Op: "encode", Err: err}
	}

	if s.backup {
		if err := fsutil.BackupFile(s.path, dataFilePerm); err != nil {
			s.logger.Warn("could not back up task file", "path", s.path, "err", err)
		}
	}

	if err := fsutil.WriteFileAtomic(s.path, data, dataFilePerm); err != nil {
		return &PersistenceError{Path: s.path, Op: "write", Err: err}
	}
	s.logger.Debug("saved tasks", "path", s.path, "op", op, "count", len(s.tasks))

	if s.onSave != nil {
		s.onSave(SaveContext{Path: s.path, Operation: op, Title: title, Count: len(s.tasks)})
	}
	return nil
}

// commit saves after a mutation and restores prev if the write fails, so
// memory never runs ahead of the file.
func (s *TaskStore) commit(prev []Task, op, title string) error {
	if err := s.save(op, title); err != nil {
		s.tasks = prev
		return err
	}
	return nil
}

func (s *TaskStore) snapshot() []Task {
	prev := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		prev[i] = t.clone()
	}
	return prev
}

// Add appends a new, not yet completed task and saves. priority is
// normalized with NormalizePriority; deadline may be nil.
func (s *TaskStore) Add(title string, priority Priority, deadline *Date) error {
	p := NormalizePriority(string(priority))
	if s.strict {
		if strings.TrimSpace(title) == "" {
			return &ValidationError{Field: "title", Value: title, Reason: "must not be empty"}
		}
		if !p.Known() {
			return &ValidationError{Field: "priority", Value: string(p), Reason: "must be low, medium or high"}
		}
	}

	task := Task{Title: title, Priority: p}
	if deadline != nil {
		d := *deadline
		task.Deadline = &d
	}

	prev := s.snapshot()
	s.tasks = append(s.tasks, task)
	return s.commit(prev, "add", title)
}

// Remove deletes the task at index and saves. An index outside the list is
// ignored: nothing changes and nothing is written.
func (s *TaskStore) Remove(index int) error {
	if !s.inRange(index) {
		return nil
	}
	prev := s.snapshot()
	title := s.tasks[index].Title
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return s.commit(prev, "remove", title)
}

// MarkDone sets the task at index as completed and saves. Completion is one
// way; there is no operation that clears it. An index outside the list is
// ignored.
func (s *TaskStore) MarkDone(index int) error {
	if !s.inRange(index) {
		return nil
	}
	prev := s.snapshot()
	s.tasks[index].Completed = true
	return s.commit(prev, "done", s.tasks[index].Title)
}

// SortByDeadline orders tasks by ascending deadline. Tasks without a deadline
// go last; ties keep their relative order.
//
// Unlike every other mutator this does not save: the file keeps the old
// order until the next Add, Remove, MarkDone or Save.
func (s *TaskStore) SortByDeadline() {
	slices.SortStableFunc(s.tasks, compareDeadline)
}

func compareDeadline(a, b Task) int {
	switch {
	case a.Deadline == nil && b.Deadline == nil:
		return 0
	case a.Deadline == nil:
		return 1
	case b.Deadline == nil:
		return -1
	case a.Deadline.Before(*b.Deadline):
		return -1
	case b.Deadline.Before(*a.Deadline):
		return 1
	}
	return 0
}

// Search returns the tasks whose title contains keyword, ignoring case, in
// list order. An empty keyword matches every task.
func (s *TaskStore) Search(keyword string) []Task {
	needle := strings.ToLower(keyword)
	matches := []Task{}
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			matches = append(matches, t.clone())
		}
	}
	return matches
}

// Tasks returns a copy of all tasks in order.
func (s *TaskStore) Tasks() []Task {
	return s.snapshot()
}

// Task returns a copy of the task at index.
func (s *TaskStore) Task(index int) (Task, bool) {
	if !s.inRange(index) {
		return Task{}, false
	}
	return s.tasks[index].clone(), true
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

func (s *TaskStore) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
