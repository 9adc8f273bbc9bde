package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shikhar1146-netizen/Projects/internal/config"
	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

func TestView_Empty(t *testing.T) {
	m := createTestModel(t, createTestStore(t))

	out := m.View()
	if !strings.Contains(out, "TO-DO LIST") {
		t.Errorf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "No tasks yet") {
		t.Errorf("missing empty notice:\n%s", out)
	}
}

func TestView_ListsTasks(t *testing.T) {
	store := createTestStore(t, "Buy milk", "Pay rent")
	d := storage.Date{Year: 2025, Month: 2, Day: 20}
	if err := store.Add("File taxes", storage.PriorityHigh, &d); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkDone(1); err != nil {
		t.Fatal(err)
	}
	m := createTestModel(t, store)

	out := m.View()
	for _, want := range []string{"> 0. [ ] Buy milk", "1. [✓] Pay rent", "2. [ ] File taxes", "high", "⏰ 2025-02-20", "1/3 done"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}
}

func TestAddFlow(t *testing.T) {
	store := createTestStore(t)
	m := createTestModel(t, store)

	press(m, "a")
	if m.mode != modeAddTitle {
		t.Fatalf("mode = %v, want add title", m.mode)
	}
	if !strings.Contains(m.View(), "Task title:") {
		t.Error("title prompt not shown")
	}
	typeText(m, "Buy milk")
	typeText(m, "HIGH")
	typeText(m, "2025-03-01")

	if m.mode != modeList {
		t.Fatalf("mode = %v, want list", m.mode)
	}
	task, ok := store.Task(0)
	if !ok {
		t.Fatal("task was not added")
	}
	if task.Title != "Buy milk" || task.Priority != storage.PriorityHigh || task.Deadline == nil || task.Deadline.String() != "2025-03-01" {
		t.Errorf("task = %+v", task)
	}
	if !strings.Contains(m.View(), "Task added.") {
		t.Error("missing status after add")
	}

	reopened, err := storage.Open(store.Path())
	if err != nil || reopened.Len() != 1 {
		t.Errorf("task not persisted: len=%d err=%v", reopened.Len(), err)
	}
}

func TestAddFlow_Defaults(t *testing.T) {
	store := createTestStore(t)
	m := createTestModel(t, store)

	press(m, "a")
	typeText(m, "Call mom")
	typeText(m, "")
	typeText(m, "")

	task, ok := store.Task(0)
	if !ok {
		t.Fatal("task was not added")
	}
	if task.Priority != storage.PriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}
	if task.Deadline != nil {
		t.Errorf("Deadline = %v, want nil", task.Deadline)
	}
}

func TestAddFlow_BadDeadlineReprompts(t *testing.T) {
	store := createTestStore(t)
	m := createTestModel(t, store)

	press(m, "a")
	typeText(m, "Renew passport")
	typeText(m, "low")
	typeText(m, "next week")

	if m.mode != modeAddDeadline {
		t.Fatalf("mode = %v, want deadline prompt again", m.mode)
	}
	if store.Len() != 0 {
		t.Fatal("task added despite bad deadline")
	}
	if !strings.Contains(m.View(), "YYYY-MM-DD") {
		t.Errorf("missing date hint:\n%s", m.View())
	}

	typeText(m, "2025-04-15")
	if store.Len() != 1 {
		t.Fatal("task not added after valid deadline")
	}
	if !strings.Contains(m.View(), "Task added.") {
		t.Error("stale error status after successful add")
	}
}

func TestAddFlow_EmptyTitleCancels(t *testing.T) {
	store := createTestStore(t)
	m := createTestModel(t, store)

	press(m, "a")
	typeText(m, "   ")
	if m.mode != modeList || store.Len() != 0 {
		t.Errorf("mode = %v, len = %d; want list and no task", m.mode, store.Len())
	}
}

func TestAddFlow_Escape(t *testing.T) {
	store := createTestStore(t)
	m := createTestModel(t, store)

	press(m, "a")
	typeText(m, "Half typed")
	press(m, "esc")
	if m.mode != modeList || store.Len() != 0 {
		t.Errorf("mode = %v, len = %d; want list and no task", m.mode, store.Len())
	}
}

func TestAddFlow_StrictValidation(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), storage.DefaultFile), storage.WithStrictValidation(true))
	if err != nil {
		t.Fatal(err)
	}
	m := createTestModel(t, store)

	press(m, "a")
	typeText(m, "Something")
	typeText(m, "urgent")
	cmd := typeText(m, "")

	if isQuit(cmd) {
		t.Fatal("validation error should not quit")
	}
	if store.Len() != 0 {
		t.Error("task with unknown priority was added")
	}
	if !strings.Contains(m.View(), "invalid priority") {
		t.Errorf("missing validation message:\n%s", m.View())
	}
}

func TestRemoveAtCursor(t *testing.T) {
	store := createTestStore(t, "A", "B", "C")
	m := createTestModel(t, store)

	press(m, "j", "x")
	if titles(store) != "A,C" {
		t.Errorf("tasks = %s, want A,C", titles(store))
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	press(m, "x")
	if m.cursor != 0 {
		t.Errorf("cursor = %d after removing last row, want 0", m.cursor)
	}
	press(m, "x", "x")
	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
}

func TestMarkDone(t *testing.T) {
	store := createTestStore(t, "A", "B")
	m := createTestModel(t, store)

	press(m, "down", "d")
	task, _ := store.Task(1)
	if !task.Completed {
		t.Error("task 1 not marked done")
	}
	first, _ := store.Task(0)
	if first.Completed {
		t.Error("task 0 should not change")
	}
}

func TestCursorBounds(t *testing.T) {
	m := createTestModel(t, createTestStore(t, "A", "B"))

	press(m, "up", "up")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	press(m, "j", "j", "j")
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestSortIsNotSavedUntilWrite(t *testing.T) {
	store := createTestStore(t)
	late := storage.Date{Year: 2025, Month: 6, Day: 1}
	early := storage.Date{Year: 2025, Month: 1, Day: 1}
	for _, add := range []struct {
		title string
		d     *storage.Date
	}{{"none", nil}, {"late", &late}, {"early", &early}} {
		if err := store.Add(add.title, storage.PriorityLow, add.d); err != nil {
			t.Fatal(err)
		}
	}
	m := createTestModel(t, store)

	press(m, "s")
	if titles(store) != "early,late,none" {
		t.Errorf("memory order = %s", titles(store))
	}
	if !strings.Contains(m.View(), "not saved") {
		t.Error("sort status should say the order is unsaved")
	}
	if got := fileTitles(t, store.Path()); got != "none,late,early" {
		t.Errorf("file order after sort = %s, want unchanged", got)
	}

	press(m, "w")
	if got := fileTitles(t, store.Path()); got != "early,late,none" {
		t.Errorf("file order after save = %s", got)
	}
	if !strings.Contains(m.View(), "Saved 3 tasks.") {
		t.Error("missing save status")
	}
}

func TestSearch(t *testing.T) {
	m := createTestModel(t, createTestStore(t, "Buy milk", "Pay rent", "Milkshake"))

	press(m, "/")
	typeText(m, "MILK")
	if m.mode != modeSearchResults {
		t.Fatalf("mode = %v, want search results", m.mode)
	}
	out := m.View()
	if !strings.Contains(out, "- Buy milk") || !strings.Contains(out, "- Milkshake") {
		t.Errorf("missing matches:\n%s", out)
	}
	if strings.Contains(out, "Pay rent") {
		t.Errorf("unexpected match:\n%s", out)
	}

	press(m, "esc")
	if m.mode != modeList {
		t.Errorf("mode = %v after esc, want list", m.mode)
	}
}

func TestSearch_NoMatches(t *testing.T) {
	m := createTestModel(t, createTestStore(t, "Buy milk"))

	press(m, "/")
	typeText(m, "zzz")
	if !strings.Contains(m.View(), "No matches found.") {
		t.Errorf("missing no-match notice:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := createTestModel(t, createTestStore(t))
	if !isQuit(press(m, "q")) {
		t.Error("q should quit")
	}

	// In a prompt q is text, but ctrl+c still quits.
	press(m, "a", "q")
	if m.mode != modeAddTitle || m.input.Value() != "q" {
		t.Errorf("q inside a prompt should be typed, mode = %v value = %q", m.mode, m.input.Value())
	}
	if !isQuit(press(m, "ctrl+c")) {
		t.Error("ctrl+c should quit")
	}
}

func TestPersistenceErrorStopsProgram(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	store, err := storage.Open(filepath.Join(dir, storage.DefaultFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Add("A", storage.PriorityLow, nil); err != nil {
		t.Fatal(err)
	}
	m := createTestModel(t, store)

	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}
	cmd := press(m, "d")
	if !isQuit(cmd) {
		t.Error("a failed save should quit")
	}
	var pe *storage.PersistenceError
	if !errors.As(m.Err(), &pe) {
		t.Errorf("Err() = %v, want *storage.PersistenceError", m.Err())
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("error not rendered")
	}
}

func TestCustomKeys(t *testing.T) {
	setupTest(t)
	store := createTestStore(t, "A", "B")
	m := New(store, nil, &config.KeysConfig{Remove: "r", Done: "space"})

	press(m, "x")
	if store.Len() != 2 {
		t.Error("default remove key should be replaced")
	}
	press(m, "r")
	if store.Len() != 1 {
		t.Error("custom remove key did not remove")
	}
	press(m, " ")
	task, _ := store.Task(0)
	if !task.Completed {
		t.Error("space should mark done")
	}
}

func TestHelpToggle(t *testing.T) {
	m := createTestModel(t, createTestStore(t))
	short := m.View()
	press(m, "?")
	full := m.View()
	if !strings.Contains(full, "sort by deadline") {
		t.Errorf("full help missing sort binding:\n%s", full)
	}
	if short == full {
		t.Error("help toggle did not change the view")
	}
}

func titles(store *storage.TaskStore) string {
	var names []string
	for _, t := range store.Tasks() {
		names = append(names, t.Title)
	}
	return strings.Join(names, ",")
}

func fileTitles(t *testing.T, path string) string {
	t.Helper()
	s, err := storage.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	return titles(s)
}
