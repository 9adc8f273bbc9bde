package backup

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

// newTestManager returns a manager over a task file holding two tasks, with
// a clock that advances one second per backup.
func newTestManager(t *testing.T) (*Manager, *storage.TaskStore) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, storage.DefaultFile))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := store.Add("Task 1", storage.PriorityHigh, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("Task 2", storage.PriorityLow, nil); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkDone(1); err != nil {
		t.Fatal(err)
	}

	m := NewManager(store.Path(), filepath.Join(dir, "backups"), "test")
	clock := time.Date(2025, 4, 15, 9, 30, 0, 0, time.Local)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m, store
}

func TestCreate(t *testing.T) {
	m, store := newTestManager(t)

	name, err := m.Create()
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if name != "2025-04-15_093001_000" {
		t.Errorf("name = %q", name)
	}

	copyPath := filepath.Join(m.Dir(), name, storage.DefaultFile)
	want, _ := os.ReadFile(store.Path())
	got, err := os.ReadFile(copyPath)
	if err != nil {
		t.Fatalf("backup copy missing: %v", err)
	}
	if string(got) != string(want) {
		t.Error("backup copy differs from task file")
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 || backups[0].Tasks != 2 || backups[0].Completed != 1 {
		t.Errorf("List() = %+v", backups)
	}
}

func TestCreate_MissingFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, storage.DefaultFile), filepath.Join(dir, "backups"), "test")
	if _, err := m.Create(); err == nil {
		t.Error("Create() expected error when there is no task file")
	}
}

func TestCreate_CorruptFile(t *testing.T) {
	m, store := newTestManager(t)
	if err := os.WriteFile(store.Path(), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := m.Create()
	var pe *storage.PersistenceError
	if !errors.As(err, &pe) {
		t.Errorf("Create() error = %v, want *storage.PersistenceError", err)
	}
}

func TestList_NewestFirst(t *testing.T) {
	m, _ := newTestManager(t)
	for i := 0; i < 3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatal(err)
		}
	}
	// Stray entries are ignored.
	if err := os.MkdirAll(filepath.Join(m.Dir(), "not-a-backup"), 0700); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	if backups[0].Name != "2025-04-15_093003_000" || backups[2].Name != "2025-04-15_093001_000" {
		t.Errorf("order = %s, %s, %s", backups[0].Name, backups[1].Name, backups[2].Name)
	}
}

func TestList_NoDirectory(t *testing.T) {
	m := NewManager("x.json", filepath.Join(t.TempDir(), "none"), "test")
	backups, err := m.List()
	if err != nil || len(backups) != 0 {
		t.Errorf("List() = %v, %v; want empty", backups, err)
	}
}

func TestRestore(t *testing.T) {
	m, store := newTestManager(t)
	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Remove(0); err != nil {
		t.Fatal(err)
	}
	safety, err := m.Restore(name)
	if err != nil {
		t.Fatalf("Restore() error: %v", err)
	}
	if safety == "" {
		t.Error("expected a safety backup name")
	}

	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 2 {
		t.Errorf("Len() after restore = %d, want 2", store.Len())
	}
}

func TestRestore_RejectsInvalidCopy(t *testing.T) {
	m, store := newTestManager(t)
	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(m.Dir(), name, storage.DefaultFile)
	if err := os.WriteFile(bad, []byte(`[{"title": 1}]`), 0600); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(store.Path())

	if _, err := m.Restore(name); err == nil {
		t.Fatal("Restore() expected error for invalid backup")
	}
	after, _ := os.ReadFile(store.Path())
	if string(before) != string(after) {
		t.Error("task file changed after a rejected restore")
	}
}

func TestRestore_OverCorruptFile(t *testing.T) {
	m, store := newTestManager(t)
	name, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.Path(), []byte("{corrupt"), 0600); err != nil {
		t.Fatal(err)
	}

	safety, err := m.Restore(name)
	if err != nil {
		t.Fatalf("Restore() over corrupt file error: %v", err)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the corrupt file")
	}
	kept, err := os.ReadFile(filepath.Join(m.Dir(), safety, storage.DefaultFile))
	if err != nil {
		t.Fatalf("safety copy missing: %v", err)
	}
	if string(kept) != "{corrupt" {
		t.Errorf("safety copy = %q, want the corrupt bytes", kept)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load() after restore error: %v", err)
	}
	if store.Len() != 2 {
		t.Errorf("Len() after restore = %d, want 2", store.Len())
	}
}

func TestRestore_InvalidName(t *testing.T) {
	m, _ := newTestManager(t)
	for _, name := range []string{"", "../etc", "2025-04-15_093001_000/../x", "latest"} {
		if _, err := m.Restore(name); err == nil {
			t.Errorf("Restore(%q) expected error", name)
		}
	}
}

func TestRestoreLatest(t *testing.T) {
	m, store := newTestManager(t)
	if _, err := m.RestoreLatest(); !errors.Is(err, ErrNoBackups) {
		t.Errorf("RestoreLatest() error = %v, want ErrNoBackups", err)
	}

	if _, err := m.Create(); err != nil {
		t.Fatal(err)
	}
	if err := store.Add("Task 3", storage.PriorityMedium, nil); err != nil {
		t.Fatal(err)
	}
	latest, err := m.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Remove(0); err != nil {
		t.Fatal(err)
	}

	got, err := m.RestoreLatest()
	if err != nil {
		t.Fatalf("RestoreLatest() error: %v", err)
	}
	if got != latest {
		t.Errorf("restored %q, want %q", got, latest)
	}
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
}

func TestPrune(t *testing.T) {
	m, _ := newTestManager(t)
	for i := 0; i < 5; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	backups, _ := m.List()
	if len(backups) != 2 || backups[0].Name != "2025-04-15_093005_000" {
		t.Errorf("remaining = %+v", backups)
	}

	if _, err := m.Prune(-1); err == nil {
		t.Error("Prune(-1) expected error")
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"2025-12-15_143022", true},
		{"2025-12-15_143022_123", true},
		{"2025-12-15_143022_12", false},
		{"2025-12-15", false},
		{"backup", false},
	}
	for _, tc := range tests {
		_, err := parseName(tc.name)
		if (err == nil) != tc.valid {
			t.Errorf("parseName(%q) error = %v, valid = %v", tc.name, err, tc.valid)
		}
	}
}
