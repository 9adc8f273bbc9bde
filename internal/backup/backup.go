// Package backup keeps timestamped copies of the task file and restores them.
//
// Each backup is a directory named after its creation time holding a copy of
// the task file and a manifest:
//
//	backups/2025-04-15_093012_481/todo_data.json
//	backups/2025-04-15_093012_481/manifest.json
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shikhar1146-netizen/Projects/internal/fsutil"
	"github.com/shikhar1146-netizen/Projects/internal/storage"
)

const (
	ManifestVersion = "1"
	ManifestFile    = "manifest.json"
)

const (
	nameLayout = "2006-01-02_150405"
	filePerm   = 0600
)

// ErrNoBackups is returned by RestoreLatest when the backup directory is empty.
var ErrNoBackups = errors.New("no backups available")

// Manifest is written next to each backed-up file.
type Manifest struct {
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	AppVersion string    `json:"app_version"`
	File       string    `json:"file"`
	Tasks      int       `json:"tasks"`
	Completed  int       `json:"completed"`
}

// Info summarizes one backup for listing.
type Info struct {
	Name      string
	Path      string
	CreatedAt time.Time
	Tasks     int
	Completed int
}

// Manager creates, lists, restores and prunes backups of one task file.
type Manager struct {
	dataFile   string
	backupDir  string
	appVersion string
	now        func() time.Time
}

// NewManager returns a manager for dataFile that stores backups in backupDir.
func NewManager(dataFile, backupDir, appVersion string) *Manager {
	return &Manager{
		dataFile:   dataFile,
		backupDir:  backupDir,
		appVersion: appVersion,
		now:        time.Now,
	}
}

// Dir returns the backup directory.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create copies the task file into a new backup and returns its name. The
// file is loaded first so a corrupt file is never backed up as good.
func (m *Manager) Create() (string, error) {
	store, err := storage.Open(m.dataFile)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(m.dataFile); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("nothing to back up: %s does not exist", m.dataFile)
	}

	return m.snapshot(store)
}

// snapshot copies the task file into a new backup directory. store supplies
// the manifest counts; nil leaves them at zero for a file that did not load.
func (m *Manager) snapshot(store *storage.TaskStore) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	now, name, dir, err := m.reserve()
	if err != nil {
		return "", err
	}

	base := filepath.Base(m.dataFile)
	if err := fsutil.CopyFile(m.dataFile, filepath.Join(dir, base), filePerm); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("copy %s: %w", base, err)
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		File:       base,
	}
	if store != nil {
		manifest.Tasks = store.Len()
		for _, t := range store.Tasks() {
			if t.Completed {
				manifest.Completed++
			}
		}
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	if err := fsutil.WriteFileAtomic(filepath.Join(dir, ManifestFile), data, filePerm); err != nil {
		_ = os.RemoveAll(dir)
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return name, nil
}

// reserve creates a fresh directory named after the current time, moving
// forward a millisecond at a time if that name is taken.
func (m *Manager) reserve() (time.Time, string, string, error) {
	now := m.now().Truncate(time.Millisecond)
	for range 1000 {
		name := fmt.Sprintf("%s_%03d", now.Format(nameLayout), now.Nanosecond()/int(time.Millisecond))
		dir := filepath.Join(m.backupDir, name)
		err := os.Mkdir(dir, 0700)
		if err == nil {
			return now, name, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return time.Time{}, "", "", fmt.Errorf("create backup: %w", err)
		}
		now = now.Add(time.Millisecond)
	}
	return time.Time{}, "", "", fmt.Errorf("create backup: no free name in %s", m.backupDir)
}

// List returns the backups, newest first. Directories that are neither
// described by a manifest nor named like a backup are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if info, err := m.info(entry.Name()); err == nil {
			backups = append(backups, *info)
		}
	}
	sort.SliceStable(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func (m *Manager) info(name string) (*Info, error) {
	created, err := parseName(name)
	if err != nil {
		return nil, err
	}
	info := &Info{Name: name, Path: filepath.Join(m.backupDir, name), CreatedAt: created}

	var manifest Manifest
	if data, err := os.ReadFile(filepath.Join(info.Path, ManifestFile)); err == nil {
		if json.Unmarshal(data, &manifest) == nil {
			info.CreatedAt = manifest.CreatedAt
			info.Tasks = manifest.Tasks
			info.Completed = manifest.Completed
		}
	}
	return info, nil
}

// Restore replaces the task file with the copy in backup name. The copy must
// load as a valid task file; the current file is backed up first, corrupt or
// not, so the restore can itself be undone. It returns the name of that safety backup,
// or "" when there was no current file.
func (m *Manager) Restore(name string) (string, error) {
	if _, err := parseName(name); err != nil || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid backup name: %q", name)
	}
	src := filepath.Join(m.backupDir, name, filepath.Base(m.dataFile))
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("backup %s has no %s: %w", name, filepath.Base(m.dataFile), err)
	}
	if _, err := storage.Open(src); err != nil {
		return "", fmt.Errorf("backup %s is not a valid task file: %w", name, err)
	}

	var safety string
	if _, err := os.Stat(m.dataFile); err == nil {
		// The current file is kept even when it no longer loads.
		current, err := storage.Open(m.dataFile)
		if err != nil {
			current = nil
		}
		s, err := m.snapshot(current)
		if err != nil {
			return "", fmt.Errorf("safety backup: %w", err)
		}
		safety = s
	}

	if err := fsutil.CopyFile(src, m.dataFile, filePerm); err != nil {
		return safety, fmt.Errorf("restore %s: %w", name, err)
	}
	return safety, nil
}

// RestoreLatest restores the newest backup and returns its name.
func (m *Manager) RestoreLatest() (string, error) {
	backups, err := m.List()
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", ErrNoBackups
	}
	if _, err := m.Restore(backups[0].Name); err != nil {
		return "", err
	}
	return backups[0].Name, nil
}

// Prune deletes all but the keep newest backups and reports how many it
// removed.
func (m *Manager) Prune(keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}
	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.RemoveAll(b.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// parseName reads the creation time out of a backup directory name, with or
// without the millisecond suffix.
func parseName(name string) (time.Time, error) {
	base, ms, found := strings.Cut(name, "_")
	if !found {
		return time.Time{}, fmt.Errorf("invalid backup name: %q", name)
	}
	clock, millis, hasMillis := strings.Cut(ms, "_")

	t, err := time.ParseInLocation(nameLayout, base+"_"+clock, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if hasMillis {
		n, err := strconv.Atoi(millis)
		if err != nil || len(millis) != 3 {
			return time.Time{}, fmt.Errorf("invalid backup name: %q", name)
		}
		t = t.Add(time.Duration(n) * time.Millisecond)
	}
	return t, nil
}
