// Package store persists the three collections (users, projects, timesheets)
// as flat JSON files, one per collection. Every operation reads or rewrites a
// collection wholesale; there is no partial update.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/sumitsharma12k/timesheet-portal/internal/models"
)

const (
	usersFile      = "users.json"
	projectsFile   = "projects.json"
	timesheetsFile = "timesheets.json"
)

type Store struct {
	dir string
}

// New returns a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store is rooted at.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// fileLock returns the advisory lock guarding one collection file. Load takes
// it shared, save exclusive, so concurrent processes cannot interleave a
// read-modify-write or observe a half-written file.
func (s *Store) fileLock(name string) *flock.Flock {
	return flock.New(s.path(name) + ".lock")
}

// load reads a collection into out (a pointer to a slice). A missing file is
// an empty collection. Malformed content is logged and treated as empty so
// callers proceed on empty data instead of aborting.
func (s *Store) load(name string, out any) error {
	lock := s.fileLock(name)
	if err := lock.RLock(); err != nil {
		return fmt.Errorf("store: lock %s: %w", name, err)
	}
	defer lock.Unlock()

	path := s.path(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("store: invalid JSON, treating collection as empty",
			"file", path, "error", err)
		return nil
	}
	return nil
}

// save serializes the full collection (4-space indent, matching the files the
// system inherits) and replaces the target via temp file + rename.
func (s *Store) save(name string, v any) error {
	lock := s.fileLock(name)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("store: lock %s: %w", name, err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("store: marshal %s: %w", name, err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: rename %s: %w", name, err)
	}
	return nil
}

// LoadUsers returns the users collection in file order. Legacy records with no
// role are migrated: the record named "admin" gets the admin role, everything
// else employee.
func (s *Store) LoadUsers() ([]models.User, error) {
	users := []models.User{}
	if err := s.load(usersFile, &users); err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Role == "" {
			if users[i].Username == "admin" {
				users[i].Role = models.RoleAdmin
			} else {
				users[i].Role = models.RoleEmployee
			}
		}
	}
	return users, nil
}

func (s *Store) SaveUsers(users []models.User) error {
	if users == nil {
		users = []models.User{}
	}
	return s.save(usersFile, users)
}

// LoadProjects returns the projects collection, a plain list of names.
func (s *Store) LoadProjects() ([]string, error) {
	projects := []string{}
	if err := s.load(projectsFile, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Store) SaveProjects(projects []string) error {
	if projects == nil {
		projects = []string{}
	}
	return s.save(projectsFile, projects)
}

// LoadEntries returns the timesheets collection in insertion order.
func (s *Store) LoadEntries() ([]models.Entry, error) {
	entries := []models.Entry{}
	if err := s.load(timesheetsFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveEntries(entries []models.Entry) error {
	if entries == nil {
		entries = []models.Entry{}
	}
	return s.save(timesheetsFile, entries)
}
