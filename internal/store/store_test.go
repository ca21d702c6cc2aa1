package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLoadMissingFilesAreEmpty(t *testing.T) {
	s := newTestStore(t)

	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("users: got %d, want 0", len(users))
	}

	projects, err := s.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("projects: got %d, want 0", len(projects))
	}

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries: got %d, want 0", len(entries))
	}
}

func TestLoadEmptyAndCorruptFiles(t *testing.T) {
	s := newTestStore(t)

	if err := os.WriteFile(filepath.Join(s.Dir(), "projects.json"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	projects, err := s.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects on empty file: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("empty file: got %v, want empty", projects)
	}

	if err := os.WriteFile(filepath.Join(s.Dir(), "users.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers on corrupt file should not error, got %v", err)
	}
	if len(users) != 0 {
		t.Errorf("corrupt file: got %v, want empty", users)
	}
}

func TestUsersRoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := []models.User{
		{Username: "admin", Password: "x", Email: "a@a", Projects: []string{}, Role: models.RoleAdmin},
		{Username: "bob", Password: "pw", Email: "bob@example.com", Projects: []string{"Apollo", "Zephyr"}, Role: models.RoleEmployee},
	}
	if err := s.SaveUsers(want); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}

	got, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadUsersMigratesLegacyRole(t *testing.T) {
	s := newTestStore(t)

	// Legacy files carry no role field.
	legacy := `[
    {"username": "admin", "password": "x", "email": "a@a", "projects": []},
    {"username": "bob", "password": "pw", "email": "b@b", "projects": ["Apollo"]}
]`
	if err := os.WriteFile(filepath.Join(s.Dir(), "users.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	users, err := s.LoadUsers()
	if err != nil {
		t.Fatalf("LoadUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}
	if users[0].Role != models.RoleAdmin {
		t.Errorf("admin role: got %q, want %q", users[0].Role, models.RoleAdmin)
	}
	if users[1].Role != models.RoleEmployee {
		t.Errorf("bob role: got %q, want %q", users[1].Role, models.RoleEmployee)
	}
}

func TestEntriesRoundTripPreservesOrder(t *testing.T) {
	s := newTestStore(t)

	want := []models.Entry{
		{Username: "bob", Date: "2024-01-01", Project: "X", Hours: 8, Notes: ""},
		{Username: "alice", Date: "2024-01-02", Project: "Y", Hours: 7.5, Notes: "standup"},
		{Username: "bob", Date: "2024-01-02", Project: "X", Hours: 0.5, Notes: ""},
	}
	if err := s.SaveEntries(want); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}

	got, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveProjectsOverwrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveProjects([]string{"A", "B"}); err != nil {
		t.Fatalf("SaveProjects: %v", err)
	}
	if err := s.SaveProjects([]string{}); err != nil {
		t.Fatalf("SaveProjects (clear): %v", err)
	}

	projects, err := s.LoadProjects()
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("after clear: got %v, want empty", projects)
	}
}

func TestSaveNilPersistsEmptyList(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveEntries(nil); err != nil {
		t.Fatalf("SaveEntries(nil): %v", err)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), "timesheets.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("file content: got %q, want %q", string(data), "[]")
	}
}
