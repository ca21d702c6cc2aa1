package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// newTestStore returns a store rooted in a temp dir, optionally pre-seeded.
func newTestStore(t *testing.T, users []models.User, projects []string, entries []models.Entry) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if users != nil {
		if err := st.SaveUsers(users); err != nil {
			t.Fatalf("SaveUsers: %v", err)
		}
	}
	if projects != nil {
		if err := st.SaveProjects(projects); err != nil {
			t.Fatalf("SaveProjects: %v", err)
		}
	}
	if entries != nil {
		if err := st.SaveEntries(entries); err != nil {
			t.Fatalf("SaveEntries: %v", err)
		}
	}
	return st
}

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}

// fakeNotifier records welcome sends and can be told to fail.
type fakeNotifier struct {
	sent []string // recipient addresses
	fail bool
}

func (f *fakeNotifier) SendWelcome(_ context.Context, to, _, _ string, _ []string) error {
	if f.fail {
		return errors.New("relay unreachable")
	}
	f.sent = append(f.sent, to)
	return nil
}
