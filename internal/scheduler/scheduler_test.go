package scheduler

import (
	"testing"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
)

func TestRecipients(t *testing.T) {
	users := []models.User{
		{Username: "admin", Email: "a@a", Projects: []string{"X"}, Role: models.RoleAdmin},
		{Username: "bob", Email: "b@b", Projects: []string{"X"}, Role: models.RoleEmployee},
		{Username: "alice", Email: "al@a", Projects: []string{"Y"}, Role: models.RoleEmployee},
		{Username: "noproj", Email: "n@n", Projects: []string{}, Role: models.RoleEmployee},
		{Username: "nomail", Email: "", Projects: []string{"X"}, Role: models.RoleEmployee},
	}
	entries := []models.Entry{
		{Username: "alice", Date: "2024-06-01", Project: "Y", Hours: 8},
		{Username: "bob", Date: "2024-05-31", Project: "X", Hours: 8}, // yesterday, does not count
	}

	got := recipients(users, entries, "2024-06-01")
	if len(got) != 1 || got[0].Username != "bob" {
		t.Errorf("recipients: got %+v, want only bob", got)
	}
}

func TestRecipientsEmptyInputs(t *testing.T) {
	if got := recipients(nil, nil, "2024-06-01"); len(got) != 0 {
		t.Errorf("recipients on empty users: got %+v", got)
	}
}
