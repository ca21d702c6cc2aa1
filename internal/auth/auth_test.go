package auth

import (
	"testing"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

func seedStore(t *testing.T, users []models.User) *store.Store {
	t.Helper()
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	if err := st.SaveUsers(users); err != nil {
		t.Fatalf("SaveUsers: %v", err)
	}
	return st
}

func TestAuthenticate(t *testing.T) {
	st := seedStore(t, []models.User{
		{Username: "admin", Password: "x", Email: "a@a", Projects: []string{}, Role: models.RoleAdmin},
		{Username: "bob", Password: "secret", Email: "b@b", Projects: []string{"Apollo"}, Role: models.RoleEmployee},
	})

	tests := []struct {
		name     string
		username string
		password string
		want     string // expected username, "" for no match
	}{
		{"admin ok", "admin", "x", "admin"},
		{"employee ok", "bob", "secret", "bob"},
		{"wrong password", "admin", "wrong", ""},
		{"unknown user", "carol", "x", ""},
		{"case sensitive username", "Admin", "x", ""},
		{"case sensitive password", "bob", "Secret", ""},
		{"empty credentials", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := Authenticate(st, tt.username, tt.password)
			if err != nil {
				t.Fatalf("Authenticate: %v", err)
			}
			if tt.want == "" {
				if user != nil {
					t.Errorf("got %+v, want no match", user)
				}
				return
			}
			if user == nil || user.Username != tt.want {
				t.Errorf("got %+v, want username %q", user, tt.want)
			}
		})
	}
}

func TestAuthenticateEmptyCollection(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	user, err := Authenticate(st, "admin", "x")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user != nil {
		t.Errorf("got %+v, want no match on empty collection", user)
	}
}
