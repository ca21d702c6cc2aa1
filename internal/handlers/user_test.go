package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sumitsharma12k/timesheet-portal/internal/models"
)

func createUser(t *testing.T, h *UserHandler, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.CreateUser(rr, req)
	return rr
}

func TestCreateUser(t *testing.T) {
	st := newTestStore(t, nil, []string{"Apollo", "Zephyr"}, nil)
	notifier := &fakeNotifier{}
	h := &UserHandler{Store: st, Notifier: notifier}

	rr := createUser(t, h, map[string]interface{}{
		"username": "bob",
		"password": "pw",
		"email":    "bob@example.com",
		"projects": []string{"Apollo"},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var out struct {
		EmailSent bool `json:"email_sent"`
		User      struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.EmailSent {
		t.Error("email_sent: got false, want true")
	}
	if out.User.Role != models.RoleEmployee {
		t.Errorf("default role: got %q, want employee", out.User.Role)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "bob@example.com" {
		t.Errorf("notifier recipients: got %v", notifier.sent)
	}

	users, err := st.LoadUsers()
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].Username != "bob" || users[0].Password != "pw" {
		t.Errorf("persisted users: %+v", users)
	}
}

func TestCreateUserPersistsWhenMailFails(t *testing.T) {
	st := newTestStore(t, nil, nil, nil)
	h := &UserHandler{Store: st, Notifier: &fakeNotifier{fail: true}}

	rr := createUser(t, h, map[string]interface{}{
		"username": "carol",
		"email":    "carol@example.com",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, want 201", rr.Code)
	}

	var out struct {
		EmailSent bool   `json:"email_sent"`
		Warning   string `json:"warning"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.EmailSent {
		t.Error("email_sent: got true, want false")
	}
	if out.Warning == "" {
		t.Error("expected a warning when mail fails")
	}

	users, _ := st.LoadUsers()
	if len(users) != 1 {
		t.Errorf("user not persisted despite mail failure: %+v", users)
	}
}

func TestCreateUserValidation(t *testing.T) {
	st := newTestStore(t, nil, nil, nil)
	h := &UserHandler{Store: st, Notifier: &fakeNotifier{}}

	tests := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{"missing username", map[string]interface{}{"email": "a@a"}, "username"},
		{"missing email", map[string]interface{}{"username": "bob"}, "email"},
		{"bad role", map[string]interface{}{"username": "bob", "email": "a@a", "role": "root"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := createUser(t, h, tt.payload)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want 400", rr.Code)
			}
			var out struct {
				Fields map[string]string `json:"fields"`
			}
			if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := out.Fields[tt.field]; !ok {
				t.Errorf("fields: got %v, want %q flagged", out.Fields, tt.field)
			}
		})
	}

	// Nothing persisted on validation failure.
	users, _ := st.LoadUsers()
	if len(users) != 0 {
		t.Errorf("users persisted on validation failure: %+v", users)
	}
}

func TestListUsersHidesPasswords(t *testing.T) {
	st := newTestStore(t, []models.User{
		{Username: "admin", Password: "x", Email: "a@a", Projects: []string{}, Role: models.RoleAdmin},
	}, nil, nil)
	h := &UserHandler{Store: st}

	req := httptest.NewRequest("GET", "/users", nil)
	rr := httptest.NewRecorder()
	h.ListUsers(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("list status: got %d, want 200", rr.Code)
	}
	if bytes.Contains(rr.Body.Bytes(), []byte(`"password":"x"`)) {
		t.Errorf("password leaked: %s", rr.Body.String())
	}
}
