package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sumitsharma12k/timesheet-portal/internal/middleware"
	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// Notifier sends the onboarding mail. Satisfied by *mailer.Mailer; tests stub it.
type Notifier interface {
	SendWelcome(ctx context.Context, to, username, password string, projects []string) error
}

// ==========================
// UserHandler
// ==========================
type UserHandler struct {
	Store    *store.Store
	Notifier Notifier
}

// ==========================
// Create User (admin only; username and email required, password and projects may be empty)
// ==========================
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string   `json:"username"`
		Password string   `json:"password"`
		Email    string   `json:"email"`
		Projects []string `json:"projects"`
		Role     string   `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "required"
	}
	if strings.TrimSpace(input.Email) == "" {
		fields["email"] = "required"
	}
	role := input.Role
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleAdmin {
		fields["role"] = "must be employee or admin"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	users, err := h.Store.LoadUsers()
	if err != nil {
		slog.Error("create user: load", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if input.Projects == nil {
		input.Projects = []string{}
	}
	user := models.User{
		Username: input.Username,
		Password: input.Password,
		Email:    input.Email,
		Projects: input.Projects,
		Role:     role,
	}
	users = append(users, user)
	if err := h.Store.SaveUsers(users); err != nil {
		slog.Error("create user: save", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// The record is persisted at this point; a mail failure only downgrades
	// the response to a warning.
	out := map[string]interface{}{
		"user":       user.Public(),
		"email_sent": false,
	}
	if h.Notifier == nil {
		out["warning"] = "user created, but outbound mail is not configured"
	} else if err := h.Notifier.SendWelcome(r.Context(), user.Email, user.Username, user.Password, user.Projects); err != nil {
		slog.Warn("create user: welcome mail failed", "username", user.Username, "error", err)
		out["warning"] = "user created, but email could not be sent"
	} else {
		out["email_sent"] = true
	}

	JSONResponse(w, out, http.StatusCreated)
}

// ==========================
// Me (the principal's own record, for the employee UI)
// ==========================
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	users, err := h.Store.LoadUsers()
	if err != nil {
		slog.Error("me: load users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	for _, u := range users {
		if u.Username == principal.Username {
			JSONResponse(w, u.Public(), http.StatusOK)
			return
		}
	}
	JSONError(w, "user not found", http.StatusNotFound)
}

// ==========================
// List Users (passwords are never serialized)
// ==========================
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.LoadUsers()
	if err != nil {
		slog.Error("list users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	JSONResponse(w, out, http.StatusOK)
}
