package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sumitsharma12k/timesheet-portal/internal/metrics"
	"github.com/sumitsharma12k/timesheet-portal/internal/middleware"
	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// ==========================
// TimesheetHandler
// ==========================
type TimesheetHandler struct {
	Store *store.Store
}

// ==========================
// Submit Entry (append-only; the row is tagged with the principal's username)
// ==========================
func (h *TimesheetHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var input struct {
		Date    string  `json:"date"`
		Project string  `json:"project"`
		Hours   float64 `json:"hours"`
		Notes   string  `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	user, err := h.currentUser(principal.Username)
	if err != nil {
		slog.Error("submit entry: load users", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if user == nil {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	if len(user.Projects) == 0 {
		JSONError(w, "no projects assigned yet, contact admin", http.StatusForbidden)
		return
	}

	fields := make(map[string]string)
	if input.Project == "" {
		fields["project"] = "required"
	} else if !contains(user.Projects, input.Project) {
		fields["project"] = "not assigned to you"
	}
	if input.Date == "" {
		input.Date = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		fields["date"] = "must be YYYY-MM-DD"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	entries, err := h.Store.LoadEntries()
	if err != nil {
		slog.Error("submit entry: load", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	entry := models.Entry{
		Username: principal.Username,
		Date:     input.Date,
		Project:  input.Project,
		Hours:    input.Hours,
		Notes:    input.Notes,
	}
	entries = append(entries, entry)
	if err := h.Store.SaveEntries(entries); err != nil {
		slog.Error("submit entry: save", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncEntriesSubmitted()
	JSONResponse(w, entry, http.StatusCreated)
}

// ==========================
// List Own Entries (insertion order, filtered to the principal)
// ==========================
func (h *TimesheetHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		JSONError(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	entries, err := h.Store.LoadEntries()
	if err != nil {
		slog.Error("list own entries", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	mine := make([]models.Entry, 0)
	for _, e := range entries {
		if e.Username == principal.Username {
			mine = append(mine, e)
		}
	}
	JSONResponse(w, mine, http.StatusOK)
}

// ==========================
// List All Entries (admin grid)
// ==========================
func (h *TimesheetHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Store.LoadEntries()
	if err != nil {
		slog.Error("list entries", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, entries, http.StatusOK)
}

// ==========================
// Replace All Entries (admin bulk edit saves the grid verbatim, no validation)
// ==========================
func (h *TimesheetHandler) ReplaceAll(w http.ResponseWriter, r *http.Request) {
	var rows []models.Entry
	if err := json.NewDecoder(r.Body).Decode(&rows); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	if rows == nil {
		rows = []models.Entry{}
	}
	if err := h.Store.SaveEntries(rows); err != nil {
		slog.Error("replace entries", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, rows, http.StatusOK)
}

func (h *TimesheetHandler) currentUser(username string) (*models.User, error) {
	users, err := h.Store.LoadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}
