package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// ==========================
// ProjectHandler
// ==========================
type ProjectHandler struct {
	Store *store.Store
}

// ==========================
// List Projects
// ==========================
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Store.LoadProjects()
	if err != nil {
		slog.Error("list projects", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, projects, http.StatusOK)
}

// ==========================
// Add Project (empty or duplicate names are a silent no-op)
// ==========================
func (h *ProjectHandler) AddProject(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	projects, err := h.Store.LoadProjects()
	if err != nil {
		slog.Error("add project: load", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name != "" && !contains(projects, name) {
		projects = append(projects, name)
		if err := h.Store.SaveProjects(projects); err != nil {
			slog.Error("add project: save", "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
	}

	JSONResponse(w, projects, http.StatusOK)
}

// ==========================
// Clear Projects (unconditional; no cascade to users or timesheets)
// ==========================
func (h *ProjectHandler) ClearProjects(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.SaveProjects([]string{}); err != nil {
		slog.Error("clear projects", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	JSONResponse(w, []string{}, http.StatusOK)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
