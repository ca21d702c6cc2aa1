package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type userRow struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Projects []string `json:"projects"`
	Role     string   `json:"role"`
}

type entryRow struct {
	Username string  `json:"username"`
	Date     string  `json:"date"`
	Project  string  `json:"project"`
	Hours    float64 `json:"hours"`
	Notes    string  `json:"notes"`
}

type adminData struct {
	Username   string
	Projects   []string
	Users      []userRow
	Timesheets []entryRow
	Error      string
	Message    string
}

type employeeData struct {
	Username string
	Projects []string
	Entries  []entryRow
	Today    string
	Error    string
	Message  string
}

// flashRedirect sends the browser back to a page with a message or error in
// the query string.
func flashRedirect(w http.ResponseWriter, r *http.Request, path, msg, errMsg string) {
	q := url.Values{}
	if msg != "" {
		q.Set("msg", msg)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}
	target := path
	if enc := q.Encode(); enc != "" {
		target += "?" + enc
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func adminPage(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, role := claimsFromCookie(r)
		if role != "admin" {
			http.Redirect(w, r, "/employee", http.StatusFound)
			return
		}
		token := cookieToken(r)

		data := adminData{
			Username: username,
			Error:    r.URL.Query().Get("err"),
			Message:  r.URL.Query().Get("msg"),
		}

		if body, status, err := apiGet(apiBase, "/projects", token); err == nil && status == http.StatusOK {
			_ = json.Unmarshal(body, &data.Projects)
		} else if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if body, status, _ := apiGet(apiBase, "/users", token); status == http.StatusOK {
			_ = json.Unmarshal(body, &data.Users)
		}
		if body, status, _ := apiGet(apiBase, "/timesheets", token); status == http.StatusOK {
			_ = json.Unmarshal(body, &data.Timesheets)
		}

		renderTemplate(w, "admin.html", data)
	}
}

func addProject(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))

		body, _ := json.Marshal(map[string]string{"name": name})
		_, status, err := apiPost(apiBase, "/projects", cookieToken(r), body)
		if err != nil {
			flashRedirect(w, r, "/admin", "", "Cannot reach API: "+err.Error())
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status != http.StatusOK {
			flashRedirect(w, r, "/admin", "", "Failed to add project")
			return
		}
		flashRedirect(w, r, "/admin", "Project '"+name+"' added.", "")
	}
}

func clearProjects(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, status, err := apiDelete(apiBase, "/projects", cookieToken(r))
		if err != nil {
			flashRedirect(w, r, "/admin", "", "Cannot reach API: "+err.Error())
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		flashRedirect(w, r, "/admin", "All projects cleared.", "")
	}
}

func createUser(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		payload := map[string]interface{}{
			"username": strings.TrimSpace(r.FormValue("username")),
			"password": r.FormValue("password"),
			"email":    strings.TrimSpace(r.FormValue("email")),
			"projects": r.Form["projects"],
			"role":     r.FormValue("role"),
		}
		body, _ := json.Marshal(payload)

		data, status, err := apiPost(apiBase, "/users", cookieToken(r), body)
		if err != nil {
			flashRedirect(w, r, "/admin", "", "Cannot reach API: "+err.Error())
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status != http.StatusCreated {
			var errResp struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(data, &errResp)
			if errResp.Error == "" {
				errResp.Error = "Failed to create user"
			}
			flashRedirect(w, r, "/admin", "", errResp.Error)
			return
		}

		var out struct {
			EmailSent bool   `json:"email_sent"`
			Warning   string `json:"warning"`
		}
		_ = json.Unmarshal(data, &out)
		if out.EmailSent {
			flashRedirect(w, r, "/admin", "User created and email sent.", "")
			return
		}
		flashRedirect(w, r, "/admin", out.Warning, "")
	}
}

// saveTimesheets rebuilds the whole collection from the edited grid and saves
// it verbatim. Rows with neither username nor project are treated as deleted
// or never filled in.
func saveTimesheets(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		usernames := r.Form["username"]
		dates := r.Form["date"]
		projects := r.Form["project"]
		hours := r.Form["hours"]
		notes := r.Form["notes"]

		rows := make([]entryRow, 0, len(usernames))
		for i := range usernames {
			row := entryRow{Username: strings.TrimSpace(usernames[i])}
			if i < len(dates) {
				row.Date = strings.TrimSpace(dates[i])
			}
			if i < len(projects) {
				row.Project = strings.TrimSpace(projects[i])
			}
			if i < len(hours) {
				row.Hours, _ = strconv.ParseFloat(hours[i], 64)
			}
			if i < len(notes) {
				row.Notes = notes[i]
			}
			if row.Username == "" && row.Project == "" {
				continue
			}
			rows = append(rows, row)
		}

		body, _ := json.Marshal(rows)
		_, status, err := apiPut(apiBase, "/timesheets", cookieToken(r), body)
		if err != nil {
			flashRedirect(w, r, "/admin", "", "Cannot reach API: "+err.Error())
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status != http.StatusOK {
			flashRedirect(w, r, "/admin", "", "Failed to save timesheets")
			return
		}
		flashRedirect(w, r, "/admin", "Timesheet data updated successfully.", "")
	}
}

func employeePage(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, _ := claimsFromCookie(r)
		token := cookieToken(r)

		data := employeeData{
			Username: username,
			Today:    time.Now().Format("2006-01-02"),
			Error:    r.URL.Query().Get("err"),
			Message:  r.URL.Query().Get("msg"),
		}

		// The submit form offers only the user's own assigned projects.
		body, status, err := apiGet(apiBase, "/me", token)
		if err != nil {
			data.Error = "Cannot reach API: " + err.Error()
			renderTemplate(w, "employee.html", data)
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		var me userRow
		if json.Unmarshal(body, &me) == nil {
			data.Projects = me.Projects
		}

		if body, status, _ := apiGet(apiBase, "/timesheets/mine", token); status == http.StatusOK {
			_ = json.Unmarshal(body, &data.Entries)
		}

		renderTemplate(w, "employee.html", data)
	}
}

func submitEntry(apiBase string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}

		hoursVal, _ := strconv.ParseFloat(r.FormValue("hours"), 64)
		payload := map[string]interface{}{
			"date":    r.FormValue("date"),
			"project": r.FormValue("project"),
			"hours":   hoursVal,
			"notes":   r.FormValue("notes"),
		}
		body, _ := json.Marshal(payload)

		data, status, err := apiPost(apiBase, "/timesheets", cookieToken(r), body)
		if err != nil {
			flashRedirect(w, r, "/employee", "", "Cannot reach API: "+err.Error())
			return
		}
		if status == http.StatusUnauthorized {
			clearAuthAndRedirectToLogin(w, r)
			return
		}
		if status != http.StatusCreated {
			var errResp struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(data, &errResp)
			if errResp.Error == "" {
				errResp.Error = "Failed to submit timesheet"
			}
			flashRedirect(w, r, "/employee", "", errResp.Error)
			return
		}
		flashRedirect(w, r, "/employee", "Timesheet submitted successfully.", "")
	}
}
