// Package scheduler runs the optional daily submission reminder.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sumitsharma12k/timesheet-portal/internal/mailer"
	"github.com/sumitsharma12k/timesheet-portal/internal/models"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

// Run starts a cron job that, at each tick of cronExpr, mails every employee
// who has assigned projects but no timesheet entry dated today. It returns the
// started cron so callers can Stop it; a bad expression is logged and nil is
// returned.
func Run(st *store.Store, m *mailer.Mailer, cronExpr string) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc(cronExpr, func() { remind(st, m) })
	if err != nil {
		slog.Error("scheduler: invalid cron expression", "cron", cronExpr, "error", err)
		return nil
	}
	c.Start()
	slog.Info("scheduler: reminder job started", "cron", cronExpr)
	return c
}

func remind(st *store.Store, m *mailer.Mailer) {
	users, err := st.LoadUsers()
	if err != nil {
		slog.Error("scheduler: load users", "error", err)
		return
	}
	entries, err := st.LoadEntries()
	if err != nil {
		slog.Error("scheduler: load entries", "error", err)
		return
	}

	today := time.Now().Format(models.DateLayout)
	for _, u := range recipients(users, entries, today) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := m.SendReminder(ctx, u.Email, u.Username, u.Projects)
		cancel()
		if err != nil {
			slog.Warn("scheduler: reminder mail failed", "username", u.Username, "error", err)
		}
	}
}

// recipients picks employees with at least one assigned project and no entry
// for the given date. Admins never get reminders.
func recipients(users []models.User, entries []models.Entry, date string) []models.User {
	submitted := make(map[string]bool)
	for _, e := range entries {
		if e.Date == date {
			submitted[e.Username] = true
		}
	}

	var out []models.User
	for _, u := range users {
		if u.Role == models.RoleAdmin || len(u.Projects) == 0 || u.Email == "" {
			continue
		}
		if !submitted[u.Username] {
			out = append(out, u)
		}
	}
	return out
}
