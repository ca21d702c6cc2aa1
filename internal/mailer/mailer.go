// Package mailer sends the transactional mails: the onboarding notice on user
// creation and the optional daily submission reminder. Delivery failures are
// warnings by design; no caller treats them as fatal.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/sumitsharma12k/timesheet-portal/internal/config"
	"github.com/sumitsharma12k/timesheet-portal/internal/metrics"
)

const welcomeSubject = "Welcome to Timesheet App"

// noProjectsSentinel is used in mail bodies for users with an empty assignment.
const noProjectsSentinel = "No projects assigned yet."

type Mailer struct {
	host string
	port int
	user string
	pass string
	from string
}

// New returns a mailer, or nil when mail is not configured. A nil *Mailer is
// valid: every send reports failure without dialing anything.
func New(cfg config.Config) *Mailer {
	if !cfg.MailEnabled() {
		return nil
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUsername,
		pass: cfg.SMTPPassword,
		from: cfg.SMTPFrom,
	}
}

// SendWelcome mails the new user their credentials and project assignments.
func (m *Mailer) SendWelcome(ctx context.Context, to, username, password string, projects []string) error {
	return m.send(ctx, to, welcomeSubject, welcomeBody(username, password, projects))
}

// SendReminder nudges an employee who has not submitted an entry today.
func (m *Mailer) SendReminder(ctx context.Context, to, username string, projects []string) error {
	subject := "Timesheet reminder"
	return m.send(ctx, to, subject, reminderBody(username, projects))
}

func (m *Mailer) send(ctx context.Context, to, subject, body string) error {
	if m == nil {
		metrics.IncMailSent("disabled")
		return fmt.Errorf("mailer: outbound mail is not configured")
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("mailer: invalid sender %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mailer: invalid recipient %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.user),
		mail.WithPassword(m.pass),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		metrics.IncMailSent("error")
		return fmt.Errorf("mailer: client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		metrics.IncMailSent("error")
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	metrics.IncMailSent("ok")
	return nil
}

// welcomeBody embeds the literal password: the system onboards users by
// mailing them their credentials, as the admin panel promises.
func welcomeBody(username, password string, projects []string) string {
	projectList := noProjectsSentinel
	if len(projects) > 0 {
		projectList = strings.Join(projects, ", ")
	}
	return fmt.Sprintf(`Hi %s,

Your Timesheet account has been created successfully.

Login Details:
--------------------
Username: %s
Password: %s

Assigned Projects:
%s

You can now log in to the Timesheet Portal and start submitting your timesheets.

Regards,
Timesheet Admin
`, username, username, password, projectList)
}

func reminderBody(username string, projects []string) string {
	projectList := noProjectsSentinel
	if len(projects) > 0 {
		projectList = strings.Join(projects, ", ")
	}
	return fmt.Sprintf(`Hi %s,

You have not submitted a timesheet entry for today yet.

Your Projects:
%s

Regards,
Timesheet Admin
`, username, projectList)
}
