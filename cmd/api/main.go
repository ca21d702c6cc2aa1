package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumitsharma12k/timesheet-portal/internal/config"
	"github.com/sumitsharma12k/timesheet-portal/internal/handlers"
	"github.com/sumitsharma12k/timesheet-portal/internal/mailer"
	"github.com/sumitsharma12k/timesheet-portal/internal/middleware"
	"github.com/sumitsharma12k/timesheet-portal/internal/scheduler"
	"github.com/sumitsharma12k/timesheet-portal/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogFormat)

	if cfg.Env == "prod" && cfg.JWTSecret == "supersecretkey" {
		log.Fatal("JWT_SECRET must be set in prod")
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to open data directory: %v", err)
	}
	slog.Info("data directory ready", "dir", st.Dir())

	m := mailer.New(cfg)
	if m == nil {
		slog.Warn("outbound mail not configured; welcome emails disabled")
	}

	if cfg.ReminderCron != "" {
		if m == nil {
			slog.Warn("REMINDER_CRON set but mail is not configured; reminders disabled")
		} else {
			scheduler.Run(st, m, cfg.ReminderCron)
		}
	}

	r := newRouter(st, m, cfg)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// newRouter wires the full middleware chain and route tree. Kept separate from
// main so the integration test can mount it on httptest.
func newRouter(st *store.Store, m *mailer.Mailer, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	authH := &handlers.AuthHandler{
		Store:     st,
		Secret:    []byte(cfg.JWTSecret),
		ExpireDur: time.Duration(cfg.JWTExpireHours) * time.Hour,
	}
	projH := &handlers.ProjectHandler{Store: st}
	userH := &handlers.UserHandler{Store: st}
	if m != nil {
		userH.Notifier = m
	}
	tsH := &handlers.TimesheetHandler{Store: st}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimiter().Middleware)
		r.Post("/auth/login", authH.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth([]byte(cfg.JWTSecret)))

		// Any authenticated principal.
		r.Get("/me", userH.Me)
		r.Get("/projects", projH.ListProjects)
		r.Get("/timesheets/mine", tsH.ListMine)
		r.Post("/timesheets", tsH.SubmitEntry)

		// Admin workflow.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/projects", projH.AddProject)
			r.Delete("/projects", projH.ClearProjects)
			r.Get("/users", userH.ListUsers)
			r.Post("/users", userH.CreateUser)
			r.Get("/timesheets", tsH.ListAll)
			r.Put("/timesheets", tsH.ReplaceAll)
		})
	})

	return r
}

func setupLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}
