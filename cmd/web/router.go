package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dbalakin/notewall/internal/auth"
	"github.com/dbalakin/notewall/internal/config"
	"github.com/dbalakin/notewall/internal/middleware"
	"github.com/dbalakin/notewall/internal/repo"
	"github.com/dbalakin/notewall/internal/session"
	"github.com/dbalakin/notewall/internal/web"
)

// newRouter builds the full handler chain. SecurityHeaders is outermost so
// the hardening headers land on every response, including panics caught by
// the recoverer and redirects.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	sessions := session.NewManager(
		repo.NewSessionRepo(db),
		[]byte(cfg.SessionSecret),
		time.Duration(cfg.SessionTTLHours)*time.Hour,
	)

	h := web.NewHandler(
		repo.NewNoteRepo(db),
		auth.NewService(repo.NewUserRepo(db), cfg.BcryptCost),
		sessions,
	)

	r := chi.NewRouter()
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(sessions.Middleware)
	r.Use(middleware.RequestLog)
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ready"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", h.Index)
	r.Post("/", h.CreateNote)

	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	r.Get("/edit/{id}", h.EditForm)
	r.Post("/edit/{id}", h.Edit)
	r.Post("/delete/{id}", h.Delete)

	return r
}
