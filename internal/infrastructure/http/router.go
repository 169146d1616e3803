package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/handlers"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/http/middleware"
)

// APIVersion is reported in the X-API-Version header.
const APIVersion = "1"

type RouterConfig struct {
	HealthHandler      *handlers.HealthHandler
	ProjectsHandler    *handlers.ProjectsHandler
	TasksHandler       *handlers.TasksHandler
	InvitationsHandler *handlers.InvitationsHandler
	UsersHandler       *handlers.UsersHandler
	RequireSession     func(http.Handler) http.Handler // session auth for /api/*
	Log                zerolog.Logger
	Secure             func(http.Handler) http.Handler
	CORS               func(http.Handler) http.Handler
	IPRateLimit        func(http.Handler) http.Handler
	UserRateLimit      func(http.Handler) http.Handler
	Metrics            bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(middleware.APIVersion(APIVersion))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cfg.RequireSession)
		if cfg.UserRateLimit != nil {
			r.Use(cfg.UserRateLimit)
		}
		r.Use(chimid.AllowContentType("application/json"))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", cfg.ProjectsHandler.List)
			r.Post("/", cfg.ProjectsHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.ProjectsHandler.Get)
				r.Patch("/", cfg.ProjectsHandler.Update)
				r.Delete("/", cfg.ProjectsHandler.Delete)
				r.Get("/members", cfg.ProjectsHandler.Members)
				r.Post("/invitations", cfg.InvitationsHandler.Create)

				r.Get("/tasks", cfg.TasksHandler.List)
				r.Post("/tasks", cfg.TasksHandler.Create)
				r.Patch("/tasks", cfg.TasksHandler.Update)
				r.Delete("/tasks", cfg.TasksHandler.Delete)
				r.Patch("/tasks/status", cfg.TasksHandler.UpdateStatus)
			})
		})

		if cfg.UsersHandler != nil {
			r.Get("/users/search", cfg.UsersHandler.Search)
		}

		r.Route("/invitations", func(r chi.Router) {
			r.Get("/", cfg.InvitationsHandler.List)
			r.Get("/pending", cfg.InvitationsHandler.Pending)
			r.Post("/{id}/accept", cfg.InvitationsHandler.Accept)
			r.Post("/{id}/decline", cfg.InvitationsHandler.Decline)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimid.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("request_id", chimid.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
