package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-school-records/internal/config"
	"go-school-records/internal/handler"
	"go-school-records/internal/middleware"
	"go-school-records/internal/model"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Role    *handler.RoleHandler
	Student *handler.StudentHandler
	Subject *handler.SubjectHandler
	Grade   *handler.GradeHandler
}

func New(cfg *config.Config, auth *middleware.AuthMiddleware, h Handlers, registry *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	rateLimit := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)
	metrics := middleware.NewMetricsMiddleware(registry)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(metrics.Handler)
	r.Use(rateLimit.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.With(auth.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/roles", func(rr chi.Router) {
			rr.Use(auth.RequireAuth)
			rr.Get("/", h.Role.List)
			rr.With(auth.RequireRoles(model.RoleAdmin)).Post("/", h.Role.Create)
			rr.With(auth.RequireRoles(model.RoleAdmin)).Put("/{id}", h.Role.Update)
		})

		api.Route("/usuarios", func(ur chi.Router) {
			ur.Use(auth.RequireAuth, auth.RequireRoles(model.RoleAdmin))
			ur.Get("/", h.User.List)
			ur.Post("/", h.User.Create)
			ur.Get("/{id}", h.User.Get)
			ur.Put("/{id}", h.User.Update)
			ur.Get("/{id}/roles", h.User.Roles)
			ur.Post("/{id}/roles", h.User.AssignRole)
			ur.Delete("/{id}/roles/{rolId}", h.User.RemoveRole)
		})

		api.Route("/alumnos", func(sr chi.Router) {
			sr.Use(auth.RequireAuth)
			sr.With(auth.RequireRoles(model.RoleAdmin)).Get("/", h.Student.List)
			sr.With(auth.RequireRoles(model.RoleAdmin)).Post("/", h.Student.Create)
			sr.With(auth.RequireRoles(model.RoleAdmin)).Put("/{id}", h.Student.Update)
			// Detail is reachable by any authenticated identity; the
			// ownership check runs in the handler after the fetch.
			sr.Get("/{id}", h.Student.Get)
		})

		api.Route("/materias", func(mr chi.Router) {
			mr.Use(auth.RequireAuth)
			mr.With(auth.RequireLinkedStudent).Get("/consulta-alumno", h.Subject.MySubjects)
			mr.With(auth.RequireRoles(model.RoleAdmin)).Get("/", h.Subject.List)
			mr.With(auth.RequireRoles(model.RoleAdmin)).Get("/{id}", h.Subject.Get)
			mr.With(auth.RequireRoles(model.RoleAdmin)).Post("/", h.Subject.Create)
			mr.With(auth.RequireRoles(model.RoleAdmin)).Put("/{id}", h.Subject.Update)
			mr.With(auth.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Subject.Delete)
		})

		api.Route("/notas", func(nr chi.Router) {
			nr.Use(auth.RequireAuth)
			nr.Get("/", h.Grade.List)
			nr.With(auth.RequireLinkedStudent).Get("/consulta-alumno", h.Grade.MyGrades)
			nr.With(auth.RequireRoles(model.RoleAdmin)).Get("/alumno/{id}", h.Grade.ListByStudent)
			nr.With(auth.RequireRoles(model.RoleAdmin)).Post("/", h.Grade.Create)
			nr.With(auth.RequireRoles(model.RoleAdmin)).Put("/{id}", h.Grade.Update)
		})
	})

	return r
}
