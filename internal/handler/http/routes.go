package http

import (
	"github.com/avoronin/go-task-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withTimeout)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users/register", h.register)
		r.Post("/api/users", h.register)
		r.Post("/api/users/login", h.login)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/users/profile", h.profile)
		r.Put("/api/users/profile", h.updateProfile)

		r.With(h.requireRole(models.RoleAdmin)).Get("/api/users", h.listUsers)

		r.Route("/api/tasks", func(r chi.Router) {
			r.Post("/", h.createTask)
			r.Get("/", h.listTasks)
			r.Get("/insights", h.taskInsights)
			r.Get("/{taskID}", h.getTask)
			r.Put("/{taskID}", h.updateTask)
			r.Delete("/{taskID}", h.deleteTask)
		})
	})

	return router
}
