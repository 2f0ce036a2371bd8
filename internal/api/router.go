package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/taskboard/taskboard-be/internal/api/handlers"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.Manager,
	userService services.UserServiceProvider,
	taskService services.TaskServiceProvider,
	noteService services.NoteServiceProvider,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	profileHandler := handlers.NewProfileHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	noteHandler := handlers.NewNoteHandler(noteService)

	// Liveness
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","message":"Taskboard API running"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", profileHandler.Get)
				r.Put("/", profileHandler.Update)
				r.Put("/password", profileHandler.ChangePassword)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Put("/{id}", taskHandler.Update)
				r.Delete("/{id}", taskHandler.Delete)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.List)
				r.Post("/", noteHandler.Create)
				r.Put("/{id}", noteHandler.Update)
				r.Delete("/{id}", noteHandler.Delete)
			})
		})
	})

	return r
}
