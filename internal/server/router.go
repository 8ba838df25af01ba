package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/zentask/zentask/internal/server/auth"
	"github.com/zentask/zentask/internal/server/store"
)

// NewRouter assembles the full API route tree.
func NewRouter(users store.UserStore, todos store.TodoStore, tokens *auth.TokenService) http.Handler {
	authHandler := NewAuthHandler(users, tokens, auth.NewBcryptVerifier())
	todoHandler := NewTodoHandler(todos)
	authMiddleware := NewAuthMiddleware(tokens)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		RespondWithError(w, req, http.StatusNotFound, "URL Not Found")
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh-token", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/user/me", authHandler.Me)

			r.Route("/todo", func(r chi.Router) {
				r.Get("/list", todoHandler.List)
				r.Post("/seed", todoHandler.Seed)
				r.Post("/", todoHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", todoHandler.Get)
					r.Put("/", todoHandler.Update)
					r.Delete("/", todoHandler.Delete)
					r.Post("/complete", todoHandler.Complete)
					r.Post("/incomplete", todoHandler.Incomplete)
				})
			})
		})
	})

	return r
}
