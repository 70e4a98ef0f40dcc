package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blacknews/blacknews-be/internal/api/handlers"
	"github.com/blacknews/blacknews-be/internal/auth"
	"github.com/blacknews/blacknews-be/internal/resolver"
	"github.com/blacknews/blacknews-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	db *sql.DB,
	res *resolver.Resolver,
	tokens *auth.TokenManager,
	articleService services.ArticleServiceProvider,
	userService services.UserServiceProvider,
	commentService services.CommentServiceProvider,
	allowedOrigins []string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every route sees the optional bearer actor; absence means anonymous.
	r.Use(tokens.Middleware())

	queryHandler := handlers.NewQueryHandler(res)
	articleHandler := handlers.NewArticleHandler(articleService)
	healthHandler := handlers.NewHealthHandler(db, articleService, userService, commentService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Check)

		// The typed query/mutation endpoint
		r.Post("/query", queryHandler.Serve)

		// Minimal REST surface for the admin console
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.List)
			r.Delete("/{id}", articleHandler.Delete)
		})
	})

	return r
}
