package rest

import (
	"net/http"

	"devlink-backend/interfaces/http/rest/handlers"
	"devlink-backend/interfaces/http/rest/middleware"
	"devlink-backend/pkg/auth"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	postHandler    *handlers.PostHandler
	validator      *auth.JWTValidator
	enableCORS     bool
	logger         *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	postHandler *handlers.PostHandler,
	validator *auth.JWTValidator,
	enableCORS bool,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		postHandler:    postHandler,
		validator:      validator,
		enableCORS:     enableCORS,
		logger:         logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.devlink.dev"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "x-auth-token"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	authenticate := middleware.Authenticate(rt.validator, rt.logger)

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api", func(r chi.Router) {
		// Registration
		r.Post("/users", rt.authHandler.Register)

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/", rt.authHandler.Login)
			r.With(authenticate).Get("/", rt.authHandler.Me)
		})

		// Profiles
		r.Route("/profile", func(r chi.Router) {
			r.Get("/", rt.profileHandler.List)
			r.Get("/user/{userID}", rt.profileHandler.GetByUser)
			r.Get("/github/{username}", rt.profileHandler.GithubRepos)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/me", rt.profileHandler.Me)
				r.Post("/", rt.profileHandler.Upsert)
				r.Delete("/", rt.profileHandler.Delete)
				r.Post("/experience", rt.profileHandler.AddExperience)
				r.Delete("/experience/{expID}", rt.profileHandler.RemoveExperience)
				r.Post("/education", rt.profileHandler.AddEducation)
				r.Delete("/education/{eduID}", rt.profileHandler.RemoveEducation)
			})
		})

		// Posts
		r.Route("/post", func(r chi.Router) {
			r.Get("/", rt.postHandler.List)
			r.Get("/{postID}", rt.postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", rt.postHandler.Create)
				r.Get("/me", rt.postHandler.ListMine)
				r.Delete("/{postID}", rt.postHandler.Delete)
				r.Put("/like/{postID}", rt.postHandler.Like)
				r.Put("/unlike/{postID}", rt.postHandler.Unlike)
				r.Post("/comment/{postID}", rt.postHandler.AddComment)
				r.Delete("/comment/{postID}/{commentID}", rt.postHandler.RemoveComment)
			})
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
