package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"notes-backend/infrastructure/di"
	"notes-backend/interfaces/http/rest/handlers"
	"notes-backend/interfaces/http/rest/middleware"
	"notes-backend/pkg/auth"
	pkgerrors "notes-backend/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	cfg := rt.container.Config

	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Tracing(rt.container.Tracer))
	router.Use(middleware.CircuitBreaker(middleware.DefaultCircuitBreakerConfig("api"), rt.logger))

	if cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health checks
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, cfg.IsDevelopment())
	authHandler := handlers.NewAuthHandler(rt.container.IdentityService, rt.container.JWTGenerator, errorHandler, rt.logger)
	noteHandler := handlers.NewNoteHandler(rt.container.NoteService, errorHandler, rt.logger)
	statsHandler := handlers.NewStatsHandler(rt.container.StatsService, errorHandler, rt.logger)

	ipLimiter := auth.NewIPRateLimiter(cfg.IPRateLimit)

	// In Lambda each instance holds its own memory, so per-user limits are
	// enforced through the shared DynamoDB-backed limiter instead
	var userLimiter middleware.RateLimiter = auth.NewUserRateLimiter(cfg.UserRateLimit)
	if cfg.IsLambda && rt.container.RateLimiter != nil {
		userLimiter = rt.container.RateLimiter
	}

	authenticate := middleware.Authenticate(rt.container.JWTValidator, ipLimiter, userLimiter, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/profile", authHandler.Profile)
			r.Put("/auth/password", authHandler.UpdatePassword)

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", noteHandler.CreateNote)
				r.Get("/", noteHandler.ListNotes)
				r.Get("/{noteID}", noteHandler.GetNote)
				r.Put("/{noteID}", noteHandler.UpdateNote)
				r.Delete("/{noteID}", noteHandler.DeleteNote)
			})

			r.Get("/stats", statsHandler.GetStats)
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
