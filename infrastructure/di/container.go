package di

import (
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/application/services"
	"notes-backend/infrastructure/config"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *zap.Logger
	UserRepo        ports.UserRepository
	NoteRepo        ports.NoteRepository
	EventBus        ports.EventBus
	IdentityService *services.IdentityService
	NoteService     *services.NoteService
	StatsService    *services.StatsService
	JWTValidator    *auth.JWTValidator
	JWTGenerator    *auth.JWTGenerator
	Metrics         *observability.Metrics
	Tracer          *observability.Tracer
	RateLimiter     *auth.DistributedRateLimiter
}
