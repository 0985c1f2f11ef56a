//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"notes-backend/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideUserRepository,
	ProvideNoteRepository,
	ProvideEventBus,
	ProvideMetrics,
	ProvideTracer,
	ProvideJWTValidator,
	ProvideJWTGenerator,
	ProvideIdentityService,
	ProvideNoteService,
	ProvideStatsService,
	ProvideDistributedRateLimiter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
