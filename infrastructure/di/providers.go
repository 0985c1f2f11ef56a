package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"notes-backend/application/ports"
	"notes-backend/application/services"
	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/messaging/eventbridge"
	"notes-backend/infrastructure/persistence/dynamodb"
	"notes-backend/pkg/auth"
	"notes-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration. The standard retryer handles
// transient store errors with bounded exponential backoff; conditional-write
// failures are terminal and never retried by the SDK.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithRetryer(func() aws.Retryer {
			return retry.NewStandard(func(o *retry.StandardOptions) {
				o.MaxAttempts = cfg.MaxRetryAttempts
			})
		}),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideNoteRepository creates a note repository
func ProvideNoteRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.NoteRepository {
	return dynamodb.NewNoteRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventBus creates an event bus. Development without an event bus
// falls back to a no-op publisher.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, tracer *observability.Tracer, logger *zap.Logger) ports.EventBus {
	if cfg.EventBusName == "" {
		return eventbridge.NoopBus{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, tracer, logger)
}

// ProvideMetrics creates the metrics emitter, nil when metrics are disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("NotesBackend/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client, logger)
}

// ProvideTracer creates the tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer("notes-backend", cfg.EnableTracing)
}

// jwtSecret falls back to a fixed secret in development so the service
// starts without env setup. Production config validation requires JWT_SECRET.
func jwtSecret(cfg *config.Config) string {
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		return "dev-secret-do-not-use-in-production"
	}
	return cfg.JWTSecret
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: jwtSecret(cfg),
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideJWTGenerator creates the token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey: jwtSecret(cfg),
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideIdentityService creates the identity service
func ProvideIdentityService(userRepo ports.UserRepository, eventBus ports.EventBus, logger *zap.Logger) *services.IdentityService {
	return services.NewIdentityService(userRepo, eventBus, logger)
}

// ProvideNoteService creates the note service
func ProvideNoteService(noteRepo ports.NoteRepository, eventBus ports.EventBus, logger *zap.Logger) *services.NoteService {
	return services.NewNoteService(noteRepo, eventBus, logger)
}

// ProvideStatsService creates the stats service
func ProvideStatsService(noteRepo ports.NoteRepository, metrics *observability.Metrics, logger *zap.Logger) *services.StatsService {
	return services.NewStatsService(noteRepo, metrics, logger)
}

// ProvideDistributedRateLimiter creates a DynamoDB-backed rate limiter for
// Lambda deployments, where in-memory buckets reset on every cold start
func ProvideDistributedRateLimiter(client *awsdynamodb.Client, cfg *config.Config) *auth.DistributedRateLimiter {
	return auth.NewDistributedRateLimiter(
		client,
		cfg.DynamoDBTable,
		cfg.UserRateLimit,
		1*time.Minute,
		"API",
	)
}
