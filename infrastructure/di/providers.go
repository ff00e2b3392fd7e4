package di

import (
	"context"

	"devlink-backend/application/ports"
	"devlink-backend/application/services"
	"devlink-backend/infrastructure/config"
	"devlink-backend/infrastructure/github"
	"devlink-backend/infrastructure/messaging/eventbridge"
	"devlink-backend/infrastructure/persistence/dynamodb"
	"devlink-backend/interfaces/http/rest"
	"devlink-backend/interfaces/http/rest/handlers"
	"devlink-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
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

// ProvideEventPublisher creates an event publisher. Without a configured
// bus name events are discarded.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if cfg.EventBusName == "" {
		return eventbridge.NoopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideUserRepository creates a user repository
func ProvideUserRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UserRepository {
	return dynamodb.NewUserRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName, // GSI1 for email lookups
		logger,
	)
}

// ProvideProfileRepository creates a profile repository
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewProfileRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName, // GSI1 for the all-profiles listing
		logger,
	)
}

// ProvidePostRepository creates a post repository
func ProvidePostRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PostRepository {
	return dynamodb.NewPostRepository(
		client,
		cfg.DynamoDBTable,
		cfg.IndexName,     // GSI1 for per-author queries
		cfg.GSI2IndexName, // GSI2 for the global feed
		logger,
	)
}

// ProvideJWTGenerator creates the token issuer
func ProvideJWTGenerator(cfg *config.Config) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(auth.JWTConfig{
		SecretKey:  cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		ExpiryTime: cfg.TokenTTL,
	})
}

// ProvideJWTValidator creates the token verifier
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideGithubClient creates the GitHub API client
func ProvideGithubClient(cfg *config.Config, logger *zap.Logger) *github.Client {
	return github.NewClient(cfg.GithubAPIURL, cfg.GithubClientID, cfg.GithubSecret, logger)
}

// ProvideAuthService creates the auth service
func ProvideAuthService(
	users ports.UserRepository,
	tokens *auth.JWTGenerator,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.AuthService {
	return services.NewAuthService(users, tokens, events, logger)
}

// ProvideProfileService creates the profile service
func ProvideProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	posts ports.PostRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.ProfileService {
	return services.NewProfileService(profiles, users, posts, events, logger)
}

// ProvidePostService creates the post service
func ProvidePostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *services.PostService {
	return services.NewPostService(posts, users, events, logger)
}

// ProvideAuthHandler creates the auth handler
func ProvideAuthHandler(authService *services.AuthService, logger *zap.Logger) *handlers.AuthHandler {
	return handlers.NewAuthHandler(authService, logger)
}

// ProvideProfileHandler creates the profile handler
func ProvideProfileHandler(
	profileService *services.ProfileService,
	githubClient *github.Client,
	logger *zap.Logger,
) *handlers.ProfileHandler {
	return handlers.NewProfileHandler(profileService, githubClient, logger)
}

// ProvidePostHandler creates the post handler
func ProvidePostHandler(postService *services.PostService, logger *zap.Logger) *handlers.PostHandler {
	return handlers.NewPostHandler(postService, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	postHandler *handlers.PostHandler,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(authHandler, profileHandler, postHandler, validator, cfg.EnableCORS, logger)
}
