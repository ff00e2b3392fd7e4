//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"devlink-backend/application/ports"
	"devlink-backend/application/services"
	"devlink-backend/infrastructure/config"
	"devlink-backend/interfaces/http/rest"
	"devlink-backend/pkg/auth"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	UserRepo       ports.UserRepository
	ProfileRepo    ports.ProfileRepository
	PostRepo       ports.PostRepository
	EventPublisher ports.EventPublisher
	TokenGenerator *auth.JWTGenerator
	TokenValidator *auth.JWTValidator
	AuthService    *services.AuthService
	ProfileService *services.ProfileService
	PostService    *services.PostService
	Router         *rest.Router
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideEventPublisher,
	ProvideUserRepository,
	ProvideProfileRepository,
	ProvidePostRepository,
	ProvideJWTGenerator,
	ProvideJWTValidator,
	ProvideGithubClient,
	ProvideAuthService,
	ProvideProfileService,
	ProvidePostService,
	ProvideAuthHandler,
	ProvideProfileHandler,
	ProvidePostHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
