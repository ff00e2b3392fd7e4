package services

import (
	"context"

	"devlink-backend/application/ports"
	"devlink-backend/domain"
	"devlink-backend/pkg/auth"
	"devlink-backend/pkg/errors"
	"devlink-backend/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and identity lookup
type AuthService struct {
	users  ports.UserRepository
	tokens *auth.JWTGenerator
	events ports.EventPublisher
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users ports.UserRepository,
	tokens *auth.JWTGenerator,
	events ports.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		events: events,
		logger: logger,
	}
}

// RegisterInput carries a registration request
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a user with a hashed password and a gravatar-derived
// avatar, then issues an access token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return "", errors.NewValidationError("user already exists")
	} else if !errors.IsNotFound(err) {
		return "", errors.Wrap(err, "failed to check existing user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	user := domain.NewUser(input.Name, input.Email, string(hash), utils.GravatarURL(input.Email))

	if err := s.users.Save(ctx, user); err != nil {
		return "", errors.Wrap(err, "failed to save user")
	}

	s.logger.Info("User registered",
		zap.String("userID", user.ID),
		zap.String("email", user.Email),
	)

	s.events.Publish(ctx, ports.Event{
		DetailType: "user.registered",
		Detail:     map[string]string{"userId": user.ID, "email": user.Email},
	})

	return s.tokens.GenerateToken(user.ID, user.Email)
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.NewUnauthorizedError("invalid credentials")
		}
		return "", errors.Wrap(err, "failed to load user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.NewUnauthorizedError("invalid credentials")
	}

	return s.tokens.GenerateToken(user.ID, user.Email)
}

// CurrentUser loads the authenticated identity's user record
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
