package ports

import (
	"context"

	"devlink-backend/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save persists a user (create or update)
	Save(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by identifier
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by unique email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines the interface for profile persistence.
// A user owns at most one profile, keyed by the user's identifier.
type ProfileRepository interface {
	// Save persists a profile (create or update)
	Save(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile owned by a user
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)

	// List retrieves all profiles
	List(ctx context.Context) ([]*domain.Profile, error)

	// Delete removes the profile owned by a user
	Delete(ctx context.Context, userID string) error
}

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// Save persists a post with its embedded likes and comments
	Save(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by identifier
	GetByID(ctx context.Context, id string) (*domain.Post, error)

	// List retrieves all posts, newest first
	List(ctx context.Context) ([]*domain.Post, error)

	// ListByUser retrieves a user's posts, newest first
	ListByUser(ctx context.Context, userID string) ([]*domain.Post, error)

	// Delete removes a post
	Delete(ctx context.Context, id string) error
}

// Event is a lifecycle event published after a successful mutation
type Event struct {
	// DetailType identifies the kind of event, e.g. "user.registered"
	DetailType string

	// Detail is the JSON-serializable event payload
	Detail interface{}
}

// EventPublisher publishes lifecycle events. Publishing is best effort:
// implementations log failures and never fail the originating request.
type EventPublisher interface {
	Publish(ctx context.Context, event Event)
}
