package services

import (
	"context"

	"devlink-backend/application/ports"
	"devlink-backend/domain"
	"devlink-backend/pkg/errors"

	"go.uber.org/zap"
)

// ProfileService handles profile reads, the upsert-merge protocol, the
// experience/education sub-collections and the account deletion cascade
type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	posts    ports.PostRepository
	events   ports.EventPublisher
	logger   *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	posts ports.PostRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		posts:    posts,
		events:   events,
		logger:   logger,
	}
}

// GetOwn loads the authenticated user's profile
func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// GetByUser loads a profile by its owner's identifier
func (s *ProfileService) GetByUser(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// List loads all profiles
func (s *ProfileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// Upsert creates the user's profile when none exists, otherwise merges the
// fields present in the update into the existing profile
func (s *ProfileService) Upsert(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, errors.Wrap(err, "failed to load profile")
		}
		profile = domain.NewProfile(userID)
	}

	profile.Apply(update)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}

	return profile, nil
}

// DeleteCascade removes the user's posts, profile and user record
func (s *ProfileService) DeleteCascade(ctx context.Context, userID string) error {
	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list posts for deletion")
	}
	for _, post := range posts {
		if err := s.posts.Delete(ctx, post.ID); err != nil {
			return errors.Wrap(err, "failed to delete post")
		}
	}

	if err := s.profiles.Delete(ctx, userID); err != nil && !errors.IsNotFound(err) {
		return errors.Wrap(err, "failed to delete profile")
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	s.logger.Info("User account removed",
		zap.String("userID", userID),
		zap.Int("postsDeleted", len(posts)),
	)

	s.events.Publish(ctx, ports.Event{
		DetailType: "user.deleted",
		Detail:     map[string]string{"userId": userID},
	})

	return nil
}

// AddExperience prepends a work history entry to the user's profile
func (s *ProfileService) AddExperience(ctx context.Context, userID string, exp domain.Experience) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddExperience(exp)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	return profile, nil
}

// RemoveExperience deletes a work history entry by identifier
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, experienceID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.RemoveExperience(experienceID); err != nil {
		return nil, errors.NewNotFoundError("experience entry")
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	return profile, nil
}

// AddEducation prepends a schooling entry to the user's profile
func (s *ProfileService) AddEducation(ctx context.Context, userID string, edu domain.Education) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.AddEducation(edu)

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	return profile, nil
}

// RemoveEducation deletes a schooling entry by identifier
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, educationID string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := profile.RemoveEducation(educationID); err != nil {
		return nil, errors.NewNotFoundError("education entry")
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "failed to save profile")
	}
	return profile, nil
}
