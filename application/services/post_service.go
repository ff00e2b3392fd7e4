package services

import (
	"context"
	stderrors "errors"

	"devlink-backend/application/ports"
	"devlink-backend/domain"
	"devlink-backend/pkg/errors"

	"go.uber.org/zap"
)

// PostService handles the post feed: creation, deletion, likes and comments
type PostService struct {
	posts  ports.PostRepository
	users  ports.UserRepository
	events ports.EventPublisher
	logger *zap.Logger
}

// NewPostService creates a new post service
func NewPostService(
	posts ports.PostRepository,
	users ports.UserRepository,
	events ports.EventPublisher,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		events: events,
		logger: logger,
	}
}

// CreatePostInput carries a post creation request
type CreatePostInput struct {
	Title  string
	Text   string
	Link   string
	Images []domain.Image
}

// Create stores a post stamped with the author's current name and avatar
func (s *PostService) Create(ctx context.Context, userID string, input CreatePostInput) (*domain.Post, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := domain.NewPost(author, input.Title, input.Text, input.Link, input.Images)

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to save post")
	}

	s.events.Publish(ctx, ports.Event{
		DetailType: "post.created",
		Detail:     map[string]string{"postId": post.ID, "userId": userID},
	})

	return post, nil
}

// List loads all posts, newest first
func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

// ListByUser loads the user's posts, newest first
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// Get loads a post by identifier
func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.posts.GetByID(ctx, postID)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != requesterID {
		return errors.NewForbiddenError("user not authorized")
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return errors.Wrap(err, "failed to delete post")
	}

	s.events.Publish(ctx, ports.Event{
		DetailType: "post.deleted",
		Detail:     map[string]string{"postId": postID, "userId": requesterID},
	})

	return nil
}

// Like records a like by the user and returns the post's like collection
func (s *PostService) Like(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := post.AddLike(userID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to save post")
	}
	return post.Likes, nil
}

// Unlike removes the user's like and returns the post's like collection
func (s *PostService) Unlike(ctx context.Context, postID, userID string) ([]domain.Like, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := post.RemoveLike(userID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to save post")
	}
	return post.Likes, nil
}

// AddComment appends a comment snapshot and returns the comment collection
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) ([]domain.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	post.AddComment(author, text)

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to save post")
	}
	return post.Comments, nil
}

// RemoveComment deletes the requester's own comment and returns the
// remaining comment collection
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := post.RemoveComment(commentID, requesterID); err != nil {
		switch {
		case stderrors.Is(err, domain.ErrCommentNotFound):
			return nil, errors.NewNotFoundError("comment")
		case stderrors.Is(err, domain.ErrNotCommentAuthor):
			return nil, errors.NewForbiddenError("user not authorized")
		default:
			return nil, errors.Wrap(err, "failed to remove comment")
		}
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, errors.Wrap(err, "failed to save post")
	}
	return post.Comments, nil
}
