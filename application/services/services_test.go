package services

import (
	"context"
	"sync"

	"devlink-backend/application/ports"
	"devlink-backend/domain"
	"devlink-backend/pkg/errors"

	"go.uber.org/zap"
)

// In-memory repository fakes backing the service tests.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NewNotFoundError("user")
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("user")
}

func (r *memoryUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type memoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newMemoryProfileRepo() *memoryProfileRepo {
	return &memoryProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *memoryProfileRepo) Save(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *memoryProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return nil, errors.NewNotFoundError("profile")
	}
	clone := *profile
	return &clone, nil
}

func (r *memoryProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		clone := *profile
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryProfileRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[userID]; !ok {
		return errors.NewNotFoundError("profile")
	}
	delete(r.profiles, userID)
	return nil
}

type memoryPostRepo struct {
	mu    sync.Mutex
	order []string
	posts map[string]*domain.Post
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *memoryPostRepo) Save(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		// Newest first, matching the feed index ordering.
		r.order = append([]string{post.ID}, r.order...)
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memoryPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, errors.NewNotFoundError("post")
	}
	clone := *post
	return &clone, nil
}

func (r *memoryPostRepo) List(ctx context.Context) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Post, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.posts[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryPostRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, id := range r.order {
		if r.posts[id].UserID == userID {
			clone := *r.posts[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memoryPostRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return errors.NewNotFoundError("post")
	}
	delete(r.posts, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event ports.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) detailTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.DetailType)
	}
	return out
}

// testEnv bundles the fakes and services under test.
type testEnv struct {
	users     *memoryUserRepo
	profiles  *memoryProfileRepo
	posts     *memoryPostRepo
	published *recordingPublisher

	auth    *AuthService
	profile *ProfileService
	post    *PostService
}

func newTestEnv(t interface{ Fatalf(string, ...interface{}) }) *testEnv {
	users := newMemoryUserRepo()
	profiles := newMemoryProfileRepo()
	posts := newMemoryPostRepo()
	published := &recordingPublisher{}
	logger := zap.NewNop()

	tokens, err := newTestTokenGenerator()
	if err != nil {
		t.Fatalf("token generator: %v", err)
	}

	return &testEnv{
		users:     users,
		profiles:  profiles,
		posts:     posts,
		published: published,
		auth:      NewAuthService(users, tokens, published, logger),
		profile:   NewProfileService(profiles, users, posts, published, logger),
		post:      NewPostService(posts, users, published, logger),
	}
}
