package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devlink-backend/application/ports"
	"devlink-backend/application/services"
	"devlink-backend/domain"
	"devlink-backend/infrastructure/github"
	"devlink-backend/interfaces/http/rest/handlers"
	"devlink-backend/pkg/auth"
	"devlink-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Map-backed repositories so the full HTTP stack runs without DynamoDB.

type stubUserRepo struct{ users map[string]*domain.User }

func (r *stubUserRepo) Save(ctx context.Context, u *domain.User) error {
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("user")
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("user")
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type stubProfileRepo struct{ profiles map[string]*domain.Profile }

func (r *stubProfileRepo) Save(ctx context.Context, p *domain.Profile) error {
	clone := *p
	r.profiles[p.UserID] = &clone
	return nil
}

func (r *stubProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("profile")
}

func (r *stubProfileRepo) List(ctx context.Context) ([]*domain.Profile, error) {
	out := make([]*domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProfileRepo) Delete(ctx context.Context, userID string) error {
	if _, ok := r.profiles[userID]; !ok {
		return errors.NewNotFoundError("profile")
	}
	delete(r.profiles, userID)
	return nil
}

type stubPostRepo struct {
	order []string
	posts map[string]*domain.Post
}

func (r *stubPostRepo) Save(ctx context.Context, p *domain.Post) error {
	if _, ok := r.posts[p.ID]; !ok {
		r.order = append([]string{p.ID}, r.order...)
	}
	clone := *p
	r.posts[p.ID] = &clone
	return nil
}

func (r *stubPostRepo) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, errors.NewNotFoundError("post")
}

func (r *stubPostRepo) List(ctx context.Context) ([]*domain.Post, error) {
	out := make([]*domain.Post, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.posts[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPostRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Post, error) {
	var out []*domain.Post
	for _, id := range r.order {
		if r.posts[id].UserID == userID {
			clone := *r.posts[id]
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubPostRepo) Delete(ctx context.Context, id string) error {
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

type dropPublisher struct{}

func (dropPublisher) Publish(ctx context.Context, event ports.Event) {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	cfg := auth.JWTConfig{SecretKey: "router-test-secret", Issuer: "devlink-test", ExpiryTime: time.Hour}

	generator, err := auth.NewJWTGenerator(cfg)
	require.NoError(t, err)
	validator, err := auth.NewJWTValidator(cfg)
	require.NoError(t, err)

	users := &stubUserRepo{users: map[string]*domain.User{}}
	profiles := &stubProfileRepo{profiles: map[string]*domain.Profile{}}
	posts := &stubPostRepo{posts: map[string]*domain.Post{}}
	publisher := dropPublisher{}

	authService := services.NewAuthService(users, generator, publisher, logger)
	profileService := services.NewProfileService(profiles, users, posts, publisher, logger)
	postService := services.NewPostService(posts, users, publisher, logger)

	githubClient := github.NewClient("http://127.0.0.1:0", "", "", logger)

	router := NewRouter(
		handlers.NewAuthHandler(authService, logger),
		handlers.NewProfileHandler(profileService, githubClient, logger),
		handlers.NewPostHandler(postService, logger),
		validator,
		false,
		logger,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, server *httptest.Server, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func registerUser(t *testing.T, server *httptest.Server, name, email string) string {
	t.Helper()

	resp, body := doJSON(t, server, http.MethodPost, "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var token struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &token))
	require.NotEmpty(t, token.Token)
	return token.Token
}

func TestRegisterThenFetchIdentity(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Jordan Dev", "jordan@example.com")

	resp, body := doJSON(t, server, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "Jordan Dev", user.Name)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.Empty(t, user.Password, "the password hash never leaves the server")
}

func TestRegisterValidation(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, server, http.MethodPost, "/api/users", "", map[string]string{
		"name":     "Jordan",
		"email":    "not-an-email",
		"password": "123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Errors []struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Len(t, envelope.Errors, 2, "one entry per failing field")
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	server := newTestServer(t)

	resp, body := doJSON(t, server, http.MethodGet, "/api/auth", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"errors":[{"msg":"no token provided"}]}`, string(body))
}

func TestLoginFlow(t *testing.T) {
	server := newTestServer(t)
	registerUser(t, server, "Jordan", "jordan@example.com")

	t.Run("valid credentials", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "jordan@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, body := doJSON(t, server, http.MethodPost, "/api/auth", "", map[string]string{
			"email":    "jordan@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.JSONEq(t, `{"errors":[{"msg":"invalid credentials"}]}`, string(body))
	})
}

func TestProfileEndpoints(t *testing.T) {
	server := newTestServer(t)
	token := registerUser(t, server, "Jordan", "jordan@example.com")

	resp, body := doJSON(t, server, http.MethodPost, "/api/profile", token, map[string]string{
		"status":  "Developer",
		"skills":  "Go, AWS , Terraform",
		"company": "Acme",
		"twitter": "https://twitter.com/jordan",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var profile struct {
		Skills []string          `json:"skills"`
		Social map[string]string `json:"social"`
	}
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, []string{"Go", "AWS", "Terraform"}, profile.Skills)
	assert.Equal(t, "https://twitter.com/jordan", profile.Social["twitter"])

	t.Run("profile listing is public", func(t *testing.T) {
		resp, body := doJSON(t, server, http.MethodGet, "/api/profile", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profiles []json.RawMessage
		require.NoError(t, json.Unmarshal(body, &profiles))
		assert.Len(t, profiles, 1)
	})

	t.Run("missing required fields", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodPost, "/api/profile", token, map[string]string{
			"company": "Acme",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPostEndpoints(t *testing.T) {
	server := newTestServer(t)
	author := registerUser(t, server, "Jordan", "jordan@example.com")
	reader := registerUser(t, server, "Casey", "casey@example.com")

	resp, body := doJSON(t, server, http.MethodPost, "/api/post", author, map[string]string{
		"title": "Release notes",
		"text":  "Shipped v1.",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &post))
	require.NotEmpty(t, post.ID)

	t.Run("feed is public", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodGet, "/api/post", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("like then duplicate like", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodPut, "/api/post/like/"+post.ID, reader, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, server, http.MethodPut, "/api/post/like/"+post.ID, reader, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.JSONEq(t, `{"errors":[{"msg":"post has already been liked"}]}`, string(body))
	})

	t.Run("delete by non-author is forbidden", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodDelete, "/api/post/"+post.ID, reader, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("comment lifecycle", func(t *testing.T) {
		resp, body := doJSON(t, server, http.MethodPost, "/api/post/comment/"+post.ID, reader, map[string]string{
			"text": "congrats",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var comments []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(body, &comments))
		require.Len(t, comments, 1)

		path := fmt.Sprintf("/api/post/comment/%s/%s", post.ID, comments[0].ID)
		resp, _ = doJSON(t, server, http.MethodDelete, path, reader, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp, _ := doJSON(t, server, http.MethodGet, "/api/post/does-not-exist", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
