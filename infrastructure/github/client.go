package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "devlink-backend/pkg/errors"

	"go.uber.org/zap"
)

// Repository is the subset of the GitHub repository listing returned to
// clients
type Repository struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Watchers    int    `json:"watchers_count"`
	CreatedAt   string `json:"created_at"`
}

// Client looks up a user's public repositories on GitHub
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
	logger     *zap.Logger
}

// NewClient creates a GitHub lookup client. Credentials are optional and
// only raise the upstream rate limit.
func NewClient(baseURL, clientID, secret string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		clientID:   clientID,
		secret:     secret,
		logger:     logger,
	}
}

// ListRepositories returns the user's five most recently created public
// repositories. A non-200 upstream response maps to a not-found error.
func (c *Client) ListRepositories(ctx context.Context, username string) ([]Repository, error) {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.clientID != "" {
		query.Set("client_id", c.clientID)
		query.Set("client_secret", c.secret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewExternalError("github", err)
	}
	req.Header.Set("User-Agent", "devlink-backend")
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("github", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("GitHub lookup failed",
			zap.String("username", username),
			zap.Int("status", resp.StatusCode),
		)
		return nil, apperrors.NewNotFoundError("github profile")
	}

	var repos []Repository
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, apperrors.NewExternalError("github", err)
	}

	return repos, nil
}
