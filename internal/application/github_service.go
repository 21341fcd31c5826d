package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/devconnect/devconnect/pkg/helpers"
)

var (
	ErrGithubUserNotFound = errors.New("github user not found")
	ErrGatewayTimeout     = errors.New("github request timed out")
	ErrGateway            = errors.New("github request failed")
)

// GithubRepo is the subset of the GitHub repository payload the API exposes.
type GithubRepo struct {
	Name            string `json:"name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	WatchersCount   int    `json:"watchers_count"`
}

// GithubService fetches a user's five most recent public repositories. The
// outbound call always runs under an explicit timeout; a hung upstream
// surfaces as a gateway timeout instead of stalling the request.
type GithubService struct {
	Client   *http.Client
	BaseURL  string
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   *logrus.Logger
}

func NewGithubService(baseURL string, timeout time.Duration, rdb *redis.Client, cacheTTL time.Duration, logger *logrus.Logger) *GithubService {
	return &GithubService{
		Client:   &http.Client{Timeout: timeout},
		BaseURL:  baseURL,
		Redis:    rdb,
		CacheTTL: cacheTTL,
		Logger:   logger,
	}
}

func githubCacheKey(username string) string {
	return "github:repos:" + username
}

// Repos lists the user's repositories, consulting the Redis cache first.
func (s *GithubService) Repos(ctx context.Context, username string) ([]GithubRepo, error) {
	if s.Redis != nil {
		var cached []GithubRepo
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, githubCacheKey(username), &cached); err == nil && ok {
			return cached, nil
		}
	}

	u := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", s.BaseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "devconnect")

	resp, err := s.Client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, ErrGatewayTimeout
		}
		return nil, ErrGateway
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrGithubUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, ErrGateway
	}

	var repos []GithubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, ErrGateway
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, githubCacheKey(username), repos, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Warn("failed to cache github repos")
		}
	}
	return repos, nil
}
