package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileServiceForTest(baseURL string) *githubProfileService {
	return &githubProfileService{
		httpClient: &http.Client{Timeout: time.Second},
		baseURL:    baseURL,
	}
}

func TestFetchContextEmptyURLReturnsEmpty(t *testing.T) {
	svc := newProfileServiceForTest("http://127.0.0.1:0")
	assert.Empty(t, svc.FetchContext(context.Background(), "", "go"))
}

func TestFetchContextBuildsRepoSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "go-cache", "description": "An LRU cache", "language": "Go", "stargazers_count": 12},
			{"name": "dotfiles", "description": "", "language": "", "stargazers_count": 1}
		]`))
	}))
	defer server.Close()

	svc := newProfileServiceForTest(server.URL)
	got := svc.FetchContext(context.Background(), "https://github.com/octocat", "go")

	assert.Contains(t, got, "GitHub: https://github.com/octocat")
	assert.Contains(t, got, "go-cache: An LRU cache [Go] 12 stars")
	// Skill-relevant repos crowd out unrelated ones.
	assert.NotContains(t, got, "dotfiles")
}

func TestFetchContextFallsBackToRecentRepos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "r1", "description": "", "language": "Rust", "stargazers_count": 0},
			{"name": "r2", "description": "", "language": "Rust", "stargazers_count": 0},
			{"name": "r3", "description": "", "language": "Rust", "stargazers_count": 0},
			{"name": "r4", "description": "", "language": "Rust", "stargazers_count": 0},
			{"name": "r5", "description": "", "language": "Rust", "stargazers_count": 0},
			{"name": "r6", "description": "", "language": "Rust", "stargazers_count": 0}
		]`))
	}))
	defer server.Close()

	svc := newProfileServiceForTest(server.URL)
	got := svc.FetchContext(context.Background(), "https://github.com/octocat", "haskell")

	// No skill match: the five most recent repos are used, capped at five.
	assert.Contains(t, got, "r5")
	assert.NotContains(t, got, "r6")
	assert.Contains(t, got, "No description")
}

func TestFetchContextDegradesToRawURLOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	svc := newProfileServiceForTest(server.URL)
	got := svc.FetchContext(context.Background(), "https://github.com/octocat", "go")
	assert.Equal(t, "GitHub profile: https://github.com/octocat", got)
}

func TestFetchContextSendsTokenWhenConfigured(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := newProfileServiceForTest(server.URL)
	svc.token = "secret"
	svc.FetchContext(context.Background(), "https://github.com/octocat", "go")
	assert.Equal(t, "Bearer secret", auth)
}

func TestUsernameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/octocat", "octocat"},
		{"https://github.com/octocat/", "octocat"},
		{"octocat", "octocat"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, usernameFromURL(tt.in))
	}
}
