package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/skilltrek/backend/config"
)

// ProfileContextService looks up a candidate's public profile and distills
// it into free-text interview context. Every failure degrades gracefully;
// the worst outcome is the raw profile URL string.
type ProfileContextService interface {
	FetchContext(ctx context.Context, profileURL, skill string) string
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
}

type githubProfileService struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewGithubProfileService(cfg *config.Config) ProfileContextService {
	return &githubProfileService{
		httpClient: &http.Client{Timeout: cfg.Generator.ProfileTimeout},
		baseURL:    "https://api.github.com",
		token:      cfg.GithubToken,
	}
}

func (s *githubProfileService) FetchContext(ctx context.Context, profileURL, skill string) string {
	if profileURL == "" {
		return ""
	}

	username := usernameFromURL(profileURL)
	repos, err := s.fetchRepos(ctx, username)
	if err != nil {
		log.Warn().Err(err).Str("profile", profileURL).Str("skill", skill).Msg("Profile lookup failed, degrading to raw URL")
		return "GitHub profile: " + profileURL
	}

	// Prefer repos textually related to the skill; fall back to the five
	// most recent.
	skillLower := strings.ToLower(skill)
	var relevant []githubRepo
	for _, r := range repos {
		if strings.Contains(strings.ToLower(r.Name), skillLower) ||
			strings.Contains(strings.ToLower(r.Description), skillLower) ||
			strings.Contains(strings.ToLower(r.Language), skillLower) {
			relevant = append(relevant, r)
		}
	}
	if len(relevant) == 0 {
		if len(repos) > 5 {
			repos = repos[:5]
		}
		relevant = repos
	}
	if len(relevant) > 5 {
		relevant = relevant[:5]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "GitHub: %s\nRecent repos:\n", profileURL)
	for _, r := range relevant {
		desc := r.Description
		if desc == "" {
			desc = "No description"
		}
		lang := r.Language
		if lang == "" {
			lang = "Unknown"
		}
		fmt.Fprintf(&sb, "- %s: %s [%s] %d stars\n", r.Name, desc, lang, r.Stars)
	}
	return sb.String()
}

func (s *githubProfileService) fetchRepos(ctx context.Context, username string) ([]githubRepo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=10", s.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile lookup returned status %d for user %s", resp.StatusCode, username)
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode repo list: %w", err)
	}
	return repos, nil
}

func usernameFromURL(profileURL string) string {
	trimmed := strings.TrimRight(profileURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
