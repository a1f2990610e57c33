package profileapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	"perseval/contexts/trust-intelligence/assessment-service/ports"
)

// Client implements the ProfileProvider port against the profile-fetch
// sidecar. Profile scraping itself stays outside this process; this adapter
// only speaks the sidecar's JSON contract.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) FetchProfile(ctx context.Context, handle string, maxPosts int) (entities.ProfileStats, error) {
	if c.baseURL == "" {
		return entities.ProfileStats{}, fmt.Errorf("profileapi: base url is not configured")
	}
	endpoint := c.baseURL + "/profiles/" + url.PathEscape(entities.NormalizeEntityKey(handle)) +
		"?max_posts=" + strconv.Itoa(maxPosts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.ProfileStats{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.ProfileStats{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.ProfileStats{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return entities.ProfileStats{}, fmt.Errorf("profileapi: status %d for %s", resp.StatusCode, handle)
	}

	var payload struct {
		Platform    string   `json:"platform"`
		Handle      string   `json:"handle"`
		FullName    string   `json:"full_name"`
		Followers   int64    `json:"followers"`
		Following   int64    `json:"following"`
		PostsCount  int64    `json:"posts_count"`
		IsVerified  bool     `json:"is_verified"`
		Bio         string   `json:"bio"`
		URL         string   `json:"url"`
		SamplePosts []string `json:"sample_posts"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return entities.ProfileStats{}, fmt.Errorf("profileapi: decode response: %w", err)
	}
	return entities.ProfileStats{
		Platform:    payload.Platform,
		Handle:      payload.Handle,
		FullName:    payload.FullName,
		Followers:   payload.Followers,
		Following:   payload.Following,
		PostsCount:  payload.PostsCount,
		IsVerified:  payload.IsVerified,
		Bio:         payload.Bio,
		URL:         payload.URL,
		SamplePosts: payload.SamplePosts,
	}, nil
}

var _ ports.ProfileProvider = (*Client)(nil)
