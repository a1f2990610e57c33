package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"perseval/contexts/trust-intelligence/assessment-service/domain/entities"
	"perseval/contexts/trust-intelligence/assessment-service/ports"
)

const defaultEndpoint = "https://google.serper.dev/search"

// Client implements the SearchProvider port over Serper.dev. Results across
// all queries are merged and deduplicated by link.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		apiKey:     apiKey,
	}
}

func (c *Client) Search(ctx context.Context, queries []string, maxResults int) ([]entities.SearchSnippet, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("serper: api key is not configured")
	}
	if maxResults <= 0 {
		maxResults = 8
	}

	seen := make(map[string]struct{})
	var snippets []entities.SearchSnippet
	for _, query := range queries {
		if strings.TrimSpace(query) == "" {
			continue
		}
		results, err := c.search(ctx, query, maxResults)
		if err != nil {
			return nil, err
		}
		for _, result := range results {
			link := strings.TrimSpace(result.Link)
			if link == "" {
				continue
			}
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
			snippets = append(snippets, entities.SearchSnippet{
				Title:   result.Title,
				Snippet: result.Snippet,
				Link:    link,
			})
			if len(snippets) >= maxResults {
				return snippets, nil
			}
		}
	}
	return snippets, nil
}

type organicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

func (c *Client) search(ctx context.Context, query string, num int) ([]organicResult, error) {
	body, err := json.Marshal(map[string]any{
		"q":   query,
		"num": num,
		"gl":  "us",
		"hl":  "en",
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper: status %d", resp.StatusCode)
	}

	var payload struct {
		Organic []organicResult `json:"organic"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}
	return payload.Organic, nil
}

var _ ports.SearchProvider = (*Client)(nil)
