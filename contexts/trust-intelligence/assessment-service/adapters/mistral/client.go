package mistral

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

const (
	defaultEndpoint = "https://api.mistral.ai/v1/chat/completions"
	defaultModel    = "mistral-small-latest"
)

const classifierSystemPrompt = `You are a risk analysis assistant.
Given the text of a social media post, decide whether it is likely part of a scam,
high-risk misleading promotion, or not.

Be conservative:
- Use "scam" when there are clear red flags: guaranteed returns, crypto doubling,
  suspicious links, pressure to act now, miracle cures, impersonation, etc.
- Use "not_scam" when it is clearly harmless.
- Use "uncertain" only when there is genuinely not enough information.

You MUST respond with a single JSON object with EXACTLY these keys:
- "label": one of "scam", "not_scam", or "uncertain"
- "score": a number between 0 and 1 (float) representing your confidence
- "reason": a short human-readable explanation string

Rules:
- Do NOT include any additional keys.
- Do NOT add explanations outside the JSON.
- Do NOT use Markdown.`

const judgeSystemPrompt = `You review public web snippets about %s.

Given titles/snippets from search results, answer:
- Are there credible accusations of scams, fraud, lawsuits, or major controversies?
- Rate reliability between 0 and 1 (1 = very reliable, 0 = clearly untrustworthy).

Be conservative: some negative coverage is normal, but repeated mentions of scams,
lawsuits, or investigations indicate low reliability. Focus on credible reports
(news outlets, regulators, well-documented investigations) and ignore gossip.

Respond ONLY as JSON:
{
  "reliability": 0-1 float,
  "issues": [list of notable problems or an empty list],
  "summary": "short explanation"
}`

// Client implements the Classifier and ReputationJudge ports over the Mistral
// chat completions API with JSON-object responses.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
}

func NewClient(httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   defaultEndpoint,
		model:      defaultModel,
		apiKey:     apiKey,
	}
}

func (c *Client) ClassifyText(ctx context.Context, text string) (entities.Classification, error) {
	var parsed struct {
		Label  string  `json:"label"`
		Score  float64 `json:"score"`
		Reason string  `json:"reason"`
	}
	err := c.completeJSON(ctx, []chatMessage{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: "Post text:\n" + text},
	}, &parsed)
	if err != nil {
		return entities.Classification{}, err
	}

	label := entities.ClassificationLabel(parsed.Label)
	switch label {
	case entities.ClassificationScam, entities.ClassificationNotScam, entities.ClassificationUncertain:
	default:
		label = entities.ClassificationUncertain
	}
	return entities.Classification{
		Label:  label,
		Score:  parsed.Score,
		Reason: parsed.Reason,
	}, nil
}

func (c *Client) JudgeReputation(
	ctx context.Context,
	kind entities.EntityKind,
	entityName string,
	snippets []entities.SearchSnippet,
) (entities.ReputationVerdict, error) {
	subject := map[entities.EntityKind]string{
		entities.EntityKindInfluencer: "a social media influencer",
		entities.EntityKindCompany:    "a company",
		entities.EntityKindProduct:    "a consumer product or offer",
	}[kind]
	if subject == "" {
		subject = "an entity"
	}

	userPayload, err := json.Marshal(map[string]any{
		"entity":   entityName,
		"snippets": snippetPayload(snippets),
	})
	if err != nil {
		return entities.ReputationVerdict{}, err
	}

	var parsed struct {
		Reliability float64  `json:"reliability"`
		Issues      []string `json:"issues"`
		Summary     string   `json:"summary"`
	}
	err = c.completeJSON(ctx, []chatMessage{
		{Role: "system", Content: fmt.Sprintf(judgeSystemPrompt, subject)},
		{Role: "user", Content: string(userPayload)},
	}, &parsed)
	if err != nil {
		return entities.ReputationVerdict{}, err
	}
	return entities.ReputationVerdict{
		Reliability: parsed.Reliability,
		Issues:      parsed.Issues,
		Summary:     parsed.Summary,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *Client) completeJSON(ctx context.Context, messages []chatMessage, out any) error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("mistral: api key is not configured")
	}
	body, err := json.Marshal(map[string]any{
		"model":           c.model,
		"response_format": map[string]string{"type": "json_object"},
		"messages":        messages,
		"temperature":     0.2,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mistral: status %d: %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var envelope struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("mistral: decode envelope: %w", err)
	}
	if len(envelope.Choices) == 0 {
		return fmt.Errorf("mistral: response has no choices")
	}
	content := stripJSONFences(envelope.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("mistral: decode content: %w", err)
	}
	return nil
}

func snippetPayload(snippets []entities.SearchSnippet) []map[string]string {
	out := make([]map[string]string, 0, len(snippets))
	for _, s := range snippets {
		out = append(out, map[string]string{
			"title":   s.Title,
			"snippet": s.Snippet,
			"link":    s.Link,
		})
	}
	return out
}

// stripJSONFences tolerates models that wrap the JSON object in markdown
// fences despite the response_format hint.
func stripJSONFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		var kept []string
		for _, line := range strings.Split(cleaned, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				continue
			}
			kept = append(kept, line)
		}
		cleaned = strings.TrimSpace(strings.Join(kept, "\n"))
	}
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

var _ ports.Classifier = (*Client)(nil)
var _ ports.ReputationJudge = (*Client)(nil)
