// Package proxy forwards a user question to an external chat-completion
// provider and relays the reply. All failures are absorbed into a Result —
// the caller never sees a raw error or HTTP status.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 500
)

var defaultEndpoints = map[string]string{
	ProviderOpenAI:   "https://api.openai.com/v1/chat/completions",
	ProviderDeepSeek: "https://api.deepseek.com/v1/chat/completions",
	ProviderGemini:   "https://generativelanguage.googleapis.com/v1beta/models",
}

var defaultModels = map[string]string{
	ProviderOpenAI:   "gpt-3.5-turbo",
	ProviderDeepSeek: "deepseek-chat",
	ProviderGemini:   "gemini-1.5-flash",
}

// Client issues one completion call per user turn. When more than one
// provider is configured the providers form an ordered chain: each is tried
// in sequence and the first success wins.
type Client struct {
	providers  []Settings
	endpoints  map[string]string
	httpClient *http.Client
}

// NewClient creates a Client over the given provider chain. An empty chain
// is valid; every call then returns the local fallback.
func NewClient(providers ...Settings) *Client {
	return &Client{
		providers:  providers,
		endpoints:  defaultEndpoints,
		httpClient: &http.Client{},
	}
}

// NewClientWithEndpoints creates a Client whose provider endpoints are
// overridden (for testing).
func NewClientWithEndpoints(endpoints map[string]string, providers ...Settings) *Client {
	c := NewClient(providers...)
	merged := make(map[string]string, len(defaultEndpoints))
	for k, v := range defaultEndpoints {
		merged[k] = v
	}
	for k, v := range endpoints {
		merged[k] = strings.TrimRight(v, "/")
	}
	c.endpoints = merged
	return c
}

// Configured reports whether at least one provider is set up.
func (c *Client) Configured() bool {
	return len(c.providers) > 0
}

// Complete forwards the message, prior history, and formatted data source to
// the provider chain. It never returns an error: failures come back as
// Result{Success: false} with a descriptive Error and a local Fallback text.
func (c *Client) Complete(ctx context.Context, message string, history []Turn, system string) Result {
	if len(c.providers) == 0 {
		return Result{
			Success:  false,
			Error:    "API key not configured",
			Fallback: GenerateFallback(message),
		}
	}

	var errs []string
	for _, s := range c.providers {
		content, usage, err := c.completeOne(ctx, s, message, history, system)
		if err == nil {
			return Result{Success: true, Content: content, Usage: usage}
		}
		slog.Warn("provider call failed", "provider", s.Provider, "error", err)
		errs = append(errs, err.Error())
	}

	return Result{
		Success:  false,
		Error:    strings.Join(errs, "; "),
		Fallback: GenerateFallback(message),
	}
}

func (c *Client) completeOne(ctx context.Context, s Settings, message string, history []Turn, system string) (string, *Usage, error) {
	if s.APIKey == "" {
		return "", nil, fmt.Errorf("API key not configured")
	}

	model := s.Model
	if model == "" {
		model = defaultModels[s.Provider]
	}

	switch s.Provider {
	case ProviderOpenAI, ProviderDeepSeek:
		return c.completeChat(ctx, s, model, message, history, system)
	case ProviderGemini:
		return c.completeGemini(ctx, s, model, message, history, system)
	default:
		return "", nil, fmt.Errorf("unsupported provider: %s", s.Provider)
	}
}

// chatResponse is the OpenAI/DeepSeek-style completion response.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage *Usage `json:"usage"`
}

func (c *Client) completeChat(ctx context.Context, s Settings, model, message string, history []Turn, system string) (string, *Usage, error) {
	body := map[string]any{
		"model":       model,
		"messages":    buildMessages(system, history, message),
		"temperature": defaultTemperature,
		"max_tokens":  defaultMaxTokens,
	}

	data, err := c.post(ctx, s.Provider, c.endpoints[s.Provider], "Bearer "+s.APIKey, body)
	if err != nil {
		return "", nil, err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil || len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("invalid response from %s API", s.Provider)
	}
	return resp.Choices[0].Message.Content, resp.Usage, nil
}

// geminiResponse is the Gemini-style generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) completeGemini(ctx context.Context, s Settings, model, message string, history []Turn, system string) (string, *Usage, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": buildGeminiPrompt(system, history, message)}}},
		},
		"generationConfig": map[string]any{
			"temperature":     defaultTemperature,
			"maxOutputTokens": defaultMaxTokens,
		},
	}

	// Gemini authenticates via an API key in the URL rather than a header.
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.endpoints[s.Provider], model, url.QueryEscape(s.APIKey))

	data, err := c.post(ctx, s.Provider, endpoint, "", body)
	if err != nil {
		return "", nil, err
	}

	var resp geminiResponse
	if err := json.Unmarshal(data, &resp); err != nil ||
		len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil, fmt.Errorf("invalid response from %s API", s.Provider)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil, nil
}

// post issues the single synchronous round trip for a turn. No retries, no
// streaming; the transport's defaults govern the timeout.
func (c *Client) post(ctx context.Context, provider, endpoint, auth string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling %s API: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s API error: %d", provider, resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("reading %s response: %w", provider, err)
	}
	return buf.Bytes(), nil
}
