// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm calls an OpenAI-compatible chat-completion API. The expansion
// and rating stages share one Completer; tests supply a mock.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/thought-engine/internal/httputil"
	"github.com/pdiddy/thought-engine/pkg/types"
)

// DefaultBaseURL is the Groq OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the completion model used when config leaves it empty.
const DefaultModel = "llama3-8b-8192"

// placeholderKey ships in the sample config and counts as "not configured".
const placeholderKey = "your_groq_api_key_here"

// Message is a single role-tagged message in a completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tunes a single completion call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Completer abstracts the chat-completion API so stages can fall back to
// local computation when the remote capability is absent or failing.
type Completer interface {
	// Configured reports whether a usable credential is present.
	Configured() bool

	// Complete sends the messages and returns the generated text.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
}

// Client is the HTTP Completer.
type Client struct {
	baseURL   string
	model     string
	apiKey    string
	userAgent string
	client    *http.Client
}

var _ Completer = (*Client)(nil)

// NewClient builds a Client from configuration, filling in defaults for
// base URL, model, and timeout.
func NewClient(cfg types.AIConfig, httpCfg types.HTTPConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		model:     model,
		apiKey:    cfg.APIKey,
		userAgent: httpCfg.UserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Configured implements Completer. An empty or placeholder credential means
// callers should use their local fallback instead.
func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

// completionRequest is the request body for the chat completions endpoint.
type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// completionResponse is the subset of the response body we read.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements Completer.
func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	if !c.Configured() {
		return "", fmt.Errorf("completion API key not configured")
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return "", fmt.Errorf("calling completion API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var cResp completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(cResp.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return cResp.Choices[0].Message.Content, nil
}
