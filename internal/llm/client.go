// Package llm provides the OpenAI-style chat-completion client used for
// AI mood insights.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/moodtracker/moodtracker/internal/core"
)

// Client handles chat-completion API calls
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client

	mu     sync.RWMutex
	apiKey string
}

// Config for the LLM client
type Config struct {
	APIKey  string
	BaseURL string // API base URL
	Model   string // Model to use
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.openai.com",
		Model:   "gpt-4",
		Timeout: 60 * time.Second,
	}
}

// NewClient creates a new LLM client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Message represents a conversation message
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// Request is the API request structure
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Response is the API response structure
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// SetAPIKey updates the credential used for subsequent calls.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
}

// IsConfigured checks if an API key is set
func (c *Client) IsConfigured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// Complete sends a completion request
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()

	if apiKey == "" {
		return nil, core.ErrNoAPIKey
	}

	if req.Model == "" {
		req.Model = c.model
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(respBody))
	}

	var llmResp Response
	if err := json.Unmarshal(respBody, &llmResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &llmResp, nil
}

// Chat is a convenience method for a single user prompt. It returns the
// first choice's content.
func (c *Client) Chat(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.Complete(ctx, Request{
		Messages:    []Message{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}

	return resp.Choices[0].Message.Content, nil
}
