// Package llm implements the LanguageModel collaborator over an
// OpenAI-compatible chat-completions endpoint.
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

	"aria/internal/config"
	"aria/internal/logging"
	"aria/internal/ports"
)

// Client is an HTTP chat-completions client. A Client with an empty API
// key reports itself unavailable rather than failing mid-call.
type Client struct {
	model      string
	apiKey     string
	baseURL    string
	maxRetries int
	httpClient *http.Client
	logger     logging.Logger
}

// New builds a Client from configuration.
func New(cfg config.LLMConfig, logger logging.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		maxRetries: cfg.MaxRetries,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.OrNop(logger),
	}
}

// Available reports whether the client is configured to reach a model.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one chat-completion request and returns the assistant text.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("llm client not configured")
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:    c.model,
		Messages: messages,
	}
	if req.ForceJSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var lastErr error
	attempts := c.maxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
			c.logger.Debug("llm: retrying request (attempt %d/%d)", attempt+1, attempts)
		}
		text, retryable, err := c.doChat(ctx, payload)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return "", lastErr
}

func (c *Client) doChat(ctx context.Context, payload []byte) (text string, retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", true, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, fmt.Errorf("chat request failed: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", false, fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("chat API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", false, fmt.Errorf("chat response contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), false, nil
}
