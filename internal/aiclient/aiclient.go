// Package aiclient implements the chat-completions HTTP client used for
// AI-backed expertise analysis.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"teamlens/internal/contract"
)

// Client performs chat-completions calls against an OpenAI-compatible
// endpoint with a bearer token.
type Client struct {
	endpoint    string
	token       string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

var _ contract.CompletionClient = &Client{} // Compile-time check

// New creates a completion client from validated config and a resolved token.
func New(cfg *contract.Config, token string) *Client {
	return &Client{
		endpoint:    cfg.Endpoint,
		token:       token,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: contract.DefaultCallTimeout},
	}
}

// message is a single chat message in the request body.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionResponse is the subset of the reply body we consume.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements the CompletionClient interface. It returns the first
// choice's message content. HTTP 413 maps to ErrPayloadTooLarge so the
// orchestrator can switch to chunked analysis; 401/403 map to the
// invalid-token error kind.
func (c *Client) Complete(ctx context.Context, req contract.CompletionRequest) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []message{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", contract.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusRequestEntityTooLarge:
		return "", fmt.Errorf("endpoint rejected request size: %w", contract.ErrPayloadTooLarge)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", contract.NewInvalidToken(fmt.Errorf("completion endpoint returned %d", resp.StatusCode))
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", contract.NewNetworkError(fmt.Errorf("completion endpoint returned %d: %s", resp.StatusCode, respBody))
	}

	var decoded completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", contract.NewNetworkError(fmt.Errorf("failed to decode completion response: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return "", contract.NewNetworkError(fmt.Errorf("completion response carried no choices"))
	}
	return decoded.Choices[0].Message.Content, nil
}
