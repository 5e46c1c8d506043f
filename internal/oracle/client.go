// Package oracle is the fallback path for summary fields local parsing
// cannot resolve: each missing field becomes one natural-language
// extraction request against an external chat-completion service.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Oracle answers a single free-text extraction question. The pipeline
// depends only on this interface so tests can substitute a
// deterministic stub.
type Oracle interface {
	Ask(ctx context.Context, instruction, document string) (string, error)
}

// RequestError reports a failed oracle call.
type RequestError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("oracle request failed: %v", e.Err)
	}
	return fmt.Sprintf("oracle request failed: status %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client calls an OpenAI-style chat-completions endpoint.
type Client struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
}

// NewClient returns a Client with the default HTTP client. Timeouts and
// retries are intentionally left to the transport: a single blocking
// call per field is the whole contract.
func NewClient(baseURL, apiKey, model string, temperature float64) *Client {
	return &Client{
		BaseURL:     baseURL,
		APIKey:      apiKey,
		Model:       model,
		Temperature: temperature,
		HTTPClient:  http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Ask sends one instruction plus the statement document and returns the
// first completion's content.
func (c *Client) Ask(ctx context.Context, instruction, document string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: document},
		},
		Temperature: c.Temperature,
	})
	if err != nil {
		return "", &RequestError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &RequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &RequestError{Err: fmt.Errorf("malformed oracle response: %w", err)}
	}
	if len(parsed.Choices) == 0 {
		return "", &RequestError{Err: fmt.Errorf("oracle response has no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}
