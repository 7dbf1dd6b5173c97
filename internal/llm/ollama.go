package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// OllamaClient implements Client against a local Ollama-compatible service
// using the /api/generate endpoint.
type OllamaClient struct {
	httpClient *http.Client
	host       string
	model      string
}

// NewOllamaClient creates a client for the given Ollama host and model.
// Per-call timeouts come from the caller's context, not the HTTP client.
func NewOllamaClient(host, model string) *OllamaClient {
	if host == "" {
		host = DefaultOllamaHost
	}
	return &OllamaClient{
		httpClient: &http.Client{},
		host:       strings.TrimRight(host, "/"),
		model:      model,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Complete sends a prompt to the Ollama service and returns the generated text.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generate request: %w", err)
	}

	endpoint := c.host + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyCallError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &TransportError{
			Kind:    TransportServerError,
			Message: fmt.Sprintf("%s returned status %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	var parsed ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &TransportError{
			Kind:    TransportEmptyResponse,
			Message: "response body is not valid JSON",
			Cause:   err,
		}
	}

	if strings.TrimSpace(parsed.Response) == "" {
		return "", &TransportError{
			Kind:    TransportEmptyResponse,
			Message: "response is missing generated text",
		}
	}

	return parsed.Response, nil
}

// Model returns the configured model identifier.
func (c *OllamaClient) Model() string {
	return c.model
}

// Close releases resources held by the client.
func (c *OllamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// classifyCallError maps a request error onto the transport taxonomy.
func classifyCallError(endpoint string, err error) *TransportError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransportError{
			Kind:    TransportTimeout,
			Message: fmt.Sprintf("completion call to %s exceeded its deadline", endpoint),
			Cause:   err,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TransportError{
			Kind:    TransportTimeout,
			Message: fmt.Sprintf("completion call to %s timed out", endpoint),
			Cause:   err,
		}
	}

	return &TransportError{
		Kind:    TransportUnreachable,
		Message: fmt.Sprintf("completion service at %s is unreachable", endpoint),
		Cause:   err,
	}
}
