package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Common errors returned by client operations.
var (
	// ErrMissingAPIKey is returned when no credential is configured.
	ErrMissingAPIKey = errors.New("llm: missing API key")

	// ErrUpstream is returned when the endpoint answers with a non-2xx status.
	ErrUpstream = errors.New("llm: upstream request failed")

	// ErrEmptyResponse is returned when the endpoint answers 2xx but
	// carries no choices.
	ErrEmptyResponse = errors.New("llm: empty completion response")
)

// Client defines the interface for language-model access.
//
// Complete performs exactly one outbound call, awaited to completion or
// failure; cancellation mid-flight is supported through the context.
type Client interface {
	// Complete sends the request and returns the first choice.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// IsAvailable reports whether the client is configured well enough
	// to attempt a call (it does not probe the network).
	IsAvailable() bool
}

// Options configures the HTTP client.
type Options struct {
	// BaseURL is the endpoint root (e.g., "https://api.openai.com/v1").
	BaseURL string

	// APIKey is the bearer credential. If empty, APIKeyEnv is consulted.
	APIKey string

	// APIKeyEnv names an environment variable holding the credential.
	// Default: "ARCHFORGE_API_KEY".
	APIKeyEnv string

	// Model is the default model identifier for requests that do not
	// override it.
	Model string

	// Timeout is the maximum duration of one completion call.
	// Default: 120s.
	Timeout time.Duration

	// HTTPClient overrides the underlying http.Client. Used by tests.
	HTTPClient *http.Client
}

// HTTPClient implements Client against an OpenAI-compatible
// chat-completions endpoint: the request carries a model identifier, a
// list of role-tagged messages, a temperature, and optionally a
// directive to force JSON-object output.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewHTTPClient creates a client with the given options, applying defaults
// for anything unset.
func NewHTTPClient(opts Options) *HTTPClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.openai.com/v1"
	}
	if opts.APIKeyEnv == "" {
		opts.APIKeyEnv = "ARCHFORGE_API_KEY"
	}
	if opts.APIKey == "" {
		opts.APIKey = os.Getenv(opts.APIKeyEnv)
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		http:    opts.HTTPClient,
	}
}

// IsAvailable reports whether a credential is configured.
func (c *HTTPClient) IsAvailable() bool {
	return c.apiKey != ""
}

// wire types for the chat-completions protocol.
type chatRequest struct {
	Model          string      `json:"model"`
	Messages       []Message   `json:"messages"`
	Temperature    *float64    `json:"temperature,omitempty"`
	MaxTokens      *int        `json:"max_tokens,omitempty"`
	ResponseFormat *respFormat `json:"response_format,omitempty"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete sends the request to the chat-completions endpoint.
func (c *HTTPClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	wire := chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		wire.ResponseFormat = &respFormat{Type: "json_object"}
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("llm: failed to read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("llm: failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("%w: %d %s", ErrUpstream, resp.StatusCode, msg)
	}

	if len(parsed.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	return &CompletionResponse{
		Content:      parsed.Choices[0].Message.Content,
		FinishReason: parsed.Choices[0].FinishReason,
		Usage: TokenUsage{
			InputTokens:  parsed.Usage.PromptTokens,
			OutputTokens: parsed.Usage.CompletionTokens,
			TotalTokens:  parsed.Usage.TotalTokens,
		},
	}, nil
}
