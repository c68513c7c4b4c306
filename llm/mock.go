package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a canned-response Client for tests and offline development.
//
// Responses are matched by substring against the last message in the
// request; the first rule that matches wins. With no matching rule, Err
// is returned if set, otherwise Default.
type MockClient struct {
	// Rules maps a prompt substring to the canned response content.
	Rules map[string]string

	// Default is returned when no rule matches and Err is nil.
	Default string

	// Err, when set, is returned for any request no rule matches.
	Err error

	// Unavailable makes IsAvailable report false.
	Unavailable bool

	// Requests records every request received, in order.
	Requests []*CompletionRequest
}

// NewMockClient creates a MockClient that always answers with content.
func NewMockClient(content string) *MockClient {
	return &MockClient{Default: content}
}

// IsAvailable implements Client.
func (m *MockClient) IsAvailable() bool {
	return !m.Unavailable
}

// Complete implements Client with canned responses.
func (m *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.Requests = append(m.Requests, req)

	var prompt string
	if len(req.Messages) > 0 {
		prompt = req.Messages[len(req.Messages)-1].Content
	}
	for substr, content := range m.Rules {
		if strings.Contains(prompt, substr) {
			return &CompletionResponse{Content: content, FinishReason: "stop"}, nil
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Default == "" {
		return nil, fmt.Errorf("%w: no canned response", ErrEmptyResponse)
	}
	return &CompletionResponse{Content: m.Default, FinishReason: "stop"}, nil
}
