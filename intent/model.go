package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/parser"
)

// classifyTemperature keeps classification near-deterministic.
const classifyTemperature = 0.0

// ModelClassifier classifies utterances by asking the language model.
//
// Any failure — network error, malformed JSON, a label outside the
// closed set — surfaces as an error so a composing Fallback can take
// over; nothing is silently coerced.
type ModelClassifier struct {
	client llm.Client
}

// NewModelClassifier creates a model-backed classifier.
func NewModelClassifier(client llm.Client) *ModelClassifier {
	return &ModelClassifier{client: client}
}

// classification is the JSON contract the model is asked to honor.
type classification struct {
	Intent      string  `json:"intent"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Classify implements Classifier.
func (c *ModelClassifier) Classify(ctx context.Context, utterance string, hasExisting bool) (Result, error) {
	if c.client == nil || !c.client.IsAvailable() {
		return Result{}, fmt.Errorf("intent: model access unavailable")
	}

	req := llm.NewCompletionRequest(
		[]llm.Message{
			llm.System(classifyInstruction(hasExisting)),
			llm.User(utterance),
		},
		llm.WithTemperature(classifyTemperature),
		llm.WithJSONMode(),
	)
	resp, err := c.client.Complete(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("intent: model call failed: %w", err)
	}

	parsed, err := parser.ExtractAndParse[classification](resp.Content)
	if err != nil {
		return Result{}, fmt.Errorf("intent: malformed classification response: %w", err)
	}

	in, err := Normalize(parsed.Intent)
	if err != nil {
		return Result{}, err
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Result{
		Intent:      in,
		Confidence:  confidence,
		Explanation: parsed.Explanation,
	}, nil
}

// classifyInstruction builds the system instruction enumerating the five
// intents and the contextual fact of whether an architecture exists.
func classifyInstruction(hasExisting bool) string {
	var b strings.Builder
	b.WriteString("You classify a user's message for a cloud-architecture design assistant.\n")
	b.WriteString("Pick exactly one intent:\n")
	b.WriteString("- generate: the user describes requirements for a new architecture\n")
	b.WriteString("- modify: the user asks to change the existing architecture\n")
	b.WriteString("- ask-question: the user asks a question about the architecture or cloud services\n")
	b.WriteString("- explain-component: the user asks what a specific component does or why it was chosen\n")
	b.WriteString("- general-chat: greeting or conversation with no architectural request\n\n")
	if hasExisting {
		b.WriteString("Context: an architecture already exists in this session.\n")
	} else {
		b.WriteString("Context: no architecture exists in this session yet, so modify and explain-component are unlikely.\n")
	}
	b.WriteString("\nRespond with a single JSON object: ")
	b.WriteString(`{"intent": "...", "confidence": 0.0-1.0, "explanation": "..."}`)
	return b.String()
}
