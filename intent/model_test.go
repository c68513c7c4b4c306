package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/archforge-ai/sdk/llm"
)

func TestModelClassifier_ParsesResponse(t *testing.T) {
	mock := llm.NewMockClient(`{"intent":"modify_architecture","confidence":0.87,"explanation":"asks to add a component"}`)
	c := NewModelClassifier(mock)

	result, err := c.Classify(context.Background(), "add a cache", true)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent != IntentModify {
		t.Errorf("intent = %q, want modify", result.Intent)
	}
	if result.Confidence != 0.87 {
		t.Errorf("confidence = %v, want 0.87", result.Confidence)
	}

	// Classification must request JSON output at near-zero temperature.
	req := mock.Requests[0]
	if !req.JSONMode {
		t.Error("expected JSON mode on classification request")
	}
	if req.Temperature == nil || *req.Temperature != classifyTemperature {
		t.Errorf("temperature = %v, want %v", req.Temperature, classifyTemperature)
	}
}

func TestModelClassifier_FencedResponse(t *testing.T) {
	mock := llm.NewMockClient("```json\n{\"intent\":\"generate\",\"confidence\":0.95}\n```")
	c := NewModelClassifier(mock)

	result, err := c.Classify(context.Background(), "build me an app", false)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent != IntentGenerate {
		t.Errorf("intent = %q, want generate", result.Intent)
	}
}

func TestModelClassifier_UnrecognizedIntentFails(t *testing.T) {
	mock := llm.NewMockClient(`{"intent":"deploy","confidence":0.9}`)
	c := NewModelClassifier(mock)

	if _, err := c.Classify(context.Background(), "x", false); err == nil {
		t.Fatal("expected error for label outside the closed set")
	}
}

func TestModelClassifier_MalformedJSONFails(t *testing.T) {
	mock := llm.NewMockClient("I think this is a modify request.")
	c := NewModelClassifier(mock)

	if _, err := c.Classify(context.Background(), "x", true); err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestModelClassifier_ClampsConfidence(t *testing.T) {
	mock := llm.NewMockClient(`{"intent":"generate","confidence":3.5}`)
	c := NewModelClassifier(mock)

	result, err := c.Classify(context.Background(), "x", false)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped to 1.0", result.Confidence)
	}
}

func TestModelClassifier_Unavailable(t *testing.T) {
	mock := &llm.MockClient{Unavailable: true}
	c := NewModelClassifier(mock)

	if _, err := c.Classify(context.Background(), "x", false); err == nil {
		t.Fatal("expected error when model access is unavailable")
	}
}

func TestFallback_UsesPrimaryWhenHealthy(t *testing.T) {
	mock := llm.NewMockClient(`{"intent":"explain-component","confidence":0.8}`)
	f := NewDefault(NewModelClassifier(mock), nil)

	result, err := f.Classify(context.Background(), "what does the gateway do", true)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent != IntentExplainComponent {
		t.Errorf("intent = %q, want explain-component", result.Intent)
	}
}

func TestFallback_NeverSurfacesErrors(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("connection refused")}
	f := NewDefault(NewModelClassifier(mock), nil)

	result, err := f.Classify(context.Background(), "Build a web app with a database", false)
	if err != nil {
		t.Fatalf("fallback must resolve, got error %v", err)
	}
	if result.Intent != IntentGenerate {
		t.Errorf("intent = %q, want generate via rule fallback", result.Intent)
	}
}

func TestFallback_NilPrimary(t *testing.T) {
	f := NewFallback(nil, NewRuleClassifier(), nil)

	result, err := f.Classify(context.Background(), "what is this?", true)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if result.Intent != IntentAskQuestion {
		t.Errorf("intent = %q, want ask-question", result.Intent)
	}
}
