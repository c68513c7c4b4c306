package intent

import (
	"context"
	"fmt"
	"strings"
)

// Intent is one of the five operations an utterance can request.
type Intent string

const (
	// IntentGenerate requests a brand-new architecture from requirements.
	IntentGenerate Intent = "generate"

	// IntentModify requests a change to the existing architecture.
	IntentModify Intent = "modify"

	// IntentAskQuestion requests an answer about the architecture or domain.
	IntentAskQuestion Intent = "ask-question"

	// IntentExplainComponent requests an explanation of one component.
	IntentExplainComponent Intent = "explain-component"

	// IntentGeneralChat is conversation with no architectural operation.
	IntentGeneralChat Intent = "general-chat"
)

// Intents lists every intent in enumeration order. Ties in rule-based
// scoring break in this order.
var Intents = []Intent{
	IntentGenerate,
	IntentModify,
	IntentAskQuestion,
	IntentExplainComponent,
	IntentGeneralChat,
}

// IsValid checks if the intent is one of the defined constants.
func (i Intent) IsValid() bool {
	for _, known := range Intents {
		if i == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the intent.
func (i Intent) String() string {
	return string(i)
}

// Result is the ephemeral output of one classification. Not persisted.
type Result struct {
	// Intent is the classified operation.
	Intent Intent `json:"intent"`

	// Confidence is the classifier's certainty in [0, 1].
	Confidence float64 `json:"confidence"`

	// Explanation is an optional human-readable justification.
	Explanation string `json:"explanation,omitempty"`
}

// Classifier decides which operation an utterance requests.
//
// hasExisting tells the classifier whether an architecture is already
// loaded in the session; modify and explain intents are near-meaningless
// without one.
type Classifier interface {
	Classify(ctx context.Context, utterance string, hasExisting bool) (Result, error)
}

// aliases maps normalized label variants the model is known to emit onto
// the closed set.
var aliases = map[string]Intent{
	"generate-architecture": IntentGenerate,
	"new-architecture":      IntentGenerate,
	"create":                IntentGenerate,
	"modify-architecture":   IntentModify,
	"edit":                  IntentModify,
	"edit-architecture":     IntentModify,
	"question":              IntentAskQuestion,
	"ask":                   IntentAskQuestion,
	"explain":               IntentExplainComponent,
	"explain-architecture":  IntentExplainComponent,
	"chat":                  IntentGeneralChat,
	"general":               IntentGeneralChat,
	"conversation":          IntentGeneralChat,
}

// Normalize maps a model-emitted intent label onto the closed set.
// Case and separator variations ("MODIFY_ARCHITECTURE", "Ask Question")
// are tolerated; an unrecognized label is a classifier failure, never
// silently coerced.
func Normalize(label string) (Intent, error) {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, " ", "-")

	if i := Intent(s); i.IsValid() {
		return i, nil
	}
	if i, ok := aliases[s]; ok {
		return i, nil
	}
	return "", fmt.Errorf("intent: unrecognized label %q", label)
}
