package intent

import (
	"context"
	"strings"
)

// vocabulary holds the fixed keyword/phrase list scored per intent.
// Matching is lower-cased substring counting; multi-word phrases count
// as one hit.
var vocabulary = map[Intent][]string{
	IntentGenerate: {
		"build", "create", "design", "generate", "set up", "setup",
		"architecture for", "i need a", "i want a", "new system",
		"web app", "application with", "platform",
	},
	IntentModify: {
		"add", "remove", "delete", "change", "replace", "instead of",
		"update", "rename", "swap", "connect", "scale", "switch to",
	},
	IntentAskQuestion: {
		"what", "how", "why", "which", "when", "can i", "should i",
		"is it", "cost", "difference", "compare", "versus",
	},
	IntentExplainComponent: {
		"explain", "tell me about", "what is the", "what does",
		"describe", "details about", "purpose of",
	},
	IntentGeneralChat: {
		"hello", "hi ", "hey", "thanks", "thank you", "good morning",
		"who are you", "help",
	},
}

// contextPenalty is applied to modify and explain scores when no
// architecture exists yet.
const contextPenalty = 0.1

// questionBonus is added to the ask-question score when the utterance
// contains a question mark.
const questionBonus = 1.0

// confidenceDivisor normalizes the winning score into a confidence value.
const confidenceDivisor = 4.0

// RuleClassifier is the deterministic keyword-scoring classifier.
//
// It exists so the system stays usable with zero external dependencies
// reachable: classification by rules is worse than classification by
// model, but it never fails. Classify is pure with respect to its
// inputs — the same (utterance, hasExisting) pair always yields the
// same Result.
type RuleClassifier struct{}

// NewRuleClassifier creates the deterministic fallback classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify implements Classifier. It never returns an error.
func (c *RuleClassifier) Classify(ctx context.Context, utterance string, hasExisting bool) (Result, error) {
	lower := strings.ToLower(utterance)

	scores := make(map[Intent]float64, len(Intents))
	for _, in := range Intents {
		var hits float64
		for _, kw := range vocabulary[in] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if !hasExisting && (in == IntentModify || in == IntentExplainComponent) {
			hits *= contextPenalty
		}
		scores[in] = hits
	}
	if strings.Contains(utterance, "?") {
		scores[IntentAskQuestion] += questionBonus
	}

	best := Intents[0]
	for _, in := range Intents[1:] {
		if scores[in] > scores[best] {
			best = in
		}
	}

	if scores[best] == 0 {
		if hasExisting {
			best = IntentAskQuestion
		} else {
			best = IntentGenerate
		}
		return Result{
			Intent:      best,
			Confidence:  0,
			Explanation: "no keyword matched; defaulted by session state",
		}, nil
	}

	confidence := scores[best] / confidenceDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}
	return Result{
		Intent:      best,
		Confidence:  confidence,
		Explanation: "keyword scoring",
	}, nil
}
