// Package intent classifies user utterances into the five operations the
// pipeline supports: generate, modify, ask-question, explain-component,
// and general-chat.
//
// Classification is two-tier by design, not as an optimization:
// ModelClassifier asks the language model and fails loudly on anything
// it cannot map onto the closed set; RuleClassifier scores a fixed
// keyword vocabulary and never fails. The Fallback decorator composes
// them so a classification error never escapes — with the model
// unreachable the system degrades to deterministic rules instead of
// going down.
package intent
