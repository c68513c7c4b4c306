package intent

import (
	"context"
	"log/slog"
)

// Fallback composes two classifiers: it asks primary first and, on any
// error, resolves with secondary instead. Classification errors never
// escape — the rest of the system must remain usable with zero external
// dependencies reachable, so this decorator always produces a Result.
type Fallback struct {
	primary   Classifier
	secondary Classifier
	logger    *slog.Logger
}

// NewFallback creates the two-stage classifier. logger may be nil.
func NewFallback(primary, secondary Classifier, logger *slog.Logger) *Fallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		primary:   primary,
		secondary: secondary,
		logger:    logger,
	}
}

// NewDefault composes a model-backed primary over the rule-based
// fallback, the standard arrangement.
func NewDefault(primary Classifier, logger *slog.Logger) *Fallback {
	return NewFallback(primary, NewRuleClassifier(), logger)
}

// Classify implements Classifier. The returned error is always nil.
func (f *Fallback) Classify(ctx context.Context, utterance string, hasExisting bool) (Result, error) {
	if f.primary != nil {
		result, err := f.primary.Classify(ctx, utterance, hasExisting)
		if err == nil {
			return result, nil
		}
		f.logger.Debug("model classification failed, using rule fallback",
			"error", err)
	}
	return f.secondary.Classify(ctx, utterance, hasExisting)
}
