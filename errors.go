package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common SDK error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrSessionBusy indicates the session is already processing a request.
	// Requests to a session are serialized; retry once the in-flight
	// operation completes.
	ErrSessionBusy = errors.New("session busy")

	// ErrNoArchitecture indicates the requested operation needs an
	// existing architecture but the session holds none.
	ErrNoArchitecture = errors.New("no architecture in session")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGeneration indicates architecture synthesis failed.
	// The underlying error carries the reason.
	ErrGeneration = errors.New("architecture generation failed")

	// ErrEdit indicates an architecture edit failed. The session graph
	// is untouched when this is returned.
	ErrEdit = errors.New("architecture edit failed")

	// ErrExport indicates Infrastructure-as-Code export failed.
	ErrExport = errors.New("architecture export failed")

	// ErrMissingCredential indicates no API key is configured for the
	// model endpoint.
	ErrMissingCredential = errors.New("missing model credential")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a resource was not found.
	KindNotFound = "not_found"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindGeneration represents errors during architecture synthesis.
	KindGeneration = "generation"

	// KindEdit represents errors during architecture editing.
	KindEdit = "edit"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"

	// KindNetwork represents errors related to network operations.
	KindNetwork = "network"

	// KindBusy represents rejected requests to a busy session.
	KindBusy = "busy"

	// KindInternal represents internal SDK errors.
	KindInternal = "internal"
)

// SDKError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// SDKError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &SDKError{
//		Op:   "Pipeline.Handle",
//		Kind: KindGeneration,
//		Err:  ErrGeneration,
//	}
type SDKError struct {
	// Op is the operation that failed (e.g., "Pipeline.Handle", "Pipeline.Export").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindValidation).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include session IDs, parameter values, or other debugging information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *SDKError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sdk: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("sdk: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("sdk: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *SDKError) Unwrap() error {
	return e.Err
}

// Is implements error matching for SDKError, allowing comparison based on
// the underlying error or the SDKError itself.
func (e *SDKError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is an SDKError with matching Kind
	if t, ok := target.(*SDKError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new SDKError with the provided context added.
// This is useful for adding debugging information to errors.
//
// Example:
//
//	err := &SDKError{
//		Op:   "Pipeline.Handle",
//		Kind: KindGeneration,
//		Err:  ErrGeneration,
//	}
//	err = err.WithContext(map[string]any{
//		"session_id": "a1b2",
//		"utterance_length": 1024,
//	})
func (e *SDKError) WithContext(ctx map[string]any) *SDKError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new SDKError with KindNotFound.
func NewNotFoundError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindNotFound,
		Err:  err,
	}
}

// NewValidationError creates a new SDKError with KindValidation.
func NewValidationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindValidation,
		Err:  err,
	}
}

// NewGenerationError creates a new SDKError with KindGeneration.
func NewGenerationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindGeneration,
		Err:  err,
	}
}

// NewEditError creates a new SDKError with KindEdit.
func NewEditError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindEdit,
		Err:  err,
	}
}

// NewConfigurationError creates a new SDKError with KindConfiguration.
func NewConfigurationError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindConfiguration,
		Err:  err,
	}
}

// NewNetworkError creates a new SDKError with KindNetwork.
func NewNetworkError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindNetwork,
		Err:  err,
	}
}

// NewBusyError creates a new SDKError with KindBusy.
func NewBusyError(op string) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindBusy,
		Err:  ErrSessionBusy,
	}
}

// NewInternalError creates a new SDKError with KindInternal.
func NewInternalError(op string, err error) *SDKError {
	return &SDKError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "redis store", "etcd client"). If logger is nil, slog.Default() is used.
//
// Example usage:
//
//	defer sdk.CloseWithLog(store, logger, "redis store")
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
