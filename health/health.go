// Package health provides reusable health check functions for Archforge
// deployments. It offers standardized ways to verify model access,
// endpoint connectivity, and session storage state.
package health

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/archforge-ai/sdk/session"
)

// Status constants represent the operational state of a component.
const (
	// StatusHealthy indicates the component is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the component is operational but experiencing issues.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the component is not operational.
	StatusUnhealthy = "unhealthy"
)

// Status represents the health state of a component or service.
type Status struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional context and diagnostic information.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (s Status) IsDegraded() bool {
	return s.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// NewHealthy creates a new healthy status with an optional message.
func NewHealthy(message string) Status {
	return Status{
		Status:  StatusHealthy,
		Message: message,
	}
}

// NewDegraded creates a new degraded status with a message and optional details.
func NewDegraded(message string, details map[string]any) Status {
	return Status{
		Status:  StatusDegraded,
		Message: message,
		Details: details,
	}
}

// NewUnhealthy creates a new unhealthy status with a message and optional details.
func NewUnhealthy(message string, details map[string]any) Status {
	return Status{
		Status:  StatusUnhealthy,
		Message: message,
		Details: details,
	}
}

// CredentialCheck verifies that the named environment variable holds a
// non-empty credential.
//
// Example:
//
//	status := health.CredentialCheck("ARCHFORGE_API_KEY")
//	if status.IsUnhealthy() {
//	    log.Fatal("no model credential configured")
//	}
func CredentialCheck(envVar string) Status {
	if envVar == "" {
		return NewUnhealthy("environment variable name cannot be empty", nil)
	}

	if os.Getenv(envVar) == "" {
		return NewUnhealthy(
			fmt.Sprintf("environment variable '%s' is not set", envVar),
			map[string]any{"env_var": envVar},
		)
	}

	return NewHealthy(fmt.Sprintf("credential present in '%s'", envVar))
}

// EndpointCheck verifies TCP connectivity to the host behind an HTTP(S)
// URL, such as the model endpoint. It uses the provided context for
// timeout and cancellation control.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//	status := health.EndpointCheck(ctx, "https://api.openai.com/v1")
func EndpointCheck(ctx context.Context, rawURL string) Status {
	if rawURL == "" {
		return NewUnhealthy("endpoint URL cannot be empty", nil)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return NewUnhealthy(
			fmt.Sprintf("invalid endpoint URL '%s'", rawURL),
			map[string]any{"url": rawURL},
		)
	}

	port := parsed.Port()
	if port == "" {
		if parsed.Scheme == "http" {
			port = "80"
		} else {
			port = "443"
		}
	}

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}

	address := net.JoinHostPort(parsed.Hostname(), port)
	var dialer net.Dialer

	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return NewUnhealthy(
			fmt.Sprintf("failed to connect to %s", address),
			map[string]any{
				"url":   rawURL,
				"error": err.Error(),
			},
		)
	}
	conn.Close()

	return NewHealthy(fmt.Sprintf("successfully connected to %s", address))
}

// StoreCheck verifies that the session store answers a read. The probe
// uses a reserved id that no real session will ever carry.
//
// Example:
//
//	status := health.StoreCheck(ctx, store)
//	if status.IsUnhealthy() {
//	    log.Println("session store unreachable")
//	}
func StoreCheck(ctx context.Context, store session.Store) Status {
	if store == nil {
		return NewUnhealthy("session store is not configured", nil)
	}

	if _, err := store.Exists(ctx, "health-probe"); err != nil {
		return NewUnhealthy(
			"session store read failed",
			map[string]any{"error": err.Error()},
		)
	}

	return NewHealthy("session store reachable")
}

// Combine aggregates named component statuses into a single status.
// The result is unhealthy if any component is unhealthy, degraded if
// any component is degraded, healthy otherwise. Each component's state
// appears in the details.
func Combine(components map[string]Status) Status {
	if len(components) == 0 {
		return NewHealthy("no components to check")
	}

	details := make(map[string]any, len(components))
	overall := StatusHealthy
	for name, status := range components {
		details[name] = status
		switch status.Status {
		case StatusUnhealthy:
			overall = StatusUnhealthy
		case StatusDegraded:
			if overall == StatusHealthy {
				overall = StatusDegraded
			}
		}
	}

	return Status{
		Status:  overall,
		Message: fmt.Sprintf("%d component(s) checked", len(components)),
		Details: details,
	}
}
