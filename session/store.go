package session

import (
	"context"
	"errors"

	"github.com/archforge-ai/sdk/graph"
)

// Common errors returned by session-store operations.
var (
	// ErrNotFound is returned when no graph exists under the given ID.
	ErrNotFound = errors.New("session: graph not found")

	// ErrInvalidID is returned when an ID is empty.
	ErrInvalidID = errors.New("session: invalid graph id")

	// ErrStorageFailed is returned when the underlying backend fails.
	ErrStorageFailed = errors.New("session: storage operation failed")
)

// Store persists architecture graphs by their assigned identifier.
//
// The store is an opaque key/value collaborator: no pipeline logic
// depends on its internals beyond get/set/exists. No transactional
// semantics are assumed; last write wins.
type Store interface {
	// Get retrieves the graph stored under id.
	// Returns ErrNotFound if no graph exists.
	Get(ctx context.Context, id string) (*graph.ArchGraph, error)

	// Set stores the graph under id, replacing any previous value.
	Set(ctx context.Context, id string, g *graph.ArchGraph) error

	// Exists reports whether a graph is stored under id.
	Exists(ctx context.Context, id string) (bool, error)

	// Delete removes the graph stored under id.
	// Returns ErrNotFound if no graph exists.
	Delete(ctx context.Context, id string) error
}
