package session

import (
	"context"
	"sync"

	"github.com/archforge-ai/sdk/graph"
)

// MemoryStore is an in-process Store backed by a mutex-guarded map.
// Graphs are deep-copied on the way in and out so callers can never
// mutate stored state through a retained pointer.
//
// Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]*graph.ArchGraph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		graphs: make(map[string]*graph.ArchGraph),
	}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (*graph.ArchGraph, error) {
	if id == "" {
		return nil, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.graphs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g.Clone(), nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, id string, g *graph.ArchGraph) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.graphs[id] = g.Clone()
	return nil
}

// Exists implements Store.
func (s *MemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.graphs[id]
	return ok, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.graphs[id]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, id)
	return nil
}
