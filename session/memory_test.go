package session

import (
	"context"
	"errors"
	"testing"

	"github.com/archforge-ai/sdk/graph"
)

func testGraph() *graph.ArchGraph {
	g := graph.New("g-1")
	_ = g.AddNode(graph.Node{ID: "api", Label: "API", Category: graph.CategoryCompute})
	_ = g.AddNode(graph.Node{ID: "db", Label: "DB", Category: graph.CategoryDatabase})
	_ = g.AddEdge(graph.Edge{ID: "e1", Source: "api", Target: "db", Label: "queries"})
	return g
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "g-1", testGraph()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	ok, err := store.Exists(ctx, "g-1")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true", ok, err)
	}

	got, err := store.Get(ctx, "g-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("stored graph mismatch: %d nodes, %d edges", len(got.Nodes), len(got.Edges))
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
	if ok, err := store.Exists(ctx, "missing"); err != nil || ok {
		t.Errorf("Exists() = %v, %v; want false", ok, err)
	}
}

func TestMemoryStore_InvalidID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "", testGraph()); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Set(\"\") error = %v, want ErrInvalidID", err)
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Get(\"\") error = %v, want ErrInvalidID", err)
	}
}

func TestMemoryStore_IsolatesStoredState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	g := testGraph()

	if err := store.Set(ctx, g.ID, g); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	g.RemoveNode("api")

	got, err := store.Get(ctx, "g-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Error("mutating the caller's graph changed stored state")
	}

	got.RemoveNode("db")
	again, _ := store.Get(ctx, "g-1")
	if len(again.Nodes) != 2 {
		t.Error("mutating a retrieved graph changed stored state")
	}
}

func TestMemoryStore_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := graph.New("g-1")
	second := testGraph()

	_ = store.Set(ctx, "g-1", first)
	_ = store.Set(ctx, "g-1", second)

	got, err := store.Get(ctx, "g-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Nodes) != 2 {
		t.Errorf("expected second write to win, got %d nodes", len(got.Nodes))
	}
}
