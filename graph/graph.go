package graph

import (
	"errors"
	"fmt"
	"time"
)

// ArchGraph is the root aggregate of one editing session: the full set of
// nodes and edges produced by synthesis and refined by edits.
//
// Invariants held by every ArchGraph returned from this package:
//   - every edge's Source and Target reference an existing node ID
//   - node IDs are unique
//
// The aggregate is owned by the caller. Pipeline operations take it
// explicitly and return a new or mutated instance; nothing in the SDK
// retains a copy between calls.
type ArchGraph struct {
	// ID is the opaque session identifier, assigned at creation time.
	ID string `json:"id"`

	// RequirementsText is the original natural-language prompt that
	// produced the graph. Empty for graphs created purely by editing.
	RequirementsText string `json:"requirementsText,omitempty"`

	// Nodes holds the architecture components in insertion order.
	Nodes []Node `json:"nodes"`

	// Edges holds the data-flow relationships in insertion order.
	Edges []Edge `json:"edges"`

	// Description is the free-text summary produced by synthesis.
	Description string `json:"description,omitempty"`

	// CreatedAt is the timestamp when the graph was created.
	CreatedAt time.Time `json:"createdAt"`
}

// New creates an empty ArchGraph with the given ID.
func New(id string) *ArchGraph {
	return &ArchGraph{
		ID:        id,
		CreatedAt: time.Now().UTC(),
	}
}

// FindNode returns the node with the given ID, or nil if absent.
// The returned pointer aliases the graph's backing array.
func (g *ArchGraph) FindNode(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node with the given ID exists.
func (g *ArchGraph) HasNode(id string) bool {
	return g.FindNode(id) != nil
}

// AddNode appends a node. Returns an error if the ID is empty or already taken.
func (g *ArchGraph) AddNode(n Node) error {
	if n.ID == "" {
		return errors.New("node id is required")
	}
	if g.HasNode(n.ID) {
		return fmt.Errorf("duplicate node id %q", n.ID)
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// AddEdge appends an edge after verifying both endpoints exist.
func (g *ArchGraph) AddEdge(e Edge) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if !g.HasNode(e.Source) {
		return fmt.Errorf("edge source %q does not exist", e.Source)
	}
	if !g.HasNode(e.Target) {
		return fmt.Errorf("edge target %q does not exist", e.Target)
	}
	g.Edges = append(g.Edges, e)
	return nil
}

// RemoveNode deletes the node with the given ID and cascades deletion to
// every incident edge. Orphan edges must never persist. Reports whether
// a node was removed.
func (g *ArchGraph) RemoveNode(id string) bool {
	idx := -1
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if !e.Touches(id) {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	return true
}

// Clone returns a deep copy of the graph. Edit operations work on a clone
// so that a failing edit never leaves the caller's graph partially applied.
func (g *ArchGraph) Clone() *ArchGraph {
	out := &ArchGraph{
		ID:               g.ID,
		RequirementsText: g.RequirementsText,
		Description:      g.Description,
		CreatedAt:        g.CreatedAt,
	}
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i := range g.Nodes {
			out.Nodes[i] = *g.Nodes[i].Clone()
		}
	}
	if g.Edges != nil {
		out.Edges = make([]Edge, len(g.Edges))
		copy(out.Edges, g.Edges)
	}
	return out
}

// Validate checks the structural invariants: unique node IDs and no
// dangling edge endpoints.
func (g *ArchGraph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		if err := g.Nodes[i].Validate(); err != nil {
			return fmt.Errorf("node %d: %w", i, err)
		}
		if seen[g.Nodes[i].ID] {
			return fmt.Errorf("duplicate node id %q", g.Nodes[i].ID)
		}
		seen[g.Nodes[i].ID] = true
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("edge %d: %w", i, err)
		}
		if !seen[e.Source] {
			return fmt.Errorf("edge %q: source %q does not exist", e.ID, e.Source)
		}
		if !seen[e.Target] {
			return fmt.Errorf("edge %q: target %q does not exist", e.ID, e.Target)
		}
	}
	return nil
}

// Products returns the distinct product names referenced by the graph,
// in first-appearance order. Used for summary display.
func (g *ArchGraph) Products() []string {
	var out []string
	seen := make(map[string]bool)
	for i := range g.Nodes {
		p := g.Nodes[i].Product
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
