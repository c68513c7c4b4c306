package layout

import "github.com/archforge-ai/sdk/graph"

// NodeSize describes one node's rendered dimensions.
type NodeSize struct {
	ID     string
	Width  float64
	Height float64
}

// Link is the source/target pair the engine consumes; edge labels and
// IDs are irrelevant to placement.
type Link struct {
	Source string
	Target string
}

// Placement is the computed position of one node.
type Placement struct {
	ID string
	X  float64
	Y  float64
}

// Engine computes 2-D coordinates for a node/edge set. The pipeline
// treats it as a black box producing any acyclic layered placement and
// never inspects specific coordinates.
type Engine interface {
	Layout(nodes []NodeSize, links []Link) []Placement
}

// FromGraph converts an architecture graph into the engine's input,
// assigning every node the given uniform size.
func FromGraph(g *graph.ArchGraph, width, height float64) ([]NodeSize, []Link) {
	nodes := make([]NodeSize, len(g.Nodes))
	for i := range g.Nodes {
		nodes[i] = NodeSize{ID: g.Nodes[i].ID, Width: width, Height: height}
	}
	links := make([]Link, len(g.Edges))
	for i := range g.Edges {
		links[i] = Link{Source: g.Edges[i].Source, Target: g.Edges[i].Target}
	}
	return nodes, links
}
