package graph

import "errors"

// Edge represents a directed, labeled data-flow relationship between two nodes.
type Edge struct {
	// ID is unique within the owning graph. Generated if absent.
	ID string `json:"id"`

	// Source is the ID of the node the flow originates from.
	Source string `json:"source"`

	// Target is the ID of the node the flow arrives at.
	Target string `json:"target"`

	// Label names the data or request that flows along the edge
	// (e.g., "HTTPS Requests"). A missing label is a quality defect,
	// not a structural error.
	Label string `json:"label"`
}

// NewEdge creates an edge between the given node IDs.
func NewEdge(source, target, label string) *Edge {
	return &Edge{
		Source: source,
		Target: target,
		Label:  label,
	}
}

// WithID sets the edge ID and returns the edge for method chaining.
func (e *Edge) WithID(id string) *Edge {
	e.ID = id
	return e
}

// Validate checks that the edge references two endpoints.
func (e *Edge) Validate() error {
	if e.Source == "" || e.Target == "" {
		return errors.New("edge source and target are required")
	}
	return nil
}

// Touches reports whether the edge is incident to the given node ID.
func (e *Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
