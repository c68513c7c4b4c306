package graph

import (
	"fmt"
	"strings"
)

// WarningKind categorizes a data-quality warning produced during sanitization.
type WarningKind string

const (
	// WarnDroppedNode indicates a node was removed for matching the
	// disallowed-actor lexicon.
	WarnDroppedNode WarningKind = "dropped-node"

	// WarnDroppedEdge indicates an edge was removed because an endpoint
	// was never present in the node set.
	WarnDroppedEdge WarningKind = "dropped-edge"

	// WarnOrphanedEdge indicates an edge was removed because its endpoint
	// node was itself dropped during sanitization.
	WarnOrphanedEdge WarningKind = "orphaned-edge"

	// WarnIsolatedNode indicates a node no edge reaches. Isolated nodes
	// are permitted to surface; this is a quality signal, not a repair.
	WarnIsolatedNode WarningKind = "isolated-node"
)

// Warning records one data-quality issue found during sanitization.
// Warnings are never errors: the offending element is repaired locally
// (dropped) and the remainder of the graph is kept.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// actorLexicon holds lower-case substrings that identify a node as a
// human actor. Nodes matching any token in label, product, or category
// are rejected: downstream IaC generation has no modeling for human
// actors, so letting one through corrupts every export.
var actorLexicon = []string{
	"user",
	"scientist",
	"developer",
	"admin",
	"human",
	"person",
	"customer",
	"analyst",
}

// IsDisallowedActor reports whether the node represents a human actor
// according to the lexicon. Matching is case-insensitive substring
// matching across category, label, and product.
func IsDisallowedActor(n *Node) bool {
	fields := []string{string(n.Category), n.Label, n.Product}
	for _, f := range fields {
		lower := strings.ToLower(f)
		for _, token := range actorLexicon {
			if strings.Contains(lower, token) {
				return true
			}
		}
	}
	return false
}

// Sanitize repairs a node/edge pair so the structural invariants hold:
//
//  1. Disallowed-actor nodes are dropped, along with every edge touching
//     them (orphaned-edge warnings).
//  2. Duplicate node IDs keep the first occurrence only.
//  3. Edges referencing a node ID that was never present are dropped
//     (dropped-edge warnings).
//  4. Unknown categories are coerced to CategoryOther.
//
// Sanitize is shared by synthesis and editing so both mutation paths
// enforce identical rules. It never fails for data-quality issues; the
// inputs are not mutated.
func Sanitize(nodes []Node, edges []Edge) ([]Node, []Edge, []Warning) {
	var warnings []Warning

	keptNodes := make([]Node, 0, len(nodes))
	dropped := make(map[string]bool)
	seen := make(map[string]bool)
	for i := range nodes {
		n := nodes[i]
		if IsDisallowedActor(&n) {
			warnings = append(warnings, Warning{
				Kind:   WarnDroppedNode,
				Detail: fmt.Sprintf("node %q (%s) represents a human actor", n.Label, n.ID),
			})
			dropped[n.ID] = true
			continue
		}
		if n.ID != "" && seen[n.ID] {
			warnings = append(warnings, Warning{
				Kind:   WarnDroppedNode,
				Detail: fmt.Sprintf("duplicate node id %q", n.ID),
			})
			continue
		}
		if !n.Category.IsValid() {
			n.Category = CategoryOther
		}
		seen[n.ID] = true
		keptNodes = append(keptNodes, n)
	}

	keptEdges := make([]Edge, 0, len(edges))
	for i := range edges {
		e := edges[i]
		if dropped[e.Source] || dropped[e.Target] {
			warnings = append(warnings, Warning{
				Kind:   WarnOrphanedEdge,
				Detail: fmt.Sprintf("edge %s -> %s touched a dropped node", e.Source, e.Target),
			})
			continue
		}
		if !seen[e.Source] || !seen[e.Target] {
			warnings = append(warnings, Warning{
				Kind:   WarnDroppedEdge,
				Detail: fmt.Sprintf("edge %s -> %s references a missing node", e.Source, e.Target),
			})
			continue
		}
		keptEdges = append(keptEdges, e)
	}

	return keptNodes, keptEdges, warnings
}

// IsolatedNodes reports nodes that no edge reaches. Full connectivity is
// requested from the model but deliberately not enforced post-hoc; callers
// surface these warnings as a quality signal only.
func IsolatedNodes(nodes []Node, edges []Edge) []Warning {
	if len(nodes) < 2 {
		return nil
	}
	connected := make(map[string]bool, len(nodes))
	for i := range edges {
		connected[edges[i].Source] = true
		connected[edges[i].Target] = true
	}
	var warnings []Warning
	for i := range nodes {
		if !connected[nodes[i].ID] {
			warnings = append(warnings, Warning{
				Kind:   WarnIsolatedNode,
				Detail: fmt.Sprintf("node %q (%s) is not reachable via any edge", nodes[i].Label, nodes[i].ID),
			})
		}
	}
	return warnings
}
