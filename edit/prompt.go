package edit

import (
	"fmt"
	"strings"

	"github.com/archforge-ai/sdk/graph"
)

// editInstruction builds the system prompt for one edit. Only node IDs,
// labels, and products are enumerated — never the full config bags —
// so the model can reference existing IDs precisely without drowning
// in detail.
func editInstruction(current *graph.ArchGraph) string {
	var b strings.Builder
	b.WriteString("You are a cloud solutions architect editing an existing architecture.\n\n")
	b.WriteString("Current components:\n")
	for i := range current.Nodes {
		n := &current.Nodes[i]
		fmt.Fprintf(&b, "- id: %s | label: %s | product: %s\n", n.ID, n.Label, n.Product)
	}
	b.WriteString("\nCurrent connections:\n")
	for i := range current.Edges {
		e := &current.Edges[i]
		fmt.Fprintf(&b, "- %s -> %s (%s)\n", e.Source, e.Target, e.Label)
	}

	b.WriteString(`
Apply the user's instruction as a diff. Respond with a single JSON object:
{
  "description": "summary of the change",
  "modifications": [
    {"action": "add", "nodeId": "redis-cache-1718031254", "label": "Cache", "product": "Azure Cache for Redis", "category": "database", "config": {"tier": "Basic", "rationale": "..."}},
    {"action": "modify", "nodeId": "existing-id", "label": "New Label"},
    {"action": "remove", "nodeId": "existing-id"}
  ],
  "newEdges": [
    {"source": "existing-or-new-id", "target": "existing-or-new-id", "label": "Cached Reads"}
  ]
}

Hard rules:
1. action is one of: add, modify, remove.
2. For modify and remove, nodeId must be one of the ids listed above.
3. For add, invent a new id by combining a kebab-case name with a numeric suffix (e.g. "redis-cache-1718031254") so it cannot collide.
4. category must be one of: compute, storage, database, messaging, analytics, frontend, gateway, other.
5. Never add a node representing a human actor or end user.
6. Every new edge must reference nodes that exist after the modifications are applied, and needs a short label.
7. For modify, include only the fields being changed.

Return only the JSON object.`)
	return b.String()
}
