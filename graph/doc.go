// Package graph defines the architecture-graph data model and the shared
// validator/sanitizer used by every mutation path.
//
// An ArchGraph is the root aggregate of one editing session: an ordered
// set of Nodes (cloud components) connected by labeled, directed Edges
// (data flows). The aggregate is always owned by the caller; synthesis
// and edit operations take it explicitly and return a new instance, so
// there is no ambient "current architecture" state anywhere in the SDK.
//
// # Structural Invariants
//
// Every ArchGraph returned by this SDK satisfies:
//
//   - No dangling edges: every edge's source and target reference an
//     existing node ID.
//   - No duplicate node IDs.
//   - No human-actor nodes: nodes representing people (users, admins,
//     developers) are rejected because IaC generation has no modeling
//     for human actors.
//
// Full connectivity is requested from the model but deliberately not
// enforced: isolated nodes surface as a quality warning instead of
// being repaired. See IsolatedNodes.
//
// # Sanitization
//
// Sanitize is the single repair pass shared by synthesis and editing.
// Sharing it is itself an invariant: a rule change automatically applies
// to both mutation paths. Data-quality problems are repaired locally
// (the offending node or edge is dropped and a Warning recorded) rather
// than failing the whole operation — discarding one bad edge is far
// cheaper than discarding an entire generated architecture.
package graph
