// Package edit reconciles natural-language change instructions with an
// existing architecture graph.
//
// The editor asks the language model for a diff — node additions,
// modifications, removals, and new edges — rather than a whole new
// graph, then merges it: modifications apply in order, new edges are
// validated against the post-modification node set, and the same
// human-actor filter used at synthesis runs as a final pass. That
// duplication is deliberate; the invariant must hold after every
// mutation path, not just at creation.
//
// The edit is all-or-nothing at the public boundary. Application works
// on a clone, so a parse or validation failure leaves the caller's
// graph untouched.
package edit
