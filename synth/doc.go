// Package synth converts a natural-language requirements statement into
// a complete architecture graph.
//
// The synthesizer prompts the language model with a strict JSON contract
// and then re-checks every contract rule locally: human-actor nodes are
// dropped, dangling edges are dropped, IDs are generated where absent.
// The model's compliance is never trusted. On success the graph is
// assigned a fresh ID and persisted to the session store before being
// returned; any failure surfaces as a GenerationError and nothing is
// persisted.
package synth
