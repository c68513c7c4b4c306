package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/archforge-ai/sdk/graph"
	"github.com/archforge-ai/sdk/graph/id"
	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/parser"
	"github.com/archforge-ai/sdk/session"
)

// synthesisTemperature balances structural reliability against some
// variety in product selection.
const synthesisTemperature = 0.4

// GenerationError indicates synthesis could not produce a usable graph:
// missing credential, upstream failure, or a malformed response. It is
// always surfaced with a human-readable cause and never leaves a
// partially applied graph behind.
type GenerationError struct {
	// Reason is the human-readable cause.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("synth: %s", e.Reason)
	}
	return fmt.Sprintf("synth: %s: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Report carries the diagnostics of one synthesis alongside the graph.
type Report struct {
	// Warnings lists the data-quality repairs applied to the model's
	// response. Warnings never block an otherwise valid graph.
	Warnings []graph.Warning

	// Components is the flat list of product names the model reported,
	// for summary display. Derived from the node set when absent.
	Components []string

	// Usage is the token consumption of the synthesis call.
	Usage llm.TokenUsage
}

// Synthesizer converts a requirements utterance into a complete
// architecture graph by prompting the language model with a strict JSON
// contract, then re-checking every contract rule locally. The model's
// compliance is never trusted.
type Synthesizer struct {
	client llm.Client
	store  session.Store
	logger *slog.Logger
}

// New creates a Synthesizer. store may be nil, in which case graphs are
// not persisted. logger may be nil.
func New(client llm.Client, store session.Store, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		client: client,
		store:  store,
		logger: logger,
	}
}

// response is the JSON contract the model is asked to honor.
type response struct {
	Nodes       []graph.Node `json:"nodes"`
	Edges       []graph.Edge `json:"edges"`
	Description string       `json:"description"`
	Components  []string     `json:"components"`
}

// Synthesize produces a new architecture graph from requirementsText.
// On success the graph carries a fresh ID and has been persisted to the
// session store before being returned.
func (s *Synthesizer) Synthesize(ctx context.Context, requirementsText string) (*graph.ArchGraph, *Report, error) {
	if s.client == nil || !s.client.IsAvailable() {
		return nil, nil, &GenerationError{Reason: "model access unavailable", Err: llm.ErrMissingAPIKey}
	}

	req := llm.NewCompletionRequest(
		[]llm.Message{
			llm.System(synthesisInstruction),
			llm.User(requirementsText),
		},
		llm.WithTemperature(synthesisTemperature),
		llm.WithJSONMode(),
	)
	resp, err := s.client.Complete(ctx, req)
	if err != nil {
		return nil, nil, &GenerationError{Reason: "model call failed", Err: err}
	}

	parsed, err := parser.ExtractAndParse[response](resp.Content)
	if err != nil {
		if errors.Is(err, parser.ErrNoJSON) {
			return nil, nil, &GenerationError{Reason: "response contained no JSON object", Err: err}
		}
		return nil, nil, &GenerationError{Reason: "unparseable response", Err: err}
	}
	if len(parsed.Nodes) == 0 {
		return nil, nil, &GenerationError{Reason: "response contained no nodes"}
	}

	nodes := assignNodeIDs(parsed.Nodes)
	edges := assignEdgeIDs(parsed.Edges)

	nodes, edges, warnings := graph.Sanitize(nodes, edges)
	warnings = append(warnings, graph.IsolatedNodes(nodes, edges)...)
	for _, w := range warnings {
		s.logger.Warn("synthesis sanitization", "kind", w.Kind, "detail", w.Detail)
	}
	if len(nodes) == 0 {
		return nil, nil, &GenerationError{Reason: "no nodes survived sanitization"}
	}

	g := graph.New(id.Graph())
	g.RequirementsText = requirementsText
	g.Nodes = nodes
	g.Edges = edges
	g.Description = parsed.Description

	components := parsed.Components
	if len(components) == 0 {
		components = g.Products()
	}

	if s.store != nil {
		if err := s.store.Set(ctx, g.ID, g); err != nil {
			return nil, nil, &GenerationError{Reason: "failed to persist graph", Err: err}
		}
	}

	s.logger.Info("architecture synthesized",
		"graph_id", g.ID,
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"warnings", len(warnings))

	return g, &Report{
		Warnings:   warnings,
		Components: components,
		Usage:      resp.Usage,
	}, nil
}

// assignNodeIDs fills in an ID for every node the model left without one.
func assignNodeIDs(nodes []graph.Node) []graph.Node {
	out := make([]graph.Node, len(nodes))
	copy(out, nodes)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = id.Node(out[i].Label)
		}
	}
	return out
}

// assignEdgeIDs fills in an ID for every edge the model left without one.
func assignEdgeIDs(edges []graph.Edge) []graph.Edge {
	out := make([]graph.Edge, len(edges))
	copy(out, edges)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = id.Edge(out[i].Source, out[i].Target)
		}
	}
	return out
}
