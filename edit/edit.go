package edit

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

// editTemperature keeps diffs conservative.
const editTemperature = 0.3

// Modification actions the model may request.
const (
	ActionAdd    = "add"
	ActionModify = "modify"
	ActionRemove = "remove"
)

// EditError indicates an edit instruction could not be reconciled into a
// valid diff. The caller's graph is never modified on failure: the edit
// is all-or-nothing at this boundary even though application is
// step-by-step internally.
type EditError struct {
	// Reason is the human-readable cause.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

func (e *EditError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("edit: %s", e.Reason)
	}
	return fmt.Sprintf("edit: %s: %v", e.Reason, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

// Modification is one entry in the model's diff. Pointer fields
// distinguish "absent" from "set to empty": a modify action only
// overwrites fields explicitly present in the payload.
type Modification struct {
	Action   string            `json:"action"`
	NodeID   string            `json:"nodeId"`
	Label    *string           `json:"label,omitempty"`
	Product  *string           `json:"product,omitempty"`
	Category *graph.Category   `json:"category,omitempty"`
	Config   *graph.NodeConfig `json:"config,omitempty"`
}

// response is the JSON contract the model is asked to honor.
type response struct {
	Description   string         `json:"description"`
	Modifications []Modification `json:"modifications"`
	NewEdges      []graph.Edge   `json:"newEdges"`
}

// Report carries the diagnostics of one edit alongside the new graph.
type Report struct {
	// Description is the model's summary of the change.
	Description string

	// Warnings lists repairs applied while merging the diff.
	Warnings []graph.Warning

	// Usage is the token consumption of the edit call.
	Usage llm.TokenUsage
}

// Editor reconciles a natural-language change instruction with an
// existing architecture graph.
type Editor struct {
	client llm.Client
	store  session.Store
	logger *slog.Logger
}

// New creates an Editor. store may be nil, in which case edited graphs
// are not persisted. logger may be nil.
func New(client llm.Client, store session.Store, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Edit applies the instruction to current and returns the merged graph.
//
// The current graph is never mutated: application happens on a clone,
// so any failure leaves the caller's reference exactly as it was.
// Structural repairs (an edge with a missing endpoint, a human-actor
// node slipping in through the diff) are applied locally and reported
// as warnings rather than failing the edit.
func (e *Editor) Edit(ctx context.Context, current *graph.ArchGraph, instruction string) (*graph.ArchGraph, *Report, error) {
	if current == nil {
		return nil, nil, &EditError{Reason: "no current graph"}
	}
	if e.client == nil || !e.client.IsAvailable() {
		return nil, nil, &EditError{Reason: "model access unavailable", Err: llm.ErrMissingAPIKey}
	}

	req := llm.NewCompletionRequest(
		[]llm.Message{
			llm.System(editInstruction(current)),
			llm.User(instruction),
		},
		llm.WithTemperature(editTemperature),
		llm.WithJSONMode(),
	)
	resp, err := e.client.Complete(ctx, req)
	if err != nil {
		return nil, nil, &EditError{Reason: "model call failed", Err: err}
	}

	parsed, err := parser.ExtractAndParse[response](resp.Content)
	if err != nil {
		if errors.Is(err, parser.ErrNoJSON) {
			return nil, nil, &EditError{Reason: "response contained no JSON object", Err: err}
		}
		return nil, nil, &EditError{Reason: "unparseable response", Err: err}
	}

	work := current.Clone()
	var warnings []graph.Warning

	// Node modifications first, in the order the model produced them.
	for _, mod := range parsed.Modifications {
		switch mod.Action {
		case ActionAdd:
			e.applyAdd(work, mod)
		case ActionModify:
			if !e.applyModify(work, mod) {
				e.logger.Warn("modify targeted a missing node", "node_id", mod.NodeID)
			}
		case ActionRemove:
			if !work.RemoveNode(mod.NodeID) {
				e.logger.Warn("remove targeted a missing node", "node_id", mod.NodeID)
			}
		default:
			e.logger.Warn("unknown modification action skipped", "action", mod.Action)
		}
	}

	// New edges are validated against the post-modification node set.
	for _, ne := range parsed.NewEdges {
		if !work.HasNode(ne.Source) || !work.HasNode(ne.Target) {
			w := graph.Warning{
				Kind:   graph.WarnDroppedEdge,
				Detail: fmt.Sprintf("new edge %s -> %s references a missing node", ne.Source, ne.Target),
			}
			warnings = append(warnings, w)
			e.logger.Warn("edit sanitization", "kind", w.Kind, "detail", w.Detail)
			continue
		}
		if ne.ID == "" {
			ne.ID = id.Edge(ne.Source, ne.Target)
		}
		if err := work.AddEdge(ne); err != nil {
			e.logger.Warn("new edge rejected", "error", err)
		}
	}

	// Final pass: the no-human-actor invariant must hold after every
	// mutation path, so the same filter synthesis uses runs again here.
	nodes, edges, sanitizeWarnings := graph.Sanitize(work.Nodes, work.Edges)
	work.Nodes = nodes
	work.Edges = edges
	warnings = append(warnings, sanitizeWarnings...)
	for _, w := range sanitizeWarnings {
		e.logger.Warn("edit sanitization", "kind", w.Kind, "detail", w.Detail)
	}

	if err := work.Validate(); err != nil {
		return nil, nil, &EditError{Reason: "merged graph failed validation", Err: err}
	}
	if parsed.Description != "" {
		work.Description = parsed.Description
	}

	if e.store != nil {
		if err := e.store.Set(ctx, work.ID, work); err != nil {
			return nil, nil, &EditError{Reason: "failed to persist edited graph", Err: err}
		}
	}

	e.logger.Info("architecture edited",
		"graph_id", work.ID,
		"nodes", len(work.Nodes),
		"edges", len(work.Edges),
		"warnings", len(warnings))

	return work, &Report{
		Description: parsed.Description,
		Warnings:    warnings,
		Usage:       resp.Usage,
	}, nil
}

// applyAdd inserts a new node, generating an ID when the model omitted
// one or reused an existing one, and synthesizing a default config bag
// so downstream rendering never sees undefined descriptive fields.
func (e *Editor) applyAdd(work *graph.ArchGraph, mod Modification) {
	label := strOr(mod.Label, mod.NodeID)
	n := graph.Node{
		ID:      mod.NodeID,
		Label:   label,
		Product: strOr(mod.Product, label),
	}
	if mod.Category != nil {
		n.Category = *mod.Category
	} else {
		n.Category = graph.CategoryOther
	}
	if mod.Config != nil && !mod.Config.IsZero() {
		n.Config = mod.Config
	} else {
		n.Config = defaultConfig(n.Product)
	}
	if n.ID == "" || work.HasNode(n.ID) {
		n.ID = id.Node(n.Label)
	}
	if err := work.AddNode(n); err != nil {
		e.logger.Warn("added node rejected", "error", err)
	}
}

// applyModify overwrites only the fields explicitly present in the
// payload; the node ID itself is immutable. Reports whether the target
// node existed.
func (e *Editor) applyModify(work *graph.ArchGraph, mod Modification) bool {
	n := work.FindNode(mod.NodeID)
	if n == nil {
		return false
	}
	if mod.Label != nil {
		n.Label = *mod.Label
	}
	if mod.Product != nil {
		n.Product = *mod.Product
	}
	if mod.Category != nil {
		n.Category = *mod.Category
	}
	if mod.Config != nil {
		n.Config = mod.Config
	}
	return true
}

// defaultConfig is the bag attached to added nodes whose modification
// carried none.
func defaultConfig(product string) *graph.NodeConfig {
	return &graph.NodeConfig{
		Tier:      "Standard",
		Rationale: fmt.Sprintf("%s added by architecture edit", product),
	}
}

func strOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
