// Package sdk provides the official Software Development Kit for the Archforge platform.
//
// The Archforge SDK turns natural-language requirements into cloud
// architecture diagrams. A user describes a system in plain text; the
// SDK classifies what the user wants, asks a language model to design
// or change an architecture graph, re-checks every structural rule
// locally, and keeps the result in a session store between turns.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Graphs: architecture diagrams as typed nodes (cloud products) and labeled edges
//   - Intents: the five operations an utterance can request (generate, modify,
//     ask-question, explain-component, general-chat)
//   - Sessions: one evolving architecture per session, persisted in a pluggable store
//   - Layout: placement of the graph on a canvas, behind a black-box engine interface
//   - Export: rendering the graph as Terraform, Bicep, or ARM templates
//
// # Architecture
//
// The SDK follows a layered architecture:
//
//   - Pipeline Layer: classify an utterance, dispatch, persist the result
//   - Model Layer: OpenAI-compatible chat-completions client with strict JSON contracts
//   - Validation Layer: local sanitization that never trusts model compliance
//   - Storage Layer: in-memory, Redis, or etcd session stores
//
// # Getting Started
//
// To use the SDK, create a pipeline instance:
//
//	import "github.com/archforge-ai/sdk"
//
//	pipeline, err := sdk.NewPipeline(
//		sdk.WithConfigFile("archforge.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pipeline.Close()
//
//	resp, err := pipeline.Handle(ctx, "", "Design a web shop with a product database and a payment queue")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(resp.Graph.Products())
//
// Follow-up turns reuse the returned session ID; the pipeline decides
// from the utterance whether to redesign, edit, or just answer:
//
//	resp2, err := pipeline.Handle(ctx, resp.SessionID, "add a redis cache in front of the database")
//
// # Error Handling
//
// Operations return *SDKError values carrying the failed operation and
// an error kind, wrapping sentinel errors that work with errors.Is:
//
//	if errors.Is(err, sdk.ErrSessionBusy) {
//		// another request for this session is in flight
//	}
//
// Data-quality problems in model output are not errors: the pipeline
// repairs them (dropping a dangling edge, removing a human-actor node)
// and reports each repair as a Warning on the Response.
//
// # Observability
//
// All components log through log/slog. Distributed tracing is optional:
// build a tracer with NewTracerProvider and pass it via WithTracer to
// get a span per pipeline operation.
package sdk
