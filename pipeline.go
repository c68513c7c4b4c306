package sdk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/archforge-ai/sdk/config"
	"github.com/archforge-ai/sdk/edit"
	"github.com/archforge-ai/sdk/export"
	"github.com/archforge-ai/sdk/graph"
	"github.com/archforge-ai/sdk/health"
	"github.com/archforge-ai/sdk/intent"
	"github.com/archforge-ai/sdk/layout"
	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/session"
	"github.com/archforge-ai/sdk/synth"
)

// Response is the outcome of one handled utterance.
type Response struct {
	// SessionID identifies the session the response belongs to. Equal to
	// the requested session, or freshly generated when none was given.
	SessionID string

	// Intent is the classification that drove the dispatch.
	Intent intent.Result

	// Graph is the architecture after the operation. Nil for
	// conversational intents that do not touch the graph.
	Graph *graph.ArchGraph

	// Message is the conversational reply, when the intent called for
	// one, or the model's summary of a graph change.
	Message string

	// Warnings lists data-quality repairs applied during the operation.
	Warnings []graph.Warning

	// Usage aggregates token consumption of the model calls involved.
	Usage llm.TokenUsage
}

// Pipeline is the main SDK entry point. It classifies each utterance,
// dispatches to synthesis, editing, or conversation, and keeps the
// session store as the single source of truth for graphs between calls.
//
// Requests to the same session are serialized: a second request while
// one is in flight is rejected with ErrSessionBusy rather than queued.
type Pipeline interface {
	// Handle classifies the utterance and performs the requested
	// operation. An empty sessionID starts a new session.
	Handle(ctx context.Context, sessionID, utterance string) (*Response, error)

	// Graph returns the session's current architecture.
	Graph(ctx context.Context, sessionID string) (*graph.ArchGraph, error)

	// Layout computes canvas placements for the session's architecture.
	Layout(ctx context.Context, sessionID string, width, height float64) ([]layout.Placement, error)

	// Export renders the session's architecture as Infrastructure-as-Code.
	Export(ctx context.Context, sessionID string, format export.Format) (string, error)

	// Reset discards the session's architecture.
	Reset(ctx context.Context, sessionID string) error

	// Health reports the operational state of the pipeline's
	// collaborators: model access and the session store.
	Health(ctx context.Context) health.Status

	// Close releases resources held by the pipeline, including the
	// session store when the pipeline owns it.
	Close() error
}

// NewPipeline creates a new pipeline instance.
//
// Example:
//
//	pipeline, err := sdk.NewPipeline(
//	    sdk.WithLogger(logger),
//	    sdk.WithConfigFile("/etc/archforge/archforge.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Close()
func NewPipeline(opts ...Option) (Pipeline, error) {
	cfg := &pipelineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Create default logger if not provided
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	var fileCfg *config.Config
	if cfg.configPath != "" {
		loaded, err := config.Load(cfg.configPath)
		if err != nil {
			return nil, NewConfigurationError("NewPipeline", err)
		}
		fileCfg = loaded
	}

	if cfg.client == nil {
		cfg.client = clientFromConfig(fileCfg)
	}

	var ownedStore io.Closer
	if cfg.store == nil {
		store, err := storeFromConfig(fileCfg)
		if err != nil {
			return nil, NewConfigurationError("NewPipeline", err)
		}
		cfg.store = store
		if closer, ok := store.(io.Closer); ok {
			ownedStore = closer
		}
	}

	// Classification never fails a request: whatever classifier is
	// configured gets the deterministic keyword fallback behind it.
	var classifier intent.Classifier
	switch {
	case cfg.classifier != nil:
		classifier = intent.NewDefault(cfg.classifier, cfg.logger)
	case cfg.client.IsAvailable():
		classifier = intent.NewDefault(intent.NewModelClassifier(cfg.client), cfg.logger)
	default:
		classifier = intent.NewRuleClassifier()
	}

	if cfg.layout == nil {
		cfg.layout = layout.NewLayeredEngine()
	}
	if cfg.exporter == nil {
		cfg.exporter = export.NewModelExporter(cfg.client)
	}

	p := &defaultPipeline{
		logger:     cfg.logger,
		tracer:     cfg.tracer,
		client:     cfg.client,
		store:      cfg.store,
		classifier: classifier,
		// Persistence is keyed by session, so the pipeline writes the
		// store itself rather than letting synthesis and editing persist
		// under graph ids.
		synthesizer: synth.New(cfg.client, nil, cfg.logger),
		editor:      edit.New(cfg.client, nil, cfg.logger),
		layout:      cfg.layout,
		exporter:    cfg.exporter,
		ownedStore:  ownedStore,
		busy:        make(map[string]struct{}),
	}

	return p, nil
}

// clientFromConfig builds the HTTP model client from file settings, or
// from environment defaults when no file was given.
func clientFromConfig(cfg *config.Config) llm.Client {
	opts := llm.Options{}
	if cfg != nil && cfg.Model != nil {
		opts.BaseURL = cfg.Model.BaseURL
		opts.APIKeyEnv = cfg.Model.GetAPIKeyEnv()
		opts.Model = cfg.Model.GetName()
		opts.Timeout = cfg.Model.GetTimeout()
	}
	return llm.NewHTTPClient(opts)
}

// storeFromConfig builds the session store the file selects, defaulting
// to the in-memory store.
func storeFromConfig(cfg *config.Config) (session.Store, error) {
	if cfg == nil || cfg.Session == nil {
		return session.NewMemoryStore(), nil
	}

	switch backend := cfg.Session.GetBackend(); backend {
	case "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		return session.NewRedisStore(session.RedisOptions{
			URL: cfg.Session.Redis.URL,
			TTL: cfg.Session.Redis.GetTTL(),
		})
	case "etcd":
		return session.NewEtcdStore(session.EtcdOptions{
			Endpoints:   cfg.Session.Etcd.Endpoints,
			Namespace:   cfg.Session.Etcd.Namespace,
			DialTimeout: cfg.Session.Etcd.GetDialTimeout(),
		})
	default:
		return nil, fmt.Errorf("unknown session backend %q: %w", backend, ErrInvalidConfig)
	}
}

// defaultPipeline is the standard Pipeline implementation.
type defaultPipeline struct {
	logger     *slog.Logger
	tracer     trace.Tracer
	client     llm.Client
	store      session.Store
	classifier intent.Classifier

	synthesizer *synth.Synthesizer
	editor      *edit.Editor
	layout      layout.Engine
	exporter    export.Exporter

	ownedStore io.Closer

	mu   sync.Mutex
	busy map[string]struct{}
}

// acquire marks the session busy, or reports that it already is.
func (p *defaultPipeline) acquire(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, inFlight := p.busy[sessionID]; inFlight {
		return false
	}
	p.busy[sessionID] = struct{}{}
	return true
}

func (p *defaultPipeline) release(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.busy, sessionID)
}

// startSpan opens a tracing span when a tracer is configured and
// otherwise returns the context unchanged with a no-op end.
func (p *defaultPipeline) startSpan(ctx context.Context, name, sessionID string) (context.Context, func()) {
	if p.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := p.tracer.Start(ctx, name,
		trace.WithAttributes(attribute.String("archforge.session_id", sessionID)))
	return ctx, func() { span.End() }
}

// Handle implements Pipeline.
func (p *defaultPipeline) Handle(ctx context.Context, sessionID, utterance string) (*Response, error) {
	const op = "Pipeline.Handle"

	if strings.TrimSpace(utterance) == "" {
		return nil, NewValidationError(op, errors.New("empty utterance"))
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	if !p.acquire(sessionID) {
		return nil, NewBusyError(op)
	}
	defer p.release(sessionID)

	ctx, end := p.startSpan(ctx, "pipeline.handle", sessionID)
	defer end()

	current, err := p.currentGraph(ctx, sessionID)
	if err != nil {
		return nil, NewInternalError(op, err)
	}

	result, err := p.classifier.Classify(ctx, utterance, current != nil)
	if err != nil {
		// Only reachable with a custom classifier that has no fallback.
		return nil, NewInternalError(op, err)
	}

	p.logger.Info("utterance classified",
		"session_id", sessionID,
		"intent", result.Intent,
		"confidence", result.Confidence)

	resp := &Response{SessionID: sessionID, Intent: result}

	switch result.Intent {
	case intent.IntentGenerate:
		err = p.generate(ctx, sessionID, utterance, resp)
	case intent.IntentModify:
		if current == nil {
			// A change request against an empty session still describes
			// what the user wants built.
			p.logger.Info("modify intent without architecture, synthesizing",
				"session_id", sessionID)
			err = p.generate(ctx, sessionID, utterance, resp)
		} else {
			err = p.modify(ctx, sessionID, current, utterance, resp)
		}
	case intent.IntentAskQuestion, intent.IntentExplainComponent, intent.IntentGeneralChat:
		resp.Graph = current
		err = p.converse(ctx, current, utterance, result.Intent, resp)
	default:
		err = NewInternalError(op, fmt.Errorf("unhandled intent %q", result.Intent))
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (p *defaultPipeline) generate(ctx context.Context, sessionID, utterance string, resp *Response) error {
	const op = "Pipeline.Handle"

	g, report, err := p.synthesizer.Synthesize(ctx, utterance)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return NewConfigurationError(op, fmt.Errorf("%w: %w", ErrMissingCredential, err))
		}
		return NewGenerationError(op, fmt.Errorf("%w: %w", ErrGeneration, err))
	}
	if err := p.store.Set(ctx, sessionID, g); err != nil {
		return NewInternalError(op, err)
	}

	resp.Graph = g
	resp.Message = g.Description
	resp.Warnings = report.Warnings
	resp.Usage = report.Usage
	return nil
}

func (p *defaultPipeline) modify(ctx context.Context, sessionID string, current *graph.ArchGraph, utterance string, resp *Response) error {
	const op = "Pipeline.Handle"

	g, report, err := p.editor.Edit(ctx, current, utterance)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return NewConfigurationError(op, fmt.Errorf("%w: %w", ErrMissingCredential, err))
		}
		return NewEditError(op, fmt.Errorf("%w: %w", ErrEdit, err))
	}
	if err := p.store.Set(ctx, sessionID, g); err != nil {
		return NewInternalError(op, err)
	}

	resp.Graph = g
	resp.Message = report.Description
	resp.Warnings = report.Warnings
	resp.Usage = report.Usage
	return nil
}

// converse answers question, explanation, and chat intents with a plain
// completion grounded in the current architecture.
func (p *defaultPipeline) converse(ctx context.Context, current *graph.ArchGraph, utterance string, in intent.Intent, resp *Response) error {
	const op = "Pipeline.Handle"

	if p.client == nil || !p.client.IsAvailable() {
		return NewConfigurationError(op, ErrMissingCredential)
	}

	req := llm.NewCompletionRequest([]llm.Message{
		llm.System(conversationInstruction(current, in)),
		llm.User(utterance),
	})
	completion, err := p.client.Complete(ctx, req)
	if err != nil {
		return NewNetworkError(op, err)
	}

	resp.Message = completion.Content
	resp.Usage = completion.Usage
	return nil
}

// conversationInstruction builds the system prompt for conversational
// intents. Explanation requests get the full component detail, plain
// questions and chat a compact summary.
func conversationInstruction(current *graph.ArchGraph, in intent.Intent) string {
	var b strings.Builder
	b.WriteString("You are a cloud architecture assistant. Answer concisely and concretely.\n")

	if current == nil {
		b.WriteString("No architecture has been designed in this session yet.\n")
		return b.String()
	}

	b.WriteString("\nThe session's current architecture:\n")
	for i := range current.Nodes {
		n := &current.Nodes[i]
		fmt.Fprintf(&b, "- %s: %s (%s)", n.Label, n.Product, n.Category)
		if in == intent.IntentExplainComponent {
			if !n.Config.IsZero() && n.Config.Rationale != "" {
				fmt.Fprintf(&b, " — %s", n.Config.Rationale)
			}
		}
		b.WriteByte('\n')
	}
	for i := range current.Edges {
		e := &current.Edges[i]
		fmt.Fprintf(&b, "- connection: %s -> %s (%s)\n", e.Source, e.Target, e.Label)
	}
	return b.String()
}

// Graph implements Pipeline.
func (p *defaultPipeline) Graph(ctx context.Context, sessionID string) (*graph.ArchGraph, error) {
	const op = "Pipeline.Graph"

	g, err := p.store.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			return nil, NewNotFoundError(op, err)
		case errors.Is(err, session.ErrInvalidID):
			return nil, NewValidationError(op, err)
		default:
			return nil, NewInternalError(op, err)
		}
	}
	return g, nil
}

// Layout implements Pipeline.
func (p *defaultPipeline) Layout(ctx context.Context, sessionID string, width, height float64) ([]layout.Placement, error) {
	ctx, end := p.startSpan(ctx, "pipeline.layout", sessionID)
	defer end()

	g, err := p.Graph(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	nodes, links := layout.FromGraph(g, width, height)
	return p.layout.Layout(nodes, links), nil
}

// Export implements Pipeline.
func (p *defaultPipeline) Export(ctx context.Context, sessionID string, format export.Format) (string, error) {
	const op = "Pipeline.Export"

	if !p.acquire(sessionID) {
		return "", NewBusyError(op)
	}
	defer p.release(sessionID)

	ctx, end := p.startSpan(ctx, "pipeline.export", sessionID)
	defer end()

	g, err := p.Graph(ctx, sessionID)
	if err != nil {
		return "", err
	}

	code, err := p.exporter.Export(ctx, g, format)
	if err != nil {
		return "", &SDKError{Op: op, Kind: KindGeneration, Err: fmt.Errorf("%w: %w", ErrExport, err)}
	}
	return code, nil
}

// Health implements Pipeline.
func (p *defaultPipeline) Health(ctx context.Context) health.Status {
	model := health.NewHealthy("model access configured")
	if p.client == nil || !p.client.IsAvailable() {
		model = health.NewUnhealthy("model access unavailable", nil)
	}

	return health.Combine(map[string]health.Status{
		"model": model,
		"store": health.StoreCheck(ctx, p.store),
	})
}

// Reset implements Pipeline.
func (p *defaultPipeline) Reset(ctx context.Context, sessionID string) error {
	const op = "Pipeline.Reset"

	if err := p.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return NewInternalError(op, err)
	}
	return nil
}

// Close implements Pipeline.
func (p *defaultPipeline) Close() error {
	if p.ownedStore != nil {
		CloseWithLog(p.ownedStore, p.logger, "session store")
	}
	return nil
}

// currentGraph fetches the session's graph, mapping absence to nil.
func (p *defaultPipeline) currentGraph(ctx context.Context, sessionID string) (*graph.ArchGraph, error) {
	g, err := p.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}
