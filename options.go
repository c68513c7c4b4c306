package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/archforge-ai/sdk/export"
	"github.com/archforge-ai/sdk/intent"
	"github.com/archforge-ai/sdk/layout"
	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/session"
)

// Option configures the Pipeline.
type Option func(*pipelineConfig)

// pipelineConfig holds configuration for the Pipeline instance.
type pipelineConfig struct {
	configPath string
	logger     *slog.Logger
	tracer     trace.Tracer
	client     llm.Client
	store      session.Store
	classifier intent.Classifier
	layout     layout.Engine
	exporter   export.Exporter
}

// WithConfigFile sets the archforge.yaml path for the pipeline.
// The file supplies model access settings and the session storage
// backend. Explicit WithClient/WithStore options take precedence over
// the file.
func WithConfigFile(path string) Option {
	return func(c *pipelineConfig) {
		c.configPath = path
	}
}

// WithLogger sets a custom logger for the pipeline.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *pipelineConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// Each Handle, Export, and Layout call runs under its own span.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *pipelineConfig) {
		c.tracer = tracer
	}
}

// WithClient sets the language-model client used for classification,
// synthesis, editing, and export. If not provided, an HTTP client is
// built from the config file or environment defaults.
func WithClient(client llm.Client) Option {
	return func(c *pipelineConfig) {
		c.client = client
	}
}

// WithStore sets the session store holding architecture graphs between
// requests. If not provided, the config file selects a backend, and an
// in-memory store is the final default.
func WithStore(store session.Store) Option {
	return func(c *pipelineConfig) {
		c.store = store
	}
}

// WithClassifier sets a custom intent classifier. The pipeline always
// wraps the classifier with a deterministic keyword fallback, so
// classification itself never fails a request.
func WithClassifier(classifier intent.Classifier) Option {
	return func(c *pipelineConfig) {
		c.classifier = classifier
	}
}

// WithLayoutEngine sets the placement engine used by Layout.
// Defaults to the layered engine.
func WithLayoutEngine(engine layout.Engine) Option {
	return func(c *pipelineConfig) {
		c.layout = engine
	}
}

// WithExporter sets the Infrastructure-as-Code exporter used by Export.
// Defaults to the model-backed exporter.
func WithExporter(exporter export.Exporter) Option {
	return func(c *pipelineConfig) {
		c.exporter = exporter
	}
}
