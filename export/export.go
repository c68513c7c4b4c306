package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archforge-ai/sdk/graph"
	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/parser"
)

// Format identifies an Infrastructure-as-Code output format.
type Format string

const (
	FormatTerraform Format = "terraform"
	FormatBicep     Format = "bicep"
	FormatARM       Format = "arm"
)

// Formats lists every supported format.
var Formats = []Format{FormatTerraform, FormatBicep, FormatARM}

// IsValid checks if the format is one of the defined constants.
func (f Format) IsValid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Exporter renders a validated architecture graph into an IaC text
// format. The graph — nodes with product, category, config, and labeled
// edges — is the sole input contract; exporters know nothing about how
// the graph was produced.
type Exporter interface {
	Export(ctx context.Context, g *graph.ArchGraph, format Format) (string, error)
}

// ModelExporter generates IaC text by prompting the language model with
// the full graph, config bags included.
type ModelExporter struct {
	client llm.Client
}

// NewModelExporter creates a model-backed exporter.
func NewModelExporter(client llm.Client) *ModelExporter {
	return &ModelExporter{client: client}
}

// Export implements Exporter.
func (e *ModelExporter) Export(ctx context.Context, g *graph.ArchGraph, format Format) (string, error) {
	if g == nil || len(g.Nodes) == 0 {
		return "", fmt.Errorf("export: nothing to export")
	}
	if !format.IsValid() {
		return "", fmt.Errorf("export: unsupported format %q", format)
	}
	if e.client == nil || !e.client.IsAvailable() {
		return "", fmt.Errorf("export: model access unavailable: %w", llm.ErrMissingAPIKey)
	}

	req := llm.NewCompletionRequest(
		[]llm.Message{
			llm.System(exportInstruction(format)),
			llm.User(describeGraph(g)),
		},
		llm.WithTemperature(0.2),
	)
	resp, err := e.client.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("export: model call failed: %w", err)
	}

	code := parser.StripFences(resp.Content)
	if code == "" {
		return "", fmt.Errorf("export: model returned no code")
	}
	return code, nil
}

// exportInstruction builds the format-specific system prompt.
func exportInstruction(format Format) string {
	var lang string
	switch format {
	case FormatTerraform:
		lang = "Terraform HCL (azurerm/aws providers as appropriate)"
	case FormatBicep:
		lang = "Azure Bicep"
	case FormatARM:
		lang = "an Azure ARM template (JSON)"
	}
	return fmt.Sprintf(`You are an infrastructure engineer. Generate deployable %s for the architecture the user provides.

Rules:
1. Cover every component; honor tier, SKU, and region hints from each component's config.
2. Use resource references to express the data-flow connections.
3. Return only the code, no commentary.`, lang)
}

// describeGraph serializes the graph for the export prompt: every node
// with its full config bag, then the labeled connections.
func describeGraph(g *graph.ArchGraph) string {
	var b strings.Builder
	b.WriteString("Components:\n")
	for i := range g.Nodes {
		n := &g.Nodes[i]
		fmt.Fprintf(&b, "- %s (%s, category %s)", n.Label, n.Product, n.Category)
		if !n.Config.IsZero() {
			if data, err := json.Marshal(n.Config); err == nil {
				fmt.Fprintf(&b, " config: %s", data)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("\nConnections:\n")
	for i := range g.Edges {
		e := &g.Edges[i]
		fmt.Fprintf(&b, "- %s -> %s: %s\n", e.Source, e.Target, e.Label)
	}
	return b.String()
}
