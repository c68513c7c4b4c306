package graph

import (
	"encoding/json"
	"errors"
)

// Category classifies an architecture component. The set is closed:
// synthesis and edit responses carrying anything else are coerced to
// CategoryOther during sanitization.
type Category string

const (
	CategoryCompute   Category = "compute"
	CategoryStorage   Category = "storage"
	CategoryDatabase  Category = "database"
	CategoryMessaging Category = "messaging"
	CategoryAnalytics Category = "analytics"
	CategoryFrontend  Category = "frontend"
	CategoryGateway   Category = "gateway"
	CategoryOther     Category = "other"
)

// Categories lists every valid category in enumeration order.
var Categories = []Category{
	CategoryCompute,
	CategoryStorage,
	CategoryDatabase,
	CategoryMessaging,
	CategoryAnalytics,
	CategoryFrontend,
	CategoryGateway,
	CategoryOther,
}

// IsValid checks if the category is one of the defined constants.
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// NodeConfig is the descriptive attribute bag attached to a node.
// Nothing in the pipeline computes over these fields; they are displayed
// to the user and forwarded verbatim into IaC export prompts.
//
// Well-known fields are typed; anything else the model returns lands in
// Extra so no information is silently discarded.
type NodeConfig struct {
	// Tier is the service tier (e.g., "Standard", "Premium").
	Tier string `json:"tier,omitempty"`

	// SKU is the vendor SKU or instance size (e.g., "S1", "m5.large").
	SKU string `json:"sku,omitempty"`

	// Region is the deployment region (e.g., "eastus", "eu-west-1").
	Region string `json:"region,omitempty"`

	// Rationale explains why this component was chosen.
	Rationale string `json:"rationale,omitempty"`

	// TechnicalDetails holds free-form technical notes.
	TechnicalDetails string `json:"technicalDetails,omitempty"`

	// Features lists notable capabilities of the component.
	Features []string `json:"features,omitempty"`

	// UseCases lists scenarios the component addresses.
	UseCases []string `json:"useCases,omitempty"`

	// BestPractices lists operational recommendations.
	BestPractices []string `json:"bestPractices,omitempty"`

	// Extra captures any additional fields the model produced.
	Extra map[string]any `json:"extra,omitempty"`
}

// knownConfigKeys are the well-known fields; anything else the model
// returns is collected into Extra.
var knownConfigKeys = map[string]bool{
	"tier": true, "sku": true, "region": true, "rationale": true,
	"technicalDetails": true, "features": true, "useCases": true,
	"bestPractices": true, "extra": true,
}

// UnmarshalJSON decodes the well-known fields and collects any
// additional keys into Extra, so nothing the model produced is
// silently discarded.
func (c *NodeConfig) UnmarshalJSON(data []byte) error {
	type plain NodeConfig
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, val := range raw {
		if knownConfigKeys[key] {
			continue
		}
		var v any
		if err := json.Unmarshal(val, &v); err != nil {
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[key] = v
	}

	*c = NodeConfig(p)
	return nil
}

// IsZero reports whether the config carries no information at all.
func (c *NodeConfig) IsZero() bool {
	if c == nil {
		return true
	}
	return c.Tier == "" && c.SKU == "" && c.Region == "" &&
		c.Rationale == "" && c.TechnicalDetails == "" &&
		len(c.Features) == 0 && len(c.UseCases) == 0 &&
		len(c.BestPractices) == 0 && len(c.Extra) == 0
}

// Node represents one architecture component in the graph.
type Node struct {
	// ID is unique within the owning graph and immutable after creation.
	// Generated if the synthesis or edit step omitted it.
	ID string `json:"id"`

	// Label is the human-readable display name (e.g., "Web Frontend").
	Label string `json:"label"`

	// Product is the canonical service name, vendor-qualified where
	// applicable (e.g., "Azure App Service", "Amazon S3").
	Product string `json:"product"`

	// Category classifies the component.
	Category Category `json:"category"`

	// Config is the optional descriptive attribute bag.
	Config *NodeConfig `json:"config,omitempty"`
}

// NewNode creates a node with the given label and product.
func NewNode(label, product string, category Category) *Node {
	return &Node{
		Label:    label,
		Product:  product,
		Category: category,
	}
}

// WithID sets the node ID and returns the node for method chaining.
func (n *Node) WithID(id string) *Node {
	n.ID = id
	return n
}

// WithConfig sets the config bag and returns the node for method chaining.
func (n *Node) WithConfig(cfg *NodeConfig) *Node {
	n.Config = cfg
	return n
}

// Validate checks that the node has its required fields set.
func (n *Node) Validate() error {
	if n.ID == "" {
		return errors.New("node id is required")
	}
	if n.Label == "" {
		return errors.New("node label is required")
	}
	return nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	out := *n
	if n.Config != nil {
		cfg := *n.Config
		cfg.Features = append([]string(nil), n.Config.Features...)
		cfg.UseCases = append([]string(nil), n.Config.UseCases...)
		cfg.BestPractices = append([]string(nil), n.Config.BestPractices...)
		if n.Config.Extra != nil {
			cfg.Extra = make(map[string]any, len(n.Config.Extra))
			for k, v := range n.Config.Extra {
				cfg.Extra[k] = v
			}
		}
		out.Config = &cfg
	}
	return &out
}
