package graph

import (
	"encoding/json"
	"testing"
)

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("user").IsValid() {
		t.Error("unknown category should be invalid")
	}
}

func TestNode_Builder(t *testing.T) {
	n := NewNode("Web Frontend", "Azure Static Web Apps", CategoryFrontend).
		WithID("web-1").
		WithConfig(&NodeConfig{Tier: "Standard"})

	if n.ID != "web-1" {
		t.Errorf("ID = %q", n.ID)
	}
	if n.Config == nil || n.Config.Tier != "Standard" {
		t.Errorf("Config = %+v", n.Config)
	}
	if err := n.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNode_ValidateRequiresIDAndLabel(t *testing.T) {
	if err := (&Node{Label: "x"}).Validate(); err == nil {
		t.Error("expected error for missing id")
	}
	if err := (&Node{ID: "x"}).Validate(); err == nil {
		t.Error("expected error for missing label")
	}
}

func TestNodeConfig_UnmarshalCapturesUnknownKeys(t *testing.T) {
	raw := `{
		"tier": "Premium",
		"region": "eastus",
		"features": ["autoscale"],
		"throughput": "400 RU/s",
		"replicas": 3
	}`

	var cfg NodeConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if cfg.Tier != "Premium" || cfg.Region != "eastus" {
		t.Errorf("known fields not decoded: %+v", cfg)
	}
	if len(cfg.Features) != 1 || cfg.Features[0] != "autoscale" {
		t.Errorf("features = %v", cfg.Features)
	}
	if cfg.Extra["throughput"] != "400 RU/s" {
		t.Errorf("extra throughput = %v", cfg.Extra["throughput"])
	}
	if v, ok := cfg.Extra["replicas"].(float64); !ok || v != 3 {
		t.Errorf("extra replicas = %v", cfg.Extra["replicas"])
	}
}

func TestNodeConfig_UnmarshalWellKnownOnly(t *testing.T) {
	var cfg NodeConfig
	if err := json.Unmarshal([]byte(`{"sku":"S1"}`), &cfg); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if cfg.SKU != "S1" {
		t.Errorf("SKU = %q", cfg.SKU)
	}
	if cfg.Extra != nil {
		t.Errorf("Extra should stay nil, got %v", cfg.Extra)
	}
}
