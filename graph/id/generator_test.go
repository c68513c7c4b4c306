package id

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Web Frontend", "web-frontend"},
		{"API Gateway (v2)", "api-gateway-v2"},
		{"  spaces  ", "spaces"},
		{"!!!", "node"},
		{"", "node"},
		{"A Very Long Component Label That Keeps Going", "a-very-long-component-la"},
	}

	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNode_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		got := Node("Cache")
		if seen[got] {
			t.Fatalf("duplicate node id generated: %q", got)
		}
		seen[got] = true
		if !strings.HasPrefix(got, "cache-") {
			t.Fatalf("node id %q missing slug prefix", got)
		}
	}
}

func TestEdge_Format(t *testing.T) {
	got := Edge("api", "db")
	if !strings.HasPrefix(got, "e-api-db-") {
		t.Errorf("Edge() = %q, want e-api-db- prefix", got)
	}
}

func TestGraph_NotEmpty(t *testing.T) {
	a, b := Graph(), Graph()
	if a == "" || a == b {
		t.Errorf("Graph() should return distinct non-empty ids, got %q and %q", a, b)
	}
}
