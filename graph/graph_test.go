package graph

import "testing"

func buildChain(t *testing.T) *ArchGraph {
	t.Helper()
	g := New("test-graph")
	for _, n := range []Node{
		{ID: "a", Label: "A", Category: CategoryGateway},
		{ID: "b", Label: "B", Category: CategoryCompute},
		{ID: "c", Label: "C", Category: CategoryDatabase},
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	for _, e := range []Edge{
		{ID: "ab", Source: "a", Target: "b", Label: "requests"},
		{ID: "bc", Source: "b", Target: "c", Label: "queries"},
	} {
		if err := g.AddEdge(e); err != nil {
			t.Fatalf("AddEdge(%s): %v", e.ID, err)
		}
	}
	return g
}

func TestRemoveNode_CascadesIncidentEdges(t *testing.T) {
	g := buildChain(t)

	if !g.RemoveNode("b") {
		t.Fatal("expected RemoveNode to report removal")
	}

	if len(g.Nodes) != 2 {
		t.Errorf("expected nodes {a,c}, got %d nodes", len(g.Nodes))
	}
	if len(g.Edges) != 0 {
		t.Errorf("expected both incident edges gone, got %v", g.Edges)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("graph invalid after removal: %v", err)
	}
}

func TestRemoveNode_Missing(t *testing.T) {
	g := buildChain(t)
	if g.RemoveNode("nope") {
		t.Error("expected removal of missing node to report false")
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Error("graph changed by removing a missing node")
	}
}

func TestAddNode_RejectsDuplicateID(t *testing.T) {
	g := buildChain(t)
	err := g.AddNode(Node{ID: "a", Label: "Again"})
	if err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestAddEdge_RejectsMissingEndpoint(t *testing.T) {
	g := buildChain(t)
	err := g.AddEdge(Edge{Source: "a", Target: "ghost", Label: "x"})
	if err == nil {
		t.Fatal("expected edge with missing target to be rejected")
	}
}

func TestClone_IsDeep(t *testing.T) {
	g := buildChain(t)
	g.Nodes[0].Config = &NodeConfig{
		Tier:     "Standard",
		Features: []string{"autoscale"},
		Extra:    map[string]any{"zone": "1"},
	}

	clone := g.Clone()
	clone.Nodes[0].Config.Tier = "Premium"
	clone.Nodes[0].Config.Features[0] = "changed"
	clone.Nodes[0].Config.Extra["zone"] = "2"
	clone.RemoveNode("b")

	if g.Nodes[0].Config.Tier != "Standard" {
		t.Error("clone shares config struct with original")
	}
	if g.Nodes[0].Config.Features[0] != "autoscale" {
		t.Error("clone shares feature slice with original")
	}
	if g.Nodes[0].Config.Extra["zone"] != "1" {
		t.Error("clone shares extra map with original")
	}
	if len(g.Nodes) != 3 || len(g.Edges) != 2 {
		t.Error("mutating clone changed the original graph")
	}
}

func TestValidate_DetectsDanglingEdge(t *testing.T) {
	g := buildChain(t)
	g.Edges = append(g.Edges, Edge{ID: "bad", Source: "c", Target: "ghost", Label: "x"})

	if err := g.Validate(); err == nil {
		t.Fatal("expected validation failure for dangling edge")
	}
}

func TestProducts_DistinctInOrder(t *testing.T) {
	g := New("g")
	_ = g.AddNode(Node{ID: "1", Label: "Web", Product: "App Service"})
	_ = g.AddNode(Node{ID: "2", Label: "API", Product: "App Service"})
	_ = g.AddNode(Node{ID: "3", Label: "DB", Product: "Cosmos DB"})

	got := g.Products()
	want := []string{"App Service", "Cosmos DB"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Products() = %v, want %v", got, want)
	}
}

func TestNodeConfig_IsZero(t *testing.T) {
	var nilCfg *NodeConfig
	if !nilCfg.IsZero() {
		t.Error("nil config should be zero")
	}
	if !(&NodeConfig{}).IsZero() {
		t.Error("empty config should be zero")
	}
	if (&NodeConfig{Tier: "Basic"}).IsZero() {
		t.Error("config with tier should not be zero")
	}
}
