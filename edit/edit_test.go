package edit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archforge-ai/sdk/graph"
	"github.com/archforge-ai/sdk/llm"
	"github.com/archforge-ai/sdk/session"
)

// apiDBGraph builds the current graph for most scenarios:
// nodes {api, db}, edge api -> db.
func apiDBGraph(t *testing.T) *graph.ArchGraph {
	t.Helper()
	g := graph.New("g-1")
	require.NoError(t, g.AddNode(graph.Node{ID: "api", Label: "API", Product: "App Service", Category: graph.CategoryCompute}))
	require.NoError(t, g.AddNode(graph.Node{ID: "db", Label: "Database", Product: "Azure SQL", Category: graph.CategoryDatabase}))
	require.NoError(t, g.AddEdge(graph.Edge{ID: "api-db", Source: "api", Target: "db", Label: "SQL Queries"}))
	return g
}

func newEditor(content string) *Editor {
	return New(llm.NewMockClient(content), session.NewMemoryStore(), nil)
}

func TestEdit_AddAndConnect(t *testing.T) {
	resp := `{
		"description": "Added a cache between the API and the database.",
		"modifications": [
			{"action": "add", "nodeId": "cache-1", "label": "Cache", "product": "Azure Cache for Redis", "category": "database"}
		],
		"newEdges": [
			{"source": "api", "target": "cache-1", "label": "Cached Reads"},
			{"source": "cache-1", "target": "db", "label": "Cache Misses"}
		]
	}`
	current := apiDBGraph(t)

	got, report, err := newEditor(resp).Edit(context.Background(), current, "add a cache between api and db")
	require.NoError(t, err)

	assert.Len(t, got.Nodes, 3)
	require.Len(t, got.Edges, 3)
	assert.True(t, hasEdge(got, "api", "cache-1"))
	assert.True(t, hasEdge(got, "cache-1", "db"))
	// The original edge is untouched unless explicitly removed.
	assert.True(t, hasEdge(got, "api", "db"))
	assert.Empty(t, report.Warnings)
	assert.Equal(t, "Added a cache between the API and the database.", report.Description)
	assert.NoError(t, got.Validate())
}

func TestEdit_AddSynthesizesDefaultConfig(t *testing.T) {
	resp := `{
		"description": "add",
		"modifications": [
			{"action": "add", "nodeId": "q-1", "label": "Queue", "product": "Service Bus", "category": "messaging"}
		],
		"newEdges": []
	}`

	got, _, err := newEditor(resp).Edit(context.Background(), apiDBGraph(t), "add a queue")
	require.NoError(t, err)

	n := got.FindNode("q-1")
	require.NotNil(t, n)
	require.NotNil(t, n.Config, "added node must never carry an undefined config bag")
	assert.False(t, n.Config.IsZero())
}

func TestEdit_ModifyOverwritesOnlyPresentFields(t *testing.T) {
	resp := `{
		"description": "rename",
		"modifications": [
			{"action": "modify", "nodeId": "db", "label": "Primary Database"}
		],
		"newEdges": []
	}`
	current := apiDBGraph(t)

	got, _, err := newEditor(resp).Edit(context.Background(), current, "rename the database")
	require.NoError(t, err)

	n := got.FindNode("db")
	require.NotNil(t, n)
	assert.Equal(t, "Primary Database", n.Label)
	assert.Equal(t, "Azure SQL", n.Product, "absent fields retain prior values")
	assert.Equal(t, graph.CategoryDatabase, n.Category)
}

func TestEdit_RemoveCascades(t *testing.T) {
	// Graph {A,B,C} with A->B, B->C; removing B drops both edges.
	g := graph.New("g-2")
	for _, nid := range []string{"a", "b", "c"} {
		require.NoError(t, g.AddNode(graph.Node{ID: nid, Label: nid, Category: graph.CategoryCompute}))
	}
	require.NoError(t, g.AddEdge(graph.Edge{ID: "ab", Source: "a", Target: "b", Label: "x"}))
	require.NoError(t, g.AddEdge(graph.Edge{ID: "bc", Source: "b", Target: "c", Label: "y"}))

	resp := `{
		"description": "remove b",
		"modifications": [{"action": "remove", "nodeId": "b"}],
		"newEdges": []
	}`

	got, _, err := newEditor(resp).Edit(context.Background(), g, "remove b")
	require.NoError(t, err)

	assert.Len(t, got.Nodes, 2)
	assert.Nil(t, got.FindNode("b"))
	assert.Empty(t, got.Edges)
}

func TestEdit_AllOrNothingOnParseFailure(t *testing.T) {
	current := apiDBGraph(t)
	editor := newEditor("Sorry, something went wrong.")

	_, _, err := editor.Edit(context.Background(), current, "add a cache")

	var editErr *EditError
	require.ErrorAs(t, err, &editErr)
	// The caller's reference is unmodified.
	assert.Len(t, current.Nodes, 2)
	assert.Len(t, current.Edges, 1)
}

func TestEdit_DropsEdgeWithMissingEndpoint(t *testing.T) {
	resp := `{
		"description": "bad edge",
		"modifications": [],
		"newEdges": [{"source": "api", "target": "ghost", "label": "calls"}]
	}`
	current := apiDBGraph(t)

	got, report, err := newEditor(resp).Edit(context.Background(), current, "connect to ghost")
	require.NoError(t, err, "a droppable edge must not fail the whole edit")

	assert.Len(t, got.Edges, 1)
	assert.Contains(t, kinds(report.Warnings), graph.WarnDroppedEdge)
}

func TestEdit_EdgesValidatedAgainstPostModificationNodes(t *testing.T) {
	// The new edge targets a node added in the same diff: valid.
	resp := `{
		"description": "add and wire",
		"modifications": [
			{"action": "add", "nodeId": "cache-1", "label": "Cache", "product": "Redis", "category": "database"}
		],
		"newEdges": [{"source": "api", "target": "cache-1", "label": "Reads"}]
	}`

	got, report, err := newEditor(resp).Edit(context.Background(), apiDBGraph(t), "add a cache")
	require.NoError(t, err)
	assert.True(t, hasEdge(got, "api", "cache-1"))
	assert.Empty(t, report.Warnings)
}

func TestEdit_ActorNodeFilteredOnEditPath(t *testing.T) {
	resp := `{
		"description": "sneaky",
		"modifications": [
			{"action": "add", "nodeId": "admin-1", "label": "Admin User", "category": "other"}
		],
		"newEdges": [{"source": "admin-1", "target": "api", "label": "Manages"}]
	}`
	current := apiDBGraph(t)

	got, report, err := newEditor(resp).Edit(context.Background(), current, "add an admin")
	require.NoError(t, err)

	assert.Nil(t, got.FindNode("admin-1"), "actor filter must run on the edit path too")
	assert.Len(t, got.Edges, 1, "edge touching the filtered node must cascade")
	assert.Contains(t, kinds(report.Warnings), graph.WarnDroppedNode)
}

func TestEdit_AddCollisionRegeneratesID(t *testing.T) {
	resp := `{
		"description": "collision",
		"modifications": [
			{"action": "add", "nodeId": "api", "label": "Second API", "product": "Functions", "category": "compute"}
		],
		"newEdges": []
	}`

	got, _, err := newEditor(resp).Edit(context.Background(), apiDBGraph(t), "add another api")
	require.NoError(t, err)

	assert.Len(t, got.Nodes, 3)
	// The original node keeps its identity.
	orig := got.FindNode("api")
	require.NotNil(t, orig)
	assert.Equal(t, "API", orig.Label)
}

func TestEdit_PersistsResult(t *testing.T) {
	resp := `{
		"description": "remove db",
		"modifications": [{"action": "remove", "nodeId": "db"}],
		"newEdges": []
	}`
	store := session.NewMemoryStore()
	editor := New(llm.NewMockClient(resp), store, nil)
	current := apiDBGraph(t)
	require.NoError(t, store.Set(context.Background(), current.ID, current))

	got, _, err := editor.Edit(context.Background(), current, "remove the database")
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Nodes, 1)
}

func TestEdit_MissingCredential(t *testing.T) {
	editor := New(&llm.MockClient{Unavailable: true}, nil, nil)

	_, _, err := editor.Edit(context.Background(), apiDBGraph(t), "add a cache")

	var editErr *EditError
	require.ErrorAs(t, err, &editErr)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestEdit_NilGraph(t *testing.T) {
	editor := newEditor(`{}`)

	_, _, err := editor.Edit(context.Background(), nil, "add a cache")

	var editErr *EditError
	require.ErrorAs(t, err, &editErr)
}

func TestEditInstruction_EnumeratesNodesWithoutConfig(t *testing.T) {
	g := apiDBGraph(t)
	g.Nodes[0].Config = &graph.NodeConfig{Rationale: "SECRET-RATIONALE"}

	prompt := editInstruction(g)

	assert.Contains(t, prompt, "id: api")
	assert.Contains(t, prompt, "App Service")
	assert.NotContains(t, prompt, "SECRET-RATIONALE", "config bags stay out of the edit prompt")
}

func hasEdge(g *graph.ArchGraph, source, target string) bool {
	for _, e := range g.Edges {
		if e.Source == source && e.Target == target {
			return true
		}
	}
	return false
}

func kinds(warnings []graph.Warning) []graph.WarningKind {
	out := make([]graph.WarningKind, len(warnings))
	for i, w := range warnings {
		out[i] = w.Kind
	}
	return out
}
