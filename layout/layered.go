package layout

import "sort"

// Spacing defaults for the layered engine.
const (
	defaultHSpacing = 80.0
	defaultVSpacing = 120.0
)

// LayeredEngine places nodes in horizontal layers by longest path from
// a source node: roots in layer 0, each node one layer below its
// deepest predecessor. Cycles are broken by capping the walk at the
// node count. Within a layer, nodes keep a stable order (by input
// order) and are centered around x = 0.
type LayeredEngine struct {
	// HSpacing is the horizontal gap between neighbors in a layer.
	HSpacing float64

	// VSpacing is the vertical gap between layers.
	VSpacing float64
}

// NewLayeredEngine creates an engine with default spacing.
func NewLayeredEngine() *LayeredEngine {
	return &LayeredEngine{
		HSpacing: defaultHSpacing,
		VSpacing: defaultVSpacing,
	}
}

// Layout implements Engine.
func (e *LayeredEngine) Layout(nodes []NodeSize, links []Link) []Placement {
	if len(nodes) == 0 {
		return nil
	}
	known := make(map[string]int, len(nodes))
	for i, n := range nodes {
		known[n.ID] = i
	}

	preds := make(map[string][]string, len(nodes))
	for _, l := range links {
		if _, ok := known[l.Source]; !ok {
			continue
		}
		if _, ok := known[l.Target]; !ok {
			continue
		}
		if l.Source == l.Target {
			continue
		}
		preds[l.Target] = append(preds[l.Target], l.Source)
	}

	layers := make(map[string]int, len(nodes))
	var depth func(id string, hops int) int
	depth = func(id string, hops int) int {
		if d, ok := layers[id]; ok {
			return d
		}
		// Cap the walk so a cycle in the input cannot recurse forever.
		if hops > len(nodes) {
			return 0
		}
		d := 0
		for _, p := range preds[id] {
			if pd := depth(p, hops+1) + 1; pd > d {
				d = pd
			}
		}
		layers[id] = d
		return d
	}
	for _, n := range nodes {
		depth(n.ID, 0)
	}

	// Group by layer, preserving input order within each.
	byLayer := make(map[int][]NodeSize)
	for _, n := range nodes {
		l := layers[n.ID]
		byLayer[l] = append(byLayer[l], n)
	}
	layerKeys := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layerKeys = append(layerKeys, l)
	}
	sort.Ints(layerKeys)

	placements := make([]Placement, 0, len(nodes))
	y := 0.0
	for _, l := range layerKeys {
		row := byLayer[l]

		rowWidth := 0.0
		for _, n := range row {
			rowWidth += n.Width
		}
		rowWidth += e.HSpacing * float64(len(row)-1)

		x := -rowWidth / 2
		maxHeight := 0.0
		for _, n := range row {
			placements = append(placements, Placement{ID: n.ID, X: x, Y: y})
			x += n.Width + e.HSpacing
			if n.Height > maxHeight {
				maxHeight = n.Height
			}
		}
		y += maxHeight + e.VSpacing
	}
	return placements
}
