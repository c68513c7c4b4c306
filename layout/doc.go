// Package layout computes 2-D positions for rendering an architecture
// graph.
//
// The Engine interface is the pipeline's only contract with layout:
// node sizes and links in, placements out. LayeredEngine is a
// longest-path layered implementation suitable for the mostly acyclic
// flow graphs synthesis produces; callers with a richer layout need
// plug their own Engine in.
package layout
