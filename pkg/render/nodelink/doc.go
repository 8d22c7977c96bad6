// Package nodelink renders project reference graphs as node-link diagrams.
//
// # Usage
//
// Build the reference graph of a parsed document, convert it to DOT, then
// render to SVG:
//
//	g, err := etree.ReferenceGraph(doc)
//	dot := nodelink.ToDOT(g, nodelink.Options{EdgeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Layout
//
// Each element kind gets its own shape and fill: sources are folders,
// streams ellipses, tracks and track objects boxes, timeline objects
// components. Nodes in the same row share a rank, and arrows point at the
// element being referenced.
//
// The DOT text from [ToDOT] can also be saved and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
