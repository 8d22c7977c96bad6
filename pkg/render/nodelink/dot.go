package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/xptv/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the node ID and metadata in node labels.
	// When false, only the display label is shown.
	Detailed bool
	// EdgeLabels prints the reference name on each edge.
	EdgeLabels bool
}

type kindStyle struct {
	shape string
	fill  string
}

var kindStyles = map[dag.NodeKind]kindStyle{
	dag.NodeKindSource:         {shape: "folder", fill: "#dbe9f6"},
	dag.NodeKindStream:         {shape: "ellipse", fill: "#eeeeee"},
	dag.NodeKindTrack:          {shape: "box", fill: "#fdebd0"},
	dag.NodeKindTrackObject:    {shape: "box", fill: "white"},
	dag.NodeKindTimelineObject: {shape: "component", fill: "#d5f5e3"},
}

// ToDOT converts a reference graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes of the same row are ranked together. Edges are drawn from the
// referenced element to its referrer with the arrow at the referenced end,
// so definitions sit above the elements that use them.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [dir=back, fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(*n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(*n, label), ", "))
	}

	buf.WriteString("\n")
	for _, row := range g.RowIDs() {
		nodes := g.NodesInRow(row)
		if len(nodes) < 2 {
			continue
		}
		ids := make([]string, len(nodes))
		for i, n := range nodes {
			ids[i] = strconv.Quote(n.ID)
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(ids, "; "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if opts.EdgeLabels && e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.To, e.From, e.Label)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.To, e.From)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.DisplayLabel()
	}

	parts := []string{fmt.Sprintf("%s %s", n.Kind, n.ID)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return n.DisplayLabel() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n dag.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s, ok := kindStyles[n.Kind]; ok {
		attrs = append(attrs, "shape="+s.shape, fmt.Sprintf("fillcolor=%q", s.fill))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
