package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/c4dgml/pkg/dgml"
	"github.com/matzehuels/c4dgml/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds each node's category chain below its label.
	Detailed bool
}

// ToDOT converts a DGML document to Graphviz DOT.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Every category becomes a cluster holding the nodes whose primary category
// it is. A cluster is nested inside the cluster of its own node's primary
// category, so a component sits inside its container inside its system.
func ToDOT(g dgml.DirectedGraph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	t := newClusterTree(g)
	for _, n := range t.members[""] {
		writeNode(&buf, g, n, opts, "  ")
	}
	for _, c := range t.children[""] {
		t.write(&buf, g, c, opts, "  ")
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", l.Source, l.Target, fmtEdgeAttrs(l))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// clusterTree assigns nodes to category clusters. The root key is "".
type clusterTree struct {
	members  map[string][]dgml.Node
	children map[string][]dgml.Category
}

func newClusterTree(g dgml.DirectedGraph) *clusterTree {
	t := &clusterTree{
		members:  make(map[string][]dgml.Node),
		children: make(map[string][]dgml.Category),
	}
	isCategory := make(map[string]bool, len(g.Categories))
	for _, c := range g.Categories {
		isCategory[c.ID] = true
	}

	for _, n := range g.Nodes {
		key := ""
		if isCategory[n.Category] && n.Category != n.ID {
			key = n.Category
		}
		t.members[key] = append(t.members[key], n)
	}

	for _, c := range g.Categories {
		parent := ""
		if n, ok := g.Node(c.ID); ok && isCategory[n.Category] && n.Category != c.ID {
			parent = n.Category
		}
		t.children[parent] = append(t.children[parent], c)
	}
	return t
}

func (t *clusterTree) write(buf *bytes.Buffer, g dgml.DirectedGraph, c dgml.Category, opts Options, indent string) {
	t.writeVisited(buf, g, c, opts, indent, map[string]bool{})
}

func (t *clusterTree) writeVisited(buf *bytes.Buffer, g dgml.DirectedGraph, c dgml.Category, opts Options, indent string, visited map[string]bool) {
	if visited[c.ID] {
		return
	}
	visited[c.ID] = true

	label := c.Label
	if label == "" {
		label = c.ID
	}
	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+c.ID)
	fmt.Fprintf(buf, "%s  label=%q;\n", indent, label)
	fmt.Fprintf(buf, "%s  style=\"rounded,dashed\";\n", indent)
	fmt.Fprintf(buf, "%s  color=grey40;\n", indent)
	for _, n := range t.members[c.ID] {
		writeNode(buf, g, n, opts, indent+"  ")
	}
	for _, child := range t.children[c.ID] {
		t.writeVisited(buf, g, child, opts, indent+"  ", visited)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func writeNode(buf *bytes.Buffer, g dgml.DirectedGraph, n dgml.Node, opts Options, indent string) {
	attrs := fmtAttrs(g, n, fmtLabel(n, opts.Detailed))
	fmt.Fprintf(buf, "%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", "))
}

func fmtLabel(n dgml.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}
	if ids := n.CategoryIDs(); len(ids) > 0 {
		label += "\n[" + strings.Join(ids, ", ") + "]"
	}
	return label
}

func fmtAttrs(g dgml.DirectedGraph, n dgml.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", n.Description))
	}
	if n.Reference != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", n.Reference))
	}

	s, ok := g.StyleFor(n)
	if !ok {
		return attrs
	}
	if v, ok := s.Setter(dgml.PropertyBackground); ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", dotColor(v)))
	}
	if v, ok := s.Setter(dgml.PropertyForeground); ok {
		attrs = append(attrs, fmt.Sprintf("fontcolor=%q", dotColor(v)))
	}
	if v, ok := s.Setter(dgml.PropertyIcon); ok {
		if shape := dotShape(v); shape != "" {
			attrs = append(attrs, "shape="+shape)
		}
	}
	return attrs
}

func fmtEdgeAttrs(l dgml.Link) string {
	var attrs []string
	if l.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", l.Label))
	}
	if l.Description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", l.Description))
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// dotColor lowercases named colors; Graphviz color names are lowercase
// while DGML uses "White".
func dotColor(v string) string {
	if strings.HasPrefix(v, "#") {
		return v
	}
	return strings.ToLower(v)
}

var iconShapes = map[string]string{
	"Cylinder":  "cylinder",
	"Pipe":      "cylinder",
	"Circle":    "circle",
	"Ellipse":   "ellipse",
	"Hexagon":   "hexagon",
	"Folder":    "folder",
	"Component": "component",
}

// dotShape maps an icon URI such as ".../Cylinder.png" to a Graphviz shape.
func dotShape(icon string) string {
	name := strings.TrimSuffix(path.Base(icon), path.Ext(icon))
	return iconShapes[name]
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
