// Package nodelink renders DGML documents as node-link diagrams.
//
// # Usage
//
// Convert a document to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)  // 2x scale
//
// # Styling
//
// Node fill and font colors come from the Background and Foreground setters
// of the node's conditional style. Icon setters naming a shape Graphviz
// knows (Cylinder, Hexagon, Folder, ...) switch the node shape.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
