// Package render draws planarized expansions as node-link diagrams.
//
// # Overview
//
// The copy graph of an [expansion.Expansion] is converted to Graphviz DOT
// source and rendered in-process:
//
//	dot := render.ToDOT(x, doc, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//	png, err := render.RenderPNG(ctx, dot)
//
// # Styling
//
// Nodes are drawn by kind:
//
//   - Copies of unsplit original nodes are rounded white boxes
//   - Copies of split original nodes are dashed grey boxes
//   - Crossing dummies are small points, or labelled circles when Detailed
//
// The edges of node splits are dashed and undirected. With Colored set,
// every original edge path gets its own color.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering; no Graphviz installation is required.
//
// [expansion.Expansion]: github.com/matzehuels/planrep/pkg/expansion
package render
