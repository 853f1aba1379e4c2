package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/planrep/pkg/expansion"
	"github.com/matzehuels/planrep/pkg/graph"
	"github.com/matzehuels/planrep/pkg/io"
)

// Options configures expansion diagrams.
type Options struct {
	// Detailed adds copy handles to node labels and owner names to edges.
	// When false, nodes show only the id of their original.
	Detailed bool

	// Colored draws each edge path in its own color so paths can be
	// followed through their crossings.
	Colored bool
}

// palette cycles through Graphviz color names for [Options.Colored].
var palette = []string{
	"steelblue", "firebrick", "forestgreen", "darkorange", "purple",
	"goldenrod", "teal", "deeppink", "sienna", "slategray",
}

// ToDOT converts the copy graph of x to Graphviz DOT format. Names of
// original nodes and edges are taken from d; with a nil d the original
// handles are printed instead.
//
// Crossing dummies are drawn as points. Copies of split nodes get dashed
// outlines with grey fill, and the edges of node splits are dashed.
func ToDOT(x *expansion.Expansion, d *io.Document, opts Options) string {
	g := x.Graph()
	names := newNamer(x, d)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range g.Nodes() {
		attrs := fmtNodeAttrs(x, v, fmtLabel(x, v, names, opts.Detailed))
		fmt.Fprintf(&buf, "  n%d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := fmtEdgeAttrs(x, e, names, opts)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", g.Source(e), g.Target(e))
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", g.Source(e), g.Target(e), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// namer resolves display names of originals and numbers node splits.
type namer struct {
	doc    *io.Document
	splits map[*expansion.NodeSplit]int
	colors map[graph.Edge]string
}

func newNamer(x *expansion.Expansion, d *io.Document) *namer {
	n := &namer{
		doc:    d,
		splits: make(map[*expansion.NodeSplit]int),
		colors: make(map[graph.Edge]string),
	}
	for i, ns := range x.NodeSplits() {
		n.splits[ns] = i + 1
	}
	for i, e := range x.Original().Edges() {
		n.colors[e] = palette[i%len(palette)]
	}
	return n
}

func (n *namer) node(v graph.Node) string {
	if n.doc != nil {
		if id, ok := n.doc.NodeIDs[v]; ok {
			return id
		}
	}
	return "v" + strconv.Itoa(int(v))
}

func (n *namer) edge(e graph.Edge) string {
	if n.doc != nil {
		if id, ok := n.doc.EdgeIDs[e]; ok {
			return id
		}
	}
	return "e" + strconv.Itoa(int(e))
}

func fmtLabel(x *expansion.Expansion, v graph.Node, names *namer, detailed bool) string {
	if x.IsDummy(v) {
		if detailed {
			return fmt.Sprintf("x%d", v)
		}
		return ""
	}
	label := names.node(x.OrigNode(v))
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("copy: %d", v)}
	if copies := x.Copies(x.OrigNode(v)); len(copies) > 1 {
		parts = append(parts, fmt.Sprintf("split: %d of %d", indexOf(copies, v)+1, len(copies)))
	}
	return label + "\n" + strings.Join(parts, "\n")
}

func fmtNodeAttrs(x *expansion.Expansion, v graph.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch io.NodeKind(x, v) {
	case io.KindCrossing:
		if label == "" {
			attrs = append(attrs, "shape=point", "width=0.15", "fillcolor=black")
		} else {
			attrs = append(attrs, "shape=circle", "fontsize=14", "fillcolor=lightyellow")
		}
	case io.KindCopy:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

func fmtEdgeAttrs(x *expansion.Expansion, e graph.Edge, names *namer, opts Options) []string {
	var attrs []string
	if ns := x.SplitOf(e); ns != nil {
		attrs = append(attrs, "style=dashed", "color=grey", "arrowhead=none")
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("label=%q", fmt.Sprintf("split %d", names.splits[ns])))
		}
		return attrs
	}
	o := x.OrigEdge(e)
	if o == 0 {
		return attrs
	}
	if opts.Colored {
		attrs = append(attrs, "color="+names.colors[o])
	}
	if opts.Detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q", names.edge(o)), "fontsize=14")
	}
	return attrs
}

func indexOf(nodes []graph.Node, v graph.Node) int {
	for i, w := range nodes {
		if w == v {
			return i
		}
	}
	return -1
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
