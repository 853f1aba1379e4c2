package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/planrep/pkg/expansion"
	"github.com/matzehuels/planrep/pkg/graph"
	"github.com/matzehuels/planrep/pkg/io"
)

const squareJSON = `{
  "nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
  "edges": [
    {"from": "a", "to": "b"}, {"from": "b", "to": "c"},
    {"from": "c", "to": "d"}, {"from": "d", "to": "a"},
    {"from": "a", "to": "c"}, {"from": "b", "to": "d"}
  ]
}`

// crossed returns the square with both diagonals, the second one rerouted
// across the first.
func crossed(t *testing.T) (*expansion.Expansion, *io.Document) {
	t.Helper()
	d, err := io.ReadJSON(strings.NewReader(squareJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	x := expansion.New(d.Graph, expansion.Options{})
	x.InitComponent(0)

	ac, _ := d.Edge("a->c")
	bd, _ := d.Edge("b->d")
	tgt := expansion.EdgeTarget(bd)
	src, dst := x.RemoveEdgePath(tgt, nil)
	cross := x.Graph().AdjSource(x.CopyPath(ac)[0])
	x.InsertEdgePath(tgt, expansion.Route{
		Start:     src,
		End:       dst,
		Crossings: []expansion.Crossing{{Adj: cross}},
	}, nil)
	if err := x.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	return x, d
}

func TestToDOT(t *testing.T) {
	x, d := crossed(t)
	dot := ToDOT(x, d, Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if !strings.Contains(dot, `label="`+id+`"`) {
			t.Errorf("ToDOT() output missing node %s", id)
		}
	}
	if got := strings.Count(dot, "shape=point"); got != 1 {
		t.Errorf("ToDOT() crossing points = %d, want 1", got)
	}
	if got := strings.Count(dot, " -> "); got != x.Graph().EdgeCount() {
		t.Errorf("ToDOT() edges = %d, want %d", got, x.Graph().EdgeCount())
	}
}

func TestToDOTDetailed(t *testing.T) {
	x, d := crossed(t)
	dot := ToDOT(x, d, Options{Detailed: true, Colored: true})

	if strings.Contains(dot, "shape=point") {
		t.Error("ToDOT() detailed output should label crossings")
	}
	if !strings.Contains(dot, "shape=circle") {
		t.Error("ToDOT() detailed output missing crossing circle")
	}
	if got := strings.Count(dot, `label="b->d"`); got != 2 {
		t.Errorf("ToDOT() labels of rerouted edge = %d, want 2", got)
	}
	if !strings.Contains(dot, "copy: ") {
		t.Error("ToDOT() detailed output missing copy handle")
	}
	if !strings.Contains(dot, "color="+palette[0]) {
		t.Error("ToDOT() colored output missing palette color")
	}
}

func TestToDOTSplit(t *testing.T) {
	d, err := io.ReadJSON(strings.NewReader(`{
  "nodes": [{"id": "h"}, {"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
  "edges": [
    {"from": "h", "to": "a"}, {"from": "h", "to": "b"},
    {"from": "h", "to": "c"}, {"from": "h", "to": "d"}
  ]
}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	x := expansion.New(d.Graph, expansion.Options{})
	x.InitComponent(0)
	h, _ := d.Node("h")
	g := x.Graph()
	first := g.FirstAdj(x.Copy(h))
	left, right := x.PrepareNodeSplit([]graph.Adj{first, g.Succ(first)})
	x.SplitNode(left, right, nil)
	if err := x.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	dot := ToDOT(x, d, Options{Detailed: true})
	if !strings.Contains(dot, "dashed") {
		t.Error("ToDOT() split copy missing dashed style")
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Error("ToDOT() split copy missing lightgrey fill")
	}
	if !strings.Contains(dot, `label="split 1"`) {
		t.Error("ToDOT() split edge missing label")
	}
	if !strings.Contains(dot, "split: 2 of 2") {
		t.Error("ToDOT() split copy missing position")
	}
}

func TestToDOTWithoutDocument(t *testing.T) {
	x, _ := crossed(t)
	dot := ToDOT(x, nil, Options{Detailed: true})
	if !strings.Contains(dot, `label="e`) {
		t.Error("ToDOT() without document should name edges by handle")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	x, d := crossed(t)
	svg, err := RenderSVG(context.Background(), ToDOT(x, d, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
