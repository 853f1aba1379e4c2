package graph

import (
	"errors"
	"slices"
	"testing"
)

func twinNodes(g *Graph, v Node) []Node {
	var out []Node
	for _, a := range g.Adjs(v) {
		out = append(out, g.TwinNode(a))
	}
	return out
}

func TestNewEdge(t *testing.T) {
	g := New()
	a, b := g.NewNode(), g.NewNode()
	e := g.NewEdge(a, b)

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Fatalf("counts = %d/%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
	if g.Source(e) != a || g.Target(e) != b {
		t.Errorf("endpoints = %d->%d, want %d->%d", g.Source(e), g.Target(e), a, b)
	}
	if g.Twin(g.AdjSource(e)) != g.AdjTarget(e) {
		t.Error("twin of source entry is not the target entry")
	}
	if g.OutDegree(a) != 1 || g.InDegree(b) != 1 {
		t.Errorf("degrees = %d/%d, want 1/1", g.OutDegree(a), g.InDegree(b))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestNewEdgeAt(t *testing.T) {
	g := New()
	v, a, b, c, d := g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()
	ea := g.NewEdge(v, a)
	g.NewEdge(v, b)
	cd := g.NewEdge(c, d)
	e := g.NewEdgeAt(g.AdjSource(ea), g.AdjSource(cd), After)

	if g.Source(e) != v || g.Target(e) != c {
		t.Fatalf("endpoints = %d->%d, want %d->%d", g.Source(e), g.Target(e), v, c)
	}
	if got, want := twinNodes(g, v), []Node{a, c, b}; !slices.Equal(got, want) {
		t.Errorf("rotation at v = %v, want %v", got, want)
	}
}

func TestDelNode(t *testing.T) {
	g := New()
	a, b, c := g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(a, b)
	g.NewEdge(b, c)
	g.NewEdge(c, a)

	g.DelNode(b)
	if g.HasNode(b) {
		t.Error("deleted node still live")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if g.Degree(a) != 1 || g.Degree(c) != 1 {
		t.Errorf("degrees = %d/%d, want 1/1", g.Degree(a), g.Degree(c))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestClear(t *testing.T) {
	g := New()
	var first []Node
	for round := 0; round < 3; round++ {
		a, b, c := g.NewNode(), g.NewNode(), g.NewNode()
		g.NewEdge(a, b)
		g.NewEdge(b, c)
		if round == 0 {
			first = []Node{a, b, c}
		} else if !slices.Equal([]Node{a, b, c}, first) {
			t.Fatalf("round %d: nodes %v, want %v", round, []Node{a, b, c}, first)
		}
		g.Clear()
		if g.NodeCount() != 0 || g.EdgeCount() != 0 || len(g.Nodes()) != 0 {
			t.Fatalf("round %d: graph not empty after Clear", round)
		}
		if len(g.nodes) != 1 || len(g.edges) != 1 || len(g.adjs) != 1 {
			t.Fatalf("round %d: arenas %d/%d/%d after Clear, want 1/1/1",
				round, len(g.nodes), len(g.edges), len(g.adjs))
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	}
}

func TestSplitUnsplit(t *testing.T) {
	g := New()
	a, b := g.NewNode(), g.NewNode()
	e := g.NewEdge(a, b)
	oldTgt := g.AdjTarget(e)

	e2 := g.Split(e)
	u := g.Source(e2)

	if g.Target(e) != u || g.Target(e2) != b {
		t.Fatalf("split chain = %d->%d->%d", g.Source(e), g.Target(e), g.Target(e2))
	}
	if g.AdjTarget(e2) != oldTgt {
		t.Error("new edge does not reuse the old target entry")
	}
	if got, want := g.Adjs(u), []Adj{g.AdjTarget(e), g.AdjSource(e2)}; !slices.Equal(got, want) {
		t.Errorf("entries at u = %v, want %v", got, want)
	}
	if g.InDegree(u) != 1 || g.OutDegree(u) != 1 {
		t.Errorf("degree at u = %d/%d, want 1/1", g.InDegree(u), g.OutDegree(u))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate after split: %v", err)
	}

	g.Unsplit(e, e2)
	if g.HasNode(u) || g.HasEdge(e2) {
		t.Error("unsplit left the subdivision behind")
	}
	if g.Target(e) != b || g.AdjTarget(e) != oldTgt {
		t.Error("unsplit did not restore the target")
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = %d/%d, want 2/1", g.NodeCount(), g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate after unsplit: %v", err)
	}
}

func TestSplitKeepsRotation(t *testing.T) {
	g := New()
	v, x, y := g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(x, v)
	e := g.NewEdge(y, v)
	g.NewEdge(v, x)

	before := g.Adjs(v)
	g.Split(e)
	if !slices.Equal(g.Adjs(v), before) {
		t.Errorf("rotation at v changed: %v -> %v", before, g.Adjs(v))
	}
}

func TestContract(t *testing.T) {
	g := New()
	v, w, x, y, z := g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(v, x)
	e := g.NewEdge(v, w)
	p := g.NewEdge(v, w)
	g.NewEdge(w, y)
	g.NewEdge(w, z)

	got := g.Contract(e)
	if got != v {
		t.Fatalf("Contract = %d, want %d", got, v)
	}
	if g.HasNode(w) || g.HasEdge(e) || g.HasEdge(p) {
		t.Error("contracted node, edge or parallel edge still live")
	}
	if got, want := twinNodes(g, v), []Node{x, y, z}; !slices.Equal(got, want) {
		t.Errorf("rotation at v = %v, want %v", got, want)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestSplitNode(t *testing.T) {
	g := New()
	v := g.NewNode()
	nbrs := []Node{g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()}
	var adjs []Adj
	for _, n := range nbrs {
		adjs = append(adjs, g.AdjSource(g.NewEdge(v, n)))
	}

	w := g.SplitNode(adjs[0], adjs[2])
	split := g.AdjEdge(g.CyclicPred(adjs[0]))

	if g.Source(split) != v || g.Target(split) != w {
		t.Fatalf("split edge = %d->%d, want %d->%d", g.Source(split), g.Target(split), v, w)
	}
	if got, want := twinNodes(g, v), []Node{w, nbrs[0], nbrs[1]}; !slices.Equal(got, want) {
		t.Errorf("rotation at v = %v, want %v", got, want)
	}
	if got, want := twinNodes(g, w), []Node{v, nbrs[2], nbrs[3]}; !slices.Equal(got, want) {
		t.Errorf("rotation at w = %v, want %v", got, want)
	}
	if g.CyclicPred(adjs[2]) != g.AdjTarget(split) {
		t.Error("split edge does not precede the right start at w")
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestMoveAdj(t *testing.T) {
	g := New()
	v := g.NewNode()
	var adjs []Adj
	for range 3 {
		adjs = append(adjs, g.AdjSource(g.NewEdge(v, g.NewNode())))
	}

	g.MoveAdjAfter(adjs[0], adjs[2])
	if got, want := g.Adjs(v), []Adj{adjs[1], adjs[2], adjs[0]}; !slices.Equal(got, want) {
		t.Errorf("after MoveAdjAfter = %v, want %v", got, want)
	}
	g.MoveAdjBefore(adjs[0], adjs[1])
	if got, want := g.Adjs(v), adjs; !slices.Equal(got, want) {
		t.Errorf("after MoveAdjBefore = %v, want %v", got, want)
	}
	if g.CyclicSucc(adjs[2]) != adjs[0] || g.CyclicPred(adjs[0]) != adjs[2] {
		t.Error("cyclic order does not wrap around")
	}
}

func TestMoveSourceAt(t *testing.T) {
	g := New()
	a, b, c, d := g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()
	anchor := g.NewEdge(b, c)
	e := g.NewEdge(a, d)

	g.MoveSourceAt(e, g.AdjSource(anchor), Before)
	if g.Source(e) != b {
		t.Fatalf("Source = %d, want %d", g.Source(e), b)
	}
	if g.FirstAdj(b) != g.AdjSource(e) {
		t.Error("moved entry is not first at b")
	}
	if g.Degree(a) != 0 || g.OutDegree(b) != 2 {
		t.Errorf("degrees = %d/%d, want 0/2", g.Degree(a), g.OutDegree(b))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestReverseEdge(t *testing.T) {
	g := New()
	a, b := g.NewNode(), g.NewNode()
	e := g.NewEdge(a, b)
	rotA := g.Adjs(a)

	g.ReverseEdge(e)
	if g.Source(e) != b || g.Target(e) != a {
		t.Errorf("endpoints = %d->%d, want %d->%d", g.Source(e), g.Target(e), b, a)
	}
	if !slices.Equal(g.Adjs(a), rotA) {
		t.Error("rotation changed")
	}
	if g.InDegree(a) != 1 || g.OutDegree(b) != 1 {
		t.Errorf("degrees = %d/%d, want 1/1", g.InDegree(a), g.OutDegree(b))
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(g *Graph, v Node, e Edge)
		want    error
	}{
		{
			name:    "Degree",
			corrupt: func(g *Graph, v Node, _ Edge) { g.nodes[v].indeg++ },
			want:    ErrDegreeMismatch,
		},
		{
			name:    "Twin",
			corrupt: func(g *Graph, _ Node, e Edge) { g.adjs[g.edges[e].adjSrc].twin = 0 },
			want:    ErrBrokenTwin,
		},
		{
			name:    "Counter",
			corrupt: func(g *Graph, _ Node, _ Edge) { g.numEdges++ },
			want:    ErrCountMismatch,
		},
		{
			name:    "DeadAdjacency",
			corrupt: func(g *Graph, _ Node, e Edge) { g.adjs[g.edges[e].adjTgt].alive = false },
			want:    ErrDeadElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			a, b := g.NewNode(), g.NewNode()
			e := g.NewEdge(a, b)
			tt.corrupt(g, b, e)
			if err := g.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConnectedComponents(t *testing.T) {
	g := New()
	a, b, c, d, e := g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(b, a)
	g.NewEdge(c, d)
	g.NewEdge(d, e)

	comp, n := ConnectedComponents(g)
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
	if comp[a] != 0 || comp[b] != 0 {
		t.Errorf("a, b in %d, %d; want 0", comp[a], comp[b])
	}
	if comp[c] != 1 || comp[d] != 1 || comp[e] != 1 {
		t.Errorf("c, d, e in %d, %d, %d; want 1", comp[c], comp[d], comp[e])
	}
}

func TestIsLoopFree(t *testing.T) {
	g := New()
	a, b := g.NewNode(), g.NewNode()
	g.NewEdge(a, b)
	if !IsLoopFree(g) {
		t.Error("IsLoopFree = false on a simple edge")
	}
	g.NewEdge(b, b)
	if IsLoopFree(g) {
		t.Error("IsLoopFree = true with a self-loop")
	}
}

func TestNodeSet(t *testing.T) {
	var s NodeSet
	s.Insert(3)
	s.Insert(5)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	s.Remove(3)
	s.Remove(42)
	if s.Contains(3) || !s.Contains(5) || !s.Contains(7) {
		t.Errorf("members = %v", s.Items())
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}
