package embedding

import (
	"testing"

	"github.com/matzehuels/planrep/pkg/graph"
)

func cycle(n int) (*graph.Graph, []graph.Node, []graph.Edge) {
	g := graph.New()
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = g.NewNode()
	}
	edges := make([]graph.Edge, n)
	for i := range nodes {
		edges[i] = g.NewEdge(nodes[i], nodes[(i+1)%n])
	}
	return g, nodes, edges
}

func mustValid(t *testing.T, em *Embedding) {
	t.Helper()
	if err := em.Graph().Validate(); err != nil {
		t.Fatalf("graph Validate: %v", err)
	}
	if err := em.Validate(); err != nil {
		t.Fatalf("embedding Validate: %v", err)
	}
	if !em.IsPlanar() {
		t.Fatal("embedding is not planar")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		wantFaces int
	}{
		{name: "Triangle", n: 3, wantFaces: 2},
		{name: "Square", n: 4, wantFaces: 2},
		{name: "Hexagon", n: 6, wantFaces: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _, _ := cycle(tt.n)
			em := New(g)
			if em.FaceCount() != tt.wantFaces {
				t.Errorf("FaceCount = %d, want %d", em.FaceCount(), tt.wantFaces)
			}
			for _, f := range em.Faces() {
				if em.Size(f) != tt.n {
					t.Errorf("Size(%d) = %d, want %d", f, em.Size(f), tt.n)
				}
			}
			mustValid(t, em)
		})
	}
}

func TestLeftRightFace(t *testing.T) {
	g, _, edges := cycle(3)
	em := New(g)
	a := g.AdjSource(edges[0])
	if em.LeftFace(a) != em.RightFace(g.Twin(a)) {
		t.Error("LeftFace does not match the right face of the twin")
	}
	if em.LeftFace(a) == em.RightFace(a) {
		t.Error("both sides of a cycle edge on the same face")
	}
	if em.FaceCyclePred(em.FaceCycleSucc(a)) != a {
		t.Error("FaceCyclePred is not the inverse of FaceCycleSucc")
	}
}

func TestSplitUnsplit(t *testing.T) {
	g, _, edges := cycle(3)
	em := New(g)
	e := edges[0]
	fR, fL := em.RightFace(g.AdjSource(e)), em.LeftFace(g.AdjSource(e))

	e2 := em.Split(e)
	mustValid(t, em)
	if em.Size(fR) != 4 || em.Size(fL) != 4 {
		t.Errorf("sizes after split = %d/%d, want 4/4", em.Size(fR), em.Size(fL))
	}
	if em.RightFace(g.AdjSource(e2)) != fR || em.RightFace(g.AdjTarget(e)) != fL {
		t.Error("new entries on the wrong faces")
	}

	em.Unsplit(e, e2)
	mustValid(t, em)
	if em.Size(fR) != 3 || em.Size(fL) != 3 {
		t.Errorf("sizes after unsplit = %d/%d, want 3/3", em.Size(fR), em.Size(fL))
	}
}

func TestSplitFaceJoinFaces(t *testing.T) {
	g, nodes, edges := cycle(4)
	em := New(g)

	adjSrc := g.AdjSource(edges[0])
	var adjTgt graph.Adj
	for _, a := range g.Adjs(nodes[2]) {
		if em.RightFace(a) == em.RightFace(adjSrc) {
			adjTgt = a
		}
	}
	if adjTgt == 0 {
		t.Fatal("no entry at the opposite corner on the same face")
	}

	e := em.SplitFace(adjSrc, adjTgt)
	mustValid(t, em)
	if em.FaceCount() != 3 {
		t.Fatalf("FaceCount = %d, want 3", em.FaceCount())
	}
	if em.RightFace(g.AdjSource(e)) == em.LeftFace(g.AdjSource(e)) {
		t.Error("chord has the same face on both sides")
	}
	if em.Size(em.RightFace(g.AdjSource(e))) != 3 || em.Size(em.LeftFace(g.AdjSource(e))) != 3 {
		t.Error("chord does not split the square into two triangles")
	}

	f := em.JoinFaces(e)
	mustValid(t, em)
	if em.FaceCount() != 2 || em.Size(f) != 4 {
		t.Errorf("after join: %d faces, size %d; want 2 faces, size 4", em.FaceCount(), em.Size(f))
	}
}

func TestJoinFacesBridge(t *testing.T) {
	g := graph.New()
	a, b, c := g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(a, b)
	bc := g.NewEdge(b, c)
	em := New(g)
	if em.FaceCount() != 1 {
		t.Fatalf("FaceCount = %d, want 1", em.FaceCount())
	}

	f := em.JoinFaces(bc)
	mustValid(t, em)
	if em.FaceCount() != 1 || em.Size(f) != 2 {
		t.Errorf("after bridge removal: %d faces, size %d; want 1 face, size 2", em.FaceCount(), em.Size(f))
	}
}

func TestContract(t *testing.T) {
	g, _, edges := cycle(4)
	em := New(g)

	v := em.Contract(edges[1])
	mustValid(t, em)
	if g.NodeCount() != 3 || em.FaceCount() != 2 {
		t.Errorf("after contract: %d nodes, %d faces; want 3, 2", g.NodeCount(), em.FaceCount())
	}
	if g.Degree(v) != 2 {
		t.Errorf("Degree = %d, want 2", g.Degree(v))
	}
}

func TestContractPendant(t *testing.T) {
	g := graph.New()
	a, b, c := g.NewNode(), g.NewNode(), g.NewNode()
	g.NewEdge(a, b)
	e := g.NewEdge(b, c)
	em := New(g)

	em.Contract(e)
	mustValid(t, em)
	if em.FaceCount() != 1 {
		t.Errorf("FaceCount = %d, want 1", em.FaceCount())
	}
}

func TestContractParallel(t *testing.T) {
	g, nodes, edges := cycle(3)
	p := g.NewEdge(nodes[0], nodes[1])
	// Bound a 2-gon with edges[0].
	g.MoveAdjAfter(g.AdjSource(p), g.AdjSource(edges[0]))
	g.MoveAdjBefore(g.AdjTarget(p), g.AdjTarget(edges[0]))
	em := New(g)
	if em.FaceCount() != 3 {
		t.Fatalf("FaceCount = %d, want 3", em.FaceCount())
	}

	em.Contract(edges[0])
	mustValid(t, em)
	if g.EdgeCount() != 2 || g.NodeCount() != 2 {
		t.Errorf("after contract: %d nodes, %d edges; want 2, 2", g.NodeCount(), g.EdgeCount())
	}
}

func TestSplitNode(t *testing.T) {
	g := graph.New()
	v := g.NewNode()
	var adjs []graph.Adj
	for range 4 {
		adjs = append(adjs, g.AdjSource(g.NewEdge(v, g.NewNode())))
	}
	em := New(g)
	faces := em.FaceCount()

	w := em.SplitNode(adjs[0], adjs[2])
	mustValid(t, em)
	if em.FaceCount() != faces {
		t.Errorf("FaceCount = %d, want %d", em.FaceCount(), faces)
	}
	if g.Degree(w) != 3 {
		t.Errorf("Degree(w) = %d, want 3", g.Degree(w))
	}
}

func TestReverseEdge(t *testing.T) {
	g, _, edges := cycle(3)
	em := New(g)
	f := em.RightFace(g.AdjSource(edges[0]))

	em.ReverseEdge(edges[0])
	mustValid(t, em)
	if em.RightFace(g.AdjTarget(edges[0])) != f {
		t.Error("face of the flipped entry changed")
	}
}

func TestValidateDetectsStaleFaces(t *testing.T) {
	g, nodes, _ := cycle(3)
	em := New(g)

	g.NewEdge(nodes[0], nodes[2])
	if err := em.Validate(); err == nil {
		t.Error("Validate = nil after editing the graph behind the embedding")
	}
	em.Compute()
	if err := em.Validate(); err != nil {
		t.Errorf("Validate after Compute: %v", err)
	}
}

func TestFaceSet(t *testing.T) {
	var s FaceSet
	s.Insert(1)
	s.Insert(2)
	s.Remove(1)
	if s.Contains(1) || !s.Contains(2) || s.Len() != 1 {
		t.Errorf("members = %v", s.Items())
	}
}
