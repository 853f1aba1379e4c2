package embedding

import (
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

// Split subdivides e like [graph.Graph.Split] and puts the two new entries
// on the faces they border.
func (em *Embedding) Split(e graph.Edge) graph.Edge {
	f1 := em.right[em.g.AdjSource(e)]
	f2 := em.right[em.g.AdjTarget(e)]

	e2 := em.g.Split(e)

	em.right[em.g.AdjSource(e2)] = f1
	em.faces[f1].size++
	em.right[em.g.AdjTarget(e)] = f2
	em.faces[f2].size++
	return e2
}

// Unsplit undoes a subdivision like [graph.Graph.Unsplit].
func (em *Embedding) Unsplit(eIn, eOut graph.Edge) {
	outSrc := em.g.AdjSource(eOut)
	inTgt := em.g.AdjTarget(eIn)
	f1 := em.right[outSrc]
	f2 := em.right[inTgt]

	em.faces[f1].size--
	em.faces[f2].size--
	if em.faces[f1].first == outSrc {
		em.faces[f1].first = em.g.AdjSource(eIn)
	}
	if em.faces[f2].first == inTgt {
		em.faces[f2].first = em.g.AdjTarget(eOut)
	}
	delete(em.right, outSrc)
	delete(em.right, inTgt)

	em.g.Unsplit(eIn, eOut)
}

// Contract merges the target of e into its source like
// [graph.Graph.Contract]. Edges parallel to e are removed first with
// [Embedding.JoinFaces], so no face degenerates.
func (em *Embedding) Contract(e graph.Edge) graph.Node {
	v, w := em.g.Source(e), em.g.Target(e)
	var parallel []graph.Edge
	for a := em.g.FirstAdj(w); a != 0; a = em.g.Succ(a) {
		if ea := em.g.AdjEdge(a); ea != e && em.g.TwinNode(a) == v {
			parallel = append(parallel, ea)
		}
	}
	for _, p := range parallel {
		em.JoinFaces(p)
	}

	adjSrc, adjTgt := em.g.AdjSource(e), em.g.AdjTarget(e)
	f1, f2 := em.right[adjSrc], em.right[adjTgt]
	if f1 == f2 {
		em.dropEntries(f1, 2, adjSrc, adjTgt)
	} else {
		em.dropEntries(f1, 1, adjSrc, adjTgt)
		em.dropEntries(f2, 1, adjSrc, adjTgt)
	}
	delete(em.right, adjSrc)
	delete(em.right, adjTgt)

	return em.g.Contract(e)
}

// dropEntries shrinks f by n entries of the edge with ends a and b, moving
// the face's first entry off that edge if needed.
func (em *Embedding) dropEntries(f Face, n int, a, b graph.Adj) {
	fr := &em.faces[f]
	fr.size -= n
	if fr.size <= 0 {
		em.delFace(f)
		return
	}
	for fr.first == a || fr.first == b {
		fr.first = em.FaceCycleSucc(fr.first)
	}
}

// SplitNode splits a node like [graph.Graph.SplitNode]. The new edge lies on
// the faces left of adjStartLeft and adjStartRight.
func (em *Embedding) SplitNode(adjStartLeft, adjStartRight graph.Adj) graph.Node {
	fL := em.LeftFace(adjStartLeft)
	fR := em.LeftFace(adjStartRight)

	w := em.g.SplitNode(adjStartLeft, adjStartRight)

	adj := em.g.CyclicPred(adjStartLeft)
	em.right[adj] = fL
	em.faces[fL].size++
	em.right[em.g.Twin(adj)] = fR
	em.faces[fR].size++
	return w
}

// ReverseEdge flips e. Faces are attached to adjacency entries, so they are
// not affected.
func (em *Embedding) ReverseEdge(e graph.Edge) {
	em.g.ReverseEdge(e)
}

// SplitFace inserts a new edge from the node of adjSrc to the node of adjTgt
// through their common right face, placing the new entries after adjSrc and
// adjTgt. The face keeps adjTgt; the part starting at adjSrc becomes a new
// face. It panics if the entries do not share a right face.
func (em *Embedding) SplitFace(adjSrc, adjTgt graph.Adj) graph.Edge {
	f1 := em.right[adjTgt]
	if em.right[adjSrc] != f1 {
		panic(fmt.Sprintf("embedding: entries %d and %d are not on a common face", adjSrc, adjTgt))
	}
	e := em.g.NewEdgeAt(adjSrc, adjTgt, graph.After)

	f2 := em.newFace(adjSrc)
	em.assign(f2, adjSrc)

	fr := &em.faces[f1]
	fr.first = adjTgt
	fr.size += 2 - em.faces[f2].size
	em.right[em.g.AdjSource(e)] = f1
	return e
}

// JoinFaces deletes e and merges the faces on its two sides. The larger
// face survives and is returned.
func (em *Embedding) JoinFaces(e graph.Edge) Face {
	adjSrc, adjTgt := em.g.AdjSource(e), em.g.AdjTarget(e)
	f1, f2 := em.right[adjSrc], em.right[adjTgt]

	if f1 == f2 {
		return em.deleteBridge(e, f1)
	}

	if em.faces[f2].size > em.faces[f1].size {
		f1, f2 = f2, f1
	}
	fr := &em.faces[f1]
	if fr.first == adjSrc || fr.first == adjTgt {
		fr.first = em.FaceCycleSucc(fr.first)
	}
	for _, a := range em.FaceAdjs(f2) {
		em.right[a] = f1
	}
	fr.size += em.faces[f2].size - 2
	em.delFace(f2)

	delete(em.right, adjSrc)
	delete(em.right, adjTgt)
	em.g.DelEdge(e)
	return f1
}

// deleteBridge removes an edge with the same face on both sides. The
// boundary of that face falls apart into one cycle per remaining side, and
// each cycle becomes a face of its own. It returns one of them, or 0 if
// nothing is left.
func (em *Embedding) deleteBridge(e graph.Edge, f Face) Face {
	adjSrc, adjTgt := em.g.AdjSource(e), em.g.AdjTarget(e)
	boundary := em.FaceAdjs(f)
	em.delFace(f)
	delete(em.right, adjSrc)
	delete(em.right, adjTgt)
	em.g.DelEdge(e)

	var out Face
	for _, a := range boundary {
		if a == adjSrc || a == adjTgt || em.right[a] != f {
			continue
		}
		nf := em.newFace(a)
		em.assign(nf, a)
		if out == 0 {
			out = nf
		}
	}
	return out
}
