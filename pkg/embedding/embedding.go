package embedding

import (
	"errors"
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

var (
	// ErrUnassignedAdj is returned by [Embedding.Validate] when a live
	// adjacency entry has no face.
	ErrUnassignedAdj = errors.New("adjacency entry without face")

	// ErrFaceMismatch is returned by [Embedding.Validate] when the recorded
	// face of an entry differs from the face cycle it lies on.
	ErrFaceMismatch = errors.New("face assignment does not match face cycle")

	// ErrFaceSize is returned by [Embedding.Validate] when the cached size of
	// a face differs from the length of its cycle.
	ErrFaceSize = errors.New("face size out of sync")
)

// Face is a handle to a face. The zero value refers to no face.
type Face int

// FaceSet collects faces, for example the faces created during an edit.
type FaceSet = graph.Set[Face]

type faceRec struct {
	alive bool
	first graph.Adj
	size  int
}

// Embedding tracks the faces of a graph whose rotation system is taken as a
// planar embedding. Each adjacency entry a bounds the face to its right; the
// next entry on that face is [Embedding.FaceCycleSucc] of a.
//
// Once an Embedding exists, the graph must only be edited through the
// methods of the Embedding, or the face structure goes stale.
type Embedding struct {
	g     *graph.Graph
	right map[graph.Adj]Face
	faces []faceRec
	count int
}

// New computes the faces of g from its current rotation system.
func New(g *graph.Graph) *Embedding {
	em := &Embedding{g: g}
	em.Compute()
	return em
}

// Compute discards all faces and traces them again from the rotation system.
// Face handles issued before are invalid afterwards.
func (em *Embedding) Compute() {
	em.right = make(map[graph.Adj]Face, 2*em.g.EdgeCount())
	em.faces = make([]faceRec, 1, em.g.EdgeCount()+2)
	em.count = 0
	for _, v := range em.g.Nodes() {
		for a := em.g.FirstAdj(v); a != 0; a = em.g.Succ(a) {
			if em.right[a] != 0 {
				continue
			}
			f := em.newFace(a)
			em.assign(f, a)
		}
	}
}

// Graph returns the embedded graph.
func (em *Embedding) Graph() *graph.Graph { return em.g }

// FaceCount returns the number of live faces.
func (em *Embedding) FaceCount() int { return em.count }

// Faces returns the live faces in creation order.
func (em *Embedding) Faces() []Face {
	out := make([]Face, 0, em.count)
	for i := 1; i < len(em.faces); i++ {
		if em.faces[i].alive {
			out = append(out, Face(i))
		}
	}
	return out
}

// HasFace reports whether f is a live face.
func (em *Embedding) HasFace(f Face) bool {
	return f > 0 && int(f) < len(em.faces) && em.faces[f].alive
}

// RightFace returns the face to the right of a.
func (em *Embedding) RightFace(a graph.Adj) Face { return em.right[a] }

// LeftFace returns the face to the left of a, which is the face to the
// right of its twin.
func (em *Embedding) LeftFace(a graph.Adj) Face { return em.right[em.g.Twin(a)] }

// Size returns the number of entries on the boundary of f.
func (em *Embedding) Size(f Face) int { return em.faces[f].size }

// FirstAdj returns some entry on the boundary of f.
func (em *Embedding) FirstAdj(f Face) graph.Adj { return em.faces[f].first }

// FaceCycleSucc returns the entry following a on the boundary of its right
// face.
func (em *Embedding) FaceCycleSucc(a graph.Adj) graph.Adj {
	return em.g.CyclicPred(em.g.Twin(a))
}

// FaceCyclePred returns the entry preceding a on the boundary of its right
// face.
func (em *Embedding) FaceCyclePred(a graph.Adj) graph.Adj {
	return em.g.Twin(em.g.CyclicSucc(a))
}

// FaceAdjs returns the boundary of f starting at [Embedding.FirstAdj].
func (em *Embedding) FaceAdjs(f Face) []graph.Adj {
	first := em.faces[f].first
	out := make([]graph.Adj, 0, em.faces[f].size)
	a := first
	for {
		out = append(out, a)
		a = em.FaceCycleSucc(a)
		if a == first {
			return out
		}
	}
}

// IsPlanar reports whether the rotation system describes a planar
// embedding, using Euler's formula per connected component.
func (em *Embedding) IsPlanar() bool {
	comp, n := graph.ConnectedComponents(em.g)
	nonTrivial := make(map[int]bool, n)
	for _, e := range em.g.Edges() {
		nonTrivial[comp[em.g.Source(e)]] = true
	}
	want := 0
	for c := range n {
		if nonTrivial[c] {
			want += 2
		} else {
			want++
		}
	}
	return em.g.NodeCount()-em.g.EdgeCount()+em.count == want
}

// Validate checks the face structure against the rotation system of the
// graph.
func (em *Embedding) Validate() error {
	seen := make(map[graph.Adj]bool, len(em.right))
	total := 0
	for _, f := range em.Faces() {
		fr := em.faces[f]
		if !em.g.HasAdj(fr.first) {
			return fmt.Errorf("face %d: %w", f, ErrFaceMismatch)
		}
		n := 0
		for _, a := range em.FaceAdjs(f) {
			if em.right[a] != f || seen[a] {
				return fmt.Errorf("face %d at entry %d: %w", f, a, ErrFaceMismatch)
			}
			seen[a] = true
			n++
		}
		if n != fr.size {
			return fmt.Errorf("face %d: size %d, cycle %d: %w", f, fr.size, n, ErrFaceSize)
		}
		total += n
	}
	if total != 2*em.g.EdgeCount() {
		return ErrUnassignedAdj
	}
	return nil
}

func (em *Embedding) newFace(first graph.Adj) Face {
	f := Face(len(em.faces))
	em.faces = append(em.faces, faceRec{alive: true, first: first})
	em.count++
	return f
}

func (em *Embedding) delFace(f Face) {
	em.faces[f] = faceRec{}
	em.count--
}

// assign walks the cycle starting at a and puts every entry on f.
func (em *Embedding) assign(f Face, start graph.Adj) {
	a := start
	for {
		em.right[a] = f
		em.faces[f].size++
		a = em.FaceCycleSucc(a)
		if a == start {
			return
		}
	}
}
