package expansion

import (
	"fmt"

	"github.com/matzehuels/planrep/pkg/embedding"
	"github.com/matzehuels/planrep/pkg/graph"
)

// =============================================================================
// Copy graph primitives
// =============================================================================
//
// Every edit of the copy graph goes through these wrappers so that path
// membership and owner labels follow the structural change.

// Split subdivides copy edge e. The new edge runs from the new dummy to the
// old target, has the same owner as e and follows e in its path.
func (x *Expansion) Split(e graph.Edge, emb *Embed) graph.Edge {
	var eNew graph.Edge
	if emb != nil {
		eNew = emb.E.Split(e)
	} else {
		eNew = x.g.Split(e)
	}
	x.ni(x.g.Source(eNew))
	info := x.ei(e)
	x.setOwner(eNew, Target{Edge: info.orig, Split: info.split})
	if c := x.chainOf(e); c != nil {
		c.insertAfter(x.elink, eNew, e)
	}
	return eNew
}

// Unsplit undoes a subdivision: eIn and eOut meet at a node of degree 2,
// eOut leaves its path and eIn is extended to eOut's target.
func (x *Expansion) Unsplit(eIn, eOut graph.Edge, emb *Embed) {
	u := x.g.Target(eIn)
	if c := x.chainOf(eOut); c != nil {
		c.remove(x.elink, eOut)
	}
	if emb != nil {
		emb.E.Unsplit(eIn, eOut)
	} else {
		x.g.Unsplit(eIn, eOut)
	}
	delete(x.eInfo, eOut)
	delete(x.vInfo, u)
}

// DelEdge deletes the copy of an original edge whose path has exactly one
// edge. The original edge is left without a path until it is inserted
// again.
func (x *Expansion) DelEdge(e graph.Edge) {
	eOrig := x.ei(e).orig
	p := x.eCopy[eOrig]
	if eOrig == 0 || p.size() != 1 {
		panic(fmt.Sprintf("expansion: edge %d is not the whole path of an original edge", e))
	}
	x.g.DelEdge(e)
	p.detach()
	delete(x.eInfo, e)
}

// delEdge removes e from the graph, joining faces if embedded. It returns
// the surviving face or 0.
func (x *Expansion) delEdge(e graph.Edge, emb *Embed) embedding.Face {
	delete(x.eInfo, e)
	if emb != nil {
		return emb.E.JoinFaces(e)
	}
	x.g.DelEdge(e)
	return 0
}

// contract merges the target of e into its source. Edges parallel to e are
// taken out of their paths first; a node split left without edges is
// deregistered.
func (x *Expansion) contract(e graph.Edge, emb *Embed) graph.Node {
	v, w := x.g.Source(e), x.g.Target(e)
	for a := x.g.FirstAdj(w); a != 0; a = x.g.Succ(a) {
		p := x.g.AdjEdge(a)
		if p == e || x.g.TwinNode(a) != v {
			continue
		}
		info := x.ei(p)
		if c := x.chainOf(p); c != nil {
			c.remove(x.elink, p)
		}
		if ns := info.split; ns != nil && ns.path.size() == 0 {
			x.delSplit(ns)
		}
		delete(x.eInfo, p)
	}
	delete(x.eInfo, e)
	delete(x.vInfo, w)
	if emb != nil {
		return emb.E.Contract(e)
	}
	return x.g.Contract(e)
}

// reverse flips copy edge e.
func (x *Expansion) reverse(e graph.Edge, emb *Embed) {
	if emb != nil {
		emb.E.ReverseEdge(e)
		return
	}
	x.g.ReverseEdge(e)
}
