package expansion

import (
	"github.com/matzehuels/planrep/pkg/graph"
)

// Crossing describes one step of an insertion route: the copy edge to cross,
// optionally preceded by splitting the node the route passes through.
type Crossing struct {
	// Adj is an entry of the edge to cross. In an embedded insertion the
	// route enters through the face left of Adj and leaves into the face
	// right of it. When the node of Adj is split first, Adj is the left
	// boundary of that split.
	Adj graph.Adj

	// Right is the right boundary for splitting the node of Adj. After the
	// split the route crosses the new split edge.
	Right graph.Adj

	// Partition lists entries of one node that stay together when the node
	// is split; the route then crosses the new split edge. Only plain
	// insertions take a partition.
	Partition []graph.Adj
}

func (c Crossing) splits() bool { return c.Right != 0 || len(c.Partition) > 0 }

// Route is the input of [Expansion.InsertEdgePath].
type Route struct {
	// Start and End are the copy nodes the new path joins. Plain insertions
	// use them.
	Start, End graph.Node

	// StartAdj and EndAdj are the entries after which the first and last
	// edge are attached. Embedded insertions use them; their right faces
	// are the first and last face of the route.
	StartAdj, EndAdj graph.Adj

	// SrcEdge and TgtEdge, if set, are existing unowned edges put in front
	// of and behind the new edges.
	SrcEdge, TgtEdge graph.Edge

	Crossings []Crossing
}

// InsertEdgePath realizes the path of t along r. The path of t is cleared
// first; its old edges must have been removed by the caller. Each crossing
// subdivides the crossed edge with a dummy node, and each split crossing
// first splits the node it passes through.
//
// With emb set, the new edges are drawn into the faces named by r and the
// faces they create are added to emb.NewFaces.
func (x *Expansion) InsertEdgePath(t Target, r Route, emb *Embed) {
	c := x.mustChain(t)
	c.detach()
	if r.SrcEdge != 0 {
		x.appendTo(t, c, r.SrcEdge)
	}
	if emb != nil {
		x.insertEmbedded(t, c, r, emb)
	} else {
		x.insertPlain(t, c, r)
	}
	if r.TgtEdge != 0 {
		x.appendTo(t, c, r.TgtEdge)
	}
	x.logger.Debug("path inserted",
		"target", t,
		"crossings", len(r.Crossings),
		"edges", c.size())
}

func (x *Expansion) insertPlain(t Target, c *edgeList, r Route) {
	v := r.Start
	for _, cr := range r.Crossings {
		adj := cr.Adj
		switch {
		case len(cr.Partition) > 0:
			left, right := x.PrepareNodeSplit(cr.Partition)
			x.SplitNode(left, right, nil)
			adj = x.g.CyclicPred(right)
		case cr.Right != 0:
			x.SplitNode(cr.Adj, cr.Right, nil)
			adj = x.g.CyclicPred(cr.Right)
		}
		u := x.g.Source(x.Split(x.g.AdjEdge(adj), nil))
		x.appendTo(t, c, x.g.NewEdge(v, u))
		v = u
	}
	x.appendTo(t, c, x.g.NewEdge(v, r.End))
}

func (x *Expansion) insertEmbedded(t Target, c *edgeList, r Route, emb *Embed) {
	adjSrc := r.StartAdj
	for _, cr := range r.Crossings {
		if len(cr.Partition) > 0 {
			panic("expansion: partition crossings need a plain insertion")
		}
		adj := cr.Adj
		if cr.Right != 0 {
			x.SplitNode(cr.Adj, cr.Right, emb)
			adj = x.g.CyclicPred(cr.Right)
		}
		u := x.g.Source(x.Split(x.g.AdjEdge(adj), emb))

		// u has exactly the two halves of the crossed edge; the new edge
		// arrives next to the half facing the current face.
		adjTgt := x.g.FirstAdj(u)
		next := x.g.Succ(adjTgt)
		if adjTgt != x.g.Twin(adj) {
			adjTgt, next = next, adjTgt
		}
		x.appendFace(t, c, emb, emb.E.SplitFace(adjSrc, adjTgt))
		adjSrc = next
	}
	x.appendFace(t, c, emb, emb.E.SplitFace(adjSrc, r.EndAdj))
}

func (x *Expansion) appendFace(t Target, c *edgeList, emb *Embed, e graph.Edge) {
	x.appendTo(t, c, e)
	emb.addFace(emb.E.RightFace(x.g.AdjTarget(e)))
}

// RemoveEdgePath deletes every edge of the path of t and clears it. Dummy
// nodes left with two edges are dissolved; when that joins two copies of
// the same original node, their split is contracted. It returns the nodes
// that were the ends of the path, after any merging.
//
// With emb set, faces are joined instead of edges deleted; the surviving
// faces are collected in emb.NewFaces and the nodes that absorbed another
// copy in emb.Merged.
func (x *Expansion) RemoveEdgePath(t Target, emb *Embed) (oldSrc, oldTgt graph.Node) {
	c := x.mustChain(t)
	edges := c.items(x.elink)
	if len(edges) == 0 {
		return 0, 0
	}
	oldSrc = x.g.Source(edges[0])
	oldTgt = x.g.Target(edges[len(edges)-1])
	c.detach()

	f := x.delEdge(edges[0], emb)
	if emb != nil {
		emb.addFace(f)
	}
	for _, e := range edges[1:] {
		u := x.g.Source(e)
		if emb != nil {
			emb.removeFace(emb.E.RightFace(x.g.AdjSource(e)))
			emb.removeFace(emb.E.RightFace(x.g.AdjTarget(e)))
			emb.addFace(x.delEdge(e, emb))
		} else {
			x.delEdge(e, nil)
		}

		eIn := x.g.AdjEdge(x.g.FirstAdj(u))
		eOut := x.g.AdjEdge(x.g.LastAdj(u))
		if x.g.Target(eIn) != u {
			eIn, eOut = eOut, eIn
		}
		x.Unsplit(eIn, eOut, emb)

		u, v := x.g.Source(eIn), x.g.Target(eIn)
		if vOrig := x.ni(v).orig; vOrig != 0 && vOrig == x.ni(u).orig {
			x.removeCopy(v)
			x.delSplit(x.ei(eIn).split)
			x.contract(eIn, emb)
			if emb != nil {
				emb.merge(u, v)
			}
			if oldSrc == v {
				oldSrc = u
			}
			if oldTgt == v {
				oldTgt = u
			}
		}
	}

	x.logger.Debug("path removed",
		"target", t,
		"edges", len(edges))
	return oldSrc, oldTgt
}
