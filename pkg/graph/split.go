package graph

import "fmt"

// Split subdivides e with a new node u. Afterwards e runs from its old source
// to u and the returned edge runs from u to the old target. The returned
// edge takes over e's adjacency entry at the old target, so the rotation at
// both old endpoints is unchanged. The adjacency list of u is [in, out].
func (g *Graph) Split(e Edge) Edge {
	g.mustEdge(e)
	u := g.NewNode()
	w := g.edges[e].tgt
	oldTgt := g.edges[e].adjTgt

	aIn := g.newAdj(u, e)
	aOut := g.newAdj(u, 0)
	e2 := g.linkEdgeRec(u, w, aOut, oldTgt)

	src := g.edges[e].adjSrc
	g.adjs[aIn].twin = src
	g.adjs[src].twin = aIn
	g.edges[e].tgt = u
	g.edges[e].adjTgt = aIn

	g.appendAdj(u, aIn)
	g.appendAdj(u, aOut)
	g.nodes[u].indeg = 1
	g.nodes[u].outdeg = 1
	return e2
}

// Unsplit undoes a subdivision. eIn must end and eOut must start at the same
// node u of degree 2. eIn is extended to eOut's target, reusing eOut's
// adjacency entry there; u and eOut are removed.
func (g *Graph) Unsplit(eIn, eOut Edge) {
	g.mustEdge(eIn)
	g.mustEdge(eOut)
	u := g.edges[eIn].tgt
	if eIn == eOut || g.edges[eOut].src != u || g.Degree(u) != 2 {
		panic(fmt.Sprintf("graph: edges %d and %d do not meet at a degree-2 node", eIn, eOut))
	}

	inAtU := g.edges[eIn].adjTgt
	outAtU := g.edges[eOut].adjSrc
	adjTgt := g.edges[eOut].adjTgt
	w := g.edges[eOut].tgt

	g.unlinkAdj(inAtU)
	g.unlinkAdj(outAtU)
	g.adjs[inAtU].alive = false
	g.adjs[outAtU].alive = false

	g.edges[eIn].tgt = w
	g.edges[eIn].adjTgt = adjTgt
	g.adjs[adjTgt].edge = eIn
	g.adjs[adjTgt].twin = g.edges[eIn].adjSrc
	g.adjs[g.edges[eIn].adjSrc].twin = adjTgt

	g.unlinkEdge(eOut)
	g.nodes[u].indeg, g.nodes[u].outdeg = 0, 0
	g.unlinkNode(u)
}

// Contract merges the target of e into its source and returns the source.
// The entries of the target are spliced into the source's list at the
// position of e, keeping their cyclic order. Edges parallel to e would
// become self-loops and are deleted together with e.
func (g *Graph) Contract(e Edge) Node {
	g.mustEdge(e)
	v, w := g.edges[e].src, g.edges[e].tgt
	if v == w {
		panic(fmt.Sprintf("graph: cannot contract self-loop %d", e))
	}
	adjSrc, adjTgt := g.edges[e].adjSrc, g.edges[e].adjTgt

	var next Adj
	for a := g.CyclicSucc(adjTgt); a != adjTgt; a = next {
		next = g.CyclicSucc(a)
		ea := g.adjs[a].edge
		if g.TwinNode(a) == v {
			g.DelEdge(ea)
			continue
		}
		if g.edges[ea].adjSrc == a {
			g.MoveSourceAt(ea, adjSrc, Before)
		} else {
			g.MoveTargetAt(ea, adjSrc, Before)
		}
	}
	g.DelNode(w)
	return v
}

// SplitNode splits the node v of adjStartLeft and adjStartRight in two. The
// entries from adjStartRight up to, but not including, adjStartLeft move to a
// new node w, and a new edge from v to w is inserted before adjStartLeft at v
// and before adjStartRight at w. The new edge is CyclicPred(adjStartLeft).
func (g *Graph) SplitNode(adjStartLeft, adjStartRight Adj) Node {
	g.mustAdj(adjStartLeft)
	g.mustAdj(adjStartRight)
	v := g.adjs[adjStartLeft].node
	if g.adjs[adjStartRight].node != v || adjStartLeft == adjStartRight {
		panic(fmt.Sprintf("graph: entries %d and %d do not split a node", adjStartLeft, adjStartRight))
	}

	w := g.NewNode()
	var next Adj
	for a := adjStartRight; a != adjStartLeft; a = next {
		next = g.CyclicSucc(a)
		g.moveAdjToNode(a, w)
	}
	g.NewEdgeAt(adjStartLeft, adjStartRight, Before)
	return w
}
