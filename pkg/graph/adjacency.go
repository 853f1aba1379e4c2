package graph

import "fmt"

// MoveAdjAfter moves adjMove so that it directly follows adjPos in the
// cyclic order of their common node.
func (g *Graph) MoveAdjAfter(adjMove, adjPos Adj) {
	g.moveAdj(adjMove, adjPos, After)
}

// MoveAdjBefore moves adjMove so that it directly precedes adjPos in the
// cyclic order of their common node.
func (g *Graph) MoveAdjBefore(adjMove, adjPos Adj) {
	g.moveAdj(adjMove, adjPos, Before)
}

func (g *Graph) moveAdj(adjMove, adjPos Adj, dir Direction) {
	g.mustAdj(adjMove)
	g.mustAdj(adjPos)
	if g.adjs[adjMove].node != g.adjs[adjPos].node {
		panic(fmt.Sprintf("graph: adjacency entries %d and %d belong to different nodes", adjMove, adjPos))
	}
	if adjMove == adjPos {
		return
	}
	g.unlinkAdj(adjMove)
	g.insertAdj(adjMove, adjPos, dir)
}

// MoveSource reattaches the source end of e to w, appending the entry to
// w's adjacency list.
func (g *Graph) MoveSource(e Edge, w Node) {
	g.mustEdge(e)
	g.mustNode(w)
	a := g.edges[e].adjSrc
	g.nodes[g.edges[e].src].outdeg--
	g.unlinkAdj(a)
	g.edges[e].src = w
	g.nodes[w].outdeg++
	g.appendAdj(w, a)
}

// MoveTarget reattaches the target end of e to w, appending the entry to
// w's adjacency list.
func (g *Graph) MoveTarget(e Edge, w Node) {
	g.mustEdge(e)
	g.mustNode(w)
	a := g.edges[e].adjTgt
	g.nodes[g.edges[e].tgt].indeg--
	g.unlinkAdj(a)
	g.edges[e].tgt = w
	g.nodes[w].indeg++
	g.appendAdj(w, a)
}

// MoveSourceAt reattaches the source end of e to the node of adjPos,
// placing the entry relative to adjPos.
func (g *Graph) MoveSourceAt(e Edge, adjPos Adj, dir Direction) {
	g.mustEdge(e)
	g.mustAdj(adjPos)
	a := g.edges[e].adjSrc
	w := g.adjs[adjPos].node
	g.nodes[g.edges[e].src].outdeg--
	g.unlinkAdj(a)
	g.edges[e].src = w
	g.nodes[w].outdeg++
	g.insertAdj(a, adjPos, dir)
}

// MoveTargetAt reattaches the target end of e to the node of adjPos,
// placing the entry relative to adjPos.
func (g *Graph) MoveTargetAt(e Edge, adjPos Adj, dir Direction) {
	g.mustEdge(e)
	g.mustAdj(adjPos)
	a := g.edges[e].adjTgt
	w := g.adjs[adjPos].node
	g.nodes[g.edges[e].tgt].indeg--
	g.unlinkAdj(a)
	g.edges[e].tgt = w
	g.nodes[w].indeg++
	g.insertAdj(a, adjPos, dir)
}

// moveAdjToNode appends a to w's list and updates the edge endpoint it
// stands for.
func (g *Graph) moveAdjToNode(a Adj, w Node) {
	e := g.adjs[a].edge
	if g.edges[e].adjSrc == a {
		g.MoveSource(e, w)
	} else {
		g.MoveTarget(e, w)
	}
}

func (g *Graph) appendAdj(v Node, a Adj) {
	nr := &g.nodes[v]
	ar := &g.adjs[a]
	ar.node = v
	ar.prev, ar.next = nr.last, 0
	if nr.last != 0 {
		g.adjs[nr.last].next = a
	} else {
		nr.first = a
	}
	nr.last = a
}

func (g *Graph) insertAdj(a, pos Adj, dir Direction) {
	v := g.adjs[pos].node
	nr := &g.nodes[v]
	g.adjs[a].node = v
	if dir == After {
		next := g.adjs[pos].next
		g.adjs[a].prev, g.adjs[a].next = pos, next
		g.adjs[pos].next = a
		if next != 0 {
			g.adjs[next].prev = a
		} else {
			nr.last = a
		}
		return
	}
	prev := g.adjs[pos].prev
	g.adjs[a].prev, g.adjs[a].next = prev, pos
	g.adjs[pos].prev = a
	if prev != 0 {
		g.adjs[prev].next = a
	} else {
		nr.first = a
	}
}

func (g *Graph) unlinkAdj(a Adj) {
	ar := &g.adjs[a]
	nr := &g.nodes[ar.node]
	if ar.prev != 0 {
		g.adjs[ar.prev].next = ar.next
	} else {
		nr.first = ar.next
	}
	if ar.next != 0 {
		g.adjs[ar.next].prev = ar.prev
	} else {
		nr.last = ar.prev
	}
	ar.prev, ar.next = 0, 0
}
