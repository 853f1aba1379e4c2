package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrDeadElement is returned by [Graph.Validate] when a live list links to
	// a deleted node, edge or adjacency entry.
	ErrDeadElement = errors.New("reference to deleted element")

	// ErrBrokenTwin is returned by [Graph.Validate] when the two adjacency
	// entries of an edge do not point at each other.
	ErrBrokenTwin = errors.New("adjacency twins do not match")

	// ErrBrokenAdjacency is returned by [Graph.Validate] when a node's
	// adjacency list is not a proper doubly linked list of its own entries.
	ErrBrokenAdjacency = errors.New("adjacency list corrupted")

	// ErrDegreeMismatch is returned by [Graph.Validate] when cached degrees
	// disagree with the adjacency lists.
	ErrDegreeMismatch = errors.New("degree counters out of sync")

	// ErrCountMismatch is returned by [Graph.Validate] when the node or edge
	// counters disagree with the element lists.
	ErrCountMismatch = errors.New("element counters out of sync")
)

// Node is a handle to a vertex. The zero value refers to no vertex.
type Node int

// Edge is a handle to a directed edge. The zero value refers to no edge.
type Edge int

// Adj is a handle to an adjacency entry, one end of an edge seen from the
// node it is attached to. The zero value refers to no entry.
type Adj int

// Direction selects where an inserted adjacency entry goes relative to a
// reference entry.
type Direction int

const (
	// After places the new entry immediately after the reference entry.
	After Direction = iota
	// Before places the new entry immediately before the reference entry.
	Before
)

type nodeRec struct {
	alive       bool
	first, last Adj
	indeg       int
	outdeg      int
	prev, next  Node
}

type edgeRec struct {
	alive          bool
	src, tgt       Node
	adjSrc, adjTgt Adj
	prev, next     Edge
}

type adjRec struct {
	alive      bool
	node       Node
	edge       Edge
	twin       Adj
	prev, next Adj
}

// Graph is a directed multigraph whose nodes keep their incident adjacency
// entries in a cyclic order (a rotation system). Nodes, edges and adjacency
// entries live in arenas and are addressed by integer handles that stay
// valid until the element is deleted. Handles are never reused.
//
// The zero value is not usable - use New to create a graph.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes []nodeRec
	edges []edgeRec
	adjs  []adjRec

	firstNode, lastNode Node
	firstEdge, lastEdge Edge
	numNodes, numEdges  int
}

// New creates an empty graph.
func New() *Graph {
	// Slot 0 of every arena is the "none" sentinel.
	return &Graph{
		nodes: make([]nodeRec, 1, 16),
		edges: make([]edgeRec, 1, 16),
		adjs:  make([]adjRec, 1, 32),
	}
}

// Clear removes all nodes and edges and releases their records. Handles
// issued before Clear must not be used afterwards; they are reissued.
func (g *Graph) Clear() {
	g.nodes = g.nodes[:1]
	g.edges = g.edges[:1]
	g.adjs = g.adjs[:1]
	g.firstNode, g.lastNode = 0, 0
	g.firstEdge, g.lastEdge = 0, 0
	g.numNodes, g.numEdges = 0, 0
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return g.numNodes }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.numEdges }

// HasNode reports whether v is a live node of g.
func (g *Graph) HasNode(v Node) bool {
	return v > 0 && int(v) < len(g.nodes) && g.nodes[v].alive
}

// HasEdge reports whether e is a live edge of g.
func (g *Graph) HasEdge(e Edge) bool {
	return e > 0 && int(e) < len(g.edges) && g.edges[e].alive
}

// HasAdj reports whether a is a live adjacency entry of g.
func (g *Graph) HasAdj(a Adj) bool {
	return a > 0 && int(a) < len(g.adjs) && g.adjs[a].alive
}

// Nodes returns all live nodes in creation order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, g.numNodes)
	for v := g.firstNode; v != 0; v = g.nodes[v].next {
		out = append(out, v)
	}
	return out
}

// Edges returns all live edges in creation order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.numEdges)
	for e := g.firstEdge; e != 0; e = g.edges[e].next {
		out = append(out, e)
	}
	return out
}

// Source returns the source node of e.
func (g *Graph) Source(e Edge) Node { return g.edges[e].src }

// Target returns the target node of e.
func (g *Graph) Target(e Edge) Node { return g.edges[e].tgt }

// AdjSource returns the adjacency entry of e at its source.
func (g *Graph) AdjSource(e Edge) Adj { return g.edges[e].adjSrc }

// AdjTarget returns the adjacency entry of e at its target.
func (g *Graph) AdjTarget(e Edge) Adj { return g.edges[e].adjTgt }

// IsSelfLoop reports whether both endpoints of e coincide.
func (g *Graph) IsSelfLoop(e Edge) bool { return g.edges[e].src == g.edges[e].tgt }

// Degree returns the number of adjacency entries at v; self-loops count twice.
func (g *Graph) Degree(v Node) int { return g.nodes[v].indeg + g.nodes[v].outdeg }

// InDegree returns the number of edges entering v.
func (g *Graph) InDegree(v Node) int { return g.nodes[v].indeg }

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v Node) int { return g.nodes[v].outdeg }

// FirstAdj returns the first adjacency entry of v, or 0 if v is isolated.
func (g *Graph) FirstAdj(v Node) Adj { return g.nodes[v].first }

// LastAdj returns the last adjacency entry of v, or 0 if v is isolated.
func (g *Graph) LastAdj(v Node) Adj { return g.nodes[v].last }

// AdjNode returns the node a is attached to.
func (g *Graph) AdjNode(a Adj) Node { return g.adjs[a].node }

// AdjEdge returns the edge a belongs to.
func (g *Graph) AdjEdge(a Adj) Edge { return g.adjs[a].edge }

// Twin returns the adjacency entry at the other end of a's edge.
func (g *Graph) Twin(a Adj) Adj { return g.adjs[a].twin }

// TwinNode returns the node at the other end of a's edge.
func (g *Graph) TwinNode(a Adj) Node { return g.adjs[g.adjs[a].twin].node }

// IsSourceAdj reports whether a is the source end of its edge.
func (g *Graph) IsSourceAdj(a Adj) bool { return g.edges[g.adjs[a].edge].adjSrc == a }

// Succ returns the entry after a in its node's list, or 0 at the end.
func (g *Graph) Succ(a Adj) Adj { return g.adjs[a].next }

// Pred returns the entry before a in its node's list, or 0 at the front.
func (g *Graph) Pred(a Adj) Adj { return g.adjs[a].prev }

// CyclicSucc returns the entry after a in cyclic order around its node.
func (g *Graph) CyclicSucc(a Adj) Adj {
	if n := g.adjs[a].next; n != 0 {
		return n
	}
	return g.nodes[g.adjs[a].node].first
}

// CyclicPred returns the entry before a in cyclic order around its node.
func (g *Graph) CyclicPred(a Adj) Adj {
	if p := g.adjs[a].prev; p != 0 {
		return p
	}
	return g.nodes[g.adjs[a].node].last
}

// Adjs returns the adjacency entries of v in list order.
func (g *Graph) Adjs(v Node) []Adj {
	out := make([]Adj, 0, g.Degree(v))
	for a := g.nodes[v].first; a != 0; a = g.adjs[a].next {
		out = append(out, a)
	}
	return out
}

// SearchEdge returns an edge between v and w in either direction, or 0.
func (g *Graph) SearchEdge(v, w Node) Edge {
	for a := g.nodes[v].first; a != 0; a = g.adjs[a].next {
		if g.TwinNode(a) == w {
			return g.adjs[a].edge
		}
	}
	return 0
}

// NewNode adds an isolated node and returns its handle.
func (g *Graph) NewNode() Node {
	v := Node(len(g.nodes))
	g.nodes = append(g.nodes, nodeRec{alive: true, prev: g.lastNode})
	if g.lastNode != 0 {
		g.nodes[g.lastNode].next = v
	} else {
		g.firstNode = v
	}
	g.lastNode = v
	g.numNodes++
	return v
}

// NewEdge adds an edge from v to w. Both adjacency entries are appended to
// the end of their nodes' lists.
func (g *Graph) NewEdge(v, w Node) Edge {
	g.mustNode(v)
	g.mustNode(w)
	e := g.newEdgeRec(v, w)
	g.appendAdj(v, g.edges[e].adjSrc)
	g.appendAdj(w, g.edges[e].adjTgt)
	return e
}

// NewEdgeAt adds an edge from the node of adjSrc to the node of adjTgt. The
// new source entry is placed relative to adjSrc and the new target entry
// relative to adjTgt, both in direction dir.
func (g *Graph) NewEdgeAt(adjSrc, adjTgt Adj, dir Direction) Edge {
	g.mustAdj(adjSrc)
	g.mustAdj(adjTgt)
	e := g.newEdgeRec(g.adjs[adjSrc].node, g.adjs[adjTgt].node)
	g.insertAdj(g.edges[e].adjSrc, adjSrc, dir)
	g.insertAdj(g.edges[e].adjTgt, adjTgt, dir)
	return e
}

// DelEdge removes e.
func (g *Graph) DelEdge(e Edge) {
	g.mustEdge(e)
	er := g.edges[e]
	g.unlinkAdj(er.adjSrc)
	g.unlinkAdj(er.adjTgt)
	g.adjs[er.adjSrc].alive = false
	g.adjs[er.adjTgt].alive = false
	g.nodes[er.src].outdeg--
	g.nodes[er.tgt].indeg--
	g.unlinkEdge(e)
}

// DelNode removes v together with all incident edges.
func (g *Graph) DelNode(v Node) {
	g.mustNode(v)
	for a := g.nodes[v].first; a != 0; a = g.nodes[v].first {
		g.DelEdge(g.adjs[a].edge)
	}
	g.unlinkNode(v)
}

// ReverseEdge swaps source and target of e. Adjacency entries stay at their
// nodes, so the rotation system is unchanged.
func (g *Graph) ReverseEdge(e Edge) {
	g.mustEdge(e)
	er := &g.edges[e]
	g.nodes[er.src].outdeg--
	g.nodes[er.src].indeg++
	g.nodes[er.tgt].indeg--
	g.nodes[er.tgt].outdeg++
	er.src, er.tgt = er.tgt, er.src
	er.adjSrc, er.adjTgt = er.adjTgt, er.adjSrc
}

func (g *Graph) newEdgeRec(v, w Node) Edge {
	as := g.newAdj(v, 0)
	at := g.newAdj(w, 0)
	e := g.linkEdgeRec(v, w, as, at)
	g.nodes[v].outdeg++
	g.nodes[w].indeg++
	return e
}

// linkEdgeRec registers an edge between existing adjacency entries. Degree
// counters are left to the caller.
func (g *Graph) linkEdgeRec(v, w Node, as, at Adj) Edge {
	e := Edge(len(g.edges))
	g.adjs[as].edge, g.adjs[as].twin = e, at
	g.adjs[at].edge, g.adjs[at].twin = e, as
	g.edges = append(g.edges, edgeRec{alive: true, src: v, tgt: w, adjSrc: as, adjTgt: at, prev: g.lastEdge})
	if g.lastEdge != 0 {
		g.edges[g.lastEdge].next = e
	} else {
		g.firstEdge = e
	}
	g.lastEdge = e
	g.numEdges++
	return e
}

func (g *Graph) newAdj(v Node, e Edge) Adj {
	a := Adj(len(g.adjs))
	g.adjs = append(g.adjs, adjRec{alive: true, node: v, edge: e})
	return a
}

func (g *Graph) unlinkEdge(e Edge) {
	er := &g.edges[e]
	if er.prev != 0 {
		g.edges[er.prev].next = er.next
	} else {
		g.firstEdge = er.next
	}
	if er.next != 0 {
		g.edges[er.next].prev = er.prev
	} else {
		g.lastEdge = er.prev
	}
	er.alive = false
	er.prev, er.next = 0, 0
	g.numEdges--
}

func (g *Graph) unlinkNode(v Node) {
	nr := &g.nodes[v]
	if nr.prev != 0 {
		g.nodes[nr.prev].next = nr.next
	} else {
		g.firstNode = nr.next
	}
	if nr.next != 0 {
		g.nodes[nr.next].prev = nr.prev
	} else {
		g.lastNode = nr.prev
	}
	nr.alive = false
	nr.prev, nr.next = 0, 0
	g.numNodes--
}

func (g *Graph) mustNode(v Node) {
	if !g.HasNode(v) {
		panic(fmt.Sprintf("graph: node %d is not live", v))
	}
}

func (g *Graph) mustEdge(e Edge) {
	if !g.HasEdge(e) {
		panic(fmt.Sprintf("graph: edge %d is not live", e))
	}
}

func (g *Graph) mustAdj(a Adj) {
	if !g.HasAdj(a) {
		panic(fmt.Sprintf("graph: adjacency entry %d is not live", a))
	}
}
