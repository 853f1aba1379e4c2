package expansion

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planrep/pkg/embedding"
	"github.com/matzehuels/planrep/pkg/graph"
)

// Options configures [New].
type Options struct {
	// Splittable lists the original nodes that may be split. Only nodes of
	// degree at least 4 are taken. Nil selects every node of degree at
	// least 4.
	Splittable []graph.Node

	// Logger receives debug records for component changes and path edits.
	// Nil discards them.
	Logger *log.Logger
}

// Target names the owner of a path: exactly one of an original edge or a
// node split.
type Target struct {
	Edge  graph.Edge
	Split *NodeSplit
}

// EdgeTarget returns the target for the path of original edge e.
func EdgeTarget(e graph.Edge) Target { return Target{Edge: e} }

// SplitTarget returns the target for the chain of node split ns.
func SplitTarget(ns *NodeSplit) Target { return Target{Split: ns} }

// IsZero reports whether t names no owner.
func (t Target) IsZero() bool { return t.Edge == 0 && t.Split == nil }

func (t Target) String() string {
	if t.Split != nil {
		return fmt.Sprintf("split(%p)", t.Split)
	}
	return fmt.Sprintf("edge(%d)", t.Edge)
}

// Embed is the embedding capability passed to the dual operations. With a
// nil *Embed an operation edits the copy graph only; otherwise it also keeps
// the faces of E up to date. SeparateDummy and ResolvePseudoCrossing take
// no Embed and leave an existing E stale; compute a new one after them.
type Embed struct {
	E *embedding.Embedding

	// NewFaces, if not nil, collects the faces created by path edits.
	NewFaces *embedding.FaceSet

	// Merged, if not nil, collects the copy nodes that absorbed another copy
	// of the same original node during path removal.
	Merged *graph.NodeSet
}

func (emb *Embed) addFace(f embedding.Face) {
	if emb.NewFaces != nil && f != 0 {
		emb.NewFaces.Insert(f)
	}
}

func (emb *Embed) removeFace(f embedding.Face) {
	if emb.NewFaces != nil {
		emb.NewFaces.Remove(f)
	}
}

func (emb *Embed) merge(kept, gone graph.Node) {
	if emb.Merged != nil {
		emb.Merged.Remove(gone)
		emb.Merged.Insert(kept)
	}
}

// NodeSplit is a chain of copy edges joining two copies of the same original
// node.
type NodeSplit struct {
	x          *Expansion
	path       edgeList
	prev, next *NodeSplit
	live       bool
}

// Source returns the first node of the chain.
func (ns *NodeSplit) Source() graph.Node { return ns.x.g.Source(ns.path.first) }

// Target returns the last node of the chain.
func (ns *NodeSplit) Target() graph.Node { return ns.x.g.Target(ns.path.last) }

// Path returns the copy edges of the chain in order.
func (ns *NodeSplit) Path() []graph.Edge { return ns.path.items(ns.x.elink) }

// Len returns the number of edges in the chain.
func (ns *NodeSplit) Len() int { return ns.path.size() }

// Live reports whether ns is still registered.
func (ns *NodeSplit) Live() bool { return ns.live }

type nodeInfo struct {
	link[graph.Node]
	orig       graph.Node
	splittable bool
}

type edgeInfo struct {
	link[graph.Edge]
	orig  graph.Edge
	split *NodeSplit
}

// Expansion is the planarized expansion of one connected component of an
// original graph. Its copy graph realizes every original edge as a path
// through crossing dummies and every split original node as several copies
// joined by node split chains.
//
// An Expansion is not safe for concurrent use.
type Expansion struct {
	orig *graph.Graph
	g    *graph.Graph

	numCC     int
	nodesInCC [][]graph.Node
	currentCC int

	splittableOrig map[graph.Node]bool

	vCopy map[graph.Node]*nodeList
	eCopy map[graph.Edge]*edgeList
	vInfo map[graph.Node]*nodeInfo
	eInfo map[graph.Edge]*edgeInfo

	firstSplit, lastSplit *NodeSplit
	numSplits             int

	elink  linker[graph.Edge]
	vlink  linker[graph.Node]
	logger *log.Logger
}

// New prepares the expansion of orig. It computes the connected components
// but builds no copy graph; call [Expansion.InitComponent] next.
//
// orig is never modified and must not be changed while the expansion is in
// use. New panics if orig contains self-loops.
func New(orig *graph.Graph, opts Options) *Expansion {
	if !graph.IsLoopFree(orig) {
		panic("expansion: original graph has self-loops")
	}
	x := &Expansion{
		orig:           orig,
		g:              graph.New(),
		currentCC:      -1,
		splittableOrig: make(map[graph.Node]bool),
		vCopy:          make(map[graph.Node]*nodeList),
		eCopy:          make(map[graph.Edge]*edgeList),
		vInfo:          make(map[graph.Node]*nodeInfo),
		eInfo:          make(map[graph.Edge]*edgeInfo),
		logger:         opts.Logger,
	}
	if x.logger == nil {
		x.logger = log.New(io.Discard)
	}
	x.elink = func(e graph.Edge) *link[graph.Edge] { return &x.ei(e).link }
	x.vlink = func(v graph.Node) *link[graph.Node] { return &x.ni(v).link }

	comp, n := graph.ConnectedComponents(orig)
	x.numCC = n
	x.nodesInCC = make([][]graph.Node, n)
	for _, v := range orig.Nodes() {
		x.nodesInCC[comp[v]] = append(x.nodesInCC[comp[v]], v)
	}

	splittable := opts.Splittable
	if splittable == nil {
		splittable = orig.Nodes()
	}
	for _, v := range splittable {
		if orig.Degree(v) >= 4 {
			x.splittableOrig[v] = true
		}
	}
	return x
}

// InitComponent discards the current copy graph and builds a fresh one for
// component i: one copy per original node and one single-edge path per
// original edge. The rotation at every copy follows its original. All node
// splits are dropped. It panics if i is out of range.
func (x *Expansion) InitComponent(i int) {
	if i < 0 || i >= x.numCC {
		panic(fmt.Sprintf("expansion: component %d out of range [0,%d)", i, x.numCC))
	}
	if x.currentCC >= 0 {
		for _, vOrig := range x.nodesInCC[x.currentCC] {
			delete(x.vCopy, vOrig)
			for a := x.orig.FirstAdj(vOrig); a != 0; a = x.orig.Succ(a) {
				delete(x.eCopy, x.orig.AdjEdge(a))
			}
		}
	}
	for ns := x.firstSplit; ns != nil; ns = ns.next {
		ns.live = false
	}
	x.firstSplit, x.lastSplit, x.numSplits = nil, nil, 0
	x.g.Clear()
	x.vInfo = make(map[graph.Node]*nodeInfo)
	x.eInfo = make(map[graph.Edge]*edgeInfo)
	x.currentCC = i

	nodes := x.nodesInCC[i]
	copyOf := make(map[graph.Node]graph.Node, len(nodes))
	for _, vOrig := range nodes {
		v := x.g.NewNode()
		copyOf[vOrig] = v
		info := x.ni(v)
		info.orig = vOrig
		info.splittable = x.splittableOrig[vOrig]
		l := &nodeList{}
		l.pushBack(x.vlink, v)
		x.vCopy[vOrig] = l
	}

	adjCopy := make(map[graph.Adj]graph.Adj)
	for _, vOrig := range nodes {
		for a := x.orig.FirstAdj(vOrig); a != 0; a = x.orig.Succ(a) {
			if !x.orig.IsSourceAdj(a) {
				continue
			}
			eOrig := x.orig.AdjEdge(a)
			e := x.g.NewEdge(copyOf[vOrig], copyOf[x.orig.Target(eOrig)])
			x.ei(e).orig = eOrig
			p := &edgeList{}
			p.pushBack(x.elink, e)
			x.eCopy[eOrig] = p
			adjCopy[a] = x.g.AdjSource(e)
			adjCopy[x.orig.AdjTarget(eOrig)] = x.g.AdjTarget(e)
		}
	}
	for _, vOrig := range nodes {
		var prev graph.Adj
		for a := x.orig.FirstAdj(vOrig); a != 0; a = x.orig.Succ(a) {
			c := adjCopy[a]
			if prev == 0 {
				x.g.MoveAdjBefore(c, x.g.FirstAdj(copyOf[vOrig]))
			} else {
				x.g.MoveAdjAfter(c, prev)
			}
			prev = c
		}
	}

	x.logger.Debug("component initialized",
		"component", i,
		"nodes", x.g.NodeCount(),
		"edges", x.g.EdgeCount())
}

// Original returns the original graph.
func (x *Expansion) Original() *graph.Graph { return x.orig }

// Graph returns the copy graph. Edit it only through the Expansion.
func (x *Expansion) Graph() *graph.Graph { return x.g }

// ComponentCount returns the number of connected components of the original
// graph.
func (x *Expansion) ComponentCount() int { return x.numCC }

// CurrentComponent returns the index of the active component, or -1 before
// the first call to [Expansion.InitComponent].
func (x *Expansion) CurrentComponent() int { return x.currentCC }

// NodesInComponent returns the original nodes of component i.
func (x *Expansion) NodesInComponent(i int) []graph.Node {
	return append([]graph.Node(nil), x.nodesInCC[i]...)
}

// OrigNode returns the original of copy node v, or 0 for a crossing dummy.
func (x *Expansion) OrigNode(v graph.Node) graph.Node { return x.node(v).orig }

// OrigEdge returns the original edge whose path contains copy edge e, or 0
// if e belongs to a node split.
func (x *Expansion) OrigEdge(e graph.Edge) graph.Edge { return x.edge(e).orig }

// SplitOf returns the node split whose chain contains e, or nil.
func (x *Expansion) SplitOf(e graph.Edge) *NodeSplit { return x.edge(e).split }

// Owner returns the path owner of copy edge e.
func (x *Expansion) Owner(e graph.Edge) Target {
	info := x.edge(e)
	return Target{Edge: info.orig, Split: info.split}
}

// IsDummy reports whether v represents no original node.
func (x *Expansion) IsDummy(v graph.Node) bool { return x.node(v).orig == 0 }

// IsSplittable reports whether copy node v may take part in a node split.
func (x *Expansion) IsSplittable(v graph.Node) bool { return x.node(v).splittable }

// IsSplittableOrig reports whether original node v may be split.
func (x *Expansion) IsSplittableOrig(v graph.Node) bool { return x.splittableOrig[v] }

// Copies returns the copy nodes of original node vOrig in order.
func (x *Expansion) Copies(vOrig graph.Node) []graph.Node {
	l := x.vCopy[vOrig]
	if l == nil {
		return nil
	}
	return l.items(x.vlink)
}

// Copy returns the first copy of original node vOrig, or 0.
func (x *Expansion) Copy(vOrig graph.Node) graph.Node {
	if l := x.vCopy[vOrig]; l != nil {
		return l.first
	}
	return 0
}

// CopyPath returns the copy edges realizing original edge eOrig in order.
func (x *Expansion) CopyPath(eOrig graph.Edge) []graph.Edge {
	p := x.eCopy[eOrig]
	if p == nil {
		return nil
	}
	return p.items(x.elink)
}

// Path returns the copy edges owned by t in order.
func (x *Expansion) Path(t Target) []graph.Edge {
	return x.mustChain(t).items(x.elink)
}

// NodeSplits returns the registered node splits in creation order.
func (x *Expansion) NodeSplits() []*NodeSplit {
	out := make([]*NodeSplit, 0, x.numSplits)
	for ns := x.firstSplit; ns != nil; ns = ns.next {
		out = append(out, ns)
	}
	return out
}

// SplitNodeCount returns the number of original nodes that currently have
// more than one copy.
func (x *Expansion) SplitNodeCount() int {
	if x.currentCC < 0 {
		return 0
	}
	n := 0
	for _, vOrig := range x.nodesInCC[x.currentCC] {
		if x.vCopy[vOrig].size() >= 2 {
			n++
		}
	}
	return n
}

// CrossingCount returns the number of copy nodes without an original.
func (x *Expansion) CrossingCount() int {
	n := 0
	for _, v := range x.g.Nodes() {
		if x.node(v).orig == 0 {
			n++
		}
	}
	return n
}

// node and edge read the bookkeeping of a copy element without creating it.
func (x *Expansion) node(v graph.Node) nodeInfo {
	if info := x.vInfo[v]; info != nil {
		return *info
	}
	return nodeInfo{}
}

func (x *Expansion) edge(e graph.Edge) edgeInfo {
	if info := x.eInfo[e]; info != nil {
		return *info
	}
	return edgeInfo{}
}

func (x *Expansion) ni(v graph.Node) *nodeInfo {
	info := x.vInfo[v]
	if info == nil {
		info = &nodeInfo{}
		x.vInfo[v] = info
	}
	return info
}

func (x *Expansion) ei(e graph.Edge) *edgeInfo {
	info := x.eInfo[e]
	if info == nil {
		info = &edgeInfo{}
		x.eInfo[e] = info
	}
	return info
}

// chainOf returns the path that owns e, or nil for an unowned edge.
func (x *Expansion) chainOf(e graph.Edge) *edgeList {
	info := x.ei(e)
	switch {
	case info.orig != 0:
		return x.eCopy[info.orig]
	case info.split != nil:
		return &info.split.path
	}
	return nil
}

func (x *Expansion) mustChain(t Target) *edgeList {
	switch {
	case t.Edge != 0 && t.Split == nil:
		p := x.eCopy[t.Edge]
		if p == nil {
			panic(fmt.Sprintf("expansion: original edge %d is not in the current component", t.Edge))
		}
		return p
	case t.Edge == 0 && t.Split != nil:
		if !t.Split.live {
			panic("expansion: node split is no longer registered")
		}
		return &t.Split.path
	}
	panic("expansion: target must name exactly one of an original edge or a node split")
}

func (x *Expansion) setOwner(e graph.Edge, t Target) {
	info := x.ei(e)
	info.orig, info.split = t.Edge, t.Split
}

// appendTo adds e to the back of the path of t.
func (x *Expansion) appendTo(t Target, c *edgeList, e graph.Edge) {
	c.pushBack(x.elink, e)
	x.setOwner(e, t)
}

// addCopy registers the fresh node v as a split copy of vOrig.
func (x *Expansion) addCopy(v, vOrig graph.Node) {
	info := x.ni(v)
	info.orig = vOrig
	info.splittable = true
	x.vCopy[vOrig].pushBack(x.vlink, v)
}

func (x *Expansion) removeCopy(v graph.Node) {
	x.vCopy[x.ni(v).orig].remove(x.vlink, v)
}

func (x *Expansion) newSplit() *NodeSplit {
	ns := &NodeSplit{x: x, live: true, prev: x.lastSplit}
	if x.lastSplit != nil {
		x.lastSplit.next = ns
	} else {
		x.firstSplit = ns
	}
	x.lastSplit = ns
	x.numSplits++
	return ns
}

func (x *Expansion) delSplit(ns *NodeSplit) {
	if ns.prev != nil {
		ns.prev.next = ns.next
	} else {
		x.firstSplit = ns.next
	}
	if ns.next != nil {
		ns.next.prev = ns.prev
	} else {
		x.lastSplit = ns.prev
	}
	ns.prev, ns.next = nil, nil
	ns.live = false
	x.numSplits--
}
