package expansion

import (
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

// PrepareNodeSplit reorders the entries of one node so that partition forms
// a contiguous block starting at partition[0]. It returns the boundaries to
// pass to [Expansion.SplitNode]: the partition stays at the node and the
// remaining entries move to the new copy.
//
// It panics if partition is empty or names every entry of the node.
func (x *Expansion) PrepareNodeSplit(partition []graph.Adj) (adjLeft, adjRight graph.Adj) {
	if len(partition) == 0 {
		panic("expansion: empty partition")
	}
	v := x.g.AdjNode(partition[0])
	if len(partition) >= x.g.Degree(v) {
		panic(fmt.Sprintf("expansion: partition covers all %d entries of node %d", x.g.Degree(v), v))
	}
	adj := partition[0]
	for _, a := range partition[1:] {
		x.g.MoveAdjAfter(a, adj)
		adj = a
	}
	return partition[0], x.g.CyclicSucc(adj)
}

// SplitNode splits a copy node in two. The entries from adjRight up to
// adjLeft move to a new copy of the same original node, joined to the old
// copy by a new split edge. The split is registered and returned.
//
// It panics if the node is not splittable.
func (x *Expansion) SplitNode(adjLeft, adjRight graph.Adj, emb *Embed) *NodeSplit {
	v := x.g.AdjNode(adjLeft)
	info := x.ni(v)
	if !info.splittable {
		panic(fmt.Sprintf("expansion: node %d is not splittable", v))
	}
	var w graph.Node
	if emb != nil {
		w = emb.E.SplitNode(adjLeft, adjRight)
	} else {
		w = x.g.SplitNode(adjLeft, adjRight)
	}
	x.addCopy(w, info.orig)

	ns := x.newSplit()
	ns.path.pushBack(x.elink, x.g.AdjEdge(x.g.CyclicPred(adjLeft)))
	x.setOwner(ns.path.first, SplitTarget(ns))

	x.logger.Debug("node split",
		"orig", info.orig,
		"copies", x.vCopy[info.orig].size())
	return ns
}

// EnlargeSplit subdivides e, an edge on the path of an original edge
// incident to the original of v, and makes the new node another copy of
// that original. The part of the path between v and the new copy becomes a
// new node split. It returns the new edge.
func (x *Expansion) EnlargeSplit(v graph.Node, e graph.Edge, emb *Embed) graph.Edge {
	vOrig := x.ni(v).orig
	eOrig := x.ei(e).orig
	if eOrig == 0 {
		panic(fmt.Sprintf("expansion: edge %d is not on the path of an original edge", e))
	}
	eNew := x.Split(e, emb)
	x.addCopy(x.g.Target(e), vOrig)

	ns := x.newSplit()
	path := x.eCopy[eOrig]
	if v == x.g.Source(path.first) {
		tail := path.splitAt(x.elink, eNew)
		ns.path = *path
		*path = tail
	} else {
		ns.path = path.splitAt(x.elink, eNew)
	}
	x.relabel(ns)
	return eNew
}

// SplitNodeSplit subdivides e, an edge of a node split chain, with a new
// copy of the split's original node. The chain is cut there into two
// splits. It returns the new edge, which starts the second split.
func (x *Expansion) SplitNodeSplit(e graph.Edge, emb *Embed) graph.Edge {
	ns := x.ei(e).split
	if ns == nil {
		panic(fmt.Sprintf("expansion: edge %d is not on a node split", e))
	}
	vOrig := x.ni(ns.Source()).orig
	eNew := x.Split(e, emb)
	x.addCopy(x.g.Target(e), vOrig)

	nsNew := x.newSplit()
	nsNew.path = ns.path.splitAt(x.elink, eNew)
	x.relabel(nsNew)
	return eNew
}

// ContractSplit contracts a node split of length one, merging its target
// copy into its source copy.
func (x *Expansion) ContractSplit(ns *NodeSplit, emb *Embed) {
	if ns.path.size() != 1 {
		panic(fmt.Sprintf("expansion: cannot contract split of length %d", ns.path.size()))
	}
	e := ns.path.first
	x.removeCopy(x.g.Target(e))
	x.delSplit(ns)
	x.contract(e, emb)
}

// UnsplitExpandNode dissolves the copy node u of degree 2, where eContract
// belongs to a node split and eExpand to another path. The split's chain is
// appended to that path, so the other path is extended up to the far end of
// the split. It returns the edge that survives at the junction.
func (x *Expansion) UnsplitExpandNode(u graph.Node, eContract, eExpand graph.Edge, emb *Embed) graph.Edge {
	ns := x.ei(eContract).split
	if ns == nil {
		panic(fmt.Sprintf("expansion: edge %d is not on a node split", eContract))
	}
	owner := x.Owner(eExpand)
	pathExp := x.mustChain(owner)

	if (x.g.Target(eExpand) == u && x.g.Source(eContract) != u) ||
		(x.g.Source(eExpand) == u && x.g.Target(eContract) != u) {
		for _, e := range ns.path.items(x.elink) {
			x.reverse(e, emb)
		}
		ns.path.reverse(x.elink)
	}

	x.removeCopy(u)

	var ret graph.Edge
	if x.g.Target(eExpand) == u {
		ret = eExpand
		x.Unsplit(eExpand, eContract, emb)
		x.relabelTo(&ns.path, owner)
		pathExp.concat(x.elink, &ns.path)
	} else {
		ret = eContract
		x.Unsplit(eContract, eExpand, emb)
		x.relabelTo(&ns.path, owner)
		pathExp.concatFront(x.elink, &ns.path)
	}
	x.delSplit(ns)
	return ret
}

// RemoveSelfLoop deletes the self-loop e at a dummy node u and dissolves u,
// which must be left with two edges.
func (x *Expansion) RemoveSelfLoop(e graph.Edge, emb *Embed) {
	if !x.g.IsSelfLoop(e) {
		panic(fmt.Sprintf("expansion: edge %d is not a self-loop", e))
	}
	u := x.g.Source(e)
	if c := x.chainOf(e); c != nil {
		c.remove(x.elink, e)
	}
	x.delEdge(e, emb)

	eIn := x.g.AdjEdge(x.g.FirstAdj(u))
	eOut := x.g.AdjEdge(x.g.LastAdj(u))
	if x.g.Target(eIn) != u {
		eIn, eOut = eOut, eIn
	}
	x.Unsplit(eIn, eOut, emb)
}

// relabel marks every edge of the chain of ns as owned by ns.
func (x *Expansion) relabel(ns *NodeSplit) {
	x.relabelTo(&ns.path, SplitTarget(ns))
}

func (x *Expansion) relabelTo(c *edgeList, t Target) {
	for e := c.first; e != 0; e = c.succ(x.elink, e) {
		x.setOwner(e, t)
	}
}
