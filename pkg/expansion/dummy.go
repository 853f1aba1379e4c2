package expansion

import (
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

// ConvertDummy turns the crossing dummy u into a copy of vOrig. Both paths
// through u must have a copy of vOrig at one end; the part of each path
// between that copy and u becomes a node split. The first part goes to ns0,
// which must be empty, or to a new split if ns0 is nil. The split created
// for the second part is returned.
func (x *Expansion) ConvertDummy(u, vOrig graph.Node, ns0 *NodeSplit) *NodeSplit {
	if x.g.InDegree(u) != 2 || x.g.OutDegree(u) != 2 || x.ni(u).orig != 0 {
		panic(fmt.Sprintf("expansion: node %d is not a crossing dummy", u))
	}
	if ns0 == nil {
		ns0 = x.newSplit()
	} else if !ns0.live || ns0.path.size() != 0 {
		panic("expansion: ConvertDummy needs an empty registered split")
	}
	x.addCopy(u, vOrig)

	var out []graph.Edge
	for a := x.g.FirstAdj(u); a != 0; a = x.g.Succ(a) {
		if x.g.IsSourceAdj(a) {
			out = append(out, x.g.AdjEdge(a))
		}
	}
	x.cutPath(out[0], vOrig, ns0)
	ns1 := x.newSplit()
	x.cutPath(out[1], vOrig, ns1)
	return ns1
}

// cutPath cuts the path of e in front of e and hands the half that reaches
// a copy of vOrig to ns.
func (x *Expansion) cutPath(e graph.Edge, vOrig graph.Node, ns *NodeSplit) {
	path := x.chainOf(e)
	front := x.ni(x.g.Source(path.first)).orig
	tail := path.splitAt(x.elink, e)
	if front == vOrig {
		ns.path = *path
		*path = tail
	} else {
		ns.path = tail
	}
	x.relabel(ns)
}

// SeparateDummy detaches the path running straight through the dummy node
// of adj1 and adj2 onto a new copy v of vStraight's original. The section of
// that path between vStraight and v becomes a new node split. A new unowned
// edge joining v and the dummy is returned, from v if isSrc is set and to v
// otherwise; it is meant as [Route.SrcEdge] or [Route.TgtEdge] of the next
// insertion.
func (x *Expansion) SeparateDummy(adj1, adj2 graph.Adj, vStraight graph.Node, isSrc bool) graph.Edge {
	u := x.g.AdjNode(adj1)
	if x.ni(u).orig != 0 || x.g.AdjNode(adj2) != u {
		panic(fmt.Sprintf("expansion: entries %d and %d are not at one dummy", adj1, adj2))
	}
	v := x.g.NewNode()
	x.addCopy(v, x.ni(vStraight).orig)

	e1 := x.g.AdjEdge(adj1)
	for _, a := range []graph.Adj{adj1, adj2} {
		if e := x.g.AdjEdge(a); x.g.IsSourceAdj(a) {
			x.g.MoveSource(e, v)
		} else {
			x.g.MoveTarget(e, v)
		}
	}

	var eNew graph.Edge
	if isSrc {
		eNew = x.g.NewEdge(v, u)
	} else {
		eNew = x.g.NewEdge(u, v)
	}
	x.ei(eNew)

	ns := x.newSplit()
	path := x.chainOf(e1)
	if vStraight == x.g.Source(path.first) {
		for y := path.first; x.g.Source(y) != v; y = path.first {
			path.remove(x.elink, y)
			ns.path.pushBack(x.elink, y)
		}
	} else {
		for y := path.last; x.g.Target(y) != v; y = path.last {
			path.remove(x.elink, y)
			ns.path.pushFront(x.elink, y)
		}
	}
	x.relabel(ns)
	return eNew
}

// IsPseudoCrossing reports whether the dummy v is not a real crossing: two
// rotation-consecutive edges at v belong to the same path, so the two paths
// touch without passing through each other.
func (x *Expansion) IsPseudoCrossing(v graph.Node) bool {
	if x.node(v).orig != 0 || x.g.Degree(v) != 4 {
		return false
	}
	adj1 := x.g.FirstAdj(v)
	adj2 := x.g.Succ(adj1)
	adj3 := x.g.Succ(adj2)
	return x.sameOwner(adj1, adj2) || x.sameOwner(adj3, adj2)
}

func (x *Expansion) sameOwner(a, b graph.Adj) bool {
	return x.Owner(x.g.AdjEdge(a)) == x.Owner(x.g.AdjEdge(b))
}

// ResolvePseudoCrossing removes the pseudo crossing v. Each path through v
// is shortened by one edge and reconnected past v, and v is deleted. The
// copy graph is edited directly, so any embedding must be recomputed.
func (x *Expansion) ResolvePseudoCrossing(v graph.Node) {
	if !x.IsPseudoCrossing(v) {
		panic(fmt.Sprintf("expansion: node %d is not a pseudo crossing", v))
	}
	var in []graph.Edge
	for a := x.g.FirstAdj(v); a != 0; a = x.g.Succ(a) {
		if !x.g.IsSourceAdj(a) {
			in = append(in, x.g.AdjEdge(a))
		}
	}
	for _, e := range in {
		c := x.chainOf(e)
		eNext := c.succ(x.elink, e)
		x.g.MoveSourceAt(eNext, x.g.AdjSource(e), graph.After)
		c.remove(x.elink, e)
		x.delEdge(e, nil)
	}
	x.g.DelNode(v)
	delete(x.vInfo, v)
}
