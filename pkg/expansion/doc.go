// Package expansion maintains the planarized expansion of a graph: a copy
// graph in which original edges become paths through crossing dummies and
// original nodes may be split into several copies.
//
// # Overview
//
// The expansion works on one connected component of the original graph at a
// time. [Expansion.InitComponent] builds a copy with one node per original
// node and one single-edge path per original edge. Crossing minimization
// heuristics then remove paths and insert them again along cheaper routes:
//
//	x := expansion.New(g, expansion.Options{})
//	x.InitComponent(0)
//
//	t := expansion.EdgeTarget(e)
//	src, tgt := x.RemoveEdgePath(t, nil)
//	x.InsertEdgePath(t, expansion.Route{
//	    Start:     src,
//	    End:       tgt,
//	    Crossings: []expansion.Crossing{{Adj: a}},
//	}, nil)
//
// Each crossing subdivides the crossed copy edge with a dummy node of degree
// 4. A crossing may also split the node it passes through; the two copies of
// that node are then joined by a [NodeSplit] chain, which the path crosses.
//
// # Paths and Owners
//
// Every copy edge belongs to exactly one path: the path of an original edge
// or the chain of a node split. A [Target] names either kind of owner, and
// [Expansion.Owner] returns the owner of an edge. Node split operations
// move edges between owners while keeping each path connected.
//
// # Embedded Edits
//
// The path and split operations take an optional [*Embed]. With nil they
// edit the copy graph only. With an [Embed] wrapping an
// [embedding.Embedding] of the copy graph they also keep its faces up to
// date, and report new faces and merged nodes in the sets of the Embed.
//
// # Debugging
//
// [Expansion.Check] verifies every structural invariant and returns the
// first violation as an error wrapping one of the Err values of this
// package.
package expansion
