// Package graph provides a directed multigraph with a rotation system.
//
// # Overview
//
// Every node keeps its incident adjacency entries in a doubly linked list
// whose cyclic order fixes a combinatorial embedding. Nodes, edges and
// adjacency entries are addressed by integer handles ([Node], [Edge], [Adj])
// that are never reused; the zero handle means "none". Handles can be used as
// map keys by higher layers that attach data to graph elements.
//
// # Basic Usage
//
//	g := graph.New()
//	a, b := g.NewNode(), g.NewNode()
//	e := g.NewEdge(a, b)
//	u := g.Source(g.Split(e)) // a -> u -> b
//
// # Local Edits
//
// Besides creating and deleting elements, the package offers the local edits
// needed for planarization:
//
//   - [Graph.Split] and [Graph.Unsplit] subdivide an edge and undo it
//   - [Graph.Contract] merges the endpoints of an edge
//   - [Graph.SplitNode] splits a node along a partition of its rotation
//   - [Graph.MoveSourceAt], [Graph.MoveTargetAt] and friends reattach edge ends
//   - [Graph.ReverseEdge] flips an edge without touching the rotation
//
// All of them keep the cyclic order at the nodes they do not touch, so an
// embedding maintained on top of the graph stays valid.
//
// # Validation
//
// [Graph.Validate] checks the internal linkage and counters. Misuse of the
// editing API (dead handles, entries at the wrong node) panics, because it is
// a programming error rather than a data error.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Readers may share a graph as long
// as nobody modifies it.
package graph
