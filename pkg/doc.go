// Package pkg provides the libraries behind planrep, a tool for building and
// editing planarized representations of graphs.
//
// # Overview
//
// A planarized expansion turns an original graph into a copy graph in which
// every edge crossing is a degree-4 dummy node and every split original node
// is a chain of copies joined by node split edges. Edges of the original are
// realized as paths through the copy graph and can be removed and reinserted
// along new routes. The pkg directory is organized into these areas:
//
//  1. [graph] - Handle-based graph storage with a rotation at every node
//  2. [embedding] - Faces of a rotation system and their incremental updates
//  3. [expansion] - The planarized expansion and its edit operations
//  4. [io] - JSON import of original graphs and export of expansions
//  5. [render] - DOT generation and Graphviz rendering
//  6. [pipeline] - Route scripts (load → run → render)
//  7. [cache], [observability], [errors], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through planrep:
//
//	Graph JSON + route script (TOML)
//	         ↓
//	    [io] package (original graph and identifiers)
//	         ↓
//	    [expansion] package (copy graph, paths, node splits)
//	         ↓
//	    [render] package (DOT, SVG, PNG)
//
// # Quick Start
//
// Reroute one edge across another and render the result:
//
//	import (
//	    "github.com/matzehuels/planrep/pkg/expansion"
//	    "github.com/matzehuels/planrep/pkg/io"
//	    "github.com/matzehuels/planrep/pkg/render"
//	)
//
//	d, _ := io.ImportJSON("square.json")
//	x := expansion.New(d.Graph, expansion.Options{})
//	x.InitComponent(0)
//
//	bd, _ := d.Edge("b->d")
//	ac, _ := d.Edge("a->c")
//	src, tgt := x.RemoveEdgePath(expansion.EdgeTarget(bd), nil)
//	x.InsertEdgePath(expansion.EdgeTarget(bd), expansion.Route{
//	    Start:     src,
//	    End:       tgt,
//	    Crossings: []expansion.Crossing{{Adj: x.Graph().AdjSource(x.CopyPath(ac)[0])}},
//	}, nil)
//
//	dot := render.ToDOT(x, d, render.Options{Detailed: true})
//
// The same edit as a route script, run with the [pipeline] package or the
// planrep CLI:
//
//	graph = "square.json"
//
//	[[step]]
//	op = "insert"
//	edge = "b->d"
//	crossings = [{ edge = "a->c" }]
//
// # Main Packages
//
// ## Graph Model
//
//   - [graph]: Nodes, edges and adjacency entries addressed by integer
//     handles. Handles are never reused, so callers may keep them across
//     edits.
//   - [embedding]: Right faces of every adjacency entry, face splitting and
//     joining, planarity of a rotation by Euler's formula.
//
// ## Expansion
//
//   - [expansion]: Copy graph bookkeeping, path removal and insertion, node
//     splits, pseudo crossings and the consistency check. Every edit takes an
//     optional embedding and keeps it valid when given.
//
// ## Surfaces
//
//   - [io]: JSON documents with node and edge identifiers
//   - [render]: DOT output with crossing and split styling
//   - [pipeline]: Route script decoding, step execution, cached rendering
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/graph
// [embedding]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/embedding
// [expansion]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/expansion
// [io]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/planrep/pkg/buildinfo
package pkg
