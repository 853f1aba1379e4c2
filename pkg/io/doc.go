// Package io reads original graphs from JSON and writes graphs and
// expansion snapshots back out.
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "v", "splittable": true, "rotation": ["v->a", "v->b", "c->v", "v->d"]},
//	    {"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}
//	  ],
//	  "edges": [
//	    {"from": "v", "to": "a"},
//	    {"from": "v", "to": "b"},
//	    {"from": "c", "to": "v"},
//	    {"id": "vd", "from": "v", "to": "d"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//
// Optional:
//   - splittable: Whether the node may be split. If no node carries the
//     flag, every node of degree at least 4 is splittable.
//   - rotation: Cyclic order of the incident edges by edge id. Nodes
//     without a rotation keep the order in which their edges are listed.
//
// Edges are named "from->to" unless they carry an explicit "id"; parallel
// edges need one.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both return a [Document] that maps identifiers to
// graph handles and back. Errors are [*errors.Error] values whose code
// tells malformed JSON, bad identifiers and invalid graphs apart.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the original graph, rotations
// included, so that import and export round-trip. [WriteExpansion] and
// [ExportExpansion] write a [Snapshot] of an expansion's copy graph, with
// every node classified as original, split copy or crossing and every edge
// labelled with its owner.
//
// # Concurrency
//
// A [Document] is not safe for concurrent modification. Readers may share
// it once ReadJSON has returned.
//
// [*errors.Error]: github.com/matzehuels/planrep/pkg/errors.Error
package io
