// Package embedding maintains the faces of a combinatorial embedding.
//
// # Overview
//
// An [Embedding] wraps a [graph.Graph] and reads its rotation system as a
// planar embedding. Every adjacency entry bounds exactly one face, the face
// to its right, and the boundary of a face is the cycle obtained by
// repeatedly applying [Embedding.FaceCycleSucc].
//
// # Face-preserving Edits
//
// The embedding offers the local edits of package graph in a form that also
// updates the faces:
//
//   - [Embedding.Split], [Embedding.Unsplit] and [Embedding.Contract]
//   - [Embedding.SplitNode] and [Embedding.ReverseEdge]
//   - [Embedding.SplitFace] inserts an edge through a face
//   - [Embedding.JoinFaces] deletes an edge and merges its faces
//
// Editing the graph directly while an Embedding is attached leaves the face
// data stale; call [Embedding.Compute] to rebuild it.
//
// # Validation
//
// [Embedding.Validate] retraces all faces and compares them to the stored
// assignment. [Embedding.IsPlanar] checks Euler's formula.
package embedding
