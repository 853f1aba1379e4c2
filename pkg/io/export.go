package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
	"github.com/matzehuels/planrep/pkg/graph"
)

// Node kinds in an expansion snapshot.
const (
	KindOriginal = "original"
	KindCopy     = "copy"
	KindCrossing = "crossing"
)

// Snapshot is the JSON form of the copy graph of an expansion.
type Snapshot struct {
	Component  int            `json:"component"`
	Crossings  int            `json:"crossings"`
	SplitNodes int            `json:"split_nodes"`
	Nodes      []SnapshotNode `json:"nodes"`
	Edges      []SnapshotEdge `json:"edges"`
}

// SnapshotNode is one copy node. Orig names the original node; it is empty
// for crossings.
type SnapshotNode struct {
	ID   int    `json:"id"`
	Kind string `json:"kind"`
	Orig string `json:"orig,omitempty"`
}

// SnapshotEdge is one copy edge. Exactly one of Orig and Split names its
// owner; Split is the 1-based position of the node split.
type SnapshotEdge struct {
	ID    int    `json:"id"`
	From  int    `json:"from"`
	To    int    `json:"to"`
	Orig  string `json:"orig,omitempty"`
	Split int    `json:"split,omitempty"`
}

// NewSnapshot captures the current copy graph of x, naming originals
// through d.
func NewSnapshot(x *expansion.Expansion, d *Document) Snapshot {
	g := x.Graph()
	splitIndex := make(map[*expansion.NodeSplit]int)
	for i, ns := range x.NodeSplits() {
		splitIndex[ns] = i + 1
	}

	s := Snapshot{
		Component:  x.CurrentComponent(),
		Crossings:  x.CrossingCount(),
		SplitNodes: x.SplitNodeCount(),
		Nodes:      make([]SnapshotNode, 0, g.NodeCount()),
		Edges:      make([]SnapshotEdge, 0, g.EdgeCount()),
	}
	for _, v := range g.Nodes() {
		s.Nodes = append(s.Nodes, SnapshotNode{
			ID:   int(v),
			Kind: NodeKind(x, v),
			Orig: d.NodeIDs[x.OrigNode(v)],
		})
	}
	for _, e := range g.Edges() {
		se := SnapshotEdge{ID: int(e), From: int(g.Source(e)), To: int(g.Target(e))}
		if o := x.OrigEdge(e); o != 0 {
			se.Orig = d.EdgeIDs[o]
		} else if ns := x.SplitOf(e); ns != nil {
			se.Split = splitIndex[ns]
		}
		s.Edges = append(s.Edges, se)
	}
	return s
}

// NodeKind classifies copy node v: a crossing dummy, one of several copies
// of a split original node, or the only copy of its original.
func NodeKind(x *expansion.Expansion, v graph.Node) string {
	switch {
	case x.IsDummy(v):
		return KindCrossing
	case len(x.Copies(x.OrigNode(v))) > 1:
		return KindCopy
	}
	return KindOriginal
}

// WriteExpansion encodes a [Snapshot] of x as indented JSON.
func WriteExpansion(x *expansion.Expansion, d *Document, w io.Writer) error {
	return encode(w, NewSnapshot(x, d))
}

// ExportExpansion writes a [Snapshot] of x to a JSON file at path.
func ExportExpansion(x *expansion.Expansion, d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteExpansion(x, d, f)
}

// WriteJSON encodes the original graph of d in the format read by
// [ReadJSON], including explicit edge ids, splittable flags and rotations,
// so that a round trip keeps the embedding.
func WriteJSON(d *Document, w io.Writer) error {
	g := d.Graph
	flagged := make(map[graph.Node]bool, len(d.Splittable))
	for _, v := range d.Splittable {
		flagged[v] = true
	}

	out := document{
		Nodes: make([]node, 0, g.NodeCount()),
		Edges: make([]edge, 0, g.EdgeCount()),
	}
	for _, v := range g.Nodes() {
		n := node{ID: d.NodeIDs[v]}
		if d.Splittable != nil {
			s := flagged[v]
			n.Splittable = &s
		}
		for _, a := range g.Adjs(v) {
			n.Rotation = append(n.Rotation, d.EdgeIDs[g.AdjEdge(a)])
		}
		out.Nodes = append(out.Nodes, n)
	}
	for _, e := range g.Edges() {
		from, to := d.NodeIDs[g.Source(e)], d.NodeIDs[g.Target(e)]
		ed := edge{From: from, To: to}
		if id := d.EdgeIDs[e]; id != EdgeName(from, to) {
			ed.ID = id
		}
		out.Edges = append(out.Edges, ed)
	}
	return encode(w, out)
}

// ExportJSON writes the original graph of d to a JSON file at path.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
