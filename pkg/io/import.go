package io

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/graph"
)

type document struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID         string   `json:"id"`
	Splittable *bool    `json:"splittable,omitempty"`
	Rotation   []string `json:"rotation,omitempty"`
}

type edge struct {
	ID   string `json:"id,omitempty"`
	From string `json:"from"`
	To   string `json:"to"`
}

// EdgeName returns the default identifier of an edge between the nodes
// named from and to.
func EdgeName(from, to string) string { return from + "->" + to }

// Document is an original graph together with the identifiers it was read
// with.
type Document struct {
	Graph *graph.Graph

	NodeIDs map[graph.Node]string
	EdgeIDs map[graph.Edge]string

	// Splittable lists the nodes flagged "splittable": true, or is nil
	// when no node carries the flag.
	Splittable []graph.Node

	nodes map[string]graph.Node
	edges map[string]graph.Edge
}

// Node returns the node named id.
func (d *Document) Node(id string) (graph.Node, error) {
	if v, ok := d.nodes[id]; ok {
		return v, nil
	}
	return 0, errs.New(errs.ErrCodeNodeNotFound, "unknown node %q", id)
}

// Edge returns the edge named id.
func (d *Document) Edge(id string) (graph.Edge, error) {
	if e, ok := d.edges[id]; ok {
		return e, nil
	}
	return 0, errs.New(errs.ErrCodeEdgeNotFound, "unknown edge %q", id)
}

// ReadJSON decodes an original graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
//	  "edges": [{"from": "a", "to": "b"}, {"id": "back", "from": "c", "to": "a"}]
//	}
//
// Each node must have an "id" field. Optional fields:
//   - splittable: whether the node may be split
//   - rotation: the cyclic order of the node's incident edges, by edge id
//
// Each edge must have "from" and "to" fields that reference node IDs. Its
// id defaults to "from->to".
//
// ReadJSON returns an error if:
//   - The JSON is malformed or invalid (INVALID_FORMAT)
//   - An identifier is empty or malformed (INVALID_IDENTIFIER)
//   - A node or edge id is used twice (INVALID_GRAPH)
//   - An edge references an unknown node ID (NODE_NOT_FOUND)
//   - An edge is a self-loop (INVALID_GRAPH)
//   - A rotation does not list exactly the incident edges (INVALID_GRAPH)
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode")
	}

	d := &Document{
		Graph:   graph.New(),
		NodeIDs: make(map[graph.Node]string, len(data.Nodes)),
		EdgeIDs: make(map[graph.Edge]string, len(data.Edges)),
		nodes:   make(map[string]graph.Node, len(data.Nodes)),
		edges:   make(map[string]graph.Edge, len(data.Edges)),
	}
	g := d.Graph

	for _, n := range data.Nodes {
		if err := errs.ValidateIdentifier(n.ID); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidIdentifier, err, "node %q", n.ID)
		}
		if _, dup := d.nodes[n.ID]; dup {
			return nil, errs.New(errs.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		v := g.NewNode()
		d.nodes[n.ID] = v
		d.NodeIDs[v] = n.ID
		if n.Splittable != nil && *n.Splittable {
			d.Splittable = append(d.Splittable, v)
		} else if n.Splittable != nil && d.Splittable == nil {
			d.Splittable = []graph.Node{}
		}
	}

	for _, e := range data.Edges {
		from, err := d.Node(e.From)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNodeNotFound, err, "edge %s", EdgeName(e.From, e.To))
		}
		to, err := d.Node(e.To)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeNodeNotFound, err, "edge %s", EdgeName(e.From, e.To))
		}
		if from == to {
			return nil, errs.New(errs.ErrCodeInvalidGraph, "edge %s is a self-loop", EdgeName(e.From, e.To))
		}
		id := e.ID
		if id == "" {
			id = EdgeName(e.From, e.To)
		} else if err := errs.ValidateIdentifier(id); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidIdentifier, err, "edge %q", id)
		}
		if _, dup := d.edges[id]; dup {
			return nil, errs.New(errs.ErrCodeInvalidGraph, "duplicate edge id %q", id)
		}
		ge := g.NewEdge(from, to)
		d.edges[id] = ge
		d.EdgeIDs[ge] = id
	}

	for _, n := range data.Nodes {
		if n.Rotation != nil {
			if err := d.applyRotation(d.nodes[n.ID], n.Rotation); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// applyRotation reorders the adjacency list of v to follow the named edges.
func (d *Document) applyRotation(v graph.Node, rotation []string) error {
	g := d.Graph
	if len(rotation) != g.Degree(v) {
		return errs.New(errs.ErrCodeInvalidGraph, "rotation of %q lists %d edges, node has %d",
			d.NodeIDs[v], len(rotation), g.Degree(v))
	}
	seen := make(map[graph.Edge]bool, len(rotation))
	var prev graph.Adj
	for _, id := range rotation {
		e, err := d.Edge(id)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidGraph, err, "rotation of %q", d.NodeIDs[v])
		}
		var a graph.Adj
		switch v {
		case g.Source(e):
			a = g.AdjSource(e)
		case g.Target(e):
			a = g.AdjTarget(e)
		default:
			return errs.New(errs.ErrCodeInvalidGraph, "rotation of %q names edge %q not incident to it", d.NodeIDs[v], id)
		}
		if seen[e] {
			return errs.New(errs.ErrCodeInvalidGraph, "rotation of %q names edge %q twice", d.NodeIDs[v], id)
		}
		seen[e] = true
		if prev == 0 {
			g.MoveAdjBefore(a, g.FirstAdj(v))
		} else {
			g.MoveAdjAfter(a, prev)
		}
		prev = a
	}
	return nil
}

// ImportJSON reads the JSON graph file at path with [ReadJSON].
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
