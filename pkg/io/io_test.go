package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
)

const k4 = `{
  "nodes": [
    {"id": "v", "rotation": ["c->v", "v->a", "v->b"]},
    {"id": "a"}, {"id": "b"}, {"id": "c"}
  ],
  "edges": [
    {"from": "v", "to": "a"},
    {"from": "v", "to": "b"},
    {"from": "c", "to": "v"},
    {"id": "ab", "from": "a", "to": "b"}
  ]
}`

func TestReadJSON(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(k4))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	g := d.Graph
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Fatalf("counts = %d/%d, want 4/4", g.NodeCount(), g.EdgeCount())
	}
	if d.Splittable != nil {
		t.Errorf("Splittable = %v, want nil", d.Splittable)
	}

	v, err := d.Node("v")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, a := range g.Adjs(v) {
		got = append(got, d.NodeIDs[g.TwinNode(a)])
	}
	if strings.Join(got, ",") != "c,a,b" {
		t.Errorf("rotation at v = %v, want [c a b]", got)
	}

	if _, err := d.Edge("ab"); err != nil {
		t.Errorf("Edge(ab): %v", err)
	}
	if _, err := d.Edge("a->b"); !errs.Is(err, errs.ErrCodeEdgeNotFound) {
		t.Errorf("Edge(a->b) = %v, want %s", err, errs.ErrCodeEdgeNotFound)
	}
}

func TestReadJSONSplittable(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{
	  "nodes": [{"id": "a", "splittable": true}, {"id": "b", "splittable": false}],
	  "edges": [{"from": "a", "to": "b"}]
	}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	a, _ := d.Node("a")
	if len(d.Splittable) != 1 || d.Splittable[0] != a {
		t.Errorf("Splittable = %v, want [%d]", d.Splittable, a)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"malformed", `{"nodes": [`, errs.ErrCodeInvalidFormat},
		{"empty id", `{"nodes": [{"id": ""}], "edges": []}`, errs.ErrCodeInvalidIdentifier},
		{"duplicate node", `{"nodes": [{"id": "a"}, {"id": "a"}], "edges": []}`, errs.ErrCodeInvalidGraph},
		{"unknown node", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "x"}]}`, errs.ErrCodeNodeNotFound},
		{"self-loop", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "a"}]}`, errs.ErrCodeInvalidGraph},
		{"parallel without id", `{"nodes": [{"id": "a"}, {"id": "b"}],
			"edges": [{"from": "a", "to": "b"}, {"from": "a", "to": "b"}]}`, errs.ErrCodeInvalidGraph},
		{"short rotation", `{"nodes": [{"id": "a", "rotation": []}, {"id": "b"}],
			"edges": [{"from": "a", "to": "b"}]}`, errs.ErrCodeInvalidGraph},
		{"foreign rotation", `{"nodes": [{"id": "a", "rotation": ["b->c"]}, {"id": "b"}, {"id": "c"}],
			"edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]}`, errs.ErrCodeInvalidGraph},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(k4))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	d2, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}

	for id, v := range d.nodes {
		v2, err := d2.Node(id)
		if err != nil {
			t.Fatalf("node %s lost: %v", id, err)
		}
		var r1, r2 []string
		for _, a := range d.Graph.Adjs(v) {
			r1 = append(r1, d.EdgeIDs[d.Graph.AdjEdge(a)])
		}
		for _, a := range d2.Graph.Adjs(v2) {
			r2 = append(r2, d2.EdgeIDs[d2.Graph.AdjEdge(a)])
		}
		if strings.Join(r1, " ") != strings.Join(r2, " ") {
			t.Errorf("rotation of %s = %v, want %v", id, r2, r1)
		}
	}
}

func TestImportJSONMissing(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestExportExpansion(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{
	  "nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
	  "edges": [{"from": "a", "to": "b"}, {"from": "c", "to": "d"}, {"from": "a", "to": "c"}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	ab, _ := d.Edge("a->b")
	cd, _ := d.Edge("c->d")
	c, _ := d.Node("c")
	dn, _ := d.Node("d")

	x := expansion.New(d.Graph, expansion.Options{})
	x.InitComponent(0)
	x.DelEdge(x.CopyPath(cd)[0])
	x.InsertEdgePath(expansion.EdgeTarget(cd), expansion.Route{
		Start:     x.Copy(c),
		End:       x.Copy(dn),
		Crossings: []expansion.Crossing{{Adj: x.Graph().AdjSource(x.CopyPath(ab)[0])}},
	}, nil)

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := ExportExpansion(x, d, path); err != nil {
		t.Fatalf("ExportExpansion: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	if s.Crossings != 1 || len(s.Nodes) != 5 || len(s.Edges) != 5 {
		t.Errorf("snapshot crossings=%d nodes=%d edges=%d, want 1 5 5", s.Crossings, len(s.Nodes), len(s.Edges))
	}
	kinds := map[string]int{}
	for _, n := range s.Nodes {
		kinds[n.Kind]++
	}
	if kinds[KindCrossing] != 1 || kinds[KindOriginal] != 4 {
		t.Errorf("node kinds = %v", kinds)
	}
	owners := map[string]int{}
	for _, e := range s.Edges {
		owners[e.Orig]++
	}
	if owners["a->b"] != 2 || owners["c->d"] != 2 || owners["a->c"] != 1 {
		t.Errorf("edge owners = %v", owners)
	}
}
