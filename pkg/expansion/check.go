package expansion

import (
	"errors"
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

var (
	// ErrSelfLoop is returned by [Expansion.Check] when the copy graph has a
	// self-loop.
	ErrSelfLoop = errors.New("copy graph has a self-loop")

	// ErrPathBroken is returned when consecutive edges of a path do not
	// share a node.
	ErrPathBroken = errors.New("path is not connected")

	// ErrPathDegree is returned when an inner node of a path does not have
	// degree 4.
	ErrPathDegree = errors.New("inner path node without degree 4")

	// ErrPathEndpoints is returned when the ends of an edge path are not
	// copies of the original edge's endpoints.
	ErrPathEndpoints = errors.New("path endpoints do not match original edge")

	// ErrSplitEndpoints is returned when the ends of a node split are not
	// splittable copies of one original node.
	ErrSplitEndpoints = errors.New("node split endpoints do not match")

	// ErrCopyList is returned when the copies of an original node are
	// inconsistent with the copy graph.
	ErrCopyList = errors.New("copy list inconsistent")

	// ErrOwnerMismatch is returned when a copy edge is on no path, on more
	// than one path, or labelled with the wrong owner.
	ErrOwnerMismatch = errors.New("edge owner inconsistent")

	// ErrCrossingDegree is returned when a crossing dummy does not have
	// degree 4.
	ErrCrossingDegree = errors.New("crossing dummy without degree 4")
)

// Check verifies the structural invariants of the expansion and returns the
// first violation found. It is meant for tests and debugging and runs in
// time linear in the size of the copy graph.
func (x *Expansion) Check() error {
	if err := x.g.Validate(); err != nil {
		return fmt.Errorf("copy graph: %w", err)
	}
	if !graph.IsLoopFree(x.g) {
		return ErrSelfLoop
	}
	if x.currentCC < 0 {
		return nil
	}

	owners := make(map[graph.Edge]Target, x.g.EdgeCount())
	claim := func(edges []graph.Edge, t Target) error {
		for _, e := range edges {
			if prev, ok := owners[e]; ok {
				return fmt.Errorf("edge %d on %v and %v: %w", e, prev, t, ErrOwnerMismatch)
			}
			owners[e] = t
		}
		return nil
	}

	nodes := x.nodesInCC[x.currentCC]
	for _, vOrig := range nodes {
		for a := x.orig.FirstAdj(vOrig); a != 0; a = x.orig.Succ(a) {
			if !x.orig.IsSourceAdj(a) {
				continue
			}
			eOrig := x.orig.AdjEdge(a)
			edges := x.CopyPath(eOrig)
			if len(edges) == 0 {
				continue
			}
			if err := x.checkPath(edges); err != nil {
				return fmt.Errorf("original edge %d: %w", eOrig, err)
			}
			src := x.node(x.g.Source(edges[0])).orig
			tgt := x.node(x.g.Target(edges[len(edges)-1])).orig
			if src != x.orig.Source(eOrig) || tgt != x.orig.Target(eOrig) {
				return fmt.Errorf("original edge %d: %w", eOrig, ErrPathEndpoints)
			}
			if err := claim(edges, EdgeTarget(eOrig)); err != nil {
				return err
			}
		}
	}

	copies := make(map[graph.Node]bool, x.g.NodeCount())
	for _, vOrig := range nodes {
		list := x.Copies(vOrig)
		if len(list) == 0 {
			return fmt.Errorf("original node %d has no copy: %w", vOrig, ErrCopyList)
		}
		if len(list) >= 2 && !x.splittableOrig[vOrig] {
			return fmt.Errorf("original node %d is split but not splittable: %w", vOrig, ErrCopyList)
		}
		for _, v := range list {
			if !x.g.HasNode(v) || x.node(v).orig != vOrig {
				return fmt.Errorf("copy %d of original node %d: %w", v, vOrig, ErrCopyList)
			}
			if len(list) >= 2 && (x.g.Degree(v) < 2 || !x.node(v).splittable) {
				return fmt.Errorf("split copy %d of original node %d: %w", v, vOrig, ErrCopyList)
			}
			copies[v] = true
		}
	}

	for ns := x.firstSplit; ns != nil; ns = ns.next {
		edges := ns.Path()
		if len(edges) == 0 {
			continue
		}
		if err := x.checkPath(edges); err != nil {
			return fmt.Errorf("node split: %w", err)
		}
		s, t := ns.Source(), ns.Target()
		if o := x.node(s).orig; o == 0 || o != x.node(t).orig || !x.node(s).splittable || !x.node(t).splittable {
			return fmt.Errorf("node split %d..%d: %w", s, t, ErrSplitEndpoints)
		}
		if err := claim(edges, SplitTarget(ns)); err != nil {
			return err
		}
	}

	for _, e := range x.g.Edges() {
		t, ok := owners[e]
		if !ok {
			return fmt.Errorf("edge %d is on no path: %w", e, ErrOwnerMismatch)
		}
		if got := x.Owner(e); got != t {
			return fmt.Errorf("edge %d labelled %v, on %v: %w", e, got, t, ErrOwnerMismatch)
		}
	}

	for _, v := range x.g.Nodes() {
		if x.node(v).orig == 0 {
			if x.g.Degree(v) != 4 {
				return fmt.Errorf("dummy %d has degree %d: %w", v, x.g.Degree(v), ErrCrossingDegree)
			}
		} else if !copies[v] {
			return fmt.Errorf("node %d missing from copy list: %w", v, ErrCopyList)
		}
	}
	return nil
}

// checkPath verifies that edges form a directed walk whose inner nodes have
// degree 4.
func (x *Expansion) checkPath(edges []graph.Edge) error {
	for i := 1; i < len(edges); i++ {
		v := x.g.Target(edges[i-1])
		if x.g.Source(edges[i]) != v {
			return fmt.Errorf("edges %d and %d: %w", edges[i-1], edges[i], ErrPathBroken)
		}
		if x.g.Degree(v) != 4 {
			return fmt.Errorf("node %d has degree %d: %w", v, x.g.Degree(v), ErrPathDegree)
		}
	}
	return nil
}
