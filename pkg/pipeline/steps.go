package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/planrep/pkg/embedding"
	errs "github.com/matzehuels/planrep/pkg/errors"
	"github.com/matzehuels/planrep/pkg/expansion"
	"github.com/matzehuels/planrep/pkg/graph"
	pio "github.com/matzehuels/planrep/pkg/io"
	"github.com/matzehuels/planrep/pkg/observability"
)

// state is the expansion being edited by one script run.
type state struct {
	doc    *pio.Document
	x      *expansion.Expansion
	logger *log.Logger

	// embedded is set for scripts that route through faces. em is the
	// current embedding of the copy graph, or nil once a plain edit made
	// it stale.
	embedded bool
	em       *embedding.Embedding

	// ends remembers where removed paths started and ended.
	ends map[graph.Edge][2]graph.Node
}

func newState(d *pio.Document, s *Script, logger *log.Logger) (*state, error) {
	opts := expansion.Options{Logger: logger}
	if len(s.Splittable) > 0 {
		opts.Splittable = make([]graph.Node, 0, len(s.Splittable))
		for _, id := range s.Splittable {
			v, err := d.Node(id)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidScript, err, "splittable")
			}
			opts.Splittable = append(opts.Splittable, v)
		}
	} else if d.Splittable != nil {
		opts.Splittable = d.Splittable
	}

	st := &state{
		doc:      d,
		x:        expansion.New(d.Graph, opts),
		logger:   logger,
		embedded: s.Embedded,
	}
	if err := st.selectComponent(s.Component); err != nil {
		return nil, err
	}
	return st, nil
}

// run applies the steps of s in order. With checking enabled the expansion
// is verified after the initial component and after every step.
func (st *state) run(ctx context.Context, runID string, s *Script) error {
	hooks := observability.Pipeline()
	if s.ShouldCheck() {
		if err := st.check(); err != nil {
			return err
		}
	}
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		hooks.OnStepStart(ctx, runID, i, step.Op)
		start := time.Now()

		err := st.apply(step)
		if err == nil && s.ShouldCheck() && step.Op != OpCheck {
			err = st.check()
		}
		hooks.OnStepComplete(ctx, runID, i, step.Op, st.x.CrossingCount(), time.Since(start), err)
		if err != nil {
			return errs.Context(err, "step %d (%s)", i+1, step.Op)
		}

		st.logger.Debug("step applied",
			"step", i+1,
			"op", step.Op,
			"crossings", st.x.CrossingCount(),
			"splits", st.x.SplitNodeCount())
	}
	return nil
}

func (st *state) apply(step Step) error {
	switch step.Op {
	case OpInsert:
		return st.insert(step)
	case OpRemove:
		e, err := st.origEdge(step.Edge)
		if err != nil {
			return err
		}
		return st.remove(e)
	case OpSplit:
		return st.split(step)
	case OpContract:
		return st.contract(step.Split)
	case OpResolve:
		st.resolve()
		return nil
	case OpCheck:
		return st.check()
	case OpSelect:
		return st.selectComponent(step.Component)
	}
	return errs.New(errs.ErrCodeInvalidScript, "unknown op %q", step.Op)
}

// =============================================================================
// Operations
// =============================================================================

func (st *state) selectComponent(i int) error {
	if i >= st.x.ComponentCount() {
		return errs.New(errs.ErrCodeInvalidScript, "component %d out of range (graph has %d)", i, st.x.ComponentCount())
	}
	st.x.InitComponent(i)
	st.em = nil
	st.ends = make(map[graph.Edge][2]graph.Node)
	return nil
}

func (st *state) remove(e graph.Edge) error {
	if len(st.x.CopyPath(e)) == 0 {
		return errs.New(errs.ErrCodeInvalidScript, "path of %q is already removed", st.doc.EdgeIDs[e])
	}
	emb := st.embedIfPlanar()
	src, tgt := st.x.RemoveEdgePath(expansion.EdgeTarget(e), emb)
	if emb == nil {
		st.em = nil
	} else {
		st.logger.Debug("faces joined", "edge", st.doc.EdgeIDs[e], "faces", emb.NewFaces.Len(), "merged", emb.Merged.Len())
	}
	st.ends[e] = [2]graph.Node{src, tgt}
	return nil
}

// insert reroutes the path of an original edge. A path that is still
// present is removed first.
func (st *state) insert(step Step) error {
	e, err := st.origEdge(step.Edge)
	if err != nil {
		return err
	}
	if len(st.x.CopyPath(e)) > 0 {
		if err := st.remove(e); err != nil {
			return err
		}
	}
	start, end := st.endsOf(e)
	t := expansion.EdgeTarget(e)

	if !st.embedded {
		r, err := st.plainRoute(start, end, step.Crossings)
		if err != nil {
			return err
		}
		st.x.InsertEdgePath(t, r, nil)
		delete(st.ends, e)
		return nil
	}

	emb, err := st.embed()
	if err != nil {
		return errs.Context(err, "insert %s", step.Edge)
	}
	r, err := st.faceRoute(emb.E, start, end, step.Crossings)
	if err != nil {
		return err
	}
	st.x.InsertEdgePath(t, r, emb)
	st.logger.Debug("faces split", "edge", step.Edge, "faces", emb.NewFaces.Len())
	delete(st.ends, e)
	return nil
}

func (st *state) split(step Step) error {
	v, err := st.splittableCopy(step.Node, step.Copy)
	if err != nil {
		return err
	}
	part, err := st.partition(v, step.Side)
	if err != nil {
		return err
	}
	left, right := st.x.PrepareNodeSplit(part)
	st.x.SplitNode(left, right, nil)
	st.em = nil
	return nil
}

func (st *state) contract(n int) error {
	ns, err := st.nodeSplit(n)
	if err != nil {
		return err
	}
	if ns.Len() != 1 {
		return errs.New(errs.ErrCodeInvalidScript, "split %d has %d edges, only single edges contract", n, ns.Len())
	}
	emb := st.embedIfPlanar()
	st.x.ContractSplit(ns, emb)
	if emb == nil {
		st.em = nil
	}
	return nil
}

// resolve dissolves pseudo crossings until none is left.
func (st *state) resolve() {
	g := st.x.Graph()
	total := 0
	for {
		n := 0
		for _, v := range g.Nodes() {
			if g.HasNode(v) && st.x.IsPseudoCrossing(v) {
				st.x.ResolvePseudoCrossing(v)
				n++
			}
		}
		if n == 0 {
			break
		}
		total += n
	}
	if total > 0 {
		st.em = nil
	}
	st.logger.Debug("pseudo crossings resolved", "count", total)
}

func (st *state) check() error {
	if err := st.x.Check(); err != nil {
		return errs.Wrap(errs.ErrCodeInconsistent, err, "expansion")
	}
	if st.em != nil {
		if err := st.em.Validate(); err != nil {
			return errs.Wrap(errs.ErrCodeInconsistent, err, "embedding")
		}
	}
	return nil
}

// =============================================================================
// Embedding
// =============================================================================

// embed returns the embedding capability for the next edit, computing the
// embedding from the current rotation if it is stale.
func (st *state) embed() (*expansion.Embed, error) {
	if st.em == nil {
		em := embedding.New(st.x.Graph())
		if !em.IsPlanar() {
			return nil, errs.New(errs.ErrCodeNotPlanar, "rotation of the copy graph is not planar (%d faces)", em.FaceCount())
		}
		st.em = em
	}
	return &expansion.Embed{
		E:        st.em,
		NewFaces: &embedding.FaceSet{},
		Merged:   &graph.NodeSet{},
	}, nil
}

// embedIfPlanar returns the embedding capability when the script is
// embedded and the copy graph is planar, and nil otherwise.
func (st *state) embedIfPlanar() *expansion.Embed {
	if !st.embedded {
		return nil
	}
	emb, err := st.embed()
	if err != nil {
		return nil
	}
	return emb
}

// =============================================================================
// Routes
// =============================================================================

func (st *state) plainRoute(start, end graph.Node, crossings []Crossing) (expansion.Route, error) {
	r := expansion.Route{Start: start, End: end}
	g := st.x.Graph()
	for i, c := range crossings {
		if c.Node != "" {
			v, err := st.splittableCopy(c.Node, c.Copy)
			if err != nil {
				return r, errs.Context(err, "crossing %d", i+1)
			}
			part, err := st.partition(v, c.Side)
			if err != nil {
				return r, errs.Context(err, "crossing %d", i+1)
			}
			r.Crossings = append(r.Crossings, expansion.Crossing{Partition: part})
			continue
		}
		edges, err := st.segments(c)
		if err != nil {
			return r, errs.Context(err, "crossing %d", i+1)
		}
		r.Crossings = append(r.Crossings, expansion.Crossing{Adj: g.AdjSource(edges[0])})
	}
	return r, nil
}

// faceRoute finds entries for an embedded insertion from start to end that
// crosses the named paths in order, each crossing leading from the face
// left of the crossed entry into the face right of it.
func (st *state) faceRoute(em *embedding.Embedding, start, end graph.Node, crossings []Crossing) (expansion.Route, error) {
	g := st.x.Graph()
	candidates := make([][]graph.Edge, len(crossings))
	for i, c := range crossings {
		edges, err := st.segments(c)
		if err != nil {
			return expansion.Route{}, errs.Context(err, "crossing %d", i+1)
		}
		candidates[i] = edges
	}

	r := expansion.Route{Crossings: make([]expansion.Crossing, len(crossings))}
	var search func(i int, f embedding.Face) bool
	search = func(i int, f embedding.Face) bool {
		if i == len(candidates) {
			for _, a := range g.Adjs(end) {
				if em.RightFace(a) == f {
					r.EndAdj = a
					return true
				}
			}
			return false
		}
		for _, e := range candidates[i] {
			for _, a := range []graph.Adj{g.AdjSource(e), g.AdjTarget(e)} {
				if em.LeftFace(a) != f {
					continue
				}
				r.Crossings[i] = expansion.Crossing{Adj: a}
				if search(i+1, em.RightFace(a)) {
					return true
				}
			}
		}
		return false
	}

	for _, a := range g.Adjs(start) {
		r.StartAdj = a
		if search(0, em.RightFace(a)) {
			return r, nil
		}
	}
	return expansion.Route{}, errs.New(errs.ErrCodeNotPlanar, "no face route from %s to %s",
		st.doc.NodeIDs[st.x.OrigNode(start)], st.doc.NodeIDs[st.x.OrigNode(end)])
}

// segments returns the copy edges a crossing may cross: the segment it
// names, or for an embedded route without a segment the whole path.
func (st *state) segments(c Crossing) ([]graph.Edge, error) {
	var path []graph.Edge
	var name string
	if c.Split != 0 {
		ns, err := st.nodeSplit(c.Split)
		if err != nil {
			return nil, err
		}
		path = ns.Path()
		name = "split"
	} else {
		e, err := st.origEdge(c.Edge)
		if err != nil {
			return nil, err
		}
		path = st.x.CopyPath(e)
		name = c.Edge
		if len(path) == 0 {
			return nil, errs.New(errs.ErrCodeInvalidScript, "path of %q is removed", c.Edge)
		}
	}

	switch {
	case c.Segment != nil:
		if *c.Segment >= len(path) {
			return nil, errs.New(errs.ErrCodeInvalidScript, "%s has %d segments, not %d", name, len(path), *c.Segment+1)
		}
		return path[*c.Segment : *c.Segment+1], nil
	case st.embedded:
		return path, nil
	}
	return path[:1], nil
}

// =============================================================================
// Lookups
// =============================================================================

// origEdge looks up an original edge of the current component.
func (st *state) origEdge(id string) (graph.Edge, error) {
	e, err := st.doc.Edge(id)
	if err != nil {
		return 0, err
	}
	if st.x.Copy(st.doc.Graph.Source(e)) == 0 {
		return 0, errs.New(errs.ErrCodeInvalidScript, "edge %q is not in component %d", id, st.x.CurrentComponent())
	}
	return e, nil
}

// splittableCopy returns copy k of the original node named id, which must
// be splittable.
func (st *state) splittableCopy(id string, k int) (graph.Node, error) {
	vOrig, err := st.doc.Node(id)
	if err != nil {
		return 0, err
	}
	copies := st.x.Copies(vOrig)
	if k < 0 || k >= len(copies) {
		return 0, errs.New(errs.ErrCodeNodeNotFound, "node %q has %d copies, no copy %d", id, len(copies), k)
	}
	v := copies[k]
	if !st.x.IsSplittable(v) {
		return 0, errs.New(errs.ErrCodeInvalidScript, "node %q is not splittable", id)
	}
	return v, nil
}

// partition returns the entries of v that belong to the paths of the named
// original edges.
func (st *state) partition(v graph.Node, side []string) ([]graph.Adj, error) {
	g := st.x.Graph()
	if len(side) >= g.Degree(v) {
		return nil, errs.New(errs.ErrCodeInvalidScript, "side names %d of %d entries, a split needs entries on both sides", len(side), g.Degree(v))
	}
	part := make([]graph.Adj, 0, len(side))
	seen := make(map[graph.Edge]bool, len(side))
	for _, id := range side {
		e, err := st.doc.Edge(id)
		if err != nil {
			return nil, err
		}
		if seen[e] {
			return nil, errs.New(errs.ErrCodeInvalidScript, "side names %q twice", id)
		}
		seen[e] = true

		var found graph.Adj
		for _, a := range g.Adjs(v) {
			if st.x.OrigEdge(g.AdjEdge(a)) == e {
				found = a
				break
			}
		}
		if found == 0 {
			return nil, errs.New(errs.ErrCodeEdgeNotFound, "path of %q does not end at this copy", id)
		}
		part = append(part, found)
	}
	return part, nil
}

// nodeSplit returns split n, counted from 1.
func (st *state) nodeSplit(n int) (*expansion.NodeSplit, error) {
	splits := st.x.NodeSplits()
	if n < 1 || n > len(splits) {
		return nil, errs.New(errs.ErrCodeInvalidScript, "split %d out of range (expansion has %d)", n, len(splits))
	}
	return splits[n-1], nil
}

// endsOf returns the copy nodes a reinserted path of e joins: the ends of
// its removed path if they still exist, else the first copies of its
// original endpoints.
func (st *state) endsOf(e graph.Edge) (graph.Node, graph.Node) {
	g := st.x.Graph()
	og := st.doc.Graph
	want := [2]graph.Node{og.Source(e), og.Target(e)}
	ends, ok := st.ends[e]
	for i := range ends {
		if !ok || !g.HasNode(ends[i]) || st.x.OrigNode(ends[i]) != want[i] {
			ends[i] = st.x.Copy(want[i])
		}
	}
	return ends[0], ends[1]
}
