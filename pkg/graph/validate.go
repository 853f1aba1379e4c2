package graph

import "fmt"

// Validate checks the internal consistency of g: live lists reference only
// live elements, adjacency twins agree, every adjacency list is a proper
// doubly linked list of entries attached to its node, and the cached
// counters match. It returns nil for a consistent graph.
func (g *Graph) Validate() error {
	if err := g.validateNodes(); err != nil {
		return err
	}
	return g.validateEdges()
}

func (g *Graph) validateNodes() error {
	n := 0
	var prev Node
	for v := g.firstNode; v != 0; v = g.nodes[v].next {
		nr := g.nodes[v]
		if !nr.alive {
			return fmt.Errorf("node %d: %w", v, ErrDeadElement)
		}
		if nr.prev != prev {
			return fmt.Errorf("node list at %d: %w", v, ErrCountMismatch)
		}
		prev = v
		n++

		in, out := 0, 0
		var pa Adj
		for a := nr.first; a != 0; a = g.adjs[a].next {
			ar := g.adjs[a]
			if !ar.alive || !g.HasEdge(ar.edge) {
				return fmt.Errorf("adjacency %d at node %d: %w", a, v, ErrDeadElement)
			}
			if ar.node != v || ar.prev != pa {
				return fmt.Errorf("adjacency %d at node %d: %w", a, v, ErrBrokenAdjacency)
			}
			pa = a
			er := g.edges[ar.edge]
			switch a {
			case er.adjSrc:
				if er.src != v {
					return fmt.Errorf("adjacency %d at node %d: %w", a, v, ErrBrokenAdjacency)
				}
				out++
			case er.adjTgt:
				if er.tgt != v {
					return fmt.Errorf("adjacency %d at node %d: %w", a, v, ErrBrokenAdjacency)
				}
				in++
			default:
				return fmt.Errorf("adjacency %d at node %d: %w", a, v, ErrBrokenTwin)
			}
		}
		if pa != nr.last {
			return fmt.Errorf("node %d: %w", v, ErrBrokenAdjacency)
		}
		if in != nr.indeg || out != nr.outdeg {
			return fmt.Errorf("node %d: %w", v, ErrDegreeMismatch)
		}
	}
	if prev != g.lastNode || n != g.numNodes {
		return ErrCountMismatch
	}
	return nil
}

func (g *Graph) validateEdges() error {
	m := 0
	var prev Edge
	for e := g.firstEdge; e != 0; e = g.edges[e].next {
		er := g.edges[e]
		if !er.alive || !g.HasNode(er.src) || !g.HasNode(er.tgt) {
			return fmt.Errorf("edge %d: %w", e, ErrDeadElement)
		}
		if er.prev != prev {
			return fmt.Errorf("edge list at %d: %w", e, ErrCountMismatch)
		}
		prev = e
		m++
		if !g.HasAdj(er.adjSrc) || !g.HasAdj(er.adjTgt) {
			return fmt.Errorf("edge %d: %w", e, ErrDeadElement)
		}
		if g.adjs[er.adjSrc].twin != er.adjTgt || g.adjs[er.adjTgt].twin != er.adjSrc {
			return fmt.Errorf("edge %d: %w", e, ErrBrokenTwin)
		}
		if g.adjs[er.adjSrc].edge != e || g.adjs[er.adjTgt].edge != e {
			return fmt.Errorf("edge %d: %w", e, ErrBrokenTwin)
		}
	}
	if prev != g.lastEdge || m != g.numEdges {
		return ErrCountMismatch
	}
	return nil
}
