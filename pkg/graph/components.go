package graph

// ConnectedComponents labels every node with the index of its connected
// component, ignoring edge directions. Components are numbered from 0 in
// the order their first node appears in [Graph.Nodes]. It returns the labels
// and the number of components.
func ConnectedComponents(g *Graph) (map[Node]int, int) {
	comp := make(map[Node]int, g.NodeCount())
	count := 0
	var stack []Node
	for _, s := range g.Nodes() {
		if _, seen := comp[s]; seen {
			continue
		}
		comp[s] = count
		stack = append(stack[:0], s)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for a := g.FirstAdj(v); a != 0; a = g.Succ(a) {
				w := g.TwinNode(a)
				if _, seen := comp[w]; !seen {
					comp[w] = count
					stack = append(stack, w)
				}
			}
		}
		count++
	}
	return comp, count
}

// IsLoopFree reports whether g has no self-loops.
func IsLoopFree(g *Graph) bool {
	for _, e := range g.Edges() {
		if g.IsSelfLoop(e) {
			return false
		}
	}
	return true
}

// Set is an unordered set backed by a slice for cheap iteration. The zero
// value is an empty set ready to use.
type Set[K comparable] struct {
	index map[K]int
	items []K
}

// NodeSet collects nodes, for example the vertices merged during an edit.
type NodeSet = Set[Node]

// Insert adds k to the set. Inserting a member again is a no-op.
func (s *Set[K]) Insert(k K) {
	if s.index == nil {
		s.index = make(map[K]int)
	}
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = len(s.items)
	s.items = append(s.items, k)
}

// Remove deletes k from the set if present.
func (s *Set[K]) Remove(k K) {
	i, ok := s.index[k]
	if !ok {
		return
	}
	last := len(s.items) - 1
	s.items[i] = s.items[last]
	s.index[s.items[i]] = i
	s.items = s.items[:last]
	delete(s.index, k)
}

// Contains reports whether k is a member.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.index[k]
	return ok
}

// Len returns the number of members.
func (s *Set[K]) Len() int { return len(s.items) }

// Items returns the members. The slice is owned by the set and is only
// valid until the next modification.
func (s *Set[K]) Items() []K { return s.items }
