package graph_test

import (
	"fmt"

	"github.com/matzehuels/planrep/pkg/graph"
)

func ExampleGraph_Split() {
	g := graph.New()
	a, b := g.NewNode(), g.NewNode()
	e := g.NewEdge(a, b)

	// Subdivide a->b into a->u->b.
	e2 := g.Split(e)
	u := g.Source(e2)

	fmt.Println("nodes:", g.NodeCount(), "edges:", g.EdgeCount())
	fmt.Println("degree of u:", g.Degree(u))
	fmt.Println("chain intact:", g.Target(e) == u && g.Target(e2) == b)
	// Output:
	// nodes: 3 edges: 2
	// degree of u: 2
	// chain intact: true
}

func ExampleGraph_SplitNode() {
	g := graph.New()
	v := g.NewNode()
	var adjs []graph.Adj
	for range 4 {
		adjs = append(adjs, g.AdjSource(g.NewEdge(v, g.NewNode())))
	}

	// Move the last two entries of v to a new node w.
	w := g.SplitNode(adjs[0], adjs[2])

	fmt.Println("degree of v:", g.Degree(v))
	fmt.Println("degree of w:", g.Degree(w))
	fmt.Println("connected:", g.SearchEdge(v, w) != 0)
	// Output:
	// degree of v: 3
	// degree of w: 3
	// connected: true
}

func ExampleConnectedComponents() {
	g := graph.New()
	a, b := g.NewNode(), g.NewNode()
	g.NewEdge(a, b)
	g.NewNode() // isolated

	_, n := graph.ConnectedComponents(g)
	fmt.Println("components:", n)
	// Output:
	// components: 2
}
