package dag_test

import (
	"fmt"

	"github.com/matzehuels/xptv/pkg/dag"
)

func ExampleDAG_basic() {
	// A source, its stream, and a track object referencing both
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "0", Kind: dag.NodeKindSource})
	_ = g.AddNode(dag.Node{ID: "1", Kind: dag.NodeKindStream})
	_ = g.AddNode(dag.Node{ID: "2", Kind: dag.NodeKindTrackObject})
	_ = g.AddEdge(dag.Edge{From: "1", To: "0", Label: "output-streams"})
	_ = g.AddEdge(dag.Edge{From: "2", To: "0", Label: "factory-ref"})
	_ = g.AddEdge(dag.Edge{From: "2", To: "1", Label: "stream-ref"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("References of 2:", g.Children("2"))
	fmt.Println("Referrers of 0:", g.Parents("0"))
	// Output:
	// Nodes: 3
	// Edges: 3
	// References of 2: [0 1]
	// Referrers of 0: [1 2]
}

func ExampleDAG_TopoOrder() {
	// Nodes added out of order still yield a write-before-reference order
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "clip", Kind: dag.NodeKindTimelineObject})
	_ = g.AddNode(dag.Node{ID: "obj", Kind: dag.NodeKindTrackObject})
	_ = g.AddNode(dag.Node{ID: "src", Kind: dag.NodeKindSource})
	_ = g.AddEdge(dag.Edge{From: "clip", To: "obj"})
	_ = g.AddEdge(dag.Edge{From: "obj", To: "src"})

	order, err := g.TopoOrder()
	fmt.Println(order, err)
	// Output:
	// [src obj clip] <nil>
}

func ExampleDAG_AddEdge() {
	// A reference to an element that was never added is rejected
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "5", Kind: dag.NodeKindTrackObject})

	err := g.AddEdge(dag.Edge{From: "5", To: "42", Label: "stream-ref"})
	fmt.Println(err)
	// Output:
	// unknown target node
}
