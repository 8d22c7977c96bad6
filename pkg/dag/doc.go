// Package dag provides a directed acyclic graph of project document
// elements and the references between them.
//
// # Overview
//
// A project document defines sources, streams, tracks, track objects and
// timeline objects, and links them through reference elements. This
// package models those links as a graph so that properties of a document
// can be checked independently of loading it:
//
//   - every id is unique across all element kinds ([DAG.AddNode])
//   - every reference points at an element defined earlier ([DAG.AddEdge]
//     while the graph is built in document order)
//   - the references admit a write-before-reference order ([DAG.TopoOrder])
//
// # Basic Usage
//
// Create a new graph with [New], add nodes with [DAG.AddNode], and edges with
// [DAG.AddEdge]. An edge From -> To means From depends on To:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "0", Kind: dag.NodeKindSource})
//	g.AddNode(dag.Node{ID: "3", Kind: dag.NodeKindTrackObject})
//	g.AddEdge(dag.Edge{From: "3", To: "0", Label: "factory-ref"})
//
// Elements without an id in the document (tracks and timeline objects) are
// added under synthetic keys by the builder.
//
// # Rows
//
// Each node carries a Row used by renderers to place nodes of the same kind
// on one rank. Rows carry no structural constraint.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize access
// if multiple goroutines read or modify the same graph.
package dag
