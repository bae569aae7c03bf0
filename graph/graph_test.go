package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddNodeIdempotent(t *testing.T) {
	g := New[string]()

	g.AddNode("a")
	g.AddNode("a")
	g.AddNode("b")

	if got := g.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	if diff := cmp.Diff([]string{"a", "b"}, g.Nodes()); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddEdgeCreatesNodes(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 3)

	if !g.HasNode("a") || !g.HasNode("b") {
		t.Fatal("AddEdge should create both endpoints")
	}

	w, ok := g.Weight("a", "b")
	if !ok || w != 3 {
		t.Errorf("Weight(a, b) = %d, %v, want 3, true", w, ok)
	}

	if _, ok := g.Weight("b", "a"); ok {
		t.Error("edges are directed; reverse edge should not exist")
	}
}

func TestAddEdgeOverwritesWeight(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 3)
	g.AddEdge("a", "b", 7)

	w, _ := g.Weight("a", "b")
	if w != 7 {
		t.Errorf("Weight(a, b) = %d, want 7", w)
	}

	if got := len(g.Neighbors("a")); got != 1 {
		t.Errorf("Neighbors(a) has %d entries, want 1", got)
	}
}

func TestNeighborsInsertionOrder(t *testing.T) {
	g := New[int]()

	g.AddEdge(1, 3, 1)
	g.AddEdge(1, 2, 1)
	g.AddEdge(1, 9, 1)

	if diff := cmp.Diff([]int{3, 2, 9}, g.Neighbors(1)); diff != "" {
		t.Errorf("Neighbors(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestNodesReturnsCopy(t *testing.T) {
	g := New[string]()
	g.AddNode("a")
	g.AddNode("b")

	nodes := g.Nodes()
	nodes[0] = "mutated"

	if got := g.Nodes()[0]; got != "a" {
		t.Errorf("internal order mutated through returned slice: %q", got)
	}
}

func TestEdgeCount(t *testing.T) {
	g := New[string]()

	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "a", 1)
	g.AddEdge("a", "c", 1)

	if got := g.EdgeCount(); got != 3 {
		t.Errorf("EdgeCount() = %d, want 3", got)
	}
}
