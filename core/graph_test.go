package core_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vizkit/stepgraph/core"
)

// TestGraph_Errors verifies rejection of invalid IDs and duplicate edges.
func TestGraph_Errors(t *testing.T) {
	g := core.NewGraph()
	if err := g.AddNode(""); !errors.Is(err, core.ErrEmptyNodeID) {
		t.Errorf("empty node: want ErrEmptyNodeID, got %v", err)
	}
	if err := g.AddEdge("", "B"); !errors.Is(err, core.ErrEmptyNodeID) {
		t.Errorf("empty from: want ErrEmptyNodeID, got %v", err)
	}
	if err := g.AddEdge("A", "B"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("A", "B"); !errors.Is(err, core.ErrDuplicateEdge) {
		t.Errorf("duplicate edge: want ErrDuplicateEdge, got %v", err)
	}
	if _, err := g.NeighborIDs("missing"); !errors.Is(err, core.ErrNodeNotFound) {
		t.Errorf("missing node: want ErrNodeNotFound, got %v", err)
	}
	if _, err := g.NeighborIDs(""); !errors.Is(err, core.ErrEmptyNodeID) {
		t.Errorf("empty lookup: want ErrEmptyNodeID, got %v", err)
	}
}

// TestGraph_NeighborOrder ensures edge-insertion order is preserved verbatim.
func TestGraph_NeighborOrder(t *testing.T) {
	g := core.NewGraph()
	for _, to := range []string{"C", "A", "B"} {
		if err := g.AddEdge("X", to); err != nil {
			t.Fatalf("AddEdge(X, %s): %v", to, err)
		}
	}
	nbrs, err := g.NeighborIDs("X")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"C", "A", "B"}; !reflect.DeepEqual(nbrs, want) {
		t.Errorf("NeighborIDs = %v; want %v", nbrs, want)
	}
	// implicit endpoints recorded in first-reference order
	if want := []string{"X", "C", "A", "B"}; !reflect.DeepEqual(g.Nodes(), want) {
		t.Errorf("Nodes = %v; want %v", g.Nodes(), want)
	}
}

// TestGraph_NeighborCopy ensures the returned slice cannot mutate adjacency.
func TestGraph_NeighborCopy(t *testing.T) {
	g := core.NewGraph()
	g.AddEdge("A", "B")
	g.AddEdge("A", "C")
	nbrs, _ := g.NeighborIDs("A")
	nbrs[0] = "Z"
	again, _ := g.NeighborIDs("A")
	if want := []string{"B", "C"}; !reflect.DeepEqual(again, want) {
		t.Errorf("adjacency mutated through returned slice: %v", again)
	}
}

// TestGraph_FromAdjacency covers the bulk constructor.
func TestGraph_FromAdjacency(t *testing.T) {
	g, err := core.FromAdjacency(
		[]string{"A", "B", "C", "D"},
		map[string][]string{"A": {"B", "C"}, "B": {"D"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(g.Nodes(), want) {
		t.Errorf("Nodes = %v; want %v", g.Nodes(), want)
	}
	nbrs, _ := g.NeighborIDs("A")
	if want := []string{"B", "C"}; !reflect.DeepEqual(nbrs, want) {
		t.Errorf("NeighborIDs(A) = %v; want %v", nbrs, want)
	}
	// leaf nodes have empty adjacency, not an error
	if nbrs, err = g.NeighborIDs("D"); err != nil || len(nbrs) != 0 {
		t.Errorf("NeighborIDs(D) = %v, %v; want empty, nil", nbrs, err)
	}
}

// TestGraph_CloneIndependence ensures clones share no mutable state.
func TestGraph_CloneIndependence(t *testing.T) {
	g := core.NewGraph()
	g.AddEdge("A", "B")
	c := g.Clone()
	if err := g.AddEdge("A", "C"); err != nil {
		t.Fatal(err)
	}
	nbrs, _ := c.NeighborIDs("A")
	if want := []string{"B"}; !reflect.DeepEqual(nbrs, want) {
		t.Errorf("clone sees later mutation: %v", nbrs)
	}
	if c.HasNode("C") {
		t.Error("clone sees node added after Clone")
	}
	if got, want := c.NodeCount(), 2; got != want {
		t.Errorf("NodeCount = %d; want %d", got, want)
	}
}
