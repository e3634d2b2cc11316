package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that the provided node ID is empty.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrDuplicateEdge indicates the same (from, to) edge was added twice.
	ErrDuplicateEdge = errors.New("core: duplicate edge")
)

// Graph is a directed adjacency model with order-preserving neighbor lists.
//
// Nodes appear in Nodes() in insertion order; NeighborIDs(id) returns the
// neighbors of id in the order their edges were added. That order is the
// discovery tie-break for traversal, so Graph never sorts or deduplicates
// behind the caller's back.
type Graph struct {
	order []string            // node IDs in insertion order
	index map[string]struct{} // membership
	adj   map[string][]string // node ID → neighbor IDs, insertion order
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]struct{}),
		adj:   make(map[string][]string),
	}
}

// FromAdjacency builds a Graph from an explicit node order and an
// adjacency map. Nodes are added in the order given by nodes; neighbors
// referenced by adjacency but absent from nodes are appended on first
// reference, mirroring AddEdge's implicit-node behavior.
func FromAdjacency(nodes []string, adjacency map[string][]string) (*Graph, error) {
	g := NewGraph()
	for _, id := range nodes {
		if err := g.AddNode(id); err != nil {
			return nil, err
		}
	}
	for _, from := range nodes {
		for _, to := range adjacency[from] {
			if err := g.AddEdge(from, to); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// AddNode inserts a node. Adding an existing node is a no-op, so callers
// can mix explicit AddNode with AddEdge's implicit insertion freely.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = struct{}{}
	g.order = append(g.order, id)
	return nil
}

// AddEdge appends a directed edge from→to, creating missing endpoints.
// The neighbor list of from grows by exactly one entry, at the end —
// edge insertion order is the contract, not an implementation detail.
// Parallel duplicates of the same (from, to) pair are rejected.
func (g *Graph) AddEdge(from, to string) error {
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	for _, nbr := range g.adj[from] {
		if nbr == to {
			return fmt.Errorf("%w: %s→%s", ErrDuplicateEdge, from, to)
		}
	}
	if err := g.AddNode(from); err != nil {
		return err
	}
	if err := g.AddNode(to); err != nil {
		return err
	}
	g.adj[from] = append(g.adj[from], to)
	return nil
}

// HasNode reports whether id exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Nodes returns all node IDs in insertion order. The slice is a copy.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// NeighborIDs returns the neighbors of id in edge-insertion order.
// The slice is a copy; mutating it does not affect the graph.
// Returns ErrNodeNotFound if id is absent.
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	if _, ok := g.index[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	nbrs := g.adj[id]
	out := make([]string, len(nbrs))
	copy(out, nbrs)
	return out, nil
}

// Clone returns a deep copy sharing no mutable state with the receiver.
// The playback layer clones at configuration time so a run is immune to
// later mutation of the caller's original graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		order: make([]string, len(g.order)),
		index: make(map[string]struct{}, len(g.index)),
		adj:   make(map[string][]string, len(g.adj)),
	}
	copy(c.order, g.order)
	for id := range g.index {
		c.index[id] = struct{}{}
	}
	for id, nbrs := range g.adj {
		dup := make([]string, len(nbrs))
		copy(dup, nbrs)
		c.adj[id] = dup
	}
	return c
}
