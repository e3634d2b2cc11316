// Package core defines Graph, the adjacency model consumed by traversal.
//
// A Graph maps node IDs to ordered lists of neighbor IDs. Neighbor order
// is significant: it is the tie-break that fixes discovery order, so it
// must be stable for the duration of a run. Graphs are built with AddNode
// and AddEdge (or FromAdjacency) and sealed by handing a Clone to the
// engine — the engine never mutates a graph mid-run, and the playback
// layer clones defensively at configuration time so external references
// to the caller's graph cannot disturb a run in flight.
//
// Edges are directed. Callers modelling undirected graphs add both
// directions explicitly.
//
// Errors:
//
//	ErrEmptyNodeID   - node ID is the empty string.
//	ErrNodeNotFound  - requested node does not exist.
//	ErrDuplicateEdge - the exact (from, to) pair was already added.
package core
