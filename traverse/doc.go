// Package traverse implements the single-step traversal core: one discrete
// dequeue-and-expand transition over a core.Graph, parameterized by frontier
// discipline (FIFO = breadth-first, LIFO = depth-first) and by the
// discovery-marking policy.
//
// Unlike a run-to-completion walker, a State advances exactly one step per
// Step call, so a playback layer can suspend between steps, snapshot each
// one, and replay or rewind without recomputation.
//
// Key properties:
//
//   - Deterministic: for a fixed graph, start node, discipline and policy,
//     repeated Step calls produce the identical snapshot sequence —
//     no randomness, no wall-clock reads, tie-breaks follow adjacency order.
//   - Terminating: the frontier drains after at most |V| productive steps
//     on a finite graph.
//   - Resumable: Snapshot captures the full state after a step, and
//     FromSnapshot rehydrates a live State from any stored snapshot.
//
// The two disciplines differ in one more way than removal order: BFS marks
// a node visited at the moment it is enqueued, so each node enters the
// frontier exactly once; DFS marks lazily at pop time, tolerating duplicate
// pending entries that are discarded as no-ops when popped late. Both
// policies are explicit values of DiscoveryPolicy — the zero value selects
// the discipline's own default, and either can be forced per run. The
// policy decides which (parent, child) pair is recorded as the discovery
// edge when several parents reach the same child.
//
// Complexity: O(1) amortized per Step plus O(deg) neighbor expansion;
// Snapshot is O(V + E) deep copy.
package traverse
