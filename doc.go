// Package stepgraph is a stepping engine for interactive graph-traversal
// visualizations — classical BFS/DFS semantics under controllable,
// reversible, timer-driven execution.
//
// What it gives you:
//
//   - Core model:   immutable ordered-adjacency digraph (core)
//   - Stepping:     one discrete traversal transition at a time,
//     parameterized by frontier discipline (FIFO = BFS, LIFO = DFS)
//     and discovery-marking policy (traverse)
//   - Time travel:  append-only snapshot history with a movable cursor,
//     replay without recomputation, linear branch truncation (history)
//   - Control:      start / pause / resume / reset / manual step
//     forward & backward at an operator-chosen speed, with
//     change notifications for a rendering layer (playback)
//
// Why this shape?
//
//   - Deterministic — fixed graph, start and discipline always produce
//     the identical snapshot sequence; tie-breaks follow adjacency order
//   - Testable      — the tick scheduler is an injected dependency, so
//     automatic playback is driven by a fake in unit tests
//   - Race-free     — a run-generation token invalidates stale timer
//     callbacks after pause, reset or reconfiguration
//
// The packages, leaves first:
//
//	core/     — Graph, the read-only adjacency model a run consumes
//	traverse/ — State and Step, the pure single-transition core
//	history/  — Log, snapshots plus cursor
//	playback/ — Controller, the lifecycle state machine and public surface
//
// Quick ASCII example:
//
//	A──▶B──▶D
//	│
//	└──▶C
//
// BFS from A finalizes A, B, C, D with levels 0, 1, 1, 2; DFS from A
// finalizes A, C, B, D. Both runs can be paused, rewound and replayed
// step by step. See playback.Controller for the operation surface.
package stepgraph
