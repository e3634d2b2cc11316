// Package playback owns the run lifecycle of a stepped traversal: the
// Idle/Running/Paused/Complete state machine, the timer-driven tick
// scheduler, and the mediation between the traversal core and the
// snapshot history. It is the public surface consumed by a rendering
// layer.
//
// Operation surface:
//
//	Configure(graph, startID, discipline, opts...) — the only fallible call
//	Start / Pause / Resume / Reset
//	StepForward / StepBackward
//	Subscribe(onChange) → unsubscribe
//
// Every invalid transition (pause while idle, double start, stepping past
// the end) is a silent no-op, never an error: these are routine in an
// interactive control surface and must not interrupt a caller's UI loop.
//
// Scheduling model: one timer per active run, interval 1000/speed ms.
// Steps never execute in parallel; suspension happens only between
// discrete steps at the tick boundary. Pause, Reset and reconfiguration
// bump a monotonically increasing run generation, so a callback that was
// already in flight when its timer was cancelled observes a mismatched
// generation and does nothing — even if the run has since resumed.
//
// Rewind semantics: StepForward below the end of history replays stored
// snapshots without recomputation. A tick (or a StepForward at the end)
// computes a fresh step from the snapshot under the cursor; if the cursor
// had been rewound, the stale suffix of history is discarded first —
// history is linear, never a tree.
//
// The Scheduler is an injected dependency (time.AfterFunc by default) so
// tests drive ticks with a fake instead of real timers, and multiple
// independent controllers can coexist — there is no package-level state.
package playback
