// Package history provides the append-only snapshot log that makes a run
// replayable: an arena of immutable traverse.Snapshot values plus a
// movable cursor.
//
// Restore never recomputes — it returns exactly the snapshot stored at an
// index, so stepping backward and forward through already-computed states
// is O(1) lookups. History is linear, not a tree: when the cursor has been
// rewound below the end and a new snapshot is appended, everything beyond
// the cursor is discarded first (branch truncation).
package history
