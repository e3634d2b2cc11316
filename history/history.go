package history

import (
	"errors"
	"fmt"

	"github.com/vizkit/stepgraph/traverse"
)

// ErrIndexOutOfRange is returned by Restore for an index outside [0, Len).
var ErrIndexOutOfRange = errors.New("history: index out of range")

// Log is an append-only list of immutable snapshots with a cursor.
// The zero value is ready to use. A Log is owned by a single controller;
// it performs no locking of its own.
type Log struct {
	snaps  []*traverse.Snapshot
	cursor int // index into snaps; -1 while empty
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{cursor: -1}
}

// Append stores snap and moves the cursor to it. If the cursor had been
// rewound below the end, the stale suffix is discarded first — history
// stays linear. The caller hands over ownership of snap; it must not be
// mutated afterwards.
func (l *Log) Append(snap *traverse.Snapshot) {
	l.snaps = append(l.snaps[:l.cursor+1], snap)
	l.cursor = len(l.snaps) - 1
}

// Restore returns the snapshot stored at index i without recomputation.
func (l *Log) Restore(i int) (*traverse.Snapshot, error) {
	if i < 0 || i >= len(l.snaps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(l.snaps))
	}
	return l.snaps[i], nil
}

// Back moves the cursor one step toward the beginning and returns the
// snapshot there. Reports false, leaving the cursor in place, at index 0
// or on an empty log.
func (l *Log) Back() (*traverse.Snapshot, bool) {
	if l.cursor <= 0 {
		return nil, false
	}
	l.cursor--
	return l.snaps[l.cursor], true
}

// Forward moves the cursor one step toward the end and returns the
// snapshot there. Reports false, leaving the cursor in place, when the
// cursor is already at the newest snapshot.
func (l *Log) Forward() (*traverse.Snapshot, bool) {
	if l.cursor >= len(l.snaps)-1 {
		return nil, false
	}
	l.cursor++
	return l.snaps[l.cursor], true
}

// Current returns the snapshot under the cursor, or nil on an empty log.
func (l *Log) Current() *traverse.Snapshot {
	if l.cursor < 0 {
		return nil
	}
	return l.snaps[l.cursor]
}

// Cursor returns the cursor position, or -1 on an empty log.
func (l *Log) Cursor() int { return l.cursor }

// Len returns the number of stored snapshots.
func (l *Log) Len() int { return len(l.snaps) }

// Reset discards all snapshots and rewinds the cursor.
func (l *Log) Reset() {
	l.snaps = nil
	l.cursor = -1
}

// AtEnd reports whether the cursor sits on the newest snapshot.
func (l *Log) AtEnd() bool {
	return l.cursor == len(l.snaps)-1
}
