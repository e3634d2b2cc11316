package history_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vizkit/stepgraph/history"
	"github.com/vizkit/stepgraph/traverse"
)

// snap builds a minimal distinguishable snapshot for log tests.
func snap(step int) *traverse.Snapshot {
	return &traverse.Snapshot{Step: step, Visited: map[string]bool{}}
}

func TestLog_AppendAndCursor(t *testing.T) {
	l := history.NewLog()
	require.Equal(t, 0, l.Len())
	require.Equal(t, -1, l.Cursor())
	require.Nil(t, l.Current())
	require.True(t, l.AtEnd(), "empty log is at its end")

	for i := 0; i < 3; i++ {
		l.Append(snap(i))
		require.Equal(t, i, l.Cursor(), "Append moves the cursor to the new snapshot")
		require.True(t, l.AtEnd())
	}
	require.Equal(t, 3, l.Len())
	require.Equal(t, 2, l.Current().Step)
}

func TestLog_BackForward(t *testing.T) {
	l := history.NewLog()
	for i := 0; i < 3; i++ {
		l.Append(snap(i))
	}

	s, ok := l.Back()
	require.True(t, ok)
	require.Equal(t, 1, s.Step)
	s, ok = l.Back()
	require.True(t, ok)
	require.Equal(t, 0, s.Step)
	_, ok = l.Back()
	require.False(t, ok, "Back at cursor 0 is a no-op")
	require.Equal(t, 0, l.Cursor())

	s, ok = l.Forward()
	require.True(t, ok)
	require.Equal(t, 1, s.Step)
	s, ok = l.Forward()
	require.True(t, ok)
	require.Equal(t, 2, s.Step)
	_, ok = l.Forward()
	require.False(t, ok, "Forward at the end is a no-op")
}

// TestLog_RestoreNeverRecomputes asserts Restore returns the exact stored
// snapshot pointer.
func TestLog_RestoreNeverRecomputes(t *testing.T) {
	l := history.NewLog()
	stored := snap(7)
	l.Append(snap(0))
	l.Append(stored)

	got, err := l.Restore(1)
	require.NoError(t, err)
	require.Same(t, stored, got)

	_, err = l.Restore(2)
	require.True(t, errors.Is(err, history.ErrIndexOutOfRange))
	_, err = l.Restore(-1)
	require.True(t, errors.Is(err, history.ErrIndexOutOfRange))
}

// TestLog_BranchTruncation: rewinding k steps and appending a new snapshot
// discards everything beyond the cursor; Len becomes cursor+1.
func TestLog_BranchTruncation(t *testing.T) {
	l := history.NewLog()
	for i := 0; i < 5; i++ {
		l.Append(snap(i))
	}
	l.Back()
	l.Back() // cursor at index 2

	l.Append(snap(99))
	require.Equal(t, 4, l.Len(), "stale suffix discarded before append")
	require.Equal(t, 3, l.Cursor())
	require.Equal(t, l.Cursor()+1, l.Len())
	require.Equal(t, 99, l.Current().Step)
	_, ok := l.Forward()
	require.False(t, ok, "truncated snapshots are gone")
}

func TestLog_Reset(t *testing.T) {
	l := history.NewLog()
	l.Append(snap(0))
	l.Append(snap(1))
	l.Reset()
	require.Equal(t, 0, l.Len())
	require.Equal(t, -1, l.Cursor())
	require.Nil(t, l.Current())
}
