// Package traverse defines disciplines, discovery policies, options,
// sentinel errors, and the Snapshot value for single-step traversal.
package traverse

import "errors"

// Discipline selects the frontier removal order.
type Discipline int

const (
	// FIFO removes from the front of the frontier: breadth-first search.
	FIFO Discipline = iota

	// LIFO removes from the back of the frontier: depth-first search.
	LIFO
)

// String returns the conventional algorithm name for the discipline.
func (d Discipline) String() string {
	switch d {
	case FIFO:
		return "BFS"
	case LIFO:
		return "DFS"
	default:
		return "unknown"
	}
}

// DiscoveryPolicy selects when a node is marked visited.
//
// The choice is behavioral, not cosmetic: it decides whether duplicate
// frontier entries can exist and which parent wins the discovery edge
// when several parents reach the same child.
type DiscoveryPolicy int

const (
	// PolicyDefault resolves to the discipline's own convention:
	// FIFO → MarkOnEnqueue, LIFO → MarkOnDequeue.
	PolicyDefault DiscoveryPolicy = iota

	// MarkOnEnqueue marks a node visited the moment it is discovered
	// (pushed), so each node enters the frontier exactly once.
	MarkOnEnqueue

	// MarkOnDequeue marks a node visited lazily, when it is popped;
	// duplicate pending entries are tolerated and discarded as no-ops.
	MarkOnDequeue
)

// String names the policy.
func (p DiscoveryPolicy) String() string {
	switch p {
	case PolicyDefault:
		return "default"
	case MarkOnEnqueue:
		return "mark-on-enqueue"
	case MarkOnDequeue:
		return "mark-on-dequeue"
	default:
		return "unknown"
	}
}

// Sentinel errors for traversal construction.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("traverse: graph is nil")

	// ErrStartNotFound is returned when the start node ID is absent.
	ErrStartNotFound = errors.New("traverse: start node not found")

	// ErrSnapshotNil is returned if FromSnapshot receives a nil snapshot.
	ErrSnapshotNil = errors.New("traverse: snapshot is nil")

	// ErrOptionViolation is returned when an invalid option or
	// discipline value is supplied.
	ErrOptionViolation = errors.New("traverse: invalid option supplied")
)

// Edge is a discovered (parent, child) pair, recorded once per child the
// first time the child is reached.
type Edge struct {
	From string
	To   string
}

// Option configures traversal behavior via functional arguments.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation when New or FromSnapshot is invoked.
type Option func(*Options)

// Options holds parameters and callbacks customizing step execution.
type Options struct {
	// Policy overrides the discipline's default discovery marking.
	Policy DiscoveryPolicy

	// OnDequeue, if non-nil, observes each finalized node with its
	// 1-based step index.
	OnDequeue func(id string, step int)

	// OnDiscover, if non-nil, observes each recorded discovery edge.
	OnDiscover func(parent, child string)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with the discipline-default policy and
// no hooks installed.
func DefaultOptions() Options {
	return Options{Policy: PolicyDefault}
}

// WithDiscoveryPolicy forces the given discovery-marking policy.
func WithDiscoveryPolicy(p DiscoveryPolicy) Option {
	return func(o *Options) {
		switch p {
		case PolicyDefault, MarkOnEnqueue, MarkOnDequeue:
			o.Policy = p
		default:
			o.err = ErrOptionViolation
		}
	}
}

// WithOnDequeue registers a callback observing each finalized node.
func WithOnDequeue(fn func(id string, step int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnDiscover registers a callback observing each discovery edge.
func WithOnDiscover(fn func(parent, child string)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscover = fn
		}
	}
}

// Snapshot is an immutable capture of full traversal state after exactly
// one discrete step. Snapshot 0 is the seeded, unstepped state.
type Snapshot struct {
	// Step is the 0-based snapshot index (number of productive steps taken).
	Step int

	// Current is the node finalized by this step; empty for snapshot 0.
	Current string

	// Frontier holds pending node IDs in insertion order.
	Frontier []string

	// Visited flags node IDs claimed by the traversal (growth is monotonic).
	Visited map[string]bool

	// Order lists node IDs in finalization order.
	Order []string

	// Edges lists discovery edges in the order they were recorded.
	Edges []Edge

	// Levels maps node ID → distance from the start. Nil for LIFO runs.
	Levels map[string]int

	// Done reports that no pending work remains.
	Done bool
}

// Clone returns a deep copy sharing no mutable state with the receiver.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := &Snapshot{
		Step:    s.Step,
		Current: s.Current,
		Done:    s.Done,
		Visited: make(map[string]bool, len(s.Visited)),
	}
	if s.Frontier != nil {
		c.Frontier = append(make([]string, 0, len(s.Frontier)), s.Frontier...)
	}
	if s.Order != nil {
		c.Order = append(make([]string, 0, len(s.Order)), s.Order...)
	}
	if s.Edges != nil {
		c.Edges = append(make([]Edge, 0, len(s.Edges)), s.Edges...)
	}
	for id := range s.Visited {
		c.Visited[id] = true
	}
	if s.Levels != nil {
		c.Levels = make(map[string]int, len(s.Levels))
		for id, lvl := range s.Levels {
			c.Levels[id] = lvl
		}
	}
	return c
}
