package traverse

import (
	"fmt"

	"github.com/vizkit/stepgraph/core"
)

// State encapsulates mutable traversal state between steps.
//
// A State is built by New (seeded with the start node) or FromSnapshot
// (rehydrated from history), advanced one transition at a time by Step,
// and captured by Snapshot. It is not safe for concurrent use; the owner
// serializes access.
type State struct {
	graph      *core.Graph
	discipline Discipline
	policy     DiscoveryPolicy
	opts       Options

	step     int
	current  string
	frontier []string
	visited  map[string]bool
	order    []string
	edges    []Edge
	levels   map[string]int // nil for LIFO
	done     bool

	// discovered tracks children that already own a discovery edge, so a
	// second parent reaching the same child never re-records it. Includes
	// the start node, which is never discovered via an edge.
	discovered map[string]bool
}

// New seeds a traversal of g from startID under discipline d.
//
// The frontier starts as [startID]. Under MarkOnEnqueue the start node is
// visited immediately; under MarkOnDequeue the visited set starts empty
// and the start is claimed by the first Step. Levels are tracked for FIFO
// only, with level(start) = 0.
func New(g *core.Graph, startID string, d Discipline, opts ...Option) (*State, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if d != FIFO && d != LIFO {
		return nil, fmt.Errorf("%w: unknown discipline %d", ErrOptionViolation, int(d))
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(startID) {
		return nil, fmt.Errorf("%w: %q", ErrStartNotFound, startID)
	}

	n := g.NodeCount()
	s := &State{
		graph:      g,
		discipline: d,
		policy:     resolvePolicy(d, o.Policy),
		opts:       o,
		frontier:   make([]string, 0, n),
		visited:    make(map[string]bool, n),
		order:      make([]string, 0, n),
		discovered: make(map[string]bool, n),
	}
	s.frontier = append(s.frontier, startID)
	s.discovered[startID] = true
	if s.policy == MarkOnEnqueue {
		s.visited[startID] = true
	}
	if d == FIFO {
		s.levels = make(map[string]int, n)
		s.levels[startID] = 0
	}
	return s, nil
}

// FromSnapshot rehydrates a live State from a stored snapshot, so a
// replayed history position can resume fresh computation. The snapshot
// itself is deep-copied and never mutated.
func FromSnapshot(g *core.Graph, d Discipline, snap *Snapshot, opts ...Option) (*State, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if snap == nil {
		return nil, ErrSnapshotNil
	}
	if d != FIFO && d != LIFO {
		return nil, fmt.Errorf("%w: unknown discipline %d", ErrOptionViolation, int(d))
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	c := snap.Clone()
	s := &State{
		graph:      g,
		discipline: d,
		policy:     resolvePolicy(d, o.Policy),
		opts:       o,
		step:       c.Step,
		current:    c.Current,
		frontier:   c.Frontier,
		visited:    c.Visited,
		order:      c.Order,
		edges:      c.Edges,
		levels:     c.Levels,
		done:       c.Done,
		discovered: make(map[string]bool, g.NodeCount()),
	}
	if s.frontier == nil {
		s.frontier = []string{}
	}
	if s.order == nil {
		s.order = []string{}
	}
	// Rebuild the discovery record: every edge child, every visited node,
	// and the seed (frontier head of the unstepped snapshot).
	for _, e := range s.edges {
		s.discovered[e.To] = true
	}
	for id := range s.visited {
		s.discovered[id] = true
	}
	if c.Step == 0 && len(s.frontier) > 0 {
		s.discovered[s.frontier[0]] = true
	}
	return s, nil
}

// resolvePolicy maps PolicyDefault to the discipline convention.
func resolvePolicy(d Discipline, p DiscoveryPolicy) DiscoveryPolicy {
	if p != PolicyDefault {
		return p
	}
	if d == LIFO {
		return MarkOnDequeue
	}
	return MarkOnEnqueue
}

// Step computes exactly one discrete transition.
//
// It pops one node per discipline (front for FIFO, back for LIFO),
// finalizes it, and pushes its undiscovered neighbors in adjacency order.
// Under MarkOnDequeue, stale duplicate entries are discarded silently
// before real work. Returns false with the state unchanged (beyond the
// completion flag) once no pending work remains.
func (s *State) Step() (bool, error) {
	if s.done {
		return false, nil
	}
	id, ok := s.pop()
	for ok && s.policy == MarkOnDequeue && s.visited[id] {
		// duplicate pending entry under lazy marking: discard as a no-op.
		// Under MarkOnEnqueue every frontier entry is visited by
		// construction and still owed its one finalizing pop.
		id, ok = s.pop()
	}
	if !ok {
		s.done = true
		return false, nil
	}

	s.step++
	s.current = id
	s.visited[id] = true
	s.order = append(s.order, id)
	if s.opts.OnDequeue != nil {
		s.opts.OnDequeue(id, s.step)
	}

	nbrs, err := s.graph.NeighborIDs(id)
	if err != nil {
		return false, fmt.Errorf("traverse: neighbors of %q: %w", id, err)
	}
	for _, nbr := range nbrs {
		if s.visited[nbr] {
			continue
		}
		if !s.discovered[nbr] {
			s.discovered[nbr] = true
			s.edges = append(s.edges, Edge{From: id, To: nbr})
			if s.levels != nil {
				s.levels[nbr] = s.levels[id] + 1
			}
			if s.opts.OnDiscover != nil {
				s.opts.OnDiscover(id, nbr)
			}
		}
		if s.policy == MarkOnEnqueue {
			s.visited[nbr] = true
		}
		s.frontier = append(s.frontier, nbr)
	}

	s.done = !s.hasPending()
	return true, nil
}

// pop removes one ID from the frontier per the discipline.
func (s *State) pop() (string, bool) {
	if len(s.frontier) == 0 {
		return "", false
	}
	if s.discipline == FIFO {
		id := s.frontier[0]
		s.frontier = s.frontier[1:]
		return id, true
	}
	last := len(s.frontier) - 1
	id := s.frontier[last]
	s.frontier = s.frontier[:last]
	return id, true
}

// hasPending reports whether the frontier still holds real work. Under
// MarkOnEnqueue every entry is real; under MarkOnDequeue entries already
// visited are stale duplicates.
func (s *State) hasPending() bool {
	if s.policy == MarkOnEnqueue {
		return len(s.frontier) > 0
	}
	for _, id := range s.frontier {
		if !s.visited[id] {
			return true
		}
	}
	return false
}

// Done reports that no pending work remains.
func (s *State) Done() bool { return s.done }

// Discipline returns the frontier removal order of this traversal.
func (s *State) Discipline() Discipline { return s.discipline }

// Policy returns the resolved discovery-marking policy.
func (s *State) Policy() DiscoveryPolicy { return s.policy }

// StepIndex returns the number of productive steps taken so far.
func (s *State) StepIndex() int { return s.step }

// Snapshot captures the full traversal state as an immutable deep copy.
func (s *State) Snapshot() *Snapshot {
	snap := &Snapshot{
		Step:     s.step,
		Current:  s.current,
		Done:     s.done,
		Frontier: append(make([]string, 0, len(s.frontier)), s.frontier...),
		Order:    append(make([]string, 0, len(s.order)), s.order...),
		Visited:  make(map[string]bool, len(s.visited)),
	}
	if s.edges != nil {
		snap.Edges = append(make([]Edge, 0, len(s.edges)), s.edges...)
	}
	for id := range s.visited {
		snap.Visited[id] = true
	}
	if s.levels != nil {
		snap.Levels = make(map[string]int, len(s.levels))
		for id, lvl := range s.levels {
			snap.Levels[id] = lvl
		}
	}
	return snap
}
