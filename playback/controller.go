package playback

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vizkit/stepgraph/core"
	"github.com/vizkit/stepgraph/history"
	"github.com/vizkit/stepgraph/traverse"
)

// Controller owns one run's lifecycle state machine, its tick scheduler,
// and the mediation between the traversal core and the snapshot history.
// History and its cursor are owned exclusively by the Controller; no other
// component appends or moves the cursor.
//
// All operations serialize on an internal mutex, so caller goroutines and
// timer callbacks never execute steps in parallel. Each Controller owns
// its own traversal and history — independent runs share nothing.
type Controller struct {
	mu sync.Mutex

	state      State
	opts       Options
	discipline traverse.Discipline

	graph *core.Graph     // private clone of the caller's graph
	trav  *traverse.State // live state, always aligned with the cursor
	log   *history.Log

	runID      string
	generation uint64 // bumped by Pause/Reset/Configure to void stale ticks
	cancelTick func()

	subs    map[int]func(TraversalState)
	nextSub int
}

// NewController returns an idle, unconfigured Controller.
func NewController() *Controller {
	return &Controller{
		opts: DefaultOptions(),
		log:  history.NewLog(),
		subs: make(map[int]func(TraversalState)),
	}
}

// Configure prepares a run over g starting at startID. Valid only from
// Idle (ErrNotIdle otherwise). The graph is cloned, so later mutation of
// the caller's object cannot disturb the run. History is reset and seeded
// with snapshot 0: the configured, unstepped state. The controller stays
// Idle until Start.
//
// This is the only fallible operation of the control surface: unknown
// start ⇒ ErrInvalidGraph, nil graph ⇒ ErrGraphNil, bad option ⇒
// ErrOptionViolation.
func (c *Controller) Configure(g *core.Graph, startID string, d traverse.Discipline, opts ...Option) error {
	c.mu.Lock()
	if c.state != Idle {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotIdle, c.state)
	}
	if g == nil {
		c.mu.Unlock()
		return ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		c.mu.Unlock()
		return o.err
	}
	if !g.HasNode(startID) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrInvalidGraph, startID)
	}

	clone := g.Clone()
	trav, err := traverse.New(clone, startID, d, traverse.WithDiscoveryPolicy(o.Policy))
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.generation++
	c.stopTickLocked()
	c.opts = o
	c.discipline = d
	c.graph = clone
	c.trav = trav
	c.log.Reset()
	c.log.Append(trav.Snapshot())
	c.runID = uuid.NewString()
	c.opts.Logger.WithFields(logrus.Fields{
		"run":        c.runID,
		"discipline": d.String(),
		"policy":     trav.Policy().String(),
		"start":      startID,
		"speed":      o.Speed,
	}).Debug("run configured")

	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
	return nil
}

// Start begins automatic playback: Idle → Running, first tick scheduled.
// A no-op when unconfigured or outside Idle.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state != Idle || c.trav == nil {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.scheduleTickLocked()
	c.logLocked().Info("run started")
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// Pause suspends automatic playback: Running → Paused. The pending tick
// is cancelled without losing any state. Cancellation alone cannot stop
// a callback already in flight (time.AfterFunc.Stop reports false), so
// the generation is bumped as well: a late tick is stale by token even
// if Resume has put the controller back into Running, and cannot fork a
// second tick chain. A no-op outside Running.
func (c *Controller) Pause() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	c.stopTickLocked()
	c.generation++
	c.state = Paused
	c.logLocked().Info("run paused")
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// Resume continues automatic playback: Paused → Running, rescheduling a
// tick at the current speed. A no-op outside Paused.
func (c *Controller) Resume() {
	c.mu.Lock()
	if c.state != Paused {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.scheduleTickLocked()
	c.logLocked().Info("run resumed")
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// Reset returns to Idle from any state: the pending tick is cancelled,
// the run generation is bumped so a stale callback can never mutate state
// afterwards, and history, traversal and the graph clone are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.generation++
	c.stopTickLocked()
	if c.runID != "" {
		c.logLocked().Debug("run reset")
	}
	c.state = Idle
	c.trav = nil
	c.graph = nil
	c.runID = ""
	c.log.Reset()
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// StepForward advances one step. Below the end of history it replays the
// next stored snapshot without recomputation; at the end it computes a
// fresh step and appends it. A no-op when unconfigured or when the run
// has nothing left to compute.
func (c *Controller) StepForward() {
	c.mu.Lock()
	if c.trav == nil {
		c.mu.Unlock()
		return
	}
	if snap, ok := c.log.Forward(); ok {
		c.rehydrateLocked(snap)
	} else if c.state == Complete || c.trav.Done() {
		c.mu.Unlock()
		return
	} else {
		c.computeStepLocked()
	}
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// StepBackward moves the cursor back one snapshot and restores it.
// A no-op when unconfigured or already at snapshot 0.
func (c *Controller) StepBackward() {
	c.mu.Lock()
	if c.trav == nil {
		c.mu.Unlock()
		return
	}
	snap, ok := c.log.Back()
	if !ok {
		c.mu.Unlock()
		return
	}
	c.rehydrateLocked(snap)
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// Subscribe registers onChange to receive every observable state change,
// in causal order. The returned function unsubscribes; calling it more
// than once is harmless.
func (c *Controller) Subscribe(onChange func(TraversalState)) (unsubscribe func()) {
	if onChange == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = onChange
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HistoryLen returns the number of stored snapshots, 0 when unconfigured.
// Together with TraversalState.StepIndex it bounds a UI scrubber.
func (c *Controller) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.log.Len()
}

// Current returns the observable state under the history cursor.
func (c *Controller) Current() TraversalState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observedLocked()
}

// tick is the scheduled continuation of one automatic step. It is keyed
// by the generation captured at schedule time: after Pause, Reset or a
// fresh Configure the generation no longer matches and the callback does
// nothing — even when a Resume has since re-entered Running with its own
// freshly-keyed tick chain. The state guard additionally covers a tick
// landing between Pause taking effect and anything else happening.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != Running {
		c.mu.Unlock()
		return
	}
	c.cancelTick = nil
	c.computeStepLocked()
	if c.state == Running {
		c.scheduleTickLocked()
	}
	st, fns := c.publishSetLocked()
	c.mu.Unlock()
	deliver(st, fns)
}

// computeStepLocked advances the live traversal by one fresh step and
// appends its snapshot. Because the live state always matches the cursor,
// appending after a rewind discards the stale suffix of history first.
// Completion while Running transitions to Complete and stops the timer.
func (c *Controller) computeStepLocked() {
	did, err := c.trav.Step()
	if err != nil {
		// unreachable with a sealed graph clone; halt the run if it happens
		c.logLocked().WithError(err).Error("step failed")
		c.stopTickLocked()
		if c.state == Running {
			c.state = Paused
		}
		return
	}
	if !did {
		c.finishLocked()
		return
	}
	snap := c.trav.Snapshot()
	c.log.Append(snap)
	if snap.Done {
		c.finishLocked()
	}
}

// finishLocked records completion: Running → Complete, timer stopped.
func (c *Controller) finishLocked() {
	c.stopTickLocked()
	if c.state == Running {
		c.state = Complete
	}
	c.logLocked().WithField("steps", c.trav.StepIndex()).Info("run complete")
}

// rehydrateLocked replaces the live traversal with a copy of the stored
// snapshot, so replayed positions can resume fresh computation.
func (c *Controller) rehydrateLocked(snap *traverse.Snapshot) {
	trav, err := traverse.FromSnapshot(c.graph, c.discipline, snap,
		traverse.WithDiscoveryPolicy(c.opts.Policy))
	if err != nil {
		// graph and snapshot are both controller-owned; cannot happen
		c.logLocked().WithError(err).Error("restore failed")
		return
	}
	c.trav = trav
}

// scheduleTickLocked arms the next tick at the configured speed,
// capturing the current generation.
func (c *Controller) scheduleTickLocked() {
	gen := c.generation
	interval := time.Duration(float64(time.Second) / c.opts.Speed)
	c.cancelTick = c.opts.Scheduler.Schedule(interval, func() { c.tick(gen) })
}

// stopTickLocked cancels the pending tick, if any.
func (c *Controller) stopTickLocked() {
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
}

// logLocked returns a logger entry tagged with the run and state.
func (c *Controller) logLocked() *logrus.Entry {
	return c.opts.Logger.WithFields(logrus.Fields{
		"run":   c.runID,
		"state": c.state.String(),
	})
}

// publishSetLocked captures the observable state and the subscriber list
// in registration order. Delivery happens after the lock is released so
// an onChange callback may call back into the Controller.
func (c *Controller) publishSetLocked() (TraversalState, []func(TraversalState)) {
	st := c.observedLocked()
	if len(c.subs) == 0 {
		return st, nil
	}
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(TraversalState), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	return st, fns
}

// deliver invokes the captured subscribers with the captured state.
func deliver(st TraversalState, fns []func(TraversalState)) {
	for _, fn := range fns {
		fn(st)
	}
}

// observedLocked projects the snapshot under the cursor into the public
// TraversalState. Slices and maps are copies; consumers own the result.
func (c *Controller) observedLocked() TraversalState {
	st := TraversalState{
		StepIndex:    -1,
		CurrentLevel: -1,
		IsRunning:    c.state == Running,
	}
	snap := c.log.Current()
	if snap == nil {
		return st
	}
	st.RunID = c.runID
	st.StepIndex = c.log.Cursor()
	st.Current = snap.Current
	st.IsComplete = snap.Done
	st.Frontier = append(make([]string, 0, len(snap.Frontier)), snap.Frontier...)
	st.Order = append(make([]string, 0, len(snap.Order)), snap.Order...)
	st.TraversedEdges = append(make([]traverse.Edge, 0, len(snap.Edges)), snap.Edges...)
	st.Visited = make(map[string]bool, len(snap.Visited))
	for id := range snap.Visited {
		st.Visited[id] = true
	}
	if snap.Levels != nil {
		st.LevelNodes = groupLevels(snap)
		if snap.Current != "" {
			if lvl, ok := snap.Levels[snap.Current]; ok {
				st.CurrentLevel = lvl
			}
		}
	}
	return st
}

// groupLevels buckets discovered nodes by level, in discovery order:
// finalized nodes first, then pending frontier entries, deduplicated.
func groupLevels(snap *traverse.Snapshot) map[int][]string {
	out := make(map[int][]string)
	seen := make(map[string]bool, len(snap.Levels))
	add := func(id string) {
		if seen[id] {
			return
		}
		if lvl, ok := snap.Levels[id]; ok {
			seen[id] = true
			out[lvl] = append(out[lvl], id)
		}
	}
	for _, id := range snap.Order {
		add(id)
	}
	for _, id := range snap.Frontier {
		add(id)
	}
	return out
}
