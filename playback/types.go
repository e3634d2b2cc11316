// Package playback defines lifecycle states, tunable options, sentinel
// errors, and the observable TraversalState published to subscribers.
package playback

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/vizkit/stepgraph/traverse"
)

// State is the lifecycle state of a Controller.
type State int

const (
	// Idle: no run in progress. A configured-but-unstarted run is Idle.
	Idle State = iota

	// Running: ticks are scheduled and steps compute automatically.
	Running

	// Paused: a run is suspended between steps; no tick is pending.
	Paused

	// Complete: the frontier drained while running; only Reset leaves it.
	Complete
)

// String names the lifecycle state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Sentinel errors for Configure, the only fallible operation.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("playback: graph is nil")

	// ErrInvalidGraph is returned when the start node is not in the graph.
	ErrInvalidGraph = errors.New("playback: start node not in graph")

	// ErrNotIdle is returned when Configure is called outside Idle.
	ErrNotIdle = errors.New("playback: controller is not idle")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("playback: invalid option supplied")
)

// Option configures a run via functional arguments to Configure.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation when Configure is invoked.
type Option func(*Options)

// Options holds per-run parameters.
type Options struct {
	// Speed is the automatic playback rate in steps per second; the tick
	// interval is 1000/Speed milliseconds. Must be positive.
	Speed float64

	// Policy overrides the discipline's default discovery marking.
	Policy traverse.DiscoveryPolicy

	// Scheduler drives automatic ticks. Defaults to time.AfterFunc.
	Scheduler Scheduler

	// Logger receives lifecycle events. Defaults to a discarding logger.
	Logger *logrus.Logger

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with speed 1, the discipline-default
// discovery policy, the wall-clock scheduler, and a silent logger.
func DefaultOptions() Options {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return Options{
		Speed:     1,
		Policy:    traverse.PolicyDefault,
		Scheduler: NewTimerScheduler(),
		Logger:    l,
	}
}

// WithSpeed sets the playback rate in steps per second.
// Non-positive or non-finite values surface as ErrOptionViolation.
func WithSpeed(stepsPerSecond float64) Option {
	return func(o *Options) {
		if stepsPerSecond <= 0 || math.IsNaN(stepsPerSecond) || math.IsInf(stepsPerSecond, 0) {
			o.err = fmt.Errorf("%w: speed must be positive, got %v", ErrOptionViolation, stepsPerSecond)
			return
		}
		o.Speed = stepsPerSecond
	}
}

// WithDiscoveryPolicy forces the discovery-marking policy for the run.
func WithDiscoveryPolicy(p traverse.DiscoveryPolicy) Option {
	return func(o *Options) {
		switch p {
		case traverse.PolicyDefault, traverse.MarkOnEnqueue, traverse.MarkOnDequeue:
			o.Policy = p
		default:
			o.err = fmt.Errorf("%w: unknown discovery policy %d", ErrOptionViolation, int(p))
		}
	}
}

// WithScheduler injects the tick scheduler. Passing nil has no effect.
func WithScheduler(s Scheduler) Option {
	return func(o *Options) {
		if s != nil {
			o.Scheduler = s
		}
	}
}

// WithLogger injects a logrus logger for lifecycle events.
// Passing nil has no effect (the silent default is retained).
func WithLogger(l *logrus.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// TraversalState is the observable projection published to subscribers
// and returned by Controller.Current. It is a value snapshot: consumers
// may retain or mutate it freely without affecting the run.
type TraversalState struct {
	// RunID identifies the configured run; empty before Configure.
	RunID string

	// StepIndex is the history cursor position (0 = seeded, unstepped
	// state), or -1 before Configure and after Reset.
	StepIndex int

	// Visited flags node IDs claimed by the traversal.
	Visited map[string]bool

	// Current is the node finalized by the step under the cursor;
	// empty at the seeded state.
	Current string

	// Frontier holds pending node IDs in insertion order.
	Frontier []string

	// Order lists node IDs in finalization order.
	Order []string

	// TraversedEdges lists discovery edges in recording order.
	TraversedEdges []traverse.Edge

	// IsRunning reports that automatic ticks are scheduled.
	IsRunning bool

	// IsComplete reports that the snapshot under the cursor has no
	// pending work. A rewound view of a finished run reads as false.
	IsComplete bool

	// CurrentLevel is the level of Current for FIFO runs, else -1.
	CurrentLevel int

	// LevelNodes groups discovered nodes by level in discovery order.
	// Nil for LIFO runs.
	LevelNodes map[int][]string
}
