package playback

import "time"

// Scheduler defers a single function call by the given duration. The
// returned cancel function stops the pending call if it has not fired;
// cancelling an already-fired call is a no-op. Implementations must be
// safe for concurrent use.
//
// The default implementation wraps time.AfterFunc. Tests inject a fake
// that fires callbacks manually, keeping playback fully deterministic.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

// timerScheduler is the wall-clock Scheduler.
type timerScheduler struct{}

// NewTimerScheduler returns the real-time Scheduler backed by
// time.AfterFunc.
func NewTimerScheduler() Scheduler { return timerScheduler{} }

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
