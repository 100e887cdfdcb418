package battle

import "time"

type Timer interface {
	Stop() bool
}

// Clock schedules the turn timeout. Tests supply a manual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// turnTimer is the think-time limit of one drag. Each arm bumps the
// generation so a callback that lost the race with disarm is recognised as stale.
type turnTimer struct {
	clock    Clock
	d        time.Duration
	t        Timer
	gen      uint64
	deadline time.Time
}

func (tt *turnTimer) arm(fire func(gen uint64)) time.Time {
	tt.disarm()
	tt.gen++
	gen := tt.gen
	tt.deadline = tt.clock.Now().Add(tt.d)
	tt.t = tt.clock.AfterFunc(tt.d, func() { fire(gen) })
	return tt.deadline
}

// disarm is safe to call any number of times.
func (tt *turnTimer) disarm() {
	if tt.t == nil {
		return
	}
	tt.t.Stop()
	tt.t = nil
	tt.deadline = time.Time{}
}

func (tt *turnTimer) live(gen uint64) bool {
	return tt.t != nil && gen == tt.gen
}
