package battle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match3battle/internal/match3"
)

func TestTimeoutForcesRelease(t *testing.T) {
	f := newFixture(t, Options{Roster: team(), Defender: dummy(1000, 5), Grid: rowOfFour(t)})

	require.NoError(t, f.s.BeginDrag(match3.Pos{Row: 2, Col: 2}))
	started, ok := f.rec.first(EventDragStarted)
	require.True(t, ok)
	assert.Equal(t, f.clock.Now().Add(DefaultTurnTimeout), started.Deadline)
	assert.Equal(t, started.Deadline, f.s.CombatSnapshot().Deadline)

	f.clock.fire(0)
	assert.Equal(t, StateResolving, f.s.State())
	assert.Equal(t, []EventType{EventDragStarted, EventTurnTimeout}, f.rec.types())
	assert.True(t, f.s.CombatSnapshot().Deadline.IsZero())
	assert.ErrorIs(t, f.s.Release(), ErrBusy)

	tr, err := f.s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 88, tr.TotalDamage)
}

func TestStaleTimeoutIgnored(t *testing.T) {
	f := newFixture(t, Options{Roster: team(), Defender: dummy(1000, 5), Grid: rowOfFour(t)})
	ctx := context.Background()

	require.NoError(t, f.s.BeginDrag(match3.Pos{}))
	require.NoError(t, f.s.Release())
	f.clock.fire(0)
	assert.Equal(t, StateResolving, f.s.State())
	_, ok := f.rec.first(EventTurnTimeout)
	assert.False(t, ok)

	_, err := f.s.Resolve(ctx)
	require.NoError(t, err)
	require.NoError(t, f.s.BeginDrag(match3.Pos{Row: 4, Col: 4}))

	f.clock.fire(0)
	assert.Equal(t, StateDragging, f.s.State(), "first turn's timer must not end the second drag")
	f.clock.fire(1)
	assert.Equal(t, StateResolving, f.s.State())
}

func TestTimerDisarmIdempotent(t *testing.T) {
	clock := newManualClock()
	tt := turnTimer{clock: clock, d: time.Second}
	var fired []uint64
	deadline := tt.arm(func(gen uint64) { fired = append(fired, gen) })
	assert.Equal(t, clock.Now().Add(time.Second), deadline)
	assert.True(t, tt.live(1))

	tt.disarm()
	tt.disarm()
	assert.False(t, tt.live(1))
	assert.True(t, tt.deadline.IsZero())
	assert.Zero(t, clock.armed())

	tt.arm(func(gen uint64) { fired = append(fired, gen) })
	assert.False(t, tt.live(1))
	assert.True(t, tt.live(2))
	clock.fire(1)
	assert.Equal(t, []uint64{2}, fired)
}

func TestTimeoutWithRealClock(t *testing.T) {
	f := newFixture(t, Options{
		Roster:      team(),
		Defender:    dummy(1000, 5),
		Grid:        rowOfFour(t),
		Clock:       realClock{},
		TurnTimeout: 10 * time.Millisecond,
	})
	require.NoError(t, f.s.BeginDrag(match3.Pos{}))
	assert.Eventually(t, func() bool { return f.s.State() == StateResolving }, time.Second, 5*time.Millisecond)
}
