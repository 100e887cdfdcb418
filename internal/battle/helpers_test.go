package battle

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"match3battle/internal/combat"
	"match3battle/internal/match3"
	"match3battle/internal/util"
)

var letters = map[byte]match3.Element{
	'F': match3.Fire, 'W': match3.Water, 'E': match3.Earth, 'L': match3.Light, 'D': match3.Dark, '.': "",
}

// boardOf builds a grid from letter rows; refill draws replay ints.
func boardOf(t *testing.T, ints []int, rows ...string) *match3.Grid {
	t.Helper()
	kinds := make([][]match3.Element, len(rows))
	for r, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		for i := 0; i < len(row); i++ {
			k, ok := letters[row[i]]
			require.Truef(t, ok, "bad cell %q", row[i])
			kinds[r] = append(kinds[r], k)
		}
	}
	g, err := match3.FromKinds(kinds, &util.Script{Ints: ints})
	require.NoError(t, err)
	return g
}

// rowOfFour has fire at row 0 cols 0..3 and no other run. Refilling with
// W E L D leaves no run.
func rowOfFour(t *testing.T) *match3.Grid {
	return boardOf(t, []int{1, 2, 3, 4},
		"F F F F D E",
		"E D L F W E",
		"D F W E L D",
		"W E L D F W",
		"L D F W E L",
		"F W E L D F",
	)
}

// rowOfThree has fire at row 0 cols 0..2 and no other run, before and after refill.
func rowOfThree(t *testing.T) *match3.Grid {
	return boardOf(t, []int{1, 2, 3},
		"F F F W D E",
		"E D L F W E",
		"D F W E L D",
		"W E L D F W",
		"L D F W E L",
		"F W E L D F",
	)
}

// nearMiss has no run; swapping (0,3) into (0,2) makes fire at row 0 cols 0..2.
func nearMiss(t *testing.T) *match3.Grid {
	return boardOf(t, []int{1, 2, 3},
		"F F W F D E",
		"E D L W W E",
		"D F W E L D",
		"W E L D F W",
		"L D F W E L",
		"F W E L D F",
	)
}

func member(id string, e match3.Element, hp, atk int, skill string) combat.Member {
	return combat.Member{
		Combatant: combat.Combatant{ID: id, Name: id, Element: e, MaxHP: hp, HP: hp, Attack: atk},
		MaxSP:     combat.DefaultMaxSP,
		SkillID:   skill,
	}
}

func team() combat.Roster {
	return combat.Roster{
		member("flare_cub", match3.Fire, 150, 22, "flare_rage"),
		member("dropletodon", match3.Water, 170, 18, "tide_mend"),
		member("mossling", match3.Earth, 200, 16, "moss_ward"),
	}
}

func dummy(hp, atk int) combat.Combatant {
	return combat.Combatant{ID: "dummy", Name: "Dummy", Element: match3.Light, MaxHP: hp, HP: hp, Attack: atk}
}

type fakeTimer struct {
	f       func()
	stopped bool
}

func (ft *fakeTimer) Stop() bool {
	was := !ft.stopped
	ft.stopped = true
	return was
}

// manualClock hands out timers that only fire when the test says so.
type manualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{f: f}
	c.timers = append(c.timers, ft)
	return ft
}

// fire runs the i-th timer's callback even if it was stopped, as a timer
// that already fired when Stop raced it would.
func (c *manualClock) fire(i int) {
	c.mu.Lock()
	ft := c.timers[i]
	c.mu.Unlock()
	ft.f()
}

func (c *manualClock) armed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ft := range c.timers {
		if !ft.stopped {
			n++
		}
	}
	return n
}

// recorder collects events and outcomes.
type recorder struct {
	mu       sync.Mutex
	events   []Event
	outcomes []Outcome
}

func (r *recorder) listen(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) ReportOutcome(_ context.Context, o Outcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
	return nil
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

func (r *recorder) first(typ EventType) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Type == typ {
			return ev, true
		}
	}
	return Event{}, false
}

type fixture struct {
	s     *Session
	clock *manualClock
	rec   *recorder
}

func newFixture(t *testing.T, opts Options) fixture {
	t.Helper()
	clock := newManualClock()
	rec := &recorder{}
	if opts.Clock == nil {
		opts.Clock = clock
	}
	if opts.Rand == nil {
		opts.Rand = &util.Script{}
	}
	opts.Listener = rec.listen
	if opts.Progression == nil {
		opts.Progression = rec
	}
	s, err := New(opts)
	require.NoError(t, err)
	return fixture{s: s, clock: clock, rec: rec}
}
