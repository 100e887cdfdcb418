package battle

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match3battle/internal/combat"
	"match3battle/internal/config"
	"match3battle/internal/match3"
	"match3battle/internal/util"
)

func TestRegistryDropsEndedSessions(t *testing.T) {
	reg := NewRegistry(nil)
	s, err := reg.Start(Options{
		Roster:   combat.Roster{member("cub", match3.Fire, 100, 25, "")},
		Defender: dummy(20, 5),
		Grid:     rowOfThree(t),
		Clock:    newManualClock(),
	})
	require.NoError(t, err)
	got, ok := reg.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)
	assert.Equal(t, 1, reg.Len())

	require.NoError(t, s.BeginDrag(match3.Pos{}))
	require.NoError(t, s.Release())
	_, err = s.Resolve(context.Background())
	require.NoError(t, err)
	require.True(t, s.IsBattleOver())

	_, ok = reg.Get(s.ID())
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
	reg.End(s.ID())
}

func TestRegistryConcurrentStarts(t *testing.T) {
	reg := NewRegistry(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			_, err := reg.Start(Options{Roster: team(), Defender: dummy(100, 5), Rand: util.New(seed), Clock: newManualClock()})
			assert.NoError(t, err)
		}(int64(i + 1))
	}
	wg.Wait()
	assert.Equal(t, 16, reg.Len())
}

func TestNewFromQuest(t *testing.T) {
	cat, err := config.LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)

	ref := Ref{LocationID: "forest", QuestID: "forest_1"}
	s, err := NewFromQuest(cat, ref, Options{Rand: util.New(3), Clock: newManualClock()})
	require.NoError(t, err)

	snap := s.CombatSnapshot()
	assert.Equal(t, "void_bat", snap.Defender.ID)
	assert.Equal(t, 260, snap.Defender.HP)
	assert.Equal(t, match3.Dark, snap.Defender.Element)
	require.Len(t, snap.Roster, 3)
	assert.Equal(t, "flare_cub", snap.Roster[0].ID)
	assert.Equal(t, 10, snap.Roster[0].MaxSP)
	assert.Equal(t, 6, s.CurrentGrid().Size())

	opts, err := OptionsFromCatalog(cat, ref)
	require.NoError(t, err)
	assert.Equal(t, combat.RulesFrom(cat.Rules, cat.Elements), opts.Rules)
	assert.Equal(t, 0.5, opts.Rules.ComboStep)
	assert.Equal(t, 2.0, opts.Rules.ElementMultiplier(match3.Water, match3.Fire))

	_, err = NewFromQuest(cat, Ref{LocationID: "forest", QuestID: "nope"}, Options{})
	assert.ErrorIs(t, err, ErrInvalidSetup)
	_, err = NewFromQuest(nil, ref, Options{})
	assert.ErrorIs(t, err, ErrInvalidSetup)
}

func TestFanout(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	err := Fanout{a, nil, b}.ReportOutcome(context.Background(), Outcome{Result: Victory})
	require.NoError(t, err)
	assert.Len(t, a.outcomes, 1)
	assert.Len(t, b.outcomes, 1)
}
