package sim

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match3battle/internal/battle"
	"match3battle/internal/config"
	"match3battle/internal/world"
)

func catalog(t *testing.T) *config.Catalog {
	t.Helper()
	cat, err := config.LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)
	return cat
}

func TestRunSingleFinishes(t *testing.T) {
	cat := catalog(t)
	tracker := world.NewTracker(cat.World, nil)
	reg := battle.NewRegistry(nil)
	ref := battle.Ref{LocationID: "forest", QuestID: "forest_1"}

	res, err := RunSingle(context.Background(), cat, ref, 42, Options{Record: true, Progression: tracker, Registry: reg})
	require.NoError(t, err)
	require.NotEmpty(t, res.Outcome, "battle reaches an end within the turn cap")
	assert.Positive(t, res.Turns)
	assert.Positive(t, res.TotalDamage)
	assert.NotEmpty(t, res.Events)
	assert.Equal(t, battle.EventBattleEnded, res.Events[len(res.Events)-1].Type)
	assert.Zero(t, reg.Len())

	q, err := tracker.Quest("forest", "forest_1")
	require.NoError(t, err)
	assert.Equal(t, res.Win, q.Completed)
}

func TestRunSingleDeterministic(t *testing.T) {
	cat := catalog(t)
	ref := battle.Ref{LocationID: "forest", QuestID: "forest_2"}
	a, err := RunSingle(context.Background(), cat, ref, 7, Options{})
	require.NoError(t, err)
	b, err := RunSingle(context.Background(), cat, ref, 7, Options{})
	require.NoError(t, err)
	a.Session, b.Session = "", ""
	assert.Equal(t, a, b)
}

func TestRunSingleUnknownQuest(t *testing.T) {
	_, err := RunSingle(context.Background(), catalog(t), battle.Ref{LocationID: "forest", QuestID: "x"}, 1, Options{})
	assert.ErrorIs(t, err, battle.ErrInvalidSetup)
}

func TestRunBatch(t *testing.T) {
	sum := RunBatch(context.Background(), catalog(t), battle.Ref{LocationID: "forest", QuestID: "forest_1"}, 1, 12, 4, Options{MaxTurns: 50})
	assert.Equal(t, 12, sum.Runs)
	assert.Zero(t, sum.Failed)
	assert.GreaterOrEqual(t, sum.WinRate, 0.0)
	assert.LessOrEqual(t, sum.WinRate, 1.0)
	assert.Positive(t, sum.AvgTurns)

	total := 0
	for _, share := range sum.ByMember {
		total += share.Total
	}
	assert.Equal(t, sum.TotalDamage, total)
}

func TestRunSingleTurnCapLeavesRegistry(t *testing.T) {
	cat := catalog(t)
	reg := battle.NewRegistry(nil)
	ref := battle.Ref{LocationID: "forest", QuestID: "forest_1"}

	res, err := RunSingle(context.Background(), cat, ref, 42, Options{MaxTurns: 1, Registry: reg})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turns)
	assert.Zero(t, reg.Len())
	_, ok := reg.Get(res.Session)
	assert.False(t, ok)
}
