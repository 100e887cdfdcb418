package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAllAssets(t *testing.T) {
	cat, err := LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)

	assert.Equal(t, []string{"flare_cub", "dropletodon", "mossling"}, cat.Monsters.Team)
	team := cat.Monsters.TeamDefs()
	require.Len(t, team, 3)
	assert.Equal(t, "fire", team[0].Element)
	assert.Equal(t, 22, team[0].Attack)

	bat, ok := cat.Monsters.Find("void_bat")
	require.True(t, ok)
	assert.Equal(t, 260, bat.HP)
	assert.Equal(t, "dark", bat.Element)

	assert.Len(t, cat.Skills.Skills, 3)
	require.Len(t, cat.World.Locations, 3)
	assert.True(t, cat.World.Locations[0].Unlocked)
	assert.Equal(t, DefaultRules(), cat.Rules)
	require.NotNil(t, cat.Elements)
	require.Len(t, cat.Elements.Elements, 5)
	assert.Equal(t, ElementDef{ID: "fire", Beats: "earth"}, cat.Elements.Elements[0])
}

func TestLoadAllMissingFile(t *testing.T) {
	_, err := LoadAll(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadAllRulesOptional(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"monsters.yaml", "skills.yaml", "world.yaml"} {
		b, err := os.ReadFile(filepath.Join("..", "..", "assets", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), b, 0o644))
	}
	cat, err := LoadAll(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), cat.Rules)
	assert.Nil(t, cat.Elements)
}

func TestLoadAllBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "monsters.yaml"), []byte("team: [unterminated"), 0o644))
	_, err := LoadAll(dir)
	assert.Error(t, err)
}

func TestRulesWithDefaults(t *testing.T) {
	rc := RulesConfig{GridSize: 8}.WithDefaults()
	assert.Equal(t, 8, rc.GridSize)
	assert.Equal(t, 5000, rc.TurnTimeoutMS)
	assert.Equal(t, 3, rc.SPPerGroup)
	assert.Equal(t, 10, rc.MaxSP)
	assert.Equal(t, 0.5, rc.ComboStep)
	assert.Equal(t, 0.9, rc.EnemyRollBase)
	assert.Equal(t, 0.4, rc.EnemyRollSpread)

	rc = RulesConfig{ComboStep: 1, EnemyRollBase: 1, EnemyRollSpread: 0.1}.WithDefaults()
	assert.Equal(t, 1.0, rc.ComboStep)
	assert.Equal(t, 1.0, rc.EnemyRollBase)
	assert.Equal(t, 0.1, rc.EnemyRollSpread)
}

func TestValidate(t *testing.T) {
	cat := &Catalog{
		Elements: &ElementsConfig{Elements: []ElementDef{
			{ID: "fire", Beats: "earth"},
			{ID: "fire", Beats: "wood"},
			{ID: "steam"},
		}},
		Monsters: &MonstersConfig{
			Team: []string{"a", "ghost"},
			Monsters: []MonsterDef{
				{ID: "a", Element: "fire", HP: 10, Skill: "nope"},
				{ID: "a", Element: "ice", HP: 0},
			},
		},
		Skills: &SkillsConfig{Skills: []Skill{
			{ID: "s", Kind: "shield", Value: 1.5},
			{ID: "t", Kind: "teleport"},
		}},
		World: &WorldConfig{Locations: []LocationDef{
			{ID: "l", Quests: []QuestDef{{ID: "q", EnemyID: "zzz", UnlockLocationID: "nowhere"}}},
		}},
	}
	err := cat.Validate()
	require.ErrorIs(t, err, ErrInvalidCatalog)
	for _, want := range []string{
		`duplicate monster "a"`,
		`unknown element "ice"`,
		`unknown skill "nope"`,
		`team member "ghost"`,
		`shield 1.50`,
		`unknown kind "teleport"`,
		`unknown enemy "zzz"`,
		`unknown location "nowhere"`,
		`hp must be positive`,
		`duplicate element "fire"`,
		`beats unknown element "wood"`,
		`element "steam" is not a tile element`,
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "info", s.App.LogLevel)
	assert.Equal(t, "assets", s.App.AssetsDir)
	assert.False(t, s.NATS.Enabled)
	assert.Equal(t, "match3.battle.outcome", s.NATS.Subject)
	assert.Equal(t, 2*time.Second, s.NATS.ReconnectWait)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  log_level: debug\n  seed: 7\nnats:\n  enabled: true\n  reconnect_wait: 500ms\n"), 0o644))
	t.Setenv("MATCH3_NATS_URL", "nats://bus:4222")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.App.LogLevel)
	assert.Equal(t, int64(7), s.App.Seed)
	assert.True(t, s.NATS.Enabled)
	assert.Equal(t, 500*time.Millisecond, s.NATS.ReconnectWait)
	assert.Equal(t, "nats://bus:4222", s.NATS.URL)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestFindQuest(t *testing.T) {
	cat, err := LoadAll(filepath.Join("..", "..", "assets"))
	require.NoError(t, err)

	q, ok := cat.World.FindQuest("forest", "forest_boss")
	require.True(t, ok)
	assert.Equal(t, "forest_boss", q.EnemyID)
	assert.Equal(t, "volcano", q.UnlockLocationID)

	_, ok = cat.World.FindQuest("volcano", "forest_1")
	assert.False(t, ok)
	_, ok = cat.World.FindQuest("moon", "forest_1")
	assert.False(t, ok)

	var empty *WorldConfig
	_, ok = empty.FindLocation("forest")
	assert.False(t, ok)
}
