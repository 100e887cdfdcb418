package battle

import (
	"fmt"
	"time"

	"match3battle/internal/combat"
	"match3battle/internal/config"
)

// OptionsFromCatalog builds the options of a battle against the enemy of the
// quest named by ref. Roster, skills and rules come from the catalog; the
// caller fills in Rand, Clock, Listener, Progression and Logger.
func OptionsFromCatalog(cat *config.Catalog, ref Ref) (Options, error) {
	if cat == nil || cat.Monsters == nil || cat.World == nil {
		return Options{}, fmt.Errorf("%w: incomplete catalog", ErrInvalidSetup)
	}
	quest, ok := cat.World.FindQuest(ref.LocationID, ref.QuestID)
	if !ok {
		return Options{}, fmt.Errorf("%w: unknown quest %s/%s", ErrInvalidSetup, ref.LocationID, ref.QuestID)
	}
	enemy, ok := cat.Monsters.Find(quest.EnemyID)
	if !ok {
		return Options{}, fmt.Errorf("%w: quest %s names unknown enemy %q", ErrInvalidSetup, quest.ID, quest.EnemyID)
	}

	rules := cat.Rules.WithDefaults()
	var roster combat.Roster
	for _, def := range cat.Monsters.TeamDefs() {
		if def.MaxSP <= 0 {
			def.MaxSP = rules.MaxSP
		}
		roster = append(roster, combat.NewMember(def))
	}
	return Options{
		Size:        rules.GridSize,
		TurnTimeout: time.Duration(rules.TurnTimeoutMS) * time.Millisecond,
		SPPerGroup:  rules.SPPerGroup,
		Roster:      roster,
		Defender:    combat.NewCombatant(enemy),
		Skills:      combat.NewSkillBook(cat.Skills),
		Rules:       combat.RulesFrom(cat.Rules, cat.Elements),
		Ref:         ref,
	}, nil
}

// NewFromQuest starts a fresh battle for a quest. base supplies the
// collaborators (Rand, Clock, Listener, Progression, Logger).
func NewFromQuest(cat *config.Catalog, ref Ref, base Options) (*Session, error) {
	opts, err := OptionsFromCatalog(cat, ref)
	if err != nil {
		return nil, err
	}
	opts.Grid = base.Grid
	opts.Rand = base.Rand
	opts.Clock = base.Clock
	opts.Listener = base.Listener
	opts.Progression = base.Progression
	opts.Logger = base.Logger
	return New(opts)
}
