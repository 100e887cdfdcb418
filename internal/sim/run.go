// Package sim plays whole battles with the bot, for balancing runs.
package sim

import (
	"context"
	"encoding/json"
	"time"

	"match3battle/internal/battle"
	"match3battle/internal/bot"
	"match3battle/internal/config"
	"match3battle/internal/util"
)

const DefaultMaxTurns = 200

type Result struct {
	Seed           int64          `json:"seed"`
	Session        string         `json:"session"`
	LocationID     string         `json:"location_id"`
	QuestID        string         `json:"quest_id"`
	Outcome        battle.Result  `json:"outcome"`
	Win            bool           `json:"win"`
	Turns          int            `json:"turns"`
	TotalDamage    int            `json:"total_damage"`
	MaxCombo       int            `json:"max_combo"`
	Skills         int            `json:"skills"`
	DamageByMember map[string]int `json:"damage_by_member"`
	Events         []battle.Event `json:"events,omitempty"`
}

type Options struct {
	MaxTurns    int
	Record      bool
	Progression battle.Progression
	Registry    *battle.Registry
}

// idleClock never fires: the bot always releases before any deadline matters.
type idleClock struct{}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func (idleClock) Now() time.Time { return time.Now() }

func (idleClock) AfterFunc(time.Duration, func()) battle.Timer { return idleTimer{} }

// RunSingle plays one battle for ref to the end or to MaxTurns.
func RunSingle(ctx context.Context, cat *config.Catalog, ref battle.Ref, seed int64, opts Options) (Result, error) {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	res := Result{Seed: seed, LocationID: ref.LocationID, QuestID: ref.QuestID, DamageByMember: map[string]int{}}
	var listener battle.Listener
	if opts.Record {
		listener = func(ev battle.Event) { res.Events = append(res.Events, ev) }
	}
	s, err := battle.NewFromQuest(cat, ref, battle.Options{
		Rand:        util.New(seed),
		Clock:       idleClock{},
		Listener:    listener,
		Progression: opts.Progression,
	})
	if err != nil {
		return res, err
	}
	res.Session = s.ID()
	if opts.Registry != nil {
		opts.Registry.Add(s)
		// a battle cut off by MaxTurns or an error never ends on its own
		defer opts.Registry.End(s.ID())
	}
	moves := util.New(seed ^ 0x5f3759df)

	for res.Turns < opts.MaxTurns && !s.IsBattleOver() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		snap := s.CombatSnapshot()
		for _, m := range snap.Roster {
			if m.Alive() && m.Ready() && m.SkillID != "" {
				eff, err := s.ActivateSkill(ctx, m.ID)
				if err != nil {
					continue
				}
				res.Skills++
				if eff.DefenderDamage > 0 {
					res.TotalDamage += eff.DefenderDamage
					res.DamageByMember[m.ID] += eff.DefenderDamage
				}
			}
		}
		if s.IsBattleOver() {
			break
		}

		snap = s.CombatSnapshot()
		mv := bot.Choose(s.CurrentGrid(), bot.RosterScorer(snap.Roster), moves)
		if err := s.BeginDrag(mv.From); err != nil {
			return res, err
		}
		if err := s.MovePointer(mv.To); err != nil {
			return res, err
		}
		if err := s.Release(); err != nil {
			return res, err
		}
		tr, err := s.Resolve(ctx)
		if err != nil {
			return res, err
		}
		res.Turns = tr.Turn
		res.TotalDamage += tr.TotalDamage
		if tr.Cascades > res.MaxCombo {
			res.MaxCombo = tr.Cascades
		}
		for _, h := range tr.Hits {
			res.DamageByMember[snap.Roster[h.Member].ID] += h.Amount
		}
	}
	if o, ok := s.Outcome(); ok {
		res.Outcome = o
		res.Win = o == battle.Victory
	}
	return res, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
