package combat

import (
	"math"

	"match3battle/internal/config"
)

type SkillKind string

const (
	SkillDamageBuff SkillKind = "damage_buff"
	SkillHeal       SkillKind = "heal"
	SkillShield     SkillKind = "shield"
	SkillStrike     SkillKind = "strike"
)

// SkillTemplate is a catalog entry. Value means: bonus fraction for
// damage_buff, fraction of MaxHP for heal, reduction fraction for shield,
// attack multiplier for strike. Turns is the buff length or shielded hits.
type SkillTemplate struct {
	ID    string
	Kind  SkillKind
	Value float64
	Turns int
	Note  string
}

// SkillEffect reports what an activation changed.
type SkillEffect struct {
	Skill          string      `json:"skill"`
	Kind           SkillKind   `json:"kind"`
	User           int         `json:"user"`
	Healed         map[int]int `json:"healed,omitempty"`
	Shielded       []int       `json:"shielded,omitempty"`
	DefenderDamage int         `json:"defender_damage,omitempty"`
}

type SkillBook struct {
	byID map[string]SkillTemplate
}

// builtinSkills backs a book built without a catalog.
var builtinSkills = []SkillTemplate{
	{ID: "flare_rage", Kind: SkillDamageBuff, Value: 1.0, Turns: 2, Note: "+100% damage for 2 turns"},
	{ID: "tide_mend", Kind: SkillHeal, Value: 0.2, Note: "heal living allies for 20% max hp"},
	{ID: "moss_ward", Kind: SkillShield, Value: 0.3, Turns: 1, Note: "living allies block 30% of the next hit"},
}

func NewSkillBook(cfg *config.SkillsConfig) *SkillBook {
	sb := &SkillBook{byID: map[string]SkillTemplate{}}
	if cfg == nil {
		for _, tpl := range builtinSkills {
			sb.byID[tpl.ID] = tpl
		}
		return sb
	}
	for _, s := range cfg.Skills {
		sb.byID[s.ID] = SkillTemplate{
			ID:    s.ID,
			Kind:  SkillKind(s.Kind),
			Value: s.Value,
			Turns: s.Turns,
			Note:  s.Note,
		}
	}
	return sb
}

func (sb *SkillBook) Lookup(id string) (SkillTemplate, bool) {
	if sb == nil || id == "" {
		return SkillTemplate{}, false
	}
	tpl, ok := sb.byID[id]
	return tpl, ok
}

// Apply fires the skill for roster[user] and empties the user's meter.
// Readiness is checked by the caller.
func (t SkillTemplate) Apply(user int, r Roster, defender Combatant) (Roster, Combatant, SkillEffect) {
	out := r.Clone()
	eff := SkillEffect{Skill: t.ID, Kind: t.Kind, User: user}
	switch t.Kind {
	case SkillDamageBuff:
		out[user].DamageBuff = t.Value
		out[user].BuffTurns = t.Turns
	case SkillHeal:
		eff.Healed = map[int]int{}
		for i := range out {
			if !out[i].Alive() {
				continue
			}
			before := out[i].HP
			out[i].Combatant = out[i].Combatant.Heal(int(math.Round(float64(out[i].MaxHP) * t.Value)))
			eff.Healed[i] = out[i].HP - before
		}
	case SkillShield:
		for i := range out {
			if !out[i].Alive() {
				continue
			}
			out[i].Shield = math.Min(math.Max(t.Value, 0), 1)
			out[i].ShieldTurns = t.Turns
			eff.Shielded = append(eff.Shielded, i)
		}
	case SkillStrike:
		eff.DefenderDamage = int(math.Round(float64(out[user].Attack) * t.Value))
		defender = defender.TakeDamage(eff.DefenderDamage)
	}
	out[user] = out[user].ResetSP()
	return out, defender, eff
}
