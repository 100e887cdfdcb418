package combat

import (
	"math"

	"match3battle/internal/match3"
)

// ComboMultiplier is 1 for the first cascade of a turn, 1.5 for the second,
// and so on without a cap.
func ComboMultiplier(comboIndex int) float64 {
	return DefaultRules().ComboMultiplier(comboIndex)
}

func (rules Rules) ComboMultiplier(comboIndex int) float64 {
	if comboIndex < 1 {
		comboIndex = 1
	}
	return 1 + float64(comboIndex-1)*rules.ComboStep
}

// GroupHit is the damage one match group dealt through its attacker.
type GroupHit struct {
	Group  int            `json:"group"`
	Member int            `json:"member"`
	Kind   match3.Element `json:"kind"`
	Amount int            `json:"amount"`
}

func DamageForGroups(r Roster, defender Combatant, groups []match3.Group, comboIndex int) (int, []GroupHit) {
	return DefaultRules().DamageForGroups(r, defender, groups, comboIndex)
}

// DamageForGroups scores one cascade pass against the defender. Each group is
// rounded on its own; groups without a living attacker deal nothing.
func (rules Rules) DamageForGroups(r Roster, defender Combatant, groups []match3.Group, comboIndex int) (int, []GroupHit) {
	combo := rules.ComboMultiplier(comboIndex)
	total := 0
	var hits []GroupHit
	for gi, g := range groups {
		i := r.Attacker(g.Kind)
		if i < 0 {
			continue
		}
		m := r[i]
		dmg := float64(m.Attack) * float64(g.Size()) * combo * rules.ElementMultiplier(g.Kind, defender.Element) * (1 + m.DamageBuff)
		amount := int(math.Round(dmg))
		total += amount
		hits = append(hits, GroupHit{Group: gi, Member: i, Kind: g.Kind, Amount: amount})
	}
	return total, hits
}
