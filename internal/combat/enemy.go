package combat

import (
	"math"

	"match3battle/internal/util"
)

// EnemyHit describes one opponent attack.
type EnemyHit struct {
	Target   int  `json:"target"`
	Raw      int  `json:"raw"`
	Applied  int  `json:"applied"`
	Shielded bool `json:"shielded"`
}

func EnemyAction(rng util.Rand, enemy Combatant, r Roster) (Roster, EnemyHit, bool) {
	return DefaultRules().EnemyAction(rng, enemy, r)
}

// EnemyAction picks a living member uniformly, rolls RollBase..RollBase+RollSpread
// of the enemy's attack (90%..130% by default) and lets the target's shield
// absorb it. The target is drawn before the roll. With nobody alive it does
// nothing and reports false.
func (rules Rules) EnemyAction(rng util.Rand, enemy Combatant, r Roster) (Roster, EnemyHit, bool) {
	living := r.Living()
	if len(living) == 0 || !enemy.Alive() {
		return r, EnemyHit{Target: -1}, false
	}
	idx := living[rng.Intn(len(living))]
	raw := int(math.Round(float64(enemy.Attack) * (rules.RollBase + rng.Float64()*rules.RollSpread)))

	out := r.Clone()
	shielded := out[idx].ShieldTurns > 0
	var applied int
	out[idx], applied = out[idx].Absorb(raw)
	return out, EnemyHit{Target: idx, Raw: raw, Applied: applied, Shielded: shielded}, true
}
