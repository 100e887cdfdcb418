package combat

import (
	"math"

	"match3battle/internal/config"
	"match3battle/internal/match3"
)

const (
	DefaultMaxSP      = 10
	DefaultSPPerGroup = 3
)

// Combatant is the stat block shared by roster members and the opponent.
type Combatant struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Element match3.Element `json:"element"`
	MaxHP   int            `json:"max_hp"`
	HP      int            `json:"hp"`
	Attack  int            `json:"attack"`
	Img     string         `json:"img,omitempty"`
}

func NewCombatant(def config.MonsterDef) Combatant {
	return Combatant{
		ID:      def.ID,
		Name:    def.Name,
		Element: match3.Element(def.Element),
		MaxHP:   def.HP,
		HP:      def.HP,
		Attack:  def.Attack,
		Img:     def.Img,
	}
}

func (c Combatant) Alive() bool { return c.HP > 0 }

// TakeDamage returns c with hp lowered by n, floored at 0.
func (c Combatant) TakeDamage(n int) Combatant {
	if n < 0 {
		n = 0
	}
	c.HP -= n
	if c.HP < 0 {
		c.HP = 0
	}
	return c
}

// Heal returns c with hp raised by n, capped at MaxHP.
func (c Combatant) Heal(n int) Combatant {
	if n < 0 {
		n = 0
	}
	c.HP += n
	if c.HP > c.MaxHP {
		c.HP = c.MaxHP
	}
	return c
}

// Member is a roster slot: a combatant plus its skill meter and timed effects.
type Member struct {
	Combatant
	SP          int     `json:"sp"`
	MaxSP       int     `json:"max_sp"`
	DamageBuff  float64 `json:"damage_buff"`
	BuffTurns   int     `json:"buff_turns"`
	Shield      float64 `json:"shield"`
	ShieldTurns int     `json:"shield_turns"`
	SkillID     string  `json:"skill,omitempty"`
}

func NewMember(def config.MonsterDef) Member {
	maxSP := def.MaxSP
	if maxSP <= 0 {
		maxSP = DefaultMaxSP
	}
	return Member{Combatant: NewCombatant(def), MaxSP: maxSP, SkillID: def.Skill}
}

// Charge adds amount to the meter, clamped to [0, MaxSP].
func (m Member) Charge(amount int) Member {
	m.SP += amount
	if m.SP > m.MaxSP {
		m.SP = m.MaxSP
	}
	if m.SP < 0 {
		m.SP = 0
	}
	return m
}

// Ready reports a full meter. Charge clamps, so equality is exact.
func (m Member) Ready() bool { return m.MaxSP > 0 && m.SP == m.MaxSP }

func (m Member) ResetSP() Member {
	m.SP = 0
	return m
}

// Absorb applies one incoming hit. An active shield scales it by (1 - Shield)
// and spends one shield turn; the shield value clears when the turns run out.
func (m Member) Absorb(raw int) (Member, int) {
	applied := raw
	if m.ShieldTurns > 0 {
		applied = int(math.Round(float64(raw) * (1 - m.Shield)))
		m.ShieldTurns--
		if m.ShieldTurns == 0 {
			m.Shield = 0
		}
	}
	m.Combatant = m.Combatant.TakeDamage(applied)
	return m, applied
}

// DecayBuff spends one turn of the damage buff.
func (m Member) DecayBuff() Member {
	if m.BuffTurns > 0 {
		m.BuffTurns--
		if m.BuffTurns == 0 {
			m.DamageBuff = 0
		}
	}
	return m
}
