package combat

import (
	"match3battle/internal/config"
	"match3battle/internal/match3"
)

const (
	// ComboStep is the multiplier gained per cascade after the first.
	ComboStep = 0.5

	DefaultRollBase   = 0.9
	DefaultRollSpread = 0.4
)

// Rules are the tunable numbers of a battle. Zero fields take the defaults.
type Rules struct {
	ComboStep  float64
	RollBase   float64
	RollSpread float64
	Advantage  map[match3.Element]match3.Element
}

func DefaultRules() Rules {
	return Rules{ComboStep: ComboStep, RollBase: DefaultRollBase, RollSpread: DefaultRollSpread, Advantage: defaultAdvantage}
}

func (rules Rules) WithDefaults() Rules {
	d := DefaultRules()
	if rules.ComboStep <= 0 {
		rules.ComboStep = d.ComboStep
	}
	if rules.RollBase <= 0 {
		rules.RollBase = d.RollBase
	}
	if rules.RollSpread <= 0 {
		rules.RollSpread = d.RollSpread
	}
	if rules.Advantage == nil {
		rules.Advantage = d.Advantage
	}
	return rules
}

// RulesFrom reads the combat numbers out of the rules and elements catalogs.
func RulesFrom(rc config.RulesConfig, ec *config.ElementsConfig) Rules {
	rc = rc.WithDefaults()
	return Rules{
		ComboStep:  rc.ComboStep,
		RollBase:   rc.EnemyRollBase,
		RollSpread: rc.EnemyRollSpread,
		Advantage:  AdvantageFrom(ec),
	}.WithDefaults()
}
