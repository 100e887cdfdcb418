package combat

import (
	"match3battle/internal/config"
	"match3battle/internal/match3"
)

// defaultAdvantage maps an attacking kind to the defending element it doubles against.
var defaultAdvantage = map[match3.Element]match3.Element{
	match3.Fire:  match3.Earth,
	match3.Earth: match3.Water,
	match3.Water: match3.Fire,
	match3.Light: match3.Dark,
	match3.Dark:  match3.Light,
}

const advantageMul = 2.0

// AdvantageFrom builds the advantage table from the elements catalog. A nil
// catalog yields the built-in table.
func AdvantageFrom(ec *config.ElementsConfig) map[match3.Element]match3.Element {
	if ec == nil || len(ec.Elements) == 0 {
		return defaultAdvantage
	}
	out := make(map[match3.Element]match3.Element, len(ec.Elements))
	for _, e := range ec.Elements {
		if e.Beats != "" {
			out[match3.Element(e.ID)] = match3.Element(e.Beats)
		}
	}
	return out
}

func ElementMultiplier(atk, def match3.Element) float64 {
	return DefaultRules().ElementMultiplier(atk, def)
}

func (rules Rules) ElementMultiplier(atk, def match3.Element) float64 {
	adv := rules.Advantage
	if adv == nil {
		adv = defaultAdvantage
	}
	if target, ok := adv[atk]; ok && target == def {
		return advantageMul
	}
	return 1.0
}
