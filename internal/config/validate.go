package config

import (
	"errors"
	"fmt"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

var elements = map[string]bool{"fire": true, "water": true, "earth": true, "light": true, "dark": true}

var skillKinds = map[string]bool{"damage_buff": true, "heal": true, "shield": true, "strike": true}

// Validate checks ids, elements and cross references. All problems are joined.
func (c *Catalog) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidCatalog}, args...)...))
	}

	if c.Elements != nil {
		seen := map[string]bool{}
		for _, e := range c.Elements.Elements {
			if !elements[e.ID] {
				bad("element %q is not a tile element", e.ID)
			}
			if seen[e.ID] {
				bad("duplicate element %q", e.ID)
			}
			seen[e.ID] = true
			if e.Beats != "" && !elements[e.Beats] {
				bad("element %q beats unknown element %q", e.ID, e.Beats)
			}
		}
	}

	skills := map[string]bool{}
	if c.Skills != nil {
		for _, s := range c.Skills.Skills {
			if skills[s.ID] {
				bad("duplicate skill %q", s.ID)
			}
			skills[s.ID] = true
			if !skillKinds[s.Kind] {
				bad("skill %q: unknown kind %q", s.ID, s.Kind)
			}
			if s.Kind == "shield" && (s.Value < 0 || s.Value > 1) {
				bad("skill %q: shield %.2f outside [0,1]", s.ID, s.Value)
			}
		}
	}

	monsters := map[string]bool{}
	if c.Monsters != nil {
		for _, m := range c.Monsters.Monsters {
			if monsters[m.ID] {
				bad("duplicate monster %q", m.ID)
			}
			monsters[m.ID] = true
			if !elements[m.Element] {
				bad("monster %q: unknown element %q", m.ID, m.Element)
			}
			if m.HP <= 0 {
				bad("monster %q: hp must be positive", m.ID)
			}
			if m.Skill != "" && !skills[m.Skill] {
				bad("monster %q: unknown skill %q", m.ID, m.Skill)
			}
		}
		if len(c.Monsters.Team) == 0 {
			bad("team is empty")
		}
		for _, id := range c.Monsters.Team {
			if !monsters[id] {
				bad("team member %q is not a monster", id)
			}
		}
	}

	if c.World != nil {
		locs := map[string]bool{}
		for _, l := range c.World.Locations {
			if locs[l.ID] {
				bad("duplicate location %q", l.ID)
			}
			locs[l.ID] = true
		}
		for _, l := range c.World.Locations {
			for _, q := range l.Quests {
				if q.EnemyID != "" && !monsters[q.EnemyID] {
					bad("quest %s/%s: unknown enemy %q", l.ID, q.ID, q.EnemyID)
				}
				if q.UnlockLocationID != "" && !locs[q.UnlockLocationID] {
					bad("quest %s/%s: unknown location %q", l.ID, q.ID, q.UnlockLocationID)
				}
			}
		}
	}
	return errors.Join(errs...)
}
