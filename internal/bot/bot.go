// Package bot picks drag moves for simulated and hinted turns.
package bot

import (
	"match3battle/internal/combat"
	"match3battle/internal/match3"
	"match3battle/internal/util"
)

// Move is one drag from From to the neighbouring cell To.
type Move struct {
	From  match3.Pos `json:"from"`
	To    match3.Pos `json:"to"`
	Score int        `json:"score"`
}

// Scorer values the groups a move would produce.
type Scorer func(groups []match3.Group) int

// CellCount scores a move by the number of tiles it clears.
func CellCount(groups []match3.Group) int {
	return len(match3.Cells(groups))
}

// RosterScorer prefers groups a living member attacks with, weighted by attack.
func RosterScorer(r combat.Roster) Scorer {
	return func(groups []match3.Group) int {
		score := 0
		for _, g := range groups {
			i := r.Attacker(g.Kind)
			if i < 0 {
				score += g.Size()
				continue
			}
			score += g.Size() * (1 + r[i].Attack)
		}
		return score
	}
}

// Best tries every swap of neighbours on a copy of g and returns the highest
// scoring one. The first move found wins ties. ok is false when no swap matches.
func Best(g *match3.Grid, score Scorer) (Move, bool) {
	if score == nil {
		score = CellCount
	}
	size := g.Size()
	var best Move
	found := false
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			from := match3.Pos{Row: r, Col: c}
			for _, to := range []match3.Pos{{Row: r, Col: c + 1}, {Row: r + 1, Col: c}} {
				if !g.InBounds(to) || g.At(from).Kind == g.At(to).Kind {
					continue
				}
				trial := g.Clone()
				if err := trial.Swap(from, to); err != nil {
					continue
				}
				groups := match3.FindMatchGroups(trial)
				if len(groups) == 0 {
					continue
				}
				if s := score(groups); !found || s > best.Score {
					best = Move{From: from, To: to, Score: s}
					found = true
				}
			}
		}
	}
	return best, found
}

// Choose returns Best, or a random neighbour swap when nothing matches.
func Choose(g *match3.Grid, score Scorer, rng util.Rand) Move {
	if m, ok := Best(g, score); ok {
		return m
	}
	size := g.Size()
	from := match3.Pos{Row: rng.Intn(size), Col: rng.Intn(size)}
	to := from
	if rng.Intn(2) == 0 {
		to.Col++
		if to.Col >= size {
			to.Col = from.Col - 1
		}
	} else {
		to.Row++
		if to.Row >= size {
			to.Row = from.Row - 1
		}
	}
	return Move{From: from, To: to}
}
