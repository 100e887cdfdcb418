package battle

import (
	"context"

	"match3battle/internal/combat"
	"match3battle/internal/match3"
)

// StepResult describes one atomic transition of a resolving turn.
type StepResult struct {
	State    State            `json:"state"`
	Combo    int              `json:"combo,omitempty"`
	Groups   []match3.Group   `json:"groups,omitempty"`
	Damage   int              `json:"damage,omitempty"`
	Enemy    *combat.EnemyHit `json:"enemy,omitempty"`
	TurnDone bool             `json:"turn_done"`
}

// Step performs the next unit of work of the turn being resolved: one cascade
// pass while Resolving, the opponent's attack while OpponentTurn. A caller
// that animates calls Step, plays the emitted events, and calls Step again.
func (s *Session) Step(ctx context.Context) (StepResult, error) {
	s.mu.Lock()
	defer s.unlock()
	switch s.state() {
	case StateResolving:
		return s.cascade(ctx)
	case StateOpponentTurn:
		return s.opponentTurn(ctx)
	case StateBattleOver:
		return StepResult{State: StateBattleOver}, ErrBattleOver
	}
	return StepResult{State: s.state()}, ErrNothingToResolve
}

// Resolve steps until control returns to the player or the battle ends.
func (s *Session) Resolve(ctx context.Context) (TurnResult, error) {
	switch st := s.State(); st {
	case StateResolving, StateOpponentTurn:
	case StateBattleOver:
		return TurnResult{}, ErrBattleOver
	default:
		return TurnResult{}, ErrNothingToResolve
	}
	for {
		if err := ctx.Err(); err != nil {
			return s.turnResult(), err
		}
		res, err := s.Step(ctx)
		if err != nil {
			return s.turnResult(), err
		}
		if res.TurnDone {
			return s.turnResult(), nil
		}
	}
}

func (s *Session) turnResult() TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr := s.current
	tr.Hits = append([]combat.GroupHit(nil), s.current.Hits...)
	return tr
}

// cascade runs one detect, score, remove, collapse and refill pass.
func (s *Session) cascade(ctx context.Context) (StepResult, error) {
	groups := match3.FindMatchGroups(s.grid)
	if len(groups) == 0 {
		s.roster = s.roster.DecayBuffs()
		s.combo = 0
		if !s.roster.AnyAlive() {
			s.finish(ctx, Defeat)
			return StepResult{State: s.state(), TurnDone: true}, nil
		}
		if err := s.fire(evResolved); err != nil {
			return StepResult{State: s.state()}, err
		}
		return StepResult{State: s.state()}, nil
	}

	s.combo++
	s.current.Cascades = s.combo
	s.current.Groups += len(groups)
	s.emit(Event{Type: EventMatchDetected, Groups: groups, Combo: s.combo})

	s.roster = s.roster.ChargeGroups(groups, s.spPerGroup)
	total, hits := s.rules.DamageForGroups(s.roster, s.defender, groups, s.combo)
	s.defender = s.defender.TakeDamage(total)
	s.current.TotalDamage += total
	s.current.Hits = append(s.current.Hits, hits...)
	s.emit(Event{Type: EventDamageApplied, Amount: total, TargetIsDefender: true, Combo: s.combo})
	s.logger.Debug("cascade", "combo", s.combo, "groups", len(groups), "damage", total, "defender_hp", s.defender.HP)

	res := StepResult{Combo: s.combo, Groups: groups, Damage: total}
	if !s.defender.Alive() {
		s.finish(ctx, Victory)
		res.State, res.TurnDone = s.state(), true
		return res, nil
	}

	cells := match3.Cells(groups)
	if err := s.grid.RemoveMatches(cells); err != nil {
		return res, err
	}
	s.emit(Event{Type: EventTilesRemoved, Cells: cells, Combo: s.combo})
	s.grid.Collapse()
	s.grid.Refill()
	s.emit(Event{Type: EventGridRefilled, Grid: s.grid.Kinds(), Combo: s.combo})
	res.State = s.state()
	return res, nil
}

// opponentTurn lets the defender strike one random living member.
func (s *Session) opponentTurn(ctx context.Context) (StepResult, error) {
	roster, hit, ok := s.rules.EnemyAction(s.rng, s.defender, s.roster)
	res := StepResult{}
	if ok {
		s.roster = roster
		s.current.Enemy = &hit
		res.Enemy = &hit
		s.emit(Event{Type: EventMemberHit, Index: hit.Target, Amount: hit.Applied})
		s.emit(Event{Type: EventDamageApplied, Index: hit.Target, Amount: hit.Applied})
		s.logger.Debug("opponent hit", "target", s.roster[hit.Target].ID, "raw", hit.Raw, "applied", hit.Applied)
	}
	res.TurnDone = true
	if !s.roster.AnyAlive() {
		s.finish(ctx, Defeat)
		res.State = s.state()
		return res, nil
	}
	if err := s.fire(evOpponentDone); err != nil {
		return res, err
	}
	res.State = s.state()
	return res, nil
}
