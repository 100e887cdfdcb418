package battle

import (
	"context"

	"match3battle/internal/combat"
)

// ActivateSkill fires the skill of a living member with a full meter. It is
// accepted while idle or dragging and rejected while a turn resolves.
func (s *Session) ActivateSkill(ctx context.Context, memberID string) (combat.SkillEffect, error) {
	s.mu.Lock()
	defer s.unlock()
	if err := s.guardInput(); err != nil {
		return combat.SkillEffect{}, err
	}
	i := s.roster.Index(memberID)
	if i < 0 {
		return combat.SkillEffect{}, ErrUnknownMember
	}
	m := s.roster[i]
	if !m.Alive() {
		return combat.SkillEffect{}, ErrMemberDown
	}
	if !m.Ready() {
		return combat.SkillEffect{}, ErrSkillNotReady
	}
	tpl, ok := s.skills.Lookup(m.SkillID)
	if !ok {
		return combat.SkillEffect{}, ErrUnknownSkill
	}

	var eff combat.SkillEffect
	s.roster, s.defender, eff = tpl.Apply(i, s.roster, s.defender)
	s.emit(Event{Type: EventSkillActivated, Index: i, Skill: &eff})
	s.logger.Debug("skill activated", "member", memberID, "skill", tpl.ID, "kind", tpl.Kind)
	if eff.DefenderDamage > 0 {
		s.emit(Event{Type: EventDamageApplied, Amount: eff.DefenderDamage, TargetIsDefender: true})
		if !s.defender.Alive() {
			s.finish(ctx, Victory)
		}
	}
	return eff, nil
}
