package battle

import (
	"time"

	"match3battle/internal/combat"
	"match3battle/internal/match3"
)

type EventType string

const (
	EventDragStarted    EventType = "drag_started"
	EventTilesSwapped   EventType = "tiles_swapped"
	EventTurnTimeout    EventType = "turn_timeout"
	EventMatchDetected  EventType = "match_detected"
	EventTilesRemoved   EventType = "tiles_removed"
	EventGridRefilled   EventType = "grid_refilled"
	EventDamageApplied  EventType = "damage_applied"
	EventMemberHit      EventType = "member_hit"
	EventSkillActivated EventType = "skill_activated"
	EventBattleEnded    EventType = "battle_ended"
)

// Event is one step of the stream a presentation layer animates. Only the
// fields relevant to Type are set.
type Event struct {
	Type             EventType           `json:"type"`
	Turn             int                 `json:"turn"`
	Combo            int                 `json:"combo,omitempty"`
	Groups           []match3.Group      `json:"groups,omitempty"`
	Cells            []match3.Pos        `json:"cells,omitempty"`
	Grid             [][]match3.Element  `json:"grid,omitempty"`
	Amount           int                 `json:"amount,omitempty"`
	TargetIsDefender bool                `json:"target_is_defender,omitempty"`
	Index            int                 `json:"index"`
	Skill            *combat.SkillEffect `json:"skill,omitempty"`
	Outcome          Result              `json:"outcome,omitempty"`
	Deadline         time.Time           `json:"deadline,omitzero"`
}

// Listener receives events after the session lock is released, so it may
// query the session. Events of one call arrive in order.
type Listener func(Event)
