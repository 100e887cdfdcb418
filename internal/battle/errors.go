package battle

import (
	"errors"
	"fmt"

	"match3battle/internal/match3"
)

// ErrInvalidTransition is the root of every rejected input. A rejected call
// leaves the session untouched.
var ErrInvalidTransition = errors.New("invalid state transition")

var (
	ErrBattleOver       = fmt.Errorf("%w: battle is over", ErrInvalidTransition)
	ErrBusy             = fmt.Errorf("%w: turn is resolving", ErrInvalidTransition)
	ErrAlreadyDragging  = fmt.Errorf("%w: drag in progress", ErrInvalidTransition)
	ErrNotDragging      = fmt.Errorf("%w: no drag in progress", ErrInvalidTransition)
	ErrNothingToResolve = fmt.Errorf("%w: nothing to resolve", ErrInvalidTransition)
	ErrUnknownMember    = fmt.Errorf("%w: unknown roster member", ErrInvalidTransition)
	ErrMemberDown       = fmt.Errorf("%w: roster member is down", ErrInvalidTransition)
	ErrSkillNotReady    = fmt.Errorf("%w: skill not ready", ErrInvalidTransition)
	ErrUnknownSkill     = fmt.Errorf("%w: member has no usable skill", ErrInvalidTransition)
)

var ErrInvalidSetup = errors.New("invalid battle setup")

func fmtOutOfBounds(p match3.Pos, size int) error {
	return fmt.Errorf("%w: %s on %dx%d grid", match3.ErrOutOfBounds, p, size, size)
}
