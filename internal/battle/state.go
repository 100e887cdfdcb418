package battle

import (
	"context"

	"github.com/looplab/fsm"
)

type State string

const (
	StateIdle         State = "idle"
	StateDragging     State = "dragging"
	StateResolving    State = "resolving"
	StateOpponentTurn State = "opponent_turn"
	StateBattleOver   State = "battle_over"
)

const (
	evBeginDrag    = "begin_drag"
	evRelease      = "release"
	evResolved     = "resolved"
	evOpponentDone = "opponent_done"
	evFinish       = "finish"
)

// newMachine builds the turn machine. BattleOver is absorbing: no event leaves it.
func newMachine(onEnter func(from, to State)) *fsm.FSM {
	live := []string{string(StateIdle), string(StateDragging), string(StateResolving), string(StateOpponentTurn)}
	return fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: evBeginDrag, Src: []string{string(StateIdle)}, Dst: string(StateDragging)},
			{Name: evRelease, Src: []string{string(StateDragging)}, Dst: string(StateResolving)},
			{Name: evResolved, Src: []string{string(StateResolving)}, Dst: string(StateOpponentTurn)},
			{Name: evOpponentDone, Src: []string{string(StateOpponentTurn)}, Dst: string(StateIdle)},
			{Name: evFinish, Src: live, Dst: string(StateBattleOver)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				if onEnter != nil {
					onEnter(State(e.Src), State(e.Dst))
				}
			},
		},
	)
}
