package battle

import (
	"match3battle/internal/match3"
)

// guardInput rejects player input while the session cannot take it.
func (s *Session) guardInput() error {
	switch s.state() {
	case StateBattleOver:
		return ErrBattleOver
	case StateResolving, StateOpponentTurn:
		return ErrBusy
	}
	return nil
}

// BeginDrag picks up the tile at p and arms the turn timeout.
func (s *Session) BeginDrag(p match3.Pos) error {
	s.mu.Lock()
	defer s.unlock()
	if err := s.guardInput(); err != nil {
		s.logger.Debug("drag rejected", "pos", p, "error", err)
		return err
	}
	if s.state() == StateDragging {
		return ErrAlreadyDragging
	}
	if !s.grid.InBounds(p) {
		return fmtOutOfBounds(p, s.grid.Size())
	}
	if err := s.fire(evBeginDrag); err != nil {
		return err
	}
	s.turn++
	s.combo = 0
	s.current = TurnResult{Turn: s.turn}
	s.cursor = p
	deadline := s.timer.arm(s.onTimeout)
	s.emit(Event{Type: EventDragStarted, Cells: []match3.Pos{p}, Deadline: deadline})
	return nil
}

// MovePointer drags the held tile to p, swapping it through every cell on the
// way so each swap is between neighbours. Pointers off the board are ignored.
func (s *Session) MovePointer(p match3.Pos) error {
	s.mu.Lock()
	defer s.unlock()
	if s.state() != StateDragging {
		if err := s.guardInput(); err != nil {
			return err
		}
		return ErrNotDragging
	}
	if !s.grid.InBounds(p) || p == s.cursor {
		return nil
	}
	for _, next := range stepsBetween(s.cursor, p) {
		if err := s.grid.Swap(s.cursor, next); err != nil {
			return err
		}
		s.emit(Event{Type: EventTilesSwapped, Cells: []match3.Pos{s.cursor, next}})
		s.cursor = next
	}
	return nil
}

// stepsBetween lists the orthogonal single steps from a to b, excluding a.
// The axis with more distance left moves first.
func stepsBetween(a, b match3.Pos) []match3.Pos {
	var out []match3.Pos
	cur := a
	for cur != b {
		dr, dc := b.Row-cur.Row, b.Col-cur.Col
		if abs(dr) >= abs(dc) {
			cur.Row += sign(dr)
		} else {
			cur.Col += sign(dc)
		}
		out = append(out, cur)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// Release ends the drag. The turn then resolves through Step or Resolve.
func (s *Session) Release() error {
	s.mu.Lock()
	defer s.unlock()
	return s.release()
}

func (s *Session) release() error {
	if s.state() != StateDragging {
		if err := s.guardInput(); err != nil {
			return err
		}
		return ErrNotDragging
	}
	s.timer.disarm()
	return s.fire(evRelease)
}

// onTimeout forces the release of a drag that outlived the think time.
func (s *Session) onTimeout(gen uint64) {
	s.mu.Lock()
	defer s.unlock()
	if !s.timer.live(gen) || s.state() != StateDragging {
		return
	}
	s.timer.disarm()
	s.emit(Event{Type: EventTurnTimeout, Cells: []match3.Pos{s.cursor}})
	if err := s.release(); err != nil {
		s.logger.Error("forced release failed", "error", err)
		return
	}
	s.logger.Debug("turn timed out", "turn", s.turn)
}
