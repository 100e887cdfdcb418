package battle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"

	"match3battle/internal/combat"
	"match3battle/internal/match3"
	"match3battle/internal/util"
)

const DefaultTurnTimeout = 5000 * time.Millisecond

type Options struct {
	Size        int
	TurnTimeout time.Duration
	SPPerGroup  int
	Roster      combat.Roster
	Defender    combat.Combatant
	Skills      *combat.SkillBook
	Rules       combat.Rules
	Ref         Ref

	// Grid replaces the generated opening board. It is used as is.
	Grid *match3.Grid

	Rand        util.Rand
	Clock       Clock
	Listener    Listener
	Progression Progression
	Logger      *slog.Logger
}

// TurnResult sums up one player turn.
type TurnResult struct {
	Turn        int               `json:"turn"`
	Cascades    int               `json:"cascades"`
	Groups      int               `json:"groups"`
	TotalDamage int               `json:"total_damage"`
	Hits        []combat.GroupHit `json:"hits,omitempty"`
	Enemy       *combat.EnemyHit  `json:"enemy,omitempty"`
	Victory     bool              `json:"victory"`
	Defeat      bool              `json:"defeat"`
}

// Snapshot is a read-only copy of the combat state for rendering.
type Snapshot struct {
	ID       string           `json:"id"`
	State    State            `json:"state"`
	Turn     int              `json:"turn"`
	Combo    int              `json:"combo"`
	Roster   combat.Roster    `json:"roster"`
	Defender combat.Combatant `json:"defender"`
	Outcome  Result           `json:"outcome,omitempty"`
	Deadline time.Time        `json:"deadline,omitzero"`
}

// Session owns one battle: the board, both sides and the turn machine. All
// methods are safe to call from several goroutines; they serialise on one lock.
type Session struct {
	mu sync.Mutex

	id       string
	grid     *match3.Grid
	roster   combat.Roster
	defender combat.Combatant
	skills   *combat.SkillBook
	rules    combat.Rules
	ref      Ref

	machine    *fsm.FSM
	timer      turnTimer
	cursor     match3.Pos
	combo      int
	turn       int
	current    TurnResult
	outcome    Result
	reported   bool
	spPerGroup int

	rng         util.Rand
	listener    Listener
	progression Progression
	logger      *slog.Logger
	pending     []Event
	report      *pendingReport
	ended       bool
	onOver      func(*Session)
}

// pendingReport is an outcome waiting to reach the progression hook.
type pendingReport struct {
	ctx     context.Context
	outcome Outcome
}

func New(opts Options) (*Session, error) {
	if len(opts.Roster) == 0 {
		return nil, fmt.Errorf("%w: empty roster", ErrInvalidSetup)
	}
	if opts.Defender.MaxHP <= 0 {
		return nil, fmt.Errorf("%w: defender %q has no hp", ErrInvalidSetup, opts.Defender.ID)
	}
	for _, m := range opts.Roster {
		if m.MaxHP <= 0 {
			return nil, fmt.Errorf("%w: member %q has no hp", ErrInvalidSetup, m.ID)
		}
	}
	if opts.Rand == nil {
		opts.Rand = util.New(time.Now().UnixNano())
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.TurnTimeout <= 0 {
		opts.TurnTimeout = DefaultTurnTimeout
	}
	if opts.SPPerGroup <= 0 {
		opts.SPPerGroup = combat.DefaultSPPerGroup
	}
	if opts.Skills == nil {
		opts.Skills = combat.NewSkillBook(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	grid := opts.Grid
	if grid == nil {
		grid = match3.NewGrid(opts.Size, opts.Rand)
	}

	s := &Session{
		id:          uuid.NewString(),
		grid:        grid,
		roster:      freshRoster(opts.Roster),
		defender:    freshDefender(opts.Defender),
		skills:      opts.Skills,
		rules:       opts.Rules.WithDefaults(),
		ref:         opts.Ref,
		timer:       turnTimer{clock: opts.Clock, d: opts.TurnTimeout},
		spPerGroup:  opts.SPPerGroup,
		rng:         opts.Rand,
		listener:    opts.Listener,
		progression: opts.Progression,
	}
	s.logger = opts.Logger.With("session", s.id)
	s.machine = newMachine(func(from, to State) {
		s.logger.Debug("state changed", "from", from, "to", to, "turn", s.turn)
	})
	s.logger.Info("battle started",
		"defender", s.defender.ID, "roster", len(s.roster),
		"location", s.ref.LocationID, "quest", s.ref.QuestID)
	return s, nil
}

func freshRoster(in combat.Roster) combat.Roster {
	out := in.Clone()
	for i := range out {
		m := out[i]
		out[i] = combat.Member{Combatant: m.Combatant, MaxSP: m.MaxSP, SkillID: m.SkillID}
		out[i].HP = m.MaxHP
		if out[i].MaxSP <= 0 {
			out[i].MaxSP = combat.DefaultMaxSP
		}
	}
	return out
}

func freshDefender(d combat.Combatant) combat.Combatant {
	d.HP = d.MaxHP
	return d
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State { return State(s.machine.Current()) }

func (s *Session) IsBattleOver() bool { return s.State() == StateBattleOver }

// Outcome reports the result once the battle is over.
func (s *Session) Outcome() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.outcome != ""
}

// CurrentGrid returns a copy of the board.
func (s *Session) CurrentGrid() *match3.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Clone()
}

func (s *Session) CombatSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.id,
		State:    s.state(),
		Turn:     s.turn,
		Combo:    s.combo,
		Roster:   s.roster.Clone(),
		Defender: s.defender,
		Outcome:  s.outcome,
		Deadline: s.timer.deadline,
	}
}

// emit queues an event; it is delivered when the current call unlocks.
func (s *Session) emit(ev Event) {
	ev.Turn = s.turn
	s.pending = append(s.pending, ev)
}

// unlock releases the session before any callback runs, so listeners and
// hooks may call back into it.
func (s *Session) unlock() {
	events := s.pending
	s.pending = nil
	report := s.report
	s.report = nil
	ended := s.ended
	s.ended = false
	onOver := s.onOver
	progression := s.progression
	s.mu.Unlock()
	if s.listener != nil {
		for _, ev := range events {
			s.listener(ev)
		}
	}
	if report != nil && progression != nil {
		if err := progression.ReportOutcome(report.ctx, report.outcome); err != nil {
			s.logger.Error("report outcome failed", "outcome", report.outcome.Result, "error", err)
		}
	}
	if ended && onOver != nil {
		onOver(s)
	}
}

func (s *Session) fire(event string) error {
	if err := s.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("%w: %s in %s: %v", ErrInvalidTransition, event, s.state(), err)
	}
	return nil
}

// finish moves to BattleOver and reports the outcome once.
func (s *Session) finish(ctx context.Context, result Result) {
	s.timer.disarm()
	s.outcome = result
	s.ended = true
	if err := s.fire(evFinish); err != nil {
		s.logger.Error("finish transition failed", "error", err)
	}
	s.current.Victory = result == Victory
	s.current.Defeat = result == Defeat
	s.emit(Event{Type: EventBattleEnded, Outcome: result})
	s.logger.Info("battle ended", "outcome", result, "turns", s.turn, "defender_hp", s.defender.HP)

	if s.reported || s.progression == nil {
		return
	}
	s.reported = true
	s.report = &pendingReport{
		ctx:     ctx,
		outcome: Outcome{SessionID: s.id, Result: result, Ref: s.ref, Turns: s.turn},
	}
}
