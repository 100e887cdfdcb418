package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"match3battle/internal/battle"
	"match3battle/internal/bot"
	"match3battle/internal/config"
	"match3battle/internal/match3"
	"match3battle/internal/util"
	"match3battle/internal/world"
)

const (
	frameMs   = 33
	stepMs    = 250
	logLines  = 6
	cellWidth = 3
)

var kindStyle = map[match3.Element]tcell.Style{
	match3.Fire:  tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	match3.Water: tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true),
	match3.Earth: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	match3.Light: tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	match3.Dark:  tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true),
}

type Game struct {
	screen  tcell.Screen
	session *battle.Session
	events  chan battle.Event

	cursor   match3.Pos
	dragging bool
	hint     *bot.Move
	lines    []string
	banner   string
	lastStep time.Time
}

func NewGame(s *battle.Session, events chan battle.Event) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &Game{screen: screen, session: s, events: events}, nil
}

func (g *Game) logf(format string, args ...any) {
	g.lines = append(g.lines, fmt.Sprintf(format, args...))
	if len(g.lines) > logLines {
		g.lines = g.lines[len(g.lines)-logLines:]
	}
}

// onEvent turns battle events into log lines and the combo banner.
func (g *Game) onEvent(ev battle.Event) {
	snap := g.session.CombatSnapshot()
	switch ev.Type {
	case battle.EventTurnTimeout:
		g.dragging = false
		g.logf("time is up")
	case battle.EventMatchDetected:
		if ev.Combo > 1 {
			g.banner = fmt.Sprintf("COMBO x%d", ev.Combo)
		}
		g.logf("%d group(s) matched", len(ev.Groups))
	case battle.EventDamageApplied:
		if ev.TargetIsDefender {
			g.logf("%s takes %d", snap.Defender.Name, ev.Amount)
		}
	case battle.EventMemberHit:
		if ev.Index >= 0 && ev.Index < len(snap.Roster) {
			g.logf("%s hits %s for %d", snap.Defender.Name, snap.Roster[ev.Index].Name, ev.Amount)
		}
	case battle.EventSkillActivated:
		if ev.Skill != nil {
			g.logf("%s uses %s", snap.Roster[ev.Index].Name, ev.Skill.Skill)
		}
	case battle.EventBattleEnded:
		g.banner = strings.ToUpper(string(ev.Outcome))
		g.logf("battle over: %s", ev.Outcome)
	}
}

func (g *Game) move(dr, dc int) {
	next := match3.Pos{Row: g.cursor.Row + dr, Col: g.cursor.Col + dc}
	size := g.session.CurrentGrid().Size()
	if next.Row < 0 || next.Col < 0 || next.Row >= size || next.Col >= size {
		return
	}
	if g.dragging {
		if err := g.session.MovePointer(next); err != nil {
			g.dragging = false
			return
		}
	}
	g.cursor = next
}

func (g *Game) toggleDrag() {
	if !g.dragging {
		if err := g.session.BeginDrag(g.cursor); err != nil {
			slog.Debug("drag refused", "error", err)
			return
		}
		g.dragging = true
		g.hint = nil
		g.banner = ""
		return
	}
	g.dragging = false
	if err := g.session.Release(); err != nil {
		slog.Debug("release refused", "error", err)
	}
}

func (g *Game) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			g.move(-1, 0)
		case tcell.KeyDown:
			g.move(1, 0)
		case tcell.KeyLeft:
			g.move(0, -1)
		case tcell.KeyRight:
			g.move(0, 1)
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case 'q':
				return false
			case ' ':
				g.toggleDrag()
			case 'h':
				snap := g.session.CombatSnapshot()
				if m, ok := bot.Best(g.session.CurrentGrid(), bot.RosterScorer(snap.Roster)); ok {
					g.hint = &m
				}
			case '1', '2', '3':
				snap := g.session.CombatSnapshot()
				i := int(r - '1')
				if i < len(snap.Roster) {
					if _, err := g.session.ActivateSkill(context.Background(), snap.Roster[i].ID); err != nil {
						g.logf("skill refused: %v", err)
					}
				}
			}
		}
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return true
}

// advance steps a resolving turn at a readable pace.
func (g *Game) advance(now time.Time) {
	switch g.session.State() {
	case battle.StateResolving, battle.StateOpponentTurn:
	default:
		return
	}
	if now.Sub(g.lastStep) < stepMs*time.Millisecond {
		return
	}
	g.lastStep = now
	if _, err := g.session.Step(context.Background()); err != nil {
		slog.Error("step failed", "error", err)
	}
}

func (g *Game) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		g.screen.SetContent(x+i, y, r, nil, style)
	}
}

func bar(cur, total, width int) string {
	if total <= 0 {
		return strings.Repeat(" ", width)
	}
	n := cur * width / total
	return strings.Repeat("#", n) + strings.Repeat(".", width-n)
}

func (g *Game) draw(now time.Time) {
	g.screen.Clear()
	snap := g.session.CombatSnapshot()
	grid := g.session.CurrentGrid()
	plain := tcell.StyleDefault

	d := snap.Defender
	g.text(0, 0, fmt.Sprintf("%-14s %-6s [%s] %d/%d", d.Name, d.Element, bar(d.HP, d.MaxHP, 20), d.HP, d.MaxHP), plain)

	for r := 0; r < grid.Size(); r++ {
		for c := 0; c < grid.Size(); c++ {
			p := match3.Pos{Row: r, Col: c}
			t := grid.At(p)
			ch := '.'
			style := plain
			if !t.Empty() {
				ch = rune(strings.ToUpper(string(t.Kind))[0])
				style = kindStyle[t.Kind]
			}
			if g.hint != nil && (p == g.hint.From || p == g.hint.To) {
				style = style.Underline(true)
			}
			if p == g.cursor {
				style = style.Reverse(true)
				if g.dragging {
					style = style.Blink(true)
				}
			}
			g.screen.SetContent(2+c*cellWidth, 2+r, ch, nil, style)
		}
	}

	y := 3 + grid.Size()
	for i, m := range snap.Roster {
		line := fmt.Sprintf("%d %-12s %-6s HP[%s] %3d/%-3d SP[%s]", i+1, m.Name, m.Element, bar(m.HP, m.MaxHP, 12), m.HP, m.MaxHP, bar(m.SP, m.MaxSP, 10))
		style := plain
		if !m.Alive() {
			style = style.Dim(true)
		} else if m.Ready() {
			style = style.Foreground(tcell.ColorYellow)
		}
		g.text(0, y+i, line, style)
	}
	y += len(snap.Roster) + 1

	status := fmt.Sprintf("turn %d  %s", snap.Turn, snap.State)
	if !snap.Deadline.IsZero() {
		status += fmt.Sprintf("  %.1fs", max(0, snap.Deadline.Sub(now).Seconds()))
	}
	g.text(0, y, status, plain)
	if g.banner != "" {
		g.text(30, y, g.banner, plain.Bold(true).Foreground(tcell.ColorFuchsia))
	}
	for i, l := range g.lines {
		g.text(0, y+2+i, l, plain.Foreground(tcell.ColorGray))
	}
	g.text(0, y+3+logLines, "arrows move  space drag/drop  1-3 skill  h hint  q quit", plain.Dim(true))
	g.screen.Show()
}

func (g *Game) run() {
	ticker := time.NewTicker(frameMs * time.Millisecond)
	defer ticker.Stop()

	input := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			input <- ev
		}
	}()

	for {
		select {
		case ev := <-input:
			if !g.handleInput(ev) {
				return
			}
		case ev := <-g.events:
			g.onEvent(ev)
		case now := <-ticker.C:
			g.advance(now)
			g.draw(now)
		}
	}
}

func (g *Game) cleanup() {
	g.screen.Fini()
}

func main() {
	var cfgDir, settingsPath, location, quest, logPath string
	var seed int64
	flag.StringVar(&cfgDir, "config", "", "assets dir (default from settings)")
	flag.StringVar(&settingsPath, "settings", "configs/settings.yaml", "runtime settings file")
	flag.StringVar(&location, "location", "forest", "location id")
	flag.StringVar(&quest, "quest", "forest_1", "quest id")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses the clock)")
	flag.StringVar(&logPath, "log", "match3.log", "log file")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	level := slog.LevelInfo
	if strings.EqualFold(settings.App.LogLevel, "debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

	if cfgDir == "" {
		cfgDir = settings.App.AssetsDir
	}
	cat, err := config.LoadAll(cfgDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tracker := world.NewTracker(cat.World, nil)
	if err := tracker.CanStart(location, quest); err != nil {
		fmt.Fprintf(os.Stderr, "quest: %v\n", err)
		os.Exit(1)
	}

	events := make(chan battle.Event, 256)
	s, err := battle.NewFromQuest(cat, battle.Ref{LocationID: location, QuestID: quest}, battle.Options{
		Rand: util.New(seed),
		Listener: func(ev battle.Event) {
			select {
			case events <- ev:
			default:
				slog.Warn("event dropped", "type", ev.Type)
			}
		},
		Progression: tracker,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "battle: %v\n", err)
		os.Exit(1)
	}

	game, err := NewGame(s, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer game.cleanup()

	game.run()
}
