package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"match3battle/internal/battle"
	"match3battle/internal/config"
	"match3battle/internal/nats"
	"match3battle/internal/sim"
	"match3battle/internal/world"
)

func main() {
	var cfgDir, settingsPath, out, location, quest string
	var seed int64
	var n, turns int
	var saveLog bool
	flag.StringVar(&cfgDir, "config", "", "assets dir (default from settings)")
	flag.StringVar(&settingsPath, "settings", "configs/settings.yaml", "runtime settings file")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&location, "location", "forest", "location id")
	flag.StringVar(&quest, "quest", "forest_1", "quest id")
	flag.Int64Var(&seed, "seed", 0, "seed (default from settings)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&turns, "turns", sim.DefaultMaxTurns, "turn cap per battle")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "settings:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(settings.App.LogLevel)})))

	if cfgDir == "" {
		cfgDir = settings.App.AssetsDir
	}
	if seed == 0 {
		seed = settings.App.Seed
	}
	cat, err := config.LoadAll(cfgDir)
	if err != nil {
		slog.Error("load catalog", "dir", cfgDir, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracker := world.NewTracker(cat.World, nil)
	if err := tracker.CanStart(location, quest); err != nil {
		slog.Warn("quest is not open yet, simulating anyway", "location", location, "quest", quest, "error", err)
	}
	progression := battle.Fanout{tracker}
	if settings.NATS.Enabled {
		client, err := nats.NewClient(settings.NATS)
		if err != nil {
			slog.Error("connect nats", "url", settings.NATS.URL, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		progression = append(progression, nats.NewOutcomePublisher(client.Conn(), settings.NATS.Subject))
	}

	ref := battle.Ref{LocationID: location, QuestID: quest}
	opts := sim.Options{MaxTurns: turns, Record: saveLog, Progression: progression, Registry: battle.NewRegistry(nil)}

	if n <= 1 {
		res, err := sim.RunSingle(ctx, cat, ref, seed, opts)
		if err != nil {
			slog.Error("run", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(out, sim.MarshalPretty(res), 0644); err != nil {
			slog.Error("write result", "out", out, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Single battle finished. Outcome=%s, Turns=%d, Damage=%d -> %s\n", res.Outcome, res.Turns, res.TotalDamage, out)
		return
	}

	summary := sim.RunBatch(ctx, cat, ref, seed, n, sim.DefaultWorkers, opts)
	if err := os.WriteFile(out, sim.MarshalPretty(summary), 0644); err != nil {
		slog.Error("write summary", "out", out, "error", err)
		os.Exit(1)
	}
	fmt.Printf("Batch %d done, win rate %.2f -> %s\n", n, summary.WinRate, filepath.Base(out))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
