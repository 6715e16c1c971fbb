package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacestorm/config"
	"github.com/pthm-cable/spacestorm/game"
	"github.com/pthm-cable/spacestorm/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, driven by the autopilot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N simulated frames (0 = unlimited)")
	listKeys := flag.Bool("list-keys", false, "Print the configured actions and the key names accepted in controls, then exit")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *listKeys {
		if err := printControls(cfg); err != nil {
			slog.Error("invalid controls", "error", err)
			os.Exit(1)
		}
		return
	}
	if *statsWindow > 0 {
		cfg.Simulation.StatsWindow = *statsWindow
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxFrames); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	flags := uint32(rl.FlagWindowResizable)
	if cfg.Screen.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start game", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Sim().Stats().Frame >= int64(*maxFrames) {
			break
		}
	}
}

// runHeadless steps the simulation at the configured fixed dt with the
// autopilot at the controls. No raylib window is opened.
func runHeadless(cfg *config.Config, opts sim.Options, maxFrames int) error {
	pilot, err := game.NewAutopilot(cfg.Controls)
	if err != nil {
		return err
	}
	actions, err := game.NewActions(cfg.Controls, pilot)
	if err != nil {
		return err
	}
	s, err := sim.New(cfg, actions, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"dt", cfg.Simulation.DT,
		"max_frames", maxFrames,
	)

	start := time.Now()
	for maxFrames <= 0 || s.Stats().Frame < int64(maxFrames) {
		pilot.Plan(s)
		s.Step(cfg.Simulation.DT)
	}

	st := s.Stats()
	slog.Info("headless simulation finished",
		"frame", st.Frame,
		"score", st.Score,
		"sim_time_sec", st.SimTimeSec,
		"wall_time", time.Since(start).Round(time.Millisecond).String(),
	)
	return nil
}

// printControls lists the registered actions and every bindable key name.
func printControls(cfg *config.Config) error {
	reg, err := game.NewActions(cfg.Controls, nil)
	if err != nil {
		return err
	}
	fmt.Println("axes:    " + strings.Join(reg.Axes(), " "))
	fmt.Println("buttons: " + strings.Join(reg.Buttons(), " "))
	fmt.Println("keys:    " + strings.Join(game.KeyNames(), " "))
	fmt.Println("mouse:   " + strings.Join(game.MouseButtonNames(), " "))
	return nil
}
