// Package game hosts the simulation in a raylib window: device input,
// drawing and the debug UI.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacestorm/camera"
	"github.com/pthm-cable/spacestorm/config"
	"github.com/pthm-cable/spacestorm/sim"
	"github.com/pthm-cable/spacestorm/systems"
	"github.com/pthm-cable/spacestorm/ui"
)

// maxFrameTime caps dt after a stall (window drag, breakpoint).
const maxFrameTime = 0.1

const controlsLegend = "WASD move | Arrows aim | Ctrl/LMB fire | Shift run | Enter pause | F1 debug | F3 hitboxes | F4 envelope | F5 autopilot | F11 fullscreen"

// Game holds the simulation and everything needed to show it.
type Game struct {
	cfg    *config.Config
	sim    *sim.Simulation
	camera *camera.Camera
	pilot  *sim.Autopilot

	// envelopeFitted is set once the envelope view has framed the envelope;
	// pan and zoom then stay under user control until it is refit.
	envelopeFitted bool

	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	debug     *ui.DebugPanel
	debugUI   ui.DebugState
	phases    *systems.SystemRegistry

	screenWidth, screenHeight int32
}

// NewGame creates a game reading input from raylib. The window must be open.
func NewGame(cfg *config.Config, opts sim.Options) (*Game, error) {
	actions, err := NewActions(cfg.Controls, RaylibSource{})
	if err != nil {
		return nil, err
	}
	pilot, err := NewAutopilot(cfg.Controls)
	if err != nil {
		return nil, err
	}
	s, err := sim.New(cfg, actions, opts)
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	return &Game{
		cfg:          cfg,
		sim:          s,
		camera:       camera.New(float32(w), float32(h)),
		pilot:        pilot,
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(w-270, 10),
		debug:        ui.NewDebugPanel(10, 80),
		debugUI:      ui.DebugState{TimeScale: 1},
		phases:       systems.NewSystemRegistry(),
		screenWidth:  w,
		screenHeight: h,
	}, nil
}

// Sim returns the hosted simulation.
func (g *Game) Sim() *sim.Simulation {
	return g.sim
}

// Update advances the simulation by the last frame time.
func (g *Game) Update() {
	g.handleInput()

	dt := float64(rl.GetFrameTime())
	if dt > maxFrameTime {
		dt = maxFrameTime
	}
	if g.debugUI.Autopilot {
		g.pilot.Plan(g.sim)
	}
	g.sim.Step(dt * float64(g.debugUI.TimeScale))
	g.debugUI.Paused = g.sim.Paused()
}

// Draw renders the current frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.updateCamera()
	rl.BeginMode2D(g.camera2D())
	g.drawEntities()
	if g.debugUI.ShowHitboxes {
		g.drawHitboxes()
	}
	if g.debugUI.ShowEnvelope {
		g.drawBounds()
	}
	rl.EndMode2D()

	st := g.sim.Stats()
	perf := g.sim.PerfStats()
	g.hud.Draw(ui.HUDData{
		Score:        st.Score,
		Frame:        st.Frame,
		FPS:          perf.FPS,
		Entities:     st.Entities,
		Enemies:      st.Enemies,
		Bullets:      st.Bullets,
		Paused:       st.Paused,
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	})
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if g.debugUI.ShowPerf {
		g.perfPanel.Draw(ui.PerfPanelData{Stats: perf, Window: g.sim.LastWindow(), Registry: g.phases})
	}
	if g.debugUI.ShowEnvelope {
		g.drawCursor()
	}
	g.applyDebug(g.debug.Draw(g.debugUI))

	rl.EndDrawing()
	g.sim.RecordFrame()
}

// applyDebug pushes panel edits back into the simulation.
func (g *Game) applyDebug(next ui.DebugState) {
	if next.Paused != g.debugUI.Paused {
		g.sim.SetPaused(next.Paused)
	}
	if next.ShowHitboxes != g.debugUI.ShowHitboxes {
		slog.Debug("hitboxes toggled", "enabled", next.ShowHitboxes)
	}
	if next.Respawn {
		g.sim.Reset()
	}
	if next.Autopilot != g.debugUI.Autopilot {
		g.setAutopilot(next.Autopilot)
	}
	g.debugUI = next
}

// setAutopilot hands the controls to the autopilot or back to the devices.
func (g *Game) setAutopilot(on bool) {
	g.debugUI.Autopilot = on
	slog.Info("autopilot toggled", "enabled", on)
	if on {
		g.sim.Actions().SetSource(g.pilot)
	} else {
		g.sim.Actions().SetSource(RaylibSource{})
	}
}

// Unload releases resources held by the game.
func (g *Game) Unload() {
	if err := g.sim.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
