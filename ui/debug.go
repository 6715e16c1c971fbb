package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Time scale bounds for the debug slider.
const (
	MinTimeScale = 0.1
	MaxTimeScale = 3.0
)

// DebugState is what the debug panel edits.
type DebugState struct {
	Paused       bool
	ShowHitboxes bool
	ShowPerf     bool
	ShowEnvelope bool
	Autopilot    bool
	TimeScale    float32
	Respawn      bool // One-shot: set when the respawn button was clicked this frame
}

// DebugPanel is an immediate-mode raygui panel for tuning a running game.
type DebugPanel struct {
	renderer *Renderer
	x, y     float32
	width    float32
	visible  bool
}

// NewDebugPanel creates a hidden debug panel.
func NewDebugPanel(x, y float32) *DebugPanel {
	return &DebugPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    220,
	}
}

// Toggle switches panel visibility.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// Draw renders the panel and returns the edited state.
func (d *DebugPanel) Draw(state DebugState) DebugState {
	state.Respawn = false
	if !d.visible {
		return state
	}

	r := d.renderer
	pad := float32(r.Theme.Padding)
	const rowH = 24
	height := pad*2 + rowH*8

	r.DrawPanel(int32(d.x), int32(d.y), int32(d.width), int32(height))
	x := d.x + pad
	y := d.y + pad
	inner := d.width - 2*pad

	rl.DrawText("Debug", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += rowH

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner/2 - 4, Height: 20}, pauseText) {
		state.Paused = !state.Paused
	}
	if gui.Button(rl.Rectangle{X: x + inner/2 + 4, Y: y, Width: inner/2 - 4, Height: 20}, "Respawn") {
		state.Respawn = true
	}
	y += rowH

	state.ShowHitboxes = gui.CheckBox(rl.Rectangle{X: x, Y: y + 2, Width: 16, Height: 16}, "Hitboxes", state.ShowHitboxes)
	y += rowH
	state.ShowPerf = gui.CheckBox(rl.Rectangle{X: x, Y: y + 2, Width: 16, Height: 16}, "Phase timings", state.ShowPerf)
	y += rowH
	state.ShowEnvelope = gui.CheckBox(rl.Rectangle{X: x, Y: y + 2, Width: 16, Height: 16}, "Cull envelope", state.ShowEnvelope)
	y += rowH
	state.Autopilot = gui.CheckBox(rl.Rectangle{X: x, Y: y + 2, Width: 16, Height: 16}, "Autopilot", state.Autopilot)
	y += rowH

	rl.DrawText(fmt.Sprintf("Time scale %.2fx", state.TimeScale), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 14
	state.TimeScale = gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: inner, Height: 16},
		"", "",
		state.TimeScale, MinTimeScale, MaxTimeScale,
	)

	return state
}
