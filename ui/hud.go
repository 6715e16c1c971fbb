package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacestorm/systems"
	"github.com/pthm-cable/spacestorm/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Score    int
	Frame    int64
	FPS      float64
	Entities int
	Enemies  int
	Bullets  int
	Paused   bool

	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(fmt.Sprintf("Score: %d", data.Score), 10, 10, 32, rl.White)

	rl.DrawText(
		fmt.Sprintf("Frame: %d | FPS: %.0f | Entities: %d | Enemies: %d | Bullets: %d",
			data.Frame, data.FPS, data.Entities, data.Enemies, data.Bullets),
		10, 48, 16, rl.LightGray,
	)

	if data.Paused {
		const text = "PAUSED"
		const size = 40
		w := rl.MeasureText(text, size)
		rl.DrawText(text, (data.ScreenWidth-w)/2, data.ScreenHeight/2-size/2, size, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	Stats    telemetry.PerfStats
	Window   telemetry.WindowStats // Last flushed stats window
	Registry *systems.SystemRegistry
}

// PerfPanel renders the per-phase frame timings, grouped by category.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    260,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(data PerfPanelData) {
	r := p.renderer
	pad := r.Theme.Padding
	cats := data.Registry.Categories()
	lines := len(data.Registry.All()) + len(cats) + 6
	height := int32(lines)*r.Theme.LineHeight + 2*pad

	r.DrawPanel(p.x, p.y, p.width, height)
	x := p.x + pad
	y := r.DrawSectionHeader(x, p.y+pad, "Frame Phases")

	st := data.Stats
	y = r.DrawLabelValue(x, y, "Step", st.AvgStepDuration.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", st.FPS))
	y = r.DrawLabelValue(x, y, "Entities", fmt.Sprintf("%.1f", st.AvgEntities))
	y = r.DrawLabelValue(x, y, "Per pair", st.CollisionPerPair.String())
	y = r.DrawLabelValue(x, y, "Hit rate", fmt.Sprintf("%.0f%%", data.Window.HitRate*100))

	for _, cat := range cats {
		var total float64
		phases := data.Registry.ByCategory(cat)
		for _, info := range phases {
			total += st.PhasePct[info.ID]
		}
		rl.DrawText(fmt.Sprintf("%s %5.1f%%", cat, total), x, y, r.Theme.FontSize, r.Theme.SectionHeader)
		y += r.Theme.LineHeight

		for _, info := range phases {
			pct := st.PhasePct[info.ID]
			rl.DrawText(
				fmt.Sprintf("  %-10s %8s %5.1f%%", info.Name, st.PhaseAvg[info.ID].Round(time.Microsecond), pct),
				x, y, r.Theme.FontSize, r.loadColor(pct),
			)
			y += r.Theme.LineHeight
		}
	}
}
