package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes host-level keys. Gameplay keys go through the
// simulation's action registry instead.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.debug.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.debugUI.ShowPerf = !g.debugUI.ShowPerf
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.debugUI.ShowHitboxes = !g.debugUI.ShowHitboxes
	}
	if rl.IsKeyPressed(rl.KeyF4) {
		g.debugUI.ShowEnvelope = !g.debugUI.ShowEnvelope
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.setAutopilot(!g.debugUI.Autopilot)
	}

	if g.debugUI.ShowEnvelope {
		g.handleCameraInput()
	}
}

// handleCameraInput pans and zooms the envelope view. Arrow keys belong to
// the aim action, so the camera is mouse driven: wheel zooms at the cursor,
// right drag pans, Home refits the envelope.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.camera.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.envelopeFitted = false
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.sim.Resize(float64(w), float64(h))
	g.camera.Resize(float32(w), float32(h))
	g.envelopeFitted = false
	g.perfPanel.SetPosition(w-270, 10)
}
