package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacestorm/components"
)

// drawEntities draws every live entity as a filled rectangle in pool order,
// so later spawns paint over earlier ones.
func (g *Game) drawEntities() {
	g.sim.World().Draw(func(e *components.Entity) {
		if !g.camera.IsVisible(e.Rect()) {
			return
		}
		rl.DrawRectangleV(
			rl.Vector2{X: float32(e.Position.X), Y: float32(e.Position.Y)},
			rl.Vector2{X: float32(e.Size.X), Y: float32(e.Size.Y)},
			rl.Color(e.Color),
		)
	})
}

// drawHitboxes outlines each entity and tags it with its role.
func (g *Game) drawHitboxes() {
	g.sim.World().Draw(func(e *components.Entity) {
		r := e.Rect()
		rect := rl.Rectangle{X: float32(r.X), Y: float32(r.Y), Width: float32(r.W), Height: float32(r.H)}
		rl.DrawRectangleLinesEx(rect, 1, rl.Green)
		rl.DrawText(g.sim.Role(e).String(), int32(r.X), int32(r.Y+r.H)+2, 10, rl.Green)
	})
}

// drawCursor labels the world position under the mouse in the envelope view.
func (g *Game) drawCursor() {
	m := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(m.X, m.Y)
	rl.DrawText(fmt.Sprintf("%.0f, %.0f", wx, wy), int32(m.X)+12, int32(m.Y)+12, 14, rl.Orange)
}

// updateCamera frames the cull envelope when the envelope view opens and
// shows the screen 1:1 otherwise.
func (g *Game) updateCamera() {
	if !g.debugUI.ShowEnvelope {
		g.envelopeFitted = false
		g.camera.Reset()
		return
	}
	if g.envelopeFitted {
		return
	}
	if env, ok := g.sim.World().Envelope(); ok {
		g.camera.Fit(env)
		g.envelopeFitted = true
	}
}

func (g *Game) camera2D() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	}
}

// drawBounds outlines the screen and the cull envelope.
func (g *Game) drawBounds() {
	lineW := 1 / g.camera.Zoom
	screen := rl.Rectangle{Width: float32(g.screenWidth), Height: float32(g.screenHeight)}
	rl.DrawRectangleLinesEx(screen, lineW, rl.SkyBlue)
	if env, ok := g.sim.World().Envelope(); ok {
		rect := rl.Rectangle{X: float32(env.X), Y: float32(env.Y), Width: float32(env.W), Height: float32(env.H)}
		rl.DrawRectangleLinesEx(rect, lineW, rl.Orange)
	}
}
