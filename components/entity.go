// Package components defines the simulated body and its value types.
package components

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// MinFriction is the smallest friction an entity may carry.
// Friction doubles as inverse mass in collision response and is divided by there.
const MinFriction = 1e-3

// Entity is a single simulated body. Position is the top-left corner of an
// axis-aligned box of the given Size; Z components are carried but unused in 2D.
type Entity struct {
	Position r3.Vec
	Velocity r3.Vec
	Size     r3.Vec

	// Friction is the per-frame velocity retention factor in (0, 1].
	// 1 means no decay. Use SetFriction to keep it in range.
	Friction float64

	Color color.RGBA
}

// NewEntity creates an entity at rest with no velocity decay.
func NewEntity(pos, size r3.Vec, c color.RGBA) *Entity {
	return &Entity{
		Position: pos,
		Size:     size,
		Friction: 1,
		Color:    c,
	}
}

// SetFriction clamps f into [MinFriction, 1] and stores it.
func (e *Entity) SetFriction(f float64) {
	switch {
	case f != f || f < MinFriction: // NaN included
		f = MinFriction
	case f > 1:
		f = 1
	}
	e.Friction = f
}

// Integrate advances the entity by dt seconds: position moves by velocity*dt,
// then velocity decays by Friction. The decay is per call, not per second,
// so it depends on frame rate.
func (e *Entity) Integrate(dt float64) {
	if dt < 0 {
		dt = 0
	}
	e.Position = r3.Add(e.Position, r3.Scale(dt, e.Velocity))
	e.Velocity = r3.Scale(e.Friction, e.Velocity)
}

// AddForce accumulates f into velocity. Position is unaffected until the next Integrate.
func (e *Entity) AddForce(f r3.Vec) {
	e.Velocity = r3.Add(e.Velocity, f)
}

// Rect returns the entity's 2D bounding box.
func (e *Entity) Rect() Rect {
	return Rect{X: e.Position.X, Y: e.Position.Y, W: e.Size.X, H: e.Size.Y}
}

// Center returns the midpoint of the bounding box.
func (e *Entity) Center() r3.Vec {
	return r3.Vec{
		X: e.Position.X + e.Size.X/2,
		Y: e.Position.Y + e.Size.Y/2,
		Z: e.Position.Z,
	}
}

// Speed returns the 2D velocity magnitude.
func (e *Entity) Speed() float64 {
	return r3.Norm(r3.Vec{X: e.Velocity.X, Y: e.Velocity.Y})
}
