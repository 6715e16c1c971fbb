// Package systems contains the per-frame physics operating on entities.
package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacestorm/components"
)

// Restitution is the bounciness used by ResolveCollision.
const Restitution = 0.5

// CheckCollisionRecs reports whether two rectangles overlap with nonzero area.
// Rectangles that only share an edge do not collide.
func CheckCollisionRecs(a, b components.Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// CheckCollision reports whether the bounding boxes of a and b overlap.
func CheckCollision(a, b *components.Entity) bool {
	return CheckCollisionRecs(a.Rect(), b.Rect())
}

// CheckCollisionEntityRect reports whether e's bounding box overlaps r.
func CheckCollisionEntityRect(e *components.Entity, r components.Rect) bool {
	return CheckCollisionRecs(e.Rect(), r)
}

// ResolveCollision applies an impulse pushing a and b apart along the line
// between their positions. It does not test for overlap; call it after
// CheckCollision. Only X and Y velocities change.
//
// Friction stands in for inverse mass: a body with lower friction takes a
// smaller share of the impulse. This is a modeling shortcut kept for
// compatibility with existing tuning, not a physical mass term.
func ResolveCollision(a, b *components.Entity) {
	if a.Friction <= 0 || b.Friction <= 0 {
		return
	}

	normal := r2.Vec{X: b.Position.X - a.Position.X, Y: b.Position.Y - a.Position.Y}
	dist := r2.Norm(normal)
	if dist == 0 {
		// Coincident bodies have no separation direction
		return
	}
	normal = r2.Scale(1/dist, normal)

	relVel := r2.Vec{X: b.Velocity.X - a.Velocity.X, Y: b.Velocity.Y - a.Velocity.Y}
	velAlongNormal := r2.Dot(relVel, normal)
	if velAlongNormal > 0 {
		// Already separating
		return
	}

	impulse := -(1 + Restitution) * velAlongNormal / (1/a.Friction + 1/b.Friction)
	if math.IsNaN(impulse) || math.IsInf(impulse, 0) {
		return
	}

	da := r2.Scale(impulse*a.Friction, normal)
	db := r2.Scale(impulse*b.Friction, normal)
	a.Velocity.X -= da.X
	a.Velocity.Y -= da.Y
	b.Velocity.X += db.X
	b.Velocity.Y += db.Y
}

// SweepOverlaps calls fn for every overlapping pair in es, in index order
// (i < j). It is an exhaustive O(n^2) check. fn may mutate the entities but
// must not change the slice. Returns the number of overlapping pairs.
func SweepOverlaps(es []*components.Entity, fn func(a, b *components.Entity)) int {
	pairs := 0
	for i := 0; i < len(es); i++ {
		for j := i + 1; j < len(es); j++ {
			if !CheckCollision(es[i], es[j]) {
				continue
			}
			pairs++
			if fn != nil {
				fn(es[i], es[j])
			}
		}
	}
	return pairs
}
