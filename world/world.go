// Package world owns the live entity pool and advances it each frame.
package world

import (
	"slices"

	"github.com/pthm-cable/spacestorm/components"
)

// World is an insertion-ordered pool of entities. The pool is the sole owner
// of its entities: Remove and culling drop the pool's reference and the entity
// must not be used afterwards by pool-level code. Not safe for concurrent use.
type World struct {
	entities []*components.Entity

	envelope    components.Rect
	hasEnvelope bool

	onCull func(*components.Entity)
}

// New creates an empty world with no cull envelope.
func New() *World {
	return &World{}
}

// Spawn appends e to the pool. Returns false for nil or an entity already present.
func (w *World) Spawn(e *components.Entity) bool {
	if e == nil || w.Contains(e) {
		return false
	}
	w.entities = append(w.entities, e)
	return true
}

// Remove drops the first entry that is e (by identity). Returns false if absent.
func (w *World) Remove(e *components.Entity) bool {
	i := slices.Index(w.entities, e)
	if i < 0 {
		return false
	}
	w.entities = slices.Delete(w.entities, i, i+1)
	return true
}

// Contains reports whether e is in the pool.
func (w *World) Contains(e *components.Entity) bool {
	return e != nil && slices.Contains(w.entities, e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.entities)
}

// Entities returns a copy of the pool in insertion order.
func (w *World) Entities() []*components.Entity {
	return slices.Clone(w.entities)
}

// Clear removes every entity without firing the cull callback.
func (w *World) Clear() {
	clear(w.entities)
	w.entities = w.entities[:0]
}

// SetEnvelope enables culling of entities whose position leaves r.
func (w *World) SetEnvelope(r components.Rect) {
	w.envelope = r
	w.hasEnvelope = true
}

// ClearEnvelope disables culling.
func (w *World) ClearEnvelope() {
	w.hasEnvelope = false
}

// Envelope returns the cull rectangle and whether culling is enabled.
func (w *World) Envelope() (components.Rect, bool) {
	return w.envelope, w.hasEnvelope
}

// OnCull registers fn to be called for each entity removed by the envelope.
// fn runs mid-sweep and must not spawn or remove entities.
func (w *World) OnCull(fn func(*components.Entity)) {
	w.onCull = fn
}

// Update integrates every entity by dt, then removes entities outside the
// envelope. Returns the number culled.
func (w *World) Update(dt float64) int {
	for _, e := range w.entities {
		e.Integrate(dt)
	}
	if !w.hasEnvelope {
		return 0
	}

	culled := 0
	kept := w.entities[:0]
	for _, e := range w.entities {
		if w.envelope.Contains(e.Position.X, e.Position.Y) {
			kept = append(kept, e)
			continue
		}
		culled++
		if w.onCull != nil {
			w.onCull(e)
		}
	}
	clear(w.entities[len(kept):])
	w.entities = kept
	return culled
}

// Draw calls fn once per entity in insertion order.
func (w *World) Draw(fn func(*components.Entity)) {
	for _, e := range w.entities {
		fn(e)
	}
}

// ScreenEnvelope returns the cull rectangle extending margin screen sizes
// beyond each edge of a width x height screen.
func ScreenEnvelope(width, height, margin float64) components.Rect {
	return components.Rect{W: width, H: height}.Expand(width*margin, height*margin)
}
