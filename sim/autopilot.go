package sim

import (
	"math"

	"github.com/pthm-cable/spacestorm/components"
	"github.com/pthm-cable/spacestorm/input"
)

// AutopilotKeys are the key codes the autopilot holds. They must match the
// registry's bindings for ActionMove and ActionAttack.
type AutopilotKeys struct {
	Left, Right input.Key
	Fire        input.Key
}

// Autopilot is an input.Source that strafes under the nearest enemy and
// holds fire. It drives headless runs.
type Autopilot struct {
	keys     AutopilotKeys
	held     map[input.Key]bool
	deadzone float64
}

// NewAutopilot creates an autopilot pressing the given keys.
func NewAutopilot(keys AutopilotKeys) *Autopilot {
	return &Autopilot{
		keys:     keys,
		held:     make(map[input.Key]bool),
		deadzone: 4,
	}
}

// Plan chooses the keys to hold for the next Step of s.
func (a *Autopilot) Plan(s *Simulation) {
	clear(a.held)
	p := s.Player()
	if p == nil {
		return
	}
	a.held[a.keys.Fire] = true

	pc := p.Center()
	var target *components.Entity
	best := math.Inf(1)
	s.World().Draw(func(e *components.Entity) {
		if s.Role(e) != components.RoleEnemy {
			return
		}
		c := e.Center()
		if d := math.Abs(c.X - pc.X); d < best {
			best, target = d, e
		}
	})
	if target == nil {
		return
	}

	dx := target.Center().X - pc.X
	switch {
	case dx < -a.deadzone:
		a.held[a.keys.Left] = true
	case dx > a.deadzone:
		a.held[a.keys.Right] = true
	}
}

// IsKeyDown implements input.Source.
func (a *Autopilot) IsKeyDown(k input.Key) bool {
	return a.held[k]
}

// IsMouseButtonDown implements input.Source. The autopilot never clicks.
func (a *Autopilot) IsMouseButtonDown(input.MouseButton) bool {
	return false
}
