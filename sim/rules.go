package sim

import (
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spacestorm/components"
	"github.com/pthm-cable/spacestorm/config"
	"github.com/pthm-cable/spacestorm/systems"
)

// referenceFPS is the frame rate the per-frame player speed is tuned for.
const referenceFPS = 60

func rgba(c config.ColorConfig) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func size(s config.SizeConfig) r3.Vec {
	return r3.Vec{X: s.W, Y: s.H, Z: 1}
}

func (s *Simulation) spawnPlayer() {
	pc := s.cfg.Player
	e := components.NewEntity(r3.Vec{X: pc.StartX, Y: pc.StartY}, size(pc.Size), rgba(pc.Color))
	e.SetFriction(pc.Friction)
	s.player = e
	s.spawn(e, components.RolePlayer)
}

func (s *Simulation) updatePlayer(dt float64) {
	if s.player == nil {
		return
	}
	move := s.actions.GetVector2(ActionMove)
	if move == (r2.Vec{}) {
		return
	}
	speed := s.cfg.Player.Speed
	if s.actions.GetButton(ActionRun) {
		speed *= s.cfg.Player.RunMultiplier
	}
	f := r2.Scale(speed*dt*referenceFPS, move)
	s.player.AddForce(r3.Vec{X: f.X, Y: f.Y})
}

// clampPlayer keeps the player on screen, zeroing velocity into the wall.
func (s *Simulation) clampPlayer() {
	p := s.player
	if p == nil {
		return
	}
	x, y := systems.ClampInside(p.Position.X, p.Position.Y, p.Size.X, p.Size.Y, s.bounds)
	if x != p.Position.X {
		p.Velocity.X = 0
	}
	if y != p.Position.Y {
		p.Velocity.Y = 0
	}
	p.Position.X, p.Position.Y = x, y
}

// aimDirection returns the unit firing direction, straight up when idle.
func (s *Simulation) aimDirection() r2.Vec {
	aim := s.actions.GetVector2(ActionAim)
	n := r2.Norm(aim)
	if n == 0 {
		return r2.Vec{Y: -1}
	}
	return r2.Scale(1/n, aim)
}

func (s *Simulation) updateShooting(dt float64) {
	s.shootTimer += dt
	if s.player == nil || !s.actions.GetButton(ActionAttack) {
		return
	}
	bc := s.cfg.Bullet
	if s.shootTimer < bc.Cooldown {
		return
	}
	s.shootTimer = 0
	if s.count(components.RoleBullet) >= bc.MaxLive {
		return
	}

	c := s.player.Center()
	dir := s.aimDirection()
	pos := r3.Vec{X: c.X - bc.Size.W/2, Y: c.Y - bc.Size.H/2}
	b := components.NewEntity(pos, size(bc.Size), rgba(bc.Color))
	b.SetFriction(s.cfg.Physics.DefaultFriction)
	b.Velocity = r3.Vec{X: dir.X * bc.Speed, Y: dir.Y * bc.Speed}
	s.spawn(b, components.RoleBullet)
	s.collector.RecordShot()
}

func (s *Simulation) updateEnemies(dt float64) {
	ec := s.cfg.Enemy
	s.spawnTimer += dt
	if s.spawnTimer >= ec.SpawnInterval && s.count(components.RoleEnemy) < ec.MaxLive {
		s.spawnTimer = 0
		s.spawnEnemy()
	}

	if s.player == nil || ec.ChaseAccel == 0 {
		return
	}
	target := s.player.Center()
	for e, role := range s.roles {
		if role != components.RoleEnemy {
			continue
		}
		c := e.Center()
		dir := systems.Direction(c.X, c.Y, target.X, target.Y)
		e.AddForce(r3.Vec{X: dir.X * ec.ChaseAccel * dt, Y: dir.Y * ec.ChaseAccel * dt})
	}
}

func (s *Simulation) spawnEnemy() {
	ec := s.cfg.Enemy
	minX := ec.SpawnMarginX
	maxX := s.bounds.Max.X - ec.SpawnMarginX - ec.Size.W
	if maxX < minX {
		maxX = minX
	}
	x := minX + s.rng.Float64()*(maxX-minX)
	y := ec.SpawnMinY + s.rng.Float64()*(ec.SpawnMaxY-ec.SpawnMinY)

	e := components.NewEntity(r3.Vec{X: x, Y: y}, size(ec.Size), rgba(ec.Color))
	e.SetFriction(ec.Friction)
	s.spawn(e, components.RoleEnemy)
	s.collector.RecordEnemySpawn()
	slog.Debug("enemy spawned", "x", x, "y", y, "frame", s.frame)
}

// resolveCollisions runs the exhaustive pairwise pass. Entities destroyed
// earlier in the pass are skipped for the remaining pairs.
func (s *Simulation) resolveCollisions() {
	dead := make(map[*components.Entity]bool)
	n := systems.SweepOverlaps(s.world.Entities(), func(a, b *components.Entity) {
		if dead[a] || dead[b] {
			return
		}
		ra, rb := s.roles[a], s.roles[b]
		switch {
		case ra == components.RoleBullet && rb == components.RoleEnemy:
			s.hit(a, b)
			dead[a], dead[b] = true, true
		case ra == components.RoleEnemy && rb == components.RoleBullet:
			s.hit(b, a)
			dead[a], dead[b] = true, true
		case ra.Solid() && rb.Solid():
			systems.ResolveCollision(a, b)
			s.collector.RecordResolution()
		}
	})
	s.collector.RecordOverlaps(n)
}

func (s *Simulation) hit(bullet, enemy *components.Entity) {
	s.remove(bullet)
	s.remove(enemy)
	s.score += s.cfg.Enemy.ScoreValue
	s.spawnTimer = 0
	s.collector.RecordHit()
	slog.Debug("enemy destroyed", "score", s.score, "frame", s.frame)
}
