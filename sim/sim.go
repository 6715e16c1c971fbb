// Package sim drives one frame of the shooter: input, gameplay rules,
// integration and the collision pass. It has no rendering dependency so it
// runs the same under the raylib host and in headless mode.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/spacestorm/components"
	"github.com/pthm-cable/spacestorm/config"
	"github.com/pthm-cable/spacestorm/input"
	"github.com/pthm-cable/spacestorm/telemetry"
	"github.com/pthm-cable/spacestorm/world"
)

// Action names read by the gameplay rules.
const (
	ActionMove     = "move"
	ActionAim      = "aim"
	ActionAttack   = "attack"
	ActionInteract = "interact"
	ActionRun      = "run"
	ActionSwitch   = "switch"
	ActionJump     = "jump"
	ActionPause    = "pause"
)

// Options configures a Simulation.
type Options struct {
	Seed      int64
	LogStats  bool   // Log window stats via slog
	OutputDir string // CSV output directory (empty = disabled)

	// StatsCallback is called with every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Stats is a point-in-time snapshot of the simulation.
type Stats struct {
	Frame      int64
	SimTimeSec float64
	Score      int
	Entities   int
	Enemies    int
	Bullets    int
	Paused     bool
}

// Simulation owns the world, the role of every live entity and the
// telemetry collectors.
type Simulation struct {
	cfg     *config.Config
	actions *input.Registry
	world   *world.World
	rng     *rand.Rand

	roles  map[*components.Entity]components.Role
	player *components.Entity
	bounds r2.Box

	shootTimer float64
	spawnTimer float64
	score      int
	frame      int64
	simTime    float64
	paused     bool

	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastWindow    telemetry.WindowStats
}

// New builds a simulation with the player spawned at its configured start.
// actions is read but never rebound; the caller owns its bindings.
func New(cfg *config.Config, actions *input.Registry, opts Options) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: nil config")
	}
	if actions == nil {
		actions = input.NewRegistry(nil)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if output != nil {
		if err := output.WriteConfig(cfg); err != nil {
			output.Close()
			return nil, err
		}
	}

	s := &Simulation{
		cfg:           cfg,
		actions:       actions,
		world:         world.New(),
		rng:           rand.New(rand.NewSource(opts.Seed)),
		roles:         make(map[*components.Entity]components.Role),
		collector:     telemetry.NewCollector(cfg.Simulation.StatsWindow),
		perf:          telemetry.NewPerfCollector(cfg.Simulation.PerfWindow),
		output:        output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	s.world.OnCull(s.cull)
	s.Resize(cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	s.spawnPlayer()

	slog.Info("simulation created",
		"seed", opts.Seed,
		"screen_w", cfg.Screen.Width,
		"screen_h", cfg.Screen.Height,
		"output_dir", opts.OutputDir,
	)
	return s, nil
}

// Resize updates the play area and the cull envelope. A zero-sized area
// (a minimized window) keeps the old bounds and suspends culling.
func (s *Simulation) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		s.world.ClearEnvelope()
		slog.Debug("culling suspended", "width", width, "height", height)
		return
	}
	s.bounds = r2.Box{Max: r2.Vec{X: width, Y: height}}
	s.world.SetEnvelope(world.ScreenEnvelope(width, height, s.cfg.Simulation.EnvelopeMargin))
}

// Step advances the simulation by dt seconds.
func (s *Simulation) Step(dt float64) {
	if dt < 0 {
		dt = 0
	}

	s.perf.StartStep()

	s.perf.StartPhase(telemetry.PhaseInput)
	s.actions.Update()
	if s.actions.GetButtonPressed(ActionPause) {
		s.SetPaused(!s.paused)
	}
	if s.paused {
		s.perf.EndStep(s.world.Len())
		return
	}

	s.perf.StartPhase(telemetry.PhaseRules)
	s.updatePlayer(dt)
	s.updateShooting(dt)
	s.updateEnemies(dt)

	s.perf.StartPhase(telemetry.PhaseIntegrate)
	if n := s.world.Update(dt); n > 0 {
		s.collector.RecordCulled(n)
	}
	s.clampPlayer()

	s.perf.StartPhase(telemetry.PhaseCollision)
	s.resolveCollisions()

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.frame++
	s.simTime += dt
	s.collector.AddFrame(dt)
	s.flushTelemetry()

	s.perf.EndStep(s.world.Len())
}

// Reset clears the playfield and score and respawns the player. Telemetry
// windows keep running.
func (s *Simulation) Reset() {
	s.world.Clear()
	clear(s.roles)
	s.player = nil
	s.score = 0
	s.shootTimer = 0
	s.spawnTimer = 0
	s.spawnPlayer()
	slog.Info("simulation reset", "frame", s.frame)
}

// RecordFrame marks a presented frame for FPS tracking.
func (s *Simulation) RecordFrame() {
	s.perf.RecordFrame()
}

// Paused reports whether gameplay is frozen.
func (s *Simulation) Paused() bool {
	return s.paused
}

// SetPaused freezes or resumes gameplay.
func (s *Simulation) SetPaused(p bool) {
	if s.paused == p {
		return
	}
	s.paused = p
	slog.Info("pause toggled", "paused", p, "frame", s.frame)
}

// World returns the entity pool.
func (s *Simulation) World() *world.World {
	return s.world
}

// Player returns the player entity.
func (s *Simulation) Player() *components.Entity {
	return s.player
}

// Role returns the gameplay role of e, or RoleNone if it is not live.
func (s *Simulation) Role(e *components.Entity) components.Role {
	return s.roles[e]
}

// Actions returns the input registry the simulation reads.
func (s *Simulation) Actions() *input.Registry {
	return s.actions
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.score
}

// Stats returns a snapshot of the current frame.
func (s *Simulation) Stats() Stats {
	pop := s.population()
	return Stats{
		Frame:      s.frame,
		SimTimeSec: s.simTime,
		Score:      s.score,
		Entities:   pop.Entities,
		Enemies:    pop.Enemies,
		Bullets:    pop.Bullets,
		Paused:     s.paused,
	}
}

// LastWindow returns the most recently flushed telemetry window.
func (s *Simulation) LastWindow() telemetry.WindowStats {
	return s.lastWindow
}

// PerfStats returns the rolling per-phase timings.
func (s *Simulation) PerfStats() telemetry.PerfStats {
	return s.perf.Stats()
}

// Close flushes and closes any CSV output.
func (s *Simulation) Close() error {
	if s.output == nil {
		return nil
	}
	return s.output.Close()
}

func (s *Simulation) spawn(e *components.Entity, role components.Role) {
	if s.world.Spawn(e) {
		s.roles[e] = role
	}
}

func (s *Simulation) remove(e *components.Entity) {
	if s.world.Remove(e) {
		s.forget(e)
	}
}

func (s *Simulation) cull(e *components.Entity) {
	slog.Debug("entity culled", "role", s.roles[e].String(), "x", e.Position.X, "y", e.Position.Y, "frame", s.frame)
	s.forget(e)
}

// forget drops bookkeeping for an entity that left the pool.
func (s *Simulation) forget(e *components.Entity) {
	delete(s.roles, e)
	if e == s.player {
		s.player = nil
	}
}

func (s *Simulation) count(role components.Role) int {
	n := 0
	for _, r := range s.roles {
		if r == role {
			n++
		}
	}
	return n
}

func (s *Simulation) population() telemetry.Population {
	return telemetry.Population{
		Entities: s.world.Len(),
		Enemies:  s.count(components.RoleEnemy),
		Bullets:  s.count(components.RoleBullet),
	}
}

func (s *Simulation) flushTelemetry() {
	if !s.collector.ShouldFlush() {
		return
	}

	var speeds []float64
	s.world.Draw(func(e *components.Entity) {
		speeds = append(speeds, e.Speed())
	})

	stats := s.collector.Flush(s.frame, s.population(), s.score, speeds)
	perfStats := s.perf.Stats()
	s.lastWindow = stats

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if s.output != nil {
		if err := s.output.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := s.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
