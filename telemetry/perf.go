package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for the simulation frame, in execution order.
const (
	PhaseInput     = "input"
	PhaseRules     = "rules"
	PhaseIntegrate = "integrate"
	PhaseCollision = "collision"
	PhaseTelemetry = "telemetry"
)

var phaseNames = [...]string{PhaseInput, PhaseRules, PhaseIntegrate, PhaseCollision, PhaseTelemetry}

// Phases lists every phase in frame order.
var Phases = phaseNames[:]

var phaseIndex = func() map[string]int {
	m := make(map[string]int, len(Phases))
	for i, p := range Phases {
		m[p] = i
	}
	return m
}()

// noPhase marks "between phases"; time spent there is not attributed.
const noPhase = -1

// PerfSample is one timed step.
type PerfSample struct {
	Step     time.Duration
	Phases   [len(phaseNames)]time.Duration
	Entities int // Pool size when the step ended
}

// Pairs returns the number of pairs the exhaustive collision pass tested.
func (s PerfSample) Pairs() int {
	return s.Entities * (s.Entities - 1) / 2
}

// PerfCollector times simulation steps and their phases over a ring of the
// most recent samples.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	cur        PerfSample
	stepStart  time.Time
	phase      int
	phaseStart time.Time

	lastFrame     time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize steps.
// A non-positive size falls back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]PerfSample, windowSize),
		phase: noPhase,
	}
}

// StartStep begins timing a new simulation step.
func (p *PerfCollector) StartStep() {
	p.cur = PerfSample{}
	p.stepStart = time.Now()
	p.phase = noPhase
}

// StartPhase closes the running phase and starts timing the named one.
// Unknown names stop attribution until the next known phase.
func (p *PerfCollector) StartPhase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	if i, ok := phaseIndex[name]; ok {
		p.phase = i
	}
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != noPhase {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndStep records the step. entities is the pool size after the step.
func (p *PerfCollector) EndStep(entities int) {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	p.cur.Step = now.Sub(p.stepStart)
	p.cur.Entities = entities

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordFrame marks a presented frame for FPS tracking.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frameDuration = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the samples in the ring.
type PerfStats struct {
	AvgStepDuration time.Duration
	MinStepDuration time.Duration
	MaxStepDuration time.Duration
	StepsPerSecond  float64

	// Keyed by phase name; phases that took no time are absent.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	AvgEntities float64
	// CollisionPerPair is the average collision phase time per tested pair.
	CollisionPerPair time.Duration

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregates over the current ring.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
	}
	if p.frameDuration > 0 {
		st.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.count == 0 {
		return st
	}

	var total time.Duration
	var phases [len(phaseNames)]time.Duration
	var entities, pairs int
	for i, s := range p.ring[:p.count] {
		total += s.Step
		if i == 0 || s.Step < st.MinStepDuration {
			st.MinStepDuration = s.Step
		}
		st.MaxStepDuration = max(st.MaxStepDuration, s.Step)
		for j, d := range s.Phases {
			phases[j] += d
		}
		entities += s.Entities
		pairs += s.Pairs()
	}

	n := time.Duration(p.count)
	st.AvgStepDuration = total / n
	if st.AvgStepDuration > 0 {
		st.StepsPerSecond = float64(time.Second) / float64(st.AvgStepDuration)
	}
	for j, sum := range phases {
		if sum == 0 {
			continue
		}
		avg := sum / n
		st.PhaseAvg[phaseNames[j]] = avg
		if st.AvgStepDuration > 0 {
			st.PhasePct[phaseNames[j]] = float64(avg) / float64(st.AvgStepDuration) * 100
		}
	}
	st.AvgEntities = float64(entities) / float64(p.count)
	if pairs > 0 {
		st.CollisionPerPair = phases[phaseIndex[PhaseCollision]] / time.Duration(pairs)
	}
	return st
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_step_us", s.AvgStepDuration.Microseconds()),
		slog.Int64("min_step_us", s.MinStepDuration.Microseconds()),
		slog.Int64("max_step_us", s.MaxStepDuration.Microseconds()),
		slog.Int("steps_per_sec", int(s.StepsPerSecond)),
		slog.Float64("avg_entities", s.AvgEntities),
		slog.Int64("collision_ns_per_pair", s.CollisionPerPair.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd          int64   `csv:"window_end"`
	AvgStepUS          int64   `csv:"avg_step_us"`
	MinStepUS          int64   `csv:"min_step_us"`
	MaxStepUS          int64   `csv:"max_step_us"`
	StepsPerSec        float64 `csv:"steps_per_sec"`
	FPS                float64 `csv:"fps"`
	AvgEntities        float64 `csv:"avg_entities"`
	CollisionNsPerPair int64   `csv:"collision_ns_per_pair"`
	InputPct           float64 `csv:"input_pct"`
	RulesPct           float64 `csv:"rules_pct"`
	IntegratePct       float64 `csv:"integrate_pct"`
	CollisionPct       float64 `csv:"collision_pct"`
	TelemetryPct       float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:          windowEnd,
		AvgStepUS:          s.AvgStepDuration.Microseconds(),
		MinStepUS:          s.MinStepDuration.Microseconds(),
		MaxStepUS:          s.MaxStepDuration.Microseconds(),
		StepsPerSec:        s.StepsPerSecond,
		FPS:                s.FPS,
		AvgEntities:        s.AvgEntities,
		CollisionNsPerPair: s.CollisionPerPair.Nanoseconds(),
		InputPct:           s.PhasePct[PhaseInput],
		RulesPct:           s.PhasePct[PhaseRules],
		IntegratePct:       s.PhasePct[PhaseIntegrate],
		CollisionPct:       s.PhasePct[PhaseCollision],
		TelemetryPct:       s.PhasePct[PhaseTelemetry],
	}
}
