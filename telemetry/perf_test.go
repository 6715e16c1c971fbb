package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseInput)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseCollision)
		time.Sleep(200 * time.Microsecond)
		pc.EndStep(0)
	}

	stats := pc.Stats()

	if stats.AvgStepDuration <= 0 {
		t.Error("expected positive average step duration")
	}
	if stats.MinStepDuration > stats.MaxStepDuration {
		t.Errorf("min %v > max %v", stats.MinStepDuration, stats.MaxStepDuration)
	}
	for _, phase := range []string{PhaseInput, PhaseCollision} {
		if _, ok := stats.PhaseAvg[phase]; !ok {
			t.Errorf("expected %s phase to be tracked", phase)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseRules]; ok {
		t.Error("untouched phase should not appear")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseIntegrate)
		pc.EndStep(0)
	}

	stats := pc.Stats()

	if stats.StepsPerSecond <= 0 && stats.AvgStepDuration > 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseRules)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseCollision)
		time.Sleep(2 * time.Millisecond)
		pc.EndStep(0)
	}

	stats := pc.Stats()

	if stats.PhasePct[PhaseCollision] <= stats.PhasePct[PhaseRules] {
		t.Errorf("expected collision (%v%%) > rules (%v%%)",
			stats.PhasePct[PhaseCollision], stats.PhasePct[PhaseRules])
	}

	row := stats.ToCSV(42)
	if row.WindowEnd != 42 {
		t.Errorf("WindowEnd = %d, want 42", row.WindowEnd)
	}
	if row.CollisionPct != stats.PhasePct[PhaseCollision] {
		t.Errorf("CollisionPct = %v, want %v", row.CollisionPct, stats.PhasePct[PhaseCollision])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgStepDuration != 0 {
		t.Error("expected zero avg step duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfCollector_EntityLoad(t *testing.T) {
	pc := NewPerfCollector(4)

	for _, n := range []int{2, 4} {
		pc.StartStep()
		pc.StartPhase(PhaseCollision)
		time.Sleep(500 * time.Microsecond)
		pc.EndStep(n)
	}

	stats := pc.Stats()

	if stats.AvgEntities != 3 {
		t.Errorf("AvgEntities = %v, want 3", stats.AvgEntities)
	}
	// 1 + 6 pairs over both steps; PhaseAvg is truncated so allow 1ns
	want := (stats.PhaseAvg[PhaseCollision] * 2) / 7
	if d := stats.CollisionPerPair - want; d < -1 || d > 1 {
		t.Errorf("CollisionPerPair = %v, want about %v", stats.CollisionPerPair, want)
	}
	if row := stats.ToCSV(0); row.CollisionNsPerPair != stats.CollisionPerPair.Nanoseconds() {
		t.Errorf("CollisionNsPerPair = %d, want %d", row.CollisionNsPerPair, stats.CollisionPerPair.Nanoseconds())
	}
}

func TestPerfCollector_NoPairsNoPerPair(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartStep()
	pc.StartPhase(PhaseCollision)
	pc.EndStep(1)

	if got := pc.Stats().CollisionPerPair; got != 0 {
		t.Errorf("CollisionPerPair with one entity = %v, want 0", got)
	}
}

func TestPerfCollector_UnknownPhaseNotAttributed(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartStep()
	pc.StartPhase("render")
	time.Sleep(200 * time.Microsecond)
	pc.EndStep(0)

	stats := pc.Stats()
	if len(stats.PhaseAvg) != 0 {
		t.Errorf("unknown phase leaked into PhaseAvg: %v", stats.PhaseAvg)
	}
	if stats.AvgStepDuration <= 0 {
		t.Error("step time should still be recorded")
	}
}
