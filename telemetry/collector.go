package telemetry

// Population holds live entity counts at the end of a window.
type Population struct {
	Entities int
	Enemies  int
	Bullets  int
}

// Collector accumulates events within time windows and produces WindowStats.
// Windows are measured in simulation seconds, so variable frame times are fine.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int64
	elapsedSec       float64
	simTimeSec       float64
	frames           int

	// Event counters for current window
	shots          int
	enemiesSpawned int
	hits           int
	culled         int
	overlaps       int
	resolutions    int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// AddFrame advances the window clock by one frame of dt seconds.
func (c *Collector) AddFrame(dt float64) {
	if dt > 0 {
		c.elapsedSec += dt
		c.simTimeSec += dt
	}
	c.frames++
}

// RecordShot records a fired bullet.
func (c *Collector) RecordShot() {
	c.shots++
}

// RecordEnemySpawn records a spawned enemy.
func (c *Collector) RecordEnemySpawn() {
	c.enemiesSpawned++
}

// RecordHit records a bullet destroying an enemy.
func (c *Collector) RecordHit() {
	c.hits++
}

// RecordCulled records entities removed by the bounds envelope.
func (c *Collector) RecordCulled(n int) {
	c.culled += n
}

// RecordOverlaps records overlapping pairs found in a collision pass.
func (c *Collector) RecordOverlaps(n int) {
	c.overlaps += n
}

// RecordResolution records an impulse applied between two solid bodies.
func (c *Collector) RecordResolution() {
	c.resolutions++
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.elapsedSec >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// currentFrame is the frame index closing the window; speeds are sampled
// entity speeds at window end.
func (c *Collector) Flush(currentFrame int64, pop Population, score int, speeds []float64) WindowStats {
	var hitRate float64
	if c.shots > 0 {
		hitRate = float64(c.hits) / float64(c.shots)
	}

	mean, std, p50, p90 := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       c.simTimeSec,
		Frames:           c.frames,

		Entities: pop.Entities,
		Enemies:  pop.Enemies,
		Bullets:  pop.Bullets,

		Shots:          c.shots,
		EnemiesSpawned: c.enemiesSpawned,
		Hits:           c.hits,
		Culled:         c.culled,
		Overlaps:       c.overlaps,
		Resolutions:    c.resolutions,
		HitRate:        hitRate,

		Score: score,

		SpeedMean: mean,
		SpeedStd:  std,
		SpeedP50:  p50,
		SpeedP90:  p90,
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.elapsedSec = 0
	c.frames = 0
	c.shots = 0
	c.enemiesSpawned = 0
	c.hits = 0
	c.culled = 0
	c.overlaps = 0
	c.resolutions = 0

	return stats
}

// WindowDurationSec returns the window length in simulation seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
