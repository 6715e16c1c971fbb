package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`
	Frames           int     `csv:"frames"`

	// Population at window end
	Entities int `csv:"entities"`
	Enemies  int `csv:"enemies"`
	Bullets  int `csv:"bullets"`

	// Events during window
	Shots          int `csv:"shots"`
	EnemiesSpawned int `csv:"enemies_spawned"`
	Hits           int `csv:"hits"`
	Culled         int `csv:"culled"`
	Overlaps       int `csv:"overlaps"`
	Resolutions    int `csv:"resolutions"`

	HitRate float64 `csv:"hit_rate"`

	Score int `csv:"score"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
}

// ComputeSpeedStats calculates mean, standard deviation and percentiles.
// Returns zeros for an empty slice.
func ComputeSpeedStats(values []float64) (mean, std, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("entities", s.Entities),
		slog.Int("enemies", s.Enemies),
		slog.Int("bullets", s.Bullets),
		slog.Int("shots", s.Shots),
		slog.Int("enemies_spawned", s.EnemiesSpawned),
		slog.Int("hits", s.Hits),
		slog.Int("culled", s.Culled),
		slog.Int("overlaps", s.Overlaps),
		slog.Int("resolutions", s.Resolutions),
		slog.Float64("hit_rate", s.HitRate),
		slog.Int("score", s.Score),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"entities", s.Entities,
		"enemies", s.Enemies,
		"bullets", s.Bullets,
		"shots", s.Shots,
		"hits", s.Hits,
		"hit_rate", s.HitRate,
		"culled", s.Culled,
		"resolutions", s.Resolutions,
		"score", s.Score,
		"speed_mean", s.SpeedMean,
	)
}
