// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Simulation SimulationConfig `yaml:"simulation"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Bullet     BulletConfig     `yaml:"bullet"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Controls   ControlsConfig   `yaml:"controls"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// SimulationConfig holds frame loop parameters.
type SimulationConfig struct {
	DT             float64 `yaml:"dt"`              // Fixed frame time used in headless mode
	EnvelopeMargin float64 `yaml:"envelope_margin"` // Cull distance beyond each screen edge, in screen sizes
	StatsWindow    float64 `yaml:"stats_window"`    // Seconds of simulation per telemetry window
	PerfWindow     int     `yaml:"perf_window"`     // Frames averaged by the perf collector
}

// PhysicsConfig holds shared physics parameters.
type PhysicsConfig struct {
	DefaultFriction float64 `yaml:"default_friction"`
}

// ColorConfig is an RGBA color in config form.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// SizeConfig is a width/height pair.
type SizeConfig struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// PlayerConfig holds player body and movement parameters.
type PlayerConfig struct {
	StartX        float64     `yaml:"start_x"`
	StartY        float64     `yaml:"start_y"`
	Size          SizeConfig  `yaml:"size"`
	Speed         float64     `yaml:"speed"`          // Velocity added per frame at full axis deflection
	RunMultiplier float64     `yaml:"run_multiplier"` // Speed multiplier while "run" is held
	Friction      float64     `yaml:"friction"`
	Color         ColorConfig `yaml:"color"`
}

// BulletConfig holds projectile parameters.
type BulletConfig struct {
	Size     SizeConfig  `yaml:"size"`
	Speed    float64     `yaml:"speed"`    // Units per second
	Cooldown float64     `yaml:"cooldown"` // Seconds between shots
	MaxLive  int         `yaml:"max_live"`
	Color    ColorConfig `yaml:"color"`
}

// EnemyConfig holds enemy spawn and behavior parameters.
type EnemyConfig struct {
	Size          SizeConfig  `yaml:"size"`
	MaxLive       int         `yaml:"max_live"`
	SpawnInterval float64     `yaml:"spawn_interval"` // Seconds between spawns
	SpawnMarginX  float64     `yaml:"spawn_margin_x"` // Keep spawns this far from the side edges
	SpawnMinY     float64     `yaml:"spawn_min_y"`
	SpawnMaxY     float64     `yaml:"spawn_max_y"`
	ChaseAccel    float64     `yaml:"chase_accel"` // Velocity gained per second toward the player
	Friction      float64     `yaml:"friction"`
	ScoreValue    int         `yaml:"score_value"`
	Color         ColorConfig `yaml:"color"`
}

// AxisBindingConfig names the four keys of a 2D axis action.
type AxisBindingConfig struct {
	NegX string `yaml:"neg_x"`
	PosX string `yaml:"pos_x"`
	NegY string `yaml:"neg_y"`
	PosY string `yaml:"pos_y"`
}

// ButtonBindingConfig names the key and/or mouse button of a button action.
// Either may be empty.
type ButtonBindingConfig struct {
	Key   string `yaml:"key"`
	Mouse string `yaml:"mouse"`
}

// ControlsConfig maps action names to device bindings.
type ControlsConfig struct {
	Axes    map[string]AxisBindingConfig   `yaml:"axes"`
	Buttons map[string]ButtonBindingConfig `yaml:"buttons"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW float64 // Screen.Width as float64
	ScreenH float64 // Screen.Height as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		defaults := cfg.Controls
		defaults.Axes = maps.Clone(defaults.Axes)
		defaults.Buttons = maps.Clone(defaults.Buttons)

		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
		if err := mergeControls(data, defaults, &cfg.Controls); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// controlsFile mirrors the controls section with optional fields, so a file
// can rebind one slot of an action and an explicit "" can unbind it.
type controlsFile struct {
	Controls struct {
		Axes map[string]struct {
			NegX *string `yaml:"neg_x"`
			PosX *string `yaml:"pos_x"`
			NegY *string `yaml:"neg_y"`
			PosY *string `yaml:"pos_y"`
		} `yaml:"axes"`
		Buttons map[string]struct {
			Key   *string `yaml:"key"`
			Mouse *string `yaml:"mouse"`
		} `yaml:"buttons"`
	} `yaml:"controls"`
}

// mergeControls rebuilds every action named in data from its default binding
// plus the fields the file sets. yaml.v3 replaces map values whole, so the
// plain decode into out loses the unmentioned fields.
func mergeControls(data []byte, defaults ControlsConfig, out *ControlsConfig) error {
	var file controlsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	for name, a := range file.Controls.Axes {
		ab := defaults.Axes[name]
		set(&ab.NegX, a.NegX)
		set(&ab.PosX, a.PosX)
		set(&ab.NegY, a.NegY)
		set(&ab.PosY, a.PosY)
		out.Axes[name] = ab
	}
	for name, b := range file.Controls.Buttons {
		bb := defaults.Buttons[name]
		set(&bb.Key, b.Key)
		set(&bb.Mouse, b.Mouse)
		out.Buttons[name] = bb
	}
	return nil
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Simulation.DT <= 0 {
		errs = append(errs, fmt.Errorf("simulation.dt must be positive, got %v", c.Simulation.DT))
	}
	if c.Simulation.EnvelopeMargin < 0 {
		errs = append(errs, fmt.Errorf("simulation.envelope_margin must not be negative, got %v", c.Simulation.EnvelopeMargin))
	}
	for name, f := range map[string]float64{
		"physics.default_friction": c.Physics.DefaultFriction,
		"player.friction":          c.Player.Friction,
		"enemy.friction":           c.Enemy.Friction,
	} {
		if f <= 0 || f > 1 {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", name, f))
		}
	}
	if c.Player.Speed < 0 || c.Bullet.Speed < 0 || c.Enemy.ChaseAccel < 0 {
		errs = append(errs, errors.New("speeds must not be negative"))
	}
	if c.Enemy.SpawnMaxY < c.Enemy.SpawnMinY {
		errs = append(errs, fmt.Errorf("enemy spawn band is empty: min_y %v > max_y %v", c.Enemy.SpawnMinY, c.Enemy.SpawnMaxY))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	if c.Simulation.PerfWindow < 1 {
		c.Simulation.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
