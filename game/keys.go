package game

import (
	"fmt"
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spacestorm/config"
	"github.com/pthm-cable/spacestorm/input"
	"github.com/pthm-cable/spacestorm/sim"
)

// RaylibSource reads device state from raylib.
type RaylibSource struct{}

// IsKeyDown implements input.Source.
func (RaylibSource) IsKeyDown(k input.Key) bool {
	return rl.IsKeyDown(int32(k))
}

// IsMouseButtonDown implements input.Source.
func (RaylibSource) IsMouseButtonDown(b input.MouseButton) bool {
	return rl.IsMouseButtonDown(rl.MouseButton(b))
}

// keyCodes maps config key names to raylib key codes.
var keyCodes = map[string]input.Key{
	"A": input.Key(rl.KeyA), "B": input.Key(rl.KeyB), "C": input.Key(rl.KeyC), "D": input.Key(rl.KeyD),
	"E": input.Key(rl.KeyE), "F": input.Key(rl.KeyF), "G": input.Key(rl.KeyG), "H": input.Key(rl.KeyH),
	"I": input.Key(rl.KeyI), "J": input.Key(rl.KeyJ), "K": input.Key(rl.KeyK), "L": input.Key(rl.KeyL),
	"M": input.Key(rl.KeyM), "N": input.Key(rl.KeyN), "O": input.Key(rl.KeyO), "P": input.Key(rl.KeyP),
	"Q": input.Key(rl.KeyQ), "R": input.Key(rl.KeyR), "S": input.Key(rl.KeyS), "T": input.Key(rl.KeyT),
	"U": input.Key(rl.KeyU), "V": input.Key(rl.KeyV), "W": input.Key(rl.KeyW), "X": input.Key(rl.KeyX),
	"Y": input.Key(rl.KeyY), "Z": input.Key(rl.KeyZ),

	"ZERO": input.Key(rl.KeyZero), "ONE": input.Key(rl.KeyOne), "TWO": input.Key(rl.KeyTwo),
	"THREE": input.Key(rl.KeyThree), "FOUR": input.Key(rl.KeyFour), "FIVE": input.Key(rl.KeyFive),
	"SIX": input.Key(rl.KeySix), "SEVEN": input.Key(rl.KeySeven), "EIGHT": input.Key(rl.KeyEight),
	"NINE": input.Key(rl.KeyNine),

	"LEFT": input.Key(rl.KeyLeft), "RIGHT": input.Key(rl.KeyRight),
	"UP": input.Key(rl.KeyUp), "DOWN": input.Key(rl.KeyDown),

	"SPACE":         input.Key(rl.KeySpace),
	"ENTER":         input.Key(rl.KeyEnter),
	"TAB":           input.Key(rl.KeyTab),
	"ESCAPE":        input.Key(rl.KeyEscape),
	"BACKSPACE":     input.Key(rl.KeyBackspace),
	"LEFT_SHIFT":    input.Key(rl.KeyLeftShift),
	"RIGHT_SHIFT":   input.Key(rl.KeyRightShift),
	"LEFT_CONTROL":  input.Key(rl.KeyLeftControl),
	"RIGHT_CONTROL": input.Key(rl.KeyRightControl),
	"LEFT_ALT":      input.Key(rl.KeyLeftAlt),
	"RIGHT_ALT":     input.Key(rl.KeyRightAlt),
}

var mouseButtons = map[string]input.MouseButton{
	"LEFT":   input.MouseButton(rl.MouseButtonLeft),
	"RIGHT":  input.MouseButton(rl.MouseButtonRight),
	"MIDDLE": input.MouseButton(rl.MouseButtonMiddle),
}

// KeyByName resolves a config key name such as "LEFT_CONTROL".
// Also usable without an open window.
func KeyByName(name string) (input.Key, bool) {
	k, ok := keyCodes[name]
	return k, ok
}

// MouseButtonByName resolves a config mouse button name such as "LEFT".
func MouseButtonByName(name string) (input.MouseButton, bool) {
	b, ok := mouseButtons[name]
	return b, ok
}

// KeyNames lists every key name accepted in the controls config.
func KeyNames() []string {
	return input.KeyNames(keyCodes)
}

// MouseButtonNames returns every mouse button name accepted in controls, sorted.
func MouseButtonNames() []string {
	return slices.Sorted(maps.Keys(mouseButtons))
}

// NewActions builds a registry bound from the controls config. src may be
// nil for a registry that reads every action as idle.
func NewActions(controls config.ControlsConfig, src input.Source) (*input.Registry, error) {
	reg := input.NewRegistry(src)
	for _, name := range []string{sim.ActionMove, sim.ActionAim} {
		reg.RegisterVector2(name)
	}
	for _, name := range []string{
		sim.ActionAttack, sim.ActionInteract, sim.ActionRun,
		sim.ActionSwitch, sim.ActionJump, sim.ActionPause,
	} {
		reg.RegisterButton(name)
	}
	if err := input.ApplyBindings(reg, controls, KeyByName, MouseButtonByName); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewAutopilot builds a headless autopilot pressing the keys bound to
// move left, move right and attack.
func NewAutopilot(controls config.ControlsConfig) (*sim.Autopilot, error) {
	move, ok := controls.Axes[sim.ActionMove]
	if !ok {
		return nil, fmt.Errorf("autopilot: no %q axis in controls", sim.ActionMove)
	}
	attack := controls.Buttons[sim.ActionAttack]

	keys := sim.AutopilotKeys{Left: input.NoKey, Right: input.NoKey, Fire: input.NoKey}
	for _, b := range []struct {
		name string
		dst  *input.Key
	}{
		{move.NegX, &keys.Left},
		{move.PosX, &keys.Right},
		{attack.Key, &keys.Fire},
	} {
		name, dst := b.name, b.dst
		if name == "" {
			continue
		}
		k, ok := KeyByName(name)
		if !ok {
			return nil, fmt.Errorf("autopilot: unknown key %q", name)
		}
		*dst = k
	}
	return sim.NewAutopilot(keys), nil
}
