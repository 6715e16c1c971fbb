package input

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/spacestorm/config"
)

// KeyResolver maps a configured key name to a key code.
type KeyResolver func(name string) (Key, bool)

// MouseResolver maps a configured mouse button name to a button code.
type MouseResolver func(name string) (MouseButton, bool)

// ApplyBindings registers every configured action on reg and binds its keys.
// Empty names leave that slot unassigned. All unresolvable names are reported
// together; actions whose names resolve are still bound.
func ApplyBindings(reg *Registry, controls config.ControlsConfig, keys KeyResolver, mice MouseResolver) error {
	var errs []error

	resolveKey := func(action, name string) Key {
		if name == "" {
			return NoKey
		}
		k, ok := keys(name)
		if !ok {
			errs = append(errs, fmt.Errorf("action %q: unknown key %q", action, name))
			return NoKey
		}
		return k
	}

	for _, name := range sortedKeys(controls.Axes) {
		ab := controls.Axes[name]
		reg.RegisterVector2(name)
		reg.BindVector2(name,
			resolveKey(name, ab.NegX),
			resolveKey(name, ab.PosX),
			resolveKey(name, ab.NegY),
			resolveKey(name, ab.PosY),
		)
	}

	for _, name := range sortedKeys(controls.Buttons) {
		bb := controls.Buttons[name]
		reg.RegisterButton(name)
		reg.BindKey(name, resolveKey(name, bb.Key))
		if bb.Mouse == "" {
			continue
		}
		b, ok := mice(bb.Mouse)
		if !ok {
			errs = append(errs, fmt.Errorf("action %q: unknown mouse button %q", name, bb.Mouse))
			continue
		}
		reg.BindMouseButton(name, b)
	}

	if len(errs) > 0 {
		return fmt.Errorf("applying bindings: %w", errors.Join(errs...))
	}
	return nil
}

// MapResolvers builds resolvers over fixed name tables.
func MapResolvers(keys map[string]Key, mice map[string]MouseButton) (KeyResolver, MouseResolver) {
	return func(name string) (Key, bool) {
			k, ok := keys[name]
			return k, ok
		}, func(name string) (MouseButton, bool) {
			b, ok := mice[name]
			return b, ok
		}
}

// KeyNames returns the names in a key table, sorted, for help output.
func KeyNames(keys map[string]Key) []string {
	return sortedKeys(keys)
}
