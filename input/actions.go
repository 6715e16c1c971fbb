// Package input maps named actions to device bindings so gameplay code never
// polls raw keys. A Registry is resolved once per frame with Update and read
// with the Get methods.
package input

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Key identifies a keyboard key. Values match the host's key codes.
type Key int32

// MouseButton identifies a pointer button. Values match the host's button codes.
type MouseButton int32

// NoKey and NoMouseButton mark an unassigned binding.
const (
	NoKey         Key         = -1
	NoMouseButton MouseButton = -1
)

// Source answers level-triggered "is it held right now" queries.
type Source interface {
	IsKeyDown(k Key) bool
	IsMouseButtonDown(b MouseButton) bool
}

type axisBinding struct {
	negX, posX, negY, posY Key
	value                  r2.Vec
}

type buttonBinding struct {
	key     Key
	mouse   MouseButton
	down    bool
	pressed bool
}

func newAxisBinding() *axisBinding {
	return &axisBinding{negX: NoKey, posX: NoKey, negY: NoKey, posY: NoKey}
}

func newButtonBinding() *buttonBinding {
	return &buttonBinding{key: NoKey, mouse: NoMouseButton}
}

// Registry holds axis and button actions by name. Axis and button names live
// in separate namespaces. It is not safe for concurrent use.
//
// Binding a name that was never registered creates the entry.
type Registry struct {
	src     Source
	axes    map[string]*axisBinding
	buttons map[string]*buttonBinding
}

// NewRegistry creates an empty registry reading device state from src.
func NewRegistry(src Source) *Registry {
	return &Registry{
		src:     src,
		axes:    make(map[string]*axisBinding),
		buttons: make(map[string]*buttonBinding),
	}
}

// SetSource swaps the device source. Cached values are kept until the next Update.
func (r *Registry) SetSource(src Source) {
	r.src = src
}

// RegisterVector2 creates (or resets) an axis action with no keys assigned.
func (r *Registry) RegisterVector2(name string) {
	r.axes[name] = newAxisBinding()
}

// RegisterButton creates (or resets) a button action with nothing assigned.
func (r *Registry) RegisterButton(name string) {
	r.buttons[name] = newButtonBinding()
}

func (r *Registry) axis(name string) *axisBinding {
	a, ok := r.axes[name]
	if !ok {
		a = newAxisBinding()
		r.axes[name] = a
	}
	return a
}

func (r *Registry) button(name string) *buttonBinding {
	b, ok := r.buttons[name]
	if !ok {
		b = newButtonBinding()
		r.buttons[name] = b
	}
	return b
}

// BindVector2 assigns the four direction keys of an axis action.
func (r *Registry) BindVector2(name string, negX, posX, negY, posY Key) {
	a := r.axis(name)
	a.negX, a.posX, a.negY, a.posY = negX, posX, negY, posY
}

// BindKey assigns the key of a button action, leaving its mouse button as is.
func (r *Registry) BindKey(name string, k Key) {
	r.button(name).key = k
}

// BindMouseButton assigns the mouse button of a button action, leaving its key as is.
func (r *Registry) BindMouseButton(name string, b MouseButton) {
	r.button(name).mouse = b
}

func (r *Registry) keyDown(k Key) bool {
	return k != NoKey && r.src != nil && r.src.IsKeyDown(k)
}

func (r *Registry) mouseDown(b MouseButton) bool {
	return b != NoMouseButton && r.src != nil && r.src.IsMouseButtonDown(b)
}

// Update resolves every action from the current device state. Call it once
// per frame before reading any action.
func (r *Registry) Update() {
	for _, a := range r.axes {
		var v r2.Vec
		if r.keyDown(a.negX) {
			v.X--
		}
		if r.keyDown(a.posX) {
			v.X++
		}
		if r.keyDown(a.negY) {
			v.Y--
		}
		if r.keyDown(a.posY) {
			v.Y++
		}
		a.value = v
	}

	for _, b := range r.buttons {
		down := r.keyDown(b.key) || r.mouseDown(b.mouse)
		// pressed must see last frame's down before it is overwritten
		b.pressed = down && !b.down
		b.down = down
	}
}

// GetVector2 returns the last resolved axis value, or zero for unknown names.
func (r *Registry) GetVector2(name string) r2.Vec {
	if a, ok := r.axes[name]; ok {
		return a.value
	}
	return r2.Vec{}
}

// GetButton reports whether the button was held at the last Update.
func (r *Registry) GetButton(name string) bool {
	if b, ok := r.buttons[name]; ok {
		return b.down
	}
	return false
}

// GetButtonPressed reports whether the button went down at the last Update.
func (r *Registry) GetButtonPressed(name string) bool {
	if b, ok := r.buttons[name]; ok {
		return b.pressed
	}
	return false
}

// Axes returns the registered axis names in sorted order.
func (r *Registry) Axes() []string {
	return sortedKeys(r.axes)
}

// Buttons returns the registered button names in sorted order.
func (r *Registry) Buttons() []string {
	return sortedKeys(r.buttons)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
