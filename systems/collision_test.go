package systems

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/spacestorm/components"
)

func box(x, y, w, h float64) *components.Entity {
	return components.NewEntity(r3.Vec{X: x, Y: y}, r3.Vec{X: w, Y: h, Z: 1}, color.RGBA{})
}

// TestCheckCollision verifies the half-open rectangle overlap test.
func TestCheckCollision(t *testing.T) {
	tests := []struct {
		name string
		a, b *components.Entity
		want bool
	}{
		{"overlap in x", box(0, 0, 10, 10), box(5, 0, 10, 10), true},
		{"contained", box(0, 0, 10, 10), box(2, 2, 3, 3), true},
		{"identical", box(4, 4, 2, 2), box(4, 4, 2, 2), true},
		{"share right edge", box(0, 0, 10, 10), box(10, 0, 10, 10), false},
		{"share bottom edge", box(0, 0, 10, 10), box(0, 10, 10, 10), false},
		{"share corner", box(0, 0, 10, 10), box(10, 10, 10, 10), false},
		{"apart", box(0, 0, 10, 10), box(50, 50, 10, 10), false},
		{"overlap x only", box(0, 0, 10, 10), box(5, 20, 10, 10), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckCollision(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("CheckCollision(a, b) = %v, want %v", got, tc.want)
			}
			if rev := CheckCollision(tc.b, tc.a); rev != got {
				t.Errorf("collision not symmetric: (a,b)=%v (b,a)=%v", got, rev)
			}
			if r := CheckCollisionRecs(tc.a.Rect(), tc.b.Rect()); r != got {
				t.Errorf("CheckCollisionRecs = %v, entity form = %v", r, got)
			}
			if r := CheckCollisionEntityRect(tc.a, tc.b.Rect()); r != got {
				t.Errorf("CheckCollisionEntityRect = %v, entity form = %v", r, got)
			}
		})
	}
}

// TestResolveCollisionHeadOn pins the impulse for two equal bodies closing at 20 u/s.
func TestResolveCollisionHeadOn(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(5, 0, 10, 10)
	a.SetFriction(0.9)
	b.SetFriction(0.9)

	if !CheckCollision(a, b) {
		t.Fatal("expected overlap")
	}

	a.Velocity = r3.Vec{X: 10}
	b.Velocity = r3.Vec{X: -10}
	ResolveCollision(a, b)

	// normal (1,0); vAlongNormal -20; j = 1.5*20 / (2/0.9) = 13.5; dv = 13.5*0.9 = 12.15
	const eps = 1e-9
	if math.Abs(a.Velocity.X-(-2.15)) > eps {
		t.Errorf("a.Velocity.X = %v, want -2.15", a.Velocity.X)
	}
	if math.Abs(b.Velocity.X-2.15) > eps {
		t.Errorf("b.Velocity.X = %v, want 2.15", b.Velocity.X)
	}
	if a.Velocity.Y != 0 || b.Velocity.Y != 0 {
		t.Errorf("y velocities changed: a=%v b=%v", a.Velocity.Y, b.Velocity.Y)
	}
}

func TestResolveCollisionUnequalFriction(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(0, 5, 10, 10)
	a.SetFriction(0.5)
	b.SetFriction(1)
	a.Velocity = r3.Vec{Y: 4, Z: 7}
	b.Velocity = r3.Vec{}

	ResolveCollision(a, b)

	// normal (0,1); vAlongNormal -4; j = 1.5*4 / (2 + 1) = 2
	const eps = 1e-9
	if math.Abs(a.Velocity.Y-3) > eps {
		t.Errorf("a.Velocity.Y = %v, want 3", a.Velocity.Y)
	}
	if math.Abs(b.Velocity.Y-2) > eps {
		t.Errorf("b.Velocity.Y = %v, want 2", b.Velocity.Y)
	}
	if a.Velocity.Z != 7 {
		t.Errorf("z velocity touched: %v", a.Velocity.Z)
	}
}

func TestResolveCollisionSeparatingIsNoOp(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(5, 0, 10, 10)
	a.Velocity = r3.Vec{X: -3, Y: 1}
	b.Velocity = r3.Vec{X: 3, Y: -1}

	ResolveCollision(a, b)

	if a.Velocity != (r3.Vec{X: -3, Y: 1}) || b.Velocity != (r3.Vec{X: 3, Y: -1}) {
		t.Errorf("separating bodies changed: a=%v b=%v", a.Velocity, b.Velocity)
	}
}

func TestResolveCollisionDegenerate(t *testing.T) {
	t.Run("coincident", func(t *testing.T) {
		a := box(1, 1, 10, 10)
		b := box(1, 1, 10, 10)
		a.Velocity = r3.Vec{X: 5}
		b.Velocity = r3.Vec{X: -5}

		ResolveCollision(a, b)

		if a.Velocity.X != 5 || b.Velocity.X != -5 {
			t.Errorf("coincident bodies changed: a=%v b=%v", a.Velocity, b.Velocity)
		}
	})

	t.Run("zero friction field", func(t *testing.T) {
		a := box(0, 0, 10, 10)
		b := box(5, 0, 10, 10)
		a.Friction = 0 // bypasses SetFriction
		a.Velocity = r3.Vec{X: 10}
		b.Velocity = r3.Vec{X: -10}

		ResolveCollision(a, b)

		for _, v := range []float64{a.Velocity.X, a.Velocity.Y, b.Velocity.X, b.Velocity.Y} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("non-finite velocity after resolution: a=%v b=%v", a.Velocity, b.Velocity)
			}
		}
		if a.Velocity.X != 10 || b.Velocity.X != -10 {
			t.Errorf("zero friction should skip resolution: a=%v b=%v", a.Velocity, b.Velocity)
		}
	})
}

func TestSweepOverlaps(t *testing.T) {
	a := box(0, 0, 10, 10)
	b := box(5, 0, 10, 10)
	c := box(100, 100, 5, 5)
	d := box(12, 0, 5, 5) // overlaps b only

	var got [][2]*components.Entity
	n := SweepOverlaps([]*components.Entity{a, b, c, d}, func(x, y *components.Entity) {
		got = append(got, [2]*components.Entity{x, y})
	})

	if n != 2 {
		t.Fatalf("pairs = %d, want 2", n)
	}
	if got[0] != [2]*components.Entity{a, b} || got[1] != [2]*components.Entity{b, d} {
		t.Errorf("unexpected pair order: %v", got)
	}

	if n := SweepOverlaps([]*components.Entity{a, b}, nil); n != 1 {
		t.Errorf("nil callback pairs = %d, want 1", n)
	}
}
