package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/spacestorm/components"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(1024, 720)

	if cam.X != 512 || cam.Y != 360 {
		t.Errorf("expected camera at (512, 360), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if !cam.AtRest() {
		t.Error("new camera should be at rest")
	}
}

func TestAtRestIsIdentity(t *testing.T) {
	cam := New(1024, 720)

	for _, p := range []struct{ x, y float32 }{{0, 0}, {100, 500}, {1024, 720}} {
		sx, sy := cam.WorldToScreen(p.x, p.y)
		if !near(sx, p.x) || !near(sy, p.y) {
			t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want identity", p.x, p.y, sx, sy)
		}
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720)
	cam.Pan(37, -12)
	cam.SetZoom(0.4)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},
		{100, 100},
		{1200, 600},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestFitEnvelope(t *testing.T) {
	cam := New(1024, 720)
	// One screen of margin on each side: 3x the screen in both axes
	env := components.Rect{X: -1024, Y: -720, W: 3072, H: 2160}

	cam.Fit(env)

	if !near(cam.Zoom, 1.0/3) {
		t.Errorf("zoom = %v, want 1/3", cam.Zoom)
	}
	if !near(cam.X, 512) || !near(cam.Y, 360) {
		t.Errorf("center = (%v, %v), want (512, 360)", cam.X, cam.Y)
	}
	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX > env.X+0.1 || minY > env.Y+0.1 || maxX < env.X+env.W-0.1 || maxY < env.Y+env.H-0.1 {
		t.Errorf("visible (%v,%v)-(%v,%v) does not cover the envelope", minX, minY, maxX, maxY)
	}
	if cam.AtRest() {
		t.Error("fitted camera should not be at rest")
	}

	cam.Reset()
	if !cam.AtRest() {
		t.Error("Reset should return to rest")
	}
}

func TestFitIgnoresEmptyRect(t *testing.T) {
	cam := New(1024, 720)
	cam.Fit(components.Rect{X: 10, Y: 10})
	if !cam.AtRest() {
		t.Error("empty rect should leave the camera alone")
	}
}

func TestZoomClamping(t *testing.T) {
	cam := New(1280, 720)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to max %f, got %f", cam.MaxZoom, cam.Zoom)
	}

	cam.SetZoom(0.0001)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to min %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(1)
	cam.ZoomBy(2)
	if cam.Zoom != 2 {
		t.Errorf("ZoomBy(2) = %f, want 2", cam.Zoom)
	}
}

func TestPanScalesWithZoom(t *testing.T) {
	cam := New(1000, 1000)
	cam.SetZoom(2)
	cam.Pan(100, 0)
	if cam.X != 550 {
		t.Errorf("X = %v, want 550 (100 screen px at 2x = 50 world units)", cam.X)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1024, 720)

	tests := []struct {
		name string
		r    components.Rect
		want bool
	}{
		{"on screen", components.Rect{X: 100, Y: 100, W: 10, H: 10}, true},
		{"straddles edge", components.Rect{X: -5, Y: 100, W: 10, H: 10}, true},
		{"above screen", components.Rect{X: 100, Y: -50, W: 5, H: 10}, false},
		{"far right", components.Rect{X: 2000, Y: 100, W: 10, H: 10}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := cam.IsVisible(tc.r); got != tc.want {
				t.Errorf("IsVisible = %v, want %v", got, tc.want)
			}
		})
	}

	cam.Fit(components.Rect{X: -1024, Y: -720, W: 3072, H: 2160})
	if !cam.IsVisible(components.Rect{X: 100, Y: -50, W: 5, H: 10}) {
		t.Error("zoomed-out view should show entities above the screen")
	}
}

func TestResizeKeepsRest(t *testing.T) {
	cam := New(1024, 720)
	cam.Resize(1920, 1080)
	if !cam.AtRest() || cam.X != 960 || cam.Y != 540 {
		t.Errorf("resized rest camera at (%v, %v) zoom %v", cam.X, cam.Y, cam.Zoom)
	}

	cam.SetZoom(0.5)
	cam.Resize(800, 600)
	if cam.Zoom != 0.5 {
		t.Error("resize should not reset a zoomed camera")
	}
}

func TestZoomAtKeepsCursorPoint(t *testing.T) {
	tests := []struct {
		name   string
		sx, sy float32
		factor float32
	}{
		{"zoom in at corner", 100, 50, 1.5},
		{"zoom out off center", 700, 400, 0.5},
		{"center", 400, 300, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := New(800, 600)
			wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)

			cam.ZoomAt(tc.sx, tc.sy, tc.factor)

			if !near(cam.Zoom, tc.factor) {
				t.Errorf("Zoom = %v, want %v", cam.Zoom, tc.factor)
			}
			sx, sy := cam.WorldToScreen(wx, wy)
			if !near(sx, tc.sx) || !near(sy, tc.sy) {
				t.Errorf("world point drifted to (%v, %v), want (%v, %v)", sx, sy, tc.sx, tc.sy)
			}
		})
	}
}

func TestZoomAtClamped(t *testing.T) {
	cam := New(800, 600)
	cam.ZoomAt(0, 0, 100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("Zoom = %v, want MaxZoom %v", cam.Zoom, cam.MaxZoom)
	}
	wx, wy := cam.ScreenToWorld(0, 0)
	if !near(wx, 0) || !near(wy, 0) {
		t.Errorf("origin drifted to (%v, %v)", wx, wy)
	}
}
