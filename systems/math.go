package systems

import "gonum.org/v1/gonum/spatial/r2"

// Clamp limits v to [minVal, maxVal].
func Clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampInside moves r so it lies within bounds, keeping its size.
// If r is larger than bounds on an axis it is aligned to the bounds origin.
func ClampInside(x, y, w, h float64, bounds r2.Box) (float64, float64) {
	x = Clamp(x, bounds.Min.X, bounds.Max.X-w)
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	y = Clamp(y, bounds.Min.Y, bounds.Max.Y-h)
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}
	return x, y
}

// Direction returns the unit vector from (fromX, fromY) to (toX, toY),
// or the zero vector when the points coincide.
func Direction(fromX, fromY, toX, toY float64) r2.Vec {
	d := r2.Vec{X: toX - fromX, Y: toY - fromY}
	n := r2.Norm(d)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, d)
}
