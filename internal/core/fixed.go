package core

import "math"

// FixedMul is the fixed-point scale: one screen pixel is FixedMul units.
const FixedMul = 16384

// Scene dimensions in screen pixels.
const (
	SceneWidth  = 640
	SceneHeight = 480
)

// Fixed represents a fixed-point coordinate or velocity (scaled by FixedMul).
// All simulation positions use it; pixel values are derived, never stored.
type Fixed int

// Scene bounds in fixed-point units.
const (
	FixedWidth  Fixed = SceneWidth * FixedMul
	FixedHeight Fixed = SceneHeight * FixedMul
)

// Fix converts whole pixels to fixed-point.
func Fix(n int) Fixed {
	return Fixed(n * FixedMul)
}

// FixF converts a real value in pixels to fixed-point, truncating toward zero.
func FixF(v float64) Fixed {
	return Fixed(v * FixedMul)
}

// ScreenInt converts fixed-point to whole pixels (truncated toward zero).
func ScreenInt(f Fixed) int {
	return int(f) / FixedMul
}

// Pixels returns the value in pixels as a float.
func (f Fixed) Pixels() float64 {
	return float64(f) / FixedMul
}

// MulF scales by a real factor and truncates toward zero.
func (f Fixed) MulF(k float64) Fixed {
	return Fixed(float64(f) * k)
}

// Abs returns absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Sign returns -1, 0, or 1.
func (f Fixed) Sign() int {
	if f < 0 {
		return -1
	}
	if f > 0 {
		return 1
	}
	return 0
}

// Radian converts degrees to radians.
func Radian(deg float64) float64 {
	return deg * math.Pi / 180
}

// Heading returns the angle from (x, y) toward (tx, ty) in [0, 2π).
func Heading(x, y, tx, ty Fixed) float64 {
	a := math.Atan2(float64(ty-y), float64(tx-x))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Polar returns the fixed-point vector of the given length in pixels along angle.
func Polar(angle, length float64) (Fixed, Fixed) {
	return FixF(math.Cos(angle) * length), FixF(math.Sin(angle) * length)
}
