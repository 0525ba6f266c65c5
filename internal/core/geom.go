// Package core provides the fixed-point math, collision shapes, input and screen
// types shared by the simulation and the platform layers.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect is an axis-aligned cell rectangle on the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ShapeKind selects the collision test a shape performs.
type ShapeKind uint8

const (
	// ShapeBox tests box against box by endpoint containment.
	ShapeBox ShapeKind = iota
	// ShapePoint tests the owner's origin strictly inside the other box.
	ShapePoint
)

// Collision is an actor's immutable collision shape, stored as offsets from
// the actor origin.
type Collision struct {
	MinX, MinY Fixed
	MaxX, MaxY Fixed
	Kind       ShapeKind
}

// Box returns a box shape.
func Box(minX, minY, maxX, maxY Fixed) Collision {
	return Collision{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, Kind: ShapeBox}
}

// Point returns a point shape. The bounds still drive scene-out and clamping.
func Point(minX, minY, maxX, maxY Fixed) Collision {
	return Collision{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY, Kind: ShapePoint}
}

// Square returns a box extending half pixels in every direction.
func Square(half int) Collision {
	return Box(Fix(-half), Fix(-half), Fix(half), Fix(half))
}

// Check reports whether this shape at (x, y) hits other at (ox, oy).
//
// Boxes hit when, on both axes, any endpoint of one interval lies inside the
// other's closed interval. Points hit only strictly inside the other box.
func (c Collision) Check(x, y Fixed, other Collision, ox, oy Fixed) bool {
	if c.Kind == ShapePoint {
		return ox+other.MinX < x && x < ox+other.MaxX &&
			oy+other.MinY < y && y < oy+other.MaxY
	}
	return endpointsOverlap(x+c.MinX, x+c.MaxX, ox+other.MinX, ox+other.MaxX) &&
		endpointsOverlap(y+c.MinY, y+c.MaxY, oy+other.MinY, oy+other.MaxY)
}

func endpointsOverlap(aMin, aMax, bMin, bMax Fixed) bool {
	return (aMin <= bMin && bMin <= aMax) ||
		(aMin <= bMax && bMax <= aMax) ||
		(bMin <= aMin && aMin <= bMax) ||
		(bMin <= aMax && aMax <= bMax)
}

// SceneOut reports whether the shape at (x, y) lies entirely outside the scene.
func (c Collision) SceneOut(x, y Fixed) bool {
	return x+c.MaxX < 0 || x+c.MinX > FixedWidth ||
		y+c.MaxY < 0 || y+c.MinY > FixedHeight
}

// ClampToScene moves (x, y) so the shape stays inside the scene.
func (c Collision) ClampToScene(x, y Fixed) (Fixed, Fixed) {
	if x+c.MinX < 0 {
		x = -c.MinX
	}
	if x+c.MaxX > FixedWidth {
		x = FixedWidth - c.MaxX
	}
	if y+c.MinY < 0 {
		y = -c.MinY
	}
	if y+c.MaxY > FixedHeight {
		y = FixedHeight - c.MaxY
	}
	return x, y
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
