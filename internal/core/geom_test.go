package core

import "testing"

func TestCollisionCheckBox(t *testing.T) {
	a := Square(16)
	tests := []struct {
		name   string
		ox, oy Fixed
		want   bool
	}{
		{"same origin", 0, 0, true},
		{"overlapping", Fix(20), Fix(20), true},
		{"edges touching", Fix(32), 0, true},
		{"corner touching", Fix(32), Fix(32), true},
		{"one unit apart", Fix(32) + 1, 0, false},
		{"far away", Fix(100), Fix(100), false},
		{"overlap x only", Fix(10), Fix(40), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.Check(0, 0, a, tc.ox, tc.oy); got != tc.want {
				t.Errorf("Check() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestCollisionCheckContainedBox(t *testing.T) {
	big := Square(64)
	small := Square(2)

	// Neither endpoint of the big box lies in the small one, but the small
	// box's endpoints lie in the big one.
	if !big.Check(0, 0, small, Fix(10), Fix(10)) {
		t.Error("big box should hit a contained small box")
	}
	if !small.Check(Fix(10), Fix(10), big, 0, 0) {
		t.Error("contained small box should hit the big box")
	}
}

func TestCollisionCheckSharedBoundary(t *testing.T) {
	// Boxes sharing exactly x = 16: closed intervals make this a hit.
	left := Box(Fix(-16), Fix(-16), Fix(16), Fix(16))
	right := Box(0, Fix(-16), Fix(32), Fix(16))

	if !left.Check(0, 0, right, Fix(16), 0) {
		t.Error("left.Check(right) should hit on a shared edge")
	}
	if !right.Check(Fix(16), 0, left, 0, 0) {
		t.Error("right.Check(left) should hit on a shared edge")
	}
}

func TestCollisionCheckPoint(t *testing.T) {
	p := Point(Fix(-16), Fix(-16), Fix(16), Fix(16))
	player := Square(8)

	tests := []struct {
		name string
		x, y Fixed
		want bool
	}{
		{"center", 0, 0, true},
		{"inside near edge", Fix(8) - 1, 0, true},
		{"on right edge", Fix(8), 0, false},
		{"on top edge", 0, Fix(-8), false},
		{"outside", Fix(9), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Check(tc.x, tc.y, player, 0, 0); got != tc.want {
				t.Errorf("point Check() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestCollisionSceneOut(t *testing.T) {
	c := Square(16)
	tests := []struct {
		name string
		x, y Fixed
		want bool
	}{
		{"inside", Fix(320), Fix(240), false},
		{"partly left", Fix(-10), Fix(240), false},
		{"fully left", Fix(-17), Fix(240), true},
		{"just touching right", FixedWidth + Fix(16), Fix(240), false},
		{"fully right", FixedWidth + Fix(17), Fix(240), true},
		{"fully above", Fix(320), Fix(-17), true},
		{"fully below", Fix(320), FixedHeight + Fix(17), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.SceneOut(tc.x, tc.y); got != tc.want {
				t.Errorf("SceneOut() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestCollisionClampToSceneIdempotent(t *testing.T) {
	c := Square(8)
	points := [][2]Fixed{
		{Fix(-50), Fix(-50)},
		{Fix(700), Fix(500)},
		{Fix(320), Fix(240)},
		{Fix(4), FixedHeight},
	}

	for _, p := range points {
		x1, y1 := c.ClampToScene(p[0], p[1])
		x2, y2 := c.ClampToScene(x1, y1)
		if x1 != x2 || y1 != y2 {
			t.Errorf("ClampToScene not idempotent for %v: (%d,%d) then (%d,%d)", p, x1, y1, x2, y2)
		}
		if x1 < Fix(8) || x1 > FixedWidth-Fix(8) || y1 < Fix(8) || y1 > FixedHeight-Fix(8) {
			t.Errorf("ClampToScene(%v) = (%d,%d) outside the scene", p, x1, y1)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}
}
