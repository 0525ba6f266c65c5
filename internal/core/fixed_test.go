package core

import (
	"math"
	"testing"
)

func TestFixScreenIntRoundTrip(t *testing.T) {
	for _, n := range []int{-640, -17, -1, 0, 1, 16, 240, 480, 640, 768} {
		if got := ScreenInt(Fix(n)); got != n {
			t.Errorf("ScreenInt(Fix(%d)) = %d", n, got)
		}
		if Fix(n) != Fixed(n*FixedMul) {
			t.Errorf("Fix(%d) is not a plain multiply by %d", n, FixedMul)
		}
	}
}

func TestFixFTruncates(t *testing.T) {
	tests := []struct {
		in   float64
		want Fixed
	}{
		{0.035, 573},    // 573.44
		{-0.02, -327},   // -327.68
		{0.02, 327},     // 327.68
		{1.5, 24576},    // exact
		{-1.60, -26214}, // -26214.4
	}

	for _, tc := range tests {
		if got := FixF(tc.in); got != tc.want {
			t.Errorf("FixF(%v) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}

func TestScreenIntTruncatesTowardZero(t *testing.T) {
	if got := ScreenInt(Fix(-3) + 1); got != -2 {
		t.Errorf("ScreenInt(-3px+1) = %d, expected -2", got)
	}
	if got := ScreenInt(Fix(3) - 1); got != 2 {
		t.Errorf("ScreenInt(3px-1) = %d, expected 2", got)
	}
}

func TestFixedMulF(t *testing.T) {
	if got := Fixed(-100).MulF(0.95); got != -95 {
		t.Errorf("MulF = %d, expected -95", got)
	}
	if got := Fixed(-101).MulF(0.95); got != -95 {
		t.Errorf("MulF truncation = %d, expected -95", got)
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		tx   Fixed
		ty   Fixed
		want float64
	}{
		{"right", Fix(10), 0, 0},
		{"down", 0, Fix(10), math.Pi / 2},
		{"left", Fix(-10), 0, math.Pi},
		{"up wraps positive", 0, Fix(-10), 3 * math.Pi / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Heading(0, 0, tc.tx, tc.ty); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Heading() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestFixedSign(t *testing.T) {
	if Fixed(-5).Sign() != -1 || Fixed(0).Sign() != 0 || Fixed(7).Sign() != 1 {
		t.Error("Sign() mismatch")
	}
	if Fixed(-5).Abs() != 5 {
		t.Error("Abs() mismatch")
	}
}
