package core

import (
	"strings"
	"testing"
	"time"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("new screen should be blank, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorHostile)
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.Color != ColorHostile {
		t.Errorf("GetCell(5, 5) = %+v, expected red X", got)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawText(0, 1, "XXXX")
	s.Clear()

	if s.String() != "    \n    \n    " {
		t.Errorf("Clear() left %q", s.String())
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
	}{
		{"fits", 1, "AB", " AB  "},
		{"clipped right", 3, "ABCD", "   AB"},
		{"clipped left", -1, "ABC", "BC   "},
		{"multibyte", 0, "→x", "→x   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(5, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.Row(0); got != tc.want {
				t.Errorf("Row(0) = %q, expected %q", got, tc.want)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "HI")
	if got := s.Row(0); got != "    HI    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorSmoke)

	want := "┌──┐\n│  │\n└──┘"
	if s.String() != want {
		t.Errorf("DrawBox() =\n%s\nexpected\n%s", s.String(), want)
	}
	if s.GetCell(0, 0).Color != ColorSmoke {
		t.Error("box corner should carry the box color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 2)
	s.DrawText(0, 0, "HELLO")
	s.Resize(3, 3)

	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize() = %dx%d", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "HEL" {
		t.Errorf("Row(0) after shrink = %q, expected HEL", got)
	}
	if got := s.Row(2); strings.TrimSpace(got) != "" {
		t.Errorf("new row should be blank, got %q", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / DefaultTickRate},
		{-5, time.Second / DefaultTickRate},
	}
	for _, tt := range tests {
		if got := TickInterval(tt.rate); got != tt.want {
			t.Errorf("TickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
