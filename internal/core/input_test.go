package core

import "testing"

func TestJoystickTrigger(t *testing.T) {
	var j Joystick

	j.Update(NewInputFrame(ButtonA))
	if j.Trigger() != ButtonA {
		t.Errorf("first press trigger = %v, expected A", j.Trigger())
	}

	j.Update(NewInputFrame(ButtonA | ButtonUp))
	if j.Trigger() != ButtonUp {
		t.Errorf("held A should not retrigger, got %v", j.Trigger())
	}
	if j.Pressed() != ButtonA|ButtonUp {
		t.Errorf("pressed = %v", j.Pressed())
	}

	j.Update(NewInputFrame(0))
	if j.Trigger() != 0 || j.Pressed() != 0 {
		t.Errorf("release left pressed=%v trigger=%v", j.Pressed(), j.Trigger())
	}
}

func TestJoystickOppositeDirectionsCancel(t *testing.T) {
	tests := []struct {
		name string
		in   Buttons
		want Buttons
	}{
		{"up and down", ButtonUp | ButtonDown | ButtonA, ButtonA},
		{"left and right", ButtonLeft | ButtonRight | ButtonUp, ButtonUp},
		{"all four", ButtonUp | ButtonDown | ButtonLeft | ButtonRight, 0},
		{"diagonal kept", ButtonUp | ButtonRight, ButtonUp | ButtonRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var j Joystick
			j.Update(NewInputFrame(tc.in))
			if j.Pressed() != tc.want {
				t.Errorf("Pressed() = %v, expected %v", j.Pressed(), tc.want)
			}
		})
	}
}

func TestButtonsString(t *testing.T) {
	if got := (ButtonUp | ButtonA).String(); got != "Up+A" {
		t.Errorf("String() = %q", got)
	}
	if got := Buttons(0).String(); got != "None" {
		t.Errorf("String() = %q", got)
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	f.Set(ButtonLeft)
	f.Set(ButtonB)
	if !f.Has(ButtonLeft) || !f.Has(ButtonB) || f.Has(ButtonA) {
		t.Errorf("frame = %v", f.Pressed)
	}
	f.Clear()
	if f.Pressed != 0 {
		t.Error("Clear() should release everything")
	}
}
