package core

import "strings"

// Buttons is a bitmask of the shooter's controls, abstracted from physical keys.
// A human key reader, a replay and a policy all produce the same mask.
type Buttons uint8

const (
	ButtonUp Buttons = 1 << iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA // rapid fire
	ButtonB // auto fire at half cadence
)

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{ButtonUp, "Up"},
	{ButtonDown, "Down"},
	{ButtonLeft, "Left"},
	{ButtonRight, "Right"},
	{ButtonA, "A"},
	{ButtonB, "B"},
}

// Has returns true if every bit of b is set.
func (m Buttons) Has(b Buttons) bool {
	return m&b == b
}

// String returns a human-readable list like "Up+A".
func (m Buttons) String() string {
	if m == 0 {
		return "None"
	}
	var parts []string
	for _, bn := range buttonNames {
		if m&bn.b != 0 {
			parts = append(parts, bn.name)
		}
	}
	return strings.Join(parts, "+")
}

// InputFrame represents the buttons held during one simulation tick.
type InputFrame struct {
	Pressed Buttons
}

// NewInputFrame creates an input frame with the given buttons held.
func NewInputFrame(pressed Buttons) InputFrame {
	return InputFrame{Pressed: pressed}
}

// Set marks a button as held for this frame.
func (f *InputFrame) Set(b Buttons) {
	f.Pressed |= b
}

// Has returns true if the given button is held this frame.
func (f InputFrame) Has(b Buttons) bool {
	return f.Pressed.Has(b)
}

// Clear releases all buttons for the next frame.
func (f *InputFrame) Clear() {
	f.Pressed = 0
}

// Joystick turns per-tick input frames into the held mask and the trigger mask
// (buttons newly pressed this tick).
type Joystick struct {
	pressed Buttons
	old     Buttons
	trigger Buttons
}

// Update latches the next frame. Opposite directions held together cancel out.
func (j *Joystick) Update(in InputFrame) {
	j.old = j.pressed
	p := in.Pressed
	if p.Has(ButtonUp | ButtonDown) {
		p &^= ButtonUp | ButtonDown
	}
	if p.Has(ButtonLeft | ButtonRight) {
		p &^= ButtonLeft | ButtonRight
	}
	j.pressed = p
	j.trigger = (j.pressed ^ j.old) & j.pressed
}

// Pressed returns the buttons held this tick.
func (j *Joystick) Pressed() Buttons {
	return j.pressed
}

// Trigger returns the buttons that went down this tick.
func (j *Joystick) Trigger() Buttons {
	return j.trigger
}
