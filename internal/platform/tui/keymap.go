package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// KeyMap defines the play screen's key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Fire       key.Binding
	AutoFire   key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fire, k.AutoFire, k.Pause, k.Mute, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Fire, k.AutoFire},
		{k.Pause, k.Restart, k.Mute, k.Screenshot},
		{k.Back, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings. Z and X mirror the classic
// shooter layout.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Fire: key.NewBinding(
			key.WithKeys("z", " "),
			key.WithHelp("z/space", "fire"),
		),
		AutoFire: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "auto fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "title"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Terminals report key presses and auto-repeat but never releases, so a
// press holds its button for a while. The first press has to bridge the
// terminal's repeat delay; repeats only the gap between them.
const (
	holdFirst  = 30
	holdRepeat = 6
)

// HeldKeys turns discrete key presses into a held-buttons mask.
type HeldKeys struct {
	hold     [6]int // remaining ticks per button bit
	autoFire bool
}

// buttonIndex returns the bit position of a single button.
func buttonIndex(b core.Buttons) int {
	for i := range 6 {
		if b == 1<<i {
			return i
		}
	}
	return -1
}

// Press holds b. Pressing a direction releases its opposite at once.
func (h *HeldKeys) Press(b core.Buttons) {
	switch b {
	case core.ButtonUp:
		h.release(core.ButtonDown)
	case core.ButtonDown:
		h.release(core.ButtonUp)
	case core.ButtonLeft:
		h.release(core.ButtonRight)
	case core.ButtonRight:
		h.release(core.ButtonLeft)
	}
	i := buttonIndex(b)
	if i < 0 {
		return
	}
	if h.hold[i] > 0 {
		h.hold[i] = max(h.hold[i], holdRepeat)
	} else {
		h.hold[i] = holdFirst
	}
}

func (h *HeldKeys) release(b core.Buttons) {
	if i := buttonIndex(b); i >= 0 {
		h.hold[i] = 0
	}
}

// ToggleAutoFire latches B on or off.
func (h *HeldKeys) ToggleAutoFire() {
	h.autoFire = !h.autoFire
}

// AutoFire reports whether B is latched.
func (h *HeldKeys) AutoFire() bool { return h.autoFire }

// Frame returns the buttons held this tick and counts the holds down.
func (h *HeldKeys) Frame() core.InputFrame {
	var f core.InputFrame
	for i := range h.hold {
		if h.hold[i] > 0 {
			f.Set(1 << i)
			h.hold[i]--
		}
	}
	if h.autoFire {
		f.Set(core.ButtonB)
	}
	return f
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	*h = HeldKeys{}
}

// ButtonFor maps a key to the button it presses, or 0.
func (k KeyMap) ButtonFor(msg tea.KeyMsg) core.Buttons {
	switch {
	case key.Matches(msg, k.Up):
		return core.ButtonUp
	case key.Matches(msg, k.Down):
		return core.ButtonDown
	case key.Matches(msg, k.Left):
		return core.ButtonLeft
	case key.Matches(msg, k.Right):
		return core.ButtonRight
	case key.Matches(msg, k.Fire):
		return core.ButtonA
	}
	return 0
}
