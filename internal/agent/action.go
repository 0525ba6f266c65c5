package agent

import "github.com/vovakirdan/tui-shippu/internal/core"

// Action is a discrete policy output.
type Action int

// ActionCount is the number of actions: idle and the eight directions.
const ActionCount = 9

const (
	ActionNone Action = iota
	ActionUp
	ActionUpRight
	ActionRight
	ActionDownRight
	ActionDown
	ActionDownLeft
	ActionLeft
	ActionUpLeft
)

var actionButtons = [ActionCount]core.Buttons{
	0,
	core.ButtonUp,
	core.ButtonUp | core.ButtonRight,
	core.ButtonRight,
	core.ButtonDown | core.ButtonRight,
	core.ButtonDown,
	core.ButtonDown | core.ButtonLeft,
	core.ButtonLeft,
	core.ButtonUp | core.ButtonLeft,
}

// Buttons maps the action to held buttons. Rapid fire is always held.
func (a Action) Buttons() core.Buttons {
	if a < 0 || a >= ActionCount {
		return core.ButtonA
	}
	return actionButtons[a] | core.ButtonA
}

func (a Action) String() string {
	return a.Buttons().String()
}
