// Package tui provides the Bubble Tea front end for SHIPPU NN: the title
// screen, the play loop, the scoreboard and SSH serving via Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// TickMsg is sent to trigger a simulation tick. Tag identifies the screen
// that scheduled it, so a stale chain from a closed screen dies out.
type TickMsg struct {
	Time time.Time
	Tag  int
}

// tickCmd schedules the next tick for the screen tagged tag.
func tickCmd(tickRate, tag int) tea.Cmd {
	return tea.Tick(core.TickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Tag: tag}
	})
}
