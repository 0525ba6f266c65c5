package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Palette holds one style per screen color slot, bound to a renderer so SSH
// sessions get their own client's color profile.
type Palette [core.ColorCount]lipgloss.Style

// NewPalette builds the styles for r. A nil renderer uses the process's
// default output.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	var p Palette
	for c := range core.ColorCount {
		st := r.NewStyle()
		if code := c.ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		if c.Bold() {
			st = st.Bold(true)
		}
		p[c] = st
	}
	return p
}

// Render converts a screen buffer to a styled string. Runs of cells that
// share a slot are styled together to keep escape sequences short.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			slot := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != slot {
					break
				}
				run.WriteRune(cell.Rune)
			}
			if slot >= core.ColorCount || slot == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p[slot].Render(run.String()))
		}
	}
	return sb.String()
}
