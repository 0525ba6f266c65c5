package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var logo = []string{
	`  ___ _  _ ___ ___ ___ _   _   _  _ _  _ `,
	` / __| || |_ _| _ \ _ \ | | | | \| | \| |`,
	` \__ \ __ || ||  _/  _/ |_| | | .' | .' |`,
	` |___/_||_|___|_| |_|  \___/  |_|\_|_|\_|`,
}

var (
	logoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	pressStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TitleKeyMap defines the title screen bindings.
type TitleKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Start  key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultTitleKeyMap returns the default title bindings.
func DefaultTitleKeyMap() TitleKeyMap {
	return TitleKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Start:  key.NewBinding(key.WithKeys("enter", "z", " ")),
		Scores: key.NewBinding(key.WithKeys("tab")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// stageItem is one selectable stage with its best cleared lap.
type stageItem struct {
	id      string
	title   string
	bestLap int
}

// TitleModel is the title screen: logo, a typed "PRESS BUTTON" prompt and
// the stage list with best laps.
type TitleModel struct {
	stages     []stageItem
	cursor     int
	prompt     *shippu.TypewriterText
	keys       TitleKeyMap
	width      int
	height     int
	tickRate   int
	tag        int
	selected   string
	scoreboard bool
	quitting   bool
}

// NewTitleModel creates the title screen. Best laps are read from store
// when it is not nil.
func NewTitleModel(store *storage.Store, width, height, tickRate, tag int) TitleModel {
	games := registry.List()
	stages := make([]stageItem, 0, len(games))
	for _, g := range games {
		item := stageItem{id: g.ID, title: g.Title, bestLap: shippu.InitialBestLap}
		if store != nil {
			if frames, ok, err := store.BestLap(g.ID); err == nil && ok {
				item.bestLap = frames
			}
		}
		stages = append(stages, item)
	}

	return TitleModel{
		stages:   stages,
		prompt:   shippu.NewTypewriterText(shippu.NewTypewriterString(0, 0, "PRESS BUTTON")),
		keys:     DefaultTitleKeyMap(),
		width:    width,
		height:   height,
		tickRate: tickRate,
		tag:      tag,
	}
}

// Init starts the prompt animation.
func (m TitleModel) Init() tea.Cmd {
	return tickCmd(m.tickRate, m.tag)
}

// Update handles messages for the title screen.
func (m TitleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.stages)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Start):
			if len(m.stages) > 0 {
				m.selected = m.stages[m.cursor].id
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Scores):
			m.scoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if msg.Tag != m.tag || m.done() {
			return m, nil
		}
		m.prompt.Step()
		return m, tickCmd(m.tickRate, m.tag)
	}

	return m, nil
}

func (m TitleModel) done() bool {
	return m.quitting || m.scoreboard || m.selected != ""
}

// Prompt returns the visible part of the prompt and whether the cursor shows.
func (m TitleModel) Prompt() (string, bool) {
	lines := m.prompt.Lines()
	return lines[len(lines)-1].Visible()
}

// View renders the title screen.
func (m TitleModel) View() string {
	if m.done() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range logo {
		b.WriteString(centerText(logoStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	text, cursor := m.Prompt()
	if cursor {
		text += "+"
	}
	b.WriteString(centerText(pressStyle.Render(fmt.Sprintf("%-13s", text)), m.width))
	b.WriteString("\n\n")

	for i, s := range m.stages {
		line := fmt.Sprintf(" %-28s BEST LAP %s ", s.title, shippu.FormatLap(s.bestLap))
		style := lipgloss.NewStyle()
		if i == m.cursor {
			style = selectedStyle
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "↑/↓ select  enter/z start  tab scores  q quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen stage id, or "".
func (m TitleModel) Selected() string { return m.selected }

// WantsScoreboard returns true if user asked for the scoreboard.
func (m TitleModel) WantsScoreboard() bool { return m.scoreboard }

// IsQuitting returns true if user requested to quit.
func (m TitleModel) IsQuitting() bool { return m.quitting }

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
