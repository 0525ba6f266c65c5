package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

// boardRows is how many entries each board loads.
const boardRows = 50

// board selects what the scoreboard lists.
type board int

const (
	boardScores board = iota
	boardLaps
)

func (b board) String() string {
	if b == boardLaps {
		return "FASTEST LAPS"
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextStage key.Binding
	PrevStage key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextStage, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextStage, k.PrevStage, k.Toggle},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		NextStage: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/tab", "stage")),
		PrevStage: key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev stage")),
		Toggle:    key.NewBinding(key.WithKeys("v", "enter"), key.WithHelp("v", "scores/laps")),
		Back:      key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardLapStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	boardHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel lists the stored scores or cleared laps of each stage.
type ScoreboardModel struct {
	stages    []registry.GameInfo
	stage     int
	board     board
	store     *storage.Store
	scores    []storage.ScoreEntry
	laps      []storage.LapEntry
	bestLap   int // 0 when the stage was never cleared
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard showing the first stage's scores.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		stages: registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) stageID() string {
	if len(m.stages) == 0 {
		return ""
	}
	return m.stages[m.stage].ID
}

func (m *ScoreboardModel) columns() []table.Column {
	date := max(min(m.width-34, 20), 12)
	if m.board == boardLaps {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Lap", Width: 12},
			{Title: "Frames", Width: 8},
			{Title: "Date", Width: date},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: date},
	}
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the current stage's board from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.laps, m.bestLap = nil, nil, 0
	id := m.stageID()
	if m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, boardRows); err == nil {
			m.scores = scores
		}
		if laps, err := m.store.TopLaps(id, boardRows); err == nil {
			m.laps = laps
		}
		if frames, ok, err := m.store.BestLap(id); err == nil && ok {
			m.bestLap = frames
		}
	}

	var rows []table.Row
	switch m.board {
	case boardLaps:
		for i, l := range m.laps {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				shippu.FormatLap(l.Frames),
				fmt.Sprint(l.Frames),
				l.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	default:
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprint(s.Score),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	// Rows must match the column count, so swap columns first.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextStage):
			m.shiftStage(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevStage):
			m.shiftStage(-1)
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			m.board = 1 - m.board
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) shiftStage(d int) {
	if n := len(m.stages); n > 0 {
		m.stage = (m.stage + d + n) % n
		m.load()
	}
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	title := m.board.String()
	if len(m.stages) > 0 {
		title += " - " + m.stages[m.stage].Title
	}
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n")

	lap := "BEST LAP " + shippu.FormatLap(shippu.InitialBestLap)
	if m.bestLap > 0 {
		lap = "BEST LAP " + shippu.FormatLap(m.bestLap)
	}
	b.WriteString(centerText(boardLapStyle.Render(lap), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.stages))
	for i, s := range m.stages {
		if i == m.stage {
			tabs[i] = boardActiveTab.Render(s.Title)
		} else {
			tabs[i] = boardTabStyle.Render(s.Title)
		}
	}
	tabLine := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(tabLine) > m.width && len(m.stages) > 0 {
		tabLine = boardActiveTab.Render("< " + m.stages[m.stage].Title + " >")
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.board == boardScores && len(m.scores) == 0:
		body = boardEmptyStyle.Render("No scores recorded yet.")
	case m.board == boardLaps && len(m.laps) == 0:
		body = boardEmptyStyle.Render("Never cleared.\nReach the ending to set a lap.")
	default:
		body = m.table.View()
	}
	for _, line := range strings.Split(boardFrameStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString(boardHelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the title.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }
