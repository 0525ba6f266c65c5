package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

// Options configure a play session.
type Options struct {
	Store   *storage.Store // nil: scores and laps are not saved
	Config  core.RuntimeConfig
	Weights shippu.Weights // zero: the stage's default outcome weights
	Audio   core.AudioSink // nil: silent
	Muted   bool
	Stage   string // start straight into this stage instead of the title
	Tag     int
	Logger  *log.Logger

	// Renderer styles the output; nil uses the local terminal.
	Renderer *lipgloss.Renderer
}

func (o Options) withDefaults() Options {
	if o.Audio == nil {
		o.Audio = core.NopAudio{}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Config.TickRate <= 0 {
		o.Config.TickRate = core.DefaultTickRate
	}
	if o.Config.ScreenW <= 0 || o.Config.ScreenH <= 0 {
		def := core.DefaultConfig()
		o.Config.ScreenW, o.Config.ScreenH = def.ScreenW, def.ScreenH
	}
	return o
}

// weighted is implemented by stages with configurable outcome weights.
type weighted interface {
	SetWeights(shippu.Weights)
}

type screen int

const (
	screenTitle screen = iota
	screenPlay
	screenScores
)

// SessionModel manages the full session flow: title -> play -> title,
// with the scoreboard reachable from the title. It is the top-level model
// for both local play and SSH sessions.
type SessionModel struct {
	opts       Options
	screen     screen
	seq        int
	title      TitleModel
	play       Model
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session. When opts.Stage names a registered
// stage the session skips the title.
func NewSessionModel(opts Options) SessionModel {
	m := SessionModel{opts: opts.withDefaults()}
	m.title = m.newTitle()
	if opts.Stage != "" && registry.Exists(opts.Stage) {
		m.startPlay(opts.Stage)
	}
	return m
}

func (m *SessionModel) nextTag() int {
	m.seq++
	return m.seq
}

func (m *SessionModel) newTitle() TitleModel {
	cfg := m.opts.Config
	return NewTitleModel(m.opts.Store, cfg.ScreenW, cfg.ScreenH, cfg.TickRate, m.nextTag())
}

// startPlay switches to a stage. Returns false for an unknown id.
func (m *SessionModel) startPlay(id string) bool {
	game, err := registry.Create(id)
	if err != nil {
		m.opts.Logger.Warn("unknown stage", "stage", id, "error", err)
		return false
	}
	if w, ok := game.(weighted); ok && m.opts.Weights != (shippu.Weights{}) {
		w.SetWeights(m.opts.Weights)
	}
	opts := m.opts
	opts.Tag = m.nextTag()
	m.play = NewModel(game, opts)
	m.screen = screenPlay
	return true
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenPlay {
		return m.play.Init()
	}
	return m.title.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Config.ScreenW = wsm.Width
		m.opts.Config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateTitle(msg)
	}
}

func (m SessionModel) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.title.Update(msg)
	if t, ok := next.(TitleModel); ok {
		m.title = t
	}

	switch {
	case m.title.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.title.WantsScoreboard():
		cfg := m.opts.Config
		m.scoreboard = NewScoreboardModel(m.opts.Store, cfg.ScreenW, cfg.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()
	case m.title.Selected() != "":
		if !m.startPlay(m.title.Selected()) {
			m.title = m.newTitle()
			return m, m.title.Init()
		}
		return m, m.play.Init()
	}
	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if p, ok := next.(Model); ok {
		m.play = p
	}

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		m.opts.Muted = m.play.muted
		return m.toTitle()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if s, ok := next.(ScoreboardModel); ok {
		m.scoreboard = s
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toTitle()
	}
	return m, cmd
}

func (m SessionModel) toTitle() (tea.Model, tea.Cmd) {
	m.title = m.newTitle()
	m.screen = screenTitle
	return m, m.title.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.title.View()
	}
}

// Run starts a local session on the terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
