package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

// pauser is implemented by games that can be paused from the keyboard.
type pauser interface {
	TogglePause()
}

// Model is the Bubble Tea model for one stage.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      core.AudioSink
	logger     *log.Logger
	config     core.RuntimeConfig
	tag        int
	keys       KeyMap
	help       help.Model
	palette    *Palette
	footer     lipgloss.Style
	held       HeldKeys
	gameState  core.GameState
	muted      bool
	quitting   bool
	backToMenu bool
	saved      bool // Whether the result has been saved for current game over
}

// NewModel creates a play model for the given game. The seed in cfg is
// passed through untouched: 0 plays the canonical stage.
func NewModel(game registry.Game, opts Options) Model {
	opts = opts.withDefaults()
	cfg := opts.Config

	h := help.New()
	h.Width = cfg.ScreenW
	palette := NewPalette(opts.Renderer)

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:   opts.Store,
		audio:   opts.Audio,
		logger:  opts.Logger,
		config:  cfg,
		tag:     opts.Tag,
		keys:    DefaultKeyMap(),
		help:    h,
		palette: &palette,
		footer:  palette[core.ColorSmoke],
		muted:   opts.Muted,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tag)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Tag != m.tag {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.muted = !m.muted
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		if p, ok := m.game.(pauser); ok && !m.gameState.GameOver {
			p.TogglePause()
			m.held.Reset()
		}
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.gameState.GameOver {
			m.restart()
		}
		return m, nil
	case key.Matches(msg, m.keys.AutoFire):
		m.held.ToggleAutoFire()
		return m, nil
	}

	if b := m.keys.ButtonFor(msg); b != 0 {
		m.held.Press(b)
	}
	return m, nil
}

func (m *Model) restart() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.saved = false
	m.held.Reset()
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	result := m.game.Step(m.held.Frame())
	m.gameState = result.State

	if !m.muted {
		for _, c := range result.Cues {
			m.audio.Play(c)
		}
	}

	if m.gameState.GameOver && !m.saved {
		m.saveResult()
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate, m.tag)
}

// saveResult records the score and lap of a finished playthrough.
// Best-effort: the game continues regardless.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	id := m.game.ID()
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(id, m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "game", id, "error", err)
		}
	}
	// Every finished run is stored; only cleared ones can become the best lap.
	if _, err := m.store.SaveLap(id, m.gameState.LapTime, m.gameState.Cleared); err != nil {
		m.logger.Warn("could not save lap", "game", id, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".shippu", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.held.AutoFire() {
		footer = "AUTO  " + footer
	}
	if m.muted {
		footer = "MUTED  " + footer
	}
	return m.palette.Render(m.screen) + "\n" + m.footer.Render(footer)
}

// State returns the last stepped game state.
func (m Model) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to the title.
func (m Model) BackToMenu() bool { return m.backToMenu }
