// Package shippu is the SHIPPU NN side-scrolling shooter: a deterministic
// fixed-point simulation of the player ship, scripted enemies, a composite
// boss and a level timeline, advanced one tick per Step.
package shippu

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/registry"
)

// Registered stage identifiers.
const (
	IDMission = "shippu"
	IDBoss    = "shippu_boss"
)

// Game binds a level to the platform's game interface.
type Game struct {
	id      string
	title   string
	level   string
	weights Weights
	scene   *Scene
	paused  bool
}

// New creates the full mission.
func New() *Game {
	return &Game{id: IDMission, title: "SHIPPU NN", level: "stage1", weights: DefaultWeights()}
}

// NewBossPractice creates the boss-only stage.
func NewBossPractice() *Game {
	return &Game{id: IDBoss, title: "SHIPPU NN: Boss Practice", level: "boss", weights: DefaultWeights()}
}

func init() {
	registry.Register(IDMission, func() registry.Game { return New() })
	registry.Register(IDBoss, func() registry.Game { return NewBossPractice() })
}

// ID returns the stage identifier.
func (g *Game) ID() string { return g.id }

// Title returns the menu title.
func (g *Game) Title() string { return g.title }

// LevelName returns the built-in level the stage plays.
func (g *Game) LevelName() string { return g.level }

// SetWeights sets the outcome weights used from the next Reset.
func (g *Game) SetWeights(w Weights) { g.weights = w }

// Reset starts a new playthrough.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	enemy, effect := SeedsFor(cfg.Seed)
	g.scene = NewScene(Options{
		EnemySeed:  enemy,
		EffectSeed: effect,
		Stock:      cfg.Stock,
		Weights:    g.weights,
		Level:      MustLevel(g.level),
	})
	g.paused = false
}

// Scene returns the running playthrough.
func (g *Game) Scene() *Scene {
	if g.scene == nil {
		g.Reset(core.DefaultConfig())
	}
	return g.scene
}

// Step advances one tick unless paused or over.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.Scene()
	if g.paused || s.Over() {
		return core.StepResult{State: g.State()}
	}
	res := s.Step(in)
	res.State.Paused = g.paused
	return res
}

// TogglePause flips the pause flag.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := g.Scene().State()
	st.Paused = g.paused
	return st
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	Draw(g.Scene(), NewScreenCanvas(dst))
	if g.paused {
		dst.DrawTextCentered(dst.Height()/2, "PAUSED")
	}
}
