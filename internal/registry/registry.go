// Package registry maps stage identifiers to game factories.
// Stages register themselves in init() functions, so the CLI, the terminal
// platform and the trainer can start any of them by name.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Game is a fixed-timestep simulation the platform can drive.
// Implementations are pure logic: no terminal, audio device or clock.
type Game interface {
	// ID returns the stage identifier (e.g. "shippu", "shippu_boss").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for menus.
	Title() string

	// Reset rebuilds the stage from scratch.
	// The seed in cfg selects the random streams; 0 means the canonical ones.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by exactly one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// leveled is implemented by stages that play a named level timeline.
type leveled interface {
	LevelName() string
}

// GameInfo describes a registered stage.
type GameInfo struct {
	ID    string
	Title string
	Level string // empty when the stage has no named level
}

// Factory creates a new stage instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry // registration order
	index   = map[string]int{}
)

// Register adds a stage factory. Stages are listed in the order they
// register. Panics if the ID is already taken.
func Register(id string, f Factory) {
	probe := f()
	info := GameInfo{ID: id, Title: probe.Title()}
	if l, ok := probe.(leveled); ok {
		info.Level = l.LevelName()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := index[id]; dup {
		panic(fmt.Sprintf("registry: stage %q already registered", id))
	}
	index[id] = len(entries)
	entries = append(entries, entry{info: info, factory: f})
}

// List returns every registered stage in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Lookup returns the metadata of a stage without instantiating it.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := index[id]
	if !ok {
		return GameInfo{}, false
	}
	return entries[i].info, true
}

// Create instantiates a stage by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	i, ok := index[id]
	var f Factory
	if ok {
		f = entries[i].factory
	}
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown stage %q", id)
	}
	return f(), nil
}

// Exists reports whether a stage with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
