package agent

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// Controller chooses the held buttons for the next tick of a scene.
type Controller interface {
	Input(s *shippu.Scene) core.InputFrame
}

// Pilot flies with an agent's policy.
type Pilot struct {
	Agent *Agent
}

// Input observes the scene and maps the agent's decision to buttons.
func (p Pilot) Input(s *shippu.Scene) core.InputFrame {
	return core.NewInputFrame(p.Agent.Decide(Observe(s)).Buttons())
}

// RandomController picks a uniformly random action each tick.
type RandomController struct {
	rng *rand.Rand
}

// NewRandomController creates a random controller on its own stream.
func NewRandomController(seed int64) *RandomController {
	return &RandomController{rng: rand.New(rand.NewSource(seed))}
}

// Input returns a random action's buttons.
func (c *RandomController) Input(*shippu.Scene) core.InputFrame {
	return core.NewInputFrame(Action(c.rng.Intn(ActionCount)).Buttons())
}

// IdleController holds nothing.
type IdleController struct{}

// Input returns an empty frame.
func (IdleController) Input(*shippu.Scene) core.InputFrame { return core.InputFrame{} }

// ControllerNames lists the names accepted by NewController.
var ControllerNames = []string{"idle", "random", "agent"}

// NewController builds a controller by name. The agent controller needs a
// trained agent.
func NewController(name string, seed int64, a *Agent) (Controller, error) {
	switch name {
	case "idle":
		return IdleController{}, nil
	case "random":
		return NewRandomController(seed), nil
	case "agent":
		if a == nil {
			return nil, fmt.Errorf("agent: controller %q needs a trained agent", name)
		}
		a.Begin(0)
		return Pilot{Agent: a}, nil
	default:
		return nil, fmt.Errorf("agent: unknown controller %q", name)
	}
}
