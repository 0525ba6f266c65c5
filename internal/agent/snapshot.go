package agent

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// Snapshot is a population at the start of a generation.
type Snapshot struct {
	Generation int             `yaml:"generation"`
	Weights    shippu.Weights  `yaml:"weights"`
	Agents     []AgentSnapshot `yaml:"agents"`
}

// AgentSnapshot is one member of a population.
type AgentSnapshot struct {
	EpsilonSeed int64    `yaml:"epsilon_seed"`
	Fitness     Fitness  `yaml:"fitness"`
	Policy      *LinearQ `yaml:"policy"`
}

// Encode marshals the snapshot as YAML.
func (s Snapshot) Encode() ([]byte, error) {
	return yaml.Marshal(s)
}

// DecodeSnapshot unmarshals and validates a YAML snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("agent: decode snapshot: %w", err)
	}
	if len(s.Agents) == 0 {
		return s, fmt.Errorf("agent: snapshot has no agents")
	}
	for i, a := range s.Agents {
		if a.Policy == nil {
			return s, fmt.Errorf("agent: snapshot agent %d has no policy", i)
		}
		if err := a.Policy.Validate(); err != nil {
			return s, fmt.Errorf("agent: snapshot agent %d: %w", i, err)
		}
	}
	return s, nil
}

// Restore rebuilds the agents of a snapshot.
func (s Snapshot) Restore() []*Agent {
	agents := make([]*Agent, len(s.Agents))
	for i, as := range s.Agents {
		agents[i] = &Agent{
			Policy:      as.Policy.Clone(),
			EpsilonSeed: as.EpsilonSeed,
			Fitness:     as.Fitness,
		}
	}
	return agents
}

// Best returns the agent with the highest fitness.
func (s Snapshot) Best() (*Agent, int) {
	agents := s.Restore()
	best := 0
	for i, a := range agents {
		if a.Fitness.Score > agents[best].Fitness.Score {
			best = i
		}
	}
	return agents[best], best
}

func snapshotOf(generation int, w shippu.Weights, agents []*Agent) (Snapshot, error) {
	s := Snapshot{Generation: generation, Weights: w, Agents: make([]AgentSnapshot, len(agents))}
	for i, a := range agents {
		q, ok := a.Policy.(*LinearQ)
		if !ok {
			return s, fmt.Errorf("agent: cannot snapshot policy %T", a.Policy)
		}
		s.Agents[i] = AgentSnapshot{
			EpsilonSeed: a.EpsilonSeed,
			Fitness:     a.Fitness,
			Policy:      q.Clone().(*LinearQ),
		}
	}
	return s, nil
}
