package agent

import (
	"math/rand"
)

// epsilonSeeds bounds the per-agent exploration seed.
const epsilonSeeds = 65535

// Experience is one recorded tick.
type Experience struct {
	State  Observation
	Action Action
	Reward float64
}

// Fitness is an agent's result on its last scoring episode.
type Fitness struct {
	Score       float64 `yaml:"score" json:"score"`
	Destruction int     `yaml:"destruction" json:"destruction"`
	Frames      int     `yaml:"frames" json:"frames"`
	Events      int     `yaml:"events" json:"events"`
}

// Agent is a policy plus its exploration state and episode memory.
type Agent struct {
	Policy      Policy
	Epsilon     float64
	EpsilonSeed int64
	Fitness     Fitness

	explore     *rand.Rand
	experiences []Experience
	last        [ActionCount]float64
}

// New creates an agent around p, drawing its exploration seed from meta.
func New(p Policy, meta *rand.Rand) *Agent {
	a := &Agent{Policy: p}
	a.UpdateEpsilonSeed(meta)
	return a
}

// UpdateEpsilonSeed redraws the exploration seed from meta.
func (a *Agent) UpdateEpsilonSeed(meta *rand.Rand) {
	a.EpsilonSeed = int64(meta.Intn(epsilonSeeds))
}

// Begin prepares for an episode: the exploration stream restarts from the
// seed and memory is cleared.
func (a *Agent) Begin(epsilon float64) {
	a.Epsilon = epsilon
	a.explore = rand.New(rand.NewSource(a.EpsilonSeed))
	a.experiences = a.experiences[:0]
}

// Decide picks the greedy action, or a random one with probability epsilon.
func (a *Agent) Decide(obs Observation) Action {
	if a.explore == nil {
		a.Begin(a.Epsilon)
	}
	a.last = a.Policy.Values(obs)
	act := Greedy(a.last)
	if a.explore.Float64() < a.Epsilon {
		act = Action(a.explore.Intn(ActionCount))
	}
	return act
}

// LastValues returns the action values of the latest decision.
func (a *Agent) LastValues() [ActionCount]float64 { return a.last }

// Remember appends one tick to memory.
func (a *Agent) Remember(e Experience) {
	a.experiences = append(a.experiences, e)
}

// Experiences returns the recorded ticks of the current episode.
func (a *Agent) Experiences() []Experience { return a.experiences }

// Forget clears memory.
func (a *Agent) Forget() { a.experiences = a.experiences[:0] }

// Train replays memory in an order shuffled by meta and returns the mean
// loss. Each tick bootstraps from the state recorded on the next one, so
// the last tick only serves as a successor.
func (a *Agent) Train(meta *rand.Rand, rate, discount float64) float64 {
	n := len(a.experiences) - 1
	if n <= 0 {
		a.Forget()
		return 0
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	total := 0.0
	for range n {
		k := meta.Intn(len(pool))
		i := pool[k]
		pool = append(pool[:k], pool[k+1:]...)

		e := a.experiences[i]
		next := a.Policy.Values(a.experiences[i+1].State)
		target := e.Reward + discount*bootstrap(next)
		total += a.Policy.Update(e.State, e.Action, target, rate)
	}
	a.Forget()
	return total / float64(n)
}

// Clone copies the policy, seed and fitness. Memory is not shared.
func (a *Agent) Clone() *Agent {
	return &Agent{
		Policy:      a.Policy.Clone(),
		Epsilon:     a.Epsilon,
		EpsilonSeed: a.EpsilonSeed,
		Fitness:     a.Fitness,
	}
}

// Alternate builds the next generation. If some agent beat the elite in
// slot 0, a clone of the first such best agent takes the slot; every other
// slot keeps its agent with a fresh exploration seed.
func Alternate(agents []*Agent, meta *rand.Rand) []*Agent {
	if len(agents) == 0 {
		return nil
	}
	best := agents[0]
	for _, a := range agents[1:] {
		if a.Fitness.Score > best.Fitness.Score {
			best = a
		}
	}
	next := make([]*Agent, 0, len(agents))
	if best != agents[0] {
		next = append(next, best.Clone())
	} else {
		next = append(next, agents[0])
	}
	for _, a := range agents[1:] {
		a.UpdateEpsilonSeed(meta)
		next = append(next, a)
	}
	return next
}
