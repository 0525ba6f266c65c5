package agent

import (
	"fmt"
	"math"
	"math/rand"
)

// Policy maps observations to action values and learns from experience.
type Policy interface {
	// Values returns one estimate per action.
	Values(obs Observation) [ActionCount]float64
	// Update moves the estimate of action a in state obs toward target and
	// returns the loss before the update.
	Update(obs Observation, a Action, target float64, rate float64) float64
	// Clone returns an independent copy.
	Clone() Policy
}

// LinearQ is a linear action-value function: one weight row and a bias per
// action.
type LinearQ struct {
	Weights [][]float64 `yaml:"weights"`
	Bias    []float64   `yaml:"bias"`
}

// NewLinearQ creates a policy with weights drawn uniformly from r, scaled
// by the fan-in.
func NewLinearQ(r *rand.Rand) *LinearQ {
	bound := math.Sqrt(6.0 / ObservationSize)
	q := &LinearQ{
		Weights: make([][]float64, ActionCount),
		Bias:    make([]float64, ActionCount),
	}
	for a := range q.Weights {
		row := make([]float64, ObservationSize)
		for i := range row {
			row[i] = (r.Float64()*2 - 1) * bound
		}
		q.Weights[a] = row
	}
	return q
}

// Validate checks the shape of decoded weights.
func (q *LinearQ) Validate() error {
	if len(q.Weights) != ActionCount || len(q.Bias) != ActionCount {
		return fmt.Errorf("agent: policy has %d rows and %d biases, want %d", len(q.Weights), len(q.Bias), ActionCount)
	}
	for a, row := range q.Weights {
		if len(row) != ObservationSize {
			return fmt.Errorf("agent: policy row %d has %d weights, want %d", a, len(row), ObservationSize)
		}
	}
	return nil
}

// Values computes the action values for obs.
func (q *LinearQ) Values(obs Observation) [ActionCount]float64 {
	var out [ActionCount]float64
	for a, row := range q.Weights {
		v := q.Bias[a]
		for i, w := range row {
			v += w * obs[i]
		}
		out[a] = v
	}
	return out
}

// Update takes one gradient step on the smooth L1 loss averaged over all
// outputs. Only the chosen action's output differs from its target, so
// only its row moves.
func (q *LinearQ) Update(obs Observation, a Action, target float64, rate float64) float64 {
	out := q.Values(obs)
	diff := out[a] - target
	loss, grad := smoothL1(diff)
	loss /= ActionCount
	grad /= ActionCount
	row := q.Weights[a]
	for i := range row {
		row[i] -= rate * grad * obs[i]
	}
	q.Bias[a] -= rate * grad
	return loss
}

// Clone deep-copies the weights.
func (q *LinearQ) Clone() Policy {
	c := &LinearQ{
		Weights: make([][]float64, len(q.Weights)),
		Bias:    append([]float64(nil), q.Bias...),
	}
	for a, row := range q.Weights {
		c.Weights[a] = append([]float64(nil), row...)
	}
	return c
}

// smoothL1 returns the Huber loss with unit threshold and its derivative.
func smoothL1(d float64) (loss, grad float64) {
	if math.Abs(d) < 1 {
		return 0.5 * d * d, d
	}
	if d < 0 {
		return -d - 0.5, -1
	}
	return d - 0.5, 1
}

// Greedy returns the first action with the highest value.
func Greedy(values [ActionCount]float64) Action {
	best := 0
	for a := 1; a < ActionCount; a++ {
		if values[a] > values[best] {
			best = a
		}
	}
	return Action(best)
}

// bootstrap picks the next-state value used in the learning target: the
// maximum, unless the minimum has the larger magnitude.
func bootstrap(values [ActionCount]float64) float64 {
	hi, lo := values[0], values[0]
	for _, v := range values[1:] {
		hi = max(hi, v)
		lo = min(lo, v)
	}
	if hi < math.Abs(lo) {
		return lo
	}
	return hi
}
