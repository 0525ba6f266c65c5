package shippu

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Canonical stream seeds of the stage.
const (
	DefaultEnemySeed  int64 = 123
	DefaultEffectSeed int64 = 456
)

// streams holds the two random streams a playthrough owns. Enemy behavior
// draws only from enemy, visual effects only from effect.
type streams struct {
	enemy  *rand.Rand
	effect *rand.Rand
}

// SeedsFor derives the two stream seeds from a single run seed. Zero
// selects the canonical seeds.
func SeedsFor(seed int64) (enemy, effect int64) {
	if seed == 0 {
		return DefaultEnemySeed, DefaultEffectSeed
	}
	return seed, seed + 1
}

func newStreams(enemySeed, effectSeed int64) streams {
	return streams{
		enemy:  rand.New(rand.NewSource(enemySeed)),
		effect: rand.New(rand.NewSource(effectSeed)),
	}
}

// randomVector returns a vector of the given length in a random direction.
// The direction components are drawn as magnitude 1..128 with a factor of
// -1 or 2, then the vector is rescaled. A zero length still consumes draws.
func randomVector(r *rand.Rand, length core.Fixed) (core.Fixed, core.Fixed) {
	x := (r.Intn(128) + 1) * (r.Intn(2)*3 - 1)
	y := (r.Intn(128) + 1) * (r.Intn(2)*3 - 1)
	cur := math.Sqrt(float64(x*x + y*y))
	return core.Fixed(float64(x) * float64(length) / cur),
		core.Fixed(float64(y) * float64(length) / cur)
}
