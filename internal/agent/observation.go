// Package agent drives a playthrough from a learned policy and evolves a
// population of such policies over generations.
package agent

import (
	"math"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// Observation layout.
const (
	ObservationSize = 28

	obsThreat    = 0  // 8 angular buckets of nearby bullets and enemies
	obsEnemyUp   = 8  // 4 cones above the player's heading
	obsEnemyDown = 12 // 4 cones below
	obsBlastUp   = 16 // bullet explosions, above
	obsBlastDown = 20 // bullet explosions, below
	obsLeft      = 24
	obsRight     = 25
	obsTop       = 26
	obsBottom    = 27

	senseRange = 100.0 // pixels
)

// Observation is what the policy sees each tick. Every value is in [0, 1].
type Observation [ObservationSize]float64

// Observe encodes the scene around the player.
func Observe(s *shippu.Scene) Observation {
	var o Observation
	px, py := s.Player().Pos()

	for b := range s.Bullets() {
		x, y := b.Pos()
		d, angle := relative(px, py, x, y)
		o.threat(d, angle)
	}
	for e := range s.Enemies() {
		x, y := e.Pos()
		d, angle := relative(px, py, x, y)
		o.threat(d, angle)
		o.cone(obsEnemyUp, d, angle)
	}
	for x := range s.Explosions() {
		if x.Kind() != shippu.KindBulletExplosion {
			continue
		}
		ex, ey := x.Pos()
		d, angle := relative(px, py, ex, ey)
		o.cone(obsBlastUp, d, angle)
	}

	x, y := px.Pixels(), py.Pixels()
	if x < senseRange {
		o[obsLeft] = (senseRange - x) / senseRange
	}
	if edge := core.SceneWidth/2 - senseRange; x > edge {
		o[obsRight] = min((x-edge)/senseRange, 1)
	}
	if y < senseRange {
		o[obsTop] = (senseRange - y) / senseRange
	}
	if edge := core.SceneHeight - senseRange; y > edge {
		o[obsBottom] = (y - edge) / senseRange
	}
	return o
}

// relative returns the distance in pixels and the heading in degrees,
// rotated by half a bucket so bucket 0 is centred on the +x axis.
func relative(px, py, x, y core.Fixed) (dist, angle float64) {
	dx := (x - px).Pixels()
	dy := (y - py).Pixels()
	return math.Hypot(dx, dy), math.Atan2(dy, dx)/(2*math.Pi)*360 + 22.5
}

func (o *Observation) raise(i int, v float64) {
	if o[i] < v {
		o[i] = v
	}
}

func (o *Observation) threat(d, angle float64) {
	i := int(angle/45) % 8
	if i < 0 {
		i += 8
	}
	v := 0.0
	if d < senseRange {
		v = (senseRange - d) / senseRange
	}
	o.raise(obsThreat+i, v)
}

// cone records distance (saturating at the sense range) in one of four 15
// degree cones on either side of the heading. base is the "up" group; the
// "down" group follows it.
func (o *Observation) cone(base int, d, angle float64) {
	v := min(d/senseRange, 1)
	if angle < 0 {
		if i := int(angle / -15); i < 4 {
			o.raise(base+i, v)
		}
		return
	}
	if i := int(angle / 15); i < 4 {
		o.raise(base+4+i, v)
	}
}
