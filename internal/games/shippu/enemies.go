package shippu

import (
	"math"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// smallDamage is the damage rule of the one-hit enemies.
func smallDamage(self Enemy, s *Scene, fx *Effects, n int) {
	if e := self.base(); e.damage(s, n) {
		e.explode(self, s, fx)
	}
}

// Straight crosses the screen right to left, drifting away from the middle,
// and fires two aimed shots.
type Straight struct {
	enemyBase
	cnt int
}

// NewStraight creates a Straight enemy.
func NewStraight(x, y core.Fixed) *Straight {
	e := &Straight{enemyBase: newEnemyBase(KindStraight, x, y)}
	e.vx = core.Fix(-7)
	e.vy = core.Fix(1) * verticalSign(y)
	return e
}

func (e *Straight) step(s *Scene, fx *Effects) {
	e.vx += core.FixF(0.035)
	e.move()
	e.cnt++
	if e.cnt == 50 || e.cnt == 100 {
		e.aimed(s, fx, 5)
	}
	e.settle(e, fx)
}

func (e *Straight) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// StraightBullet accelerates left while spraying forward bullets.
type StraightBullet struct {
	enemyBase
	cnt int
}

// NewStraightBullet creates a StraightBullet enemy.
func NewStraightBullet(x, y core.Fixed) *StraightBullet {
	e := &StraightBullet{enemyBase: newEnemyBase(KindStraightBullet, x, y)}
	e.vx = core.Fix(-5)
	e.vy = core.FixF(0.1) * verticalSign(y)
	return e
}

func (e *StraightBullet) step(s *Scene, fx *Effects) {
	e.vx -= core.FixF(0.05)
	e.move()
	e.cnt++
	if e.cnt&7 == 0 {
		r := s.rng.enemy
		vx := core.FixF(float64(r.Intn(5)) + 0.2)
		vy := core.Fix(r.Intn(4)*2 - 3)
		fx.bullet(NewBullet(e.x, e.y, vx, vy))
	}
	e.settle(e, fx)
}

func (e *StraightBullet) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// Stay brakes to a crawl for three seconds, firing leftward, then leaves.
type Stay struct {
	enemyBase
	cnt int
}

// NewStay creates a Stay enemy with the given vertical drift.
func NewStay(x, y, vy core.Fixed) *Stay {
	e := &Stay{enemyBase: newEnemyBase(KindStay, x, y)}
	e.vx = core.Fix(-5)
	e.vy = vy
	return e
}

func (e *Stay) step(s *Scene, fx *Effects) {
	if e.cnt < 180 {
		if e.vx < core.Fix(-1) {
			e.vx += core.FixF(0.1)
		}
	} else {
		e.vx -= core.FixF(0.1)
	}
	e.move()
	e.cnt++
	if e.cnt > 60 && e.cnt&31 == 0 {
		fx.bullet(NewBullet(e.x, e.y, core.Fix(-5), core.Fix(s.rng.enemy.Intn(7)-3)))
	}
	e.settle(e, fx)
}

func (e *Stay) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// Roll flies straight, loops around and exits vertically.
type Roll struct {
	enemyBase
	dir core.Fixed
	cnt int
}

// NewRoll creates a Roll enemy. It loops away from the nearer edge.
func NewRoll(x, y core.Fixed) *Roll {
	e := &Roll{enemyBase: newEnemyBase(KindRoll, x, y)}
	e.vx = core.Fix(-5)
	e.dir = -verticalSign(y)
	return e
}

// rollAngle is the heading after the given number of ticks.
func rollAngle(tick int) float64 {
	switch {
	case tick < 60:
		return 0
	case tick < 60+225:
		return core.Radian(float64(tick-60) * 1.2)
	default:
		return core.Radian(270)
	}
}

func (e *Roll) step(s *Scene, fx *Effects) {
	a := rollAngle(e.cnt)
	e.vx = core.FixF(math.Cos(a) * -5)
	e.vy = core.FixF(math.Sin(a) * -5 * float64(e.dir))
	e.move()
	e.cnt++
	if e.cnt&63 == 0 {
		e.aimed(s, fx, 5)
	}
	e.settle(e, fx)
}

func (e *Roll) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// Backward enters from the left, brakes, then peels off vertically firing
// three-way shots.
type Backward struct {
	enemyBase
	cnt int
}

// NewBackward creates a Backward enemy.
func NewBackward(x, y core.Fixed) *Backward {
	e := &Backward{enemyBase: newEnemyBase(KindBackward, x, y)}
	e.vx = core.Fix(7)
	e.vy = core.Fix(1) * verticalSign(y)
	return e
}

func (e *Backward) step(s *Scene, fx *Effects) {
	if e.vx > core.Fix(1) {
		e.vx -= core.FixF(0.045)
	} else {
		e.vy += core.FixF(float64(e.vy.Sign()) * 0.05)
	}
	e.move()
	e.cnt++
	if e.cnt >= 120 && e.cnt&31 == 0 {
		fx.bullet(BulletsThreeWay(e.x, e.y, e.search(s.player), core.Radian(12), 5)...)
	}
	e.settle(e, fx)
}

func (e *Backward) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// VerticalMissile stage.
const (
	vmApproach = iota
	vmAlign
	vmLaunch
	vmLeave
)

// VerticalMissile flies in until level with the player, lines up, drops a
// homing missile toward the player's side and leaves.
type VerticalMissile struct {
	enemyBase
	stage int
	cnt   int
}

// NewVerticalMissile creates a VerticalMissile enemy.
func NewVerticalMissile(x, y core.Fixed) *VerticalMissile {
	e := &VerticalMissile{enemyBase: newEnemyBase(KindVerticalMissile, x, y)}
	e.vx = core.Fix(-5)
	e.vy = core.FixF(0.2) * verticalSign(y)
	return e
}

func (e *VerticalMissile) step(s *Scene, fx *Effects) {
	switch e.stage {
	case vmApproach:
		e.move()
		if e.x < s.player.x+core.Fix(32) {
			e.stage = vmAlign
		}
	case vmAlign:
		e.vx = core.Fixed(float64(s.player.x-e.x) * 0.1)
		e.move()
		e.cnt++
		if e.cnt == 16 {
			e.stage = vmLaunch
		}
	case vmLaunch:
		e.move()
		angle := core.Radian(270)
		if e.y < s.player.y {
			angle = core.Radian(90)
		}
		fx.cue(core.CueMissile)
		fx.enemy(NewMissile(e.x, e.y, angle))
		e.stage = vmLeave
	default:
		e.vx -= core.FixF(0.1)
		e.move()
	}
	e.settle(e, fx)
}

func (e *VerticalMissile) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// StraightMissile brakes, reverses and launches one missile backwards as it
// starts retreating.
type StraightMissile struct {
	enemyBase
	shot bool
}

// NewStraightMissile creates a StraightMissile enemy.
func NewStraightMissile(x, y core.Fixed) *StraightMissile {
	e := &StraightMissile{enemyBase: newEnemyBase(KindStraightMissile, x, y)}
	e.vx = core.Fix(-7)
	return e
}

func (e *StraightMissile) step(s *Scene, fx *Effects) {
	e.vx += core.FixF(0.1)
	e.move()
	if e.vx > 0 && !e.shot {
		e.shot = true
		fx.cue(core.CueMissile)
		fx.enemy(NewMissile(e.x, e.y, core.Radian(180)))
	}
	e.settle(e, fx)
}

func (e *StraightMissile) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }

// homingTicks is how long a missile keeps turning toward the player.
const homingTicks = 90

// Missile is a homing missile. It is an enemy: beams can shoot it down.
type Missile struct {
	enemyBase
	angle float64
	cnt   int
	smoke int
	frame int
}

// NewMissile creates a missile heading along angle.
func NewMissile(x, y core.Fixed, angle float64) *Missile {
	e := &Missile{enemyBase: newEnemyBase(KindMissile, x, y), angle: angle}
	e.shape = core.Square(2)
	return e
}

// Angle returns the current heading in [-π, π].
func (e *Missile) Angle() float64 { return e.angle }

// Sprite returns the missile glyph and one of 16 heading frames.
func (e *Missile) Sprite() (Sprite, int) { return SpriteMissile, e.frame }

func (e *Missile) step(s *Scene, fx *Effects) {
	e.cnt++
	if e.cnt < homingTicks {
		diff := e.search(s.player) - e.angle
		if diff > math.Pi {
			diff -= 2 * math.Pi
		}
		if diff < -math.Pi {
			diff += 2 * math.Pi
		}
		e.angle += diff * 0.1
		if e.angle > math.Pi {
			e.angle -= 2 * math.Pi
		}
		if e.angle < -math.Pi {
			e.angle += 2 * math.Pi
		}
	}
	cos, sin := math.Cos(e.angle), math.Sin(e.angle)
	e.vx = core.Fixed(float64(e.vx+core.FixF(cos*0.6)) * 0.97)
	e.vy = core.Fixed(float64(e.vy+core.FixF(sin*0.6)) * 0.97)
	e.move()

	frame := int((e.angle + 2*math.Pi/32) * 16 / (2 * math.Pi))
	e.frame = ((frame % 16) + 16) % 16

	e.smoke = (e.smoke + 1) & 1
	if e.smoke == 0 {
		r := s.rng.effect
		jx := core.Fix(r.Intn(256)-128) / 256
		jy := core.Fix(r.Intn(256)-128) / 256
		fx.explosion(NewSmoke(
			e.x+core.FixF(cos*-10), e.y+core.FixF(sin*-10),
			core.FixF(cos*-5)+jx, core.FixF(sin*-5)+jy))
	}
	e.settle(e, fx)
}

func (e *Missile) addDamage(s *Scene, fx *Effects, n int) { smallDamage(e, s, fx, n) }
