package shippu

import (
	"fmt"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Mid-size enemy constants.
const (
	middleShield    = 32
	middleCruise    = 480
	middleBonus     = 1000
	middleDeathTime = 120
	gunWarmup       = 120
	gunFirstGap     = 26
)

// middleGun fires aimed, jittered shots at a steadily shrinking interval.
type middleGun struct {
	warm     int
	interval int
	wait     int
}

func (g *middleGun) step(e *enemyBase, s *Scene, fx *Effects) {
	if g.warm < gunWarmup {
		g.warm++
		return
	}
	if g.interval == 0 {
		g.interval = gunFirstGap
		g.wait = gunFirstGap
	}
	if g.wait > 0 {
		g.wait--
		return
	}
	jitter := core.Radian(float64(s.rng.enemy.Intn(32) - 16))
	fx.bullet(BulletFromAngle(e.x, e.y, e.search(s.player)+jitter, 5))
	g.interval = max(g.interval-1, 1)
	g.wait = g.interval - 1
}

// Middle is the armored mid-size enemy. Its death is a two-second fireworks
// sequence.
type Middle struct {
	enemyBase
	missiles bool
	cnt      int
	gun      middleGun
	dying    int
}

func newMiddle(kind EnemyKind, x, y core.Fixed) *Middle {
	e := &Middle{enemyBase: newEnemyBase(kind, x, y), missiles: kind == KindMiddleMissile}
	e.vx = core.Fix(-5)
	e.shield = middleShield
	e.shape = core.Square(64)
	return e
}

// NewMiddle creates a gun-armed mid-size enemy.
func NewMiddle(x, y core.Fixed) *Middle {
	return newMiddle(KindMiddle, x, y)
}

// NewMiddleMissile creates the missile-launching variant.
func NewMiddleMissile(x, y core.Fixed) *Middle {
	return newMiddle(KindMiddleMissile, x, y)
}

// Sprite returns the mid-size glyph.
func (e *Middle) Sprite() (Sprite, int) { return SpriteMiddle, 0 }

func (e *Middle) step(s *Scene, fx *Effects) {
	if e.state == EnemyDestroy {
		e.destroyStep(s, fx)
		e.settle(e, fx)
		return
	}
	if e.cnt < middleCruise {
		if e.vx < core.Fix(-1) {
			e.vx += core.FixF(0.1)
		}
	} else {
		e.vx -= core.FixF(0.1)
	}
	e.move()
	e.cnt++
	if e.missiles {
		if e.cnt <= middleCruise && e.cnt > 180 && e.cnt%80 == 0 {
			fx.cue(core.CueMissile)
			for _, deg := range []float64{240, 210, 150, 120} {
				fx.enemy(NewMissile(e.x, e.y, core.Radian(deg)))
			}
		}
	} else {
		e.gun.step(&e.enemyBase, s, fx)
	}
	e.settle(e, fx)
}

func (e *Middle) destroyStep(s *Scene, fx *Effects) {
	r := s.rng.effect
	if e.dying < middleDeathTime {
		e.dying++
		e.vy += core.FixF(0.005)
		e.move()
		if r.Intn(16) == 0 {
			fx.cue(core.CueExplosionSmall)
		}
		if r.Intn(8) == 0 {
			x := e.x + core.Fix(r.Intn(64)-32)
			y := e.y + core.Fix(r.Intn(64)-32)
			vx, vy := randomVector(r, core.Fix(r.Intn(8)))
			fx.explosion(NewExplosion(x, y, vx, vy))
		}
		return
	}
	fx.cue(core.CueExplosion)
	for range 8 {
		vx, vy := randomVector(r, core.Fix(r.Intn(8)))
		fx.explosion(NewBigExplosion(e.x+vx*3, e.y+vy*3, vx, vy))
	}
	fx.remove(e)
}

func (e *Middle) addDamage(s *Scene, fx *Effects, n int) {
	if !e.damage(s, n) {
		return
	}
	s.status.UpdateMultiplier(e.live)
	bonus := s.status.AddBonus(middleBonus)
	fx.Float = NewFloatString(e.x, e.y, fmt.Sprint(bonus))
	e.state = EnemyDestroy
}
