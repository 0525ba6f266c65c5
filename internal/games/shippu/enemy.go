package shippu

import (
	"fmt"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// EnemyState is the coarse state of an enemy. Only moving enemies collide.
type EnemyState uint8

const (
	EnemyAppear EnemyState = iota
	EnemyMove
	EnemyDestroy
)

// EnemyKind names an enemy variant. The names are the ones level files use.
type EnemyKind uint8

const (
	KindStraight EnemyKind = iota
	KindStraightBullet
	KindStay
	KindRoll
	KindBackward
	KindVerticalMissile
	KindStraightMissile
	KindMiddle
	KindMiddleMissile
	KindBoss
	KindMissile
	KindBossBattery
	KindBossSpread
	KindBossLauncher
)

var enemyKindNames = map[EnemyKind]string{
	KindStraight:        "straight",
	KindStraightBullet:  "straight_bullet",
	KindStay:            "stay",
	KindRoll:            "roll",
	KindBackward:        "backward",
	KindVerticalMissile: "vertical_missile",
	KindStraightMissile: "straight_missile",
	KindMiddle:          "middle",
	KindMiddleMissile:   "middle_missile",
	KindBoss:            "boss",
	KindMissile:         "missile",
	KindBossBattery:     "boss_battery",
	KindBossSpread:      "boss_spread",
	KindBossLauncher:    "boss_launcher",
}

func (k EnemyKind) String() string {
	if name, ok := enemyKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("enemy(%d)", uint8(k))
}

// Spawnable reports whether a level timeline may spawn this kind directly.
func (k EnemyKind) Spawnable() bool {
	return k <= KindBoss
}

// ParseEnemyKind resolves a level file name.
func ParseEnemyKind(name string) (EnemyKind, error) {
	for k, n := range enemyKindNames {
		if n == name && k.Spawnable() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEnemy, name)
}

// Handle identifies an enemy while it occupies a slot. Zero is no enemy.
type Handle uint32

// Enemy is the closed set of enemy variants.
type Enemy interface {
	Actor
	Kind() EnemyKind
	Handle() Handle
	State() EnemyState
	Shield() int
	Velocity() (core.Fixed, core.Fixed)
	HasCollision() bool

	base() *enemyBase
	step(s *Scene, fx *Effects)
	addDamage(s *Scene, fx *Effects, damage int)
}

// enemyBase is the state every variant shares.
type enemyBase struct {
	body
	kind   EnemyKind
	handle Handle
	state  EnemyState
	shield int
	live   int
}

func newEnemyBase(kind EnemyKind, x, y core.Fixed) enemyBase {
	return enemyBase{
		body:   body{x: x, y: y, shape: core.Square(16)},
		kind:   kind,
		state:  EnemyMove,
		shield: 1,
	}
}

func (e *enemyBase) base() *enemyBase { return e }

// Kind returns the variant.
func (e *enemyBase) Kind() EnemyKind { return e.kind }

// Handle returns the slot handle, zero before the enemy is placed.
func (e *enemyBase) Handle() Handle { return e.handle }

// State returns the coarse state.
func (e *enemyBase) State() EnemyState { return e.state }

// Shield returns the hit points left.
func (e *enemyBase) Shield() int { return e.shield }

// Live returns how many ticks the enemy has been processed.
func (e *enemyBase) Live() int { return e.live }

// HasCollision reports whether the enemy can be hit.
func (e *enemyBase) HasCollision() bool { return e.state == EnemyMove }

// Sprite returns the small enemy glyph.
func (e *enemyBase) Sprite() (Sprite, int) { return SpriteEnemy, 0 }

// settle is the bookkeeping after a regular enemy's behavior step.
func (e *enemyBase) settle(self Enemy, fx *Effects) {
	e.live++
	if e.sceneOut() {
		fx.remove(self)
	}
}

// damage applies a hit and reports whether it was the killing blow.
func (e *enemyBase) damage(s *Scene, n int) bool {
	e.shield -= n
	s.status.AddScore(1)
	return e.shield <= 0
}

// aimed fires a round bullet at the player.
func (e *enemyBase) aimed(s *Scene, fx *Effects, speed float64) {
	fx.bullet(BulletFromAngle(e.x, e.y, e.search(s.player), speed))
}

// explode is the regular death: bonus, sound, one of three explosion
// patterns, and removal.
func (e *enemyBase) explode(self Enemy, s *Scene, fx *Effects) {
	s.status.UpdateMultiplier(e.live)
	s.status.AddBonus(100)
	fx.cue(core.CueExplosionSmall)

	r := s.rng.effect
	switch pattern := r.Intn(10); {
	case pattern < 8:
		vx, vy := randomVector(r, core.Fix(r.Intn(8))/8)
		fx.explosion(NewExplosion(e.x, e.y, e.vx+vx, e.vy+vy))
	case pattern == 8:
		for range 8 {
			vx, vy := randomVector(r, core.Fix(r.Intn(8)))
			fx.explosion(NewExplosion(e.x, e.y, e.vx+vx, e.vy+vy))
		}
	default:
		bx, by := randomVector(r, core.Fix(2))
		for i := range 8 {
			vx, vy := randomVector(r, core.Fix(1))
			fx.explosion(NewExplosion(e.x, e.y,
				e.vx+bx*core.Fixed(i)+vx, e.vy+by*core.Fixed(i)+vy))
		}
	}
	fx.remove(self)
}

// verticalSign returns +1 for enemies entering in the upper half, -1 otherwise.
func verticalSign(y core.Fixed) core.Fixed {
	if y < core.Fix(core.SceneHeight/2) {
		return 1
	}
	return -1
}
