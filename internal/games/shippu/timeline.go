package shippu

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Level validation errors.
var (
	ErrBadDirective = errors.New("bad directive")
	ErrUnknownEnemy = errors.New("unknown enemy")
)

// DirectiveKind selects what a timeline directive does.
type DirectiveKind uint8

const (
	DirectiveSpawn DirectiveKind = iota
	DirectiveIdle
	DirectiveWaitNoEnemies
	DirectiveEnding
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveSpawn:
		return "spawn"
	case DirectiveIdle:
		return "idle"
	case DirectiveWaitNoEnemies:
		return "wait"
	default:
		return "ending"
	}
}

// Directive is one step of a level timeline.
type Directive struct {
	Kind   DirectiveKind
	Enemy  EnemyKind  // spawn
	X, Y   core.Fixed // spawn
	VY     core.Fixed // spawn, stay enemies only
	Frames int        // idle
}

// Spawn returns a spawn directive.
func Spawn(kind EnemyKind, x, y core.Fixed) Directive {
	return Directive{Kind: DirectiveSpawn, Enemy: kind, X: x, Y: y}
}

// Idle returns an idle directive.
func Idle(frames int) Directive {
	return Directive{Kind: DirectiveIdle, Frames: frames}
}

// WaitNoEnemies returns a directive that holds the timeline until the
// enemy list is empty.
func WaitNoEnemies() Directive {
	return Directive{Kind: DirectiveWaitNoEnemies}
}

// BeginEnding returns the directive that starts the ending.
func BeginEnding() Directive {
	return Directive{Kind: DirectiveEnding}
}

// Validate checks the directive's arguments.
func (d Directive) Validate() error {
	switch d.Kind {
	case DirectiveSpawn:
		if !d.Enemy.Spawnable() {
			return fmt.Errorf("%w: %s", ErrUnknownEnemy, d.Enemy)
		}
	case DirectiveIdle:
		if d.Frames < 0 {
			return fmt.Errorf("%w: idle %d", ErrBadDirective, d.Frames)
		}
	case DirectiveWaitNoEnemies, DirectiveEnding:
	default:
		return fmt.Errorf("%w: kind %d", ErrBadDirective, d.Kind)
	}
	return nil
}

// build creates the enemy of a spawn directive.
func (d Directive) build() Enemy {
	switch d.Enemy {
	case KindStraight:
		return NewStraight(d.X, d.Y)
	case KindStraightBullet:
		return NewStraightBullet(d.X, d.Y)
	case KindStay:
		return NewStay(d.X, d.Y, d.VY)
	case KindRoll:
		return NewRoll(d.X, d.Y)
	case KindBackward:
		return NewBackward(d.X, d.Y)
	case KindVerticalMissile:
		return NewVerticalMissile(d.X, d.Y)
	case KindStraightMissile:
		return NewStraightMissile(d.X, d.Y)
	case KindMiddle:
		return NewMiddle(d.X, d.Y)
	case KindMiddleMissile:
		return NewMiddleMissile(d.X, d.Y)
	case KindBoss:
		return NewBoss(d.X, d.Y)
	}
	return nil
}

// Timeline interprets a level's directives. Each Step is one event tick:
// it runs instant directives until one blocks, then holds there.
type Timeline struct {
	directives []Directive
	cursor     int
	started    bool
	left       int
}

// NewTimeline creates a timeline at its first directive.
func NewTimeline(directives []Directive) *Timeline {
	return &Timeline{directives: directives}
}

// Cursor returns the index of the directive being executed. It equals the
// number of directives once the timeline is exhausted.
func (t *Timeline) Cursor() int { return t.cursor }

// Len returns the number of directives.
func (t *Timeline) Len() int { return len(t.directives) }

// Done reports whether every directive has run.
func (t *Timeline) Done() bool { return t.cursor >= len(t.directives) }

// Step advances the timeline by one event tick.
func (t *Timeline) Step(s *Scene) {
	for t.cursor < len(t.directives) {
		d := t.directives[t.cursor]
		if !t.started {
			t.started = true
			switch d.Kind {
			case DirectiveSpawn:
				s.spawn(d.build())
			case DirectiveIdle:
				t.left = d.Frames
			case DirectiveEnding:
				s.beginEnding()
			}
		}
		switch d.Kind {
		case DirectiveIdle:
			if t.left > 0 {
				t.left--
				if t.left == 0 {
					t.next()
				}
				return
			}
		case DirectiveWaitNoEnemies:
			if s.enemies.Len() > 0 {
				return
			}
		}
		t.next()
	}
}

func (t *Timeline) next() {
	t.cursor++
	t.started = false
}
