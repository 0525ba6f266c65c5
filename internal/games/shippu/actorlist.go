package shippu

import (
	"iter"
	"slices"
)

// Category capacities.
const (
	BeamCapacity      = 5
	EnemyCapacity     = 64
	BulletCapacity    = 128
	ExplosionCapacity = 128
	StarCapacity      = 32
)

// ActorList is a fixed-capacity slot array for one actor category.
// Entries are compared by identity; an empty slot holds the zero value.
type ActorList[T comparable] struct {
	slots []T
}

// NewActorList creates a list with the given number of slots.
func NewActorList[T comparable](capacity int) *ActorList[T] {
	return &ActorList[T]{slots: make([]T, capacity)}
}

// Cap returns the number of slots.
func (l *ActorList[T]) Cap() int {
	return len(l.slots)
}

// Append stores a in the first empty slot.
// Returns false, leaving the list unchanged, when every slot is taken.
func (l *ActorList[T]) Append(a T) bool {
	var zero T
	for i, s := range l.slots {
		if s == zero {
			l.slots[i] = a
			return true
		}
	}
	return false
}

// Remove empties the slot holding a. Returns false if a is not present.
func (l *ActorList[T]) Remove(a T) bool {
	var zero T
	if a == zero {
		return false
	}
	for i, s := range l.slots {
		if s == a {
			l.slots[i] = zero
			return true
		}
	}
	return false
}

// Contains reports whether a occupies a slot.
func (l *ActorList[T]) Contains(a T) bool {
	var zero T
	return a != zero && slices.Contains(l.slots, a)
}

// Len returns the number of occupied slots.
func (l *ActorList[T]) Len() int {
	var zero T
	n := 0
	for _, s := range l.slots {
		if s != zero {
			n++
		}
	}
	return n
}

// Each calls fn for every entry present when the pass starts, in slot order.
// Entries removed during the pass are skipped; entries appended during the
// pass are first visited by the next pass.
func (l *ActorList[T]) Each(fn func(T)) {
	l.EachWhile(func(a T) bool {
		fn(a)
		return true
	})
}

// EachWhile is Each, stopping after the first call that returns false.
func (l *ActorList[T]) EachWhile(fn func(T) bool) {
	var zero T
	pass := slices.Clone(l.slots)
	for i, a := range pass {
		if a == zero || l.slots[i] != a {
			continue
		}
		if !fn(a) {
			return
		}
	}
}

// All iterates the occupied slots in order. The list must not be modified
// while ranging over it.
func (l *ActorList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		var zero T
		for _, a := range l.slots {
			if a == zero {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Clear empties every slot.
func (l *ActorList[T]) Clear() {
	clear(l.slots)
}
