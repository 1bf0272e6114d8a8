package sec

import (
	"fmt"

	"github.com/polisai/seclib/pkg/lattice"
)

// Value pairs a payload with the security level it was classified at. The
// level is fixed for the lifetime of the instance; the only way to associate
// the payload with another level is Lift, which produces a new Value and may
// only move upward. The zero Value is invalid.
type Value[T any] struct {
	level   lattice.Level
	payload T

	// state is shared across copies of this Value so that consuming any
	// copy invalidates them all. Go cannot move; this is the explicit
	// invalidation that stands in for it.
	state *state
}

type state struct {
	consumed bool
}

// New wraps payload at the given level. Any level is valid for construction;
// classification choices are the caller's.
func New[T any](level lattice.Level, payload T) Value[T] {
	return Value[T]{level: level, payload: payload, state: &state{}}
}

// Level returns the value's security level. The tag itself is not secret,
// only the payload is.
func (v Value[T]) Level() lattice.Level {
	v.mustLive("Level")
	return v.level
}

// Map applies f to the payload exactly once and returns a new Value at the
// same level. The original is consumed.
func Map[A, B any](v Value[A], f func(A) B) Value[B] {
	return New(v.level, f(v.take("Map")))
}

// AndThen is monadic bind: it hands the raw payload to f and returns f's
// result directly. The continuation must produce a Value at the same level.
// AndThen is not a crossing gate, and a continuation that re-labels is a
// contract violation, reported by panic like reuse-after-consume. Use Lift
// to change level.
func AndThen[A, B any](v Value[A], f func(A) Value[B]) Value[B] {
	level := v.level
	out := f(v.take("AndThen"))
	out.mustLive("AndThen")
	if out.level != level {
		panic(fmt.Sprintf("sec: AndThen continuation moved %q to %q; level changes must go through Lift", level, out.level))
	}
	return out
}

// Reveal extracts the raw payload. The proof must cover this value's level;
// on success the value is consumed and the payload has left the protected
// boundary. On failure the payload stays put, the value stays live, and the
// error wraps lattice.ErrMissingDominance (or ErrUnknownLevel from Prove).
func (v Value[T]) Reveal(p lattice.Proof) (T, error) {
	v.mustLive("Reveal")
	if err := p.Authorize(lattice.OpReveal, v.level); err != nil {
		var zero T
		return zero, err
	}
	return v.take("Reveal"), nil
}

// RevealTo proves candidate ≥ this value's level against lat and reveals in
// one step.
func (v Value[T]) RevealTo(lat *lattice.Lattice, candidate lattice.Level) (T, error) {
	v.mustLive("RevealTo")
	p, err := lat.Prove(candidate, v.level)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.Reveal(p)
}

// Lift promotes the payload to the proof's candidate level, which must
// dominate the current level. The original is consumed on success and left
// live on failure, like Reveal.
func (v Value[T]) Lift(p lattice.Proof) (Value[T], error) {
	v.mustLive("Lift")
	if err := p.Authorize(lattice.OpLift, v.level); err != nil {
		return Value[T]{}, err
	}
	return New(p.Candidate(), v.take("Lift")), nil
}

// LiftTo proves target ≥ this value's level against lat and lifts in one
// step.
func (v Value[T]) LiftTo(lat *lattice.Lattice, target lattice.Level) (Value[T], error) {
	v.mustLive("LiftTo")
	p, err := lat.Prove(target, v.level)
	if err != nil {
		return Value[T]{}, err
	}
	return v.Lift(p)
}

// take consumes the value and returns the payload.
func (v Value[T]) take(op string) T {
	v.mustLive(op)
	v.state.consumed = true
	return v.payload
}

func (v Value[T]) mustLive(op string) {
	if v.state == nil {
		panic("sec: " + op + " on zero Value")
	}
	if v.state.consumed {
		panic("sec: " + op + " on consumed Value")
	}
}
