// Package sec provides the labeled container: a payload bound immutably to
// one security level from a lattice.Lattice.
//
// A Value is manipulated through exactly five operations. New wraps a payload
// at a level. Map and AndThen transform the payload without touching the
// level. Reveal extracts the raw payload and Lift re-labels it to a
// dominating level; both are gated by a lattice.Proof and are the only two
// points where data crosses the security boundary. There is no downgrade
// operation of any kind.
//
// Every operation consumes its input: the original Value is invalidated and
// any later use of it panics. A denied Reveal or Lift does not consume;
// nothing crossed, and the caller may retry with a valid proof.
//
// The container itself is inert: it performs no I/O, holds no locks, and
// emits nothing. Crossing observability belongs to the lattice's proof
// mechanism.
package sec
