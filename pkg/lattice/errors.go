package lattice

import "errors"

// Crossing and construction errors. A failed Prove is a programmer or
// configuration error, never a transient condition: callers must not retry.
var (
	// ErrMissingDominance means the candidate level does not dominate the
	// required level: either the edge was never declared, or a Proof for a
	// different pair was presented at a crossing.
	ErrMissingDominance = errors.New("dominance not declared")

	// ErrUnknownLevel means a level tag was used that was never registered
	// with the lattice. Treated as absence of proof, identical in effect to
	// ErrMissingDominance.
	ErrUnknownLevel = errors.New("unknown security level")

	// ErrDuplicateLevel is returned by Build when the same level is
	// registered twice.
	ErrDuplicateLevel = errors.New("duplicate security level")

	// ErrNoLevels is returned by Build for an empty lattice.
	ErrNoLevels = errors.New("lattice declares no levels")
)
