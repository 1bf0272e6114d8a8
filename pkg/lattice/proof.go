package lattice

import "fmt"

// Proof is the evidence, issued by Prove, that its candidate level dominates
// its required level in the issuing lattice. The zero Proof authorizes
// nothing. Proofs cannot be constructed or altered outside this package.
type Proof struct {
	lat       *Lattice
	candidate Level
	required  Level
	id        string
}

// Candidate returns the dominating level the proof was issued for.
func (p Proof) Candidate() Level { return p.candidate }

// Required returns the dominated level the proof was issued for.
func (p Proof) Required() Level { return p.required }

// ID returns the proof's correlation identifier, present in every crossing
// event the proof produces.
func (p Proof) ID() string { return p.id }

// Authorize checks that the proof covers a crossing at the given level and
// reports the attempt to the issuing lattice's observer. It fails when the
// proof is the zero value or was issued for a different required level: a
// proof is evidence for one exact pair, nothing more.
func (p Proof) Authorize(op Op, level Level) error {
	if p.lat == nil {
		return fmt.Errorf("%s at %q: zero proof: %w", op, level, ErrMissingDominance)
	}
	granted := p.required == level
	p.lat.observe(Event{
		Op:        op,
		Candidate: p.candidate,
		Required:  level,
		Granted:   granted,
		ProofID:   p.id,
	})
	if !granted {
		return fmt.Errorf("%s at %q with proof for %q over %q: %w",
			op, level, p.candidate, p.required, ErrMissingDominance)
	}
	return nil
}
