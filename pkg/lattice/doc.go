// Package lattice defines the universe of security levels and the dominance
// relation between them.
//
// A Lattice is built once, from code via Builder or from a YAML declaration
// file via Load, and never mutated afterwards. The relation is exactly what
// the author declared: every level dominates itself, and beyond that an edge
// exists only where Allow was called (or a dominance entry appears in the
// file). No transitive closure is computed: if A ≥ B and B ≥ C are declared,
// A ≥ C still requires its own declaration. Querying an undeclared pair, or a
// level that was never registered, answers "does not dominate".
//
// Boundary crossings do not consult the table directly; they present a Proof
// issued by Prove. A Proof is bound to the issuing lattice and to the exact
// (candidate, required) pair it was verified for, and cannot be constructed
// outside this package.
package lattice
