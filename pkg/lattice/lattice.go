package lattice

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Level is a security level tag. It carries no payload of its own; it exists
// purely to classify data. Levels are declared once, at lattice build time,
// and are never created or destroyed afterwards.
type Level string

func (l Level) String() string { return string(l) }

// Op identifies which gate a crossing event came through.
type Op string

const (
	// OpProve is the issuance of a dominance proof.
	OpProve Op = "prove"
	// OpReveal is an extraction of the raw payload.
	OpReveal Op = "reveal"
	// OpLift is a promotion to a dominating level.
	OpLift Op = "lift"
)

// Event describes one crossing attempt, granted or denied. LatticeID names
// the lattice that emitted it, so audit trails stay unambiguous when an
// application builds more than one.
type Event struct {
	Op        Op
	Candidate Level
	Required  Level
	Granted   bool
	ProofID   string
	LatticeID string
}

// Observer receives crossing events. Implementations must not block; they are
// called synchronously on the crossing path.
type Observer interface {
	ObserveCrossing(Event)
}

type edge struct {
	candidate Level
	required  Level
}

// Lattice is the immutable registry of levels and declared dominance edges.
type Lattice struct {
	id       string
	levels   map[Level]struct{}
	edges    map[edge]struct{}
	observer Observer
}

// Builder accumulates level and dominance declarations. The zero Builder is
// not usable; construct with NewBuilder.
type Builder struct {
	levels   []Level
	edges    []edge
	observer Observer
}

// NewBuilder returns an empty lattice builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddLevel registers a security level. Registering the same level twice is a
// Build error.
func (b *Builder) AddLevel(l Level) *Builder {
	b.levels = append(b.levels, l)
	return b
}

// Allow declares that candidate dominates required (candidate ≥ required).
// Each needed pair must be declared individually; Allow(a, b) and Allow(b, c)
// do not imply a ≥ c. Reflexive edges are implied and need not be declared.
func (b *Builder) Allow(candidate, required Level) *Builder {
	b.edges = append(b.edges, edge{candidate: candidate, required: required})
	return b
}

// Observe attaches an observer that will receive every crossing event from
// the built lattice.
func (b *Builder) Observe(o Observer) *Builder {
	b.observer = o
	return b
}

// Build validates the declarations and produces the lattice. Every level is
// given its reflexive self-dominance edge; declaring it explicitly is a
// harmless no-op. Edges referencing unregistered levels are rejected.
func (b *Builder) Build() (*Lattice, error) {
	if len(b.levels) == 0 {
		return nil, ErrNoLevels
	}

	levels := make(map[Level]struct{}, len(b.levels))
	for _, l := range b.levels {
		if _, dup := levels[l]; dup {
			return nil, fmt.Errorf("level %q: %w", l, ErrDuplicateLevel)
		}
		levels[l] = struct{}{}
	}

	edges := make(map[edge]struct{}, len(b.edges)+len(b.levels))
	for l := range levels {
		edges[edge{candidate: l, required: l}] = struct{}{}
	}
	for _, e := range b.edges {
		if _, ok := levels[e.candidate]; !ok {
			return nil, fmt.Errorf("dominance candidate %q: %w", e.candidate, ErrUnknownLevel)
		}
		if _, ok := levels[e.required]; !ok {
			return nil, fmt.Errorf("dominance required %q: %w", e.required, ErrUnknownLevel)
		}
		edges[e] = struct{}{}
	}

	return &Lattice{
		id:       uuid.NewString(),
		levels:   levels,
		edges:    edges,
		observer: b.observer,
	}, nil
}

// ID returns the lattice's build-time identity, carried by every crossing
// event it emits.
func (l *Lattice) ID() string { return l.id }

// Dominates reports whether candidate ≥ required per the declared relation.
// Unknown levels and undeclared pairs answer false; there is no error path
// and no default-allow.
func (l *Lattice) Dominates(candidate, required Level) bool {
	_, ok := l.edges[edge{candidate: candidate, required: required}]
	return ok
}

// Contains reports whether the level was registered with this lattice.
func (l *Lattice) Contains(level Level) bool {
	_, ok := l.levels[level]
	return ok
}

// Prove verifies candidate ≥ required and issues a Proof for exactly that
// pair. On failure it returns ErrUnknownLevel or ErrMissingDominance; the
// attempt is reported to the observer either way.
func (l *Lattice) Prove(candidate, required Level) (Proof, error) {
	if !l.Contains(candidate) {
		l.observe(Event{Op: OpProve, Candidate: candidate, Required: required})
		return Proof{}, fmt.Errorf("candidate level %q: %w", candidate, ErrUnknownLevel)
	}
	if !l.Contains(required) {
		l.observe(Event{Op: OpProve, Candidate: candidate, Required: required})
		return Proof{}, fmt.Errorf("required level %q: %w", required, ErrUnknownLevel)
	}
	if !l.Dominates(candidate, required) {
		l.observe(Event{Op: OpProve, Candidate: candidate, Required: required})
		return Proof{}, fmt.Errorf("%q does not dominate %q: %w", candidate, required, ErrMissingDominance)
	}

	p := Proof{
		lat:       l,
		candidate: candidate,
		required:  required,
		id:        uuid.NewString(),
	}
	l.observe(Event{Op: OpProve, Candidate: candidate, Required: required, Granted: true, ProofID: p.id})
	return p, nil
}

// Levels returns the registered levels in sorted order.
func (l *Lattice) Levels() []Level {
	out := make([]Level, 0, len(l.levels))
	for lv := range l.levels {
		out = append(out, lv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Edges returns every dominance pair, reflexive edges included, as
// [candidate, required] tuples in sorted order.
func (l *Lattice) Edges() [][2]Level {
	out := make([][2]Level, 0, len(l.edges))
	for e := range l.edges {
		out = append(out, [2]Level{e.candidate, e.required})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// MissingTransitiveEdges reports the (A, C) pairs where A ≥ B and B ≥ C are
// declared but A ≥ C is not. The lattice never closes these chains itself;
// this exists so authoring tools can show what has not been signed off.
func (l *Lattice) MissingTransitiveEdges() [][2]Level {
	seen := make(map[edge]struct{})
	var out [][2]Level
	for ab := range l.edges {
		for bc := range l.edges {
			if ab.required != bc.candidate {
				continue
			}
			ac := edge{candidate: ab.candidate, required: bc.required}
			if _, declared := l.edges[ac]; declared {
				continue
			}
			if _, dup := seen[ac]; dup {
				continue
			}
			seen[ac] = struct{}{}
			out = append(out, [2]Level{ac.candidate, ac.required})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

func (l *Lattice) observe(e Event) {
	if l != nil && l.observer != nil {
		e.LatticeID = l.id
		l.observer.ObserveCrossing(e)
	}
}
