package lattice

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Option configures lattice construction during Load.
type Option func(*Builder)

// WithObserver attaches a crossing observer to the loaded lattice.
func WithObserver(o Observer) Option {
	return func(b *Builder) {
		b.Observe(o)
	}
}

// document is the on-disk declaration format:
//
//	levels: [low, mid, high]
//	dominance:
//	  - {candidate: mid,  required: low}
//	  - {candidate: high, required: mid}
type document struct {
	Levels    []Level    `yaml:"levels"`
	Dominance []edgeDecl `yaml:"dominance"`
}

type edgeDecl struct {
	Candidate Level `yaml:"candidate"`
	Required  Level `yaml:"required"`
}

// Load builds a lattice from a YAML declaration. The same validation applies
// as for Builder.Build: no duplicate levels, no edges over unregistered
// levels, reflexivity implied.
func Load(data []byte, opts ...Option) (*Lattice, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse lattice declaration: %w", err)
	}

	b := NewBuilder()
	for _, l := range doc.Levels {
		b.AddLevel(l)
	}
	for _, e := range doc.Dominance {
		b.Allow(e.Candidate, e.Required)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b.Build()
}

// LoadFile reads and builds a lattice declaration from disk.
func LoadFile(path string, opts ...Option) (*Lattice, error) {
	//nolint:gosec // Lattice file path is controlled by the application author
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lattice file %s: %w", path, err)
	}
	lat, err := Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("lattice file %s: %w", path, err)
	}
	return lat, nil
}
