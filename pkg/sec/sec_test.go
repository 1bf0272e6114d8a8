package sec

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/polisai/seclib/pkg/lattice"
)

const (
	low  lattice.Level = "low"
	mid  lattice.Level = "mid"
	high lattice.Level = "high"
)

func twoLevel(t *testing.T) *lattice.Lattice {
	t.Helper()
	lat, err := lattice.NewBuilder().
		AddLevel(low).
		AddLevel(high).
		Allow(high, low).
		Build()
	require.NoError(t, err)
	return lat
}

func TestNew_Level(t *testing.T) {
	v := New(high, "attack at dawn")
	assert.Equal(t, high, v.Level())
}

func TestMap_PreservesLevel(t *testing.T) {
	lat := twoLevel(t)

	v := Map(New(low, 5), func(x int) int { return x + 2 })
	assert.Equal(t, low, v.Level())

	got, err := v.RevealTo(lat, low)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestMap_ChangesPayloadType(t *testing.T) {
	lat := twoLevel(t)

	v := Map(New(high, 42), strconv.Itoa)
	assert.Equal(t, high, v.Level())

	got, err := v.RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, "42", got)
}

func TestMap_AppliesExactlyOnce(t *testing.T) {
	calls := 0
	_ = Map(New(low, 1), func(x int) int {
		calls++
		return x
	})
	assert.Equal(t, 1, calls)
}

func TestAndThen_SameLevel(t *testing.T) {
	lat := twoLevel(t)

	v := AndThen(New(high, 4), func(i int) Value[int] {
		return New(high, i+2)
	})
	assert.Equal(t, high, v.Level())

	got, err := v.RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestAndThen_RejectsLevelChange(t *testing.T) {
	assert.PanicsWithValue(t,
		`sec: AndThen continuation moved "high" to "low"; level changes must go through Lift`,
		func() {
			AndThen(New(high, 4), func(i int) Value[int] {
				return New(low, i)
			})
		})
}

func TestReveal_DominatingProof(t *testing.T) {
	lat := twoLevel(t)

	// Same level.
	got, err := New(low, 7).RevealTo(lat, low)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	// High dominates low.
	got, err = New(low, 7).RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestReveal_MissingDominance(t *testing.T) {
	lat := twoLevel(t)

	_, err := New(high, 9).RevealTo(lat, low)
	assert.ErrorIs(t, err, lattice.ErrMissingDominance)
}

func TestReveal_DeniedLeavesValueLive(t *testing.T) {
	lat := twoLevel(t)
	v := New(high, "secret")

	_, err := v.RevealTo(lat, low)
	require.ErrorIs(t, err, lattice.ErrMissingDominance)

	// Nothing crossed; a valid proof still works on the same value.
	got, err := v.RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestReveal_ProofForWrongPair(t *testing.T) {
	lat := twoLevel(t)
	p, err := lat.Prove(high, low)
	require.NoError(t, err)

	// A proof of high ≥ low says nothing about a high-leveled value.
	_, err = New(high, 1).Reveal(p)
	assert.ErrorIs(t, err, lattice.ErrMissingDominance)
}

func TestLift_Promotes(t *testing.T) {
	lat := twoLevel(t)

	lifted, err := New(low, "secret").LiftTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, high, lifted.Level())

	got, err := lifted.RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)
}

func TestLift_SameLevel(t *testing.T) {
	lat := twoLevel(t)

	lifted, err := New(low, 1).LiftTo(lat, low)
	require.NoError(t, err)
	assert.Equal(t, low, lifted.Level())
}

func TestLift_NoDowngrade(t *testing.T) {
	lat := twoLevel(t)
	v := New(high, "secret")

	_, err := v.LiftTo(lat, low)
	assert.ErrorIs(t, err, lattice.ErrMissingDominance)

	// Denied lift leaves the original live at its level.
	assert.Equal(t, high, v.Level())
}

// Three-level lattice with no high ≥ low edge: the declared chain must not be
// closed on the caller's behalf.
func TestReveal_NoImplicitTransitivity(t *testing.T) {
	lat, err := lattice.NewBuilder().
		AddLevel(low).
		AddLevel(mid).
		AddLevel(high).
		Allow(mid, low).
		Allow(high, mid).
		Build()
	require.NoError(t, err)

	_, err = New(low, 1).RevealTo(lat, high)
	assert.ErrorIs(t, err, lattice.ErrMissingDominance)

	// The declared hops still work individually.
	got, err := New(low, 1).RevealTo(lat, mid)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	lifted, err := New(low, 1).LiftTo(lat, mid)
	require.NoError(t, err)
	got, err = lifted.RevealTo(lat, high)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestConsumed_MapThenUse(t *testing.T) {
	v := New(low, 1)
	_ = Map(v, func(x int) int { return x })

	assert.PanicsWithValue(t, "sec: Level on consumed Value", func() { v.Level() })
	assert.PanicsWithValue(t, "sec: Map on consumed Value", func() {
		Map(v, func(x int) int { return x })
	})
}

func TestConsumed_RevealThenUse(t *testing.T) {
	lat := twoLevel(t)
	v := New(low, 1)

	_, err := v.RevealTo(lat, high)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "sec: RevealTo on consumed Value", func() {
		_, _ = v.RevealTo(lat, high)
	})
}

func TestConsumed_LiftInvalidatesOriginal(t *testing.T) {
	lat := twoLevel(t)
	v := New(low, 1)

	_, err := v.LiftTo(lat, high)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "sec: Level on consumed Value", func() { v.Level() })
}

func TestZeroValue_Panics(t *testing.T) {
	var v Value[int]
	assert.PanicsWithValue(t, "sec: Level on zero Value", func() { v.Level() })
}

// Property 2: Level Preservation. Map and AndThen never change the level,
// and Reveal succeeds exactly when dominance was declared.
func TestContainerProperties(t *testing.T) {
	levels := []lattice.Level{low, mid, high}

	rapid.Check(t, func(t *rapid.T) {
		b := lattice.NewBuilder()
		for _, l := range levels {
			b.AddLevel(l)
		}
		pick := rapid.SampledFrom(levels)
		declared := make(map[[2]lattice.Level]bool)
		for i, n := 0, rapid.IntRange(0, 6).Draw(t, "edges"); i < n; i++ {
			c := pick.Draw(t, "candidate")
			r := pick.Draw(t, "required")
			b.Allow(c, r)
			declared[[2]lattice.Level{c, r}] = true
		}
		lat, err := b.Build()
		if err != nil {
			t.Fatalf("build: %v", err)
		}

		at := pick.Draw(t, "at")
		v := New(at, rapid.Int().Draw(t, "payload"))

		steps := rapid.IntRange(0, 4).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "bind") {
				v = AndThen(v, func(x int) Value[int] { return New(at, x*2) })
			} else {
				v = Map(v, func(x int) int { return x + 1 })
			}
		}
		if v.Level() != at {
			t.Fatalf("level drifted from %q to %q", at, v.Level())
		}

		proof := pick.Draw(t, "proof")
		want := proof == at || declared[[2]lattice.Level{proof, at}]
		_, err = v.RevealTo(lat, proof)
		if want != (err == nil) {
			t.Fatalf("RevealTo(%q) over %q: err = %v, want success = %v", proof, at, err, want)
		}
		if !want {
			// Denied crossings leave the value usable.
			if v.Level() != at {
				t.Fatalf("denied reveal disturbed the value")
			}
		}
	})
}
