/*package particles contains the structure-of-arrays particle storage used by
each simulated species, along with the mover lists that name dead slots.*/
package particles

import (
	"fmt"
)

// Species stores the particles belonging to a single simulated species in
// structure-of-arrays layout. Slots are indexed 0..Cap(), but only the slots
// in [0, Np) hold valid particles. Slots past Np may contain stale data and
// must never be read.
type Species struct {
	Name string

	// X, Y, and Z are the cell-relative position components of each
	// particle, and Ux, Uy, and Uz are the momentum components.
	X, Y, Z []float32
	Ux, Uy, Uz []float32
	// W is the statistical weight of each particle.
	W []float32
	// Cell is the index of the cell each particle sits in. It doubles as
	// the particle's identity in tests, since no other field is an integer.
	Cell []int32

	// Np is the number of currently active slots.
	Np int
}

// NewSpecies creates an empty Species with a given name and slot capacity.
// Np is left at zero: the caller is responsible for populating slots and
// advancing the active count.
func NewSpecies(name string, capacity int) *Species {
	return &Species{
		Name: name,
		X: make([]float32, capacity),
		Y: make([]float32, capacity),
		Z: make([]float32, capacity),
		Ux: make([]float32, capacity),
		Uy: make([]float32, capacity),
		Uz: make([]float32, capacity),
		W: make([]float32, capacity),
		Cell: make([]int32, capacity),
	}
}

// Cap returns the number of slots in the Species, including inactive ones.
func (s *Species) Cap() int { return len(s.X) }

// CopyRecord copies every field of the particle in slot src into slot dst.
// Records always move as a unit, so a slot never ends up holding fields from
// two different particles.
func (s *Species) CopyRecord(dst, src int) {
	s.X[dst] = s.X[src]
	s.Y[dst] = s.Y[src]
	s.Z[dst] = s.Z[src]
	s.Ux[dst] = s.Ux[src]
	s.Uy[dst] = s.Uy[src]
	s.Uz[dst] = s.Uz[src]
	s.W[dst] = s.W[src]
	s.Cell[dst] = s.Cell[src]
}

// Clone returns a deep copy of the Species, stale slots included.
func (s *Species) Clone() *Species {
	out := NewSpecies(s.Name, s.Cap())
	out.Np = s.Np
	copy(out.X, s.X)
	copy(out.Y, s.Y)
	copy(out.Z, s.Z)
	copy(out.Ux, s.Ux)
	copy(out.Uy, s.Uy)
	copy(out.Uz, s.Uz)
	copy(out.W, s.W)
	copy(out.Cell, s.Cell)
	return out
}

// FloatFields returns the names of the species' float32 fields along with the
// underlying arrays, in a fixed order. The arrays are not copies: writing to
// them writes to the Species.
func (s *Species) FloatFields() ([]string, [][]float32) {
	names := []string{ "x", "y", "z", "ux", "uy", "uz", "w" }
	data := [][]float32{ s.X, s.Y, s.Z, s.Ux, s.Uy, s.Uz, s.W }
	return names, data
}

// Movers lists the indices of the slots whose particles were removed during
// the current step. Each index names a gap that the compaction kernel must
// either fill or let fall off the end of the active range.
type Movers []int32

// Validate checks that a mover list can be safely compacted out of a species
// with np active particles: the list must not be longer than np, and every
// index must be unique and inside [0, np). It returns a descriptive error for
// the first violation found.
func (m Movers) Validate(np int) error {
	if len(m) > np {
		return fmt.Errorf("The mover list contains %d indices, but the " +
			"species only has %d active particles.", len(m), np)
	}

	seen := make(map[int32]bool, len(m))
	for i, pmi := range m {
		if pmi < 0 || int(pmi) >= np {
			return fmt.Errorf("Mover %d is the index %d, which is outside " +
				"the active range [0, %d).", i, pmi, np)
		}
		if seen[pmi] {
			return fmt.Errorf("Mover %d repeats the index %d. Parallel " +
				"backfill is only safe when every mover names a distinct " +
				"slot.", i, pmi)
		}
		seen[pmi] = true
	}

	return nil
}
