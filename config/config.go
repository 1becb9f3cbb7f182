// Package config defines AtomicConfiguration, the input contract every
// geometry reader produces and State consumes: a 3×3 cell, an ordered
// list of atoms, and a periodicity flag.
package config

import (
	"errors"
	"math"

	"github.com/lvlath-contrib/cna/errs"
)

// Vec3 is a Cartesian 3-vector in Ångström.
type Vec3 [3]float64

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Cell is a 3×3 matrix whose rows span the repeating unit, row-major.
type Cell [3][3]float64

// TransformFractional maps a fractional triple (i,j,k) to Cartesian space
// via Cᵀ·(i,j,k), matching state.create_supercell's replica placement.
func (c Cell) TransformFractional(i, j, k float64) Vec3 {
	return Vec3{
		c[0][0]*i + c[1][0]*j + c[2][0]*k,
		c[0][1]*i + c[1][1]*j + c[2][1]*k,
		c[0][2]*i + c[1][2]*j + c[2][2]*k,
	}
}

// Determinant returns det(C), used to reject a singular cell under periodicity.
func (c Cell) Determinant() float64 {
	return c[0][0]*(c[1][1]*c[2][2]-c[1][2]*c[2][1]) -
		c[0][1]*(c[1][0]*c[2][2]-c[1][2]*c[2][0]) +
		c[0][2]*(c[1][0]*c[2][1]-c[1][1]*c[2][0])
}

// Atom is a point with a Cartesian position and an opaque element label.
type Atom struct {
	Position Vec3
	Element  string
}

// AtomicConfiguration is the core's input contract: cell, atoms, elements,
// and whether periodic boundary conditions apply.
type AtomicConfiguration struct {
	Cell     Cell
	Atoms    []Atom
	Periodic bool
}

// ErrNoAtoms indicates a configuration with zero atoms.
var ErrNoAtoms = errors.New("config: configuration has no atoms")

// ErrSingularCell indicates a periodic configuration whose cell cannot be
// inverted/tiled (determinant effectively zero).
var ErrSingularCell = errors.New("config: periodic cell is singular")

// ErrNonFinitePosition indicates an atom position with a NaN or Inf component.
var ErrNonFinitePosition = errors.New("config: non-finite atom position")

// ErrEmptyElement indicates an atom with an empty element label.
var ErrEmptyElement = errors.New("config: atom has empty element label")

// Validate checks the structural invariants every State.Build relies on.
func (c *AtomicConfiguration) Validate() error {
	const op = "config.Validate"
	if c == nil {
		return errs.New(op, errs.InvalidState, errors.New("nil configuration"))
	}
	if len(c.Atoms) == 0 {
		return errs.New(op, errs.InvalidInput, ErrNoAtoms)
	}
	for _, a := range c.Atoms {
		for _, v := range a.Position {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errs.New(op, errs.InvalidInput, ErrNonFinitePosition)
			}
		}
		if a.Element == "" {
			return errs.New(op, errs.InvalidInput, ErrEmptyElement)
		}
	}
	if c.Periodic {
		if math.Abs(c.Cell.Determinant()) < 1e-12 {
			return errs.New(op, errs.InvalidInput, ErrSingularCell)
		}
	}

	return nil
}
