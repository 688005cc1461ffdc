// Package geom supplies the concrete geometric realizations the rest of
// cellforge builds on: coordinate vectors, unit disks and spheres in real
// coordinate space, the unit interval, and the boundary inclusion of a
// sphere into the disk one dimension up.
package geom

import (
	"math"

	"cellforge/internal/topology"
)

// Eps is the membership tolerance for the sphere equation and disk
// boundary. Numeric construction needs a tolerance somewhere; it lives
// here so every package agrees on it.
const Eps = 1e-9

// Vec is a point of R^n. The zero-length vector is the single point of
// R^0, which realizes Disk(0).
type Vec []float64

// Dim returns the ambient dimension.
func (v Vec) Dim() int { return len(v) }

// Norm returns the Euclidean norm.
func (v Vec) Norm() float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// Scale returns c·v as a fresh vector.
func (v Vec) Scale(c float64) Vec {
	out := make(Vec, len(v))
	for i, x := range v {
		out[i] = c * x
	}
	return out
}

// Normalize returns v/‖v‖. Panics on the zero vector: callers hold a
// region invariant guaranteeing a positive norm before normalizing.
func (v Vec) Normalize() Vec {
	n := v.Norm()
	if n == 0 {
		panic("geom: normalize of zero vector")
	}
	return v.Scale(1 / n)
}

// Dist returns the Euclidean distance between v and w.
func (v Vec) Dist(w Vec) float64 {
	var s float64
	for i := range v {
		d := v[i] - w[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// PointEqual compares coordinates within tol.
func (v Vec) PointEqual(other topology.Point, tol float64) bool {
	w, ok := other.(Vec)
	if !ok || len(w) != len(v) {
		return false
	}
	for i := range v {
		if math.Abs(v[i]-w[i]) > tol {
			return false
		}
	}
	return true
}
