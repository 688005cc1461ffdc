package geom

import (
	"fmt"
	"math"

	"cellforge/internal/topology"
)

// Disk returns the closed unit ball D^n ⊂ R^n. Disk(0) is the one-point
// space whose single point is the empty vector.
func Disk(n int) topology.Space {
	if n < 0 {
		panic(fmt.Sprintf("geom: Disk(%d) undefined", n))
	}
	return topology.NewSpace(fmt.Sprintf("D%d", n), func(p topology.Point) bool {
		v, ok := p.(Vec)
		return ok && v.Dim() == n && v.Norm() <= 1+Eps
	})
}

// Sphere returns the unit sphere S^n ⊂ R^(n+1). Sphere(-1) is the empty
// space: the boundary of the one-point disk. Dimensions below -1 are
// rejected; the degenerate cases beyond the empty sphere are deliberately
// unsupported.
func Sphere(n int) topology.Space {
	if n < -1 {
		panic(fmt.Sprintf("geom: Sphere(%d) undefined", n))
	}
	if n == -1 {
		return topology.Empty()
	}
	return topology.NewSpace(fmt.Sprintf("S%d", n), func(p topology.Point) bool {
		v, ok := p.(Vec)
		return ok && v.Dim() == n+1 && math.Abs(v.Norm()-1) <= Eps
	})
}

// Interval returns [0,1] ⊂ R^1, the homotopy parameter space.
func Interval() topology.Space {
	return topology.NewSpace("I", func(p topology.Point) bool {
		v, ok := p.(Vec)
		return ok && v.Dim() == 1 && v[0] >= -Eps && v[0] <= 1+Eps
	})
}

// SphereToDisk returns the boundary inclusion S^n ↪ D^(n+1), the identity
// on coordinates. For n = -1 it is the (vacuously continuous) empty map
// into the one-point disk.
func SphereToDisk(n int) topology.Map {
	return topology.NewMap(
		fmt.Sprintf("∂:S%d↪D%d", n, n+1),
		Sphere(n), Disk(n+1),
		func(p topology.Point) topology.Point { return p },
	)
}

// T returns a 1-dimensional interval point. Convenience for tests and
// homotopy parameters.
func T(t float64) Vec { return Vec{t} }
