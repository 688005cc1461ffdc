// Package jar builds homotopy extensions over the "jar" D^(n+1) × [0,1]:
// given a map f on the disk and a homotopy H on its boundary sphere that
// agrees with f at time zero, it produces one continuous map on the whole
// jar restricting to f on the bottom and to H on the lateral wall. The
// two restrictions together are the Homotopy Extension Property for the
// inclusion S^n ↪ D^(n+1).
//
// The jar is split into two closed regions meeting on the seam
// ‖x‖ = 1 − y/2: Mid (containing the bottom) is reparametrized back onto
// the disk, Rim (containing the wall) back onto S^n × [0,1], and the
// closed-cover gluing engine stitches the two piece maps together.
package jar

import (
	"errors"
	"fmt"

	"cellforge/internal/cover"
	"cellforge/internal/geom"
	"cellforge/internal/topology"
)

// ErrBoundary is returned when f and H fail the boundary-compatibility
// equation f(ι(s)) = H(s, 0) on the witness probes.
var ErrBoundary = errors.New("map and homotopy disagree on the boundary sphere at time 0")

const agreeTol = 1e-7

// Space returns the jar D^(n+1) × [0,1]. Its points are Pair{x, t} with
// x a disk coordinate vector and t a 1-dimensional interval point.
func Space(n int) topology.Space {
	return topology.Product(geom.Disk(n+1), geom.Interval())
}

// seam is g(x,y) = ‖x‖ − 1 + y/2; Mid is g ≤ 0, Rim is g ≥ 0, and the
// two regions overlap exactly on g = 0. g is continuous, so both regions
// are closed by the sublevel/superlevel construction.
func seam(p topology.Point) float64 {
	pr := p.(topology.Pair)
	x := pr.Left.(geom.Vec)
	y := pr.Right.(geom.Vec)[0]
	return x.Norm() - 1 + y/2
}

// Mid returns the closed region {(x,y) : ‖x‖ ≤ 1 − y/2}.
func Mid(n int) topology.ClosedSet {
	return topology.Sublevel(Space(n), fmt.Sprintf("Mid%d", n), seam, 0)
}

// Rim returns the closed region {(x,y) : ‖x‖ ≥ 1 − y/2}.
func Rim(n int) topology.ClosedSet {
	return topology.Superlevel(Space(n), fmt.Sprintf("Rim%d", n), seam, 0)
}

// MidProj reparametrizes Mid onto the disk: (x,y) ↦ (2/(2−y))·x. On Mid,
// ‖x‖ ≤ 1 − y/2 gives ‖(2/(2−y))·x‖ ≤ 1, so the image lands in the disk;
// the denominator is positive since y ≤ 1 < 2. Both invariants are
// asserted at runtime.
func MidProj(n int) topology.Map {
	return topology.NewMap(fmt.Sprintf("mid%d", n), Mid(n).Subspace(), geom.Disk(n+1),
		func(p topology.Point) topology.Point {
			pr := p.(topology.Pair)
			x := pr.Left.(geom.Vec)
			y := pr.Right.(geom.Vec)[0]
			if 2-y <= 0 {
				panic(fmt.Sprintf("jar: mid projection at y=%v outside [0,1]", y))
			}
			out := x.Scale(2 / (2 - y))
			if out.Norm() > 1+agreeTol {
				panic(fmt.Sprintf("jar: mid projection left the disk at (%v,%v)", x, y))
			}
			return clampToDisk(out)
		})
}

// RimProj reparametrizes Rim onto S^n × [0,1]:
// (x,y) ↦ (x/‖x‖, (y−2)/‖x‖ + 2). On Rim, ‖x‖ ≥ 1 − y/2 ≥ 1/2 for
// y ∈ [0,1], so the division is safe; the radial component is exactly
// normalized onto the sphere and the time component is algebraically
// forced into [0,1] (0 on the seam, y on the outer wall ‖x‖ = 1).
func RimProj(n int) topology.Map {
	wall := topology.Product(geom.Sphere(n), geom.Interval())
	return topology.NewMap(fmt.Sprintf("rim%d", n), Rim(n).Subspace(), wall,
		func(p topology.Point) topology.Point {
			pr := p.(topology.Pair)
			x := pr.Left.(geom.Vec)
			y := pr.Right.(geom.Vec)[0]
			r := x.Norm()
			if r < 1-y/2-geom.Eps || r == 0 {
				panic(fmt.Sprintf("jar: rim projection invariant broken at (%v,%v)", x, y))
			}
			t := (y-2)/r + 2
			return topology.Pair{Left: x.Normalize(), Right: geom.T(clamp01(t))}
		})
}

// BoundaryWitness carries the sphere probes on which the boundary
// compatibility f(ι(s)) = H(s,0) is verified before any extension is
// built. Empty probes are only legitimate for the empty-sphere dimension
// n = -1, where the equation is vacuous.
type BoundaryWitness struct {
	SphereProbes []topology.Point // points of Sphere(n)
}

// Extension is a built homotopy extension together with the data it
// extends, so the two commuting laws remain checkable after the fact.
type Extension struct {
	Map topology.Map // Jar(n) → Y
	N   int

	f topology.Map // D^(n+1) → Y
	h topology.Map // S^n × I → Y
}

// Extend builds the extension of (f, H) over the jar. Rejects the pair
// when the boundary compatibility fails on the witness probes; for n ≥ 0
// an empty witness is rejected too, since the seam agreement of the two
// glued pieces rests entirely on that equation.
//
// On the seam ‖x‖ = 1 − y/2 the two branches meet exactly: MidProj lands
// on the boundary sphere at q = x/‖x‖, RimProj yields (q, 0), and
// f(ι(q)) = H(q, 0) by the verified compatibility, so the glued map is
// well-defined there.
func Extend(n int, f, H topology.Map, w BoundaryWitness) (Extension, error) {
	if n < -1 {
		return Extension{}, fmt.Errorf("jar: dimension %d unsupported", n)
	}
	if n >= 0 && len(w.SphereProbes) == 0 {
		return Extension{}, fmt.Errorf("jar: boundary witness has no probes for dimension %d", n)
	}

	incl := geom.SphereToDisk(n)
	for _, s := range w.SphereProbes {
		fv := f.At(incl.At(s))
		hv := H.At(topology.Pair{Left: s, Right: geom.T(0)})
		if !topology.Equal(fv, hv, agreeTol) {
			return Extension{}, fmt.Errorf("%w: at %v: f=%v H=%v", ErrBoundary, s, fv, hv)
		}
	}

	mid := Mid(n)
	rim := Rim(n)
	pieces := []cover.Piece{
		{Set: mid, Via: MidProj(n).Then(f)},
		{Set: rim, Via: RimProj(n).Then(H)},
	}

	glued, err := cover.Glue(fmt.Sprintf("ext%d[%s,%s]", n, f.Name(), H.Name()),
		Space(n), pieces, cover.Witness{Probes: jarProbes(n, w)})
	if err != nil {
		return Extension{}, err
	}
	return Extension{Map: glued, N: n, f: f, h: H}, nil
}

// Bottom returns the extension restricted to the disk at time 0.
func (e Extension) Bottom() topology.Map {
	return topology.NewMap(fmt.Sprintf("ext%d|y=0", e.N), geom.Disk(e.N+1), e.Map.Cod(),
		func(p topology.Point) topology.Point {
			return e.Map.At(topology.Pair{Left: p, Right: geom.T(0)})
		})
}

// Wall returns the extension restricted to the lateral wall S^n × [0,1],
// via the boundary inclusion crossed with the identity on time.
func (e Extension) Wall() topology.Map {
	wall := topology.Product(geom.Sphere(e.N), geom.Interval())
	incl := geom.SphereToDisk(e.N)
	return topology.NewMap(fmt.Sprintf("ext%d|wall", e.N), wall, e.Map.Cod(),
		func(p topology.Point) topology.Point {
			pr := p.(topology.Pair)
			return e.Map.At(topology.Pair{Left: incl.At(pr.Left), Right: pr.Right})
		})
}

// VerifyHEP checks the two laws that constitute the Homotopy Extension
// Property for S^n ↪ D^(n+1): the extension bottom-commutes with f on the
// disk probes and wall-commutes with H on the wall probes. Exposed as a
// named reusable property so skeletal-level reasoning can invoke it per
// dimension.
func VerifyHEP(e Extension, diskProbes, wallProbes []topology.Point) error {
	if err := topology.AgreeOn(e.Bottom(), e.f, diskProbes, agreeTol); err != nil {
		return fmt.Errorf("bottom law: %w", err)
	}
	if err := topology.AgreeOn(e.Wall(), e.h, wallProbes, agreeTol); err != nil {
		return fmt.Errorf("wall law: %w", err)
	}
	return nil
}

// jarProbes derives the gluing witness from the boundary witness: seam
// points over every sphere probe at several heights (where the two pieces
// overlap), wall and interior points, and the disk center column which
// lies in Mid for every y.
func jarProbes(n int, w BoundaryWitness) []topology.Point {
	var probes []topology.Point
	center := make(geom.Vec, n+1)
	for _, y := range []float64{0, 0.5, 1} {
		probes = append(probes, topology.Pair{Left: center, Right: geom.T(y)})
		for _, p := range w.SphereProbes {
			s := p.(geom.Vec)
			// Seam point: ‖x‖ = 1 − y/2 exactly.
			probes = append(probes, topology.Pair{Left: s.Scale(1 - y/2), Right: geom.T(y)})
			// Wall point: ‖x‖ = 1, in Rim for every y.
			probes = append(probes, topology.Pair{Left: s, Right: geom.T(y)})
			// Interior Mid point.
			probes = append(probes, topology.Pair{Left: s.Scale((1 - y/2) / 2), Right: geom.T(y)})
		}
	}
	return probes
}

func clamp01(t float64) float64 {
	switch {
	case t < 0 && t > -1e-9:
		return 0
	case t > 1 && t < 1+1e-9:
		return 1
	default:
		return t
	}
}

func clampToDisk(v geom.Vec) geom.Vec {
	n := v.Norm()
	if n > 1 && n <= 1+agreeTol {
		return v.Scale(1 / n)
	}
	return v
}
