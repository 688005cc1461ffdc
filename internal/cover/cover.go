// Package cover implements the closed-cover gluing engine: finitely many
// continuous maps defined on closed subsets that together cover a space,
// agreeing on overlaps, are glued into one continuous map on the whole
// space.
//
// The continuity argument, which this engine exists to embody: for a
// closed Y in the target, the preimage of the glued map is the union over
// pieces i of the image in α of φᵢ⁻¹(Y); each φᵢ⁻¹(Y) is closed in S(i)
// by continuity of φᵢ, its image under the closed inclusion S(i) ↪ α is
// closed in α, and a FINITE union of closed sets is closed. Finiteness of
// the cover is load-bearing: the final step fails for infinite covers
// (absent local finiteness), so the engine takes a slice of pieces and
// deliberately offers no way to glue an infinite family.
package cover

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cellforge/internal/logging"
	"cellforge/internal/topology"
)

// Sentinel errors for cover precondition violations. All are detected at
// construction time: a cover that fails its preconditions is rejected
// before any glued map exists, never deferred into evaluation.
var (
	ErrEmptyCover     = errors.New("cover has no pieces")
	ErrNotCovered     = errors.New("probe point not covered by any piece")
	ErrIncompatible   = errors.New("piece maps disagree on overlap")
	ErrTargetMismatch = errors.New("piece maps have different codomains")
)

// agreeTol is the pointwise tolerance for overlap agreement.
const agreeTol = 1e-7

// Piece pairs a closed subset of the covered space with a continuous map
// defined on it. Closedness of Set is guaranteed by its construction
// (see topology.ClosedSet); Via must be defined on at least Set.
type Piece struct {
	Set topology.ClosedSet
	Via topology.Map
}

// Witness carries the probe points on which the cover and compatibility
// preconditions are verified at construction time. Probes should include
// points of every piece and, critically, points on every pairwise
// overlap, the seams where well-definedness is at stake.
type Witness struct {
	Probes []topology.Point
}

// Glue assembles the glued map Φ with Φ(x) = φᵢ(x) for any piece i whose
// set contains x. Preconditions checked here, per the reject-at-the-
// boundary policy:
//
//   - at least one piece (the empty cover covers nothing);
//   - every probe lies in some piece (cover condition);
//   - all pieces containing a probe agree at it within tolerance
//     (compatibility, which makes Φ well-defined);
//   - all pieces target the same codomain.
//
// The returned map re-asserts well-definedness at every overlap point it
// evaluates: a disagreement there means a precondition was established on
// too thin a probe set, and the invariant breach panics rather than
// silently choosing a branch.
func Glue(name string, alpha topology.Space, pieces []Piece, w Witness) (topology.Map, error) {
	if len(pieces) == 0 {
		return topology.Map{}, fmt.Errorf("%w: %s", ErrEmptyCover, name)
	}
	beta := pieces[0].Via.Cod()
	for _, pc := range pieces[1:] {
		if pc.Via.Cod() != beta && pc.Via.Cod().Name() != beta.Name() {
			return topology.Map{}, fmt.Errorf("%w: %s vs %s", ErrTargetMismatch, beta.Name(), pc.Via.Cod().Name())
		}
	}

	for _, x := range w.Probes {
		if !alpha.Contains(x) {
			return topology.Map{}, fmt.Errorf("glue %s: probe %v outside %s", name, x, alpha.Name())
		}
		var (
			seen  bool
			value topology.Point
			first int
		)
		for i, pc := range pieces {
			if !pc.Set.Contains(x) {
				continue
			}
			v := pc.Via.At(x)
			if !seen {
				seen, value, first = true, v, i
				continue
			}
			if !topology.Equal(value, v, agreeTol) {
				return topology.Map{}, fmt.Errorf("%w: pieces %s and %s at %v: %v vs %v",
					ErrIncompatible, pieces[first].Set.Name(), pc.Set.Name(), x, value, v)
			}
		}
		if !seen {
			return topology.Map{}, fmt.Errorf("%w: %v", ErrNotCovered, x)
		}
	}

	logging.For(logging.CategoryCover).Debug("glued cover",
		zap.String("map", name),
		zap.Int("pieces", len(pieces)))

	fn := func(x topology.Point) topology.Point {
		var (
			seen  bool
			value topology.Point
		)
		for _, pc := range pieces {
			if !pc.Set.Contains(x) {
				continue
			}
			v := pc.Via.At(x)
			if !seen {
				seen, value = true, v
				continue
			}
			// Well-definedness assertion on the seam.
			if !topology.Equal(value, v, agreeTol) {
				panic(fmt.Sprintf("glue %s: pieces disagree at %v: %v vs %v", name, x, value, v))
			}
		}
		if !seen {
			panic(fmt.Sprintf("glue %s: cover invariant violated at %v", name, x))
		}
		return value
	}
	return topology.NewMap(name, alpha, beta, fn), nil
}

// EvalAt evaluates through a specific piece, for callers that already
// know which piece covers x; it skips re-deriving the active piece.
// Panics if x is outside the piece's set (an invariant breach).
func EvalAt(pc Piece, x topology.Point) topology.Point {
	if !pc.Set.Contains(x) {
		panic(fmt.Sprintf("cover: %v outside piece %s", x, pc.Set.Name()))
	}
	return pc.Via.At(x)
}
