package cover

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cellforge/internal/geom"
	"cellforge/internal/topology"
)

func segment() topology.Space {
	return topology.NewSpace("[-1,1]", func(p topology.Point) bool {
		v, ok := p.(geom.Vec)
		return ok && v.Dim() == 1 && v[0] >= -1 && v[0] <= 1
	})
}

func coord(p topology.Point) float64 { return p.(geom.Vec)[0] }

// absCover glues |x| on [-1,1] from -x on [-1,0] and x on [0,1]: two
// closed pieces overlapping exactly at the seam {0}, where both formulas
// give 0.
func absCover(t *testing.T) (topology.Map, []Piece) {
	t.Helper()
	s := segment()
	left := topology.Sublevel(s, "[-1,0]", coord, 0)
	right := topology.Superlevel(s, "[0,1]", coord, 0)

	pieces := []Piece{
		{Set: left, Via: topology.NewMap("neg", left.Subspace(), s, func(p topology.Point) topology.Point {
			return geom.Vec{-coord(p)}
		})},
		{Set: right, Via: topology.NewMap("pos", right.Subspace(), s, func(p topology.Point) topology.Point {
			return geom.Vec{coord(p)}
		})},
	}
	w := Witness{Probes: []topology.Point{
		geom.Vec{-1}, geom.Vec{-0.5}, geom.Vec{0}, geom.Vec{0.5}, geom.Vec{1},
	}}
	glued, err := Glue("abs", s, pieces, w)
	require.NoError(t, err)
	return glued, pieces
}

func TestGlueEvaluation(t *testing.T) {
	glued, _ := absCover(t)
	tests := []struct {
		x, want float64
	}{
		{-1, 1}, {-0.25, 0.25}, {0, 0}, {0.75, 0.75}, {1, 1},
	}
	for _, tc := range tests {
		got := coord(glued.At(geom.Vec{tc.x}))
		assert.InDelta(t, tc.want, got, 1e-12, "at %v", tc.x)
	}
}

func TestGlueWellDefinedOnOverlap(t *testing.T) {
	glued, pieces := absCover(t)

	// The overlap point is computed identically through either piece.
	seam := geom.Vec{0}
	viaLeft := EvalAt(pieces[0], seam)
	viaRight := EvalAt(pieces[1], seam)
	assert.True(t, topology.Equal(viaLeft, viaRight, 1e-12))
	assert.True(t, topology.Equal(glued.At(seam), viaLeft, 1e-12))
}

func TestGlueSeamContinuity(t *testing.T) {
	glued, _ := absCover(t)

	// Sampled values converge to the seam value from either side: the
	// glued map has no jump where the pieces meet.
	seamValue := coord(glued.At(geom.Vec{0}))
	for _, h := range []float64{1e-2, 1e-4, 1e-6, 1e-8} {
		below := coord(glued.At(geom.Vec{-h}))
		above := coord(glued.At(geom.Vec{h}))
		assert.LessOrEqual(t, math.Abs(below-seamValue), 2*h)
		assert.LessOrEqual(t, math.Abs(above-seamValue), 2*h)
	}
}

func TestGlueRejectsIncompatiblePieces(t *testing.T) {
	s := segment()
	left := topology.Sublevel(s, "[-1,0]", coord, 0)
	right := topology.Superlevel(s, "[0,1]", coord, 0)

	// x and x+1 disagree at the overlap point 0.
	pieces := []Piece{
		{Set: left, Via: topology.NewMap("id", left.Subspace(), s, func(p topology.Point) topology.Point {
			return geom.Vec{coord(p)}
		})},
		{Set: right, Via: topology.NewMap("shift", right.Subspace(), s, func(p topology.Point) topology.Point {
			return geom.Vec{coord(p)/2 + 0.5}
		})},
	}
	_, err := Glue("bad", s, pieces, Witness{Probes: []topology.Point{geom.Vec{0}}})
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestGlueRejectsNonCoveringFamily(t *testing.T) {
	s := segment()
	left := topology.Sublevel(s, "[-1,-1/2]", coord, -0.5)

	pieces := []Piece{
		{Set: left, Via: topology.NewMap("id", left.Subspace(), s, func(p topology.Point) topology.Point {
			return p
		})},
	}
	_, err := Glue("gap", s, pieces, Witness{Probes: []topology.Point{geom.Vec{0.5}}})
	require.ErrorIs(t, err, ErrNotCovered)
}

func TestGlueRejectsEmptyCover(t *testing.T) {
	_, err := Glue("none", segment(), nil, Witness{})
	require.ErrorIs(t, err, ErrEmptyCover)
}

func TestGlueRejectsProbeOutsideSpace(t *testing.T) {
	s := segment()
	whole := topology.Whole(s)
	pieces := []Piece{
		{Set: whole, Via: topology.NewMap("id", s, s, func(p topology.Point) topology.Point { return p })},
	}
	_, err := Glue("out", s, pieces, Witness{Probes: []topology.Point{geom.Vec{7}}})
	require.Error(t, err)
}

func TestGluedMapPanicsOutsideCover(t *testing.T) {
	// A glued map evaluated where no piece applies is an invariant
	// breach, not a recoverable error.
	s := segment()
	left := topology.Sublevel(s, "[-1,0]", coord, 0)
	pieces := []Piece{
		{Set: left, Via: topology.NewMap("id", left.Subspace(), s, func(p topology.Point) topology.Point { return p })},
	}
	glued, err := Glue("partial", s, pieces, Witness{Probes: []topology.Point{geom.Vec{-0.5}}})
	require.NoError(t, err)
	assert.Panics(t, func() { glued.At(geom.Vec{0.5}) })
}

func TestEvalAtOutsidePiecePanics(t *testing.T) {
	_, pieces := absCover(t)
	assert.Panics(t, func() { EvalAt(pieces[0], geom.Vec{0.5}) })
}
