package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line is a 1-dimensional test point; float64 is comparable so Equal
// falls back to == unless wrapped.
type line float64

func (l line) PointEqual(other Point, tol float64) bool {
	o, ok := other.(line)
	if !ok {
		return false
	}
	d := float64(l - o)
	return d <= tol && d >= -tol
}

func segment() Space {
	return NewSpace("[-1,1]", func(p Point) bool {
		v, ok := p.(line)
		return ok && v >= -1 && v <= 1
	})
}

func TestMapComposition(t *testing.T) {
	s := segment()
	shrink := NewMap("shrink", s, s, func(p Point) Point { return p.(line) / 2 })
	negate := NewMap("negate", s, s, func(p Point) Point { return -p.(line) })

	got := shrink.Then(negate).At(line(0.5))
	assert.True(t, Equal(got, line(-0.25), 1e-12))

	// Associativity: (f;g);h and f;(g;h) agree pointwise.
	h := NewMap("half", s, s, func(p Point) Point { return p.(line) / 2 })
	lhs := shrink.Then(negate).Then(h)
	rhs := shrink.Then(negate.Then(h))
	require.NoError(t, AgreeOn(lhs, rhs, []Point{line(-1), line(0), line(0.25), line(1)}, 1e-12))
}

func TestIdentityElision(t *testing.T) {
	s := segment()
	id := Identity(s)
	f := NewMap("f", s, s, func(p Point) Point { return -p.(line) })

	assert.True(t, id.IsIdentity())
	assert.False(t, f.IsIdentity())

	// Composition with the identity returns the other factor unchanged,
	// keeping identity laws structural rather than observational.
	assert.Equal(t, f.Name(), id.Then(f).Name())
	assert.Equal(t, f.Name(), f.Then(id).Name())
	assert.True(t, id.Then(id).IsIdentity())
}

func TestMapDomainAssertion(t *testing.T) {
	s := segment()
	f := NewMap("f", s, s, func(p Point) Point { return p })
	assert.Panics(t, func() { f.At(line(2)) })
}

func TestClosedSetCombinators(t *testing.T) {
	s := segment()
	left := Sublevel(s, "left", func(p Point) float64 { return float64(p.(line)) }, 0)
	right := Superlevel(s, "right", func(p Point) float64 { return float64(p.(line)) }, 0)

	tests := []struct {
		name string
		set  ClosedSet
		in   []line
		out  []line
	}{
		{"sublevel", left, []line{-1, -0.5, 0}, []line{0.5, 1}},
		{"superlevel", right, []line{0, 0.5, 1}, []line{-1, -0.1}},
		{"union", Union(left, right), []line{-1, 0, 1}, nil},
		{"intersect", Intersect(left, right), []line{0}, []line{-0.5, 0.5}},
		{"whole", Whole(s), []line{-1, 0, 1}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, p := range tc.in {
				assert.True(t, tc.set.Contains(p), "%v should be in %s", p, tc.set.Name())
			}
			for _, p := range tc.out {
				assert.False(t, tc.set.Contains(p), "%v should not be in %s", p, tc.set.Name())
			}
		})
	}
}

func TestSubspaceRestriction(t *testing.T) {
	s := segment()
	left := Sublevel(s, "left", func(p Point) float64 { return float64(p.(line)) }, 0)
	sub := left.Subspace()

	assert.True(t, sub.Contains(line(-0.5)))
	assert.False(t, sub.Contains(line(0.5)))

	f := NewMap("f", s, s, func(p Point) Point { return p })
	restricted := f.Restrict(left)
	assert.Panics(t, func() { restricted.At(line(0.5)) })
}

func TestProductSpace(t *testing.T) {
	s := segment()
	prod := Product(s, s)

	assert.True(t, prod.Contains(Pair{Left: line(0), Right: line(1)}))
	assert.False(t, prod.Contains(Pair{Left: line(2), Right: line(0)}))
	assert.False(t, prod.Contains(line(0)))

	a, b, ok := ProductFactors(prod)
	require.True(t, ok)
	assert.Equal(t, s.Name(), a.Name())
	assert.Equal(t, s.Name(), b.Name())
}

func TestProductMap(t *testing.T) {
	s := segment()
	neg := NewMap("neg", s, s, func(p Point) Point { return -p.(line) })
	idm := NewMap("keep", s, s, func(p Point) Point { return p })

	pm := ProductMap(neg, idm)
	got := pm.At(Pair{Left: line(0.5), Right: line(-1)})
	assert.True(t, Equal(got, Pair{Left: line(-0.5), Right: line(-1)}, 1e-12))
}

func TestAgreeOnRejectsBadProbes(t *testing.T) {
	s := segment()
	f := NewMap("f", s, s, func(p Point) Point { return p })
	g := NewMap("g", s, s, func(p Point) Point { return p })

	// A probe outside the domain must error, not silently pass.
	err := AgreeOn(f, g, []Point{line(5)}, 1e-12)
	require.Error(t, err)
}

func TestIsoRoundTrip(t *testing.T) {
	s := segment()
	iso := Iso{
		Fwd: NewMap("neg", s, s, func(p Point) Point { return -p.(line) }),
		Inv: NewMap("neg", s, s, func(p Point) Point { return -p.(line) }),
	}
	probes := []Point{line(-1), line(-0.5), line(0), line(1)}
	require.NoError(t, iso.Check(probes, probes, 1e-12))

	broken := Iso{
		Fwd: NewMap("neg", s, s, func(p Point) Point { return -p.(line) }),
		Inv: NewMap("id", s, s, func(p Point) Point { return p }),
	}
	require.Error(t, broken.Check(probes, probes, 1e-12))
}

func TestEmptySpace(t *testing.T) {
	assert.False(t, Empty().Contains(line(0)))
	assert.False(t, Empty().Contains(nil))
}
