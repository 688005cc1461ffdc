package topology

import "fmt"

// Map is a continuous map between spaces: a total point function together
// with its domain and codomain. Continuity is a by-construction invariant:
// maps enter the system through constructors whose continuity argument is
// documented at the call site (explicit formulas, compositions, canonical
// inclusions, and the gluing engine, which carries the only non-trivial
// continuity proof in the repository).
type Map struct {
	name string
	dom  Space
	cod  Space
	fn   func(Point) Point
	id   bool
}

// NewMap builds a map from an evaluation function. The caller is
// responsible for fn being total on dom and landing in cod.
func NewMap(name string, dom, cod Space, fn func(Point) Point) Map {
	return Map{name: name, dom: dom, cod: cod, fn: fn}
}

// Identity returns the identity map on s. Identity maps are flagged so
// that composition can elide them, keeping the functor law
// inclusion(n,n) = id an exact structural equality.
func Identity(s Space) Map {
	return Map{
		name: fmt.Sprintf("id_%s", s.Name()),
		dom:  s,
		cod:  s,
		fn:   func(p Point) Point { return p },
		id:   true,
	}
}

// Name returns the map's description.
func (m Map) Name() string { return m.name }

// Dom returns the domain space.
func (m Map) Dom() Space { return m.dom }

// Cod returns the codomain space.
func (m Map) Cod() Space { return m.cod }

// IsIdentity reports whether the map is an identity constructed by
// Identity (or a composition in which every factor was one).
func (m Map) IsIdentity() bool { return m.id }

// At evaluates the map. Evaluating outside the domain is an invariant
// breach that valid construction rules out, so it panics rather than
// returning an error; the sampling engine converts such panics into
// errors at its boundary.
func (m Map) At(p Point) Point {
	if !m.dom.Contains(p) {
		panic(fmt.Sprintf("map %s: point %v outside domain %s", m.name, p, m.dom.Name()))
	}
	return m.fn(p)
}

// Then returns the composite g ∘ m (m first, then g). Composition is
// associative because function composition is; identities are elided so
// composites with identity factors stay structurally equal to the bare
// map.
func (m Map) Then(g Map) Map {
	if m.id {
		return g
	}
	if g.id {
		return m
	}
	return Map{
		name: fmt.Sprintf("%s;%s", m.name, g.name),
		dom:  m.dom,
		cod:  g.cod,
		fn:   func(p Point) Point { return g.fn(m.fn(p)) },
	}
}

// Compose returns outer ∘ inner in the conventional order.
func Compose(outer, inner Map) Map {
	return inner.Then(outer)
}

// Restrict returns the map with its domain cut down to the given closed
// subset. Restriction of a continuous map is continuous.
func (m Map) Restrict(to ClosedSet) Map {
	return Map{
		name: fmt.Sprintf("%s|%s", m.name, to.Name()),
		dom:  to.Subspace(),
		cod:  m.cod,
		fn:   m.fn,
	}
}

// Constant returns the constant map onto a single point of cod.
func Constant(name string, dom, cod Space, value Point) Map {
	if !cod.Contains(value) {
		panic(fmt.Sprintf("constant map %s: value %v outside codomain %s", name, value, cod.Name()))
	}
	return NewMap(name, dom, cod, func(Point) Point { return value })
}

// AgreeOn reports whether f and g coincide within tol at every probe
// point. Probes outside either domain are reported as an error rather
// than skipped, so a bad probe set cannot vacuously pass.
func AgreeOn(f, g Map, probes []Point, tol float64) error {
	for _, p := range probes {
		if !f.dom.Contains(p) {
			return fmt.Errorf("probe %v outside domain of %s", p, f.name)
		}
		if !g.dom.Contains(p) {
			return fmt.Errorf("probe %v outside domain of %s", p, g.name)
		}
		a, b := f.fn(p), g.fn(p)
		if !Equal(a, b, tol) {
			return fmt.Errorf("maps %s and %s disagree at %v: %v vs %v", f.name, g.name, p, a, b)
		}
	}
	return nil
}
