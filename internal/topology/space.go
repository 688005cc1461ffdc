package topology

import "fmt"

// Space is a set of points with a topology. Membership is decidable via
// Contains; open/closed structure is carried by ClosedSet values built
// from the closed-by-construction combinators in this package.
type Space interface {
	// Name returns a short human-readable description, used in error
	// messages and logs.
	Name() string
	// Contains reports whether p is a point of the space.
	Contains(p Point) bool
}

// predicateSpace is the generic Space implementation: a named membership
// predicate. Geometric realizations (disks, spheres, intervals) are
// predicate spaces over coordinate vectors.
type predicateSpace struct {
	name     string
	contains func(Point) bool
}

func (s *predicateSpace) Name() string          { return s.name }
func (s *predicateSpace) Contains(p Point) bool { return s.contains(p) }

// NewSpace builds a space from a membership predicate.
func NewSpace(name string, contains func(Point) bool) Space {
	return &predicateSpace{name: name, contains: contains}
}

// Empty returns the empty space. Maps out of it are vacuously continuous;
// it realizes Sphere(-1) and the base of a plain (non-relative) complex.
func Empty() Space {
	return &predicateSpace{
		name:     "∅",
		contains: func(Point) bool { return false },
	}
}

// productSpace is the binary product A × B with the product topology.
// Its points are Pair values.
type productSpace struct {
	a, b Space
}

func (s *productSpace) Name() string { return fmt.Sprintf("%s × %s", s.a.Name(), s.b.Name()) }

func (s *productSpace) Contains(p Point) bool {
	pr, ok := p.(Pair)
	if !ok {
		return false
	}
	return s.a.Contains(pr.Left) && s.b.Contains(pr.Right)
}

// Product returns the product space A × B.
func Product(a, b Space) Space {
	return &productSpace{a: a, b: b}
}

// ProductFactors recovers the factors of a product space, or
// (nil, nil, false) when s is not a product.
func ProductFactors(s Space) (Space, Space, bool) {
	ps, ok := s.(*productSpace)
	if !ok {
		return nil, nil, false
	}
	return ps.a, ps.b, true
}

// ProductMap is f × g on the product of the domains.
func ProductMap(f, g Map) Map {
	dom := Product(f.Dom(), g.Dom())
	cod := Product(f.Cod(), g.Cod())
	name := fmt.Sprintf("%s × %s", f.name, g.name)
	return NewMap(name, dom, cod, func(p Point) Point {
		pr := p.(Pair)
		return Pair{Left: f.At(pr.Left), Right: g.At(pr.Right)}
	})
}
