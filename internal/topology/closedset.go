package topology

import "fmt"

// ClosedSet is a closed subset of an ambient space. Closedness is an
// invariant of construction, not a runtime check: values are built only
// through the combinators in this file (sublevel or superlevel sets of
// continuous real-valued functions, the whole space, finite unions,
// finite intersections, and products), each of which yields a closed set
// when its inputs satisfy the documented continuity requirement. This is
// the witness-object discipline the gluing engine relies on.
type ClosedSet struct {
	in       Space
	name     string
	contains func(Point) bool
}

// Space returns the ambient space.
func (c ClosedSet) Space() Space { return c.in }

// Name returns a human-readable description of the subset.
func (c ClosedSet) Name() string { return c.name }

// Contains reports whether p lies in the subset.
func (c ClosedSet) Contains(p Point) bool { return c.in.Contains(p) && c.contains(p) }

// Subspace returns the subset as a space in its own right, with the
// subspace topology inherited from the ambient space.
func (c ClosedSet) Subspace() Space {
	return NewSpace(c.name, c.Contains)
}

// Sublevel returns {p : f(p) ≤ level}, closed whenever f is continuous
// (the preimage of the closed ray (-∞, level]). The caller asserts
// continuity of f; every use in cellforge passes norm-based formulas.
func Sublevel(in Space, name string, f func(Point) float64, level float64) ClosedSet {
	return ClosedSet{
		in:       in,
		name:     name,
		contains: func(p Point) bool { return f(p) <= level },
	}
}

// Superlevel returns {p : f(p) ≥ level}, closed for continuous f.
func Superlevel(in Space, name string, f func(Point) float64, level float64) ClosedSet {
	return ClosedSet{
		in:       in,
		name:     name,
		contains: func(p Point) bool { return f(p) >= level },
	}
}

// Whole returns the ambient space as a closed subset of itself.
func Whole(in Space) ClosedSet {
	return ClosedSet{
		in:       in,
		name:     in.Name(),
		contains: func(Point) bool { return true },
	}
}

// Union returns a ∪ b. A union of two closed sets is closed; chaining
// Union keeps the collection finite, which is exactly the regime where
// the gluing engine's continuity argument holds.
func Union(a, b ClosedSet) ClosedSet {
	return ClosedSet{
		in:       a.in,
		name:     fmt.Sprintf("%s ∪ %s", a.name, b.name),
		contains: func(p Point) bool { return a.contains(p) || b.contains(p) },
	}
}

// Intersect returns a ∩ b, closed since both inputs are.
func Intersect(a, b ClosedSet) ClosedSet {
	return ClosedSet{
		in:       a.in,
		name:     fmt.Sprintf("%s ∩ %s", a.name, b.name),
		contains: func(p Point) bool { return a.contains(p) && b.contains(p) },
	}
}

// ProductSet returns a × b inside the product of the ambient spaces.
func ProductSet(a, b ClosedSet) ClosedSet {
	return ClosedSet{
		in:   Product(a.in, b.in),
		name: fmt.Sprintf("%s × %s", a.name, b.name),
		contains: func(p Point) bool {
			pr, ok := p.(Pair)
			if !ok {
				return false
			}
			return a.contains(pr.Left) && b.contains(pr.Right)
		},
	}
}
