// Package topology provides the point-set layer shared across cellforge
// packages: spaces with membership predicates, closed subsets whose
// closedness is established by construction, and continuous maps between
// spaces. Concrete geometric spaces live in internal/geom; pushout and
// colimit point kinds live in internal/attach and internal/skeletal.
package topology

// Point is an element of a Space. Concrete kinds include geom.Vec
// (Euclidean coordinates), Pair (product points), attach.BasePoint and
// attach.CellPoint (pushout points), and skeletal.LevelPoint (colimit
// points).
type Point any

// PointComparer is implemented by point kinds that need structural
// comparison with a numeric tolerance. Equal falls back to == for
// comparable kinds that do not implement it.
type PointComparer interface {
	PointEqual(other Point, tol float64) bool
}

// Equal reports whether two points denote the same element, comparing
// numeric coordinates within tol.
func Equal(a, b Point, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if pc, ok := a.(PointComparer); ok {
		return pc.PointEqual(b, tol)
	}
	return a == b
}

// Pair is a point of a product space.
type Pair struct {
	Left  Point
	Right Point
}

// PointEqual compares both components within tol.
func (p Pair) PointEqual(other Point, tol float64) bool {
	q, ok := other.(Pair)
	if !ok {
		return false
	}
	return Equal(p.Left, q.Left, tol) && Equal(p.Right, q.Right, tol)
}
