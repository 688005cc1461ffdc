// Package attach implements the pushout engine for cell attachment: given
// a space X and a family of attaching maps Sphere(n) → X, it builds the
// space X ∪ (cells × D^(n+1)) obtained by gluing one (n+1)-disk per cell
// along its boundary sphere, together with the two canonical legs and the
// universal factorization through any commuting cocone.
package attach

import (
	"fmt"

	"go.uber.org/zap"

	"cellforge/internal/geom"
	"cellforge/internal/logging"
	"cellforge/internal/topology"
)

// Cell is one cell of an attachment: an identifier plus the attaching map
// of its boundary sphere into the space being extended.
type Cell struct {
	ID       string
	Boundary topology.Map // Sphere(n) → X
}

// Attachment is a finite family of n-dimensional attaching maps. The
// mathematical model permits an arbitrary index set; the computational
// realization is a finite slice, which covers every construction a finite
// run can demand. Dim = -1 attaches 0-cells: the boundary Sphere(-1) is
// empty and the attaching maps are vacuous.
type Attachment struct {
	Dim   int
	Cells []Cell
}

// None returns the empty attachment at dimension n. Attaching no cells is
// total and leaves the space unchanged up to isomorphism.
func None(n int) Attachment { return Attachment{Dim: n} }

// BasePoint is a pushout point coming from X through the canonical right
// leg. Skeletal levels nest these: a point born at level k appears at
// level m wrapped in m-k BasePoint layers.
type BasePoint struct {
	P topology.Point
}

// PointEqual unwraps and compares the underlying points.
func (b BasePoint) PointEqual(other topology.Point, tol float64) bool {
	o, ok := other.(BasePoint)
	if !ok {
		return false
	}
	return topology.Equal(b.P, o.P, tol)
}

// CellPoint is a pushout point inside an attached disk, addressed by cell
// identifier and disk coordinate. Canonical cell points are interior:
// boundary coordinates are identified with their image in X and are
// normalized away by the pushout legs.
type CellPoint struct {
	Cell  string
	Coord geom.Vec
}

// PointEqual compares cell identity and coordinates.
func (c CellPoint) PointEqual(other topology.Point, tol float64) bool {
	o, ok := other.(CellPoint)
	if !ok {
		return false
	}
	return c.Cell == o.Cell && c.Coord.PointEqual(o.Coord, tol)
}

// Result is the pushout of the span DisjointSpheres → DisjointDisks,
// DisjointSpheres → X. Space together with Inl and Inr commutes over the
// span, and UniversalFactor produces the unique map out of it.
type Result struct {
	Space topology.Space
	Inl   topology.Map // disjoint disks → Space
	Inr   topology.Map // X → Space

	x     topology.Space
	att   Attachment
	cells map[string]Cell
}

// DisjointDisks returns the disjoint union of one (n+1)-disk per cell,
// with points addressed by cell identifier.
func DisjointDisks(att Attachment) topology.Space {
	disk := geom.Disk(att.Dim + 1)
	ids := cellIndex(att)
	return topology.NewSpace(fmt.Sprintf("⊔%d·D%d", len(att.Cells), att.Dim+1), func(p topology.Point) bool {
		cp, ok := p.(CellPoint)
		if !ok {
			return false
		}
		_, known := ids[cp.Cell]
		return known && disk.Contains(cp.Coord)
	})
}

// DisjointSpheres returns the disjoint union of the boundary spheres of
// the attached disks. Empty when att.Dim = -1.
func DisjointSpheres(att Attachment) topology.Space {
	sphere := geom.Sphere(att.Dim)
	ids := cellIndex(att)
	return topology.NewSpace(fmt.Sprintf("⊔%d·S%d", len(att.Cells), att.Dim), func(p topology.Point) bool {
		cp, ok := p.(CellPoint)
		if !ok {
			return false
		}
		_, known := ids[cp.Cell]
		return known && sphere.Contains(cp.Coord)
	})
}

// SpanLeft is the disjoint union of boundary inclusions
// DisjointSpheres → DisjointDisks (identity on coordinates).
func SpanLeft(att Attachment) topology.Map {
	return topology.NewMap("⊔∂", DisjointSpheres(att), DisjointDisks(att),
		func(p topology.Point) topology.Point { return p })
}

// SpanRight is the disjoint union of the attaching maps
// DisjointSpheres → X.
func SpanRight(x topology.Space, att Attachment) topology.Map {
	cells := cellIndex(att)
	return topology.NewMap("⊔attach", DisjointSpheres(att), x,
		func(p topology.Point) topology.Point {
			cp := p.(CellPoint)
			return cells[cp.Cell].Boundary.At(cp.Coord)
		})
}

// Attach builds the pushout. The construction is total: any dimension
// n ≥ -1, any finite cell family (including none) is accepted, and there
// are no error conditions.
func Attach(x topology.Space, att Attachment) Result {
	cells := cellIndex(att)
	name := fmt.Sprintf("%s∪%d·e%d", x.Name(), len(att.Cells), att.Dim+1)

	pushout := topology.NewSpace(name, func(p topology.Point) bool {
		switch q := p.(type) {
		case BasePoint:
			return x.Contains(q.P)
		case CellPoint:
			_, known := cells[q.Cell]
			return known && geom.Disk(att.Dim+1).Contains(q.Coord)
		default:
			return false
		}
	})

	// The pushout identification: a disk point on the boundary sphere IS
	// its image under the attaching map. Inl normalizes such points into
	// X so that canonical representatives are unique.
	inl := topology.NewMap("inl", DisjointDisks(att), pushout, func(p topology.Point) topology.Point {
		cp := p.(CellPoint)
		if onBoundary(cp.Coord) {
			q := cp.Coord.Normalize()
			return BasePoint{P: cells[cp.Cell].Boundary.At(q)}
		}
		return cp
	})

	inr := topology.NewMap("inr", x, pushout, func(p topology.Point) topology.Point {
		return BasePoint{P: p}
	})

	logging.For(logging.CategoryAttach).Debug("attached cells",
		zap.String("space", x.Name()),
		zap.Int("dim", att.Dim),
		zap.Int("cells", len(att.Cells)))

	return Result{Space: pushout, Inl: inl, Inr: inr, x: x, att: att, cells: cells}
}

// UniversalFactor returns the unique map d out of the pushout with
// Inl;d = h and Inr;d = k. The span-agreement precondition
// h(∂-inclusion(s)) = k(attach(s)) is verified on the given boundary
// probes (CellPoints on the boundary spheres) and rejected with an error
// when violated, per the construction-time precondition policy.
func (r Result) UniversalFactor(h, k topology.Map, boundaryProbes []topology.Point) (topology.Map, error) {
	left := SpanLeft(r.att).Then(h)
	right := SpanRight(r.x, r.att).Then(k)
	if err := topology.AgreeOn(left, right, boundaryProbes, agreeTol); err != nil {
		return topology.Map{}, fmt.Errorf("span does not commute: %w", err)
	}

	name := fmt.Sprintf("[%s,%s]", h.Name(), k.Name())
	d := topology.NewMap(name, r.Space, h.Cod(), func(p topology.Point) topology.Point {
		switch q := p.(type) {
		case BasePoint:
			return k.At(q.P)
		case CellPoint:
			return h.At(q)
		default:
			panic(fmt.Sprintf("attach: %v is not a pushout point", p))
		}
	})
	return d, nil
}

// UniquenessCheck asserts that two candidate factorizations coincide on
// the probe points. Uniqueness of the universal factorization is exposed
// as this checkable property rather than a formal proof: every pushout
// point is an Inl- or Inr-image, so any two maps satisfying the commuting
// conditions must agree pointwise.
func UniquenessCheck(d1, d2 topology.Map, probes []topology.Point) error {
	return topology.AgreeOn(d1, d2, probes, agreeTol)
}

// InrIso returns the isomorphism X ≅ pushout when the attachment has no
// cells, witnessing that an empty attachment changes nothing. The second
// return is false when cells were attached.
func (r Result) InrIso() (topology.Iso, bool) {
	if len(r.att.Cells) != 0 {
		return topology.Iso{}, false
	}
	inv := topology.NewMap("inr⁻¹", r.Space, r.x, func(p topology.Point) topology.Point {
		return p.(BasePoint).P
	})
	return topology.Iso{Fwd: r.Inr, Inv: inv}, true
}

// agreeTol is the pointwise agreement tolerance for factorization and
// uniqueness checks. Wider than geom.Eps: values have passed through
// composed floating-point formulas.
const agreeTol = 1e-7

func onBoundary(v geom.Vec) bool {
	if v.Dim() == 0 {
		return false // D^0 has empty boundary
	}
	return v.Norm() >= 1-geom.Eps
}

func cellIndex(att Attachment) map[string]Cell {
	m := make(map[string]Cell, len(att.Cells))
	for _, c := range att.Cells {
		m[c.ID] = c
	}
	return m
}
