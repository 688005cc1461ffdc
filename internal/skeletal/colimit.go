package skeletal

import (
	"fmt"

	"cellforge/internal/attach"
	"cellforge/internal/topology"
)

// LevelPoint is a point of the colimit, tagged with a skeletal level that
// realizes it. Two level points denote the same colimit point when they
// are identified by the inclusion maps; Canonical reduces a point to its
// minimal realizing level, which is the unique canonical representative.
type LevelPoint struct {
	Level int
	P     topology.Point
}

// Canonical strips the BasePoint wrappers that witness "already present
// at a lower level": LevelPoint{m, BasePoint{p}} and LevelPoint{m-1, p}
// are the same colimit point.
func Canonical(p LevelPoint) LevelPoint {
	for p.Level > -1 {
		b, ok := p.P.(attach.BasePoint)
		if !ok {
			break
		}
		p = LevelPoint{Level: p.Level - 1, P: b.P}
	}
	return p
}

// PointEqual compares canonical representatives.
func (l LevelPoint) PointEqual(other topology.Point, tol float64) bool {
	o, ok := other.(LevelPoint)
	if !ok {
		return false
	}
	a, b := Canonical(l), Canonical(o)
	return a.Level == b.Level && topology.Equal(a.P, b.P, tol)
}

// Colimit is the union of all skeleta along the inclusion maps, carrying
// the final topology: a subset is closed iff its preimage in every
// skeleton is closed (PreimageIn exposes those preimages per level).
// It is owned by its Complex, computed on demand, and never mutated once
// produced; membership checks realize exactly the levels they mention.
type Colimit struct {
	c *Complex
}

// Colimit returns the colimit space of the complex. The value is created
// once and shared.
func (c *Complex) Colimit() *Colimit {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.colim == nil {
		c.colim = &Colimit{c: c}
	}
	return c.colim
}

// Name implements topology.Space.
func (cl *Colimit) Name() string { return fmt.Sprintf("colim %s", cl.c.base.Name()) }

// Contains implements topology.Space: a LevelPoint belongs to the colimit
// when its payload belongs to the skeleton at its level.
func (cl *Colimit) Contains(p topology.Point) bool {
	lp, ok := p.(LevelPoint)
	if !ok || lp.Level < -1 {
		return false
	}
	sk, err := cl.c.Skeleton(lp.Level)
	if err != nil {
		return false
	}
	return sk.Contains(lp.P)
}

// Include returns the canonical map sk(n) → colimit. Images are
// canonicalized so equal colimit points have equal representatives.
func (cl *Colimit) Include(n int) (topology.Map, error) {
	sk, err := cl.c.Skeleton(n)
	if err != nil {
		return topology.Map{}, err
	}
	return topology.NewMap(fmt.Sprintf("sk%d↪colim", n), sk, cl,
		func(p topology.Point) topology.Point {
			return Canonical(LevelPoint{Level: n, P: p})
		}), nil
}

// PreimageIn returns the preimage of a colimit subset in sk(n). The
// colimit topology is final: a candidate subset of the colimit is closed
// exactly when PreimageIn(n, subset) is closed in sk(n) for every level
// n. That defining property is exposed here for callers that need to
// reason about closedness level by level.
func (cl *Colimit) PreimageIn(n int, subset func(topology.Point) bool) (func(topology.Point) bool, error) {
	if _, err := cl.c.Skeleton(n); err != nil {
		return nil, err
	}
	return func(p topology.Point) bool {
		return subset(Canonical(LevelPoint{Level: n, P: p}))
	}, nil
}
