// Package skeletal assembles relative CW-complexes: an integer-indexed
// family of skeleta produced by repeated cell attachment, the canonical
// inclusion maps between arbitrary levels, and the colimit space carrying
// the final topology of the whole complex.
package skeletal

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cellforge/internal/attach"
	"cellforge/internal/logging"
	"cellforge/internal/topology"
)

// ErrLevel is returned for indices below -1 or inverted inclusion ranges.
var ErrLevel = errors.New("invalid skeletal level")

// Complex is a relative CW-complex over a base space A: sk(-1) is A, and
// sk(n+1) is the pushout of the attachment at dimension n onto sk(n).
// Skeleta, attachment results, and inclusion maps are realized lazily and
// memoized by index; the family is unbounded in principle and only the
// levels a run demands are ever built. The mutex guards memoization only,
// everything built is immutable afterwards.
type Complex struct {
	base        topology.Space
	attachments Provider

	mu      sync.Mutex
	skeleta map[int]topology.Space
	results map[int]attach.Result
	incls   map[[2]int]topology.Map
	colim   *Colimit
	highest int
}

// Provider supplies the attachment for each level. It receives the
// realized skeleton of its level so boundary maps can be built against
// it, and is consulted once per level in increasing order.
type Provider func(n int, sk topology.Space) attach.Attachment

// New creates a relative complex from a base space and an attachment
// provider. The provider must return an attachment whose boundary maps
// land in the skeleton it was handed. A plain CW-complex takes
// topology.Empty() as base.
func New(base topology.Space, attachments Provider) *Complex {
	return &Complex{
		base:        base,
		attachments: attachments,
		skeleta:     map[int]topology.Space{-1: base},
		results:     map[int]attach.Result{},
		incls:       map[[2]int]topology.Map{},
		highest:     -1,
	}
}

// Base returns the base space A.
func (c *Complex) Base() topology.Space { return c.base }

// BaseIso returns the tracked isomorphism A ≅ sk(-1). The realization
// uses A itself, so the witness is the identity; it is still surfaced
// explicitly rather than assumed.
func (c *Complex) BaseIso() topology.Iso { return topology.IdentityIso(c.base) }

// Skeleton realizes and returns sk(n). Levels are built in increasing
// order since each pushout depends on the previous skeleton.
func (c *Complex) Skeleton(n int) (topology.Space, error) {
	if n < -1 {
		return nil, fmt.Errorf("%w: %d", ErrLevel, n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.realizeLocked(n); err != nil {
		return nil, err
	}
	return c.skeleta[n], nil
}

// AttachResult returns the pushout result that produced sk(n+1) from
// sk(n), realizing levels as needed.
func (c *Complex) AttachResult(n int) (attach.Result, error) {
	if n < -1 {
		return attach.Result{}, fmt.Errorf("%w: %d", ErrLevel, n)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.realizeLocked(n + 1); err != nil {
		return attach.Result{}, err
	}
	return c.results[n], nil
}

// realizeLocked builds skeleta up to level n. Caller holds c.mu.
func (c *Complex) realizeLocked(n int) error {
	log := logging.For(logging.CategorySkeletal)
	for k := c.highest; k < n; k++ {
		att := c.attachments(k, c.skeleta[k])
		if att.Dim != k {
			return fmt.Errorf("%w: attachment for level %d reports dimension %d", ErrLevel, k, att.Dim)
		}
		res := attach.Attach(c.skeleta[k], att)
		c.results[k] = res
		c.skeleta[k+1] = res.Space
		c.highest = k + 1
		log.Debug("realized skeleton",
			zap.Int("level", k+1),
			zap.Int("cells", len(att.Cells)))
	}
	return nil
}

// Inclusion returns the canonical map sk(n) → sk(m) for n ≤ m. It is the
// identity at equal indices and otherwise the composite of the
// consecutive pushout legs inr. The gap m−n is a non-negative measure
// consumed by an explicit loop, so the construction terminates for
// arbitrarily distant index pairs; results are cached by (n, m).
//
// The functor laws hold structurally: Inclusion(n,n) is the identity map
// value, and Inclusion(n,l) evaluates through the same chain of inr legs
// as Inclusion(n,m) followed by Inclusion(m,l).
func (c *Complex) Inclusion(n, m int) (topology.Map, error) {
	if n < -1 || n > m {
		return topology.Map{}, fmt.Errorf("%w: inclusion(%d,%d)", ErrLevel, n, m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.realizeLocked(m); err != nil {
		return topology.Map{}, err
	}
	return c.inclusionLocked(n, m), nil
}

func (c *Complex) inclusionLocked(n, m int) topology.Map {
	key := [2]int{n, m}
	if f, ok := c.incls[key]; ok {
		return f
	}
	f := topology.Identity(c.skeleta[n])
	for k := n; k < m; k++ { // gap loop: m-k strictly decreasing, bounded by 0
		f = f.Then(c.results[k].Inr)
	}
	c.incls[key] = f
	return f
}
