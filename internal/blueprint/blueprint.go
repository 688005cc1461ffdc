// Package blueprint reads YAML descriptions of CW-complexes and turns
// them into skeletal.Complex values. The core has no file format of its
// own; blueprints are the surrounding system's way of feeding it base
// spaces and attachment families.
//
// A blueprint names a base space ("empty" or "point"), then lists levels
// with their cells. Attaching maps are described by kind:
//
//	constant:  the whole boundary sphere maps to one named 0-cell
//	endpoints: for dimension-0 attachments, the two sphere points -1 and
//	           +1 map to two named 0-cells (building graphs)
//
// Cells at dimension -1 are 0-cells; their boundary sphere is empty and
// they need no attach clause.
package blueprint

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"cellforge/internal/attach"
	"cellforge/internal/geom"
	"cellforge/internal/skeletal"
	"cellforge/internal/topology"
)

// Sentinel errors for blueprint validation.
var (
	ErrBase      = errors.New("unknown base space")
	ErrKind      = errors.New("unknown attaching-map kind")
	ErrTarget    = errors.New("attach target is not a declared 0-cell")
	ErrDimension = errors.New("invalid level dimension")
)

// File is the top-level YAML document.
type File struct {
	Name   string  `yaml:"name"`
	Base   string  `yaml:"base"`
	Levels []Level `yaml:"levels"`
}

// Level declares the cells attached at one dimension.
type Level struct {
	Dim   int        `yaml:"dim"`
	Cells []CellSpec `yaml:"cells"`
}

// CellSpec declares one cell. Unnamed cells receive a generated UUID.
type CellSpec struct {
	ID     string     `yaml:"id"`
	Attach AttachSpec `yaml:"attach"`
}

// AttachSpec describes the attaching map of a cell.
type AttachSpec struct {
	Kind    string   `yaml:"kind"`
	Target  string   `yaml:"target"`  // constant
	Targets []string `yaml:"targets"` // endpoints: exactly two
}

// Parse decodes and validates a blueprint document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses a blueprint file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blueprint: %w", err)
	}
	return Parse(data)
}

func (f *File) validate() error {
	switch f.Base {
	case "", "empty", "point":
	default:
		return fmt.Errorf("%w: %q", ErrBase, f.Base)
	}

	vertices := map[string]bool{}
	for i := range f.Levels {
		lv := &f.Levels[i]
		if lv.Dim < -1 {
			return fmt.Errorf("%w: %d", ErrDimension, lv.Dim)
		}
		for j := range lv.Cells {
			c := &lv.Cells[j]
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			if lv.Dim == -1 {
				vertices[c.ID] = true
				continue
			}
			switch c.Attach.Kind {
			case "constant":
				if !vertices[c.Attach.Target] {
					return fmt.Errorf("%w: %q (cell %s)", ErrTarget, c.Attach.Target, c.ID)
				}
			case "endpoints":
				if lv.Dim != 0 {
					return fmt.Errorf("%w: endpoints only valid at dim 0, cell %s has dim %d", ErrKind, c.ID, lv.Dim)
				}
				if len(c.Attach.Targets) != 2 {
					return fmt.Errorf("blueprint: cell %s: endpoints needs exactly two targets", c.ID)
				}
				for _, t := range c.Attach.Targets {
					if !vertices[t] {
						return fmt.Errorf("%w: %q (cell %s)", ErrTarget, t, c.ID)
					}
				}
			default:
				return fmt.Errorf("%w: %q (cell %s)", ErrKind, c.Attach.Kind, c.ID)
			}
		}
	}
	return nil
}

// Top returns the highest skeletal level the blueprint realizes: one past
// its deepest attachment dimension.
func (f *File) Top() int {
	top := -1
	for _, lv := range f.Levels {
		if lv.Dim+1 > top {
			top = lv.Dim + 1
		}
	}
	return top
}

// Vertices returns the identifiers of all declared 0-cells, in blueprint
// order.
func (f *File) Vertices() []string {
	var ids []string
	for _, lv := range f.Levels {
		if lv.Dim != -1 {
			continue
		}
		for _, c := range lv.Cells {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// BaseSpace returns the base space named by the blueprint.
func (f *File) BaseSpace() topology.Space {
	if f.Base == "point" {
		base := geom.Vec{}
		return topology.NewSpace("pt", func(p topology.Point) bool {
			return topology.Equal(p, base, geom.Eps)
		})
	}
	return topology.Empty()
}

// LiftVertex returns the point of sk(level) representing a 0-cell. A
// 0-cell enters sk(0) as its cell point and each further attachment
// wraps it in one pushout base layer.
func LiftVertex(id string, level int) topology.Point {
	var p topology.Point = attach.CellPoint{Cell: id, Coord: geom.Vec{}}
	for k := 0; k < level; k++ {
		p = attach.BasePoint{P: p}
	}
	return p
}

// Build assembles the complex described by the blueprint.
func (f *File) Build() *skeletal.Complex {
	byDim := map[int]Level{}
	for _, lv := range f.Levels {
		byDim[lv.Dim] = lv
	}

	provider := func(n int, sk topology.Space) attach.Attachment {
		lv, ok := byDim[n]
		if !ok {
			return attach.None(n)
		}
		att := attach.Attachment{Dim: n}
		for _, spec := range lv.Cells {
			att.Cells = append(att.Cells, attach.Cell{
				ID:       spec.ID,
				Boundary: boundaryMap(n, sk, spec),
			})
		}
		return att
	}
	return skeletal.New(f.BaseSpace(), provider)
}

// boundaryMap realizes an AttachSpec as a map Sphere(n) → sk(n).
func boundaryMap(n int, sk topology.Space, spec CellSpec) topology.Map {
	sphere := geom.Sphere(n)
	name := fmt.Sprintf("∂%s", spec.ID)
	switch {
	case n == -1:
		// Empty boundary: the map out of Sphere(-1) is vacuous.
		return topology.NewMap(name, sphere, sk, func(p topology.Point) topology.Point {
			panic("blueprint: evaluation of a map out of the empty sphere")
		})
	case spec.Attach.Kind == "endpoints":
		lo := LiftVertex(spec.Attach.Targets[0], 0)
		hi := LiftVertex(spec.Attach.Targets[1], 0)
		return topology.NewMap(name, sphere, sk, func(p topology.Point) topology.Point {
			if p.(geom.Vec)[0] < 0 {
				return lo
			}
			return hi
		})
	default: // constant
		target := LiftVertex(spec.Attach.Target, n)
		return topology.Constant(name, sphere, sk, target)
	}
}
